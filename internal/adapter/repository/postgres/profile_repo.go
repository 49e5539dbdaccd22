// Package postgres provides PostgreSQL-based repository implementations.
// Пакет postgres предоставляет реализации репозиториев на базе PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
)

// ProfileRepository implements port.ProfileRepository using PostgreSQL.
// ProfileRepository реализует интерфейс port.ProfileRepository с использованием PostgreSQL.
type ProfileRepository struct {
	db *gorm.DB // Database connection / Подключение к базе данных
}

// NewProfileRepository creates a new ProfileRepository instance.
// NewProfileRepository создаёт новый экземпляр ProfileRepository.
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create creates a new profile in the database.
// Create создаёт новый профиль в базе данных.
func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	return r.CreateTx(ctx, r.db, profile)
}

// CreateTx creates a new profile within an existing transaction.
// CreateTx создаёт новый профиль в рамках существующей транзакции.
// A user and its profile are created in one transaction during registration.
// Пользователь и его профиль создаются в одной транзакции при регистрации.
func (r *ProfileRepository) CreateTx(ctx context.Context, tx *gorm.DB, profile *domain.Profile) error {
	if err := tx.WithContext(ctx).Create(profile).Error; err != nil {
		if isDuplicateKeyError(err) {
			return apperror.Conflict("El perfil ya existe")
		}
		return apperror.Internal("failed to create profile", err)
	}
	return nil
}

// FindByUserID retrieves the profile belonging to a user.
// FindByUserID получает профиль, принадлежащий пользователю.
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Perfil no encontrado")
		}
		return nil, apperror.Internal("failed to find profile", err)
	}
	return &profile, nil
}

// Update updates an existing profile in the database.
// Update обновляет существующий профиль в базе данных.
func (r *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	result := r.db.WithContext(ctx).Save(profile)
	if result.Error != nil {
		return apperror.Internal("failed to update profile", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("Perfil no encontrado")
	}
	return nil
}
