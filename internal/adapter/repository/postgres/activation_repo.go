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

// ActivationRepository implements port.ActivationRepository using PostgreSQL.
// ActivationRepository реализует интерфейс port.ActivationRepository с использованием PostgreSQL.
type ActivationRepository struct {
	db *gorm.DB // Database connection / Подключение к базе данных
}

// NewActivationRepository creates a new ActivationRepository instance.
// NewActivationRepository создаёт новый экземпляр ActivationRepository.
func NewActivationRepository(db *gorm.DB) *ActivationRepository {
	return &ActivationRepository{db: db}
}

// Create stores a new activation token record.
// Create сохраняет новую запись токена активации.
func (r *ActivationRepository) Create(ctx context.Context, activation *domain.UserActivation) error {
	return r.CreateTx(ctx, r.db, activation)
}

// CreateTx stores a new activation token record within an existing transaction.
// CreateTx сохраняет запись токена активации в рамках существующей транзакции.
func (r *ActivationRepository) CreateTx(ctx context.Context, tx *gorm.DB, activation *domain.UserActivation) error {
	if err := tx.WithContext(ctx).Create(activation).Error; err != nil {
		return apperror.Internal("failed to create activation record", err)
	}
	return nil
}

// FindByJTI retrieves an activation record by its token id.
// FindByJTI получает запись активации по id токена.
func (r *ActivationRepository) FindByJTI(ctx context.Context, jti string) (*domain.UserActivation, error) {
	var activation domain.UserActivation
	err := r.db.WithContext(ctx).
		Where("jti = ?", jti).
		First(&activation).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Token inválido")
		}
		return nil, apperror.Internal("failed to find activation record", err)
	}
	return &activation, nil
}

// DeleteByUser removes every activation record belonging to a user.
// DeleteByUser удаляет все записи активации, принадлежащие пользователю.
// Called once the account has been activated.
// Вызывается после активации аккаунта.
func (r *ActivationRepository) DeleteByUser(ctx context.Context, userID int64) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.UserActivation{}).Error

	if err != nil {
		return apperror.Internal("failed to delete activation records", err)
	}
	return nil
}
