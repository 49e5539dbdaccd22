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

// CorrespondenceRepository implements port.CorrespondenceRepository using PostgreSQL.
// CorrespondenceRepository реализует интерфейс port.CorrespondenceRepository с использованием PostgreSQL.
type CorrespondenceRepository struct {
	db *gorm.DB // Database connection / Подключение к базе данных
}

// NewCorrespondenceRepository creates a new CorrespondenceRepository instance.
// NewCorrespondenceRepository создаёт новый экземпляр CorrespondenceRepository.
func NewCorrespondenceRepository(db *gorm.DB) *CorrespondenceRepository {
	return &CorrespondenceRepository{db: db}
}

// Create creates a new correspondence record.
// Create создаёт новую запись корреспонденции.
// A profile holds at most one correspondence record.
// Профиль имеет не более одной записи корреспонденции.
func (r *CorrespondenceRepository) Create(ctx context.Context, correspondence *domain.Correspondence) error {
	if err := r.db.WithContext(ctx).Create(correspondence).Error; err != nil {
		if isDuplicateKeyError(err) {
			return apperror.Conflict("El registro de correspondencia ya existe")
		}
		return apperror.Internal("failed to create correspondence", err)
	}
	return nil
}

// FindByProfileID retrieves the correspondence attached to a profile.
// FindByProfileID получает корреспонденцию, привязанную к профилю.
func (r *CorrespondenceRepository) FindByProfileID(ctx context.Context, profileID int64) (*domain.Correspondence, error) {
	var correspondence domain.Correspondence
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		First(&correspondence).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Información de correspondencia no encontrada")
		}
		return nil, apperror.Internal("failed to find correspondence", err)
	}
	return &correspondence, nil
}

// Update updates an existing correspondence record.
// Update обновляет существующую запись корреспонденции.
func (r *CorrespondenceRepository) Update(ctx context.Context, correspondence *domain.Correspondence) error {
	result := r.db.WithContext(ctx).Save(correspondence)
	if result.Error != nil {
		return apperror.Internal("failed to update correspondence", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("Información de correspondencia no encontrada")
	}
	return nil
}
