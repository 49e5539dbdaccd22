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

// PasswordResetRepository implements port.PasswordResetRepository using PostgreSQL.
// PasswordResetRepository реализует интерфейс port.PasswordResetRepository с использованием PostgreSQL.
type PasswordResetRepository struct {
	db *gorm.DB // Database connection / Подключение к базе данных
}

// NewPasswordResetRepository creates a new PasswordResetRepository instance.
// NewPasswordResetRepository создаёт новый экземпляр PasswordResetRepository.
func NewPasswordResetRepository(db *gorm.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

// Create stores a new password reset code.
// Create сохраняет новый код сброса пароля.
// Codes are globally unique; a collision surfaces as a conflict.
// Коды глобально уникальны; коллизия проявляется как конфликт.
func (r *PasswordResetRepository) Create(ctx context.Context, code *domain.PasswordResetCode) error {
	if err := r.db.WithContext(ctx).Create(code).Error; err != nil {
		if isDuplicateKeyError(err) {
			return apperror.Conflict("Código inválido")
		}
		return apperror.Internal("failed to create reset code", err)
	}
	return nil
}

// FindByUserAndCode retrieves a reset code belonging to a user.
// FindByUserAndCode получает код сброса, принадлежащий пользователю.
func (r *PasswordResetRepository) FindByUserAndCode(ctx context.Context, userID int64, code string) (*domain.PasswordResetCode, error) {
	var reset domain.PasswordResetCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND code = ?", userID, code).
		First(&reset).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Código inválido")
		}
		return nil, apperror.Internal("failed to find reset code", err)
	}
	return &reset, nil
}

// ExistsByCode reports whether any user currently holds the given code.
// ExistsByCode сообщает, закреплён ли данный код за каким-либо пользователем.
// Used to retry generation on the rare collision.
// Используется для повторной генерации при редкой коллизии.
func (r *PasswordResetRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.PasswordResetCode{}).
		Where("code = ?", code).
		Count(&count).Error

	if err != nil {
		return false, apperror.Internal("failed to check reset code", err)
	}
	return count > 0, nil
}

// DeleteByUser removes every reset code belonging to a user.
// DeleteByUser удаляет все коды сброса, принадлежащие пользователю.
// A newly requested code invalidates all previous ones.
// Новый запрошенный код аннулирует все предыдущие.
func (r *PasswordResetRepository) DeleteByUser(ctx context.Context, userID int64) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.PasswordResetCode{}).Error

	if err != nil {
		return apperror.Internal("failed to delete reset codes", err)
	}
	return nil
}

// Delete removes a single reset code after it has been consumed.
// Delete удаляет единичный код сброса после его использования.
func (r *PasswordResetRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).
		Delete(&domain.PasswordResetCode{}, id).Error

	if err != nil {
		return apperror.Internal("failed to delete reset code", err)
	}
	return nil
}
