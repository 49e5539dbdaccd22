// Package postgres provides PostgreSQL-based repository implementations.
// Пакет postgres предоставляет реализации репозиториев на базе PostgreSQL.
package postgres

import (
	"gorm.io/gorm"

	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
)

// Migrate creates or updates the database schema for all entities.
// Migrate создаёт или обновляет схему базы данных для всех сущностей.
//
// Called once at startup, before the seeder runs.
// Вызывается один раз при запуске, до работы сидера.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.Role{},
		&domain.User{},
		&domain.Profile{},
		&domain.Category{},
		&domain.Session{},
		&domain.RevokedSession{},
		&domain.PasswordResetCode{},
		&domain.UserActivation{},
		&domain.Country{},
		&domain.Department{},
		&domain.Correspondence{},
		&domain.AuditLog{},
	)
	if err != nil {
		return apperror.Internal("failed to migrate database schema", err)
	}
	return nil
}
