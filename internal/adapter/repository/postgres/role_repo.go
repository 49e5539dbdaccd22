// Package postgres provides PostgreSQL-based repository implementations.
// Пакет postgres предоставляет реализации репозиториев на базе PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
	"github.com/andrewhigh08/account-service/internal/port"
)

// RoleRepository implements port.RoleRepository using PostgreSQL.
// RoleRepository реализует интерфейс port.RoleRepository с использованием PostgreSQL.
//
// Roles use soft delete; a deleted role stays in the table with a
// deleted_at timestamp and is excluded from regular queries.
// Роли используют мягкое удаление; удалённая роль остаётся в таблице
// с отметкой deleted_at и исключается из обычных запросов.
type RoleRepository struct {
	db *gorm.DB // Database connection / Подключение к базе данных
}

// NewRoleRepository creates a new RoleRepository instance.
// NewRoleRepository создаёт новый экземпляр RoleRepository.
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Create creates a new role in the database.
// Create создаёт новую роль в базе данных.
func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) error {
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		if isDuplicateKeyError(err) {
			return apperror.Conflict("El rol ya existe")
		}
		return apperror.Internal("failed to create role", err)
	}
	return nil
}

// FindByID retrieves a role by id, excluding soft-deleted roles.
// FindByID получает роль по id, исключая мягко удалённые роли.
func (r *RoleRepository) FindByID(ctx context.Context, id int64) (*domain.Role, error) {
	var role domain.Role
	err := r.db.WithContext(ctx).First(&role, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("No existe rol asociado")
		}
		return nil, apperror.Internal("failed to find role", err)
	}
	return &role, nil
}

// FindByIDUnscoped retrieves a role by id, including soft-deleted roles.
// FindByIDUnscoped получает роль по id, включая мягко удалённые роли.
// Used to distinguish a missing role from an already deleted one.
// Используется, чтобы отличить отсутствующую роль от уже удалённой.
func (r *RoleRepository) FindByIDUnscoped(ctx context.Context, id int64) (*domain.Role, error) {
	var role domain.Role
	err := r.db.WithContext(ctx).Unscoped().First(&role, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("No existe rol asociado")
		}
		return nil, apperror.Internal("failed to find role", err)
	}
	return &role, nil
}

// FindByName retrieves a role by its unique name.
// FindByName получает роль по уникальному имени.
func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&role).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("No existe rol asociado")
		}
		return nil, apperror.Internal("failed to find role", err)
	}
	return &role, nil
}

// Update updates an existing role in the database.
// Update обновляет существующую роль в базе данных.
func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) error {
	result := r.db.WithContext(ctx).Save(role)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return apperror.Conflict("El rol ya existe")
		}
		return apperror.Internal("failed to update role", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("No existe rol asociado")
	}
	return nil
}

// Delete performs a soft-delete on a role.
// Delete выполняет мягкое удаление роли.
func (r *RoleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Role{}, id)
	if result.Error != nil {
		return apperror.Internal("failed to delete role", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("No existe rol asociado")
	}
	return nil
}

// List retrieves roles with filtering and pagination.
// List получает роли с фильтрацией и пагинацией.
// Returns: roles slice, total count, error.
// Возвращает: срез ролей, общее количество, ошибку.
func (r *RoleRepository) List(ctx context.Context, filter port.NameFilter) ([]domain.Role, int64, error) {
	var roles []domain.Role
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Role{})

	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Name+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.Internal("failed to count roles", err)
	}

	offset := (filter.Page - 1) * filter.PageSize
	if offset < 0 {
		offset = 0
	}

	err := query.
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&roles).Error

	if err != nil {
		return nil, 0, apperror.Internal("failed to list roles", err)
	}

	return roles, total, nil
}

// ListAll retrieves every role without pagination, ordered by name.
// ListAll получает все роли без пагинации, упорядоченные по имени.
// Used by selection lists and the Excel export.
// Используется списками выбора и экспортом в Excel.
func (r *RoleRepository) ListAll(ctx context.Context) ([]domain.Role, error) {
	var roles []domain.Role
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&roles).Error

	if err != nil {
		return nil, apperror.Internal("failed to list roles", err)
	}
	return roles, nil
}
