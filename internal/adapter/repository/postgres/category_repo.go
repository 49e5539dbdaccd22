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

// CategoryRepository implements port.CategoryRepository using PostgreSQL.
// CategoryRepository реализует интерфейс port.CategoryRepository с использованием PostgreSQL.
//
// Categories use soft delete, mirroring roles.
// Категории используют мягкое удаление, как и роли.
type CategoryRepository struct {
	db *gorm.DB // Database connection / Подключение к базе данных
}

// NewCategoryRepository creates a new CategoryRepository instance.
// NewCategoryRepository создаёт новый экземпляр CategoryRepository.
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category in the database.
// Create создаёт новую категорию в базе данных.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if isDuplicateKeyError(err) {
			return apperror.Conflict("La categoría ya existe")
		}
		return apperror.Internal("failed to create category", err)
	}
	return nil
}

// FindByID retrieves a category by id, excluding soft-deleted categories.
// FindByID получает категорию по id, исключая мягко удалённые категории.
func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).First(&category, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("No existe categoría asociada")
		}
		return nil, apperror.Internal("failed to find category", err)
	}
	return &category, nil
}

// FindByIDUnscoped retrieves a category by id, including soft-deleted categories.
// FindByIDUnscoped получает категорию по id, включая мягко удалённые категории.
func (r *CategoryRepository) FindByIDUnscoped(ctx context.Context, id int64) (*domain.Category, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).Unscoped().First(&category, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("No existe categoría asociada")
		}
		return nil, apperror.Internal("failed to find category", err)
	}
	return &category, nil
}

// FindByName retrieves a category by its unique name.
// FindByName получает категорию по уникальному имени.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&category).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("No existe categoría asociada")
		}
		return nil, apperror.Internal("failed to find category", err)
	}
	return &category, nil
}

// Update updates an existing category in the database.
// Update обновляет существующую категорию в базе данных.
func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	result := r.db.WithContext(ctx).Save(category)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return apperror.Conflict("La categoría ya existe")
		}
		return apperror.Internal("failed to update category", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("No existe categoría asociada")
	}
	return nil
}

// Delete performs a soft-delete on a category.
// Delete выполняет мягкое удаление категории.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Category{}, id)
	if result.Error != nil {
		return apperror.Internal("failed to delete category", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("No existe categoría asociada")
	}
	return nil
}

// List retrieves categories with filtering and pagination.
// List получает категории с фильтрацией и пагинацией.
// Returns: categories slice, total count, error.
// Возвращает: срез категорий, общее количество, ошибку.
func (r *CategoryRepository) List(ctx context.Context, filter port.NameFilter) ([]domain.Category, int64, error) {
	var categories []domain.Category
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Category{})

	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Name+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.Internal("failed to count categories", err)
	}

	offset := (filter.Page - 1) * filter.PageSize
	if offset < 0 {
		offset = 0
	}

	err := query.
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&categories).Error

	if err != nil {
		return nil, 0, apperror.Internal("failed to list categories", err)
	}

	return categories, total, nil
}

// ListAll retrieves every category without pagination, ordered by name.
// ListAll получает все категории без пагинации, упорядоченные по имени.
func (r *CategoryRepository) ListAll(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&categories).Error

	if err != nil {
		return nil, apperror.Internal("failed to list categories", err)
	}
	return categories, nil
}
