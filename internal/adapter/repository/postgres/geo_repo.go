// Package postgres provides PostgreSQL-based repository implementations.
// Пакет postgres предоставляет реализации репозиториев на базе PostgreSQL.
package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
)

// GeoRepository implements port.GeoRepository using PostgreSQL.
// GeoRepository реализует интерфейс port.GeoRepository с использованием PostgreSQL.
//
// Countries and departments are read-only reference data populated by the seeder.
// Страны и регионы являются справочными данными только для чтения, заполняемыми сидером.
type GeoRepository struct {
	db *gorm.DB // Database connection / Подключение к базе данных
}

// NewGeoRepository creates a new GeoRepository instance.
// NewGeoRepository создаёт новый экземпляр GeoRepository.
func NewGeoRepository(db *gorm.DB) *GeoRepository {
	return &GeoRepository{db: db}
}

// ListCountries retrieves all countries ordered by name.
// ListCountries получает все страны, упорядоченные по имени.
func (r *GeoRepository) ListCountries(ctx context.Context) ([]domain.Country, error) {
	var countries []domain.Country
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&countries).Error

	if err != nil {
		return nil, apperror.Internal("failed to list countries", err)
	}
	return countries, nil
}

// ListDepartments retrieves the departments of one country ordered by name.
// ListDepartments получает регионы одной страны, упорядоченные по имени.
func (r *GeoRepository) ListDepartments(ctx context.Context, countryID int64) ([]domain.Department, error) {
	var departments []domain.Department
	err := r.db.WithContext(ctx).
		Where("country_id = ?", countryID).
		Order("name ASC").
		Find(&departments).Error

	if err != nil {
		return nil, apperror.Internal("failed to list departments", err)
	}
	return departments, nil
}

// CountCountries returns the number of seeded countries.
// CountCountries возвращает количество записанных стран.
// Used by the seeder to decide whether reference data needs loading.
// Используется сидером, чтобы решить, нужно ли загружать справочные данные.
func (r *GeoRepository) CountCountries(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Country{}).
		Count(&count).Error

	if err != nil {
		return 0, apperror.Internal("failed to count countries", err)
	}
	return count, nil
}
