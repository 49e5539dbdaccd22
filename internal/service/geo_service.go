package service

import (
	"context"

	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/port"
)

// GeoService implements port.GeoService interface.
// GeoService реализует интерфейс port.GeoService.
// Thin read-only facade over the seeded reference data.
// Тонкий фасад только для чтения над засеянными справочными данными.
type GeoService struct {
	geoRepo port.GeoRepository
}

// NewGeoService creates a new GeoService instance.
// NewGeoService создаёт новый экземпляр GeoService.
func NewGeoService(geoRepo port.GeoRepository) *GeoService {
	return &GeoService{geoRepo: geoRepo}
}

// ListCountries retrieves all countries.
// ListCountries получает все страны.
func (s *GeoService) ListCountries(ctx context.Context) ([]domain.Country, error) {
	return s.geoRepo.ListCountries(ctx)
}

// ListDepartments retrieves the departments of a country.
// ListDepartments получает регионы страны.
func (s *GeoService) ListDepartments(ctx context.Context, countryID int64) ([]domain.Department, error) {
	return s.geoRepo.ListDepartments(ctx, countryID)
}
