// Package handler provides HTTP request handlers for the account service.
// Пакет handler предоставляет обработчики HTTP запросов для сервиса аккаунтов.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andrewhigh08/account-service/internal/adapter/http/response"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
)

// GeoHandler handles country and department lookup requests.
// GeoHandler обрабатывает запросы справочников стран и регионов.
type GeoHandler struct {
	geoService port.GeoService // Geo service / Гео-сервис
	logger     *logger.Logger  // Logger instance / Экземпляр логгера
}

// NewGeoHandler creates a new GeoHandler instance.
// NewGeoHandler создаёт новый экземпляр GeoHandler.
func NewGeoHandler(geoService port.GeoService, log *logger.Logger) *GeoHandler {
	return &GeoHandler{
		geoService: geoService,
		logger:     log.WithComponent("geo_handler"),
	}
}

// ListCountries handles GET /countries.
// ListCountries обрабатывает GET /countries.
// @Summary List countries
// @Description Retrieve all countries
// @Tags geo
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /countries [get]
func (h *GeoHandler) ListCountries(c *gin.Context) {
	countries, err := h.geoService.ListCountries(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.WithPayload(c, http.StatusOK, "Países cargados exitosamente", gin.H{
		"countries": countries,
	})
}

// ListDepartments handles GET /departments/:countryId.
// ListDepartments обрабатывает GET /departments/:countryId.
// @Summary List departments
// @Description Retrieve the departments of a country
// @Tags geo
// @Produce json
// @Param countryId path int true "Country id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /departments/{countryId} [get]
func (h *GeoHandler) ListDepartments(c *gin.Context) {
	countryID, err := pathID(c, "countryId")
	if err != nil {
		response.Error(c, err)
		return
	}

	departments, err := h.geoService.ListDepartments(c.Request.Context(), countryID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.WithPayload(c, http.StatusOK, "Departamentos cargados exitosamente", gin.H{
		"departments": departments,
	})
}
