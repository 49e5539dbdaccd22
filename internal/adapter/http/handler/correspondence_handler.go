// Package handler provides HTTP request handlers for the account service.
// Пакет handler предоставляет обработчики HTTP запросов для сервиса аккаунтов.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andrewhigh08/account-service/internal/adapter/http/middleware"
	"github.com/andrewhigh08/account-service/internal/adapter/http/response"
	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
)

// CorrespondenceHandler handles mailing address HTTP requests of the caller.
// CorrespondenceHandler обрабатывает HTTP запросы почтового адреса вызывающего.
type CorrespondenceHandler struct {
	correspondenceService port.CorrespondenceService // Correspondence service / Сервис адресов
	logger                *logger.Logger             // Logger instance / Экземпляр логгера
}

// NewCorrespondenceHandler creates a new CorrespondenceHandler instance.
// NewCorrespondenceHandler создаёт новый экземпляр CorrespondenceHandler.
func NewCorrespondenceHandler(correspondenceService port.CorrespondenceService, log *logger.Logger) *CorrespondenceHandler {
	return &CorrespondenceHandler{
		correspondenceService: correspondenceService,
		logger:                log.WithComponent("correspondence_handler"),
	}
}

// CorrespondenceRequest represents the mailing address request body.
// CorrespondenceRequest представляет тело запроса почтового адреса.
type CorrespondenceRequest struct {
	CountryID    int64   `json:"countryId" binding:"required"`    // Country reference / Ссылка на страну
	DepartmentID int64   `json:"departmentId" binding:"required"` // Department reference / Ссылка на регион
	City         string  `json:"city" binding:"required"`         // City / Город
	ZipCode      string  `json:"zipCode" binding:"required"`      // Postal code / Почтовый индекс
	Address      string  `json:"address" binding:"required"`      // Street address / Адрес
	Observations *string `json:"observations"`                    // Delivery notes / Примечания
}

// GetCorrespondence handles GET /correspondence.
// GetCorrespondence обрабатывает GET /correspondence.
// @Summary Get mailing address
// @Description Retrieve the authenticated user's mailing address
// @Tags correspondence
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /correspondence [get]
func (h *CorrespondenceHandler) GetCorrespondence(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserIDKey)

	correspondence, err := h.correspondenceService.GetCorrespondence(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.WithPayload(c, http.StatusOK, "Correspondencia cargada exitosamente", gin.H{
		"countryId":    correspondence.CountryID,
		"departmentId": correspondence.DepartmentID,
		"city":         correspondence.City,
		"zipCode":      correspondence.ZipCode,
		"address":      correspondence.Address,
		"observations": correspondence.Observations,
	})
}

// UpsertCorrespondence handles POST /correspondence.
// UpsertCorrespondence обрабатывает POST /correspondence.
//
// Creates the caller's mailing address or replaces the existing one.
// Создаёт почтовый адрес вызывающего или заменяет существующий.
// @Summary Upsert mailing address
// @Description Create or replace the authenticated user's mailing address
// @Tags correspondence
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CorrespondenceRequest true "Mailing address"
// @Success 200 {object} map[string]interface{}
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /correspondence [post]
func (h *CorrespondenceHandler) UpsertCorrespondence(c *gin.Context) {
	var req CorrespondenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Todos los campos son obligatorios")
		return
	}

	userID := c.GetInt64(middleware.ContextUserIDKey)
	created, err := h.correspondenceService.UpsertCorrespondence(c.Request.Context(), userID, &domain.Correspondence{
		CountryID:    req.CountryID,
		DepartmentID: req.DepartmentID,
		City:         req.City,
		ZipCode:      req.ZipCode,
		Address:      req.Address,
		Observations: req.Observations,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if created {
		response.Created(c, "Correspondencia creada exitosamente")
		return
	}
	response.OK(c, "Correspondencia actualizada exitosamente")
}
