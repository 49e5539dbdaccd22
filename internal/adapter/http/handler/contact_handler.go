// Package handler provides HTTP request handlers for the account service.
// Пакет handler предоставляет обработчики HTTP запросов для сервиса аккаунтов.
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/andrewhigh08/account-service/internal/adapter/http/response"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
)

// ContactHandler handles the public contact form.
// ContactHandler обрабатывает публичную форму обратной связи.
type ContactHandler struct {
	contactService port.ContactService // Contact service / Сервис обратной связи
	logger         *logger.Logger      // Logger instance / Экземпляр логгера
}

// NewContactHandler creates a new ContactHandler instance.
// NewContactHandler создаёт новый экземпляр ContactHandler.
func NewContactHandler(contactService port.ContactService, log *logger.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         log.WithComponent("contact_handler"),
	}
}

// ContactRequest represents the contact form request body.
// ContactRequest представляет тело запроса формы обратной связи.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`        // Sender name / Имя отправителя
	Email   string `json:"email" binding:"required,email"` // Sender email / Email отправителя
	Subject string `json:"subject" binding:"required"`     // Message subject / Тема сообщения
	Message string `json:"message" binding:"required"`     // Message body / Текст сообщения
}

// SendContact handles POST /send-contact.
// SendContact обрабатывает POST /send-contact.
//
// Public and rate limited; forwards the message to the support mailbox.
// Публичный и ограниченный по частоте; пересылает сообщение в поддержку.
// @Summary Send contact message
// @Description Forward a contact form message to the support mailbox
// @Tags contact
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Contact message"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 429 {object} map[string]interface{}
// @Router /send-contact [post]
func (h *ContactHandler) SendContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Todos los campos son obligatorios")
		return
	}

	err := h.contactService.SendContact(c.Request.Context(), req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Mensaje enviado")
}
