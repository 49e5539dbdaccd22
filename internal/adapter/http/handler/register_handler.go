// Package handler provides HTTP request handlers for the account service.
// Пакет handler предоставляет обработчики HTTP запросов для сервиса аккаунтов.
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/andrewhigh08/account-service/internal/adapter/http/response"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/pkg/validator"
	"github.com/andrewhigh08/account-service/internal/port"
)

// RegisterHandler handles account registration and activation requests.
// RegisterHandler обрабатывает запросы регистрации и активации аккаунтов.
type RegisterHandler struct {
	registrationService port.RegistrationService // Registration service / Сервис регистрации
	logger              *logger.Logger           // Logger instance / Экземпляр логгера
}

// NewRegisterHandler creates a new RegisterHandler instance.
// NewRegisterHandler создаёт новый экземпляр RegisterHandler.
func NewRegisterHandler(registrationService port.RegistrationService, log *logger.Logger) *RegisterHandler {
	return &RegisterHandler{
		registrationService: registrationService,
		logger:              log.WithComponent("register_handler"),
	}
}

// RegisterRequest represents the registration request body.
// RegisterRequest представляет тело запроса регистрации.
//
// Only name, last name and credentials are mandatory; the document and
// phone fields can be supplied later through a profile update.
// Обязательны только имя, фамилия и учётные данные; поля документа и
// телефона можно заполнить позже через обновление профиля.
type RegisterRequest struct {
	FirstName      string  `json:"firstName" binding:"required"`      // First name / Первое имя
	MiddleName     *string `json:"middleName"`                        // Middle name / Второе имя
	LastName       string  `json:"lastName" binding:"required"`       // Last name / Первая фамилия
	SecondLastName *string `json:"secondLastName"`                    // Second last name / Вторая фамилия
	DNIType        *string `json:"dniType"`                           // Identity document type / Тип документа
	DNI            *string `json:"dni"`                               // Identity document number / Номер документа
	Prefix         *string `json:"prefix"`                            // Phone country prefix / Телефонный префикс
	Mobile         *string `json:"mobile"`                            // Mobile number / Мобильный номер
	Email          string  `json:"email" binding:"required,email"`    // Account email / Email аккаунта
	Password       string  `json:"password" binding:"required,min=8"` // Account password / Пароль аккаунта
}

// Register handles POST /register.
// Register обрабатывает POST /register.
//
// Creates an unactivated account and emails the activation link.
// Создаёт неактивированный аккаунт и отправляет ссылку активации по почте.
// @Summary Register account
// @Description Create an unactivated account and send the activation email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /register [post]
func (h *RegisterHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Todos los campos son obligatorios")
		return
	}

	// Validate password complexity / Проверяем сложность пароля
	if result := validator.ValidatePassword(req.Password); !result.Valid {
		response.ValidationError(c, "La contraseña no cumple los requisitos de seguridad", map[string]interface{}{
			"errors": result.Errors,
		})
		return
	}

	err := h.registrationService.Register(c.Request.Context(), &port.RegisterRequest{
		FirstName:      req.FirstName,
		MiddleName:     req.MiddleName,
		LastName:       req.LastName,
		SecondLastName: req.SecondLastName,
		DNIType:        req.DNIType,
		DNI:            req.DNI,
		Prefix:         req.Prefix,
		Mobile:         req.Mobile,
		Email:          req.Email,
		Password:       req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Revisa tu correo electrónico")
}

// ActivateRequest represents the account activation request body.
// ActivateRequest представляет тело запроса активации аккаунта.
type ActivateRequest struct {
	Token string `json:"token" binding:"required"` // Activation token / Токен активации
}

// Activate handles POST /activate.
// Activate обрабатывает POST /activate.
// @Summary Activate account
// @Description Confirm an account using the emailed activation token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ActivateRequest true "Activation token"
// @Success 201 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /activate [post]
func (h *RegisterHandler) Activate(c *gin.Context) {
	var req ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Todos los campos son obligatorios")
		return
	}

	if err := h.registrationService.Activate(c.Request.Context(), req.Token); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cuenta activada satisfactoriamente")
}
