// Package handler provides HTTP request handlers for the account service.
// Пакет handler предоставляет обработчики HTTP запросов для сервиса аккаунтов.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andrewhigh08/account-service/internal/adapter/http/middleware"
	"github.com/andrewhigh08/account-service/internal/adapter/http/response"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/pkg/validator"
	"github.com/andrewhigh08/account-service/internal/port"
)

// PasswordHandler handles password recovery and change requests.
// PasswordHandler обрабатывает запросы восстановления и смены пароля.
type PasswordHandler struct {
	passwordService port.PasswordService // Password service / Сервис паролей
	logger          *logger.Logger       // Logger instance / Экземпляр логгера
}

// NewPasswordHandler creates a new PasswordHandler instance.
// NewPasswordHandler создаёт новый экземпляр PasswordHandler.
func NewPasswordHandler(passwordService port.PasswordService, log *logger.Logger) *PasswordHandler {
	return &PasswordHandler{
		passwordService: passwordService,
		logger:          log.WithComponent("password_handler"),
	}
}

// GenerateCodeRequest represents the forgot-password request body.
// GenerateCodeRequest представляет тело запроса на восстановление пароля.
type GenerateCodeRequest struct {
	Email string `json:"email" binding:"required,email"` // Account email / Email аккаунта
}

// GenerateCode handles POST /generate-code.
// GenerateCode обрабатывает POST /generate-code.
//
// Emails a fresh reset code and returns the account id for the verify step.
// Отправляет новый код сброса по почте и возвращает id аккаунта для шага проверки.
// @Summary Generate reset code
// @Description Create a password reset code and email it
// @Tags password
// @Accept json
// @Produce json
// @Param request body GenerateCodeRequest true "Account email"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /generate-code [post]
func (h *PasswordHandler) GenerateCode(c *gin.Context) {
	var req GenerateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Todos los campos son obligatorios")
		return
	}

	userID, err := h.passwordService.GenerateCode(c.Request.Context(), req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.WithPayload(c, http.StatusCreated, "Revisa tu correo electrónico", gin.H{
		"userId": userID,
	})
}

// VerifyCodeRequest represents the reset-code verification request body.
// VerifyCodeRequest представляет тело запроса проверки кода сброса.
type VerifyCodeRequest struct {
	UserID   int64  `json:"userId" binding:"required"`         // Account id / Id аккаунта
	Code     string `json:"code" binding:"required,len=6"`     // Reset code / Код сброса
	Password string `json:"password" binding:"required,min=8"` // New password / Новый пароль
}

// VerifyCode handles POST /verify-code.
// VerifyCode обрабатывает POST /verify-code.
//
// Consumes the reset code, sets the new password and revokes all sessions.
// Потребляет код сброса, устанавливает новый пароль и отзывает все сессии.
// @Summary Verify reset code
// @Description Consume a reset code and set the new password
// @Tags password
// @Accept json
// @Produce json
// @Param request body VerifyCodeRequest true "Reset data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /verify-code [post]
func (h *PasswordHandler) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
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

	if err := h.passwordService.VerifyCode(c.Request.Context(), req.UserID, req.Code, req.Password); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Contraseña actualizada correctamente")
}

// ChangePasswordRequest represents the authenticated password change body.
// ChangePasswordRequest представляет тело аутентифицированной смены пароля.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`   // Current password / Текущий пароль
	NewPassword     string `json:"newPassword" binding:"required,min=8"` // New password / Новый пароль
}

// ChangePassword handles PATCH /change-password.
// ChangePassword обрабатывает PATCH /change-password.
// @Summary Change password
// @Description Change the password of the authenticated user
// @Tags password
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Password change data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /change-password [patch]
func (h *PasswordHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Todos los campos son obligatorios")
		return
	}

	// Validate password complexity / Проверяем сложность пароля
	if result := validator.ValidatePassword(req.NewPassword); !result.Valid {
		response.ValidationError(c, "La contraseña no cumple los requisitos de seguridad", map[string]interface{}{
			"errors": result.Errors,
		})
		return
	}

	userID := c.GetInt64(middleware.ContextUserIDKey)
	if err := h.passwordService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Contraseña actualizada correctamente")
}
