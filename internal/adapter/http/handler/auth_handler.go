// Package handler provides HTTP request handlers for the account service.
// Пакет handler предоставляет обработчики HTTP запросов для сервиса аккаунтов.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andrewhigh08/account-service/internal/adapter/http/middleware"
	"github.com/andrewhigh08/account-service/internal/adapter/http/response"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
)

// AuthHandler handles authentication-related HTTP requests.
// AuthHandler обрабатывает HTTP запросы, связанные с аутентификацией.
//
// Provides endpoints for sign-in, refresh token rotation and sign-out.
// Предоставляет эндпоинты входа, ротации refresh токена и выхода.
type AuthHandler struct {
	authService port.AuthService // Authentication service / Сервис аутентификации
	logger      *logger.Logger   // Logger instance / Экземпляр логгера
}

// NewAuthHandler creates a new AuthHandler instance.
// NewAuthHandler создаёт новый экземпляр AuthHandler.
func NewAuthHandler(authService port.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      log.WithComponent("auth_handler"),
	}
}

// SignInRequest represents the sign-in request body.
// SignInRequest представляет тело запроса на вход.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"` // User email / Email пользователя
	Password string `json:"password" binding:"required"`    // User password / Пароль пользователя
}

// SignIn handles POST /sign-in.
// SignIn обрабатывает POST /sign-in.
// @Summary Sign in
// @Description Authenticate a user and open a new session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /sign-in [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Todos los campos son obligatorios")
		return
	}

	pair, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.RecordAuthAttempt(false)
		response.Error(c, err)
		return
	}

	middleware.RecordAuthAttempt(true)
	response.WithPayload(c, http.StatusOK, "Inicio de sesión satisfactorio", gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// RefreshRequest represents the refresh token request body.
// RefreshRequest представляет тело запроса на обновление токена.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"` // Refresh token / Refresh токен
}

// Refresh handles POST /refresh-token.
// Refresh обрабатывает POST /refresh-token.
//
// Rotates the presented refresh token: the old session is revoked and a new
// access/refresh pair is issued.
// Ротирует предъявленный refresh токен: старая сессия отзывается и
// выпускается новая пара access/refresh.
// @Summary Refresh token
// @Description Rotate a refresh token into a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /refresh-token [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Todos los campos son obligatorios")
		return
	}

	// An absent token is an authentication failure, not a malformed request
	// Отсутствующий токен считается ошибкой аутентификации, а не запроса
	if req.RefreshToken == "" {
		response.Unauthorized(c, "Token no proporcionado")
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.WithPayload(c, http.StatusCreated, "Token renovado satisfactoriamente", gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// SignOut handles POST /sign-out.
// SignOut обрабатывает POST /sign-out.
//
// The refresh token travels in the Authorization header; its session is
// revoked so the token cannot be rotated again.
// Refresh токен передаётся в заголовке Authorization; его сессия
// отзывается, и токен больше нельзя ротировать.
// @Summary Sign out
// @Description Revoke the session of the presented refresh token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /sign-out [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	token, ok := middleware.BearerToken(c)
	if !ok {
		response.Unauthorized(c, "Token inválido")
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sesión cerrada satisfactoriamente")
}
