// Package middleware provides HTTP middleware components for the Gin framework.
// Пакет middleware предоставляет компоненты HTTP middleware для фреймворка Gin.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/andrewhigh08/account-service/internal/adapter/http/response"
	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
)

// Context keys set by the authentication middleware.
// Ключи контекста, устанавливаемые middleware аутентификации.
const (
	// ContextUserIDKey holds the authenticated user's ID.
	// ContextUserIDKey содержит ID аутентифицированного пользователя.
	ContextUserIDKey = "user_id"

	// ContextTokenJTIKey holds the jti of the presented access token.
	// ContextTokenJTIKey содержит jti предъявленного access токена.
	ContextTokenJTIKey = "token_jti"
)

// Authenticated returns JWT authentication middleware.
// Authenticated возвращает middleware для JWT аутентификации.
//
// Validates the "Authorization: Bearer <token>" header against the access
// secret and stores the user ID and token jti in the Gin context.
// Валидирует заголовок "Authorization: Bearer <token>" по access секрету
// и сохраняет ID пользователя и jti токена в контексте Gin.
func Authenticated(authService port.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			response.Unauthorized(c, "Token inválido")
			c.Abort()
			return
		}

		claims, err := authService.VerifyAccessToken(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		// Set user info in context / Устанавливаем информацию о пользователе в контекст
		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextTokenJTIKey, claims.ID)

		// Add user ID to logger context / Добавляем ID пользователя в контекст логгера
		ctx := logger.WithUserIDContext(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles returns authorization middleware gating a route group by role.
// RequireRoles возвращает middleware авторизации, ограничивающий группу маршрутов по ролям.
//
// Must run after Authenticated. The user's current role is resolved from the
// database on every request so a role change takes effect without re-login.
// Должен выполняться после Authenticated. Текущая роль пользователя
// определяется из базы на каждом запросе, поэтому смена роли действует
// без повторного входа.
func RequireRoles(userRepo port.UserRepository, allowedRoleIDs ...int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64(ContextUserIDKey)
		if userID == 0 {
			RecordRoleCheck(false)
			response.Forbidden(c, "Acceso denegado")
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			RecordRoleCheck(false)
			if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeNotFound {
				response.NotFound(c, "No existe usuario asociado")
			} else {
				response.Error(c, err)
			}
			c.Abort()
			return
		}

		if !user.Activated {
			RecordRoleCheck(false)
			response.Forbidden(c, "Usuario inactivo")
			c.Abort()
			return
		}

		for _, roleID := range allowedRoleIDs {
			if user.RoleID == roleID {
				RecordRoleCheck(true)
				c.Next()
				return
			}
		}

		RecordRoleCheck(false)
		response.Forbidden(c, "Acceso denegado")
		c.Abort()
	}
}

// BearerToken extracts the token from the Authorization header.
// BearerToken извлекает токен из заголовка Authorization.
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
