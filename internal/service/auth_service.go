// Package service contains the business logic layer of the application.
// Пакет service содержит слой бизнес-логики приложения.
//
// Services implement the business rules and orchestrate operations
// between repositories and other components.
// Сервисы реализуют бизнес-правила и координируют операции
// между репозиториями и другими компонентами.
package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
)

// AuthService implements port.AuthService interface.
// AuthService реализует интерфейс port.AuthService.
//
// Provides sign-in, refresh token rotation and sign-out on top of the
// session ledger kept in PostgreSQL.
// Предоставляет вход, ротацию refresh токенов и выход на основе
// журнала сессий, хранящегося в PostgreSQL.
type AuthService struct {
	userRepo         port.UserRepository    // User repository / Репозиторий пользователей
	sessionRepo      port.SessionRepository // Session ledger / Журнал сессий
	tokens           port.TokenIssuer       // Token issuer / Эмитент токенов
	auditService     port.AuditService      // Audit service for logging / Сервис аудита для логирования
	rateLimitCache   port.RateLimitCache    // Rate limit cache for login attempts / Кэш ограничений для попыток входа
	maxLoginAttempts int                    // Max failed login attempts before lockout / Макс. неудачных попыток до блокировки
	lockoutDuration  time.Duration          // Duration of account lockout / Длительность блокировки аккаунта
	logger           *logger.Logger         // Logger instance / Экземпляр логгера
}

// AuthServiceConfig holds configuration for AuthService.
// AuthServiceConfig содержит конфигурацию для AuthService.
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Max failed login attempts before lockout / Макс. неудачных попыток до блокировки
	LockoutDuration  time.Duration // Duration of account lockout / Длительность блокировки аккаунта
}

// DefaultAuthServiceConfig returns default configuration.
// DefaultAuthServiceConfig возвращает конфигурацию по умолчанию.
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,                // 5 attempts / 5 попыток
		LockoutDuration:  15 * time.Minute, // 15 minutes / 15 минут
	}
}

// NewAuthService creates a new AuthService instance.
// NewAuthService создаёт новый экземпляр AuthService.
func NewAuthService(
	userRepo port.UserRepository,
	sessionRepo port.SessionRepository,
	tokens port.TokenIssuer,
	auditService port.AuditService,
	rateLimitCache port.RateLimitCache,
	config AuthServiceConfig,
	log *logger.Logger,
) *AuthService {
	maxLoginAttempts := config.MaxLoginAttempts
	if maxLoginAttempts == 0 {
		maxLoginAttempts = 5 // Default 5 attempts / По умолчанию 5 попыток
	}
	lockoutDuration := config.LockoutDuration
	if lockoutDuration == 0 {
		lockoutDuration = 15 * time.Minute // Default 15 minutes / По умолчанию 15 минут
	}

	return &AuthService{
		userRepo:         userRepo,
		sessionRepo:      sessionRepo,
		tokens:           tokens,
		auditService:     auditService,
		rateLimitCache:   rateLimitCache,
		maxLoginAttempts: maxLoginAttempts,
		lockoutDuration:  lockoutDuration,
		logger:           log.WithComponent("auth_service"),
	}
}

// SignIn authenticates a user and returns a JWT token pair.
// SignIn аутентифицирует пользователя и возвращает пару JWT токенов.
//
// Unknown email and wrong password map to the same generic message so the
// endpoint cannot be used to enumerate accounts.
// Неизвестный email и неверный пароль дают одно и то же общее сообщение,
// чтобы эндпоинт нельзя было использовать для перебора аккаунтов.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*port.TokenPair, error) {
	log := s.logger.WithContext(ctx)

	// Check if the account is locked due to too many failed attempts
	// Проверяем, заблокирован ли аккаунт из-за множества неудачных попыток
	lockoutKey := s.getLockoutKey(email)
	if locked, lockErr := s.isAccountLocked(ctx, lockoutKey); lockErr != nil {
		log.Warn("failed to check account lockout", "email", email, "error", lockErr)
	} else if locked {
		log.LogAuthAttempt(email, false, "account locked due to too many failed attempts")
		s.logAuditEvent(ctx, 0, domain.AuditActionLoginLocked, email, map[string]interface{}{
			"reason": "too_many_failed_attempts",
		})
		return nil, apperror.TooManyRequests("Demasiados intentos fallidos. Intente de nuevo más tarde", int(s.lockoutDuration.Seconds()))
	}

	// Find user by email / Ищем пользователя по email
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		// Count the attempt even for non-existent users to prevent enumeration
		// Считаем попытку даже для несуществующих пользователей против перебора
		s.recordFailedLoginAttempt(ctx, lockoutKey, email)
		log.LogAuthAttempt(email, false, "user not found")
		s.logAuditEvent(ctx, 0, domain.AuditActionLoginFailed, email, map[string]interface{}{
			"reason": "user_not_found",
		})
		return nil, apperror.Unauthorized("Credenciales inválidas")
	}

	// Only activated accounts may sign in. Checked before the password so an
	// unactivated account answers the same way whatever the password is.
	// Входить могут только активированные аккаунты. Проверяется до пароля,
	// чтобы неактивированный аккаунт отвечал одинаково при любом пароле.
	if !user.Activated {
		log.LogAuthAttempt(email, false, "user not activated")
		s.logAuditEvent(ctx, user.ID, domain.AuditActionLoginFailed, email, map[string]interface{}{
			"reason": "user_not_activated",
		})
		return nil, apperror.Forbidden("Usuario inactivo")
	}

	// Verify password / Проверяем пароль
	if bcryptErr := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); bcryptErr != nil {
		s.recordFailedLoginAttempt(ctx, lockoutKey, email)
		log.LogAuthAttempt(email, false, "invalid password")
		s.logAuditEvent(ctx, user.ID, domain.AuditActionLoginFailed, email, map[string]interface{}{
			"reason": "invalid_password",
		})
		return nil, apperror.Unauthorized("Credenciales inválidas")
	}

	// Reset failed login attempts on successful authentication
	// Сбрасываем счётчик неудачных попыток при успешной аутентификации
	if resetErr := s.rateLimitCache.Reset(ctx, lockoutKey); resetErr != nil {
		log.Warn("failed to reset login attempts counter", "email", email, "error", resetErr)
	}

	tokens, err := s.issueSession(ctx, user.ID)
	if err != nil {
		log.Error("failed to issue session", "user_id", user.ID, "error", err)
		return nil, apperror.Internal("No fue posible iniciar sesión", err)
	}

	s.logAuditEvent(ctx, user.ID, domain.AuditActionLoginSuccess, email, nil)

	log.LogAuthAttempt(email, true, "login successful")
	return tokens, nil
}

// Refresh rotates a refresh token and returns a fresh token pair.
// Refresh ротирует refresh токен и возвращает свежую пару токенов.
//
// The old session is revoked and a new one is inserted; presenting an
// already revoked token is treated as reuse and rejected.
// Старая сессия отзывается и вставляется новая; предъявление уже
// отозванного токена считается повторным использованием и отклоняется.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*port.TokenPair, error) {
	log := s.logger.WithContext(ctx)

	// Verify signature and expiry / Проверяем подпись и срок действия
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		log.Warn("refresh token failed verification", "error", err)
		return nil, err
	}

	// Load user / Загружаем пользователя
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		log.Warn("user not found for refresh token", "user_id", claims.UserID)
		return nil, err
	}
	if !user.Activated {
		log.Warn("inactive user tried to refresh token", "user_id", user.ID)
		return nil, apperror.Forbidden("Usuario inactivo")
	}

	// Find the session by token value / Находим сессию по значению токена
	session, err := s.sessionRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeNotFound {
			return nil, apperror.Unauthorized("Sesión no encontrada")
		}
		return nil, err
	}

	// The session must still carry the JTI minted with this token
	// Сессия должна по-прежнему нести JTI, выпущенный с этим токеном
	if session.JTI != claims.ID {
		log.Warn("refresh token JTI does not match its session", "user_id", user.ID, "session_id", session.ID)
		return nil, apperror.Unauthorized("Token inválido")
	}

	// A revoked session means this token was already rotated or signed out
	// Отозванная сессия означает, что токен уже был ротирован или закрыт
	revoked, err := s.sessionRepo.IsRevoked(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		log.Warn("revoked refresh token presented again", "user_id", user.ID, "session_id", session.ID)
		s.logAuditEvent(ctx, user.ID, domain.AuditActionTokenReuse, fmt.Sprintf("%d", session.ID), map[string]interface{}{
			"session_id": session.ID,
		})
		return nil, apperror.BadRequest("Token inválido")
	}

	// Rotate: revoke the old session, issue a new one
	// Ротируем: отзываем старую сессию, выпускаем новую
	if err := s.sessionRepo.Revoke(ctx, session.ID); err != nil {
		log.Error("failed to revoke rotated session", "session_id", session.ID, "error", err)
		return nil, err
	}

	tokens, err := s.issueSession(ctx, user.ID)
	if err != nil {
		log.Error("failed to issue rotated session", "user_id", user.ID, "error", err)
		return nil, apperror.Internal("No fue posible renovar el token", err)
	}

	s.logAuditEvent(ctx, user.ID, domain.AuditActionTokenRefresh, fmt.Sprintf("%d", session.ID), nil)

	log.Info("refresh token rotated", "user_id", user.ID)
	return tokens, nil
}

// SignOut revokes the session behind a refresh token.
// SignOut отзывает сессию, стоящую за refresh токеном.
func (s *AuthService) SignOut(ctx context.Context, refreshToken string) error {
	log := s.logger.WithContext(ctx)

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return err
	}

	session, err := s.sessionRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeNotFound {
			return apperror.Unauthorized("Sesión no encontrada")
		}
		return err
	}

	revoked, err := s.sessionRepo.IsRevoked(ctx, session.ID)
	if err != nil {
		return err
	}
	if revoked {
		return apperror.BadRequest("La sesión ya estaba cerrada")
	}

	if err := s.sessionRepo.Revoke(ctx, session.ID); err != nil {
		log.Error("failed to revoke session", "session_id", session.ID, "error", err)
		return err
	}

	s.logAuditEvent(ctx, claims.UserID, domain.AuditActionLogout, fmt.Sprintf("%d", session.ID), nil)

	log.Info("user signed out", "user_id", claims.UserID)
	return nil
}

// VerifyAccessToken validates an access token and returns its claims.
// VerifyAccessToken проверяет access токен и возвращает его claims.
func (s *AuthService) VerifyAccessToken(_ context.Context, tokenString string) (*port.Claims, error) {
	return s.tokens.VerifyAccess(tokenString)
}

// RevokeAllSessions revokes every live session of a user.
// RevokeAllSessions отзывает все активные сессии пользователя.
// Called after a password reset so stolen refresh tokens die with it.
// Вызывается после сброса пароля, чтобы украденные refresh токены умерли вместе с ним.
func (s *AuthService) RevokeAllSessions(ctx context.Context, userID int64) error {
	return s.sessionRepo.RevokeAllForUser(ctx, userID)
}

// issueSession mints a token pair and records its session row.
// issueSession выпускает пару токенов и записывает строку её сессии.
func (s *AuthService) issueSession(ctx context.Context, userID int64) (*port.TokenPair, error) {
	tokens, jti, err := s.tokens.IssuePair(userID)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		UserID: userID,
		Token:  tokens.RefreshToken,
		JTI:    jti,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return tokens, nil
}

// getLockoutKey generates a cache key for login attempt tracking.
// getLockoutKey генерирует ключ кэша для отслеживания попыток входа.
func (s *AuthService) getLockoutKey(email string) string {
	return "login_attempts:" + email
}

// isAccountLocked checks if an account is locked due to too many failed attempts.
// isAccountLocked проверяет, заблокирован ли аккаунт из-за множества неудачных попыток.
func (s *AuthService) isAccountLocked(ctx context.Context, lockoutKey string) (bool, error) {
	count, err := s.rateLimitCache.GetCount(ctx, lockoutKey)
	if err != nil {
		return false, err
	}
	return count >= int64(s.maxLoginAttempts), nil
}

// recordFailedLoginAttempt increments the failed login attempt counter.
// recordFailedLoginAttempt увеличивает счётчик неудачных попыток входа.
func (s *AuthService) recordFailedLoginAttempt(ctx context.Context, lockoutKey, email string) {
	log := s.logger.WithContext(ctx)
	count, err := s.rateLimitCache.Increment(ctx, lockoutKey, s.lockoutDuration)
	if err != nil {
		log.Warn("failed to increment login attempts counter", "email", email, "error", err)
		return
	}
	if count >= int64(s.maxLoginAttempts) {
		log.Warn("account locked due to too many failed login attempts", "email", email, "attempts", count)
	}
}

// logAuditEvent logs an authentication event to the audit log.
// logAuditEvent записывает событие аутентификации в аудит-лог.
func (s *AuthService) logAuditEvent(ctx context.Context, userID int64, action, resourceID string, details map[string]interface{}) {
	if s.auditService == nil {
		return
	}
	if err := s.auditService.LogAction(ctx, userID, action, domain.AuditResourceTypeAuth, resourceID, details); err != nil {
		s.logger.WithContext(ctx).Warn("failed to log audit event", "action", action, "error", err)
	}
}
