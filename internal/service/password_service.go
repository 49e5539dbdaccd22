package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
)

// resetCodeDigits is the width of the emailed reset code.
// resetCodeDigits - разрядность кода сброса, отправляемого по почте.
const resetCodeDigits = 6

// maxCodeGenerationAttempts bounds the retry loop on code collisions.
// maxCodeGenerationAttempts ограничивает цикл повторов при коллизиях кода.
const maxCodeGenerationAttempts = 10

// PasswordService implements port.PasswordService interface.
// PasswordService реализует интерфейс port.PasswordService.
//
// Covers the forgot-password code flow and the authenticated password
// change. A successful reset closes every open session of the account.
// Покрывает поток кода восстановления пароля и аутентифицированную смену
// пароля. Успешный сброс закрывает все открытые сессии аккаунта.
type PasswordService struct {
	userRepo     port.UserRepository          // User repository / Репозиторий пользователей
	resetRepo    port.PasswordResetRepository // Reset code rows / Строки кодов сброса
	sessionRepo  port.SessionRepository       // Session ledger / Журнал сессий
	mailer       port.Mailer                  // Outbound mail / Исходящая почта
	auditService port.AuditService            // Audit service / Сервис аудита
	codeTTL      time.Duration                // Reset code lifetime / Время жизни кода сброса
	logger       *logger.Logger               // Logger instance / Экземпляр логгера
}

// NewPasswordService creates a new PasswordService instance.
// NewPasswordService создаёт новый экземпляр PasswordService.
func NewPasswordService(
	userRepo port.UserRepository,
	resetRepo port.PasswordResetRepository,
	sessionRepo port.SessionRepository,
	mailer port.Mailer,
	auditService port.AuditService,
	codeTTL time.Duration,
	log *logger.Logger,
) *PasswordService {
	if codeTTL == 0 {
		codeTTL = 15 * time.Minute // Default 15 minutes / По умолчанию 15 минут
	}
	return &PasswordService{
		userRepo:     userRepo,
		resetRepo:    resetRepo,
		sessionRepo:  sessionRepo,
		mailer:       mailer,
		auditService: auditService,
		codeTTL:      codeTTL,
		logger:       log.WithComponent("password_service"),
	}
}

// GenerateCode creates a reset code for the account, emails it and returns
// the account id.
// GenerateCode создаёт код сброса для аккаунта, отправляет его по почте
// и возвращает id аккаунта.
//
// Issuing a new code invalidates any previously issued live codes for the
// same account.
// Выпуск нового кода аннулирует ранее выпущенные действующие коды того же
// аккаунта.
func (s *PasswordService) GenerateCode(ctx context.Context, email string) (int64, error) {
	log := s.logger.WithContext(ctx)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return 0, err
	}

	// One live code per user / Один действующий код на пользователя
	if err := s.resetRepo.DeleteByUser(ctx, user.ID); err != nil {
		return 0, err
	}

	code, err := s.generateUniqueCode(ctx)
	if err != nil {
		log.Error("failed to generate reset code", "user_id", user.ID, "error", err)
		return 0, apperror.Internal("No fue posible generar el código", err)
	}

	resetCode := &domain.PasswordResetCode{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(s.codeTTL),
	}
	if err := s.resetRepo.Create(ctx, resetCode); err != nil {
		return 0, err
	}

	subject := "Código de recuperación de contraseña"
	mailErr := s.mailer.Send(ctx, user.Email, subject, resetCodeEmailBody(code, int(s.codeTTL.Minutes())))
	log.LogEmailDelivery(user.Email, subject, mailErr)

	log.Info("password reset code issued", "user_id", user.ID)
	return user.ID, nil
}

// VerifyCode consumes a reset code and sets the new password.
// VerifyCode потребляет код сброса и устанавливает новый пароль.
//
// On success every open session of the account is revoked so any stolen
// refresh token dies with the old password.
// При успехе все открытые сессии аккаунта отзываются, чтобы украденный
// refresh токен умер вместе со старым паролем.
func (s *PasswordService) VerifyCode(ctx context.Context, userID int64, code, newPassword string) error {
	log := s.logger.WithContext(ctx)

	resetCode, err := s.resetRepo.FindByUserAndCode(ctx, userID, code)
	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeNotFound {
			return apperror.BadRequest("Código inválido")
		}
		return err
	}

	// Expiry is checked at verification time, not by a background sweep
	// Срок действия проверяется в момент верификации, а не фоновой очисткой
	if time.Now().After(resetCode.ExpiresAt) {
		if delErr := s.resetRepo.Delete(ctx, resetCode.ID); delErr != nil {
			log.Warn("failed to delete expired reset code", "user_id", userID, "error", delErr)
		}
		return apperror.BadRequest("Código expirado")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.setPassword(ctx, user, newPassword); err != nil {
		return err
	}

	if err := s.resetRepo.DeleteByUser(ctx, userID); err != nil {
		log.Warn("failed to delete consumed reset codes", "user_id", userID, "error", err)
	}

	if err := s.sessionRepo.RevokeAllForUser(ctx, userID); err != nil {
		log.Error("failed to revoke sessions after password reset", "user_id", userID, "error", err)
		return err
	}

	subject := "Tu contraseña fue actualizada"
	mailErr := s.mailer.Send(ctx, user.Email, subject, passwordChangedEmailBody())
	log.LogEmailDelivery(user.Email, subject, mailErr)

	s.logAudit(ctx, userID, domain.AuditActionPasswordReset, user.Email)

	log.Info("password reset completed", "user_id", userID)
	return nil
}

// ChangePassword changes the password of an authenticated user.
// ChangePassword меняет пароль аутентифицированного пользователя.
func (s *PasswordService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	log := s.logger.WithContext(ctx)

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcryptErr := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); bcryptErr != nil {
		return apperror.Unauthorized("Contraseña actual incorrecta")
	}

	if err := s.setPassword(ctx, user, newPassword); err != nil {
		return err
	}

	subject := "Tu contraseña fue actualizada"
	mailErr := s.mailer.Send(ctx, user.Email, subject, passwordChangedEmailBody())
	log.LogEmailDelivery(user.Email, subject, mailErr)

	s.logAudit(ctx, userID, domain.AuditActionPasswordChange, user.Email)

	log.Info("password changed", "user_id", userID)
	return nil
}

// setPassword rejects a password equal to the current one, then stores
// its bcrypt hash.
// setPassword отклоняет пароль, равный текущему, затем сохраняет его
// bcrypt хэш.
func (s *PasswordService) setPassword(ctx context.Context, user *domain.User, newPassword string) error {
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(newPassword)) == nil {
		return apperror.BadRequest("La contraseña es igual a la anterior")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperror.Internal("No fue posible actualizar la contraseña", err)
	}

	user.PasswordHash = string(hash)
	return s.userRepo.Update(ctx, user)
}

// generateUniqueCode draws fixed-width numeric codes until one not already
// live is found.
// generateUniqueCode генерирует числовые коды фиксированной ширины, пока
// не найдётся ещё не занятый.
func (s *PasswordService) generateUniqueCode(ctx context.Context) (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < resetCodeDigits; i++ {
		limit.Mul(limit, big.NewInt(10))
	}

	for attempt := 0; attempt < maxCodeGenerationAttempts; attempt++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		code := fmt.Sprintf("%0*d", resetCodeDigits, n)

		exists, err := s.resetRepo.ExistsByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("exhausted %d attempts to generate a unique code", maxCodeGenerationAttempts)
}

// logAudit logs a password event to the audit log.
// logAudit записывает событие пароля в аудит-лог.
func (s *PasswordService) logAudit(ctx context.Context, userID int64, action, resourceID string) {
	if s.auditService == nil {
		return
	}
	if err := s.auditService.LogAction(ctx, userID, action, domain.AuditResourceTypeUser, resourceID, nil); err != nil {
		s.logger.WithContext(ctx).Warn("failed to log audit event", "action", action, "error", err)
	}
}
