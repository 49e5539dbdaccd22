package service

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
)

// RegistrationService implements port.RegistrationService interface.
// RegistrationService реализует интерфейс port.RegistrationService.
//
// Handles self sign-up: user plus profile are created atomically with the
// account deactivated, and an activation link is mailed to the new address.
// Обрабатывает самостоятельную регистрацию: пользователь и профиль создаются
// атомарно с деактивированным аккаунтом, а на новый адрес отправляется
// ссылка активации.
type RegistrationService struct {
	userRepo       port.UserRepository       // User repository / Репозиторий пользователей
	profileRepo    port.ProfileRepository    // Profile repository / Репозиторий профилей
	activationRepo port.ActivationRepository // Activation token rows / Строки токенов активации
	tx             port.Transaction          // Transaction manager / Менеджер транзакций
	tokens         port.TokenIssuer          // Token issuer / Эмитент токенов
	mailer         port.Mailer               // Outbound mail / Исходящая почта
	auditService   port.AuditService         // Audit service / Сервис аудита
	defaultRoleID  int64                     // Role assigned to self-registered users / Роль самозарегистрированных пользователей
	apiURL         string                    // Public base URL for activation links / Публичный базовый URL для ссылок активации
	logger         *logger.Logger            // Logger instance / Экземпляр логгера
}

// NewRegistrationService creates a new RegistrationService instance.
// NewRegistrationService создаёт новый экземпляр RegistrationService.
func NewRegistrationService(
	userRepo port.UserRepository,
	profileRepo port.ProfileRepository,
	activationRepo port.ActivationRepository,
	tx port.Transaction,
	tokens port.TokenIssuer,
	mailer port.Mailer,
	auditService port.AuditService,
	defaultRoleID int64,
	apiURL string,
	log *logger.Logger,
) *RegistrationService {
	return &RegistrationService{
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		activationRepo: activationRepo,
		tx:             tx,
		tokens:         tokens,
		mailer:         mailer,
		auditService:   auditService,
		defaultRoleID:  defaultRoleID,
		apiURL:         apiURL,
		logger:         log.WithComponent("registration_service"),
	}
}

// Register creates a deactivated user with its profile and mails the
// activation link.
// Register создаёт деактивированного пользователя с его профилем и
// отправляет ссылку активации по почте.
//
// A mail delivery failure is logged but does not undo the registration.
// Сбой доставки письма логируется, но не откатывает регистрацию.
func (s *RegistrationService) Register(ctx context.Context, req *port.RegisterRequest) error {
	log := s.logger.WithContext(ctx)

	// Duplicate email is a client error, not a conflict, on this endpoint
	// Дублирующийся email на этом эндпоинте считается ошибкой клиента
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if exists {
		return apperror.BadRequest("El usuario ya existe")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return apperror.Internal("No fue posible registrar el usuario", err)
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Activated:    false,
		RoleID:       s.defaultRoleID,
	}

	var activationToken string

	err = s.tx.WithTransaction(ctx, func(tx *gorm.DB) error {
		if txErr := s.userRepo.CreateTx(ctx, tx, user); txErr != nil {
			return txErr
		}

		profile := &domain.Profile{
			UserID:         user.ID,
			FirstName:      req.FirstName,
			MiddleName:     req.MiddleName,
			LastName:       req.LastName,
			SecondLastName: req.SecondLastName,
			DNIType:        req.DNIType,
			DNI:            req.DNI,
			Prefix:         req.Prefix,
			Mobile:         req.Mobile,
		}
		if txErr := s.profileRepo.CreateTx(ctx, tx, profile); txErr != nil {
			return txErr
		}

		token, jti, txErr := s.tokens.IssueActivationToken(user.ID)
		if txErr != nil {
			return fmt.Errorf("failed to issue activation token: %w", txErr)
		}
		activationToken = token

		return s.activationRepo.CreateTx(ctx, tx, &domain.UserActivation{
			UserID: user.ID,
			Token:  token,
			JTI:    jti,
		})
	})
	if err != nil {
		log.Error("registration transaction failed", "email", req.Email, "error", err)
		if _, ok := apperror.AsAppError(err); ok {
			return err
		}
		return apperror.Internal("No fue posible registrar el usuario", err)
	}

	s.sendActivationEmail(ctx, req.Email, req.FirstName, activationToken)

	s.logAudit(ctx, user.ID, domain.AuditActionRegister, req.Email, nil)

	log.Info("user registered", "user_id", user.ID)
	return nil
}

// Activate confirms an account from the emailed activation token.
// Activate подтверждает аккаунт по токену активации из письма.
func (s *RegistrationService) Activate(ctx context.Context, token string) error {
	log := s.logger.WithContext(ctx)

	claims, err := s.tokens.VerifyActivation(token)
	if err != nil {
		return err
	}

	// The token must still be the live one stored for this account
	// Токен должен оставаться действующим токеном, сохранённым для аккаунта
	activation, err := s.activationRepo.FindByJTI(ctx, claims.ID)
	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeNotFound {
			return apperror.Unauthorized("Token inválido")
		}
		return err
	}
	if activation.UserID != claims.UserID {
		return apperror.Unauthorized("Token inválido")
	}

	user, err := s.userRepo.FindByID(ctx, activation.UserID)
	if err != nil {
		return err
	}
	if user.Activated {
		return apperror.Forbidden("La cuenta ya estaba activada")
	}

	user.Activated = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		log.Error("failed to activate user", "user_id", user.ID, "error", err)
		return err
	}

	if err := s.activationRepo.DeleteByUser(ctx, user.ID); err != nil {
		log.Warn("failed to delete activation rows", "user_id", user.ID, "error", err)
	}

	s.logAudit(ctx, user.ID, domain.AuditActionAccountActivated, user.Email, nil)

	log.Info("account activated", "user_id", user.ID)
	return nil
}

// sendActivationEmail mails the activation link to a fresh registration.
// sendActivationEmail отправляет ссылку активации новой регистрации.
func (s *RegistrationService) sendActivationEmail(ctx context.Context, email, firstName, token string) {
	log := s.logger.WithContext(ctx)

	link := fmt.Sprintf("%s/activate?token=%s", s.apiURL, url.QueryEscape(token))
	err := s.mailer.Send(ctx, email, "Activa tu cuenta", activationEmailBody(firstName, link))
	log.LogEmailDelivery(email, "Activa tu cuenta", err)
}

// logAudit logs a registration event to the audit log.
// logAudit записывает событие регистрации в аудит-лог.
func (s *RegistrationService) logAudit(ctx context.Context, userID int64, action, resourceID string, details map[string]interface{}) {
	if s.auditService == nil {
		return
	}
	if err := s.auditService.LogAction(ctx, userID, action, domain.AuditResourceTypeUser, resourceID, details); err != nil {
		s.logger.WithContext(ctx).Warn("failed to log audit event", "action", action, "error", err)
	}
}
