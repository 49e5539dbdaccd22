package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
)

// UserService implements port.UserService interface.
// UserService реализует интерфейс port.UserService.
//
// Administrative user management: here accounts are created already
// activated, unlike self registration.
// Административное управление пользователями: здесь аккаунты создаются
// уже активированными, в отличие от самостоятельной регистрации.
type UserService struct {
	userRepo       port.UserRepository       // User repository / Репозиторий пользователей
	profileRepo    port.ProfileRepository    // Profile repository / Репозиторий профилей
	roleRepo       port.RoleRepository       // Role repository / Репозиторий ролей
	activationRepo port.ActivationRepository // Activation token rows / Строки токенов активации
	tx             port.Transaction          // Transaction manager / Менеджер транзакций
	auditService   port.AuditService         // Audit service / Сервис аудита
	logger         *logger.Logger            // Logger instance / Экземпляр логгера
}

// NewUserService creates a new UserService instance.
// NewUserService создаёт новый экземпляр UserService.
func NewUserService(
	userRepo port.UserRepository,
	profileRepo port.ProfileRepository,
	roleRepo port.RoleRepository,
	activationRepo port.ActivationRepository,
	tx port.Transaction,
	auditService port.AuditService,
	log *logger.Logger,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		roleRepo:       roleRepo,
		activationRepo: activationRepo,
		tx:             tx,
		auditService:   auditService,
		logger:         log.WithComponent("user_service"),
	}
}

// CreateUser creates an already-activated user with its profile.
// CreateUser создаёт уже активированного пользователя с профилем.
func (s *UserService) CreateUser(ctx context.Context, req *port.AdminUserRequest) error {
	log := s.logger.WithContext(ctx)

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if exists {
		return apperror.BadRequest("El usuario ya existe")
	}

	// The assigned role must exist / Назначаемая роль должна существовать
	if _, err := s.roleRepo.FindByID(ctx, req.RoleID); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperror.Internal("No fue posible crear el usuario", err)
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Activated:    true,
		RoleID:       req.RoleID,
	}

	err = s.tx.WithTransaction(ctx, func(tx *gorm.DB) error {
		if txErr := s.userRepo.CreateTx(ctx, tx, user); txErr != nil {
			return txErr
		}
		return s.profileRepo.CreateTx(ctx, tx, &domain.Profile{
			UserID:         user.ID,
			FirstName:      req.FirstName,
			MiddleName:     req.MiddleName,
			LastName:       req.LastName,
			SecondLastName: req.SecondLastName,
			DNIType:        req.DNIType,
			DNI:            req.DNI,
			Prefix:         req.Prefix,
			Mobile:         req.Mobile,
		})
	})
	if err != nil {
		log.Error("failed to create user", "email", req.Email, "error", err)
		if _, ok := apperror.AsAppError(err); ok {
			return err
		}
		return apperror.Internal("No fue posible crear el usuario", err)
	}

	s.logAudit(ctx, user.ID, "user.create", req.Email)

	log.Info("user created by admin", "user_id", user.ID)
	return nil
}

// GetUser retrieves one user joined with its profile.
// GetUser получает одного пользователя вместе с профилем.
func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, *domain.Profile, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	profile, err := s.profileRepo.FindByUserID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return user, profile, nil
}

// UpdateUser updates a user's account and profile fields.
// UpdateUser обновляет поля аккаунта и профиля пользователя.
//
// The password is only replaced when the request carries a new one.
// Пароль заменяется, только если запрос содержит новый.
func (s *UserService) UpdateUser(ctx context.Context, id int64, req *port.AdminUserRequest) (*domain.User, *domain.Profile, error) {
	log := s.logger.WithContext(ctx)

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	profile, err := s.profileRepo.FindByUserID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if req.Email != user.Email {
		exists, existsErr := s.userRepo.ExistsByEmail(ctx, req.Email)
		if existsErr != nil {
			return nil, nil, existsErr
		}
		if exists {
			return nil, nil, apperror.BadRequest("El usuario ya existe")
		}
	}

	if req.RoleID != user.RoleID {
		if _, roleErr := s.roleRepo.FindByID(ctx, req.RoleID); roleErr != nil {
			return nil, nil, roleErr
		}
	}

	user.Email = req.Email
	user.RoleID = req.RoleID
	if req.Password != "" {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, nil, apperror.Internal("No fue posible actualizar el usuario", hashErr)
		}
		user.PasswordHash = string(hash)
	}

	profile.FirstName = req.FirstName
	profile.MiddleName = req.MiddleName
	profile.LastName = req.LastName
	profile.SecondLastName = req.SecondLastName
	profile.DNIType = req.DNIType
	profile.DNI = req.DNI
	profile.Prefix = req.Prefix
	profile.Mobile = req.Mobile

	if err := s.userRepo.Update(ctx, user); err != nil {
		log.Error("failed to update user", "user_id", id, "error", err)
		return nil, nil, err
	}
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		log.Error("failed to update profile", "user_id", id, "error", err)
		return nil, nil, err
	}

	s.logAudit(ctx, id, "user.update", user.Email)

	log.Info("user updated by admin", "user_id", id)
	return user, profile, nil
}

// SetStatus toggles the activated flag and clears pending activations.
// SetStatus переключает флаг активации и очищает ожидающие активации.
func (s *UserService) SetStatus(ctx context.Context, userID int64, activated bool) error {
	log := s.logger.WithContext(ctx)

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	user.Activated = activated
	if err := s.userRepo.Update(ctx, user); err != nil {
		log.Error("failed to set user status", "user_id", userID, "error", err)
		return err
	}

	// An admin decision supersedes any emailed activation link
	// Решение администратора отменяет любую отправленную ссылку активации
	if err := s.activationRepo.DeleteByUser(ctx, userID); err != nil {
		log.Warn("failed to clear pending activations", "user_id", userID, "error", err)
	}

	s.logAudit(ctx, userID, "user.status", fmt.Sprintf("activated=%t", activated))

	log.Info("user status changed", "user_id", userID, "activated", activated)
	return nil
}

// ListUsers retrieves users with profiles, filtered and paginated.
// ListUsers получает пользователей с профилями с фильтрацией и пагинацией.
func (s *UserService) ListUsers(ctx context.Context, filter port.UserFilter) ([]port.UserWithProfile, int64, error) {
	return s.userRepo.List(ctx, filter)
}

// ExportUsers renders every user into an XLSX workbook.
// ExportUsers выгружает всех пользователей в книгу XLSX.
func (s *UserService) ExportUsers(ctx context.Context) ([]byte, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(users))
	for _, u := range users {
		rows = append(rows, []interface{}{
			u.User.ID,
			fullName(&u.Profile),
			u.User.Email,
			strValue(u.Profile.DNIType),
			strValue(u.Profile.DNI),
			strValue(u.Profile.Prefix) + strValue(u.Profile.Mobile),
			u.User.Activated,
			u.User.CreatedAt.Format(time.DateOnly),
		})
	}

	return buildWorkbook(
		"Usuarios",
		[]string{"ID", "Nombre", "Correo", "Tipo de documento", "Documento", "Teléfono", "Activo", "Fecha de registro"},
		rows,
	)
}

// strPtr wraps a literal for the optional profile columns.
// strPtr оборачивает литерал для необязательных колонок профиля.
func strPtr(s string) *string {
	return &s
}

// strValue renders an optional profile column as a cell value.
// strValue отображает необязательную колонку профиля как значение ячейки.
func strValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// fullName joins the present name parts of a profile.
// fullName соединяет присутствующие части имени профиля.
func fullName(p *domain.Profile) string {
	name := p.FirstName
	if p.MiddleName != nil && *p.MiddleName != "" {
		name += " " + *p.MiddleName
	}
	name += " " + p.LastName
	if p.SecondLastName != nil && *p.SecondLastName != "" {
		name += " " + *p.SecondLastName
	}
	return name
}

// buildWorkbook renders a header row plus data rows into a one-sheet XLSX.
// buildWorkbook формирует XLSX с одним листом из заголовка и строк данных.
func buildWorkbook(sheet string, headers []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// logAudit logs an administrative user event to the audit log.
// logAudit записывает административное событие пользователя в аудит-лог.
func (s *UserService) logAudit(ctx context.Context, userID int64, action, resourceID string) {
	if s.auditService == nil {
		return
	}
	if err := s.auditService.LogAction(ctx, userID, action, domain.AuditResourceTypeUser, resourceID, nil); err != nil {
		s.logger.WithContext(ctx).Warn("failed to log audit event", "action", action, "error", err)
	}
}
