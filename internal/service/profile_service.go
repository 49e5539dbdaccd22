package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
)

// allowedAvatarExtensions lists the accepted avatar file extensions.
// allowedAvatarExtensions перечисляет допустимые расширения файлов аватара.
var allowedAvatarExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// ProfileService implements port.ProfileService interface.
// ProfileService реализует интерфейс port.ProfileService.
//
// Serves the caller's own profile and stores avatar uploads on local disk.
// Обслуживает собственный профиль вызывающего и сохраняет загруженные
// аватары на локальный диск.
type ProfileService struct {
	userRepo     port.UserRepository    // User repository / Репозиторий пользователей
	profileRepo  port.ProfileRepository // Profile repository / Репозиторий профилей
	avatarDir    string                 // Avatar storage directory / Директория хранения аватаров
	maxSizeBytes int64                  // Max upload size in bytes / Макс. размер загрузки в байтах
	logger       *logger.Logger         // Logger instance / Экземпляр логгера
}

// NewProfileService creates a new ProfileService instance.
// NewProfileService создаёт новый экземпляр ProfileService.
func NewProfileService(
	userRepo port.UserRepository,
	profileRepo port.ProfileRepository,
	avatarDir string,
	maxSizeBytes int64,
	log *logger.Logger,
) *ProfileService {
	return &ProfileService{
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		avatarDir:    avatarDir,
		maxSizeBytes: maxSizeBytes,
		logger:       log.WithComponent("profile_service"),
	}
}

// GetProfile retrieves the caller's profile joined with account data.
// GetProfile получает профиль вызывающего вместе с данными аккаунта.
func (s *ProfileService) GetProfile(ctx context.Context, userID int64) (*domain.User, *domain.Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	return user, profile, nil
}

// UpdateProfile updates the caller's profile fields.
// UpdateProfile обновляет поля профиля вызывающего.
//
// Only the personal data fields are writable; the avatar is managed by
// SaveAvatar and the account fields by the admin endpoints.
// Записываются только поля персональных данных; аватаром управляет
// SaveAvatar, а полями аккаунта - административные эндпоинты.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int64, profile *domain.Profile) error {
	log := s.logger.WithContext(ctx)

	current, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}

	current.FirstName = profile.FirstName
	current.MiddleName = profile.MiddleName
	current.LastName = profile.LastName
	current.SecondLastName = profile.SecondLastName
	current.DNIType = profile.DNIType
	current.DNI = profile.DNI
	current.Prefix = profile.Prefix
	current.Mobile = profile.Mobile

	if err := s.profileRepo.Update(ctx, current); err != nil {
		log.Error("failed to update profile", "user_id", userID, "error", err)
		return err
	}

	log.Info("profile updated", "user_id", userID)
	return nil
}

// SaveAvatar stores an uploaded avatar image and removes the previous one.
// SaveAvatar сохраняет загруженный аватар и удаляет предыдущий.
func (s *ProfileService) SaveAvatar(ctx context.Context, userID int64, fileName string, data []byte) error {
	log := s.logger.WithContext(ctx)

	if int64(len(data)) > s.maxSizeBytes {
		return apperror.BadRequest("La imagen supera el tamaño máximo permitido")
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedAvatarExtensions[ext] {
		return apperror.BadRequest("Formato de imagen no permitido")
	}

	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.avatarDir, 0o750); err != nil {
		log.Error("failed to create avatar directory", "dir", s.avatarDir, "error", err)
		return apperror.Internal("No fue posible guardar la imagen", err)
	}

	newName := fmt.Sprintf("User-%d-Avatar-%s%s", userID, uuid.NewString(), ext)
	if err := os.WriteFile(filepath.Join(s.avatarDir, newName), data, 0o640); err != nil {
		log.Error("failed to write avatar file", "user_id", userID, "error", err)
		return apperror.Internal("No fue posible guardar la imagen", err)
	}

	previous := profile.Avatar
	profile.Avatar = &newName
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		// Roll back the orphaned file / Откатываем осиротевший файл
		_ = os.Remove(filepath.Join(s.avatarDir, newName))
		return err
	}

	if previous != nil && *previous != "" {
		if rmErr := os.Remove(filepath.Join(s.avatarDir, *previous)); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warn("failed to remove previous avatar", "user_id", userID, "error", rmErr)
		}
	}

	log.Info("avatar saved", "user_id", userID, "file", newName)
	return nil
}

// AvatarPath returns the on-disk path of the caller's avatar.
// AvatarPath возвращает путь к аватару вызывающего на диске.
func (s *ProfileService) AvatarPath(ctx context.Context, userID int64) (string, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return "", err
	}

	if profile.Avatar == nil || *profile.Avatar == "" {
		return "", apperror.NotFound("Avatar no encontrado")
	}

	return filepath.Join(s.avatarDir, *profile.Avatar), nil
}
