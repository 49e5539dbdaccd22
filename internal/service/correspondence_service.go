package service

import (
	"context"

	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
)

// CorrespondenceService implements port.CorrespondenceService interface.
// CorrespondenceService реализует интерфейс port.CorrespondenceService.
//
// Each profile owns at most one correspondence record; writes are an
// upsert keyed by the caller's profile.
// У каждого профиля не более одной записи корреспонденции; запись
// выполняется как upsert по профилю вызывающего.
type CorrespondenceService struct {
	profileRepo        port.ProfileRepository        // Profile repository / Репозиторий профилей
	correspondenceRepo port.CorrespondenceRepository // Correspondence repository / Репозиторий корреспонденции
	logger             *logger.Logger                // Logger instance / Экземпляр логгера
}

// NewCorrespondenceService creates a new CorrespondenceService instance.
// NewCorrespondenceService создаёт новый экземпляр CorrespondenceService.
func NewCorrespondenceService(
	profileRepo port.ProfileRepository,
	correspondenceRepo port.CorrespondenceRepository,
	log *logger.Logger,
) *CorrespondenceService {
	return &CorrespondenceService{
		profileRepo:        profileRepo,
		correspondenceRepo: correspondenceRepo,
		logger:             log.WithComponent("correspondence_service"),
	}
}

// GetCorrespondence retrieves the caller's mailing address.
// GetCorrespondence получает почтовый адрес вызывающего.
func (s *CorrespondenceService) GetCorrespondence(ctx context.Context, userID int64) (*domain.Correspondence, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.correspondenceRepo.FindByProfileID(ctx, profile.ID)
}

// UpsertCorrespondence creates or replaces the caller's mailing address.
// Returns true when a new record was created.
// UpsertCorrespondence создаёт или заменяет почтовый адрес вызывающего.
// Возвращает true, если была создана новая запись.
func (s *CorrespondenceService) UpsertCorrespondence(ctx context.Context, userID int64, correspondence *domain.Correspondence) (bool, error) {
	log := s.logger.WithContext(ctx)

	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return false, err
	}

	current, err := s.correspondenceRepo.FindByProfileID(ctx, profile.ID)
	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeNotFound {
			correspondence.ProfileID = profile.ID
			if createErr := s.correspondenceRepo.Create(ctx, correspondence); createErr != nil {
				return false, createErr
			}
			log.Info("correspondence created", "user_id", userID, "profile_id", profile.ID)
			return true, nil
		}
		return false, err
	}

	current.CountryID = correspondence.CountryID
	current.DepartmentID = correspondence.DepartmentID
	current.City = correspondence.City
	current.ZipCode = correspondence.ZipCode
	current.Address = correspondence.Address
	current.Observations = correspondence.Observations

	if err := s.correspondenceRepo.Update(ctx, current); err != nil {
		return false, err
	}

	log.Info("correspondence updated", "user_id", userID, "profile_id", profile.ID)
	return false, nil
}
