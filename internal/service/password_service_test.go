package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/service"
)

func newTestPasswordService(
	userRepo *MockUserRepository,
	resetRepo *MockPasswordResetRepository,
	sessionRepo *MockSessionRepository,
	mailer *MockMailer,
) *service.PasswordService {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	return service.NewPasswordService(userRepo, resetRepo, sessionRepo, mailer, newPermissiveAuditService(), 15*time.Minute, log)
}

func TestPasswordService_GenerateCode_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	resetRepo := new(MockPasswordResetRepository)
	sessionRepo := new(MockSessionRepository)
	mailer := new(MockMailer)

	passwordService := newTestPasswordService(userRepo, resetRepo, sessionRepo, mailer)

	userRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&domain.User{
		ID:    1,
		Email: "test@example.com",
	}, nil)
	resetRepo.On("DeleteByUser", mock.Anything, int64(1)).Return(nil)
	resetRepo.On("ExistsByCode", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	resetRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.PasswordResetCode) bool {
		return c.UserID == 1 && len(c.Code) == 6 && c.ExpiresAt.After(time.Now())
	})).Return(nil)
	mailer.On("Send", mock.Anything, "test@example.com", mock.Anything, mock.Anything).Return(nil)

	userID, err := passwordService.GenerateCode(context.Background(), "test@example.com")

	require.NoError(t, err)
	assert.Equal(t, int64(1), userID)
	resetRepo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestPasswordService_GenerateCode_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	resetRepo := new(MockPasswordResetRepository)
	sessionRepo := new(MockSessionRepository)
	mailer := new(MockMailer)

	passwordService := newTestPasswordService(userRepo, resetRepo, sessionRepo, mailer)

	userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, apperror.NotFound("No existe usuario asociado"))

	userID, err := passwordService.GenerateCode(context.Background(), "nobody@example.com")

	assert.Zero(t, userID)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)

	resetRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPasswordService_GenerateCode_InvalidatesPriorCodes(t *testing.T) {
	userRepo := new(MockUserRepository)
	resetRepo := new(MockPasswordResetRepository)
	sessionRepo := new(MockSessionRepository)
	mailer := new(MockMailer)

	passwordService := newTestPasswordService(userRepo, resetRepo, sessionRepo, mailer)

	userRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&domain.User{
		ID:    1,
		Email: "test@example.com",
	}, nil)
	resetRepo.On("DeleteByUser", mock.Anything, int64(1)).Return(nil)
	resetRepo.On("ExistsByCode", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	resetRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.PasswordResetCode")).Return(nil)
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := passwordService.GenerateCode(context.Background(), "test@example.com")

	require.NoError(t, err)
	// Old codes must be gone before the new one is stored
	resetRepo.AssertCalled(t, "DeleteByUser", mock.Anything, int64(1))
}

func TestPasswordService_VerifyCode_Success(t *testing.T) {
	oldHash, _ := bcrypt.GenerateFromPassword([]byte("OldPassword1!"), bcrypt.DefaultCost)

	userRepo := new(MockUserRepository)
	resetRepo := new(MockPasswordResetRepository)
	sessionRepo := new(MockSessionRepository)
	mailer := new(MockMailer)

	passwordService := newTestPasswordService(userRepo, resetRepo, sessionRepo, mailer)

	resetRepo.On("FindByUserAndCode", mock.Anything, int64(1), "123456").Return(&domain.PasswordResetCode{
		ID:        10,
		UserID:    1,
		Code:      "123456",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}, nil)
	userRepo.On("FindByID", mock.Anything, int64(1)).Return(&domain.User{
		ID:           1,
		Email:        "test@example.com",
		PasswordHash: string(oldHash),
	}, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("NewPassword1!")) == nil
	})).Return(nil)
	resetRepo.On("DeleteByUser", mock.Anything, int64(1)).Return(nil)
	sessionRepo.On("RevokeAllForUser", mock.Anything, int64(1)).Return(nil)
	mailer.On("Send", mock.Anything, "test@example.com", mock.Anything, mock.Anything).Return(nil)

	err := passwordService.VerifyCode(context.Background(), 1, "123456", "NewPassword1!")

	require.NoError(t, err)
	// A reset must close every open session of the account
	sessionRepo.AssertCalled(t, "RevokeAllForUser", mock.Anything, int64(1))
	userRepo.AssertExpectations(t)
}

func TestPasswordService_VerifyCode_WrongCode(t *testing.T) {
	userRepo := new(MockUserRepository)
	resetRepo := new(MockPasswordResetRepository)
	sessionRepo := new(MockSessionRepository)
	mailer := new(MockMailer)

	passwordService := newTestPasswordService(userRepo, resetRepo, sessionRepo, mailer)

	resetRepo.On("FindByUserAndCode", mock.Anything, int64(1), "000000").Return(nil, apperror.NotFound("code not found"))

	err := passwordService.VerifyCode(context.Background(), 1, "000000", "NewPassword1!")

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBadRequest, appErr.Code)
	assert.Equal(t, "Código inválido", appErr.Message)
}

func TestPasswordService_VerifyCode_ExpiredCode(t *testing.T) {
	userRepo := new(MockUserRepository)
	resetRepo := new(MockPasswordResetRepository)
	sessionRepo := new(MockSessionRepository)
	mailer := new(MockMailer)

	passwordService := newTestPasswordService(userRepo, resetRepo, sessionRepo, mailer)

	resetRepo.On("FindByUserAndCode", mock.Anything, int64(1), "123456").Return(&domain.PasswordResetCode{
		ID:        10,
		UserID:    1,
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
	}, nil)
	resetRepo.On("Delete", mock.Anything, int64(10)).Return(nil)

	err := passwordService.VerifyCode(context.Background(), 1, "123456", "NewPassword1!")

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBadRequest, appErr.Code)
	assert.Equal(t, "Código expirado", appErr.Message)

	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	sessionRepo.AssertNotCalled(t, "RevokeAllForUser", mock.Anything, mock.Anything)
}

func TestPasswordService_VerifyCode_SamePasswordRejected(t *testing.T) {
	oldHash, _ := bcrypt.GenerateFromPassword([]byte("SamePassword1!"), bcrypt.DefaultCost)

	userRepo := new(MockUserRepository)
	resetRepo := new(MockPasswordResetRepository)
	sessionRepo := new(MockSessionRepository)
	mailer := new(MockMailer)

	passwordService := newTestPasswordService(userRepo, resetRepo, sessionRepo, mailer)

	resetRepo.On("FindByUserAndCode", mock.Anything, int64(1), "123456").Return(&domain.PasswordResetCode{
		ID:        10,
		UserID:    1,
		Code:      "123456",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}, nil)
	userRepo.On("FindByID", mock.Anything, int64(1)).Return(&domain.User{
		ID:           1,
		Email:        "test@example.com",
		PasswordHash: string(oldHash),
	}, nil)

	err := passwordService.VerifyCode(context.Background(), 1, "123456", "SamePassword1!")

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "La contraseña es igual a la anterior", appErr.Message)
}

func TestPasswordService_ChangePassword_Success(t *testing.T) {
	oldHash, _ := bcrypt.GenerateFromPassword([]byte("OldPassword1!"), bcrypt.DefaultCost)

	userRepo := new(MockUserRepository)
	resetRepo := new(MockPasswordResetRepository)
	sessionRepo := new(MockSessionRepository)
	mailer := new(MockMailer)

	passwordService := newTestPasswordService(userRepo, resetRepo, sessionRepo, mailer)

	userRepo.On("FindByID", mock.Anything, int64(1)).Return(&domain.User{
		ID:           1,
		Email:        "test@example.com",
		PasswordHash: string(oldHash),
	}, nil)
	userRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	mailer.On("Send", mock.Anything, "test@example.com", mock.Anything, mock.Anything).Return(nil)

	err := passwordService.ChangePassword(context.Background(), 1, "OldPassword1!", "NewPassword1!")

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestPasswordService_ChangePassword_WrongCurrentPassword(t *testing.T) {
	oldHash, _ := bcrypt.GenerateFromPassword([]byte("OldPassword1!"), bcrypt.DefaultCost)

	userRepo := new(MockUserRepository)
	resetRepo := new(MockPasswordResetRepository)
	sessionRepo := new(MockSessionRepository)
	mailer := new(MockMailer)

	passwordService := newTestPasswordService(userRepo, resetRepo, sessionRepo, mailer)

	userRepo.On("FindByID", mock.Anything, int64(1)).Return(&domain.User{
		ID:           1,
		Email:        "test@example.com",
		PasswordHash: string(oldHash),
	}, nil)

	err := passwordService.ChangePassword(context.Background(), 1, "NotMyPassword!", "NewPassword1!")

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	assert.Equal(t, "Contraseña actual incorrecta", appErr.Message)

	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
