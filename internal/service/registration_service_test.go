package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
	"github.com/andrewhigh08/account-service/internal/service"
)

const testDefaultRoleID = int64(3)

func newTestRegistrationService(
	userRepo *MockUserRepository,
	profileRepo *MockProfileRepository,
	activationRepo *MockActivationRepository,
	tokens *MockTokenIssuer,
	mailer *MockMailer,
) *service.RegistrationService {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	return service.NewRegistrationService(userRepo, profileRepo, activationRepo, fakeTransaction{}, tokens,
		mailer, newPermissiveAuditService(), testDefaultRoleID, "https://accounts.example.com", log)
}

func strPtr(s string) *string {
	return &s
}

func registerRequest() *port.RegisterRequest {
	return &port.RegisterRequest{
		FirstName: "Ana",
		LastName:  "García",
		DNIType:   strPtr("CC"),
		DNI:       strPtr("1020304050"),
		Prefix:    strPtr("+57"),
		Mobile:    strPtr("3001234567"),
		Email:     "ana@example.com",
		Password:  "Password123!",
	}
}

func TestRegistrationService_Register_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	activationRepo := new(MockActivationRepository)
	tokens := new(MockTokenIssuer)
	mailer := new(MockMailer)

	registrationService := newTestRegistrationService(userRepo, profileRepo, activationRepo, tokens, mailer)

	userRepo.On("ExistsByEmail", mock.Anything, "ana@example.com").Return(false, nil)
	userRepo.On("CreateTx", mock.Anything, mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		// Stored hash must match the submitted password
		return !u.Activated && u.RoleID == testDefaultRoleID && u.Email == "ana@example.com" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Password123!")) == nil
	})).Run(func(args mock.Arguments) {
		args.Get(2).(*domain.User).ID = 5
	}).Return(nil)
	profileRepo.On("CreateTx", mock.Anything, mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.UserID == 5 && p.FirstName == "Ana" && p.DNI != nil && *p.DNI == "1020304050"
	})).Return(nil)
	tokens.On("IssueActivationToken", int64(5)).Return("activation-token", "jti-act", nil)
	activationRepo.On("CreateTx", mock.Anything, mock.Anything, mock.MatchedBy(func(a *domain.UserActivation) bool {
		return a.UserID == 5 && a.Token == "activation-token" && a.JTI == "jti-act"
	})).Return(nil)
	mailer.On("Send", mock.Anything, "ana@example.com", "Activa tu cuenta", mock.Anything).Return(nil)

	err := registrationService.Register(context.Background(), registerRequest())

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
	profileRepo.AssertExpectations(t)
	activationRepo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestRegistrationService_Register_MinimalFields(t *testing.T) {
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	activationRepo := new(MockActivationRepository)
	tokens := new(MockTokenIssuer)
	mailer := new(MockMailer)

	registrationService := newTestRegistrationService(userRepo, profileRepo, activationRepo, tokens, mailer)

	userRepo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
	userRepo.On("CreateTx", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		args.Get(2).(*domain.User).ID = 6
	}).Return(nil)
	// The document and phone columns stay NULL until the user supplies them
	profileRepo.On("CreateTx", mock.Anything, mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.UserID == 6 && p.FirstName == "Alice" && p.LastName == "Smith" &&
			p.DNIType == nil && p.DNI == nil && p.Prefix == nil && p.Mobile == nil
	})).Return(nil)
	tokens.On("IssueActivationToken", int64(6)).Return("activation-token", "jti-act", nil)
	activationRepo.On("CreateTx", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.UserActivation")).Return(nil)
	mailer.On("Send", mock.Anything, "alice@example.com", "Activa tu cuenta", mock.Anything).Return(nil)

	err := registrationService.Register(context.Background(), &port.RegisterRequest{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		Password:  "Password123!",
	})

	require.NoError(t, err)
	profileRepo.AssertExpectations(t)
}

func TestRegistrationService_Register_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	activationRepo := new(MockActivationRepository)
	tokens := new(MockTokenIssuer)
	mailer := new(MockMailer)

	registrationService := newTestRegistrationService(userRepo, profileRepo, activationRepo, tokens, mailer)

	userRepo.On("ExistsByEmail", mock.Anything, "ana@example.com").Return(true, nil)

	err := registrationService.Register(context.Background(), registerRequest())

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBadRequest, appErr.Code)
	assert.Equal(t, "El usuario ya existe", appErr.Message)

	userRepo.AssertNotCalled(t, "CreateTx", mock.Anything, mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegistrationService_Register_MailFailureDoesNotUndo(t *testing.T) {
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	activationRepo := new(MockActivationRepository)
	tokens := new(MockTokenIssuer)
	mailer := new(MockMailer)

	registrationService := newTestRegistrationService(userRepo, profileRepo, activationRepo, tokens, mailer)

	userRepo.On("ExistsByEmail", mock.Anything, "ana@example.com").Return(false, nil)
	userRepo.On("CreateTx", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		args.Get(2).(*domain.User).ID = 5
	}).Return(nil)
	profileRepo.On("CreateTx", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.Profile")).Return(nil)
	tokens.On("IssueActivationToken", int64(5)).Return("activation-token", "jti-act", nil)
	activationRepo.On("CreateTx", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.UserActivation")).Return(nil)
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	err := registrationService.Register(context.Background(), registerRequest())

	// Delivery failure is logged, the account stays registered
	require.NoError(t, err)
}

func TestRegistrationService_Activate_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	activationRepo := new(MockActivationRepository)
	tokens := new(MockTokenIssuer)
	mailer := new(MockMailer)

	registrationService := newTestRegistrationService(userRepo, profileRepo, activationRepo, tokens, mailer)

	tokens.On("VerifyActivation", "activation-token").Return(refreshClaims(5, "jti-act"), nil)
	activationRepo.On("FindByJTI", mock.Anything, "jti-act").Return(&domain.UserActivation{
		UserID: 5,
		Token:  "activation-token",
		JTI:    "jti-act",
	}, nil)
	userRepo.On("FindByID", mock.Anything, int64(5)).Return(&domain.User{
		ID:        5,
		Email:     "ana@example.com",
		Activated: false,
	}, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 5 && u.Activated
	})).Return(nil)
	activationRepo.On("DeleteByUser", mock.Anything, int64(5)).Return(nil)

	err := registrationService.Activate(context.Background(), "activation-token")

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
	activationRepo.AssertExpectations(t)
}

func TestRegistrationService_Activate_StaleToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	activationRepo := new(MockActivationRepository)
	tokens := new(MockTokenIssuer)
	mailer := new(MockMailer)

	registrationService := newTestRegistrationService(userRepo, profileRepo, activationRepo, tokens, mailer)

	tokens.On("VerifyActivation", "stale-token").Return(refreshClaims(5, "jti-old"), nil)
	// The stored activation was replaced, this jti no longer exists
	activationRepo.On("FindByJTI", mock.Anything, "jti-old").Return(nil, apperror.NotFound("activation not found"))

	err := registrationService.Activate(context.Background(), "stale-token")

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	assert.Equal(t, "Token inválido", appErr.Message)
}

func TestRegistrationService_Activate_UserMismatch(t *testing.T) {
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	activationRepo := new(MockActivationRepository)
	tokens := new(MockTokenIssuer)
	mailer := new(MockMailer)

	registrationService := newTestRegistrationService(userRepo, profileRepo, activationRepo, tokens, mailer)

	tokens.On("VerifyActivation", "activation-token").Return(refreshClaims(5, "jti-act"), nil)
	activationRepo.On("FindByJTI", mock.Anything, "jti-act").Return(&domain.UserActivation{
		UserID: 99,
		JTI:    "jti-act",
	}, nil)

	err := registrationService.Activate(context.Background(), "activation-token")

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)

	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRegistrationService_Activate_AlreadyActivated(t *testing.T) {
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	activationRepo := new(MockActivationRepository)
	tokens := new(MockTokenIssuer)
	mailer := new(MockMailer)

	registrationService := newTestRegistrationService(userRepo, profileRepo, activationRepo, tokens, mailer)

	tokens.On("VerifyActivation", "activation-token").Return(refreshClaims(5, "jti-act"), nil)
	activationRepo.On("FindByJTI", mock.Anything, "jti-act").Return(&domain.UserActivation{
		UserID: 5,
		JTI:    "jti-act",
	}, nil)
	userRepo.On("FindByID", mock.Anything, int64(5)).Return(&domain.User{
		ID:        5,
		Activated: true,
	}, nil)

	err := registrationService.Activate(context.Background(), "activation-token")

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
	assert.Equal(t, "La cuenta ya estaba activada", appErr.Message)
}
