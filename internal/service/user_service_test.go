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

func newTestUserService(
	userRepo *MockUserRepository,
	profileRepo *MockProfileRepository,
	roleRepo *MockRoleRepository,
	activationRepo *MockActivationRepository,
) *service.UserService {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	return service.NewUserService(userRepo, profileRepo, roleRepo, activationRepo, fakeTransaction{}, newPermissiveAuditService(), log)
}

func adminUserRequest() *port.AdminUserRequest {
	return &port.AdminUserRequest{
		FirstName: "Carlos",
		LastName:  "Pérez",
		DNIType:   strPtr("CC"),
		DNI:       strPtr("9080706050"),
		Prefix:    strPtr("+57"),
		Mobile:    strPtr("3109876543"),
		Email:     "carlos@example.com",
		Password:  "Password123!",
		RoleID:    2,
	}
}

func TestUserService_CreateUser_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	roleRepo := new(MockRoleRepository)
	activationRepo := new(MockActivationRepository)

	userService := newTestUserService(userRepo, profileRepo, roleRepo, activationRepo)

	userRepo.On("ExistsByEmail", mock.Anything, "carlos@example.com").Return(false, nil)
	roleRepo.On("FindByID", mock.Anything, int64(2)).Return(&domain.Role{ID: 2, Name: "ADMIN"}, nil)
	userRepo.On("CreateTx", mock.Anything, mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		// Admin-created accounts skip email activation
		return u.Activated && u.RoleID == 2 && u.Email == "carlos@example.com"
	})).Run(func(args mock.Arguments) {
		args.Get(2).(*domain.User).ID = 8
	}).Return(nil)
	profileRepo.On("CreateTx", mock.Anything, mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.UserID == 8 && p.FirstName == "Carlos"
	})).Return(nil)

	err := userService.CreateUser(context.Background(), adminUserRequest())

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
	profileRepo.AssertExpectations(t)
	roleRepo.AssertExpectations(t)
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	roleRepo := new(MockRoleRepository)
	activationRepo := new(MockActivationRepository)

	userService := newTestUserService(userRepo, profileRepo, roleRepo, activationRepo)

	userRepo.On("ExistsByEmail", mock.Anything, "carlos@example.com").Return(true, nil)

	err := userService.CreateUser(context.Background(), adminUserRequest())

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBadRequest, appErr.Code)
	assert.Equal(t, "El usuario ya existe", appErr.Message)

	roleRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestUserService_CreateUser_UnknownRole(t *testing.T) {
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	roleRepo := new(MockRoleRepository)
	activationRepo := new(MockActivationRepository)

	userService := newTestUserService(userRepo, profileRepo, roleRepo, activationRepo)

	userRepo.On("ExistsByEmail", mock.Anything, "carlos@example.com").Return(false, nil)
	roleRepo.On("FindByID", mock.Anything, int64(2)).Return(nil, apperror.NotFound("Rol no encontrado"))

	err := userService.CreateUser(context.Background(), adminUserRequest())

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)

	userRepo.AssertNotCalled(t, "CreateTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_GetUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	roleRepo := new(MockRoleRepository)
	activationRepo := new(MockActivationRepository)

	userService := newTestUserService(userRepo, profileRepo, roleRepo, activationRepo)

	userRepo.On("FindByID", mock.Anything, int64(8)).Return(&domain.User{
		ID:    8,
		Email: "carlos@example.com",
	}, nil)
	profileRepo.On("FindByUserID", mock.Anything, int64(8)).Return(&domain.Profile{
		UserID:    8,
		FirstName: "Carlos",
	}, nil)

	user, profile, err := userService.GetUser(context.Background(), 8)

	require.NoError(t, err)
	assert.Equal(t, "carlos@example.com", user.Email)
	assert.Equal(t, "Carlos", profile.FirstName)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	roleRepo := new(MockRoleRepository)
	activationRepo := new(MockActivationRepository)

	userService := newTestUserService(userRepo, profileRepo, roleRepo, activationRepo)

	userRepo.On("FindByID", mock.Anything, int64(999)).Return(nil, apperror.NotFound("No existe usuario asociado"))

	user, profile, err := userService.GetUser(context.Background(), 999)

	assert.Nil(t, user)
	assert.Nil(t, profile)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
}

func TestUserService_UpdateUser_KeepsPasswordWhenEmpty(t *testing.T) {
	oldHash, _ := bcrypt.GenerateFromPassword([]byte("OldPassword1!"), bcrypt.DefaultCost)

	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	roleRepo := new(MockRoleRepository)
	activationRepo := new(MockActivationRepository)

	userService := newTestUserService(userRepo, profileRepo, roleRepo, activationRepo)

	userRepo.On("FindByID", mock.Anything, int64(8)).Return(&domain.User{
		ID:           8,
		Email:        "carlos@example.com",
		PasswordHash: string(oldHash),
		RoleID:       2,
	}, nil)
	profileRepo.On("FindByUserID", mock.Anything, int64(8)).Return(&domain.Profile{
		UserID:    8,
		FirstName: "Carlos",
	}, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.PasswordHash == string(oldHash)
	})).Return(nil)
	profileRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.FirstName == "Carlos Andrés"
	})).Return(nil)

	req := adminUserRequest()
	req.FirstName = "Carlos Andrés"
	req.Password = ""

	user, profile, err := userService.UpdateUser(context.Background(), 8, req)

	require.NoError(t, err)
	assert.Equal(t, string(oldHash), user.PasswordHash)
	assert.Equal(t, "Carlos Andrés", profile.FirstName)
	userRepo.AssertExpectations(t)
	profileRepo.AssertExpectations(t)
}

func TestUserService_UpdateUser_EmailTakenByAnother(t *testing.T) {
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	roleRepo := new(MockRoleRepository)
	activationRepo := new(MockActivationRepository)

	userService := newTestUserService(userRepo, profileRepo, roleRepo, activationRepo)

	userRepo.On("FindByID", mock.Anything, int64(8)).Return(&domain.User{
		ID:     8,
		Email:  "carlos@example.com",
		RoleID: 2,
	}, nil)
	profileRepo.On("FindByUserID", mock.Anything, int64(8)).Return(&domain.Profile{UserID: 8}, nil)
	userRepo.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

	req := adminUserRequest()
	req.Email = "taken@example.com"

	_, _, err := userService.UpdateUser(context.Background(), 8, req)

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "El usuario ya existe", appErr.Message)

	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_SetStatus(t *testing.T) {
	tests := []struct {
		name      string
		activated bool
	}{
		{name: "activate user", activated: true},
		{name: "deactivate user", activated: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			profileRepo := new(MockProfileRepository)
			roleRepo := new(MockRoleRepository)
			activationRepo := new(MockActivationRepository)

			userService := newTestUserService(userRepo, profileRepo, roleRepo, activationRepo)

			userRepo.On("FindByID", mock.Anything, int64(8)).Return(&domain.User{
				ID:        8,
				Activated: !tt.activated,
			}, nil)
			userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
				return u.Activated == tt.activated
			})).Return(nil)
			// Pending activation links die with the admin decision
			activationRepo.On("DeleteByUser", mock.Anything, int64(8)).Return(nil)

			err := userService.SetStatus(context.Background(), 8, tt.activated)

			require.NoError(t, err)
			userRepo.AssertExpectations(t)
			activationRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_ListUsers(t *testing.T) {
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	roleRepo := new(MockRoleRepository)
	activationRepo := new(MockActivationRepository)

	userService := newTestUserService(userRepo, profileRepo, roleRepo, activationRepo)

	rows := []port.UserWithProfile{
		{User: domain.User{ID: 1, Email: "a@example.com"}, Profile: domain.Profile{FirstName: "Ana"}},
		{User: domain.User{ID: 2, Email: "b@example.com"}, Profile: domain.Profile{FirstName: "Bruno"}},
	}
	userRepo.On("List", mock.Anything, mock.MatchedBy(func(f port.UserFilter) bool {
		return f.Page == 1 && f.PageSize == 10 && f.Name == "an"
	})).Return(rows, int64(2), nil)

	users, total, err := userService.ListUsers(context.Background(), port.UserFilter{
		Name:     "an",
		Page:     1,
		PageSize: 10,
	})

	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, int64(2), total)
}

func TestUserService_ExportUsers(t *testing.T) {
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	roleRepo := new(MockRoleRepository)
	activationRepo := new(MockActivationRepository)

	userService := newTestUserService(userRepo, profileRepo, roleRepo, activationRepo)

	userRepo.On("ListAll", mock.Anything).Return([]port.UserWithProfile{
		{User: domain.User{ID: 1, Email: "a@example.com", Activated: true}, Profile: domain.Profile{FirstName: "Ana", LastName: "García"}},
	}, nil)

	data, err := userService.ExportUsers(context.Background())

	require.NoError(t, err)
	// XLSX files are ZIP archives, check the magic bytes
	require.Greater(t, len(data), 4)
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}
