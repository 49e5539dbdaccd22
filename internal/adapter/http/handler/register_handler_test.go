package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
)

type mockRegistrationService struct {
	mock.Mock
}

func (m *mockRegistrationService) Register(ctx context.Context, req *port.RegisterRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *mockRegistrationService) Activate(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func setupRegisterTest(t *testing.T) (*mockRegistrationService, *gin.Engine) {
	t.Helper()

	registrationService := new(mockRegistrationService)
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	h := NewRegisterHandler(registrationService, log)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/register", h.Register)
	router.POST("/activate", h.Activate)

	return registrationService, router
}

func TestRegisterHandler_Register_Success(t *testing.T) {
	registrationService, router := setupRegisterTest(t)

	registrationService.On("Register", mock.Anything, mock.MatchedBy(func(r *port.RegisterRequest) bool {
		return r.Email == "ana@example.com" && r.FirstName == "Ana" &&
			r.DNI != nil && *r.DNI == "1020304050"
	})).Return(nil)

	w := postJSON(router, "/register", `{
		"firstName": "Ana",
		"lastName": "García",
		"dniType": "CC",
		"dni": "1020304050",
		"prefix": "+57",
		"mobile": "3001234567",
		"email": "ana@example.com",
		"password": "Password123!"
	}`)

	assert.Equal(t, http.StatusCreated, w.Code)

	body := decodeResponse(t, w)
	assert.Equal(t, "Revisa tu correo electrónico", body["message"])
}

func TestRegisterHandler_Register_MinimalFields(t *testing.T) {
	registrationService, router := setupRegisterTest(t)

	// Name, last name and credentials are enough; the document and phone
	// fields stay unset until a later profile update
	registrationService.On("Register", mock.Anything, mock.MatchedBy(func(r *port.RegisterRequest) bool {
		return r.Email == "alice@example.com" && r.FirstName == "Alice" && r.LastName == "Smith" &&
			r.DNIType == nil && r.DNI == nil && r.Prefix == nil && r.Mobile == nil
	})).Return(nil)

	w := postJSON(router, "/register", `{
		"firstName": "Alice",
		"lastName": "Smith",
		"email": "alice@example.com",
		"password": "Password123!"
	}`)

	assert.Equal(t, http.StatusCreated, w.Code)

	body := decodeResponse(t, w)
	assert.Equal(t, "Revisa tu correo electrónico", body["message"])
	registrationService.AssertExpectations(t)
}

func TestRegisterHandler_Register_MissingRequiredFields(t *testing.T) {
	registrationService, router := setupRegisterTest(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing first name", `{"lastName":"Smith","email":"a@example.com","password":"Password123!"}`},
		{"missing last name", `{"firstName":"Alice","email":"a@example.com","password":"Password123!"}`},
		{"missing email", `{"firstName":"Alice","lastName":"Smith","password":"Password123!"}`},
		{"malformed email", `{"firstName":"Alice","lastName":"Smith","email":"nope","password":"Password123!"}`},
		{"missing password", `{"firstName":"Alice","lastName":"Smith","email":"a@example.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/register", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			body := decodeResponse(t, w)
			assert.Equal(t, "Todos los campos son obligatorios", body["message"])
		})
	}

	registrationService.AssertNotCalled(t, "Register")
}

func TestRegisterHandler_Register_WeakPassword(t *testing.T) {
	registrationService, router := setupRegisterTest(t)

	tests := []struct {
		name     string
		password string
	}{
		{"no uppercase", "password123!"},
		{"no digits", "SoloLetras!!"},
		{"sequential characters", "Abcd!1234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/register", `{
				"firstName": "Alice",
				"lastName": "Smith",
				"email": "alice@example.com",
				"password": "`+tt.password+`"
			}`)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			body := decodeResponse(t, w)
			assert.Equal(t, "La contraseña no cumple los requisitos de seguridad", body["message"])
			assert.Contains(t, body, "details")
		})
	}

	registrationService.AssertNotCalled(t, "Register")
}

func TestRegisterHandler_Activate_Success(t *testing.T) {
	registrationService, router := setupRegisterTest(t)

	registrationService.On("Activate", mock.Anything, "activation-token").Return(nil)

	w := postJSON(router, "/activate", `{"token":"activation-token"}`)

	assert.Equal(t, http.StatusCreated, w.Code)

	body := decodeResponse(t, w)
	assert.Equal(t, "Cuenta activada satisfactoriamente", body["message"])
}

func TestRegisterHandler_Activate_MissingToken(t *testing.T) {
	registrationService, router := setupRegisterTest(t)

	w := postJSON(router, "/activate", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	registrationService.AssertNotCalled(t, "Activate")
}
