package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) SignIn(ctx context.Context, email, password string) (*port.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.TokenPair), args.Error(1)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (*port.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.TokenPair), args.Error(1)
}

func (m *mockAuthService) SignOut(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *mockAuthService) VerifyAccessToken(ctx context.Context, tokenString string) (*port.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.Claims), args.Error(1)
}

func (m *mockAuthService) RevokeAllSessions(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func setupAuthTest(t *testing.T) (*mockAuthService, *gin.Engine) {
	t.Helper()

	authService := new(mockAuthService)
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	h := NewAuthHandler(authService, log)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/sign-in", h.SignIn)
	router.POST("/refresh-token", h.Refresh)
	router.POST("/sign-out", h.SignOut)

	return authService, router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthHandler_SignIn_Success(t *testing.T) {
	authService, router := setupAuthTest(t)

	authService.On("SignIn", mock.Anything, "ana@example.com", "Password123!").
		Return(&port.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)

	w := postJSON(router, "/sign-in", `{"email":"ana@example.com","password":"Password123!"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeResponse(t, w)
	assert.Equal(t, "Inicio de sesión satisfactorio", body["message"])
	assert.Equal(t, "access-token", body["accessToken"])
	assert.Equal(t, "refresh-token", body["refreshToken"])
}

func TestAuthHandler_SignIn_InvalidRequest(t *testing.T) {
	authService, router := setupAuthTest(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"password":"Password123!"}`},
		{"missing password", `{"email":"ana@example.com"}`},
		{"malformed email", `{"email":"not-an-email","password":"Password123!"}`},
		{"empty body", ``},
		{"invalid json", `{broken`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/sign-in", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			body := decodeResponse(t, w)
			assert.Equal(t, "Todos los campos son obligatorios", body["message"])
		})
	}

	authService.AssertNotCalled(t, "SignIn")
}

func TestAuthHandler_SignIn_InvalidCredentials(t *testing.T) {
	authService, router := setupAuthTest(t)

	authService.On("SignIn", mock.Anything, "ana@example.com", "wrong").
		Return(nil, apperror.Unauthorized("Credenciales inválidas"))

	w := postJSON(router, "/sign-in", `{"email":"ana@example.com","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	body := decodeResponse(t, w)
	assert.Equal(t, "Credenciales inválidas", body["message"])
}

func TestAuthHandler_SignIn_InactiveAccount(t *testing.T) {
	authService, router := setupAuthTest(t)

	authService.On("SignIn", mock.Anything, "ana@example.com", "Password123!").
		Return(nil, apperror.Forbidden("Usuario inactivo"))

	w := postJSON(router, "/sign-in", `{"email":"ana@example.com","password":"Password123!"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)

	body := decodeResponse(t, w)
	assert.Equal(t, "Usuario inactivo", body["message"])
}

func TestAuthHandler_SignIn_LockedAccount(t *testing.T) {
	authService, router := setupAuthTest(t)

	authService.On("SignIn", mock.Anything, "ana@example.com", "Password123!").
		Return(nil, apperror.TooManyRequests("Demasiados intentos fallidos. Intente de nuevo más tarde", 900))

	w := postJSON(router, "/sign-in", `{"email":"ana@example.com","password":"Password123!"}`)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "900", w.Header().Get("Retry-After"))
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	authService, router := setupAuthTest(t)

	authService.On("Refresh", mock.Anything, "old-refresh-token").
		Return(&port.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

	w := postJSON(router, "/refresh-token", `{"refreshToken":"old-refresh-token"}`)

	assert.Equal(t, http.StatusCreated, w.Code)

	body := decodeResponse(t, w)
	assert.Equal(t, "Token renovado satisfactoriamente", body["message"])
	assert.Equal(t, "new-access", body["accessToken"])
	assert.Equal(t, "new-refresh", body["refreshToken"])
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	authService, router := setupAuthTest(t)

	// An absent token is an authentication failure, not a bad request
	tests := []struct {
		name string
		body string
	}{
		{"missing token", `{}`},
		{"empty token", `{"refreshToken":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/refresh-token", tt.body)

			assert.Equal(t, http.StatusUnauthorized, w.Code)

			body := decodeResponse(t, w)
			assert.Equal(t, "Token no proporcionado", body["message"])
		})
	}

	authService.AssertNotCalled(t, "Refresh")
}

func TestAuthHandler_Refresh_MalformedBody(t *testing.T) {
	authService, router := setupAuthTest(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"invalid json", `{broken`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/refresh-token", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	authService.AssertNotCalled(t, "Refresh")
}

func TestAuthHandler_Refresh_RevokedToken(t *testing.T) {
	authService, router := setupAuthTest(t)

	authService.On("Refresh", mock.Anything, "revoked-token").
		Return(nil, apperror.BadRequest("Token inválido"))

	w := postJSON(router, "/refresh-token", `{"refreshToken":"revoked-token"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeResponse(t, w)
	assert.Equal(t, "Token inválido", body["message"])
}

func TestAuthHandler_Refresh_UnknownSession(t *testing.T) {
	authService, router := setupAuthTest(t)

	authService.On("Refresh", mock.Anything, "stray-token").
		Return(nil, apperror.Unauthorized("Sesión no encontrada"))

	w := postJSON(router, "/refresh-token", `{"refreshToken":"stray-token"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_SignOut_Success(t *testing.T) {
	authService, router := setupAuthTest(t)

	authService.On("SignOut", mock.Anything, "refresh-token-123").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/sign-out", http.NoBody)
	req.Header.Set("Authorization", "Bearer refresh-token-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeResponse(t, w)
	assert.Equal(t, "Sesión cerrada satisfactoriamente", body["message"])
}

func TestAuthHandler_SignOut_MissingHeader(t *testing.T) {
	authService, router := setupAuthTest(t)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"no Bearer prefix", "refresh-token-123"},
		{"Basic auth", "Basic dXNlcjpwYXNz"},
		{"empty token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/sign-out", http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)

			body := decodeResponse(t, w)
			assert.Equal(t, "Token inválido", body["message"])
		})
	}

	authService.AssertNotCalled(t, "SignOut")
}

func TestAuthHandler_SignOut_AlreadyClosed(t *testing.T) {
	authService, router := setupAuthTest(t)

	authService.On("SignOut", mock.Anything, "refresh-token-123").
		Return(apperror.BadRequest("La sesión ya estaba cerrada"))

	req := httptest.NewRequest(http.MethodPost, "/sign-out", http.NoBody)
	req.Header.Set("Authorization", "Bearer refresh-token-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeResponse(t, w)
	assert.Equal(t, "La sesión ya estaba cerrada", body["message"])
}
