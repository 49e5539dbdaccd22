package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name: "without wrapped error",
			err: &AppError{
				Code:    CodeNotFound,
				Message: "No existe usuario asociado",
			},
			expected: "NOT_FOUND: No existe usuario asociado",
		},
		{
			name: "with wrapped error",
			err: &AppError{
				Code:    CodeInternal,
				Message: "database error",
				Err:     errors.New("connection refused"),
			},
			expected: "INTERNAL_ERROR: database error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	wrappedErr := errors.New("original error")
	appErr := &AppError{
		Code:    CodeInternal,
		Message: "wrapped",
		Err:     wrappedErr,
	}

	assert.Equal(t, wrappedErr, appErr.Unwrap())
	assert.True(t, errors.Is(appErr, wrappedErr))
}

func TestAppError_WithDetails(t *testing.T) {
	appErr := &AppError{
		Code:    CodeValidation,
		Message: "validation failed",
	}

	details := map[string]interface{}{
		"field": "email",
		"error": "invalid format",
	}

	result := appErr.WithDetails(details)

	assert.Same(t, appErr, result)
	assert.Equal(t, details, appErr.Details)
}

func TestAppError_WithError(t *testing.T) {
	appErr := &AppError{
		Code:    CodeInternal,
		Message: "something went wrong",
	}

	wrappedErr := errors.New("underlying cause")
	result := appErr.WithError(wrappedErr)

	assert.Same(t, appErr, result)
	assert.Equal(t, wrappedErr, appErr.Err)
}

func TestNew(t *testing.T) {
	appErr := New("CUSTOM_CODE", "custom message", http.StatusTeapot)

	assert.Equal(t, "CUSTOM_CODE", appErr.Code)
	assert.Equal(t, "custom message", appErr.Message)
	assert.Equal(t, http.StatusTeapot, appErr.HTTPStatus)
	assert.Nil(t, appErr.Details)
	assert.Nil(t, appErr.Err)
}

func TestNotFound(t *testing.T) {
	appErr := NotFound("Perfil no encontrado")

	assert.Equal(t, CodeNotFound, appErr.Code)
	assert.Equal(t, "Perfil no encontrado", appErr.Message)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
}

func TestValidationError(t *testing.T) {
	details := map[string]interface{}{
		"email": "invalid format",
	}
	appErr := ValidationError("Todos los campos son obligatorios", details)

	assert.Equal(t, CodeValidation, appErr.Code)
	assert.Equal(t, "Todos los campos son obligatorios", appErr.Message)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Equal(t, details, appErr.Details)
}

func TestUnauthorized(t *testing.T) {
	tests := []struct {
		name            string
		message         string
		expectedMessage string
	}{
		{
			name:            "with custom message",
			message:         "Credenciales inválidas",
			expectedMessage: "Credenciales inválidas",
		},
		{
			name:            "with empty message",
			message:         "",
			expectedMessage: "No autorizado",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := Unauthorized(tt.message)

			assert.Equal(t, CodeUnauthorized, appErr.Code)
			assert.Equal(t, tt.expectedMessage, appErr.Message)
			assert.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus)
		})
	}
}

func TestForbidden(t *testing.T) {
	tests := []struct {
		name            string
		message         string
		expectedMessage string
	}{
		{
			name:            "with custom message",
			message:         "Usuario inactivo",
			expectedMessage: "Usuario inactivo",
		},
		{
			name:            "with empty message",
			message:         "",
			expectedMessage: "Acceso denegado",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := Forbidden(tt.message)

			assert.Equal(t, CodeForbidden, appErr.Code)
			assert.Equal(t, tt.expectedMessage, appErr.Message)
			assert.Equal(t, http.StatusForbidden, appErr.HTTPStatus)
		})
	}
}

func TestConflict(t *testing.T) {
	appErr := Conflict("El usuario ya existe")

	assert.Equal(t, CodeConflict, appErr.Code)
	assert.Equal(t, "El usuario ya existe", appErr.Message)
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
}

func TestInternal(t *testing.T) {
	wrappedErr := errors.New("database connection lost")
	appErr := Internal("failed to process request", wrappedErr)

	assert.Equal(t, CodeInternal, appErr.Code)
	assert.Equal(t, "failed to process request", appErr.Message)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
	assert.Equal(t, wrappedErr, appErr.Err)
}

func TestBadRequest(t *testing.T) {
	appErr := BadRequest("Token inválido")

	assert.Equal(t, CodeBadRequest, appErr.Code)
	assert.Equal(t, "Token inválido", appErr.Message)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
}

func TestTooManyRequests(t *testing.T) {
	appErr := TooManyRequests("Demasiadas solicitudes", 60)

	assert.Equal(t, CodeTooManyRequests, appErr.Code)
	assert.Equal(t, "Demasiadas solicitudes", appErr.Message)
	assert.Equal(t, http.StatusTooManyRequests, appErr.HTTPStatus)
	assert.Equal(t, 60, appErr.Details["retry_after_seconds"])
}

func TestIsAppError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "is AppError",
			err:      NotFound("No existe usuario asociado"),
			expected: true,
		},
		{
			name:     "wrapped AppError",
			err:      fmt.Errorf("wrapped: %w", NotFound("No existe usuario asociado")),
			expected: true,
		},
		{
			name:     "not AppError",
			err:      errors.New("regular error"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsAppError(tt.err))
		})
	}
}

func TestAsAppError(t *testing.T) {
	t.Run("is AppError", func(t *testing.T) {
		original := NotFound("No existe usuario asociado")
		result, ok := AsAppError(original)

		require.True(t, ok)
		assert.Equal(t, original, result)
	})

	t.Run("wrapped AppError", func(t *testing.T) {
		original := NotFound("No existe usuario asociado")
		wrapped := fmt.Errorf("wrapped: %w", original)
		result, ok := AsAppError(wrapped)

		require.True(t, ok)
		assert.Equal(t, original, result)
	})

	t.Run("not AppError", func(t *testing.T) {
		result, ok := AsAppError(errors.New("regular error"))

		assert.False(t, ok)
		assert.Nil(t, result)
	})

	t.Run("nil error", func(t *testing.T) {
		result, ok := AsAppError(nil)

		assert.False(t, ok)
		assert.Nil(t, result)
	})
}

func TestFromError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		result := FromError(nil)
		assert.Nil(t, result)
	})

	t.Run("already AppError", func(t *testing.T) {
		original := NotFound("No existe usuario asociado")
		result := FromError(original)

		assert.Equal(t, original, result)
	})

	t.Run("regular error", func(t *testing.T) {
		regularErr := errors.New("something went wrong")
		result := FromError(regularErr)

		assert.Equal(t, CodeInternal, result.Code)
		assert.Equal(t, "Error interno del servidor", result.Message)
		assert.Equal(t, http.StatusInternalServerError, result.HTTPStatus)
		assert.Equal(t, regularErr, result.Err)
	})

	t.Run("wrapped AppError", func(t *testing.T) {
		original := Unauthorized("Sesión expirada")
		wrapped := fmt.Errorf("auth failed: %w", original)
		result := FromError(wrapped)

		assert.Equal(t, original, result)
	})
}

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", CodeNotFound)
	assert.Equal(t, "VALIDATION_ERROR", CodeValidation)
	assert.Equal(t, "UNAUTHORIZED", CodeUnauthorized)
	assert.Equal(t, "FORBIDDEN", CodeForbidden)
	assert.Equal(t, "CONFLICT", CodeConflict)
	assert.Equal(t, "INTERNAL_ERROR", CodeInternal)
	assert.Equal(t, "BAD_REQUEST", CodeBadRequest)
	assert.Equal(t, "TOO_MANY_REQUESTS", CodeTooManyRequests)
}
