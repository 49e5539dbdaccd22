// Package validator provides custom validation functions and utilities.
// Пакет validator предоставляет кастомные функции валидации и утилиты.
package validator

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	// emailDomainRegex validates email domain format.
	emailDomainRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// mobileRegex validates phone numbers (digits only, 7 to 15 characters).
	mobileRegex = regexp.MustCompile(`^[0-9]{7,15}$`)

	// dniRegex validates identity document numbers.
	dniRegex = regexp.MustCompile(`^[a-zA-Z0-9-]{3,30}$`)
)

// CustomValidator wraps the standard validator with custom validations.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates a new CustomValidator with all custom validations registered.
func New() (*CustomValidator, error) {
	v := validator.New()

	registrations := map[string]validator.Func{
		"strongpassword": validateStrongPassword,
		"safeemail":      validateSafeEmail,
		"nohtml":         validateNoHTML,
		"mobile":         validateMobile,
		"dni":            validateDNI,
	}

	for tag, fn := range registrations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, err
		}
	}

	return &CustomValidator{validate: v}, nil
}

// Validate validates a struct using the registered validations.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}

// validateStrongPassword ensures password meets complexity requirements.
// Requirements: 8+ chars, uppercase, lowercase, digit, special character.
func validateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 {
		return false
	}

	analysis := analyzeCharTypes(password)
	return analysis.hasUpper && analysis.hasLower && analysis.hasDigit && analysis.hasSpecial
}

// validateSafeEmail validates email format and checks for common attack patterns.
func validateSafeEmail(fl validator.FieldLevel) bool {
	email := fl.Field().String()

	// Basic format check
	if !emailDomainRegex.MatchString(email) {
		return false
	}

	// Check for common injection patterns
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"data:",
		"\n",
		"\r",
		"%0a",
		"%0d",
	}

	emailLower := strings.ToLower(email)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(emailLower, pattern) {
			return false
		}
	}

	return true
}

// validateNoHTML ensures the field contains no HTML tags.
func validateNoHTML(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	htmlTagPattern := regexp.MustCompile(`<[^>]*>`)
	return !htmlTagPattern.MatchString(value)
}

// validateMobile ensures the field is a plausible phone number.
func validateMobile(fl validator.FieldLevel) bool {
	return mobileRegex.MatchString(fl.Field().String())
}

// validateDNI ensures the field is a plausible identity document number.
func validateDNI(fl validator.FieldLevel) bool {
	return dniRegex.MatchString(fl.Field().String())
}

// ValidationErrors represents a map of field names to error messages.
type ValidationErrors map[string]string

// FormatValidationErrors converts validator.ValidationErrors to a user-friendly format.
// FormatValidationErrors преобразует validator.ValidationErrors в удобный для пользователя формат.
func FormatValidationErrors(err error) ValidationErrors {
	result := make(ValidationErrors)

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			field := strings.ToLower(e.Field())
			result[field] = formatErrorMessage(e)
		}
	}

	return result
}

// formatErrorMessage returns a user-friendly error message for a validation error.
// Messages are in Spanish to match the API response language.
func formatErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "Este campo es obligatorio"
	case "email", "safeemail":
		return "El formato del correo electrónico no es válido"
	case "min":
		return "Debe tener al menos " + e.Param() + " caracteres"
	case "max":
		return "Debe tener como máximo " + e.Param() + " caracteres"
	case "strongpassword":
		return "La contraseña debe tener al menos 8 caracteres e incluir mayúsculas, minúsculas, números y símbolos"
	case "mobile":
		return "El número de teléfono no es válido"
	case "dni":
		return "El número de documento no es válido"
	case "nohtml":
		return "No se permiten etiquetas HTML"
	case "oneof":
		return "Debe ser uno de: " + e.Param()
	default:
		return "Valor inválido"
	}
}

// charTypeAnalysis holds the result of character type analysis.
type charTypeAnalysis struct {
	hasUpper   bool
	hasLower   bool
	hasDigit   bool
	hasSpecial bool
}

// analyzeCharTypes analyzes character types in a password.
func analyzeCharTypes(password string) charTypeAnalysis {
	var result charTypeAnalysis
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			result.hasUpper = true
		case unicode.IsLower(char):
			result.hasLower = true
		case unicode.IsDigit(char):
			result.hasDigit = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			result.hasSpecial = true
		}
	}
	return result
}

// PasswordValidationResult contains the result of password validation.
// PasswordValidationResult содержит результат валидации пароля.
type PasswordValidationResult struct {
	Valid  bool     // Whether the password is valid / Валиден ли пароль
	Errors []string // List of validation errors / Список ошибок валидации
}

// ValidatePassword validates a password against the registration rules.
// ValidatePassword проверяет пароль на соответствие правилам регистрации.
func ValidatePassword(password string) PasswordValidationResult {
	var errs []string

	if len(password) < 8 {
		errs = append(errs, "La contraseña debe tener al menos 8 caracteres")
	}
	if len(password) > 128 {
		errs = append(errs, "La contraseña debe tener como máximo 128 caracteres")
	}

	analysis := analyzeCharTypes(password)
	if !analysis.hasUpper {
		errs = append(errs, "La contraseña debe incluir al menos una letra mayúscula")
	}
	if !analysis.hasLower {
		errs = append(errs, "La contraseña debe incluir al menos una letra minúscula")
	}
	if !analysis.hasDigit {
		errs = append(errs, "La contraseña debe incluir al menos un número")
	}
	if !analysis.hasSpecial {
		errs = append(errs, "La contraseña debe incluir al menos un símbolo")
	}

	if isCommonPassword(password) {
		errs = append(errs, "La contraseña es demasiado común")
	}
	if hasSequentialChars(password, 4) {
		errs = append(errs, "La contraseña contiene secuencias de caracteres (ej. 1234, abcd)")
	}
	if hasRepeatedChars(password, 4) {
		errs = append(errs, "La contraseña contiene demasiados caracteres repetidos")
	}

	return PasswordValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// isCommonPassword checks if password is in the list of common passwords.
// isCommonPassword проверяет, является ли пароль распространённым.
func isCommonPassword(password string) bool {
	commonPasswords := map[string]bool{
		"password":    true,
		"password1":   true,
		"password123": true,
		"contraseña":  true,
		"contrasena":  true,
		"123456":      true,
		"12345678":    true,
		"123456789":   true,
		"1234567890":  true,
		"qwerty":      true,
		"qwerty123":   true,
		"qwertyuiop":  true,
		"letmein":     true,
		"welcome":     true,
		"admin":       true,
		"admin123":    true,
		"changeme":    true,
		"iloveyou":    true,
		"abc123":      true,
		"111111":      true,
		"000000":      true,
		"654321":      true,
		"passw0rd":    true,
		"p@ssw0rd":    true,
		"p@ssword":    true,
	}

	return commonPasswords[strings.ToLower(password)]
}

// hasSequentialChars checks if password contains sequential characters.
// hasSequentialChars проверяет, содержит ли пароль последовательности символов.
func hasSequentialChars(password string, minSeqLength int) bool {
	if len(password) < minSeqLength {
		return false
	}

	runes := []rune(strings.ToLower(password))

	// Check for ascending sequences / Проверка восходящих последовательностей
	ascCount := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1]+1 {
			ascCount++
			if ascCount >= minSeqLength {
				return true
			}
		} else {
			ascCount = 1
		}
	}

	// Check for descending sequences / Проверка нисходящих последовательностей
	descCount := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1]-1 {
			descCount++
			if descCount >= minSeqLength {
				return true
			}
		} else {
			descCount = 1
		}
	}

	// Check for keyboard sequences / Проверка клавиатурных последовательностей
	keyboardSequences := []string{
		"qwerty", "asdfgh", "zxcvbn", "qazwsx", "!@#$%^",
	}

	passwordLower := strings.ToLower(password)
	for _, seq := range keyboardSequences {
		if len(seq) >= minSeqLength && strings.Contains(passwordLower, seq[:minSeqLength]) {
			return true
		}
	}

	return false
}

// hasRepeatedChars checks if password contains too many repeated characters.
// hasRepeatedChars проверяет, содержит ли пароль слишком много повторяющихся символов.
func hasRepeatedChars(password string, maxRepeats int) bool {
	if len(password) < maxRepeats {
		return false
	}

	runes := []rune(password)
	repeatCount := 1

	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			repeatCount++
			if repeatCount >= maxRepeats {
				return true
			}
		} else {
			repeatCount = 1
		}
	}

	return false
}
