package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	v, err := New()
	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestCustomValidator_Validate(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	type testStruct struct {
		Email    string `validate:"required,safeemail"`
		Password string `validate:"required,strongpassword"`
		Mobile   string `validate:"required,mobile"`
		DNI      string `validate:"required,dni"`
		Address  string `validate:"nohtml"`
	}

	tests := []struct {
		name    string
		input   testStruct
		wantErr bool
	}{
		{
			name: "valid input",
			input: testStruct{
				Email:    "test@example.com",
				Password: "SecurePass123!",
				Mobile:   "3001234567",
				DNI:      "1020304050",
				Address:  "Calle 10 # 4-21",
			},
			wantErr: false,
		},
		{
			name: "invalid email",
			input: testStruct{
				Email:    "invalid-email",
				Password: "SecurePass123!",
				Mobile:   "3001234567",
				DNI:      "1020304050",
			},
			wantErr: true,
		},
		{
			name: "weak password",
			input: testStruct{
				Email:    "test@example.com",
				Password: "weak",
				Mobile:   "3001234567",
				DNI:      "1020304050",
			},
			wantErr: true,
		},
		{
			name: "mobile with letters",
			input: testStruct{
				Email:    "test@example.com",
				Password: "SecurePass123!",
				Mobile:   "30012345ab",
				DNI:      "1020304050",
			},
			wantErr: true,
		},
		{
			name: "dni too short",
			input: testStruct{
				Email:    "test@example.com",
				Password: "SecurePass123!",
				Mobile:   "3001234567",
				DNI:      "ab",
			},
			wantErr: true,
		},
		{
			name: "address with HTML",
			input: testStruct{
				Email:    "test@example.com",
				Password: "SecurePass123!",
				Mobile:   "3001234567",
				DNI:      "1020304050",
				Address:  "<script>alert('xss')</script>",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStrongPassword(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	type passwordStruct struct {
		Password string `validate:"strongpassword"`
	}

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"valid password", "SecurePass123!", true},
		{"valid with symbols", "Test@123$Password", true},
		{"too short", "Aa1!", false},
		{"no uppercase", "securepass123!", false},
		{"no lowercase", "SECUREPASS123!", false},
		{"no digit", "SecurePassword!", false},
		{"no special char", "SecurePass12345", false},
		{"empty", "", false},
		{"only letters", "SecurePassword", false},
		{"unicode special chars", "Пароль123!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(passwordStruct{Password: tt.password})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateSafeEmail(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	type emailStruct struct {
		Email string `validate:"safeemail"`
	}

	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{"valid email", "user@example.com", true},
		{"valid with plus", "user+tag@example.com", true},
		{"valid with dots", "first.last@sub.example.com", true},
		{"missing at sign", "userexample.com", false},
		{"missing domain", "user@", false},
		{"missing tld", "user@example", false},
		{"script injection", "user<script@example.com", false},
		{"javascript scheme", "javascript:alert@example.com", false},
		{"newline injection", "user@example.com\nBcc: evil@example.com", false},
		{"encoded newline", "user%0a@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(emailStruct{Email: tt.email})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateMobile(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	type mobileStruct struct {
		Mobile string `validate:"mobile"`
	}

	tests := []struct {
		name   string
		mobile string
		valid  bool
	}{
		{"valid colombian mobile", "3001234567", true},
		{"seven digits", "1234567", true},
		{"fifteen digits", "123456789012345", true},
		{"too short", "123456", false},
		{"too long", "1234567890123456", false},
		{"with dashes", "300-123-4567", false},
		{"with spaces", "300 123 4567", false},
		{"with plus", "+573001234567", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(mobileStruct{Mobile: tt.mobile})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateDNI(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	type dniStruct struct {
		DNI string `validate:"dni"`
	}

	tests := []struct {
		name  string
		dni   string
		valid bool
	}{
		{"numeric dni", "1020304050", true},
		{"alphanumeric dni", "AB1234567", true},
		{"with dash", "12345-6", true},
		{"too short", "12", false},
		{"too long", strings.Repeat("1", 31), false},
		{"with spaces", "10 20 30", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(dniStruct{DNI: tt.dni})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	type testStruct struct {
		Email    string `validate:"required,safeemail"`
		Password string `validate:"required,min=8"`
	}

	err = v.Validate(testStruct{Email: "bad", Password: "short"})
	require.Error(t, err)

	formatted := FormatValidationErrors(err)
	assert.Equal(t, "El formato del correo electrónico no es válido", formatted["email"])
	assert.Equal(t, "Debe tener al menos 8 caracteres", formatted["password"])
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	formatted := FormatValidationErrors(assert.AnError)
	assert.Empty(t, formatted)
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
		contains string
	}{
		{"valid password", "Str0ng&Unique", true, ""},
		{"too short", "Aa1!", false, "al menos 8 caracteres"},
		{"too long", strings.Repeat("Aa1!", 40), false, "como máximo 128 caracteres"},
		{"no uppercase", "weakpass1!", false, "letra mayúscula"},
		{"no digit", "WeakPassword!", false, "al menos un número"},
		{"common password", "P@ssw0rd", false, "demasiado común"},
		{"sequential digits", "Abc!1234xyz", false, "secuencias"},
		{"repeated chars", "Aaaa5555!Bb", false, "repetidos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidatePassword(tt.password)
			assert.Equal(t, tt.valid, result.Valid)
			if tt.contains != "" {
				found := false
				for _, msg := range result.Errors {
					if strings.Contains(msg, tt.contains) {
						found = true
						break
					}
				}
				assert.True(t, found, "expected an error containing %q, got %v", tt.contains, result.Errors)
			}
		})
	}
}

func TestHasSequentialChars(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"ascending digits", "x1234y", true},
		{"descending digits", "x4321y", true},
		{"ascending letters", "xabcdz", true},
		{"keyboard sequence", "xqwerz", true},
		{"no sequence", "x1a2b3c", false},
		{"short input", "ab", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasSequentialChars(tt.password, 4))
		})
	}
}

func TestHasRepeatedChars(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"four repeats", "xaaaay", true},
		{"three repeats", "xaaay", false},
		{"no repeats", "abcdef", false},
		{"short input", "aa", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasRepeatedChars(tt.password, 4))
		})
	}
}
