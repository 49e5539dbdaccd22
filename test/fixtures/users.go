// Package fixtures provides shared test data builders.
package fixtures

import (
	"time"

	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/port"
)

// Bcrypt hash of "Password123!" with cost 10.
const PasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMye1J9JZ3bW7rNPRmFwAEw/NdR0f7fUlGi"

// Str returns a pointer to s for the optional profile columns.
func Str(s string) *string {
	return &s
}

// UserFixtures provides test user data.
type UserFixtures struct{}

// NewUserFixtures creates a new UserFixtures instance.
func NewUserFixtures() *UserFixtures {
	return &UserFixtures{}
}

// ActiveUser returns an activated user for testing.
func (f *UserFixtures) ActiveUser() *domain.User {
	return &domain.User{
		ID:           1,
		Email:        "ana@example.com",
		PasswordHash: PasswordHash,
		Activated:    true,
		RoleID:       3,
		CreatedAt:    time.Now().Add(-24 * time.Hour),
		UpdatedAt:    time.Now(),
	}
}

// ActiveUserWithID returns an activated user with a specific ID.
func (f *UserFixtures) ActiveUserWithID(id int64) *domain.User {
	user := f.ActiveUser()
	user.ID = id
	return user
}

// UnactivatedUser returns a user that has not confirmed its email.
func (f *UserFixtures) UnactivatedUser() *domain.User {
	user := f.ActiveUser()
	user.ID = 2
	user.Email = "pending@example.com"
	user.Activated = false
	return user
}

// AdminUser returns a user carrying the admin role.
func (f *UserFixtures) AdminUser() *domain.User {
	user := f.ActiveUser()
	user.ID = 4
	user.Email = "admin@example.com"
	user.RoleID = 2
	return user
}

// Profile returns the profile attached to a user for testing.
func (f *UserFixtures) Profile(userID int64) *domain.Profile {
	return &domain.Profile{
		ID:        userID,
		UserID:    userID,
		FirstName: "Ana",
		LastName:  "García",
		DNIType:   Str("CC"),
		DNI:       Str("1020304050"),
		Prefix:    Str("+57"),
		Mobile:    Str("3001234567"),
		CreatedAt: time.Now().Add(-24 * time.Hour),
		UpdatedAt: time.Now(),
	}
}

// RegisterRequest returns a valid registration request.
func (f *UserFixtures) RegisterRequest() *port.RegisterRequest {
	return &port.RegisterRequest{
		FirstName: "Ana",
		LastName:  "García",
		DNIType:   Str("CC"),
		DNI:       Str("1020304050"),
		Prefix:    Str("+57"),
		Mobile:    Str("3001234567"),
		Email:     "ana@example.com",
		Password:  "Password123!",
	}
}

// UsersList returns a list of users with profiles for testing pagination.
func (f *UserFixtures) UsersList(count int) []port.UserWithProfile {
	rows := make([]port.UserWithProfile, count)
	for i := 0; i < count; i++ {
		id := int64(i + 1)
		rows[i] = port.UserWithProfile{
			User: domain.User{
				ID:           id,
				Email:        "user" + string(rune('a'+i%26)) + "@example.com",
				PasswordHash: PasswordHash,
				Activated:    i%5 != 0,
				RoleID:       3,
				CreatedAt:    time.Now().Add(-time.Duration(i) * time.Hour),
				UpdatedAt:    time.Now(),
			},
			Profile: *f.Profile(id),
		}
	}
	return rows
}

// RoleFixtures provides test role data.
type RoleFixtures struct{}

// NewRoleFixtures creates a new RoleFixtures instance.
func NewRoleFixtures() *RoleFixtures {
	return &RoleFixtures{}
}

// DefaultRoles returns the three seeded roles.
func (f *RoleFixtures) DefaultRoles() []domain.Role {
	names := []string{"SUPER_ADMINISTRADOR", "ADMINISTRADOR", "USUARIO"}
	roles := make([]domain.Role, len(names))
	for i, name := range names {
		roles[i] = domain.Role{
			ID:        int64(i + 1),
			Name:      name,
			CreatedAt: time.Now().Add(-48 * time.Hour),
			UpdatedAt: time.Now().Add(-48 * time.Hour),
		}
	}
	return roles
}

// ResetCodeFixtures provides test password reset code data.
type ResetCodeFixtures struct{}

// NewResetCodeFixtures creates a new ResetCodeFixtures instance.
func NewResetCodeFixtures() *ResetCodeFixtures {
	return &ResetCodeFixtures{}
}

// LiveCode returns an unexpired reset code for a user.
func (f *ResetCodeFixtures) LiveCode(userID int64) *domain.PasswordResetCode {
	return &domain.PasswordResetCode{
		ID:        1,
		UserID:    userID,
		Code:      "483920",
		ExpiresAt: time.Now().Add(15 * time.Minute),
		CreatedAt: time.Now(),
	}
}

// ExpiredCode returns a reset code that is already past its expiry.
func (f *ResetCodeFixtures) ExpiredCode(userID int64) *domain.PasswordResetCode {
	code := f.LiveCode(userID)
	code.ID = 2
	code.Code = "110533"
	code.ExpiresAt = time.Now().Add(-time.Minute)
	return code
}
