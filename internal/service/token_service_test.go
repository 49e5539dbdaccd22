package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewhigh08/account-service/internal/config"
	"github.com/andrewhigh08/account-service/internal/service"
)

func newTestTokenService() *service.TokenService {
	return service.NewTokenService(config.JWTConfig{
		AccessSecret:       "test-access-secret",
		RefreshSecret:      "test-refresh-secret",
		ActivationSecret:   "test-activation-secret",
		AccessTokenTTL:     15, // minutes
		RefreshTokenTTL:    7,  // days
		ActivationTokenTTL: 24, // hours
	})
}

func TestTokenService_IssuePair_SharedJTI(t *testing.T) {
	tokens := newTestTokenService()

	pair, jti, err := tokens.IssuePair(42)
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.NotEmpty(t, jti)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	accessClaims, err := tokens.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	refreshClaims, err := tokens.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)

	assert.Equal(t, int64(42), accessClaims.UserID)
	assert.Equal(t, int64(42), refreshClaims.UserID)
	assert.Equal(t, jti, accessClaims.ID)
	assert.Equal(t, jti, refreshClaims.ID)
}

func TestTokenService_IssuePair_FreshJTIPerPair(t *testing.T) {
	tokens := newTestTokenService()

	_, jti1, err := tokens.IssuePair(1)
	require.NoError(t, err)
	_, jti2, err := tokens.IssuePair(1)
	require.NoError(t, err)

	assert.NotEqual(t, jti1, jti2)
}

func TestTokenService_SecretsAreNotInterchangeable(t *testing.T) {
	tokens := newTestTokenService()

	pair, _, err := tokens.IssuePair(1)
	require.NoError(t, err)

	activation, _, err := tokens.IssueActivationToken(1)
	require.NoError(t, err)

	// Each token kind verifies only against its own secret
	_, err = tokens.VerifyRefresh(pair.AccessToken)
	assert.Error(t, err)
	_, err = tokens.VerifyAccess(pair.RefreshToken)
	assert.Error(t, err)
	_, err = tokens.VerifyAccess(activation)
	assert.Error(t, err)
	_, err = tokens.VerifyActivation(pair.AccessToken)
	assert.Error(t, err)
}

func TestTokenService_VerifyActivation(t *testing.T) {
	tokens := newTestTokenService()

	token, jti, err := tokens.IssueActivationToken(7)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, jti)

	claims, err := tokens.VerifyActivation(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, jti, claims.ID)
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	tokens := newTestTokenService()

	for _, tokenString := range []string{
		"",
		"notatoken",
		"eyJhbGciOiJIUzI1NiJ9.broken",
		"a.b.c",
	} {
		claims, err := tokens.VerifyAccess(tokenString)
		assert.Error(t, err, "token %q should be rejected", tokenString)
		assert.Nil(t, claims)
	}
}

func TestTokenService_Verify_TamperedSignature(t *testing.T) {
	tokens := newTestTokenService()

	pair, _, err := tokens.IssuePair(1)
	require.NoError(t, err)

	tampered := pair.AccessToken[:len(pair.AccessToken)-2] + "xx"
	claims, err := tokens.VerifyAccess(tampered)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestTokenService_Verify_ExpiredToken(t *testing.T) {
	// Zero TTL means the token is already expired when verified
	expired := service.NewTokenService(config.JWTConfig{
		AccessSecret:    "test-access-secret",
		RefreshSecret:   "test-refresh-secret",
		AccessTokenTTL:  0,
		RefreshTokenTTL: 7,
	})

	pair, _, err := expired.IssuePair(1)
	require.NoError(t, err)

	claims, err := expired.VerifyAccess(pair.AccessToken)
	assert.Error(t, err)
	assert.Nil(t, claims)
}
