package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
)

func TestActivationRepository_CreateAndFindByJTI(t *testing.T) {
	repo := NewActivationRepository(newTestDB(t))
	ctx := context.Background()

	activation := &domain.UserActivation{UserID: 5, Token: "activation-jwt", JTI: "jti-act-1"}
	require.NoError(t, repo.Create(ctx, activation))
	assert.NotZero(t, activation.ID)

	found, err := repo.FindByJTI(ctx, "jti-act-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), found.UserID)
	assert.Equal(t, "activation-jwt", found.Token)
}

func TestActivationRepository_FindByJTI_NotFound(t *testing.T) {
	repo := NewActivationRepository(newTestDB(t))

	_, err := repo.FindByJTI(context.Background(), "never-issued")

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
}

func TestActivationRepository_DeleteByUser(t *testing.T) {
	repo := NewActivationRepository(newTestDB(t))
	ctx := context.Background()

	mine := &domain.UserActivation{UserID: 5, Token: "jwt-1", JTI: "jti-1"}
	other := &domain.UserActivation{UserID: 6, Token: "jwt-2", JTI: "jti-2"}
	require.NoError(t, repo.Create(ctx, mine))
	require.NoError(t, repo.Create(ctx, other))

	require.NoError(t, repo.DeleteByUser(ctx, 5))

	_, err := repo.FindByJTI(ctx, "jti-1")
	assert.Error(t, err)

	_, err = repo.FindByJTI(ctx, "jti-2")
	assert.NoError(t, err)
}
