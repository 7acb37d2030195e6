package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/models"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/repositories"
)

func TestGrantRepository_SaveAndGet(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGrantRepository(db)
	ctx := context.Background()

	grant := &models.PermissionGrant{
		ArtifactID: 1,
		Grantee:    "bob",
		Tier:       models.TierEditor,
		GrantedBy:  "alice",
		GrantedAt:  100,
		ExpiresAt:  200,
		CanModify:  true,
	}
	require.NoError(t, repo.SaveGrant(ctx, grant))

	got, err := repo.GetGrant(ctx, 1, "bob")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.TierEditor, got.Tier)
	assert.Equal(t, uint64(200), got.ExpiresAt)
	assert.True(t, got.CanModify)
}

func TestGrantRepository_RegrantOverwrites(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGrantRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveGrant(ctx, &models.PermissionGrant{
		ArtifactID: 1, Grantee: "bob", Tier: models.TierEditor,
		GrantedBy: "alice", GrantedAt: 100, ExpiresAt: 200,
	}))
	require.NoError(t, repo.SaveGrant(ctx, &models.PermissionGrant{
		ArtifactID: 1, Grantee: "bob", Tier: models.TierViewer,
		GrantedBy: "alice", GrantedAt: 150, ExpiresAt: 200,
	}))

	got, err := repo.GetGrant(ctx, 1, "bob")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.TierViewer, got.Tier)
	assert.Equal(t, uint64(150), got.GrantedAt)
}

func TestGrantRepository_MissingPair(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGrantRepository(db)

	got, err := repo.GetGrant(context.Background(), 1, "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGrantRepository_ExpiryAccounting(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGrantRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveGrant(ctx, &models.PermissionGrant{
		ArtifactID: 1, Grantee: "bob", Tier: models.TierViewer,
		GrantedBy: "alice", GrantedAt: 10, ExpiresAt: 50,
	}))
	require.NoError(t, repo.SaveGrant(ctx, &models.PermissionGrant{
		ArtifactID: 1, Grantee: "carol", Tier: models.TierViewer,
		GrantedBy: "alice", GrantedAt: 10, ExpiresAt: 500,
	}))
	require.NoError(t, repo.SaveGrant(ctx, &models.PermissionGrant{
		ArtifactID: 7, Grantee: "bob", Tier: models.TierManager,
		GrantedBy: "dave", GrantedAt: 10, ExpiresAt: 20,
	}))

	ids, err := repo.GrantedArtifactIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 7}, ids)

	expired, err := repo.CountExpired(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	expired, err = repo.CountExpired(ctx, 7, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)
}
