package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	problem "github.com/sundaydevr/astral-databank-core/pkg/ledger/helpers/problem"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/models"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/repositories"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/services"
)

// stubArtifacts mocks repositories.ArtifactRepository for controller tests
type stubArtifacts struct {
	createFn func(ctx context.Context, ks repositories.Keyspace, rec *models.ArtifactRecord) (uint64, error)
	getFn    func(ctx context.Context, id uint64) (*models.ArtifactRecord, error)
}

func (s *stubArtifacts) CreateArtifact(ctx context.Context, ks repositories.Keyspace, rec *models.ArtifactRecord) (uint64, error) {
	return s.createFn(ctx, ks, rec)
}
func (s *stubArtifacts) GetArtifactByID(ctx context.Context, id uint64) (*models.ArtifactRecord, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, nil
}

// unused
func (s *stubArtifacts) UpdateArtifact(ctx context.Context, rec models.ArtifactRecord) error {
	return nil
}
func (s *stubArtifacts) CurrentSequence(ctx context.Context) (uint64, error) { return 0, nil }

type stubGrants struct {
	getFn func(ctx context.Context, artifactID uint64, grantee string) (*models.PermissionGrant, error)
}

func (s *stubGrants) SaveGrant(ctx context.Context, grant *models.PermissionGrant) error { return nil }
func (s *stubGrants) GetGrant(ctx context.Context, artifactID uint64, grantee string) (*models.PermissionGrant, error) {
	if s.getFn != nil {
		return s.getFn(ctx, artifactID, grantee)
	}
	return nil, nil
}
func (s *stubGrants) GrantedArtifactIDs(ctx context.Context) ([]uint64, error) { return nil, nil }
func (s *stubGrants) CountExpired(ctx context.Context, artifactID uint64, now uint64) (int64, error) {
	return 0, nil
}

type fixedClock uint64

func (c fixedClock) Now() uint64 { return uint64(c) }

func testContext(t *testing.T, principal string) *gin.Context {
	t.Helper()
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest("POST", "/v1/artifacts", nil)
	if principal != "" {
		ctx.Set("principal", principal)
	}
	return ctx
}

func TestCreateArtifact_Handler(t *testing.T) {
	arts := &stubArtifacts{
		createFn: func(ctx context.Context, ks repositories.Keyspace, rec *models.ArtifactRecord) (uint64, error) {
			assert.Equal(t, repositories.PrimaryKeyspace, ks)
			assert.Equal(t, "alice", rec.Owner)
			rec.SequenceID = 7
			return 7, nil
		},
	}
	svc := services.NewLedgerService(arts, &stubGrants{}, services.WithClock(fixedClock(1)))
	ctrl := NewLedgerController(svc)

	created, err := ctrl.CreateArtifact(testContext(t, "alice"), &models.CreateArtifactInput{
		Label:         "L",
		IntegrityHash: strings.Repeat("h", 64),
		Content:       "c",
		Category:      "cat",
		Tags:          []string{"t1"},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), created.SequenceId)
}

func TestCreateReplica_Handler(t *testing.T) {
	arts := &stubArtifacts{
		createFn: func(ctx context.Context, ks repositories.Keyspace, rec *models.ArtifactRecord) (uint64, error) {
			assert.Equal(t, repositories.ReplicaKeyspace, ks)
			rec.SequenceID = 8
			return 8, nil
		},
	}
	svc := services.NewLedgerService(arts, &stubGrants{}, services.WithClock(fixedClock(1)))
	ctrl := NewLedgerController(svc)

	created, err := ctrl.CreateReplica(testContext(t, "alice"), &models.CreateArtifactInput{
		Label:         "L",
		IntegrityHash: strings.Repeat("h", 64),
		Content:       "c",
		Category:      "cat",
		Tags:          []string{"t1"},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(8), created.SequenceId)
}

func TestRetrieveArtifact_Handler_NotFound(t *testing.T) {
	svc := services.NewLedgerService(&stubArtifacts{}, &stubGrants{}, services.WithClock(fixedClock(1)))
	ctrl := NewLedgerController(svc)

	_, err := ctrl.RetrieveArtifact(testContext(t, ""), &models.RetrieveArtifactRequest{Id: 99})
	require.Error(t, err)
	apiErr, ok := err.(problem.APIError)
	require.True(t, ok)
	assert.Equal(t, 404, apiErr.Status)
}

func TestRetrieveGrant_Handler(t *testing.T) {
	grants := &stubGrants{
		getFn: func(ctx context.Context, artifactID uint64, grantee string) (*models.PermissionGrant, error) {
			return &models.PermissionGrant{
				ArtifactID: artifactID, Grantee: grantee,
				Tier: models.TierManager, GrantedAt: 5, ExpiresAt: 10,
			}, nil
		},
	}
	svc := services.NewLedgerService(&stubArtifacts{}, grants, services.WithClock(fixedClock(8)))
	ctrl := NewLedgerController(svc)

	detail, err := ctrl.RetrieveGrant(testContext(t, ""), &models.RetrieveGrantRequest{Id: 3, Grantee: "bob"})
	require.NoError(t, err)
	assert.True(t, detail.Active)
	assert.Equal(t, models.TierManager, detail.Tier)
}

func TestRetrieveGrant_Handler_NotFound(t *testing.T) {
	svc := services.NewLedgerService(&stubArtifacts{}, &stubGrants{}, services.WithClock(fixedClock(1)))
	ctrl := NewLedgerController(svc)

	_, err := ctrl.RetrieveGrant(testContext(t, ""), &models.RetrieveGrantRequest{Id: 3, Grantee: "bob"})
	require.Error(t, err)
	apiErr, ok := err.(problem.APIError)
	require.True(t, ok)
	assert.Equal(t, 404, apiErr.Status)
}
