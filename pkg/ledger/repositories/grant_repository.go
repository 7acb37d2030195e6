package repositories

import (
	"context"
	"errors"

	"github.com/sundaydevr/astral-databank-core/pkg/ledger/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GrantRepository interface {
	SaveGrant(ctx context.Context, grant *models.PermissionGrant) error
	GetGrant(ctx context.Context, artifactID uint64, grantee string) (*models.PermissionGrant, error)
	GrantedArtifactIDs(ctx context.Context) ([]uint64, error)
	CountExpired(ctx context.Context, artifactID uint64, now uint64) (int64, error)
}

type grantRepository struct {
	db *gorm.DB
}

func NewGrantRepository(db *gorm.DB) GrantRepository {
	return &grantRepository{db: db}
}

// SaveGrant inserts or overwrites the grant for the (artifact, grantee) pair.
// A re-grant silently replaces the prior record; there is no revoke.
func (r *grantRepository) SaveGrant(ctx context.Context, grant *models.PermissionGrant) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "artifact_id"}, {Name: "grantee"}},
		UpdateAll: true,
	}).Create(grant).Error
}

// GetGrant returns (nil, nil) when no record exists for the pair. Expiry is
// not evaluated here; callers compare against the current ledger height.
func (r *grantRepository) GetGrant(ctx context.Context, artifactID uint64, grantee string) (*models.PermissionGrant, error) {
	var grant models.PermissionGrant
	err := r.db.WithContext(ctx).
		Where("artifact_id = ? AND grantee = ?", artifactID, grantee).
		First(&grant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

// GrantedArtifactIDs lists the distinct artifacts that carry at least one
// grant. Used by the expiry audit job.
func (r *grantRepository) GrantedArtifactIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).Model(&models.PermissionGrant{}).
		Distinct("artifact_id").
		Order("artifact_id").
		Pluck("artifact_id", &ids).Error
	return ids, err
}

// CountExpired counts the lapsed grants of one artifact at the given height.
func (r *grantRepository) CountExpired(ctx context.Context, artifactID uint64, now uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.PermissionGrant{}).
		Where("artifact_id = ? AND expires_at < ?", artifactID, now).
		Count(&n).Error
	return n, err
}
