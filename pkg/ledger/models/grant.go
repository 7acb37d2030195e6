package models

// GrantTier classifies the access level of a permission grant.
type GrantTier string

const (
	TierViewer  GrantTier = "viewer"
	TierEditor  GrantTier = "editor"
	TierManager GrantTier = "manager"
)

// PermissionGrant authorizes a non-owner principal on one artifact for a
// bounded number of ledger heights. The (artifact, grantee) pair is the
// identity: a later grant for the same pair overwrites the earlier one.
// There is no revoke; a grant simply lapses once the ledger height passes
// ExpiresAt.
type PermissionGrant struct {
	ArtifactID uint64    `gorm:"column:artifact_id;primaryKey;autoIncrement:false" json:"artifactId"`
	Grantee    string    `gorm:"column:grantee;primaryKey" json:"grantee"`
	Tier       GrantTier `gorm:"column:tier" json:"tier"`
	GrantedBy  string    `gorm:"column:granted_by" json:"grantedBy"`
	GrantedAt  uint64    `gorm:"column:granted_at" json:"grantedAt"`
	ExpiresAt  uint64    `gorm:"column:expires_at;index" json:"expiresAt"`
	CanModify  bool      `gorm:"column:can_modify" json:"canModify"`
}

func (PermissionGrant) TableName() string { return "permission_grants" }

// Active reports whether the grant still confers access at the given ledger
// height. An expired grant is equivalent to no grant at all.
func (g *PermissionGrant) Active(now uint64) bool {
	return now <= g.ExpiresAt
}

// GrantDetail is the external view of a grant, with the expiry already
// resolved against the current ledger height.
type GrantDetail struct {
	PermissionGrant
	Active bool `json:"active"`
}
