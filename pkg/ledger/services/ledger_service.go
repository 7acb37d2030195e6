package services

import (
	"context"

	problem "github.com/sundaydevr/astral-databank-core/pkg/ledger/helpers/problem"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/models"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/repositories"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/validators"
)

// LedgerService implements the record lifecycle and the permission matrix.
// Every method takes the caller principal explicitly; nothing is read from
// ambient state, so the core stays testable in isolation.
type LedgerService struct {
	artifacts repositories.ArtifactRepository
	grants    repositories.GrantRepository
	limits    validators.Limits
	clock     Clock
}

type Option func(*LedgerService)

// WithLimits overrides the validation configuration. There is exactly one
// create path and one update path; strictness is this knob, not a separate
// entry point.
func WithLimits(l validators.Limits) Option {
	return func(s *LedgerService) { s.limits = l }
}

func WithClock(c Clock) Option {
	return func(s *LedgerService) { s.clock = c }
}

func NewLedgerService(artifacts repositories.ArtifactRepository, grants repositories.GrantRepository, opts ...Option) *LedgerService {
	s := &LedgerService{
		artifacts: artifacts,
		grants:    grants,
		limits:    validators.DefaultLimits,
		clock:     WallClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateArtifact validates every field, allocates the next sequence id and
// writes the record to the primary keyspace. Validation runs before any
// write, so a failure leaves the counter untouched.
func (s *LedgerService) CreateArtifact(ctx context.Context, caller string, in models.CreateArtifactInput) (*models.CreatedArtifact, error) {
	return s.createInto(ctx, repositories.PrimaryKeyspace, caller, in)
}

// CreateRedundantArtifact is the alternate durability entry point: identical
// validation and field layout, same sequence allocator, but the record lands
// in the replica keyspace. Nothing ever reads it back and the two keyspaces
// are not reconciled.
func (s *LedgerService) CreateRedundantArtifact(ctx context.Context, caller string, in models.CreateArtifactInput) (*models.CreatedArtifact, error) {
	return s.createInto(ctx, repositories.ReplicaKeyspace, caller, in)
}

func (s *LedgerService) createInto(ctx context.Context, ks repositories.Keyspace, caller string, in models.CreateArtifactInput) (*models.CreatedArtifact, error) {
	if err := s.checkCoreFields(in.Label, in.IntegrityHash, in.Content); err != nil {
		return nil, err
	}
	if !s.limits.Category(in.Category) {
		return nil, problem.NewMetadataInvalid("category", "category must be 1-20 characters")
	}
	if err := s.checkTags(in.Tags); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	rec := &models.ArtifactRecord{
		Label:         in.Label,
		Owner:         caller,
		IntegrityHash: in.IntegrityHash,
		Content:       in.Content,
		Category:      in.Category,
		Tags:          models.TagList(in.Tags),
		CreatedAt:     now,
		ModifiedAt:    now,
	}
	id, err := s.artifacts.CreateArtifact(ctx, ks, rec)
	if err != nil {
		return nil, err
	}
	return &models.CreatedArtifact{SequenceId: id}, nil
}

// UpdateArtifact merges new values into an existing record. Only the recorded
// owner may update; owner, category and created_at are never altered.
func (s *LedgerService) UpdateArtifact(ctx context.Context, caller string, in *models.UpdateArtifactInput) (*models.ArtifactRecord, error) {
	rec, err := s.requireOwner(ctx, in.Id, caller)
	if err != nil {
		return nil, err
	}
	if err := s.checkCoreFields(in.Label, in.IntegrityHash, in.Content); err != nil {
		return nil, err
	}
	if err := s.checkTags(in.Tags); err != nil {
		return nil, err
	}

	rec.Label = in.Label
	rec.IntegrityHash = in.IntegrityHash
	rec.Content = in.Content
	rec.Tags = models.TagList(in.Tags)
	rec.ModifiedAt = s.clock.Now()

	if err := s.artifacts.UpdateArtifact(ctx, *rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// GrantAccess writes or overwrites the (artifact, grantee) permission record.
// Only the artifact's owner may grant, never to themselves, and the duration
// is bounded by the maximum window.
func (s *LedgerService) GrantAccess(ctx context.Context, caller string, in *models.GrantInput) (*models.PermissionGrant, error) {
	if _, err := s.requireOwner(ctx, in.Id, caller); err != nil {
		return nil, err
	}
	if !validators.Grantee(caller, in.Grantee) {
		return nil, problem.NewInvalidInput("grantee", "grantee must be a principal other than the caller")
	}
	tier := models.GrantTier(in.Tier)
	if !validators.Tier(tier) {
		return nil, problem.NewPermissionLevelMismatch("tier must be viewer, editor or manager")
	}
	if !s.limits.Duration(in.Duration) {
		return nil, problem.NewTemporalBoundaryExceeded("duration must be between 1 and 52560 heights")
	}

	now := s.clock.Now()
	grant := &models.PermissionGrant{
		ArtifactID: in.Id,
		Grantee:    in.Grantee,
		Tier:       tier,
		GrantedBy:  caller,
		GrantedAt:  now,
		ExpiresAt:  now + in.Duration,
		CanModify:  in.CanModify,
	}
	if err := s.grants.SaveGrant(ctx, grant); err != nil {
		return nil, err
	}
	return grant, nil
}

// RetrieveArtifact is the point lookup by sequence id. Returns nil when the
// id has no record.
func (s *LedgerService) RetrieveArtifact(ctx context.Context, id uint64) (*models.ArtifactRecord, error) {
	return s.artifacts.GetArtifactByID(ctx, id)
}

// RetrieveGrant is the point lookup by (artifact, grantee), with expiry
// resolved against the current height. An absent pair returns nil; an
// expired record is returned with Active=false and confers no access.
func (s *LedgerService) RetrieveGrant(ctx context.Context, artifactID uint64, grantee string) (*models.GrantDetail, error) {
	grant, err := s.grants.GetGrant(ctx, artifactID, grantee)
	if err != nil || grant == nil {
		return nil, err
	}
	return &models.GrantDetail{
		PermissionGrant: *grant,
		Active:          grant.Active(s.clock.Now()),
	}, nil
}

// requireOwner is the ownership guard: a read-only check every mutating and
// granting step must pass before proceeding.
func (s *LedgerService) requireOwner(ctx context.Context, id uint64, caller string) (*models.ArtifactRecord, error) {
	rec, err := s.artifacts.GetArtifactByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, problem.NewNotFound("id", "artifact does not exist")
	}
	if rec.Owner != caller {
		return nil, problem.NewAccessDenied("caller is not the owner of this artifact")
	}
	return rec, nil
}

// checkCoreFields runs the validators shared by the create and update paths,
// in field order, surfacing the first failure.
func (s *LedgerService) checkCoreFields(label, hash, content string) error {
	if !s.limits.Label(label) {
		return problem.NewInvalidInput("label", "label must be 1-50 characters")
	}
	if !s.limits.Hash(hash) {
		return problem.NewInvalidInput("integrityHash", "integrity hash must be exactly 64 characters")
	}
	if !s.limits.Content(content) {
		return problem.NewContentValidationFailed("content", "content must be 1-200 characters")
	}
	return nil
}

// checkTags separates collection shape from element width: the collection is
// metadata structure, the elements are payload.
func (s *LedgerService) checkTags(tags []string) error {
	if !s.limits.TagShape(tags) {
		return problem.NewMetadataInvalid("tags", "tag collection must hold 1-5 elements")
	}
	if !s.limits.TagElements(tags) {
		return problem.NewContentValidationFailed("tags", "each tag must be 1-30 characters")
	}
	return nil
}
