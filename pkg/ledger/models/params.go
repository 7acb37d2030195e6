package models

// CreateArtifactInput is the request body for registering a new artifact.
// Field-level length and shape rules are enforced by the validators package;
// binding only guards presence.
type CreateArtifactInput struct {
	Label         string   `json:"label" binding:"required"`
	IntegrityHash string   `json:"integrityHash" binding:"required"`
	Content       string   `json:"content" binding:"required"`
	Category      string   `json:"category" binding:"required"`
	Tags          []string `json:"tags" binding:"required"`
}

// UpdateArtifactInput is the request body for mutating an existing artifact.
// Category is deliberately absent: it is immutable after creation.
type UpdateArtifactInput struct {
	Id            uint64   `path:"id"`
	Label         string   `json:"label" binding:"required"`
	IntegrityHash string   `json:"integrityHash" binding:"required"`
	Content       string   `json:"content" binding:"required"`
	Tags          []string `json:"tags" binding:"required"`
}

// GrantInput is the request body for issuing (or overwriting) a permission
// grant on an artifact. Duration is expressed in ledger heights and is not
// marked required: zero must reach the temporal-bounds check, not die at the
// binding.
type GrantInput struct {
	Id        uint64 `path:"id"`
	Grantee   string `json:"grantee" binding:"required"`
	Tier      string `json:"tier" binding:"required"`
	Duration  uint64 `json:"duration"`
	CanModify bool   `json:"canModify"`
}

type RetrieveArtifactRequest struct {
	Id uint64 `path:"id"`
}

type RetrieveGrantRequest struct {
	Id      uint64 `path:"id"`
	Grantee string `path:"grantee"`
}

// CreatedArtifact is returned by both creation entry points.
type CreatedArtifact struct {
	SequenceId uint64 `json:"sequenceId"`
}
