package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	problem "github.com/sundaydevr/astral-databank-core/pkg/ledger/helpers/problem"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/middleware"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/models"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/services"
)

// LedgerController binds HTTP requests to the LedgerService
type LedgerController struct {
	Service *services.LedgerService
}

// NewLedgerController creates a new controller
func NewLedgerController(s *services.LedgerService) *LedgerController {
	return &LedgerController{Service: s}
}

// CreateArtifact handles POST /artifacts
func (c *LedgerController) CreateArtifact(ctx *gin.Context, body *models.CreateArtifactInput) (*models.CreatedArtifact, error) {
	return c.Service.CreateArtifact(ctx.Request.Context(), middleware.Principal(ctx), *body)
}

// CreateReplica handles POST /replicas, the alternate durability entry point
func (c *LedgerController) CreateReplica(ctx *gin.Context, body *models.CreateArtifactInput) (*models.CreatedArtifact, error) {
	return c.Service.CreateRedundantArtifact(ctx.Request.Context(), middleware.Principal(ctx), *body)
}

// UpdateArtifact handles PUT /artifacts/:id
func (c *LedgerController) UpdateArtifact(ctx *gin.Context, body *models.UpdateArtifactInput) (*models.ArtifactRecord, error) {
	return c.Service.UpdateArtifact(ctx.Request.Context(), middleware.Principal(ctx), body)
}

// GrantAccess handles POST /artifacts/:id/grants
func (c *LedgerController) GrantAccess(ctx *gin.Context, body *models.GrantInput) (*models.PermissionGrant, error) {
	return c.Service.GrantAccess(ctx.Request.Context(), middleware.Principal(ctx), body)
}

// RetrieveArtifact handles GET /artifacts/:id
func (c *LedgerController) RetrieveArtifact(ctx *gin.Context, params *models.RetrieveArtifactRequest) (*models.ArtifactRecord, error) {
	rec, err := c.Service.RetrieveArtifact(ctx.Request.Context(), params.Id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, problem.NewNotFound(fmt.Sprintf("%d", params.Id), "Artifact not found")
	}
	return rec, nil
}

// RetrieveGrant handles GET /artifacts/:id/grants/:grantee
func (c *LedgerController) RetrieveGrant(ctx *gin.Context, params *models.RetrieveGrantRequest) (*models.GrantDetail, error) {
	grant, err := c.Service.RetrieveGrant(ctx.Request.Context(), params.Id, params.Grantee)
	if err != nil {
		return nil, err
	}
	if grant == nil {
		return nil, problem.NewNotFound(params.Grantee, "No grant recorded for this artifact and grantee")
	}
	return grant, nil
}
