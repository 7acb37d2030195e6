package services

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/teris-io/shortid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// auditConcurrency bounds the per-artifact fan-out of the expiry audit.
const auditConcurrency = 4

// AuditExpiredGrants walks every artifact carrying grants and logs how many
// of them have lapsed at the current height. Strictly read-only: grants are
// never pruned, they only lapse, so the audit is an observability aid and not
// a revoke mechanism.
func (s *LedgerService) AuditExpiredGrants(ctx context.Context) error {
	runID, err := shortid.Generate()
	if err != nil {
		runID = "grant-audit"
	}
	now := s.clock.Now()

	ids, err := s.grants.GrantedArtifactIDs(ctx)
	if err != nil {
		return err
	}

	var expired atomic.Int64
	sem := semaphore.NewWeighted(auditConcurrency)
	g, ctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)
			n, err := s.grants.CountExpired(ctx, id, now)
			if err != nil {
				return err
			}
			expired.Add(n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Printf("[%s] grant expiry audit: height=%d artifacts=%d expired=%d", runID, now, len(ids), expired.Load())
	return nil
}
