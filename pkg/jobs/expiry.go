package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/services"
	"github.com/sundaydevr/astral-databank-core/pkg/tools"
)

// ScheduleDailyExpiryAudit sets up a cron job that audits lapsed grants every
// day. The audit only counts and logs; grants are never revoked or pruned.
func ScheduleDailyExpiryAudit(ctx context.Context, svc *services.LedgerService) *cron.Cron {
	c := cron.New()
	_, _ = c.AddFunc("@daily", func() {
		tools.Dispatch(context.Background(), "grant_expiry_audit", func(ctx context.Context) error {
			return svc.AuditExpiredGrants(ctx)
		})
	})
	c.Start()

	go func() {
		<-ctx.Done()
		c.Stop()
	}()
	return c
}
