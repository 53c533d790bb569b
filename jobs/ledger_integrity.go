package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/cinefin/cinefin/internal/ledger/reports"
	"github.com/cinefin/cinefin/internal/observability"
)

// TrialBalancer is the slice of the report service the sweep needs.
type TrialBalancer interface {
	TrialBalance(ctx context.Context, start, end time.Time) (reports.TrialBalance, error)
}

// IntegrityChecker recomputes the all-time trial balance and flags drift
// between total debits and credits.
type IntegrityChecker struct {
	reports TrialBalancer
	epoch   time.Time
	metrics *observability.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

func NewIntegrityChecker(reportSvc TrialBalancer, epoch time.Time, metrics *observability.Metrics, logger *slog.Logger) *IntegrityChecker {
	return &IntegrityChecker{
		reports: reportSvc,
		epoch:   epoch,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// HandleLedgerIntegrityTask processes TaskLedgerIntegrity tasks.
func (c *IntegrityChecker) HandleLedgerIntegrityTask(ctx context.Context, t *asynq.Task) error {
	var payload LedgerIntegrityPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	asOf := c.now().UTC()
	if payload.AsOf != "" {
		parsed, err := time.Parse("2006-01-02", payload.AsOf)
		if err != nil {
			c.logger.Warn("ledger integrity: bad as_of, skipping", slog.String("as_of", payload.AsOf))
			return asynq.SkipRetry
		}
		asOf = parsed
	}

	tb, err := c.reports.TrialBalance(ctx, c.epoch, asOf)
	if err != nil {
		return err
	}
	if !tb.IsBalanced {
		c.metrics.UnbalancedCheck()
		c.logger.Error("ledger integrity: trial balance out of balance",
			slog.Float64("total_debits", tb.TotalDebits),
			slog.Float64("total_credits", tb.TotalCredits),
			slog.Time("as_of", asOf),
		)
		return nil
	}
	c.logger.Info("ledger integrity: trial balance verified",
		slog.Float64("total_debits", tb.TotalDebits),
		slog.Time("as_of", asOf),
	)
	return nil
}
