package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/drinktab/drinktab/internal/domain/model"
)

// StatsSource exposes the subset of application functionality required by the reporter.
type StatsSource interface {
	LedgerTotals(ctx context.Context) (*model.LedgerTotals, error)
}

// LedgerReporter periodically logs the ledger totals so operators can
// watch the tab balance drift without hitting the HTTP API.
type LedgerReporter struct {
	source   StatsSource
	interval time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewLedgerReporter constructs the background reporter.
func NewLedgerReporter(source StatsSource, interval time.Duration, logger *slog.Logger) *LedgerReporter {
	if interval <= 0 {
		interval = time.Minute
	}
	return &LedgerReporter{
		source:   source,
		interval: interval,
		logger:   logger,
	}
}

// Start launches background reporting.
func (r *LedgerReporter) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go r.run(runCtx)
}

// Stop waits for the reporting loop to finish.
func (r *LedgerReporter) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *LedgerReporter) run(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.report(ctx)
		}
	}
}

func (r *LedgerReporter) report(ctx context.Context) {
	totals, err := r.source.LedgerTotals(ctx)
	if err != nil {
		r.logger.Error("ledger totals fetch failed", slog.String("error", err.Error()))
		return
	}

	r.logger.Info("ledger totals",
		slog.Int64("postpaid_total", totals.PostpaidTotal),
		slog.Int64("prepaid_total", totals.PrepaidTotal),
		slog.Int64("postpaid_debt", totals.PostpaidDebt),
		slog.Int("postpaid_count", totals.PostpaidCount),
		slog.Int("prepaid_count", totals.PrepaidCount),
	)
}
