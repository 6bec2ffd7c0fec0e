package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/drinktab/drinktab/internal/domain/model"
	testhelpers "github.com/drinktab/drinktab/internal/test"
)

func TestNewLedgerReporterDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	rep := NewLedgerReporter(&testhelpers.StatsSourceStub{}, 0, logger)
	if rep.interval != time.Minute {
		t.Fatalf("expected interval default to a minute, got %v", rep.interval)
	}
}

func TestLedgerReporterReports(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	source := &testhelpers.StatsSourceStub{Totals: &model.LedgerTotals{PostpaidTotal: 850, PrepaidCount: 2}}
	rep := NewLedgerReporter(source, 10*time.Millisecond, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rep.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for source.Calls() == 0 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for a totals report")
		case <-time.After(10 * time.Millisecond):
		}
	}

	rep.Stop()
}

func TestLedgerReporterSurvivesSourceErrors(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	source := &testhelpers.StatsSourceStub{Err: errors.New("store offline")}
	rep := NewLedgerReporter(source, 5*time.Millisecond, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rep.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for source.Calls() < 2 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for the loop to keep polling after an error")
		case <-time.After(10 * time.Millisecond):
		}
	}

	rep.Stop()
}

func TestLedgerReporterStopIsIdempotent(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	rep := NewLedgerReporter(&testhelpers.StatsSourceStub{}, 10*time.Millisecond, logger)

	rep.Start(context.Background())
	rep.Stop()
	rep.Stop()
}
