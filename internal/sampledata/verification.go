package sampledata

import (
	"context"
	"fmt"

	"github.com/okian/badger/internal/domain/types"
	"github.com/okian/badger/pkg/logger"
)

// Verify checks that a service started on this dataset reports the visitor
// count, exact matches and unclaimed signups the generator planned, and that
// no session went below zero seats.
func Verify(ctx context.Context, cfg *Config, stats *Stats) error {
	logger.Get().Info(ctx, "verifying service results", logger.String("baseURL", cfg.BaseURL))
	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	if _, err := client.get(ctx, "/healthz"); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	var overview types.Overview
	if err := client.getJSON(ctx, "/api/overview", &overview); err != nil {
		return err
	}
	if err := verifyOverview(overview, stats); err != nil {
		return err
	}

	var unlinked types.Unlinked
	if err := client.getJSON(ctx, "/api/unlinked", &unlinked); err != nil {
		return err
	}
	if len(unlinked.Signups) != stats.Typos {
		return fmt.Errorf("%w: %d unclaimed signups, want %d", ErrMismatch, len(unlinked.Signups), stats.Typos)
	}

	logger.Get().Info(ctx, "service results verified",
		logger.Int("visitors", overview.VisitorsCount),
		logger.Int("exactMatches", overview.VisitorsBreakoutCount),
		logger.Int("unclaimed", len(unlinked.Signups)))
	return nil
}

func verifyOverview(o types.Overview, stats *Stats) error {
	if o.VisitorsCount != stats.Visitors {
		return fmt.Errorf("%w: %d visitors, want %d", ErrMismatch, o.VisitorsCount, stats.Visitors)
	}
	if o.VisitorsBreakoutCount != stats.ExpectedExact {
		return fmt.Errorf("%w: %d exact matches, want %d", ErrMismatch, o.VisitorsBreakoutCount, stats.ExpectedExact)
	}
	for _, slot := range [][]types.Session{o.MorningBreakouts, o.AfternoonBreakouts} {
		for _, s := range slot {
			if s.Remaining < 0 || s.Remaining > s.Capacity {
				return fmt.Errorf("%w: session %q has %d of %d seats left", ErrMismatch, s.Name, s.Remaining, s.Capacity)
			}
		}
	}
	return nil
}
