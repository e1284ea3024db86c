package sampledata

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/badger/pkg/logger"
	"github.com/viant/afs"
)

// Run generates a dataset, writes it to cfg.OutputDir and, when a base URL is
// set, verifies a running service against it.
func Run(ctx context.Context, fs afs.Service, cfg *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting sample data run",
		logger.String("outputDir", cfg.OutputDir),
		logger.Int("visitors", cfg.Visitors),
		logger.String("baseURL", cfg.BaseURL),
		logger.Bool("verbose", cfg.Verbose))

	// Step 1: Generate inputs
	ds, err := Generate(ctx, cfg, stats)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	// Step 2: Write them out
	if err := Write(ctx, fs, cfg.OutputDir, ds); err != nil {
		return nil, fmt.Errorf("writing failed: %w", err)
	}

	// Step 3: Verify a service started on them
	if cfg.BaseURL != "" {
		if err := Verify(ctx, cfg, stats); err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)
	return stats, nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "final statistics",
		logger.Int("visitors", stats.Visitors),
		logger.Int("signups", stats.Signups),
		logger.Int("aliases", stats.Aliases),
		logger.Int("typos", stats.Typos),
		logger.Int("expectedExact", stats.ExpectedExact),
		logger.Duration("duration", stats.Duration))
}
