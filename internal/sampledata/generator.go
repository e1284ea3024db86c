// Package sampledata generates deterministic conference inputs (visitors,
// breakout signups and email aliases) and checks a running service against
// the outcome they imply.
package sampledata

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/badger/pkg/logger"
)

var (
	firstNames = []string{"Anna", "Ben", "Chiara", "Dmitri", "Elif", "Femi", "Grace", "Hiro", "Ines", "Jonas", "Kaveh", "Lena"}
	lastNames  = []string{"Lee", "Moreau", "Nakamura", "Okafor", "Petrov", "Quinn", "Rossi", "Svensson"}
)

// VisitorRow is one line of the visitors CSV.
type VisitorRow struct {
	Email string `csv:"email"`
	Name  string `csv:"name"`
}

// SignupRow is one line of the header-less signups CSV, in column order.
type SignupRow struct {
	Date      string `csv:"date"`
	Email     string `csv:"email"`
	Morning   string `csv:"morning"`
	Afternoon string `csv:"afternoon"`
	Void      string `csv:"void"`
}

// Dataset is one generated set of service inputs.
type Dataset struct {
	Visitors []VisitorRow
	Signups  []SignupRow
	Aliases  map[string]string
}

// Generate builds a dataset from cfg. The same cfg always yields the same
// dataset.
func Generate(ctx context.Context, cfg *Config, stats *Stats) (*Dataset, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	logger.Get().Info(ctx, "generating sample inputs", logger.Int("visitors", cfg.Visitors))

	ds := &Dataset{
		Visitors: make([]VisitorRow, 0, cfg.Visitors),
		Aliases:  make(map[string]string),
	}
	for i := 0; i < cfg.Visitors; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during generation: %w", err)
		}
		first := firstNames[i%len(firstNames)]
		last := lastNames[(i/len(firstNames))%len(lastNames)]
		local := strings.ToLower(first) + "." + strings.ToLower(last) + strconv.Itoa(i+1)
		canonical := local + "@" + visitorDomain

		visitor := VisitorRow{Email: canonical, Name: first + " " + last}
		if (i+1)%cfg.SignupEvery != 0 {
			ds.Visitors = append(ds.Visitors, visitor)
			continue
		}

		k := (i + 1) / cfg.SignupEvery
		signup := SignupRow{
			Date:      signupDate,
			Email:     canonical,
			Morning:   cfg.Morning[k%len(cfg.Morning)],
			Afternoon: cfg.Afternoon[k%len(cfg.Afternoon)],
		}
		switch {
		case cfg.AliasEvery > 0 && k%cfg.AliasEvery == 0:
			visitor.Email = local + "@" + typoDomain
			ds.Aliases[visitor.Email] = canonical
			stats.Aliases++
			stats.ExpectedExact++
		case cfg.TypoEvery > 0 && k%cfg.TypoEvery == 0:
			signup.Email = misspell(local) + "@" + visitorDomain
			stats.Typos++
		default:
			stats.ExpectedExact++
		}
		ds.Visitors = append(ds.Visitors, visitor)
		ds.Signups = append(ds.Signups, signup)
	}

	stats.Visitors = len(ds.Visitors)
	stats.Signups = len(ds.Signups)
	logger.Get().Info(ctx, "generated sample inputs",
		logger.Int("visitors", stats.Visitors),
		logger.Int("signups", stats.Signups),
		logger.Int("aliases", stats.Aliases),
		logger.Int("typos", stats.Typos))

	return ds, nil
}

// misspell drops the second character of a local part.
func misspell(local string) string {
	if len(local) < 2 {
		return local + "x"
	}
	return local[:1] + local[2:]
}

func validate(cfg *Config) error {
	switch {
	case cfg == nil:
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	case cfg.Visitors <= 0:
		return fmt.Errorf("%w: visitors must be > 0", ErrInvalidConfig)
	case cfg.SignupEvery <= 0:
		return fmt.Errorf("%w: signup interval must be > 0", ErrInvalidConfig)
	case cfg.AliasEvery < 0 || cfg.TypoEvery < 0:
		return fmt.Errorf("%w: intervals must not be negative", ErrInvalidConfig)
	case len(cfg.Morning) == 0 || len(cfg.Afternoon) == 0:
		return fmt.Errorf("%w: both slots need at least one session", ErrInvalidConfig)
	}
	return nil
}
