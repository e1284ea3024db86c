package service

import (
	repository "github.com/okian/badger/internal/adapters/repository"
	"github.com/okian/badger/internal/adapters/source"
	"github.com/okian/badger/internal/domain/assign"
	"github.com/okian/badger/internal/domain/scoring"
	"github.com/okian/badger/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithInputs sets the locations of the visitors CSV, signups CSV and alias
// YAML. An empty aliases location disables aliasing.
func WithInputs(visitors, signups, aliases string) Option {
	return func(s *Service) {
		s.visitorsPath = visitors
		s.signupsPath = signups
		s.aliasesPath = aliases
	}
}

// WithSessions sets the morning and afternoon session catalogs.
func WithSessions(morning, afternoon []assign.Spec) Option {
	return func(s *Service) {
		s.morningSpecs = morning
		s.afternoonSpecs = afternoon
	}
}

// WithQRDir sets where QR images are written when no store is given.
func WithQRDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.qrDir = dir
		}
	}
}

// WithStore sets the QR artifact store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLoader sets the input loader.
func WithLoader(l *source.Loader) Option {
	return func(s *Service) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithScorer sets the similarity scorer used by the fuzzy matcher.
func WithScorer(sc scoring.Scorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithBadgesPerPage sets the page size for Page.
func WithBadgesPerPage(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.perPage = n
		}
	}
}

// WithQRWorkers sets how many badges render in parallel. Values below 1
// mean one worker per CPU.
func WithQRWorkers(n int) Option {
	return func(s *Service) {
		s.qrWorkers = n
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
