// Package service runs the breakout assignment pipeline and serves its
// results to the HTTP adapters.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/badger/internal/adapters/mq/queue"
	"github.com/okian/badger/internal/adapters/mq/worker"
	repository "github.com/okian/badger/internal/adapters/repository"
	"github.com/okian/badger/internal/adapters/source"
	"github.com/okian/badger/internal/domain/assign"
	"github.com/okian/badger/internal/domain/badge"
	"github.com/okian/badger/internal/domain/dedupe"
	"github.com/okian/badger/internal/domain/email"
	"github.com/okian/badger/internal/domain/matching"
	"github.com/okian/badger/internal/domain/model"
	"github.com/okian/badger/internal/domain/scoring"
	"github.com/okian/badger/pkg/logger"
	"github.com/okian/badger/pkg/metrics"
)

// Pipeline stage names used in logs and metrics.
const (
	stageLoad   = "load"
	stageExact  = "exact"
	stageFuzzy  = "fuzzy"
	stageAssign = "assign"
	stageQR     = "qr"
)

// run holds everything one pipeline execution produced.
type run struct {
	visitors   []*model.Visitor
	signups    *model.SignupSet
	linked     *dedupe.OrderedSet
	morning    *assign.Catalog
	afternoon  *assign.Catalog
	summary    assign.Summary
	aliases    int
	exact      int
	qrKeys     map[int]string
	qrFailed   int
	finishedAt time.Time
	took       time.Duration
}

// Service owns the pipeline state and implements the API dependencies.
type Service struct {
	mu sync.RWMutex

	// Collaborators
	loader   *source.Loader
	store    repository.Store
	preparer *badge.Preparer
	scorer   scoring.Scorer

	// Configuration
	visitorsPath   string
	signupsPath    string
	aliasesPath    string
	qrDir          string
	morningSpecs   []assign.Spec
	afternoonSpecs []assign.Spec
	perPage        int
	qrWorkers      int

	// State
	started bool
	runs    int
	state   *run

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		loader:   source.NewLoader(),
		preparer: badge.NewPreparer(),
		scorer:   scoring.NewRatioScorer(),
		qrDir:    "./static/qrcodes",
		perPage:  25,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start runs the pipeline once. Calling Start on a started service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting badge service...")

	if s.store == nil {
		store, err := repository.NewFileStore(ctx, s.qrDir)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPipeline, err)
		}
		s.store = store
	}

	if err := s.execute(ctx); err != nil {
		return err
	}

	s.started = true
	s.logger.Info(ctx, "badge service started",
		logger.Int("visitors", len(s.state.visitors)),
		logger.Int("exactMatches", s.state.exact),
		logger.Int("assigned", s.state.summary.Assigned),
	)
	return nil
}

// Rerun executes the pipeline again from fresh inputs and fresh catalogs.
// The previous results stay in place if the run fails.
func (s *Service) Rerun(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}
	s.logger.Info(ctx, "re-running pipeline")
	return s.execute(ctx)
}

// Stop marks the service as stopped. Readers fail with ErrNotStarted after.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "badge service stopped")
}

// execute runs the pipeline and swaps in its result. Callers hold mu.
func (s *Service) execute(ctx context.Context) error {
	r, err := s.pipeline(ctx)
	if err != nil {
		metrics.RecordPipelineRun("error")
		metrics.RecordErrorByComponent("pipeline", "run")
		s.logger.Error(ctx, "pipeline failed", logger.Error(err))
		return fmt.Errorf("%w: %w", ErrPipeline, err)
	}
	s.state = r
	s.runs++
	metrics.RecordPipelineRun("ok")
	publishCapacity(r.morning)
	publishCapacity(r.afternoon)
	return nil
}

func (s *Service) pipeline(ctx context.Context) (*run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	begin := time.Now()
	r := &run{qrKeys: make(map[int]string)}

	// Catalogs are rebuilt for every run so capacity is only spent once.
	var err error
	if r.morning, err = assign.NewCatalog("morning", s.morningSpecs); err != nil {
		return nil, err
	}
	if r.afternoon, err = assign.NewCatalog("afternoon", s.afternoonSpecs); err != nil {
		return nil, err
	}

	done := s.stage(ctx, stageLoad)
	if r.visitors, err = s.loader.Visitors(ctx, s.visitorsPath); err != nil {
		return nil, err
	}
	if r.signups, err = s.loader.Signups(ctx, s.signupsPath); err != nil {
		return nil, err
	}
	aliases, err := s.loader.Aliases(ctx, s.aliasesPath)
	if err != nil {
		return nil, err
	}
	normalizer := email.NewNormalizer(aliases)
	r.aliases = normalizer.Aliases()
	done(logger.Int("visitors", len(r.visitors)), logger.Int("signups", r.signups.Len()),
		logger.Int("aliases", r.aliases))
	metrics.UpdateInputs(len(r.visitors), r.signups.Len(), r.aliases)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done = s.stage(ctx, stageExact)
	r.linked = dedupe.NewOrderedSet(dedupe.WithCapacity(r.signups.Len()))
	r.exact = matching.NewExactMatcher(normalizer).Attach(r.visitors, r.signups, r.linked)
	done(logger.Int("matched", r.exact), logger.Int("linked", r.linked.Size()))
	metrics.UpdateExactMatches(r.exact)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done = s.stage(ctx, stageFuzzy)
	if err := matching.NewFuzzyMatcher(normalizer, s.scorer).Attach(r.visitors, r.signups); err != nil {
		return nil, err
	}
	for _, v := range r.visitors {
		metrics.RecordFuzzyScore(v.FuzzyEmailScore)
	}
	done()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done = s.stage(ctx, stageAssign)
	r.summary = assign.AssignRemaining(r.visitors, r.morning, r.afternoon)
	recordSeats("morning", r.summary.MorningSeats)
	recordSeats("afternoon", r.summary.AfternoonSeats)
	metrics.RecordExhausted("morning", r.summary.MorningFull)
	metrics.RecordExhausted("afternoon", r.summary.AfternoonFull)
	done(logger.Int("assigned", r.summary.Assigned),
		logger.Int("morningFull", r.summary.MorningFull),
		logger.Int("afternoonFull", r.summary.AfternoonFull))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done = s.stage(ctx, stageQR)
	s.renderBadges(ctx, r)
	done(logger.Int("stored", len(r.qrKeys)), logger.Int("failed", r.qrFailed))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.finishedAt = time.Now()
	r.took = r.finishedAt.Sub(begin)
	return r, nil
}

// renderBadges fans visitors out to the render pool. A failed badge is
// logged and counted but does not fail the run.
func (s *Service) renderBadges(ctx context.Context, r *run) {
	q := queue.NewInMemoryQueue(queue.WithCapacity(len(r.visitors)))
	pool := worker.NewPool(s.qrWorkers, q, s.preparer, s.store, worker.WithLogger(s.logger.Named("qr")))
	results := pool.Start(ctx)

	go func() {
		defer func() { _ = q.Close() }()
		for _, v := range r.visitors {
			if !q.Enqueue(ctx, queue.Job{Position: v.Position, Name: v.Name, Email: v.Email}) {
				return
			}
		}
	}()

	for res := range results {
		if res.Err != nil {
			r.qrFailed++
			metrics.RecordQRError()
			s.logger.Warn(ctx, "qr code not stored",
				logger.Int("position", res.Position),
				logger.Error(res.Err),
			)
			continue
		}
		r.qrKeys[res.Position] = res.Key
		metrics.RecordQRGenerated()
	}
}

// stage logs the start of a pipeline stage and returns a func that logs and
// records its completion.
func (s *Service) stage(ctx context.Context, name string) func(fields ...logger.Field) {
	start := time.Now()
	s.logger.Debug(ctx, "pipeline stage started", logger.String("stage", name))
	return func(fields ...logger.Field) {
		took := time.Since(start)
		metrics.RecordPipelineStage(name, float64(took.Microseconds())/1000)
		fields = append(fields, logger.String("stage", name), logger.Duration("took", took))
		s.logger.Info(ctx, "pipeline stage finished", fields...)
	}
}

func recordSeats(slot string, seats map[string]int) {
	for session, n := range seats {
		metrics.RecordAssignments(slot, session, n)
	}
}

func publishCapacity(c *assign.Catalog) {
	for _, sess := range c.Sessions() {
		metrics.UpdateRemainingCapacity(c.Slot(), sess.Name, sess.Remaining)
	}
}
