// Package worker renders and stores badge QR codes off a job queue.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/badger/internal/adapters/mq/queue"
	"github.com/okian/badger/internal/domain/badge"
	"github.com/okian/badger/internal/domain/model"
	"github.com/okian/badger/pkg/logger"
	"github.com/okian/badger/pkg/metrics"
)

// Renderer turns a visitor into a QR artifact.
type Renderer interface {
	Prepare(v *model.Visitor) (badge.Artifact, error)
}

// Store persists rendered artifacts.
type Store interface {
	Put(ctx context.Context, key string, png []byte) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue() <-chan queue.Job
}

// Result reports the outcome of one job. Key is set only on success.
type Result struct {
	Position int
	Key      string
	Err      error
}

// InMemoryWorker renders jobs from a queue until it is drained.
type InMemoryWorker struct {
	queue    Queue
	renderer Renderer
	store    Store
	name     string

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, r Renderer, s Store, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		renderer: r,
		store:    s,
		name:     "worker",
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Run processes jobs until the queue closes or ctx is done, sending one
// Result per job.
func (w *InMemoryWorker) Run(ctx context.Context, results chan<- Result) {
	jobs := w.queue.Dequeue()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			res := w.process(ctx, job)
			select {
			case results <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}

// process renders and stores a single badge.
func (w *InMemoryWorker) process(ctx context.Context, job queue.Job) Result {
	start := time.Now()
	defer func() {
		metrics.RecordQRRenderLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	v := &model.Visitor{Position: job.Position, Name: job.Name, Email: job.Email}
	art, err := w.renderer.Prepare(v)
	if err != nil {
		metrics.RecordErrorByComponent("worker", "render_error")
		w.logger.Debug(ctx, "render failed", logger.String("worker", w.name), logger.Int("position", job.Position), logger.Error(err))
		return Result{Position: job.Position, Err: fmt.Errorf("%w: %w", ErrRender, err)}
	}
	if err := w.store.Put(ctx, art.Key, art.PNG); err != nil {
		metrics.RecordErrorByComponent("worker", "store_error")
		w.logger.Debug(ctx, "store failed", logger.String("worker", w.name), logger.Int("position", job.Position), logger.Error(err))
		return Result{Position: job.Position, Err: fmt.Errorf("%w: %w", ErrStore, err)}
	}
	return Result{Position: job.Position, Key: art.Key}
}

// Pool runs a fixed set of workers over one queue.
type Pool struct {
	workers []*InMemoryWorker
	results chan Result
	wg      sync.WaitGroup
}

// NewPool creates a pool of workerCount workers; values below 1 mean one
// per CPU. opts apply to every worker.
func NewPool(workerCount int, q Queue, r Renderer, s Store, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		results: make(chan Result, workerCount),
	}
	for i := 0; i < workerCount; i++ {
		workerOpts := append(append([]Option{}, opts...), WithName("worker-"+strconv.Itoa(i)))
		pool.workers[i] = NewInMemoryWorker(q, r, s, workerOpts...)
	}

	metrics.UpdateQRWorkerCount(workerCount)
	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Start runs every worker and returns the results channel, which is closed
// once all workers have stopped.
func (p *Pool) Start(ctx context.Context) <-chan Result {
	for _, w := range p.workers {
		p.wg.Add(1)
		go func(w *InMemoryWorker) {
			defer p.wg.Done()
			w.Run(ctx, p.results)
		}(w)
	}
	go func() {
		p.wg.Wait()
		close(p.results)
	}()
	return p.results
}
