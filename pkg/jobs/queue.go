package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrQueueFull is returned when the buffer has no room left.
	ErrQueueFull = errors.New("queue is full")
	// ErrQueueStopped is returned when the queue is not accepting work.
	ErrQueueStopped = errors.New("queue is not running")
)

// Handler processes one payload.
type Handler[T any] func(context.Context, T) error

// Config configures worker pool behaviour.
type Config struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

type job[T any] struct {
	payload  T
	attempt  int
	enqueued time.Time
}

// Queue is an in-memory buffered dispatcher backed by goroutines. Work that is
// buffered when Stop is called is still processed before Stop returns.
type Queue[T any] struct {
	name    string
	handler Handler[T]

	workers    int
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger

	jobs    chan job[T]
	ctx     context.Context
	wg      sync.WaitGroup
	mu      sync.RWMutex
	started bool
	stopped bool
}

// New builds a queue with the provided handler.
func New[T any](name string, handler Handler[T], cfg Config) *Queue[T] {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Queue[T]{
		name:       name,
		handler:    handler,
		workers:    cfg.Workers,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     cfg.Logger,
		jobs:       make(chan job[T], cfg.BufferSize),
	}
}

// Start launches the workers. Handlers receive ctx without its cancellation so
// buffered work survives a shutdown signal. Safe to call once.
func (q *Queue[T]) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.stopped {
		return
	}
	q.ctx = context.WithoutCancel(ctx)
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	q.started = true
	q.logger.Sugar().Infow("queue started", "queue", q.name, "workers", q.workers)
}

// Stop rejects new work and waits until buffered jobs are processed.
func (q *Queue[T]) Stop() {
	q.mu.Lock()
	if !q.started || q.stopped {
		q.stopped = true
		q.mu.Unlock()
		return
	}
	q.stopped = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
	q.logger.Sugar().Infow("queue stopped", "queue", q.name)
}

// Enqueue buffers payload without blocking.
func (q *Queue[T]) Enqueue(payload T) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if !q.started || q.stopped {
		return fmt.Errorf("%s: %w", q.name, ErrQueueStopped)
	}
	select {
	case q.jobs <- job[T]{payload: payload, enqueued: time.Now().UTC()}:
		return nil
	default:
		return fmt.Errorf("%s: %w", q.name, ErrQueueFull)
	}
}

// Pending reports how many jobs are buffered.
func (q *Queue[T]) Pending() int {
	return len(q.jobs)
}

func (q *Queue[T]) worker() {
	defer q.wg.Done()
	for j := range q.jobs {
		q.process(j)
	}
}

func (q *Queue[T]) process(j job[T]) {
	for {
		err := q.handler(q.ctx, j.payload)
		if err == nil {
			return
		}
		j.attempt++
		if j.attempt > q.maxRetries {
			q.logger.Sugar().Errorw("job exceeded retries", "queue", q.name, "attempts", j.attempt, "queued_for", time.Since(j.enqueued), "error", err)
			return
		}
		q.logger.Sugar().Warnw("job failed, retrying", "queue", q.name, "attempt", j.attempt, "error", err)
		time.Sleep(q.retryDelay)
	}
}
