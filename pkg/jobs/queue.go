package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is one unit of background work.
type Job struct {
	ID      string
	Kind    string
	Payload interface{}
	Attempt int
}

// Handler processes a job. A returned error schedules a retry.
type Handler func(context.Context, Job) error

// QueueConfig configures worker pool behaviour.
type QueueConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// Queue is an in-memory job dispatcher backed by a fixed set of goroutines.
type Queue struct {
	name    string
	handler Handler
	cfg     QueueConfig
	logger  *zap.Logger

	jobs    chan Job
	ctx     context.Context
	cancel  context.CancelFunc
	workers sync.WaitGroup
	pending sync.WaitGroup
	mu      sync.Mutex
	started bool
	// sendMu guards sends on jobs so Stop can drain the buffer once.
	sendMu sync.RWMutex

	statsMu   sync.Mutex
	succeeded int
	failed    int
}

// Stats counts finished jobs. Retries are not counted until the job settles.
type Stats struct {
	Succeeded int
	Failed    int
}

// NewQueue builds a queue with the provided handler.
func NewQueue(name string, handler Handler, cfg QueueConfig) *Queue {
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
		cfg.RetryDelay = 500 * time.Millisecond
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Queue{
		name:    name,
		handler: handler,
		cfg:     cfg,
		logger:  cfg.Logger.With(zap.String("queue", name)),
		jobs:    make(chan Job, cfg.BufferSize),
	}
}

// Start launches the workers. Calling it twice is a no-op.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	for i := 0; i < q.cfg.Workers; i++ {
		q.workers.Add(1)
		go q.worker()
	}
	q.started = true
	q.logger.Debug("queue started", zap.Int("workers", q.cfg.Workers))
}

// Stop cancels the workers and waits for them to exit. Jobs still buffered are
// settled as failed so Wait returns.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return
	}
	q.cancel()
	q.mu.Unlock()
	q.workers.Wait()

	q.sendMu.Lock()
	dropped := 0
	for {
		select {
		case <-q.jobs:
			dropped++
			q.settle(false)
			continue
		default:
		}
		break
	}
	q.sendMu.Unlock()
	q.logger.Debug("queue stopped", zap.Int("dropped", dropped))
}

// Enqueue blocks until the job is buffered or the queue is stopped.
func (q *Queue) Enqueue(job Job) error {
	q.mu.Lock()
	ctx, started := q.ctx, q.started
	q.mu.Unlock()
	if !started {
		return fmt.Errorf("queue %s not started", q.name)
	}

	q.sendMu.RLock()
	defer q.sendMu.RUnlock()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("queue %s stopped: %w", q.name, err)
	}

	q.pending.Add(1)
	select {
	case <-ctx.Done():
		q.pending.Done()
		return fmt.Errorf("queue %s stopped: %w", q.name, ctx.Err())
	case q.jobs <- job:
		return nil
	}
}

// Wait blocks until every enqueued job has succeeded or exhausted its retries,
// or ctx is done.
func (q *Queue) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		q.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns the settled job counts.
func (q *Queue) Stats() Stats {
	q.statsMu.Lock()
	defer q.statsMu.Unlock()
	return Stats{Succeeded: q.succeeded, Failed: q.failed}
}

func (q *Queue) worker() {
	defer q.workers.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case job := <-q.jobs:
			err := q.handler(q.ctx, job)
			if err == nil {
				q.settle(true)
				continue
			}
			q.retry(job, err)
		}
	}
}

func (q *Queue) settle(ok bool) {
	q.statsMu.Lock()
	if ok {
		q.succeeded++
	} else {
		q.failed++
	}
	q.statsMu.Unlock()
	q.pending.Done()
}

func (q *Queue) retry(job Job, err error) {
	job.Attempt++
	if job.Attempt > q.cfg.MaxRetries {
		q.logger.Warn("job gave up", zap.String("job_id", job.ID), zap.String("kind", job.Kind), zap.Int("attempts", job.Attempt), zap.Error(err))
		q.settle(false)
		return
	}
	q.logger.Debug("job failed, retrying", zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt), zap.Error(err))

	go func(j Job) {
		timer := time.NewTimer(q.cfg.RetryDelay)
		defer timer.Stop()
		select {
		case <-q.ctx.Done():
			q.settle(false)
		case <-timer.C:
			q.sendMu.RLock()
			defer q.sendMu.RUnlock()
			if q.ctx.Err() != nil {
				q.settle(false)
				return
			}
			select {
			case <-q.ctx.Done():
				q.settle(false)
			case q.jobs <- j:
			}
		}
	}(job)
}
