// Package rebuild runs index rebuilds off the control loop on a bounded pool.
//
// Every submission gets a monotonically increasing generation. A task either
// completes with an index or with an error (cancellation, failure or a
// recovered panic); a failed task never carries an index.
package rebuild

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"appmenu/internal/config"
	"appmenu/internal/logging"
	"appmenu/internal/models"

	"golang.org/x/sync/semaphore"
)

// ErrPanicked wraps a panic recovered from a rebuild
var ErrPanicked = errors.New("rebuild panicked")

// Request is the snapshot a rebuild works from
type Request struct {
	Config    config.Config
	Favorites []string
}

// Clone returns a deep copy of the request
func (r Request) Clone() Request {
	return Request{
		Config:    r.Config.Clone(),
		Favorites: append([]string(nil), r.Favorites...),
	}
}

// Func scans and builds an index for a request
type Func func(ctx context.Context, req Request) (models.Index, error)

// Result is the outcome of one task
type Result struct {
	Generation uint64
	Request    Request
	Index      models.Index // Nil when Err is set
	Err        error
	Took       time.Duration
}

// Task is a handle to a submitted rebuild
type Task struct {
	generation uint64
	done       chan struct{}
	result     Result
}

// Generation returns the task's submission number
func (t *Task) Generation() uint64 {
	return t.generation
}

// Done is closed when the task has finished
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Result returns the outcome; it must only be called after Done is closed
func (t *Task) Result() Result {
	return t.result
}

// Wait blocks until the task finishes or ctx is cancelled
func (t *Task) Wait(ctx context.Context) (Result, error) {
	select {
	case <-t.done:
		return t.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Pool bounds the number of rebuilds running at once
type Pool struct {
	sem  *semaphore.Weighted
	run  Func
	gen  atomic.Uint64
	wg   sync.WaitGroup
	log  *slog.Logger
	size int64
}

// DefaultSize returns min(NumCPU, 4)
func DefaultSize() int64 {
	return int64(min(runtime.NumCPU(), 4))
}

// NewPool creates a pool running at most size rebuilds concurrently
func NewPool(size int64, run Func) *Pool {
	if size <= 0 {
		size = DefaultSize()
	}
	return &Pool{
		sem:  semaphore.NewWeighted(size),
		run:  run,
		log:  logging.For("rebuild"),
		size: size,
	}
}

// Size returns the concurrency bound
func (p *Pool) Size() int64 {
	return p.size
}

// Generation returns the most recently assigned generation
func (p *Pool) Generation() uint64 {
	return p.gen.Load()
}

// Submit schedules a rebuild and returns immediately.
// The request is copied, so callers may keep mutating their own values.
func (p *Pool) Submit(ctx context.Context, req Request) *Task {
	task := &Task{
		generation: p.gen.Add(1),
		done:       make(chan struct{}),
	}
	req = req.Clone()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer close(task.done)
		task.result = p.execute(ctx, task.generation, req)
	}()
	return task
}

// Wait blocks until every submitted task has finished
func (p *Pool) Wait() {
	p.wg.Wait()
}

// execute runs one rebuild inside the semaphore
func (p *Pool) execute(ctx context.Context, gen uint64, req Request) Result {
	res := Result{Generation: gen, Request: req}

	if err := p.sem.Acquire(ctx, 1); err != nil {
		res.Err = err
		return res
	}
	defer p.sem.Release(1)
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	start := time.Now()
	idx, err := p.safeRun(ctx, req)
	res.Took = time.Since(start)

	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		res.Err = err
		p.log.Warn("rebuild_failed", slog.Uint64("generation", gen), slog.String("error", err.Error()))
		return res
	}

	res.Index = idx
	p.log.Debug("rebuild_complete",
		slog.Uint64("generation", gen),
		slog.Int("categories", len(idx)),
		slog.Duration("took", res.Took))
	return res
}

// safeRun calls the rebuild function and converts a panic into an error
func (p *Pool) safeRun(ctx context.Context, req Request) (idx models.Index, err error) {
	defer func() {
		if r := recover(); r != nil {
			idx = nil
			err = fmt.Errorf("%w: %v\n%s", ErrPanicked, r, debug.Stack())
		}
	}()
	return p.run(ctx, req)
}
