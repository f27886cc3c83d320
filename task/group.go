package task

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// Group is a set of tasks sharing one cancellable context. Create it with
// [New] and finalize it with [Group.Wait], or use [Run].
type Group struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
	cfg    config

	wg  sync.WaitGroup
	sem chan struct{}

	errOnce  sync.Once
	firstErr error

	mu   sync.Mutex
	errs []error

	closed atomic.Bool
	active atomic.Int64

	waitOnce sync.Once
	result   error
}

// New creates a group whose context derives from parent.
func New(parent context.Context, opts ...Option) *Group {
	cfg := config{policy: FailFast}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancelCause(parent)
	g := &Group{
		ctx:    ctx,
		cancel: cancel,
		cfg:    cfg,
	}
	if cfg.limit > 0 {
		g.sem = make(chan struct{}, cfg.limit)
	}
	return g
}

// Run creates a group, calls fn with it and waits for every task started
// by fn. It returns the error aggregated according to the group's [Policy].
func Run(parent context.Context, fn func(g *Group), opts ...Option) error {
	g := New(parent, opts...)

	defer func() {
		if r := recover(); r != nil {
			g.cancel(newPanicError(r))
			_ = g.Wait()
			panic(r)
		}
	}()

	fn(g)
	return g.Wait()
}

// Go starts fn as a named task. It panics if the group has already been
// waited on.
func (g *Group) Go(name string, fn func(ctx context.Context) error) {
	if g.closed.Load() {
		panic("task: Go called after Wait")
	}

	g.wg.Add(1)
	info := Info{Name: name}

	go func() {
		defer g.wg.Done()

		if g.sem != nil {
			select {
			case g.sem <- struct{}{}:
				defer func() { <-g.sem }()
			case <-g.ctx.Done():
				return
			}
		}
		if g.ctx.Err() != nil {
			return
		}

		g.active.Add(1)
		start := time.Now()
		err := g.exec(fn)
		g.active.Add(-1)

		if g.cfg.onDone != nil {
			g.cfg.onDone(info, err, time.Since(start))
		}
		if err != nil {
			g.record(&TaskError{Task: info, Err: err})
		}
	}()
}

func (g *Group) exec(fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newPanicError(r)
		}
	}()
	return fn(g.ctx)
}

func (g *Group) record(err *TaskError) {
	switch g.cfg.policy {
	case FailFast:
		g.errOnce.Do(func() {
			g.firstErr = err
			g.cancel(err)
		})
	case Collect:
		g.mu.Lock()
		g.errs = append(g.errs, err)
		g.mu.Unlock()
	}
}

// Wait blocks until every task has returned, cancels the group context and
// returns the aggregated error. It is idempotent.
func (g *Group) Wait() error {
	g.waitOnce.Do(func() {
		g.closed.Store(true)
		g.wg.Wait()
		g.cancel(nil)

		switch g.cfg.policy {
		case FailFast:
			g.result = g.firstErr
		case Collect:
			g.mu.Lock()
			g.result = errors.Join(g.errs...)
			g.mu.Unlock()
		}
	})
	return g.result
}

// Cancel aborts every task in the group with the given cause.
func (g *Group) Cancel(cause error) {
	g.cancel(cause)
}

// Context returns the group context, cancelled when the group finishes.
func (g *Group) Context() context.Context {
	return g.ctx
}

// Active returns the number of tasks currently executing.
func (g *Group) Active() int64 {
	return g.active.Load()
}
