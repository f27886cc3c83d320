package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWaitsForAllTasks(t *testing.T) {
	var done atomic.Int32
	err := Run(context.Background(), func(g *Group) {
		for range 5 {
			g.Go("worker", func(ctx context.Context) error {
				time.Sleep(5 * time.Millisecond)
				done.Add(1)
				return nil
			})
		}
	})
	require.NoError(t, err)
	assert.EqualValues(t, 5, done.Load())
}

func TestFailFastCancelsSiblings(t *testing.T) {
	errBoom := errors.New("boom")
	err := Run(context.Background(), func(g *Group) {
		g.Go("fails", func(ctx context.Context) error { return errBoom })
		g.Go("waits", func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		})
	})
	require.ErrorIs(t, err, errBoom)

	info, ok := TaskOf(err)
	require.True(t, ok)
	assert.Equal(t, "fails", info.Name)
}

func TestCollectGathersEveryError(t *testing.T) {
	errA, errB := errors.New("a"), errors.New("b")
	err := Run(context.Background(), func(g *Group) {
		g.Go("a", func(ctx context.Context) error { return errA })
		g.Go("b", func(ctx context.Context) error { return errB })
		g.Go("ok", func(ctx context.Context) error { return nil })
	}, WithPolicy(Collect))

	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestPanicBecomesError(t *testing.T) {
	err := Run(context.Background(), func(g *Group) {
		g.Go("panics", func(ctx context.Context) error { panic("kaboom") })
	})
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "kaboom", pe.Value)
	assert.NotEmpty(t, pe.Stack)
}

func TestRunRepanicsFromCallback(t *testing.T) {
	assert.PanicsWithValue(t, "setup", func() {
		_ = Run(context.Background(), func(g *Group) {
			g.Go("idle", func(ctx context.Context) error {
				<-ctx.Done()
				return nil
			})
			panic("setup")
		})
	})
}

func TestWithLimit(t *testing.T) {
	var cur, peak atomic.Int32
	err := Run(context.Background(), func(g *Group) {
		for range 10 {
			g.Go("limited", func(ctx context.Context) error {
				n := cur.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				cur.Add(-1)
				return nil
			})
		}
	}, WithLimit(2))
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestWithOnDone(t *testing.T) {
	var names []string
	done := make(chan string, 2)
	err := Run(context.Background(), func(g *Group) {
		g.Go("one", func(ctx context.Context) error { return nil })
		g.Go("two", func(ctx context.Context) error { return nil })
	}, WithOnDone(func(info Info, err error, _ time.Duration) {
		done <- info.Name
	}))
	require.NoError(t, err)
	close(done)
	for n := range done {
		names = append(names, n)
	}
	assert.ElementsMatch(t, []string{"one", "two"}, names)
}

func TestGroupWaitIsIdempotent(t *testing.T) {
	g := New(context.Background())
	g.Go("x", func(ctx context.Context) error { return errors.New("x") })

	first := g.Wait()
	assert.Error(t, first)
	assert.Equal(t, first, g.Wait())
	assert.Error(t, g.Context().Err())
	assert.Panics(t, func() { g.Go("late", func(context.Context) error { return nil }) })
}

func TestGroupCancel(t *testing.T) {
	g := New(context.Background())
	started := make(chan struct{})
	g.Go("blocked", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return context.Cause(ctx)
	})
	<-started
	assert.EqualValues(t, 1, g.Active())

	stop := errors.New("stop")
	g.Cancel(stop)
	assert.ErrorIs(t, g.Wait(), stop)
	assert.Zero(t, g.Active())
}

func TestOptionsValidate(t *testing.T) {
	assert.Panics(t, func() { New(context.Background(), WithPolicy(Policy(9))) })
	assert.Panics(t, func() { New(context.Background(), WithLimit(-1)) })
}
