package chanx

import (
	"context"
	"testing"
	"time"

	"github.com/baxromumarov/conduit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func newQueue[T any](t *testing.T, capacity int) (*conduit.Sender[T], *conduit.Receiver[T]) {
	t.Helper()
	tx, rx, err := conduit.New[T](capacity)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = tx.Close()
		_ = rx.Close()
	})
	return tx, rx
}

// fill sends values without blocking; the queue capacity must cover them.
func fill[T any](t *testing.T, tx *conduit.Sender[T], values ...T) {
	t.Helper()
	ctx := testContext(t)
	for _, v := range values {
		require.NoError(t, tx.Send(ctx, v))
	}
}

// collect receives exactly n values from rx.
func collect[T any](t *testing.T, rx *conduit.Receiver[T], n int) []T {
	t.Helper()
	ctx := testContext(t)
	out := make([]T, 0, n)
	for range n {
		v, err := rx.Receive(ctx)
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func TestToChan(t *testing.T) {
	ctx := testContext(t)
	tx, rx := newQueue[int](t, 0)

	go func() {
		defer tx.Close()
		for i := range 3 {
			_ = tx.Send(ctx, i)
		}
	}()

	out, errc := ToChan[int](ctx, rx)
	var got []int
	for v := range out {
		got = append(got, v)
	}
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.NoError(t, <-errc)
}

func TestToChanReportsFailure(t *testing.T) {
	_, rx := newQueue[int](t, 1)
	ctx, cancel := context.WithCancel(context.Background())

	out, errc := ToChan[int](ctx, rx)
	cancel()
	for range out {
	}
	assert.ErrorIs(t, <-errc, context.Canceled)
}

func TestFromChan(t *testing.T) {
	ctx := testContext(t)
	tx, rx := newQueue[string](t, 4)

	in := make(chan string, 3)
	in <- "a"
	in <- "b"
	in <- "c"
	close(in)

	n, err := FromChan[string](ctx, in, tx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"a", "b", "c"}, collect(t, rx, 3))
}

func TestFromChanStopsOnDisconnect(t *testing.T) {
	ctx := testContext(t)
	tx, rx := newQueue[int](t, 4)
	require.NoError(t, rx.Close())

	in := make(chan int, 1)
	in <- 1
	n, err := FromChan[int](ctx, in, tx)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, conduit.ErrDisconnected)
}
