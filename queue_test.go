package conduit

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRoundTrip(t *testing.T) {
	ctx := testContext(t)
	tx, rx := mustNew[int](t, 1)

	require.NoError(t, tx.Send(ctx, 123))
	v, err := rx.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 123, v)
}

func TestQueueFIFO(t *testing.T) {
	ctx := testContext(t)
	tx, rx := mustNew[int](t, 2)

	require.NoError(t, tx.Send(ctx, 100))
	require.NoError(t, tx.Send(ctx, 200))

	first, err := rx.Receive(ctx)
	require.NoError(t, err)
	second, err := rx.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{100, 200}, []int{first, second})
}

func TestQueueBackpressure(t *testing.T) {
	ctx := testContext(t)
	tx, rx := mustNew[string](t, 1)

	require.NoError(t, tx.Send(ctx, "first"))

	done := async(func() error { return tx.Send(ctx, "second") })
	requireBlocked(t, done)
	assert.Equal(t, 1, tx.Stats().Buffered)

	v, err := rx.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", v)
	require.NoError(t, requireDone(t, done))

	v, err = rx.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", v)
}

func TestQueueNeverExceedsCapacity(t *testing.T) {
	const capacity = 3
	ctx := testContext(t)
	tx, rx := mustNew[int](t, capacity)

	var senders []<-chan error
	for i := range capacity + 2 {
		senders = append(senders, async(func() error { return tx.Send(ctx, i) }))
	}
	assert.Eventually(t, func() bool { return tx.Stats().Buffered == capacity }, testTimeout, settle/3)
	assert.Never(t, func() bool { return tx.Stats().Buffered > capacity }, settle, settle/6)

	for range capacity + 2 {
		_, err := rx.Receive(ctx)
		require.NoError(t, err)
	}
	for _, done := range senders {
		require.NoError(t, requireDone(t, done))
	}
}

func TestQueueDeliversEachItemOnce(t *testing.T) {
	const items = 500
	ctx := testContext(t)
	tx, rx := mustNew[int](t, 8)

	rx2, err := rx.Clone()
	require.NoError(t, err)

	var (
		mu  sync.Mutex
		got []int
		wg  sync.WaitGroup
	)
	for _, r := range []*Receiver[int]{rx, rx2} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for v, err := range r.All(ctx) {
				if err != nil {
					return
				}
				mu.Lock()
				got = append(got, v)
				mu.Unlock()
			}
		}()
	}

	for i := range items {
		require.NoError(t, tx.Send(ctx, i))
	}
	assert.Eventually(t, func() bool { return tx.Stats().Buffered == 0 }, testTimeout, settle/3)
	require.NoError(t, tx.Close())
	wg.Wait()

	sort.Ints(got)
	require.Len(t, got, items)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestQueueReceiveDrainsItemLeftBehindByLastSender(t *testing.T) {
	ctx := testContext(t)
	tx, rx := mustNew[int](t, 2)

	done := make(chan int, 1)
	go func() {
		v, err := rx.Receive(ctx)
		if err == nil {
			done <- v
		}
		close(done)
	}()
	time.Sleep(settle)

	require.NoError(t, tx.Send(ctx, 7))
	require.NoError(t, tx.Close())

	v, ok := <-done
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}
