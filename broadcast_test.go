package conduit

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastFanOut(t *testing.T) {
	ctx := testContext(t)
	tx, rx := mustNew[int](t, 0, WithBroadcast())

	rx2, err := rx.Clone()
	require.NoError(t, err)
	defer rx2.Close()

	require.NoError(t, tx.Send(ctx, 1))

	for _, r := range []*Receiver[int]{rx, rx2} {
		v, err := r.Receive(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	}
}

func TestBroadcastSendNeverBlocks(t *testing.T) {
	ctx := testContext(t)
	tx, rx := mustNew[int](t, 1, WithBroadcast())

	for i := range 1000 {
		require.NoError(t, tx.Send(ctx, i))
	}
	assert.Equal(t, 1000, rx.Stats().Buffered)
}

func TestBroadcastLateReceiverSeesOnlyLaterItems(t *testing.T) {
	ctx := testContext(t)
	tx, rx := mustNew[string](t, 0, WithBroadcast())

	require.NoError(t, tx.Send(ctx, "early"))
	late, err := tx.DeriveReceiver()
	require.NoError(t, err)
	defer late.Close()
	require.NoError(t, tx.Send(ctx, "late"))

	v, err := late.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "late", v)

	v, err = rx.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "early", v)
}

func TestBroadcastConsistentOrderAcrossReceivers(t *testing.T) {
	const (
		senders   = 4
		perSender = 200
		receivers = 3
	)
	ctx := testContext(t)
	tx, rx := mustNew[int](t, 0, WithBroadcast())

	rxs := []*Receiver[int]{rx}
	for len(rxs) < receivers {
		r, err := rx.Clone()
		require.NoError(t, err)
		defer r.Close()
		rxs = append(rxs, r)
	}

	var wg sync.WaitGroup
	for s := range senders {
		clone, err := tx.Clone()
		require.NoError(t, err)
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer clone.Close()
			for i := range perSender {
				assert.NoError(t, clone.Send(ctx, s*perSender+i))
			}
		}()
	}
	wg.Wait()

	orders := make([][]int, receivers)
	for i, r := range rxs {
		for range senders * perSender {
			v, err := r.Receive(ctx)
			require.NoError(t, err)
			orders[i] = append(orders[i], v)
		}
	}
	for i := 1; i < receivers; i++ {
		assert.Equal(t, orders[0], orders[i])
	}
}

func TestBroadcastReceiverCloseDropsPending(t *testing.T) {
	ctx := testContext(t)
	tx, rx := mustNew[int](t, 0, WithBroadcast())

	rx2, err := rx.Clone()
	require.NoError(t, err)
	require.NoError(t, tx.Send(ctx, 1))
	require.NoError(t, tx.Send(ctx, 2))
	assert.Equal(t, 4, tx.Stats().Buffered)

	require.NoError(t, rx2.Close())
	assert.Equal(t, 2, tx.Stats().Buffered)
}

func TestBroadcastSharedReceiverConcurrentPops(t *testing.T) {
	ctx := testContext(t)
	tx, rx := mustNew[int](t, 0, WithBroadcast())

	results := make(chan int, 2)
	for range 2 {
		go func() {
			v, err := rx.Receive(ctx)
			if err == nil {
				results <- v
			}
		}()
	}
	require.NoError(t, tx.Send(ctx, 1))
	require.NoError(t, tx.Send(ctx, 2))

	got := map[int]bool{<-results: true, <-results: true}
	assert.Equal(t, map[int]bool{1: true, 2: true}, got)
}

func TestBroadcastReceiveCancelled(t *testing.T) {
	_, rx := mustNew[int](t, 0, WithBroadcast())

	ctx, cancel := context.WithCancel(context.Background())
	done := async(func() error {
		_, err := rx.Receive(ctx)
		return err
	})
	requireBlocked(t, done)
	cancel()
	assert.ErrorIs(t, requireDone(t, done), context.Canceled)
}

func TestMailboxCloseWakesAllPoppers(t *testing.T) {
	m := newMailbox[int]()
	ctx := testContext(t)
	never := make(chan struct{})

	var dones []<-chan error
	for range 3 {
		dones = append(dones, async(func() error {
			_, err := m.pop(ctx, never)
			return err
		}))
	}
	for _, d := range dones {
		requireBlocked(t, d)
	}

	m.close()
	for _, d := range dones {
		assert.ErrorIs(t, requireDone(t, d), ErrClosed)
	}
	assert.False(t, m.push(1))
	assert.Zero(t, m.len())
}
