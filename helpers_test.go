package conduit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	testTimeout = 2 * time.Second
	settle      = 30 * time.Millisecond
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	t.Cleanup(cancel)
	return ctx
}

// async runs fn in a goroutine and returns a channel that yields its error.
func async(fn func() error) <-chan error {
	done := make(chan error, 1)
	go func() { done <- fn() }()
	return done
}

func requireBlocked(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		t.Fatalf("operation returned early: %v", err)
	case <-time.After(settle):
	}
}

func requireDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(testTimeout):
		t.Fatal("operation did not complete")
		return nil
	}
}

func mustNew[T any](t *testing.T, capacity int, opts ...Option) (*Sender[T], *Receiver[T]) {
	t.Helper()
	tx, rx, err := New[T](capacity, opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = tx.Close()
		_ = rx.Close()
	})
	return tx, rx
}
