package conduit

import (
	"context"
	"sync"

	"github.com/gammazero/deque"
)

// mailbox is a broadcast receiver's private unbounded FIFO.
type mailbox[T any] struct {
	mu     sync.Mutex
	items  deque.Deque[T]
	closed bool

	// ready holds at most one token meaning "items or close may be pending".
	ready chan struct{}
}

func newMailbox[T any]() *mailbox[T] {
	return &mailbox[T]{ready: make(chan struct{}, 1)}
}

func (m *mailbox[T]) notify() {
	select {
	case m.ready <- struct{}{}:
	default:
	}
}

// push appends v. It reports false if the mailbox was already closed.
func (m *mailbox[T]) push(v T) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	m.items.PushBack(v)
	m.mu.Unlock()

	m.notify()
	return true
}

// tryPop removes the oldest item without blocking.
func (m *mailbox[T]) tryPop() (v T, ok bool, closed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.items.Len() > 0 {
		v = m.items.PopFront()
		if m.items.Len() > 0 {
			// Keep the token for another goroutine sharing this receiver.
			m.notify()
		}
		return v, true, false
	}
	if m.closed {
		// Pass the wakeup on so every blocked pop observes the close.
		m.notify()
	}
	return v, false, m.closed
}

// pop blocks until an item is available, the mailbox is closed, gone is
// closed (no senders left) or ctx is done.
func (m *mailbox[T]) pop(ctx context.Context, gone <-chan struct{}) (T, error) {
	var zero T
	for {
		if v, ok, closed := m.tryPop(); ok {
			return v, nil
		} else if closed {
			return zero, ErrClosed
		}

		select {
		case <-m.ready:
		case <-gone:
			if v, ok, _ := m.tryPop(); ok {
				return v, nil
			}
			return zero, ErrDisconnected
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

// close drops pending items and wakes a blocked pop.
func (m *mailbox[T]) close() {
	m.mu.Lock()
	m.closed = true
	m.items.Clear()
	m.mu.Unlock()

	m.notify()
}

func (m *mailbox[T]) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items.Len()
}
