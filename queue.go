package conduit

import (
	"context"
	"strconv"

	"github.com/google/uuid"
)

// queueEngine is the work-queue mode: one bounded FIFO shared by every
// receiver. A buffered Go channel gives the capacity bound and FIFO hand-off
// to blocked receivers.
type queueEngine[T any] struct {
	c   *channel[T]
	buf chan T
}

func newQueueEngine[T any](c *channel[T], capacity int) (*queueEngine[T], error) {
	if capacity < 1 {
		return nil, &ConfigError{
			Field:  "capacity",
			Reason: "queue capacity must be a positive integer, got " + strconv.Itoa(capacity),
		}
	}
	return &queueEngine[T]{
		c:   c,
		buf: make(chan T, capacity),
	}, nil
}

func (q *queueEngine[T]) mode() Mode { return ModeQueue }

func (q *queueEngine[T]) capacity() int { return cap(q.buf) }

func (q *queueEngine[T]) attach(uuid.UUID) {}

func (q *queueEngine[T]) detach(uuid.UUID) {}

func (q *queueEngine[T]) waiting() (int, int, int) { return len(q.buf), 0, 0 }

func (q *queueEngine[T]) send(ctx context.Context, v T) error {
	v, err := q.c.copier.copy(v)
	if err != nil {
		return err
	}

	_, gone, open := q.c.watchReceivers()
	if !open {
		return ErrDisconnected
	}

	select {
	case q.buf <- v:
		return nil
	default:
	}

	// Buffer is full: block until a receiver makes room, every receiver
	// closes, or the caller gives up.
	select {
	case q.buf <- v:
		return nil
	case <-gone:
		return ErrDisconnected
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *queueEngine[T]) receive(ctx context.Context, _ uuid.UUID) (T, error) {
	var zero T

	_, gone, open := q.c.watchSenders()
	if !open {
		return zero, ErrDisconnected
	}

	select {
	case v := <-q.buf:
		return v, nil
	case <-gone:
		// An item may have landed right before the last sender closed.
		select {
		case v := <-q.buf:
			return v, nil
		default:
			return zero, ErrDisconnected
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
