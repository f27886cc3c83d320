package conduit

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Source is the receiving surface of a channel. [*Receiver] implements it;
// composition layers should depend on Source rather than on the concrete type.
type Source[T any] interface {
	Receive(ctx context.Context) (T, error)
}

// Sink is the sending surface of a channel. [*Sender] implements it.
type Sink[T any] interface {
	Send(ctx context.Context, v T) error
}

var (
	_ Source[int] = (*Receiver[int])(nil)
	_ Sink[int]   = (*Sender[int])(nil)
)

// endpoint holds what Sender and Receiver share: identity, role and the
// binding to a channel. A nil binding means the endpoint is closed; closed
// is terminal.
type endpoint[T any] struct {
	id   uuid.UUID
	role Role
	ch   atomic.Pointer[channel[T]]
}

func (e *endpoint[T]) bound() *channel[T] {
	return e.ch.Load()
}

// ID returns the endpoint's unique identity.
func (e *endpoint[T]) ID() uuid.UUID {
	return e.id
}

// IsClosed reports whether Close has been called.
func (e *endpoint[T]) IsClosed() bool {
	return e.bound() == nil
}

// Mode returns the delivery mode of the bound channel, or [ModeUnknown]
// once the endpoint is closed.
func (e *endpoint[T]) Mode() Mode {
	c := e.bound()
	if c == nil {
		return ModeUnknown
	}
	return c.eng.mode()
}

// Capacity returns the queue capacity, 0 for rendezvous channels and
// [Unbounded] for broadcast channels. A closed endpoint reports 0.
func (e *endpoint[T]) Capacity() int {
	c := e.bound()
	if c == nil {
		return 0
	}
	return c.eng.capacity()
}

// Stats returns a snapshot of the bound channel, or the zero Stats once
// the endpoint is closed.
func (e *endpoint[T]) Stats() Stats {
	c := e.bound()
	if c == nil {
		return Stats{}
	}
	return c.stats()
}

func (e *endpoint[T]) String() string {
	c := e.bound()
	if c == nil {
		return fmt.Sprintf("%s %s (closed)", e.role, e.id)
	}
	return fmt.Sprintf("%s %s bound to %s", e.role, e.id, c)
}

// Close unbinds the endpoint and uncounts it from the channel. Closing the
// last endpoint of a role makes blocked operations of the other role fail
// with [ErrDisconnected]. Close is idempotent and always returns nil; the
// error result lets endpoints satisfy [io.Closer].
func (e *endpoint[T]) Close() error {
	c := e.bound()
	if c == nil {
		return nil
	}
	if e.role == RoleSender {
		c.removeSender(e)
	} else {
		c.removeReceiver(e)
	}
	return nil
}

func (e *endpoint[T]) sameChannel(other *endpoint[T]) bool {
	if other == nil {
		return false
	}
	c, oc := e.bound(), other.bound()
	return c != nil && c == oc
}
