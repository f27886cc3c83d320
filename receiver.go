package conduit

import (
	"context"
	"iter"

	"github.com/google/uuid"
)

// Receiver is the consuming endpoint of a channel. It is safe for concurrent
// use. In broadcast mode every receiver has its own queue, so clone it to
// add a subscriber rather than sharing one receiver between consumers.
type Receiver[T any] struct {
	endpoint[T]
}

func newReceiver[T any](c *channel[T], parent *endpoint[T]) (*Receiver[T], error) {
	r := &Receiver[T]{endpoint: endpoint[T]{id: uuid.New(), role: RoleReceiver}}
	if err := c.addReceiver(parent, &r.endpoint); err != nil {
		return nil, err
	}
	return r, nil
}

// Receive returns the next value, blocking until one is available.
//
// It returns [ErrDisconnected] if no sender is open, either at call time or
// because the last one closed while Receive was blocked, [ErrClosed] if this
// receiver is closed, or the context error if ctx ends first.
func (r *Receiver[T]) Receive(ctx context.Context) (T, error) {
	var zero T

	c := r.bound()
	if c == nil {
		return zero, opError("receive", r, ErrClosed)
	}

	v, err := c.eng.receive(ctx, r.id)
	if err != nil {
		if IsDisconnected(err) {
			c.record(EventDisconnected, r.id, RoleReceiver)
		}
		return zero, opError("receive", r, err)
	}
	c.record(EventReceived, r.id, RoleReceiver)
	return v, nil
}

// ReceiveEventually keeps trying to receive, waiting for a sender to connect
// whenever there is none. It returns the first value received, or the first
// error other than [ErrDisconnected].
func (r *Receiver[T]) ReceiveEventually(ctx context.Context) (T, error) {
	for {
		v, err := r.Receive(ctx)
		if !IsDisconnected(err) {
			return v, err
		}
		if err := r.WaitForSenders(ctx); err != nil {
			var zero T
			return zero, err
		}
	}
}

// WaitForSenders blocks until at least one sender is open on the channel.
func (r *Receiver[T]) WaitForSenders(ctx context.Context) error {
	c := r.bound()
	if c == nil {
		return opError("wait for senders", r, ErrClosed)
	}

	up, _, _ := c.watchSenders()
	select {
	case <-up:
		return nil
	case <-ctx.Done():
		return opError("wait for senders", r, ctx.Err())
	}
}

// Clone returns a new receiver bound to the same channel. In broadcast mode
// the clone only sees values sent after it was created.
func (r *Receiver[T]) Clone() (*Receiver[T], error) {
	c := r.bound()
	if c == nil {
		return nil, opError("clone", r, ErrClosed)
	}
	rx, err := newReceiver(c, &r.endpoint)
	if err != nil {
		return nil, opError("clone", r, err)
	}
	return rx, nil
}

// DeriveSender returns a new sender bound to the same channel.
func (r *Receiver[T]) DeriveSender() (*Sender[T], error) {
	c := r.bound()
	if c == nil {
		return nil, opError("derive sender", r, ErrClosed)
	}
	tx, err := newSender(c, &r.endpoint)
	if err != nil {
		return nil, opError("derive sender", r, err)
	}
	return tx, nil
}

// SameChannel reports whether both receivers are open and bound to the same channel.
func (r *Receiver[T]) SameChannel(other *Receiver[T]) bool {
	if other == nil {
		return false
	}
	return r.sameChannel(&other.endpoint)
}

// All returns a single-pass sequence of received values. The sequence ends
// quietly when Receive would fail with [ErrDisconnected]; any other error is
// yielded once, paired with the zero value, and ends the sequence.
//
//	for v, err := range rx.All(ctx) {
//	    if err != nil {
//	        return err
//	    }
//	    handle(v)
//	}
func (r *Receiver[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			v, err := r.Receive(ctx)
			if IsDisconnected(err) {
				return
			}
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}
