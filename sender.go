package conduit

import (
	"context"

	"github.com/google/uuid"
)

// Sender is the producing endpoint of a channel. It is safe for concurrent
// use; clone it to give independent producers their own endpoint.
type Sender[T any] struct {
	endpoint[T]
}

// newSender creates a sender bound to c. parent is the endpoint it is
// cloned or derived from, nil when called by New.
func newSender[T any](c *channel[T], parent *endpoint[T]) (*Sender[T], error) {
	s := &Sender[T]{endpoint: endpoint[T]{id: uuid.New(), role: RoleSender}}
	if err := c.addSender(parent, &s.endpoint); err != nil {
		return nil, err
	}
	return s, nil
}

// Send delivers v according to the channel's mode, blocking while a queue
// is full or until a rendezvous receiver accepts the value.
//
// It returns [ErrDisconnected] if no receiver is open, either at call time
// or because the last one closed while Send was blocked, [ErrClosed] if this
// sender is closed, [ErrNotCopyable] on copy-on-send channels, or the
// context error if ctx ends first.
func (s *Sender[T]) Send(ctx context.Context, v T) error {
	c := s.bound()
	if c == nil {
		return opError("send", s, ErrClosed)
	}

	if err := c.eng.send(ctx, v); err != nil {
		if IsDisconnected(err) {
			c.record(EventDisconnected, s.id, RoleSender)
		}
		return opError("send", s, err)
	}
	c.record(EventSent, s.id, RoleSender)
	return nil
}

// SendEventually keeps trying to send v, waiting for a receiver to connect
// whenever there is none. It returns nil once v is delivered, or the first
// error other than [ErrDisconnected].
func (s *Sender[T]) SendEventually(ctx context.Context, v T) error {
	for {
		err := s.Send(ctx, v)
		if !IsDisconnected(err) {
			return err
		}
		if err := s.WaitForReceivers(ctx); err != nil {
			return err
		}
	}
}

// WaitForReceivers blocks until at least one receiver is open on the channel.
func (s *Sender[T]) WaitForReceivers(ctx context.Context) error {
	c := s.bound()
	if c == nil {
		return opError("wait for receivers", s, ErrClosed)
	}

	up, _, _ := c.watchReceivers()
	select {
	case <-up:
		return nil
	case <-ctx.Done():
		return opError("wait for receivers", s, ctx.Err())
	}
}

// Clone returns a new sender bound to the same channel.
func (s *Sender[T]) Clone() (*Sender[T], error) {
	c := s.bound()
	if c == nil {
		return nil, opError("clone", s, ErrClosed)
	}
	tx, err := newSender(c, &s.endpoint)
	if err != nil {
		return nil, opError("clone", s, err)
	}
	return tx, nil
}

// DeriveReceiver returns a new receiver bound to the same channel.
func (s *Sender[T]) DeriveReceiver() (*Receiver[T], error) {
	c := s.bound()
	if c == nil {
		return nil, opError("derive receiver", s, ErrClosed)
	}
	rx, err := newReceiver(c, &s.endpoint)
	if err != nil {
		return nil, opError("derive receiver", s, err)
	}
	return rx, nil
}

// SameChannel reports whether both senders are open and bound to the same channel.
func (s *Sender[T]) SameChannel(other *Sender[T]) bool {
	if other == nil {
		return false
	}
	return s.sameChannel(&other.endpoint)
}
