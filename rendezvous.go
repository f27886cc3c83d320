package conduit

import (
	"context"

	"github.com/gammazero/deque"
	"github.com/google/uuid"
)

// offer is a blocked sender waiting for a receiver to take its value.
type offer[T any] struct {
	value T
	ctx   context.Context
	ack   chan struct{}
	taken bool
}

// demand is a blocked receiver waiting to be told an offer is available.
type demand struct {
	ctx   context.Context
	wake  chan struct{}
	woken bool
}

// rendezvousEngine is the zero-capacity mode: values pass directly from one
// sender to one receiver. Both waiting lists are guarded by the channel lock.
//
// A party's context is its liveness handle. Entries whose context is done
// are skipped and dropped during scans, and a party that gives up removes
// its own entry, so a wakeup is never lost on a party that left.
type rendezvousEngine[T any] struct {
	c       *channel[T]
	offers  deque.Deque[*offer[T]]
	demands deque.Deque[*demand]
}

func newRendezvousEngine[T any](c *channel[T]) *rendezvousEngine[T] {
	return &rendezvousEngine[T]{c: c}
}

func (r *rendezvousEngine[T]) mode() Mode { return ModeRendezvous }

func (r *rendezvousEngine[T]) capacity() int { return 0 }

func (r *rendezvousEngine[T]) attach(uuid.UUID) {}

func (r *rendezvousEngine[T]) detach(uuid.UUID) {}

func (r *rendezvousEngine[T]) waiting() (int, int, int) {
	return 0, r.offers.Len(), r.demands.Len()
}

func (r *rendezvousEngine[T]) send(ctx context.Context, v T) error {
	v, err := r.c.copier.copy(v)
	if err != nil {
		return err
	}

	r.c.mu.Lock()
	if r.c.receivers == 0 {
		r.c.mu.Unlock()
		return ErrDisconnected
	}
	o := &offer[T]{
		value: v,
		ctx:   ctx,
		ack:   make(chan struct{}),
	}
	r.offers.PushBack(o)
	r.wakeOne()
	gone := r.c.receiversUp.down
	r.c.mu.Unlock()

	select {
	case <-o.ack:
		return nil
	case <-gone:
		err = ErrDisconnected
	case <-ctx.Done():
		err = ctx.Err()
	}

	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if o.taken {
		// A receiver accepted the value before we noticed; the hand-off happened.
		return nil
	}
	remove(&r.offers, o)
	return err
}

func (r *rendezvousEngine[T]) receive(ctx context.Context, _ uuid.UUID) (T, error) {
	var zero T

	r.c.mu.Lock()
	if r.c.senders == 0 {
		r.c.mu.Unlock()
		return zero, ErrDisconnected
	}

	woke := false
	for {
		if o := r.takeOffer(); o != nil {
			r.c.mu.Unlock()
			return o.value, nil
		}
		if r.c.senders == 0 {
			r.c.mu.Unlock()
			return zero, ErrDisconnected
		}

		d := &demand{ctx: ctx, wake: make(chan struct{})}
		if woke {
			// Another receiver took the offer we were woken for; keep our place.
			r.demands.PushFront(d)
		} else {
			r.demands.PushBack(d)
		}
		gone := r.c.sendersUp.down
		r.c.mu.Unlock()

		select {
		case <-d.wake:
		case <-gone:
		case <-ctx.Done():
		}
		err := ctx.Err()

		r.c.mu.Lock()
		woke = d.woken
		if !woke {
			remove(&r.demands, d)
		}
		if err != nil {
			if woke {
				// Hand the wakeup we will not use to the next live receiver.
				r.wakeOne()
			}
			r.c.mu.Unlock()
			return zero, err
		}
	}
}

// takeOffer pops the earliest live offer and acknowledges it.
func (r *rendezvousEngine[T]) takeOffer() *offer[T] {
	for r.offers.Len() > 0 {
		o := r.offers.PopFront()
		if o.ctx.Err() != nil {
			continue
		}
		o.taken = true
		close(o.ack)
		return o
	}
	return nil
}

// wakeOne signals the earliest live demand.
func (r *rendezvousEngine[T]) wakeOne() {
	for r.demands.Len() > 0 {
		d := r.demands.PopFront()
		if d.ctx.Err() != nil {
			continue
		}
		d.woken = true
		close(d.wake)
		return
	}
}

func remove[E comparable](q *deque.Deque[E], e E) {
	if i := q.Index(func(x E) bool { return x == e }); i >= 0 {
		q.Remove(i)
	}
}
