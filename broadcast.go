package conduit

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// broadcastEngine is the broadcast mode: every receiver owns an unbounded
// mailbox and every send lands in all mailboxes present at send time.
type broadcastEngine[T any] struct {
	c *channel[T]

	// order serializes deliveries so all receivers see the same sequence.
	order sync.Mutex

	boxes map[uuid.UUID]*mailbox[T] // guarded by c.mu
}

func newBroadcastEngine[T any](c *channel[T]) *broadcastEngine[T] {
	return &broadcastEngine[T]{
		c:     c,
		boxes: make(map[uuid.UUID]*mailbox[T]),
	}
}

func (b *broadcastEngine[T]) mode() Mode { return ModeBroadcast }

func (b *broadcastEngine[T]) capacity() int { return Unbounded }

func (b *broadcastEngine[T]) attach(rx uuid.UUID) {
	b.boxes[rx] = newMailbox[T]()
}

func (b *broadcastEngine[T]) detach(rx uuid.UUID) {
	if m, ok := b.boxes[rx]; ok {
		delete(b.boxes, rx)
		m.close()
	}
}

func (b *broadcastEngine[T]) waiting() (int, int, int) {
	buffered := 0
	for _, m := range b.boxes {
		buffered += m.len()
	}
	return buffered, 0, 0
}

func (b *broadcastEngine[T]) send(_ context.Context, v T) error {
	if err := b.c.copier.check(v); err != nil {
		return err
	}

	b.order.Lock()
	defer b.order.Unlock()

	// Snapshot under the channel lock; receivers may detach while we deliver.
	b.c.mu.Lock()
	if b.c.receivers == 0 {
		b.c.mu.Unlock()
		return ErrDisconnected
	}
	boxes := make([]*mailbox[T], 0, len(b.boxes))
	for _, m := range b.boxes {
		boxes = append(boxes, m)
	}
	b.c.mu.Unlock()

	for _, m := range boxes {
		cv, err := b.c.copier.copy(v)
		if err != nil {
			return err
		}
		// A closed mailbox belongs to a receiver that left mid-delivery.
		m.push(cv)
	}
	return nil
}

func (b *broadcastEngine[T]) receive(ctx context.Context, rx uuid.UUID) (T, error) {
	var zero T

	b.c.mu.Lock()
	open := b.c.senders > 0
	gone := b.c.sendersUp.down
	m, ok := b.boxes[rx]
	b.c.mu.Unlock()

	if !ok {
		return zero, ErrClosed
	}
	if !open {
		return zero, ErrDisconnected
	}
	return m.pop(ctx, gone)
}
