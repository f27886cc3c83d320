package conduit

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Unbounded is the capacity reported by broadcast channels.
const Unbounded = -1

// engine is the mode-specific half of a channel. Exactly one implementation
// backs each channel: queueEngine, broadcastEngine or rendezvousEngine.
//
// attach, detach and waiting are called with the channel lock held; send and
// receive take the lock themselves and never block while holding it.
type engine[T any] interface {
	mode() Mode
	capacity() int
	send(ctx context.Context, v T) error
	receive(ctx context.Context, rx uuid.UUID) (T, error)
	attach(rx uuid.UUID)
	detach(rx uuid.UUID)
	waiting() (buffered, senders, receivers int)
}

// Stats is a point-in-time snapshot of a channel's bookkeeping.
type Stats struct {
	Mode      Mode
	Capacity  int
	Senders   int
	Receivers int

	// Buffered counts undelivered items: the shared buffer in queue mode,
	// the sum of all receiver queues in broadcast mode, zero in rendezvous mode.
	Buffered int

	// WaitingSenders and WaitingReceivers count blocked rendezvous parties.
	WaitingSenders   int
	WaitingReceivers int
}

// channel is the state shared by every endpoint bound to it.
type channel[T any] struct {
	id             uuid.UUID
	copier         copier[T]
	singleProducer bool
	singleConsumer bool
	logger         zerolog.Logger
	observer       Observer

	mu          sync.Mutex
	senders     int
	receivers   int
	sendersUp   *signal
	receiversUp *signal

	eng engine[T]
}

func newChannel[T any](cfg config) (*channel[T], error) {
	c := &channel[T]{
		id: uuid.New(),
		copier: copier[T]{
			enabled: cfg.copyOnSend,
		},
		singleProducer: cfg.singleProducer,
		singleConsumer: cfg.singleConsumer,
		observer:       cfg.observer,
		sendersUp:      newSignal(),
		receiversUp:    newSignal(),
	}

	if cfg.copyFn != nil {
		fn, ok := cfg.copyFn.(func(T) T)
		if !ok {
			var zero T
			return nil, &ConfigError{
				Field:  "copy function",
				Reason: fmt.Sprintf("%T does not match func(%T) %T", cfg.copyFn, zero, zero),
			}
		}
		c.copier.fn = fn
	}

	c.logger = cfg.logger.With().Str("channel", c.id.String()).Logger()
	return c, nil
}

func (c *channel[T]) String() string {
	return fmt.Sprintf("%s channel %s", c.eng.mode(), c.id)
}

// watchReceivers returns the signal channels for the receiver role and
// whether any receiver is currently open.
func (c *channel[T]) watchReceivers() (up, down <-chan struct{}, open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.receiversUp.up, c.receiversUp.down, c.receivers > 0
}

// watchSenders is the sender-role counterpart of watchReceivers.
func (c *channel[T]) watchSenders() (up, down <-chan struct{}, open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sendersUp.up, c.sendersUp.down, c.senders > 0
}

// addSender counts ep as a new sender and binds it to c. A non-nil parent
// is the endpoint ep is cloned or derived from; it must still be bound to c
// when the lock is taken, so a closed endpoint never creates another. It
// enforces the single-producer constraint.
func (c *channel[T]) addSender(parent, ep *endpoint[T]) error {
	c.mu.Lock()
	if parent != nil && parent.bound() != c {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.singleProducer && c.senders > 0 {
		c.mu.Unlock()
		return &ConfigError{Field: "sender", Reason: "channel allows only a single producer"}
	}
	c.senders++
	c.sendersUp.raise()
	ep.ch.Store(c)
	c.mu.Unlock()

	c.record(EventOpened, ep.id, RoleSender)
	return nil
}

// addReceiver counts ep as a new receiver, gives it its mode-specific state
// and binds it to c. parent follows the addSender rules. It enforces the
// single-consumer constraint.
func (c *channel[T]) addReceiver(parent, ep *endpoint[T]) error {
	c.mu.Lock()
	if parent != nil && parent.bound() != c {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.singleConsumer && c.receivers > 0 {
		c.mu.Unlock()
		return &ConfigError{Field: "receiver", Reason: "channel allows only a single consumer"}
	}
	c.receivers++
	c.receiversUp.raise()
	c.eng.attach(ep.id)
	ep.ch.Store(c)
	c.mu.Unlock()

	c.record(EventOpened, ep.id, RoleReceiver)
	return nil
}

// removeSender unbinds ep and uncounts it in one locked step. Dropping the
// last sender lowers the signal, which wakes every receiver blocked on this
// channel. It is a no-op if ep was already unbound.
func (c *channel[T]) removeSender(ep *endpoint[T]) {
	c.mu.Lock()
	if !ep.ch.CompareAndSwap(c, nil) {
		c.mu.Unlock()
		return
	}
	c.senders--
	last := c.senders == 0
	if last {
		c.sendersUp.lower()
	}
	c.mu.Unlock()

	c.record(EventClosed, ep.id, RoleSender)
	if last {
		c.logger.Debug().Str("mode", c.eng.mode().String()).Msg("all senders closed")
	}
}

// removeReceiver is the receiver-role counterpart of removeSender.
func (c *channel[T]) removeReceiver(ep *endpoint[T]) {
	c.mu.Lock()
	if !ep.ch.CompareAndSwap(c, nil) {
		c.mu.Unlock()
		return
	}
	c.receivers--
	c.eng.detach(ep.id)
	last := c.receivers == 0
	if last {
		c.receiversUp.lower()
	}
	c.mu.Unlock()

	c.record(EventClosed, ep.id, RoleReceiver)
	if last {
		c.logger.Debug().Str("mode", c.eng.mode().String()).Msg("all receivers closed")
	}
}

func (c *channel[T]) stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	buffered, ws, wr := c.eng.waiting()
	return Stats{
		Mode:             c.eng.mode(),
		Capacity:         c.eng.capacity(),
		Senders:          c.senders,
		Receivers:        c.receivers,
		Buffered:         buffered,
		WaitingSenders:   ws,
		WaitingReceivers: wr,
	}
}

// record emits an event to the observer and, for lifecycle changes, a debug record.
func (c *channel[T]) record(kind EventKind, endpoint uuid.UUID, role Role) {
	m := c.eng.mode()
	switch kind {
	case EventOpened, EventClosed:
		c.logger.Debug().
			Str("endpoint", endpoint.String()).
			Str("role", role.String()).
			Str("mode", m.String()).
			Msgf("endpoint %s", kind)
	}

	if c.observer != nil {
		c.observer(Event{
			Kind:     kind,
			Channel:  c.id,
			Endpoint: endpoint,
			Role:     role,
			Mode:     m,
		})
	}
}
