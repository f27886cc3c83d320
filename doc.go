// Package conduit provides in-process channels with paired endpoints for
// communication between goroutines.
//
// A channel has two kinds of endpoints, [Sender] and [Receiver], created
// together by [New]. Endpoints can be cloned, and a sender can derive a
// receiver (and vice versa), so any topology works: SPSC, MPSC, MPMC.
//
//	tx, rx, err := conduit.New[int](16)
//	if err != nil {
//	    return err
//	}
//	defer tx.Close()
//	defer rx.Close()
//
//	if err := tx.Send(ctx, 42); err != nil {
//	    return err
//	}
//	v, err := rx.Receive(ctx)
//
// # Modes
//
// The mode is fixed at construction:
//
//   - Work queue ([ModeQueue], capacity > 0): one bounded FIFO shared by all
//     receivers. Each item goes to exactly one receiver. Send blocks while
//     the buffer is full.
//   - Broadcast ([ModeBroadcast], [WithBroadcast]): every receiver has its own
//     unbounded FIFO and gets every item sent while it is connected. Send
//     never blocks.
//   - Rendezvous ([ModeRendezvous], capacity 0): no buffering. Send blocks
//     until a receiver accepts the value.
//
// # Disconnection
//
// Operations that need the opposite role fail with [ErrDisconnected] when no
// endpoint of that role is open, including operations already blocked when
// the last one closes. The condition is recoverable:
// [Sender.SendEventually] and [Receiver.ReceiveEventually] wait for a peer and
// retry. Operations on a closed endpoint fail with [ErrClosed]. Close is
// idempotent; [Use] closes an endpoint on every exit path.
//
// [Receiver.All] ranges over received values until the channel disconnects.
//
// # Cancellation
//
// Every blocking operation takes a [context.Context]. The context is also the
// caller's liveness handle in rendezvous mode: a party whose context ends is
// removed from the waiting lists and never strands a peer's wakeup.
//
// # Copy on Send
//
// With [WithCopyOnSend], each delivery gets its own copy produced by the
// value's [Copier] implementation or by [WithCopyFunc]. Broadcast channels
// copy once per receiver.
//
// # Single Producer, Single Consumer
//
// [WithSingleProducer] and [WithSingleConsumer] make Clone and the Derive
// methods fail with a [*ConfigError] while an endpoint of that role is open.
//
// # Observability
//
// [WithObserver] receives an [Event] for every lifecycle change and transfer;
// the [github.com/baxromumarov/conduit/metrics] package turns those into
// prometheus metrics. [WithLogger] attaches a zerolog logger for debug-level
// lifecycle records.
//
// The [github.com/baxromumarov/conduit/chanx] subpackage bridges endpoints
// to native Go channels and provides forwarding stages, and
// [github.com/baxromumarov/conduit/task] runs producers and consumers as a
// structured group.
package conduit
