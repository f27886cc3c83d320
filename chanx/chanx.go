package chanx

import (
	"context"

	"github.com/baxromumarov/conduit"
)

// ToChan receives from src in a goroutine and sends every value to the
// returned channel. The value channel is closed when src disconnects, ctx
// is cancelled or a receive fails; a failure other than disconnection is
// delivered on the error channel first. Both channels are closed on exit.
//
// The returned channel must be drained or ctx cancelled, otherwise the
// goroutine blocks forever.
func ToChan[T any](ctx context.Context, src conduit.Source[T]) (<-chan T, <-chan error) {
	out := make(chan T)
	errc := make(chan error, 1)

	go func() {
		defer close(errc)
		defer close(out)
		for {
			v, err := src.Receive(ctx)
			if err != nil {
				if !conduit.IsDisconnected(err) {
					errc <- err
				}
				return
			}
			select {
			case out <- v:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc
}

// FromChan sends every value read from in to dst until in is closed. It
// returns the number of values sent and the first send error, if any.
func FromChan[T any](ctx context.Context, in <-chan T, dst conduit.Sink[T]) (int, error) {
	n := 0
	for {
		select {
		case v, ok := <-in:
			if !ok {
				return n, nil
			}
			if err := dst.Send(ctx, v); err != nil {
				return n, err
			}
			n++
		case <-ctx.Done():
			return n, ctx.Err()
		}
	}
}
