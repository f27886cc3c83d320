package chanx

import (
	"context"

	"github.com/baxromumarov/conduit"
)

// Tee sends every value received from src to each of dsts, in argument
// order, until src disconnects. It returns the number of values received.
//
// A slow sink holds back all the others. When the sinks are independent
// consumers of one stream, a broadcast channel is usually the better fit.
// Tee panics if dsts is empty.
func Tee[T any](ctx context.Context, src conduit.Source[T], dsts ...conduit.Sink[T]) (int, error) {
	if len(dsts) == 0 {
		panic("chanx: Tee requires at least one sink")
	}
	n := 0
	for {
		v, err := src.Receive(ctx)
		if err != nil {
			if conduit.IsDisconnected(err) {
				return n, nil
			}
			return n, err
		}
		n++
		for _, dst := range dsts {
			if err := dst.Send(ctx, v); err != nil {
				return n, err
			}
		}
	}
}
