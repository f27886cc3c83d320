package chanx

import (
	"context"

	"github.com/baxromumarov/conduit"
)

// Drain receives and discards values from src until it disconnects. Use it
// to unblock producers during shutdown. It returns how many values were
// discarded.
func Drain[T any](ctx context.Context, src conduit.Source[T]) (int, error) {
	n := 0
	for {
		if _, err := src.Receive(ctx); err != nil {
			if conduit.IsDisconnected(err) {
				return n, nil
			}
			return n, err
		}
		n++
	}
}
