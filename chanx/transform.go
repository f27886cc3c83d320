package chanx

import (
	"context"

	"github.com/baxromumarov/conduit"
)

// Forward sends every value received from src to dst until src
// disconnects. It returns the number of values forwarded.
func Forward[T any](ctx context.Context, src conduit.Source[T], dst conduit.Sink[T]) (int, error) {
	return Map(ctx, src, dst, func(v T) T { return v })
}

// Map applies fn to every value received from src and sends the result to
// dst until src disconnects. It returns the number of values sent.
func Map[T, U any](ctx context.Context, src conduit.Source[T], dst conduit.Sink[U], fn func(T) U) (int, error) {
	n := 0
	for {
		v, err := src.Receive(ctx)
		if err != nil {
			if conduit.IsDisconnected(err) {
				return n, nil
			}
			return n, err
		}
		if err := dst.Send(ctx, fn(v)); err != nil {
			return n, err
		}
		n++
	}
}

// Filter forwards only the values for which keep returns true. It returns
// the number of values sent.
func Filter[T any](ctx context.Context, src conduit.Source[T], dst conduit.Sink[T], keep func(T) bool) (int, error) {
	n := 0
	for {
		v, err := src.Receive(ctx)
		if err != nil {
			if conduit.IsDisconnected(err) {
				return n, nil
			}
			return n, err
		}
		if !keep(v) {
			continue
		}
		if err := dst.Send(ctx, v); err != nil {
			return n, err
		}
		n++
	}
}
