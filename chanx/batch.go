package chanx

import (
	"context"

	"github.com/baxromumarov/conduit"
)

// SendBatch sends each value in values to dst in order, stopping at the
// first error. It returns the number of values sent.
func SendBatch[T any](ctx context.Context, dst conduit.Sink[T], values []T) (int, error) {
	for i, v := range values {
		if err := dst.Send(ctx, v); err != nil {
			return i, err
		}
	}
	return len(values), nil
}

// RecvBatch receives up to n values from src. If src disconnects before n
// values arrive, it returns what it has with a nil error. On any other
// failure it returns the values collected so far and the error.
//
// RecvBatch panics if n is not positive.
func RecvBatch[T any](ctx context.Context, src conduit.Source[T], n int) ([]T, error) {
	if n <= 0 {
		panic("chanx: RecvBatch requires n > 0")
	}
	result := make([]T, 0, n)
	for len(result) < n {
		v, err := src.Receive(ctx)
		if err != nil {
			if conduit.IsDisconnected(err) {
				return result, nil
			}
			return result, err
		}
		result = append(result, v)
	}
	return result, nil
}
