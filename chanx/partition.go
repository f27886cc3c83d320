package chanx

import (
	"context"

	"github.com/baxromumarov/conduit"
)

// Partition routes every value received from src to match when fn returns
// true and to rest otherwise, until src disconnects. It returns how many
// values went to each sink.
//
// Both sinks must be drained concurrently: a full match sink blocks values
// bound for rest as well. Partition panics if fn is nil.
func Partition[T any](
	ctx context.Context,
	src conduit.Source[T],
	match, rest conduit.Sink[T],
	fn func(T) bool,
) (matched, other int, err error) {
	if fn == nil {
		panic("chanx: Partition requires non-nil predicate")
	}
	for {
		v, err := src.Receive(ctx)
		if err != nil {
			if conduit.IsDisconnected(err) {
				return matched, other, nil
			}
			return matched, other, err
		}
		if fn(v) {
			if err := match.Send(ctx, v); err != nil {
				return matched, other, err
			}
			matched++
			continue
		}
		if err := rest.Send(ctx, v); err != nil {
			return matched, other, err
		}
		other++
	}
}
