package chanx

import (
	"context"
	"sync"

	"github.com/baxromumarov/conduit"
)

// Merge forwards values from every source to dst concurrently (fan-in)
// and returns once all sources have disconnected or one of them failed.
// The first failure cancels the remaining forwarders. The order of values
// across sources is non-deterministic; each source's own order is kept.
func Merge[T any](ctx context.Context, dst conduit.Sink[T], srcs ...conduit.Source[T]) (int, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
		first error
	)
	for _, src := range srcs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := Forward(ctx, src, dst)

			mu.Lock()
			defer mu.Unlock()
			total += n
			if err != nil && first == nil {
				first = err
				cancel(err)
			}
		}()
	}
	wg.Wait()
	return total, first
}
