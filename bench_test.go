package conduit_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/baxromumarov/conduit"
)

func BenchmarkQueueSendReceive(b *testing.B) {
	for _, capacity := range []int{1, 16, 256} {
		b.Run(capacityName(capacity), func(b *testing.B) {
			ctx := context.Background()
			tx, rx := conduit.MustNew[int](capacity)
			defer tx.Close()
			defer rx.Close()

			go func() {
				for {
					if _, err := rx.Receive(ctx); err != nil {
						return
					}
				}
			}()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = tx.Send(ctx, i)
			}
		})
	}
}

func BenchmarkRendezvous(b *testing.B) {
	ctx := context.Background()
	tx, rx := conduit.MustNew[int](0)
	defer tx.Close()
	defer rx.Close()

	go func() {
		for {
			if _, err := rx.Receive(ctx); err != nil {
				return
			}
		}
	}()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tx.Send(ctx, i)
	}
}

func BenchmarkBroadcastFanOut(b *testing.B) {
	for _, receivers := range []int{1, 4, 16} {
		b.Run(capacityName(receivers), func(b *testing.B) {
			ctx := context.Background()
			tx, rx := conduit.MustNew[int](0, conduit.WithBroadcast())
			defer tx.Close()

			rxs := []*conduit.Receiver[int]{rx}
			for len(rxs) < receivers {
				r, _ := rx.Clone()
				rxs = append(rxs, r)
			}
			for _, r := range rxs {
				defer r.Close()
				go func() {
					for {
						if _, err := r.Receive(ctx); err != nil {
							return
						}
					}
				}()
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = tx.Send(ctx, i)
			}
		})
	}
}

// BenchmarkNativeChannel is the baseline for BenchmarkQueueSendReceive.
func BenchmarkNativeChannel(b *testing.B) {
	ch := make(chan int, 16)
	done := make(chan struct{})
	go func() {
		for range ch {
		}
		close(done)
	}()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ch <- i
	}
	close(ch)
	<-done
}

func capacityName(n int) string {
	return fmt.Sprintf("%d", n)
}
