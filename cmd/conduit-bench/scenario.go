package main

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/baxromumarov/conduit"
	"github.com/baxromumarov/conduit/task"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const drainPoll = 5 * time.Millisecond

type payload struct {
	Producer int
	Seq      int
	Data     []byte
}

// Copy gives each delivery its own Data slice.
func (p payload) Copy() payload {
	p.Data = append([]byte(nil), p.Data...)
	return p
}

// Report summarizes a finished run.
type Report struct {
	Mode     conduit.Mode
	Sent     int64
	Received int64
	Elapsed  time.Duration
}

// Expected is the number of receptions a lossless run produces.
func (r Report) Expected(sc Scenario) int64 {
	total := int64(sc.Producers) * int64(sc.Items)
	if sc.Mode == conduit.ModeBroadcast {
		total *= int64(sc.Consumers)
	}
	return total
}

// runScenario wires producers and consumers around one channel. The
// original sender is held open until the buffer drains, so consumers are
// only disconnected once every sent value has been picked up.
func runScenario(ctx context.Context, sc Scenario, logger zerolog.Logger, observer conduit.Observer) (Report, error) {
	ctx, cancel := context.WithTimeout(ctx, sc.Timeout)
	defer cancel()

	capacity, opts := sc.options()
	opts = append(opts, conduit.WithLogger(logger))
	if observer != nil {
		opts = append(opts, conduit.WithObserver(observer))
	}

	keeper, rx, err := conduit.New[payload](capacity, opts...)
	if err != nil {
		return Report{}, fmt.Errorf("create channel: %w", err)
	}
	defer keeper.Close()

	receivers := []*conduit.Receiver[payload]{rx}
	for len(receivers) < sc.Consumers {
		clone, err := rx.Clone()
		if err != nil {
			closeAll(receivers)
			return Report{}, fmt.Errorf("clone receiver: %w", err)
		}
		receivers = append(receivers, clone)
	}

	senders := make([]*conduit.Sender[payload], 0, sc.Producers)
	for len(senders) < sc.Producers {
		clone, err := keeper.Clone()
		if err != nil {
			closeAll(senders)
			closeAll(receivers)
			return Report{}, fmt.Errorf("clone sender: %w", err)
		}
		senders = append(senders, clone)
	}

	var rep Report
	rep.Mode = keeper.Mode()
	start := time.Now()

	done := task.WithOnDone(taskLogger(logger))
	consumers := task.New(ctx, done, task.WithPolicy(task.Collect))
	for i, r := range receivers {
		consumers.Go(fmt.Sprintf("consumer-%d", i), func(ctx context.Context) error {
			return conduit.Use(r, func(r *conduit.Receiver[payload]) error {
				for _, err := range r.All(ctx) {
					if err != nil {
						return err
					}
					atomic.AddInt64(&rep.Received, 1)
				}
				return nil
			})
		})
	}

	producers := task.New(consumers.Context(), done, task.WithLimit(sc.MaxRunning))
	for i, s := range senders {
		producers.Go(fmt.Sprintf("producer-%d", i), func(ctx context.Context) error {
			lim := sc.limiter()
			return conduit.Use(s, func(s *conduit.Sender[payload]) error {
				for seq := 0; seq < sc.Items; seq++ {
					if lim != nil {
						if err := lim.Wait(ctx); err != nil {
							return err
						}
					}
					p := payload{Producer: i, Seq: seq, Data: []byte{byte(seq)}}
					if err := s.Send(ctx, p); err != nil {
						return err
					}
					atomic.AddInt64(&rep.Sent, 1)
				}
				return nil
			})
		})
	}

	perr := producers.Wait()
	if perr == nil {
		perr = drain(ctx, keeper)
	}
	_ = keeper.Close()
	cerr := consumers.Wait()

	rep.Elapsed = time.Since(start)
	logger.Info().
		Str("mode", rep.Mode.String()).
		Int64("sent", rep.Sent).
		Int64("received", rep.Received).
		Dur("elapsed", rep.Elapsed).
		Msg("scenario finished")

	if perr != nil {
		if info, ok := task.TaskOf(perr); ok {
			logger.Error().Str("task", info.Name).Err(perr).Msg("producer failed")
		}
		return rep, fmt.Errorf("producers: %w", perr)
	}
	if cerr != nil {
		return rep, fmt.Errorf("consumers: %w", cerr)
	}
	return rep, nil
}

// taskLogger records every finished task at debug level.
func taskLogger(logger zerolog.Logger) func(task.Info, error, time.Duration) {
	return func(info task.Info, err error, elapsed time.Duration) {
		ev := logger.Debug()
		if err != nil {
			ev = logger.Warn().Err(err)
		}
		ev.Str("task", info.Name).Dur("elapsed", elapsed).Msg("task finished")
	}
}

// limiter paces one producer, or returns nil when the rate is unlimited.
func (sc Scenario) limiter() *rate.Limiter {
	if sc.Rate == 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(sc.Rate), 1)
}

// drain waits until no value is left buffered on the channel.
func drain(ctx context.Context, tx *conduit.Sender[payload]) error {
	ticker := time.NewTicker(drainPoll)
	defer ticker.Stop()
	for {
		if tx.Stats().Buffered == 0 {
			return nil
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return fmt.Errorf("drain: %w", ctx.Err())
		}
	}
}

func closeAll[E interface{ Close() error }](eps []E) {
	for _, ep := range eps {
		_ = ep.Close()
	}
}
