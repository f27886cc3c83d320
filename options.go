package conduit

import "github.com/rs/zerolog"

type config struct {
	broadcast      bool
	copyOnSend     bool
	copyFn         any // func(T) T, checked against T in New
	singleProducer bool
	singleConsumer bool
	logger         zerolog.Logger
	observer       Observer
}

// Option configures a channel created by [New].
type Option func(*config)

func defaultConfig() config {
	return config{
		logger: zerolog.Nop(),
	}
}

// WithBroadcast selects broadcast mode. The capacity passed to [New] is
// ignored; per-receiver queues are unbounded.
func WithBroadcast() Option {
	return func(c *config) {
		c.broadcast = true
	}
}

// WithCopyOnSend makes every send deliver a copy of the value. Values must
// implement [Copier] unless [WithCopyFunc] is also given.
func WithCopyOnSend() Option {
	return func(c *config) {
		c.copyOnSend = true
	}
}

// WithCopyFunc enables copy-on-send using fn instead of the [Copier]
// interface. fn must have the type func(T) T for the channel's T; [New]
// returns a configuration error otherwise. It panics if fn is nil.
func WithCopyFunc[T any](fn func(T) T) Option {
	if fn == nil {
		panic("conduit: WithCopyFunc requires a non-nil function")
	}
	return func(c *config) {
		c.copyOnSend = true
		c.copyFn = fn
	}
}

// WithSingleProducer forbids a second open sender on the channel.
func WithSingleProducer() Option {
	return func(c *config) {
		c.singleProducer = true
	}
}

// WithSingleConsumer forbids a second open receiver on the channel.
func WithSingleConsumer() Option {
	return func(c *config) {
		c.singleConsumer = true
	}
}

// WithLogger sets the logger used for debug-level lifecycle records.
// The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithObserver registers a hook that receives an [Event] for every endpoint
// lifecycle change and every completed transfer. It panics if fn is nil.
func WithObserver(fn Observer) Option {
	if fn == nil {
		panic("conduit: WithObserver requires a non-nil function")
	}
	return func(c *config) {
		c.observer = fn
	}
}
