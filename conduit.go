package conduit

// New creates a channel and returns one sender and one receiver bound to it.
//
// The mode is chosen in priority order: [WithBroadcast] selects broadcast
// mode and ignores capacity; otherwise a capacity of 0 selects rendezvous
// mode; otherwise the channel is a work queue holding up to capacity items,
// and a negative capacity is a [*ConfigError].
func New[T any](capacity int, opts ...Option) (*Sender[T], *Receiver[T], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	c, err := newChannel[T](cfg)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case cfg.broadcast:
		c.eng = newBroadcastEngine(c)
	case capacity == 0:
		c.eng = newRendezvousEngine(c)
	default:
		q, err := newQueueEngine(c, capacity)
		if err != nil {
			return nil, nil, err
		}
		c.eng = q
	}

	tx, err := newSender(c, nil)
	if err != nil {
		return nil, nil, err
	}
	rx, err := newReceiver(c, nil)
	if err != nil {
		_ = tx.Close()
		return nil, nil, err
	}

	c.logger.Debug().
		Str("mode", c.eng.mode().String()).
		Int("capacity", c.eng.capacity()).
		Bool("copy_on_send", cfg.copyOnSend).
		Msg("channel created")
	return tx, rx, nil
}

// MustNew is like [New] but panics on a configuration error.
func MustNew[T any](capacity int, opts ...Option) (*Sender[T], *Receiver[T]) {
	tx, rx, err := New[T](capacity, opts...)
	if err != nil {
		panic(err)
	}
	return tx, rx
}
