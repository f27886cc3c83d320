package conduit

// signal is a level-triggered flag that goroutines can wait on from either
// side: up is closed while the flag is set, down is closed while it is clear.
// Every method must be called with the owning channel's lock held; waiters
// copy the channel they need under the lock and select on it afterwards.
type signal struct {
	up   chan struct{}
	down chan struct{}
	set  bool
}

func newSignal() *signal {
	s := &signal{
		up:   make(chan struct{}),
		down: make(chan struct{}),
	}
	close(s.down)
	return s
}

func (s *signal) raise() {
	if s.set {
		return
	}
	s.set = true
	close(s.up)
	s.down = make(chan struct{})
}

// lower clears the flag and releases everyone blocked on down.
func (s *signal) lower() {
	if !s.set {
		return
	}
	s.set = false
	close(s.down)
	s.up = make(chan struct{})
}
