package conduit

// Mode is the delivery mode of a channel. It is fixed at construction.
type Mode int

const (
	// ModeUnknown is reported by closed endpoints.
	ModeUnknown Mode = iota

	// ModeQueue delivers every item to exactly one receiver through a
	// bounded FIFO shared by all receivers.
	ModeQueue

	// ModeBroadcast delivers every item to every receiver connected at send
	// time through unbounded per-receiver FIFOs.
	ModeBroadcast

	// ModeRendezvous hands every item directly from one sender to one
	// receiver without buffering.
	ModeRendezvous
)

func (m Mode) String() string {
	switch m {
	case ModeQueue:
		return "queue"
	case ModeBroadcast:
		return "broadcast"
	case ModeRendezvous:
		return "rendezvous"
	default:
		return "unknown"
	}
}

// Role distinguishes the two kinds of endpoints.
type Role int

const (
	// RoleSender marks a [Sender] endpoint.
	RoleSender Role = iota
	// RoleReceiver marks a [Receiver] endpoint.
	RoleReceiver
)

func (r Role) String() string {
	if r == RoleSender {
		return "sender"
	}
	return "receiver"
}
