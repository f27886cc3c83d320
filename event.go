package conduit

import "github.com/google/uuid"

// EventKind identifies what happened in an [Event].
type EventKind int

const (
	// EventOpened is emitted when an endpoint is created by New, Clone or a Derive call.
	EventOpened EventKind = iota
	// EventClosed is emitted by the first Close of an endpoint.
	EventClosed
	// EventSent is emitted after a send completes.
	EventSent
	// EventReceived is emitted after a receive completes.
	EventReceived
	// EventDisconnected is emitted when an operation fails with ErrDisconnected.
	EventDisconnected
)

func (k EventKind) String() string {
	switch k {
	case EventOpened:
		return "opened"
	case EventClosed:
		return "closed"
	case EventSent:
		return "sent"
	case EventReceived:
		return "received"
	case EventDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Event describes one observable change on a channel.
type Event struct {
	Kind     EventKind
	Channel  uuid.UUID
	Endpoint uuid.UUID
	Role     Role
	Mode     Mode
}

// Observer receives events. It is called synchronously from the goroutine
// performing the operation, never while the channel lock is held, so it
// must be fast and safe for concurrent use.
type Observer func(Event)
