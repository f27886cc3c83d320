package conduit

import (
	"errors"
	"fmt"
)

var (
	// ErrDisconnected is returned when an operation needs an open endpoint of
	// the opposite role and there is none. It is recoverable: wait with
	// [Sender.WaitForReceivers] or [Receiver.WaitForSenders] and retry, which
	// is what [Sender.SendEventually] and [Receiver.ReceiveEventually] do.
	ErrDisconnected = errors.New("conduit: no open endpoints of the opposite role")

	// ErrClosed is returned by every operation other than Close and the
	// inspection methods once the endpoint has been closed.
	ErrClosed = errors.New("conduit: endpoint is closed")

	// ErrInvalidConfig is the sentinel behind every [*ConfigError].
	ErrInvalidConfig = errors.New("conduit: invalid configuration")

	// ErrNotCopyable is returned by send operations on a copy-on-send channel
	// when the value cannot be copied.
	ErrNotCopyable = errors.New("conduit: value does not support copying")
)

// ConfigError describes a caller bug at construction, clone or derive time:
// an invalid capacity or a violated single-producer/single-consumer constraint.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("conduit: invalid %s: %s", e.Field, e.Reason)
}

// Unwrap returns [ErrInvalidConfig].
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// OpError wraps an error with the operation and the endpoint that produced it.
// Use [errors.Is] with the sentinels above to classify it.
type OpError struct {
	Op       string
	Endpoint string
	Err      error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s on %s: %v", e.Op, e.Endpoint, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// IsDisconnected reports whether err (or any error in its chain) is [ErrDisconnected].
func IsDisconnected(err error) bool {
	return errors.Is(err, ErrDisconnected)
}

// IsClosed reports whether err (or any error in its chain) is [ErrClosed].
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}

func opError(op string, ep fmt.Stringer, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Endpoint: ep.String(), Err: err}
}
