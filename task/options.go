package task

import "time"

// Policy determines how a [Group] reacts to task errors.
type Policy int

const (
	// FailFast cancels all siblings when the first error occurs.
	FailFast Policy = iota

	// Collect gathers all errors without cancelling siblings.
	Collect
)

// Info identifies a task in errors and hooks.
type Info struct {
	Name string
}

type config struct {
	policy Policy
	limit  int
	onDone func(Info, error, time.Duration)
}

// Option configures a [Group].
type Option func(*config)

// WithPolicy sets the error policy. It panics if p is not a known Policy.
func WithPolicy(p Policy) Option {
	return func(c *config) {
		switch p {
		case FailFast, Collect:
			c.policy = p
		default:
			panic("task: invalid policy")
		}
	}
}

// WithLimit caps the number of tasks running at once. Zero means no limit.
// It panics if n is negative.
func WithLimit(n int) Option {
	return func(c *config) {
		if n < 0 {
			panic("task: limit must be non-negative")
		}
		c.limit = n
	}
}

// WithOnDone registers a hook called after each task returns, with its
// error and wall-clock duration.
func WithOnDone(fn func(Info, error, time.Duration)) Option {
	return func(c *config) {
		c.onDone = fn
	}
}
