package conduit

import "fmt"

// Copier is implemented by values that can produce an independent copy of
// themselves. Copy-on-send channels require it unless [WithCopyFunc] is set.
type Copier[T any] interface {
	Copy() T
}

// copier applies the copy-on-send contract for one channel.
type copier[T any] struct {
	enabled bool
	fn      func(T) T
}

// check reports whether v can be copied under the contract.
func (c copier[T]) check(v T) error {
	if !c.enabled || c.fn != nil {
		return nil
	}
	if _, ok := any(v).(Copier[T]); ok {
		return nil
	}
	return fmt.Errorf("%w: %T must implement conduit.Copier", ErrNotCopyable, v)
}

// copy returns v itself when copy-on-send is off, otherwise a fresh copy.
func (c copier[T]) copy(v T) (T, error) {
	if !c.enabled {
		return v, nil
	}
	if c.fn != nil {
		return c.fn(v), nil
	}
	if cp, ok := any(v).(Copier[T]); ok {
		return cp.Copy(), nil
	}
	var zero T
	return zero, fmt.Errorf("%w: %T must implement conduit.Copier", ErrNotCopyable, v)
}
