package conduit

import "io"

// Use runs fn with ep and closes ep on every exit path: normal return,
// error and panic. A Close error is reported only if fn succeeded.
//
//	err := conduit.Use(tx, func(tx *conduit.Sender[int]) error {
//	    return tx.Send(ctx, 1)
//	})
func Use[E io.Closer](ep E, fn func(E) error) (err error) {
	defer func() {
		if cerr := ep.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(ep)
}
