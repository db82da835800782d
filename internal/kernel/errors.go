package kernel

import (
	"errors"
	"fmt"
)

// ErrDisposed is reported (via OnError, or panics for direct writes with
// no error handler attached) when a write targets a disposed source.
var ErrDisposed = errors.New("kernel: write on disposed cell")

func errf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// IsDisposed reports whether err wraps ErrDisposed.
func IsDisposed(err error) bool { return errors.Is(err, ErrDisposed) }
