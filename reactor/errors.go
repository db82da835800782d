package reactor

import (
	"errors"
	"fmt"

	"github.com/cellgraph/reactor/internal/kernel"
)

// Sentinel errors for the kinds from spec.md §7.
var (
	// ErrDisposed is reported for a direct write attempt on a disposed
	// source cell, or surfaced to a lens's error hook for a write
	// attempted through it after its source has been disposed.
	ErrDisposed = errors.New("reactor: cell is disposed")

	// ErrValidationRejected is reported to a lens's error hook when its
	// validator rejects a write.
	ErrValidationRejected = errors.New("reactor: lens validation rejected write")

	// ErrDependencyCycle marks a diagnostic surfaced through the hook
	// record (spec.md §7); it is never returned from Read, which always
	// returns the cell's prior value on a detected cycle.
	ErrDependencyCycle = errors.New("reactor: dependency cycle detected")
)

// ComputeError wraps a panic or returned error from a derived cell's
// compute function. It is stored as the cell's pending throw and
// rethrown on every read until a successful recomputation replaces it.
type ComputeError struct {
	Name string
	Err  error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("reactor: compute error in %q: %v", e.Name, e.Err)
}

func (e *ComputeError) Unwrap() error { return e.Err }

// InvalidWriteError reports a write rejected for a reason other than
// disposal (spec.md §7 InvalidWrite).
type InvalidWriteError struct {
	Name string
	Err  error
}

func (e *InvalidWriteError) Error() string {
	return fmt.Sprintf("reactor: invalid write on %q: %v", e.Name, e.Err)
}

func (e *InvalidWriteError) Unwrap() error { return e.Err }

// translateErr maps a kernel-level sentinel to its public equivalent at
// the package boundary, so OnError handlers never see internal types.
func translateErr(err error) error {
	if kernel.IsDisposed(err) {
		return ErrDisposed
	}
	return err
}
