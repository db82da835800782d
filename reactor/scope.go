package reactor

import "github.com/cellgraph/reactor/internal/kernel"

// Scope creates a group of cells from a factory and bundles their
// collective disposal (spec.md §4.7). Every cell the factory creates
// attaches to the Scope's own Owner automatically, the same way any
// cell created under an active Owner does — no separate recording hook
// is needed beyond the ownership tree itself.
type Scope[T any] struct {
	n           *kernel.Node
	result      T
	cancelGrace func()
}

// NewScope runs factory under a fresh owner and returns the Scope
// wrapping its result. If factory returns an error, every cell it
// created before the error is disposed immediately and the error
// propagates to the caller; the Scope is not created.
func NewScope[T any](factory func() (T, error)) (*Scope[T], error) {
	owner := kernel.Current().NewOwner("scope")

	var (
		result T
		err    error
	)
	owner.RunAsOwner(func() {
		result, err = factory()
	})

	if err != nil {
		owner.Dispose()
		return nil, err
	}

	return &Scope[T]{n: owner, result: result}, nil
}

// Result is the factory's return value.
func (s *Scope[T]) Result() T { return s.result }

// Commit cancels a pending ScheduleDispose, keeping the scope alive.
// Calling Commit without a pending ScheduleDispose is a no-op.
func (s *Scope[T]) Commit() {
	if s.cancelGrace != nil {
		s.cancelGrace()
		s.cancelGrace = nil
	}
}

// ScheduleDispose defers disposal to the next kernel.Runtime.Tick
// (spec.md §4.3's "scheduled disposal"), so a caller that re-Commits
// within the same tick cancels the pending teardown.
func (s *Scope[T]) ScheduleDispose() {
	s.cancelGrace = kernel.Current().ScheduleDispose(s.n)
}

// Dispose tears the scope down immediately: every auto-tracked cell is
// disposed LIFO, then the scope's own owner node. Idempotent.
func (s *Scope[T]) Dispose() { s.n.Dispose() }

// Disposed reports whether Dispose has run (directly, or via a
// ScheduleDispose that reached a Tick uncancelled).
func (s *Scope[T]) Disposed() bool { return s.n.Disposed() }

// Tick drains every scope whose disposal was scheduled and not
// committed since the last Tick. A host integration calls this once per
// turn of its own event loop; tests call it directly.
func Tick() { kernel.Current().Tick() }
