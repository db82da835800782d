package reactor

import "github.com/cellgraph/reactor/internal/kernel"

// Source is a writable cell holding a directly-assigned value
// (spec.md §3).
type Source[T any] struct {
	n *kernel.Node
}

// NewSource creates a writable source cell.
func NewSource[T any](initial T, opts ...Options[T]) *Source[T] {
	o := mergeOptions(opts)
	n := kernel.Current().NewSource(initial, o.equalsOrDefault().untyped(), o.Name)
	return &Source[T]{n: n}
}

func (s *Source[T]) node() *kernel.Node { return s.n }

// Read returns the current value, tracking the dependency if a reactive
// computation is currently active.
func (s *Source[T]) Read() T { return as[T](s.n.Read()) }

// Write assigns next. Equal to the current value (per the cell's
// equality policy) is a no-op.
func (s *Source[T]) Write(next T) { s.n.Write(next) }

// Update applies fn to the current value and writes the result.
func (s *Source[T]) Update(fn func(T) T) { s.n.Write(fn(s.Read())) }

// On subscribes listener to every change.
func (s *Source[T]) On(listener func(T)) (unsubscribe func()) {
	return s.n.Subscribe(wrapListener(listener))
}

// Dispose tears the cell down; idempotent.
func (s *Source[T]) Dispose() { s.n.Dispose() }

// Disposed reports whether Dispose has run.
func (s *Source[T]) Disposed() bool { return s.n.Disposed() }

// DisplayName is the cell's diagnostic label.
func (s *Source[T]) DisplayName() string { return s.n.Name() }

// Pipe applies operators left to right, returning the final derived
// cell.
func (s *Source[T]) Pipe(ops ...Operator[T]) Cell[T] {
	return Pipe[T](s, ops...)
}

// OnError registers a panic/error handler for this cell's owner subtree,
// including InvalidWrite reports for writes attempted after disposal.
func (s *Source[T]) OnError(fn func(error)) {
	s.n.OnError(func(err error) { fn(translateErr(err)) })
}
