// Package reactor is the public surface of the reactive runtime: cells
// that memoize values, track their dependents, and recompute lazily
// when upstream cells change (spec.md §1).
//
// Source cells hold an assigned value; derived cells compute theirs
// from the cells their compute function reads (ambient tracking; there
// is no declared-dependencies form); effects are derived
// cells kept eagerly live. Lifecycle is owner-scoped: a cell created
// inside another cell's compute function, or inside an Owner.Run, is
// disposed when its owner is.
package reactor

import "github.com/cellgraph/reactor/internal/kernel"

// as converts an untyped kernel value back to T, the way the teacher's
// sig.go helper does — nil decays to T's zero value instead of panicking
// on a failed type assertion of an absent value.
func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}

// Cell is the read-only view shared by every cell variant.
type Cell[T any] interface {
	// Read returns the current value, tracking the dependency if a
	// reactive computation is currently active.
	Read() T

	// On subscribes listener to every change, returning an idempotent
	// unsubscribe function.
	On(listener func(T)) (unsubscribe func())

	// Dispose tears the cell down; idempotent.
	Dispose()

	// Disposed reports whether Dispose has run.
	Disposed() bool

	// DisplayName is the cell's diagnostic label.
	DisplayName() string

	node() *kernel.Node
}

func wrapListener[T any](fn func(T)) func(any) {
	return func(v any) { fn(as[T](v)) }
}

// Operator is a unary, type-preserving pipeline stage (spec.md §4.5):
// source cell in, derived cell out. Type-changing stages (Map/Select,
// Focus, Then, ToLoadable) are free functions in package op (Focus also
// in this package) instead of Operator values, since Go generics need a
// fixed type parameter
// list that a variadic Pipe chain with changing types cannot express;
// see DESIGN.md for the tradeoff.
type Operator[T any] func(Cell[T]) Cell[T]

// Pipe applies ops left to right over src.
func Pipe[T any](src Cell[T], ops ...Operator[T]) Cell[T] {
	cur := src
	for _, op := range ops {
		cur = op(cur)
	}
	return cur
}

// Underlying exposes a cell's kernel node to sibling packages (op,
// focus) built on top of this one. Application code should use the
// Cell[T] surface instead.
func Underlying[T any](c Cell[T]) *kernel.Node { return c.node() }
