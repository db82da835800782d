package reactor

import (
	"fmt"

	"github.com/cellgraph/reactor/internal/kernel"
)

// Derived is a cell whose value is computed by a pure function of its
// tracked dependencies (spec.md §3).
type Derived[T any] struct {
	n *kernel.Node
}

// NewDerived creates a derived cell computed by fn. Unless opts marks it
// Lazy, fn runs synchronously now.
func NewDerived[T any](fn func(*Context) (T, error), opts ...Options[T]) *Derived[T] {
	o := mergeOptions(opts)
	compute := func(n *kernel.Node) (value any, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				cause, ok := rec.(error)
				if !ok {
					cause = fmt.Errorf("%v", rec)
				}
				err = &ComputeError{Name: n.Name(), Err: cause}
			}
		}()
		v, ferr := fn(newContext(n))
		if ferr != nil {
			return v, &ComputeError{Name: n.Name(), Err: ferr}
		}
		return v, nil
	}
	n := kernel.Current().NewDerived(compute, o.equalsOrDefault().untyped(), o.Name, o.Lazy)
	return &Derived[T]{n: n}
}

func (d *Derived[T]) node() *kernel.Node { return d.n }

// Read returns the current value, recomputing first if stale.
func (d *Derived[T]) Read() T { return as[T](d.n.Read()) }

// On subscribes listener to every change. On the first subscriber of a
// lazy cell, the initial computation runs now.
func (d *Derived[T]) On(listener func(T)) (unsubscribe func()) {
	return d.n.Subscribe(wrapListener(listener))
}

// Dispose tears the cell down; idempotent.
func (d *Derived[T]) Dispose() { d.n.Dispose() }

// Disposed reports whether Dispose has run.
func (d *Derived[T]) Disposed() bool { return d.n.Disposed() }

// DisplayName is the cell's diagnostic label.
func (d *Derived[T]) DisplayName() string { return d.n.Name() }

// Pipe applies operators left to right, returning the final derived
// cell.
func (d *Derived[T]) Pipe(ops ...Operator[T]) Cell[T] {
	return Pipe[T](d, ops...)
}

// OnError registers a panic/error handler for this cell's owner subtree
// (listener panics, reported write errors on any cell it owns).
func (d *Derived[T]) OnError(fn func(error)) {
	d.n.OnError(func(err error) { fn(translateErr(err)) })
}
