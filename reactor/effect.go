package reactor

import "github.com/cellgraph/reactor/internal/kernel"

// Effect is a derived cell whose compute function runs for its side
// effects rather than its return value (spec.md §3's "effect-like
// cell"). It is kept eagerly live by an internal listener registered at
// construction, so it recomputes on every propagation that reaches it
// rather than waiting for a consumer's read.
type Effect struct {
	n    *kernel.Node
	stop func()
}

// NewEffect runs fn now (unless opts marks it Lazy, in which case fn
// stays dormant until the first Resume, per spec.md §3's "Effect-like
// cells that are lazy remain dormant until explicitly activated") and
// again every time one of its ambiently-tracked dependencies changes.
// Cleanup functions registered via ctx.OnCleanup run before the next
// invocation and on Dispose.
func NewEffect(fn func(ctx *Context), opts ...Options[struct{}]) *Effect {
	o := mergeOptions(opts)
	compute := func(n *kernel.Node) (any, error) {
		fn(newContext(n))
		return struct{}{}, nil
	}
	n := kernel.Current().NewDerived(compute, func(a, b any) bool { return false }, o.Name, true)
	e := &Effect{n: n}
	if !o.Lazy {
		e.activate()
	}
	return e
}

// activate registers the internal listener that keeps the effect
// eagerly live; idempotent.
func (e *Effect) activate() {
	if e.stop != nil {
		return
	}
	e.stop = e.n.Subscribe(func(any) {})
}

// Resume activates a lazy effect: runs it now if it has never run, and
// keeps it eagerly live for every later dependency change.
func (e *Effect) Resume() { e.activate() }

// Dispose stops the effect and runs its pending cleanups.
func (e *Effect) Dispose() {
	if e.stop != nil {
		e.stop()
	}
	e.n.Dispose()
}

// Disposed reports whether Dispose has run.
func (e *Effect) Disposed() bool { return e.n.Disposed() }

// DisplayName is the effect's diagnostic label.
func (e *Effect) DisplayName() string { return e.n.Name() }

// OnError registers a panic/error handler for this effect's owner
// subtree.
func (e *Effect) OnError(fn func(error)) {
	e.n.OnError(func(err error) { fn(translateErr(err)) })
}
