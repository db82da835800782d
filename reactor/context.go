package reactor

import (
	"context"

	"github.com/cellgraph/reactor/internal/kernel"
)

// Context is the record passed to a derived cell's compute function
// (spec.md §3's ctx: `{ deps, onCleanup(fn), safe(fn), abortSignal }`).
// Go has no structurally-typed "deps" object literal, so dependency
// declaration is always the ambient-tracking form from spec.md §4.1 step
// 4(b): compute reads whichever cells it wants through the ordinary
// Cell[T].Read() surface, and the edges are captured exactly as if a
// deps map had been declared. See DESIGN.md for this Open-Question call.
type Context struct {
	n   *kernel.Node
	ctx context.Context
}

// newContext captures the generation context current when the compute
// function is invoked, so Done keeps referring to that invocation even
// after a later recomputation replaces the node's context.
func newContext(n *kernel.Node) *Context { return &Context{n: n, ctx: n.Context()} }

// OnCleanup registers fn to run before the next recomputation and on
// disposal, LIFO relative to other cleanups of the same generation.
func (c *Context) OnCleanup(fn func()) { c.n.OnCleanup(fn) }

// Done reports the abort signal for this invocation: closed before the
// next recomputation runs and on disposal.
func (c *Context) Done() <-chan struct{} {
	if c.ctx != nil {
		return c.ctx.Done()
	}
	return nil
}

// Aborted reports whether this invocation's abort signal has fired.
func (c *Context) Aborted() bool {
	select {
	case <-c.Done():
		return true
	default:
		return false
	}
}

// Safe runs fn only if this invocation has not been aborted, so stale
// async work cannot write a result after cancellation.
func (c *Context) Safe(fn func()) {
	if !c.Aborted() {
		fn()
	}
}
