package reactor

import "github.com/cellgraph/reactor/internal/kernel"

// Owner is a bare ownership scope (spec.md §4.3): cells created while
// Run is executing attach to it, and disposing the Owner disposes them
// all, most-recently-created first.
type Owner struct {
	n *kernel.Node
}

// NewOwner creates an Owner. If called while another Owner/Scope/derived
// cell is active on this goroutine, the new Owner attaches to it and is
// disposed when its parent is.
func NewOwner(name string) *Owner {
	return &Owner{n: kernel.Current().NewOwner(name)}
}

// Run executes fn with this Owner as the active owner, so every cell fn
// creates (directly, or transitively through helpers) attaches to it.
func (o *Owner) Run(fn func()) { o.n.RunAsOwner(fn) }

// OnCleanup registers fn to run, LIFO, when the Owner is disposed.
func (o *Owner) OnCleanup(fn func()) { o.n.OnCleanup(fn) }

// OnError registers a panic/error handler for this Owner's subtree.
func (o *Owner) OnError(fn func(error)) {
	o.n.OnError(func(err error) { fn(translateErr(err)) })
}

// Dispose disposes every cell the Owner attached (LIFO), then the Owner
// itself. Idempotent.
func (o *Owner) Dispose() { o.n.Dispose() }

// Disposed reports whether Dispose has run.
func (o *Owner) Disposed() bool { return o.n.Disposed() }
