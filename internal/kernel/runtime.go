package kernel

import (
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"
)

// Runtime is the per-goroutine reactive scheduler described in
// SPEC_FULL.md §5: one instance per goroutine, keyed by goroutine id,
// exactly as the teacher binds its Runtime. A Node carries no fixed
// Runtime pointer at all: every operation resolves Current() fresh, so
// reading or writing a cell from a goroutine other than the one that
// created it (spec.md §5 permits this) drives propagation with the
// caller's own Runtime, not the creator's. mu guards the reader/owner
// stacks and the untrack counter with a brief critical section, like the
// teacher's internal/tracker.go: locked only around the pointer swap,
// never held across an invocation of user code, so nested/reentrant
// calls on the owning goroutine never deadlock against themselves. The
// flush, batch and pending-dispose fields are not locked; only the
// owning goroutine touches them.
type Runtime struct {
	mu sync.RWMutex

	readerStack []*Node
	ownerStack  []*Node
	untracked   int

	flushing     bool
	pendingRoots []*Node
	batchDepth   int
	batchedRoots map[*Node]bool

	pendingDispose []*Node
}

// globalClock stamps every version bump across the whole process, not
// just the calling goroutine. Versions are compared across Runtimes
// whenever a cell written on one goroutine (e.g. an async settle in
// reactor/op's ToLoadable) is read from another, so a per-Runtime
// counter would let a freshly-created background Runtime stamp a lower
// version than one a reader already observed, making ensureFresh's
// staleness check wrongly treat a genuine update as already seen.
var globalClock int64

var runtimes sync.Map // int64 (goid) -> *Runtime

// Current returns the Runtime bound to the calling goroutine, creating
// one on first use.
func Current() *Runtime {
	gid := goid.Get()
	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}
	r := &Runtime{}
	runtimes.Store(gid, r)
	return r
}

func (r *Runtime) nextVersion() int64 {
	return atomic.AddInt64(&globalClock, 1)
}

// activeReader is the node currently executing on this goroutine, or
// nil if no reactive computation is in progress.
func (r *Runtime) activeReader() *Node {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.readerStack) == 0 {
		return nil
	}
	return r.readerStack[len(r.readerStack)-1]
}

func (r *Runtime) pushReader(n *Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readerStack = append(r.readerStack, n)
}

func (r *Runtime) popReader() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readerStack = r.readerStack[:len(r.readerStack)-1]
}

// activeOwner is the owner new cells attach to when created without an
// explicit parent (e.g. inside an Owner.Run or a Derived's compute).
func (r *Runtime) activeOwner() *Node {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.ownerStack) == 0 {
		return nil
	}
	return r.ownerStack[len(r.ownerStack)-1]
}

func (r *Runtime) pushOwner(n *Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ownerStack = append(r.ownerStack, n)
}

func (r *Runtime) popOwner() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ownerStack = r.ownerStack[:len(r.ownerStack)-1]
}

// RunWithOwner runs fn with n as the active owner, so that cells created
// inside fn attach to n.
func (r *Runtime) RunWithOwner(n *Node, fn func()) {
	r.pushOwner(n)
	defer r.popOwner()
	fn()
}

// Untrack runs fn without registering any dependency edges for reads
// performed inside it.
func (r *Runtime) Untrack(fn func()) {
	r.mu.Lock()
	r.untracked++
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.untracked--
		r.mu.Unlock()
	}()
	fn()
}

func (r *Runtime) isTracking() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.untracked == 0
}

// track registers an edge from the active reader to dep, if tracking is
// currently enabled and a reader is active. Reentrant and disposed
// dependencies are never linked.
func (r *Runtime) track(dep *Node) {
	sub := r.activeReader()
	if sub == nil || sub == dep || !r.isTracking() {
		return
	}
	if dep.disposed {
		return
	}
	if dep.computing {
		// DependencyCycle (spec.md §7): the offending read is dropped —
		// no edge is registered, the prior value was already returned
		// by Read before this call.
		hooks().fireCycle(sub, dep)
		return
	}
	sub.addDep(dep)
}
