package kernel

import "context"

// NewDerived creates a derived cell computed by fn. Unless lazy is
// true it computes synchronously now, matching the teacher's
// `NewComputed` (r.recompute(c) called from the constructor).
func (r *Runtime) NewDerived(fn func(*Node) (any, error), equals EqualsFunc, name string, lazy bool) *Node {
	n := newNode(KindDerived, name, equals)
	n.compute = fn
	n.lazy = lazy

	if owner := r.activeOwner(); owner != nil {
		owner.addChild(n)
	}

	hooks().fireCreate(n)

	if !lazy {
		n.recompute()
	}

	return n
}

// ensureFresh recomputes n if any dependency's version has advanced
// past the version recorded on its edge, or if n has never computed.
// Dependencies are refreshed first (recursively) so that staleness is
// judged against each dependency's true current version, per
// spec.md §4.1 step 1. It reports whether n's own version advanced as
// a result — i.e. whether a recompute ran AND produced a value that
// differed under n's equality policy (spec.md §4.1 step 6) — so a
// caller notifying subscribers can tell a genuine change from a
// recompute that landed back on the same value.
func (n *Node) ensureFresh() bool {
	if n.disposed || n.computing {
		return false
	}
	if !n.initialized {
		return n.recompute()
	}

	stale := false
	for e := n.depsHead; e != nil; e = e.nextDep {
		if e.dep.kind == KindDerived {
			e.dep.ensureFresh()
		}
		if e.dep.version > e.observedVersion {
			stale = true
		}
	}

	if stale {
		return n.recompute()
	}
	return false
}

// recompute runs the recomputation algorithm from spec.md §4.1:
// abort the previous generation, clear dependency edges, invoke
// compute under a fresh reader/owner frame, then diff the result. It
// returns whether the node's version advanced, i.e. whether the new
// value differed from the old one under n's equality policy.
func (n *Node) recompute() bool {
	n.computing = true
	defer func() { n.computing = false }()

	if n.cancel != nil {
		n.cancel()
	}
	n.runCleanups()
	n.disposeChildren()

	n.clearDeps()

	ctx, cancel := context.WithCancel(context.Background())
	n.ctx = ctx
	n.cancel = cancel

	rt := Current()
	rt.pushReader(n)
	rt.pushOwner(n)

	var (
		value any
		err   error
	)
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				err = panicToErr(rec)
			}
		}()
		value, err = n.compute(n)
	}()

	rt.popOwner()
	rt.popReader()

	n.initialized = true

	if err != nil {
		n.computeErr = err
		n.version = rt.nextVersion()
		hooks().fireCycleOrError(n, err)
		return true
	}

	changed := n.computeErr != nil || !n.equals(n.value, value)
	n.computeErr = nil
	n.value = value
	if changed {
		n.version = rt.nextVersion()
	}
	return changed
}

func panicToErr(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return errf("%v", r)
}
