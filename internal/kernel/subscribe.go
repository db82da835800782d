package kernel

// Subscribe registers fn to be called with the cell's new value after
// every change. On the first subscriber of a lazy derived cell, the
// initial computation runs now. The returned unsubscribe is idempotent
// and detaches exactly one registration.
func (n *Node) Subscribe(fn func(any)) (unsubscribe func()) {
	if n.kind == KindDerived && !n.initialized {
		n.ensureFresh()
	}

	l := n.addListener(fn)
	detached := false
	return func() {
		if detached {
			return
		}
		detached = true
		n.removeListener(l)
	}
}
