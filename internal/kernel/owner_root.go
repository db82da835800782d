package kernel

// NewOwner creates a bare ownership scope (spec.md §4.7's scope, §4.3's
// "factory"): it holds no value and is never read or written, but
// attaches to the active owner exactly like a Source or Derived node and
// participates in the same LIFO disposal cascade.
func (r *Runtime) NewOwner(name string) *Node {
	n := newNode(KindOwner, name, nil)
	n.initialized = true

	if owner := r.activeOwner(); owner != nil {
		owner.addChild(n)
	}

	hooks().fireCreate(n)
	return n
}

// RunAsOwner runs fn with n pushed as the active owner on the calling
// goroutine, so cells created inside fn attach to n, then pops it.
func (n *Node) RunAsOwner(fn func()) {
	Current().RunWithOwner(n, fn)
}
