package kernel

// Tick models spec.md §4.3's "next microtask": Go has no event-loop
// microtask queue, so a deferred disposal becomes "pending until the
// next call to Tick", which a host integration is expected to invoke
// once per turn of its own event loop (or a test calls directly).
// Mirrors the teacher's EffectQueue/Flush split between the render
// phase and the deferred user-effect phase.
func (r *Runtime) Tick() {
	pending := r.pendingDispose
	r.pendingDispose = nil
	for _, n := range pending {
		if !n.disposeCancelled {
			n.Dispose()
		}
	}
}

// ScheduleDispose defers n's disposal to the next Tick, unless Cancel is
// called on the returned handle first.
func (r *Runtime) ScheduleDispose(n *Node) (cancel func()) {
	n.disposeCancelled = false
	r.pendingDispose = append(r.pendingDispose, n)
	return func() { n.disposeCancelled = true }
}
