package reactor

import (
	"fmt"

	"github.com/cellgraph/reactor/internal/kernel"
	"github.com/cellgraph/reactor/reactor/focus"
)

// Lens is a writable projection of a source cell along a dot-separated
// path into its JSON-like value tree (spec.md §4.6). Reads project
// through path (plus an optional get transform); writes rebuild the
// source via structural sharing (plus an optional set transform and
// validator).
type Lens[V any] struct {
	n      *kernel.Node
	source *kernel.Node
	path   string

	fallback  func() V
	fallbackV *V // memoized fallback, computed at most once per nullish streak

	get func(any) V
	set func(V) any

	validate func(V) bool
	onError  func(error)
}

// LensOptions configures Focus beyond the bare source/path pair.
type LensOptions[V any] struct {
	Name      string
	Equals    Equals[V]
	Fallback  func() V
	Get       func(any) V
	Set       func(V) any
	Validate  func(V) bool
	OnInvalid func(error)
}

// Focus builds a lens over src at path. src may itself be a *Lens
// (paths compose, per spec.md §4.6's "Composition").
func Focus[S, V any](src Cell[S], path string, opts ...LensOptions[V]) *Lens[V] {
	var o LensOptions[V]
	for _, x := range opts {
		o = x
	}
	if o.Get == nil {
		o.Get = func(a any) V { return as[V](a) }
	}
	if o.Set == nil {
		o.Set = func(v V) any { return v }
	}

	l := &Lens[V]{
		source:   src.node(),
		path:     path,
		fallback: o.Fallback,
		get:      o.Get,
		set:      o.Set,
		validate: o.Validate,
		onError:  o.OnInvalid,
	}

	equals := o.Equals
	if equals == nil {
		equals = Identity[V]()
	}
	l.build(equals, o.Name)
	return l
}

// build wires l's kernel node: a derived cell computed by l.read(), with
// a custom write delegate that routes through l.write() into the
// underlying source. Each Lens value (including those produced by Map)
// owns its own node, since Map changes the get/set transform the
// compute closure calls.
func (l *Lens[V]) build(equals Equals[V], name string) {
	compute := func(_ *kernel.Node) (any, error) {
		return l.read(), nil
	}
	l.n = kernel.Current().NewDerived(compute, equals.untyped(), name, false)
	l.n.SetCustomWrite(func(next any) error {
		// Reported through l.onError (spec.md §4.6's onError hook), not
		// the kernel's generic error-handler chain: a lens's invalid
		// writes are a domain concern of the lens itself.
		_ = l.write(next.(V))
		return nil
	})
}

func (l *Lens[V]) read() V {
	raw := l.source.Read()
	projected, ok := focus.Get(raw, l.path)
	if !ok {
		if l.fallback != nil {
			if l.fallbackV == nil {
				v := l.fallback()
				l.fallbackV = &v
			}
			return *l.fallbackV
		}
		return l.get(nil)
	}
	l.fallbackV = nil
	return l.get(projected)
}

func (l *Lens[V]) write(next V) error {
	if l.validate != nil && !l.validate(next) {
		err := fmt.Errorf("reactor: lens %q: %w", l.n.Name(), ErrValidationRejected)
		l.reportInvalid(err)
		return err
	}

	raw := l.source.Read()
	rebuilt := focus.Set(raw, l.path, l.set(next))
	l.source.Write(rebuilt)
	return nil
}

func (l *Lens[V]) reportInvalid(err error) {
	if l.onError != nil {
		l.onError(err)
	}
}

func (l *Lens[V]) node() *kernel.Node { return l.n }

// dieIfSourceDisposed implements spec.md §4.6's "Source-dead, read-only
// → Dead" transition: the lens itself is only disposed lazily, on the
// next read or write attempt after its source goes away.
func (l *Lens[V]) dieIfSourceDisposed() {
	if l.source.Disposed() && !l.n.Disposed() {
		l.n.Dispose()
	}
}

// Read projects the source's current value through path (spec.md
// §4.6's read semantics): a nil/missing intermediate yields the
// memoized fallback (evaluated once per nullish streak) through the
// get transform, or the get transform's own zero-input behavior if no
// fallback was configured. Once the source is disposed, Read keeps
// returning the lens's last-known value without recomputation.
func (l *Lens[V]) Read() V {
	l.dieIfSourceDisposed()
	return as[V](l.n.Read())
}

// Write rebuilds the source at path via structural sharing. A rejected
// validator or a disposed source invokes the configured OnInvalid hook
// instead of writing.
func (l *Lens[V]) Write(next V) {
	l.dieIfSourceDisposed()
	if l.n.Disposed() {
		l.reportInvalid(fmt.Errorf("reactor: lens %q write on disposed source: %w", l.n.Name(), ErrDisposed))
		return
	}
	l.n.Write(next)
}

// Update applies fn to the current projection and writes the result.
func (l *Lens[V]) Update(fn func(V) V) { l.Write(fn(l.Read())) }

// On subscribes listener to every change in the projected value.
func (l *Lens[V]) On(listener func(V)) (unsubscribe func()) {
	return l.n.Subscribe(wrapListener(listener))
}

// Dispose detaches the lens. The source cell is unaffected (spec.md
// §4.6's "Disposal": disposing L directly leaves S alone).
func (l *Lens[V]) Dispose() { l.n.Dispose() }

// Disposed reports whether Dispose has run, or whether the underlying
// source has been disposed out from under this lens (the
// "Source-dead, read-only" state transitions to Dead lazily, on the
// next read or write attempt per spec.md §4.6).
func (l *Lens[V]) Disposed() bool {
	l.dieIfSourceDisposed()
	return l.n.Disposed()
}

// DisplayName is the lens's diagnostic label.
func (l *Lens[V]) DisplayName() string { return l.n.Name() }

// Map returns an independent lens over the same source and path that
// applies an additional get/set transform pair on top of l's own,
// per spec.md §4.6's lens convenience form. It owns its own derived
// node: disposing it or l independently disposes only that one.
func (l *Lens[V]) Map(get func(V) V, set func(V) V) *Lens[V] {
	mapped := &Lens[V]{
		source:   l.source,
		path:     l.path,
		fallback: l.fallback,
		get:      func(a any) V { return get(l.get(a)) },
		set:      func(v V) any { return l.set(set(v)) },
		validate: l.validate,
		onError:  l.onError,
	}
	mapped.build(Identity[V](), l.n.Name()+".map")
	return mapped
}

// LensPair is the `[read, write]` affordance from spec.md §4.6's
// "Lens convenience form".
func LensPair[V any](l *Lens[V]) (read func() V, write func(V)) {
	return l.Read, l.Write
}

// NewLensPair builds a lens over src at path and immediately returns it
// as a read/write pair, skipping the intermediate *Lens value for
// callers that only want the convenience form.
func NewLensPair[S, V any](src Cell[S], path string, fallback func() V) (read func() V, write func(V)) {
	l := Focus[S, V](src, path, LensOptions[V]{Fallback: fallback})
	return LensPair(l)
}
