package op

import "github.com/cellgraph/reactor/reactor"

// forwarder wraps a reactor.Source to additionally unsubscribe from an
// upstream cell on Dispose, the shape every skip-family operator needs
// (spec.md §4.5: "each operator returns a derived cell whose disposal
// severs its upstream subscription").
type forwarder[T any] struct {
	*reactor.Source[T]
	unsub func()
}

func (f *forwarder[T]) Dispose() {
	f.unsub()
	f.Source.Dispose()
}

func newForwarder[T any](initial T) *forwarder[T] {
	return &forwarder[T]{Source: reactor.NewSource(initial)}
}

// Skip drops the first n values upstream emits (via On, not Read) and
// forwards every value after that. Read before the first forwarded
// value returns src's value at construction time, since Go has no
// nullish placeholder for "nothing forwarded yet".
func Skip[T any](src reactor.Cell[T], n int) reactor.Cell[T] {
	out := newForwarder(src.Read())
	remaining := n
	out.unsub = src.On(func(v T) {
		if remaining > 0 {
			remaining--
			return
		}
		out.Write(v)
	})
	return out
}

// SkipWhile drops upstream values while pred holds, then forwards every
// value from the first one that fails pred onward (pred is never
// consulted again after that point).
func SkipWhile[T any](src reactor.Cell[T], pred func(T) bool) reactor.Cell[T] {
	out := newForwarder(src.Read())
	skipping := true
	out.unsub = src.On(func(v T) {
		if skipping {
			if pred(v) {
				return
			}
			skipping = false
		}
		out.Write(v)
	})
	return out
}

// SkipLast maintains a sliding buffer of the last n upstream values and
// forwards the value that falls out of the buffer once it fills
// (spec.md §8's boundary behavior: skipLast(0) is the identity operator
// on emissions — every value forwards immediately).
func SkipLast[T any](src reactor.Cell[T], n int) reactor.Cell[T] {
	out := newForwarder(src.Read())
	if n <= 0 {
		out.unsub = src.On(func(v T) { out.Write(v) })
		return out
	}

	buf := make([]T, 0, n)
	out.unsub = src.On(func(v T) {
		buf = append(buf, v)
		if len(buf) > n {
			emit := buf[0]
			buf = buf[1:]
			out.Write(emit)
		}
	})
	return out
}

// Notifier is a type-erased "has this changed at least once" signal for
// SkipUntil, built with NotifierOf.
type Notifier func(fn func()) (unsubscribe func())

// NotifierOf adapts a typed cell into a Notifier that fires fn on every
// change, regardless of the cell's value type.
func NotifierOf[T any](c reactor.Cell[T]) Notifier {
	return func(fn func()) func() {
		return c.On(func(T) { fn() })
	}
}

// SkipUntil forwards nothing until any one of notifiers has changed at
// least once since subscription, then forwards every upstream value
// from that point on (spec.md §8: "skipUntil with a notifier that has
// not changed since subscription forwards nothing").
func SkipUntil[T any](src reactor.Cell[T], notifiers ...Notifier) reactor.Cell[T] {
	out := newForwarder(src.Read())
	unlocked := false
	var notifierUnsubs []func()

	unlock := func() {
		if unlocked {
			return
		}
		unlocked = true
		for _, u := range notifierUnsubs {
			u()
		}
		notifierUnsubs = nil
	}
	for _, notifier := range notifiers {
		notifierUnsubs = append(notifierUnsubs, notifier(unlock))
	}

	srcUnsub := src.On(func(v T) {
		if unlocked {
			out.Write(v)
		}
	})
	out.unsub = func() {
		srcUnsub()
		for _, u := range notifierUnsubs {
			u()
		}
	}
	return out
}
