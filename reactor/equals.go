package reactor

import "reflect"

// Equals is a cell's equality policy (spec.md §4.1): an equality-equal
// write is a no-op — no version bump, no notification, no recomputation.
type Equals[T any] func(a, b T) bool

// Identity compares pointers, maps, slices, funcs and channels by
// reference, and every other value with reflect.DeepEqual (so a struct
// holding a pointer compares the pointees, not the pointer values). It
// is the default policy, matching the teacher's Signal[T]
// (`comparable`-constrained `==`).
func Identity[T any]() Equals[T] {
	return func(a, b T) bool {
		return reflect.DeepEqual(interfaceIdentity(a), interfaceIdentity(b))
	}
}

// interfaceIdentity returns a value whose reflect.DeepEqual comparison
// is reference/identity-based for pointers, slices, maps and funcs, and
// value-based for everything else — i.e. Object.is semantics.
func interfaceIdentity(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return rv.Pointer()
	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		return rv.Pointer()
	default:
		return v
	}
}

// Shallow compares one level deep: for slices/arrays, same length and
// identity-equal elements; for maps, same keys and identity-equal
// values; otherwise falls back to Identity.
func Shallow[T any]() Equals[T] {
	return func(a, b T) bool {
		av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
		if av.Kind() != bv.Kind() {
			return false
		}

		switch av.Kind() {
		case reflect.Slice, reflect.Array:
			if av.Len() != bv.Len() {
				return false
			}
			for i := 0; i < av.Len(); i++ {
				if !shallowElemEqual(av.Index(i), bv.Index(i)) {
					return false
				}
			}
			return true

		case reflect.Map:
			if av.Len() != bv.Len() {
				return false
			}
			iter := av.MapRange()
			for iter.Next() {
				bvv := bv.MapIndex(iter.Key())
				if !bvv.IsValid() || !shallowElemEqual(iter.Value(), bvv) {
					return false
				}
			}
			return true

		default:
			return Identity[T]()(a, b)
		}
	}
}

func shallowElemEqual(a, b reflect.Value) bool {
	return interfaceIdentity(a.Interface()) == interfaceIdentity(b.Interface())
}

// Deep compares structural equality of JSON-like trees via
// reflect.DeepEqual.
func Deep[T any]() Equals[T] {
	return func(a, b T) bool { return reflect.DeepEqual(a, b) }
}

// Custom wraps an implementer-supplied binary predicate.
func Custom[T any](pred func(a, b T) bool) Equals[T] {
	return pred
}

func (e Equals[T]) untyped() func(a, b any) bool {
	return func(a, b any) bool {
		at, aok := a.(T)
		bt, bok := b.(T)
		if !aok || !bok {
			return aok == bok
		}
		return e(at, bt)
	}
}
