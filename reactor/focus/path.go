// Package focus implements pure path traversal and structural-sharing
// rebuild over untyped values (spec.md §4.6). It has no dependency on
// the kernel or the reactor package — the stateful Lens type that wires
// this traversal into a writable derived cell lives in package reactor
// itself (reactor/lens.go) to avoid a cross-package import cycle between
// a lens and the source cell it focuses.
package focus

import (
	"strconv"
	"strings"
)

// Segments splits a dot-separated path into its components. A segment
// that parses as a non-negative integer indexes a slice; any other
// segment is a map key. Struct fields are not traversed.
func Segments(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// isIndex reports whether segment addresses a slice element.
func isIndex(segment string) (int, bool) {
	i, err := strconv.Atoi(segment)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

// Get traverses root along path, returning the projected value and
// whether every intermediate segment resolved to a non-nil value. A
// false ok means some intermediate was nil/missing — the caller should
// fall back.
func Get(root any, path string) (value any, ok bool) {
	cur := root
	for _, seg := range Segments(path) {
		if cur == nil {
			return nil, false
		}
		next, found := index(cur, seg)
		if !found {
			return nil, false
		}
		cur = next
	}
	return cur, cur != nil
}

func index(cur any, seg string) (any, bool) {
	switch v := cur.(type) {
	case map[string]any:
		val, found := v[seg]
		return val, found
	case []any:
		i, ok := isIndex(seg)
		if !ok || i >= len(v) {
			return nil, false
		}
		return v[i], true
	default:
		return nil, false
	}
}

// Set rebuilds root with value written at path, cloning every object or
// array encountered along the way (structural sharing: siblings not on
// the path keep their original identity) and materializing any missing
// intermediate as an array (numeric segment) or map (otherwise).
func Set(root any, path string, value any) any {
	segs := Segments(path)
	if len(segs) == 0 {
		return value
	}
	return setAt(root, segs, value)
}

func setAt(cur any, segs []string, value any) any {
	seg := segs[0]
	rest := segs[1:]

	if i, ok := isIndex(seg); ok {
		arr := cloneSlice(cur)
		for len(arr) <= i {
			arr = append(arr, nil)
		}
		if len(rest) == 0 {
			arr[i] = value
		} else {
			arr[i] = setAt(arr[i], rest, value)
		}
		return arr
	}

	m := cloneMap(cur)
	if len(rest) == 0 {
		m[seg] = value
	} else {
		m[seg] = setAt(m[seg], rest, value)
	}
	return m
}

func cloneSlice(cur any) []any {
	src, ok := cur.([]any)
	if !ok {
		return nil
	}
	out := make([]any, len(src))
	copy(out, src)
	return out
}

func cloneMap(cur any) map[string]any {
	src, ok := cur.(map[string]any)
	out := make(map[string]any, len(src))
	if !ok {
		return out
	}
	for k, v := range src {
		out[k] = v
	}
	return out
}
