// Package op implements the pipeline operators from spec.md §4.5: map/
// select/to, the skip family, then, and loadable. focus lives in package
// reactor itself (reactor.Focus) since a lens needs to call back into
// its source cell's Write through the kernel — op only needs the public
// Cell[T] surface.
package op

import "github.com/cellgraph/reactor/reactor"

// Map applies fn to src's value, producing a derived cell of a possibly
// different type — the type-changing sibling of Cell.Pipe's same-type
// Operator chain (spec.md §4.5's "map / select / to").
func Map[T, U any](src reactor.Cell[T], fn func(T) U, opts ...reactor.Options[U]) *reactor.Derived[U] {
	return reactor.NewDerived(func(ctx *reactor.Context) (U, error) {
		return fn(src.Read()), nil
	}, opts...)
}

// To composes selectors left to right over src, each receiving the
// previous selector's output — sugar for Map chained with itself,
// matching spec.md §6's `cell.to(selectors…)` for the common case where
// every stage shares src's type.
func To[T any](src reactor.Cell[T], selectors ...func(T) T) *reactor.Derived[T] {
	return reactor.NewDerived(func(ctx *reactor.Context) (T, error) {
		v := src.Read()
		for _, sel := range selectors {
			v = sel(v)
		}
		return v, nil
	})
}

// Select is an alias for Map, matching spec.md §4.5's naming
// ("map / select / to").
func Select[T, U any](src reactor.Cell[T], fn func(T) U, opts ...reactor.Options[U]) *reactor.Derived[U] {
	return Map(src, fn, opts...)
}
