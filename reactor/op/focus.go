package op

import "github.com/cellgraph/reactor/reactor"

// Focus re-exports reactor.Focus under the operator pipeline's naming
// (spec.md §4.5 lists focus among map/skip/then as a pipeline stage);
// the implementation lives in package reactor itself since a lens needs
// to call back into its source's Write through the kernel, something
// op deliberately has no access to.
func Focus[S, V any](src reactor.Cell[S], path string, opts ...reactor.LensOptions[V]) *reactor.Lens[V] {
	return reactor.Focus[S, V](src, path, opts...)
}
