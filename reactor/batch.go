package reactor

import "github.com/cellgraph/reactor/internal/kernel"

// Batch defers propagation of every write performed inside fn until fn
// returns, so dependents reachable from several writes notify at most
// once (spec.md §4.2).
func Batch(fn func()) { kernel.Current().Batch(fn) }

// Untrack runs fn without registering dependency edges for reads
// performed inside it.
func Untrack(fn func()) { kernel.Current().Untrack(fn) }
