package reactor

import "github.com/cellgraph/reactor/internal/kernel"

// Hooks is the process-wide, single-slot instrumentation record from
// spec.md §4.2: { onSignalCreate, onSignalDispose, onBeforeRead,
// onAfterRead, forgetDisposedSignals } plus the cycle/compute-error
// diagnostics spec.md §7 asks the hook record to carry.
type Hooks = kernel.HookTable

// WithHooks runs fn with installer's hook record temporarily active.
// installer receives the table currently installed so chains compose
// (spec.md §6: "installers receive the prior record").
func WithHooks(installer func(prev Hooks) Hooks, fn func()) {
	prev := kernel.CurrentHooks()
	kernel.WithHooks(installer(prev), fn)
}

// CurrentHooks returns the hook table currently installed.
func CurrentHooks() Hooks { return kernel.CurrentHooks() }
