package kernel

import "sync"

// HookTable is the process-wide, single-slot instrumentation record from
// spec.md §4.2/§6. Unlike Runtime, it is NOT goroutine-local: installers
// chain by capturing the previous table, so composition is predictable
// regardless of which goroutine installs or fires a hook.
type HookTable struct {
	OnCellCreate          func(n *Node)
	OnCellDispose         func(n *Node)
	OnBeforeRead          func(n *Node)
	OnAfterRead           func(n *Node)
	OnLink                func(dep, sub *Node)
	OnCycleDetected       func(reader, dep *Node)
	OnComputeError        func(n *Node, err error)
	ForgetDisposedSignals bool
}

var (
	hookMu    sync.RWMutex
	hookTable = HookTable{}
)

func hooks() HookTable {
	hookMu.RLock()
	defer hookMu.RUnlock()
	return hookTable
}

// WithHooks installs table for the duration of fn, restoring the prior
// table afterward. installer is expected to have captured the previous
// table (passed to it by the caller) so chains compose.
func WithHooks(table HookTable, fn func()) {
	hookMu.Lock()
	prev := hookTable
	hookTable = table
	hookMu.Unlock()

	defer func() {
		hookMu.Lock()
		hookTable = prev
		hookMu.Unlock()
	}()

	fn()
}

// CurrentHooks returns the hook table currently installed, so a new
// installer can chain onto it.
func CurrentHooks() HookTable { return hooks() }

func (t HookTable) fireCreate(n *Node) {
	if t.OnCellCreate != nil {
		t.OnCellCreate(n)
	}
}

func (t HookTable) fireDispose(n *Node) {
	if t.OnCellDispose != nil {
		t.OnCellDispose(n)
	}
}

func (t HookTable) fireBeforeRead(n *Node) {
	if t.OnBeforeRead != nil {
		t.OnBeforeRead(n)
	}
}

func (t HookTable) fireAfterRead(n *Node) {
	if t.OnAfterRead != nil {
		t.OnAfterRead(n)
	}
}

func (t HookTable) fireLink(dep, sub *Node) {
	if t.OnLink != nil {
		t.OnLink(dep, sub)
	}
}

func (t HookTable) fireCycle(reader, dep *Node) {
	if t.OnCycleDetected != nil {
		t.OnCycleDetected(reader, dep)
	}
}

func (t HookTable) fireCycleOrError(n *Node, err error) {
	if t.OnComputeError != nil {
		t.OnComputeError(n, err)
	}
}
