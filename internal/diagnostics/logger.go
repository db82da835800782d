// Package diagnostics is the first real consumer of the kernel's hook
// table (spec.md §4.2/§6): it turns cell lifecycle events into
// structured log/slog records, and on a compute error or dependency
// cycle renders the live dependency graph as an ASCII tree via
// m1gwings/treedrawer.
//
// Grounded on pumped-fn-pumped-go's extensions/graph_debug.go, the
// pack's only worked example of "turn a dependency graph into a
// diagnostic report" — adapted from its DI-executor graph to this
// module's cell graph.
package diagnostics

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/m1gwings/treedrawer/tree"

	"github.com/cellgraph/reactor/internal/kernel"
)

// Logger installs itself as a hook table via Install, logging cell
// lifecycle events and rendering the dependency graph on failures.
type Logger struct {
	logger *slog.Logger

	mu    sync.Mutex
	edges map[*kernel.Node][]*kernel.Node // dep -> dependents, for graph rendering
	names map[*kernel.Node]string
}

// NewLogger wraps handler in an slog.Logger used for every diagnostic
// record emitted by the installed hooks.
func NewLogger(handler slog.Handler) *Logger {
	return &Logger{
		logger: slog.New(handler),
		edges:  make(map[*kernel.Node][]*kernel.Node),
		names:  make(map[*kernel.Node]string),
	}
}

// Install runs fn with this logger's hooks active, chained onto
// whatever hook table was already installed (spec.md §6: "installers
// receive the prior record").
func (l *Logger) Install(fn func()) {
	prev := kernel.CurrentHooks()

	table := kernel.HookTable{
		OnCellCreate: func(n *kernel.Node) {
			l.onCreate(n)
			if prev.OnCellCreate != nil {
				prev.OnCellCreate(n)
			}
		},
		OnCellDispose: func(n *kernel.Node) {
			l.onDispose(n)
			if prev.OnCellDispose != nil {
				prev.OnCellDispose(n)
			}
		},
		OnBeforeRead: prev.OnBeforeRead,
		OnAfterRead:  prev.OnAfterRead,
		OnLink: func(dep, sub *kernel.Node) {
			l.onLink(dep, sub)
			if prev.OnLink != nil {
				prev.OnLink(dep, sub)
			}
		},
		OnCycleDetected: func(reader, dep *kernel.Node) {
			l.onCycle(reader, dep)
			if prev.OnCycleDetected != nil {
				prev.OnCycleDetected(reader, dep)
			}
		},
		OnComputeError: func(n *kernel.Node, err error) {
			l.onComputeError(n, err)
			if prev.OnComputeError != nil {
				prev.OnComputeError(n, err)
			}
		},
		ForgetDisposedSignals: prev.ForgetDisposedSignals,
	}

	kernel.WithHooks(table, fn)
}

func (l *Logger) onCreate(n *kernel.Node) {
	l.mu.Lock()
	l.names[n] = n.Name()
	l.mu.Unlock()
	l.logger.Debug("cell created", "name", n.Name())
}

func (l *Logger) onDispose(n *kernel.Node) {
	l.mu.Lock()
	delete(l.edges, n)
	delete(l.names, n)
	l.mu.Unlock()
	l.logger.Debug("cell disposed", "name", n.Name())
}

func (l *Logger) onLink(dep, sub *kernel.Node) {
	l.mu.Lock()
	l.edges[dep] = append(l.edges[dep], sub)
	l.mu.Unlock()
}

func (l *Logger) onCycle(reader, dep *kernel.Node) {
	l.logger.Error("dependency cycle detected",
		"reader", reader.Name(),
		"dependency", dep.Name(),
		"graph", l.renderGraph(dep))
}

func (l *Logger) onComputeError(n *kernel.Node, err error) {
	l.logger.Error("compute error",
		"name", n.Name(),
		"error", err.Error(),
		"graph", l.renderGraph(n))
}

// renderGraph draws the dependency graph rooted at n as an ASCII tree.
func (l *Logger) renderGraph(root *kernel.Node) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	visited := make(map[*kernel.Node]bool)
	t := l.buildTree(root, visited)
	if t == nil {
		return "(no tracked dependents)"
	}
	return t.String()
}

func (l *Logger) buildTree(n *kernel.Node, visited map[*kernel.Node]bool) *tree.Tree {
	if visited[n] {
		return nil
	}
	visited[n] = true

	label := l.names[n]
	if label == "" {
		label = fmt.Sprintf("%p", n)
	}

	t := tree.NewTree(tree.NodeString(label))

	children := append([]*kernel.Node(nil), l.edges[n]...)
	sort.Slice(children, func(i, j int) bool {
		return l.names[children[i]] < l.names[children[j]]
	})

	for _, child := range children {
		childTree := l.buildTree(child, visited)
		if childTree == nil {
			continue
		}
		addTreeAsChild(t, childTree)
	}

	return t
}

func addTreeAsChild(parent, child *tree.Tree) {
	newChild := parent.AddChild(child.Val())
	for _, grandchild := range child.Children() {
		addTreeAsChild(newChild, grandchild)
	}
}
