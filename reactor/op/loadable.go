package op

import (
	"sync"

	"github.com/cellgraph/reactor/internal/async"
	"github.com/cellgraph/reactor/reactor"
)

// LoadState is Loadable's discriminant (spec.md §4.4).
type LoadState int

const (
	Loading LoadState = iota
	Success
	Failure
)

// Loadable is the discriminated projection of a future-valued cell:
// exactly one of Value/Err is meaningful, gated by Status.
type Loadable[T any] struct {
	Status LoadState
	Value  T
	Err    error
}

// ToLoadable projects a future-valued cell into a Loadable cell that
// starts at {Status: Loading} and flips to Success/Failure as the
// underlying future settles (spec.md §4.4).
func ToLoadable[T any](src reactor.Cell[*async.Future[T]]) reactor.Cell[Loadable[T]] {
	out := reactor.NewSource(Loadable[T]{Status: Loading})

	var mu sync.Mutex
	var seen *async.Future[T]
	var stopToken async.Token

	recompute := func() {
		fut := src.Read()

		mu.Lock()
		if fut == seen {
			mu.Unlock()
			return
		}
		seen = fut
		stopToken.Abort()
		tok := async.NewToken()
		stopToken = tok
		mu.Unlock()

		if fut == nil {
			out.Write(Loadable[T]{Status: Loading})
			return
		}
		if v, err, ok := fut.Peek(); ok {
			out.Write(settleLoadable(v, err))
			return
		}

		out.Write(Loadable[T]{Status: Loading})
		go func() {
			v, err := fut.Await(tok.Context())
			if tok.Aborted() {
				return
			}
			out.Write(settleLoadable(v, err))
		}()
	}

	unsub := src.On(func(*async.Future[T]) { recompute() })
	recompute()

	return &loadableCell[T]{Source: out, unsub: unsub}
}

func settleLoadable[T any](v T, err error) Loadable[T] {
	if err != nil {
		return Loadable[T]{Status: Failure, Err: err}
	}
	return Loadable[T]{Status: Success, Value: v}
}

type loadableCell[T any] struct {
	*reactor.Source[Loadable[T]]
	unsub func()
}

func (l *loadableCell[T]) Dispose() {
	l.unsub()
	l.Source.Dispose()
}
