package op

import (
	"sync"

	"github.com/cellgraph/reactor/internal/async"
	"github.com/cellgraph/reactor/reactor"
)

// Then transforms the resolved value of a future-valued cell (spec.md
// §4.4): selector runs once src's current future settles, and its
// result is published as a new future. Already-settled source futures
// are applied synchronously and memoized by pointer identity, so a
// later read of an unchanged source future does not re-await it.
func Then[T, U any](src reactor.Cell[*async.Future[T]], selector func(T) (U, error)) reactor.Cell[*async.Future[U]] {
	out := reactor.NewSource[*async.Future[U]](nil)

	var mu sync.Mutex
	var seen *async.Future[T]
	var stopToken async.Token

	recompute := func() {
		srcFut := src.Read()

		mu.Lock()
		if srcFut == seen {
			mu.Unlock()
			return
		}
		seen = srcFut
		stopToken.Abort()
		tok := async.NewToken()
		stopToken = tok
		mu.Unlock()

		if srcFut == nil {
			out.Write(nil)
			return
		}
		if v, err, ok := srcFut.Peek(); ok {
			out.Write(settle(selector, v, err))
			return
		}

		next, resolve, reject := async.New[U]()
		out.Write(next)
		go func() {
			v, err := srcFut.Await(tok.Context())
			if err != nil {
				reject(err)
				return
			}
			if tok.Aborted() {
				return
			}
			u, serr := selector(v)
			if serr != nil {
				reject(serr)
				return
			}
			resolve(u)
		}()
	}

	unsub := src.On(func(*async.Future[T]) { recompute() })
	recompute()

	return &thenCell[U]{Source: out, unsub: unsub}
}

func settle[T, U any](selector func(T) (U, error), v T, err error) *async.Future[U] {
	if err != nil {
		return async.Failed[U](err)
	}
	u, serr := selector(v)
	if serr != nil {
		return async.Failed[U](serr)
	}
	return async.Resolved(u)
}

type thenCell[U any] struct {
	*reactor.Source[*async.Future[U]]
	unsub func()
}

func (t *thenCell[U]) Dispose() {
	t.unsub()
	t.Source.Dispose()
}
