package op_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cellgraph/reactor/internal/async"
	"github.com/cellgraph/reactor/reactor"
	"github.com/cellgraph/reactor/reactor/op"
)

func awaitValue[T any](t *testing.T, fut *async.Future[T]) (T, error) {
	t.Helper()
	select {
	case <-fut.Done():
		v, err, _ := fut.Peek()
		return v, err
	case <-time.After(time.Second):
		t.Fatal("future did not settle in time")
		var zero T
		return zero, nil
	}
}

func TestThenAppliesSelectorToAlreadySettledFuture(t *testing.T) {
	src := reactor.NewSource(async.Resolved(21))

	out := op.Then[int, int](src, func(v int) (int, error) {
		return v * 2, nil
	})

	fut := out.Read()
	require.NotNil(t, fut)
	v, err := awaitValue(t, fut)
	assert.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestThenWaitsForPendingFutureToSettle(t *testing.T) {
	pending, resolve, _ := async.New[int]()
	src := reactor.NewSource(pending)

	out := op.Then[int, int](src, func(v int) (int, error) {
		return v + 1, nil
	})

	fut := out.Read()
	require.NotNil(t, fut)
	assert.True(t, fut.Pending())

	resolve(9)

	v, err := awaitValue(t, fut)
	assert.NoError(t, err)
	assert.Equal(t, 10, v)
}

func TestThenPropagatesSelectorError(t *testing.T) {
	src := reactor.NewSource(async.Resolved(1))
	boom := errors.New("boom")

	out := op.Then[int, int](src, func(v int) (int, error) {
		return 0, boom
	})

	fut := out.Read()
	_, err := awaitValue(t, fut)
	assert.ErrorIs(t, err, boom)
}

// S5 — async/loadable: initial loading state, settles to success.
func TestToLoadableStartsLoadingThenSettlesSuccess(t *testing.T) {
	pending, resolve, _ := async.New[int]()
	src := reactor.NewSource(pending)

	out := op.ToLoadable[int](src)

	var seen []op.LoadState
	done := make(chan struct{})
	out.On(func(l op.Loadable[int]) {
		seen = append(seen, l.Status)
		if l.Status != op.Loading {
			close(done)
		}
	})

	assert.Equal(t, op.Loading, out.Read().Status)

	resolve(42)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loadable did not settle in time")
	}

	final := out.Read()
	assert.Equal(t, op.Success, final.Status)
	assert.Equal(t, 42, final.Value)
}

func TestToLoadableSettlesFailure(t *testing.T) {
	pending, _, reject := async.New[int]()
	src := reactor.NewSource(pending)

	out := op.ToLoadable[int](src)

	done := make(chan struct{})
	out.On(func(l op.Loadable[int]) {
		if l.Status != op.Loading {
			close(done)
		}
	})

	boom := errors.New("network down")
	reject(boom)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loadable did not settle in time")
	}

	final := out.Read()
	assert.Equal(t, op.Failure, final.Status)
	assert.ErrorIs(t, final.Err, boom)
}
