package reactor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cellgraph/reactor/reactor"
)

type scopeCells struct {
	source  *reactor.Source[int]
	doubled *reactor.Derived[int]
}

// S6 — scope disposal: LIFO disposal of cells created in a scope, and
// writes to a captured reference after disposal are no-ops.
func TestScopeDisposalIsLIFO(t *testing.T) {
	var order []string

	scope, err := reactor.NewScope(func() (scopeCells, error) {
		src := reactor.NewSource(1)
		d := reactor.NewDerived(func(ctx *reactor.Context) (int, error) {
			ctx.OnCleanup(func() { order = append(order, "derived") })
			return src.Read() * 2, nil
		})
		owner := reactor.NewOwner("cleanup-tracker")
		owner.OnCleanup(func() { order = append(order, "owner") })
		return scopeCells{source: src, doubled: d}, nil
	})
	assert.NoError(t, err)

	result := scope.Result()
	assert.Equal(t, 2, result.doubled.Read())

	scope.Dispose()

	assert.True(t, scope.Disposed())
	assert.True(t, result.doubled.Disposed())
	assert.True(t, result.source.Disposed())
	assert.Equal(t, []string{"owner", "derived"}, order)

	// a write to a captured reference after disposal is a no-op
	var gotErr error
	result.source.OnError(func(err error) { gotErr = err })
	result.source.Write(999)
	assert.ErrorIs(t, gotErr, reactor.ErrDisposed)
}

func TestScopeFactoryErrorDisposesPartialWork(t *testing.T) {
	disposed := false

	_, err := reactor.NewScope(func() (int, error) {
		owner := reactor.NewOwner("partial")
		owner.OnCleanup(func() { disposed = true })
		return 0, assert.AnError
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.True(t, disposed)
}

func TestScopeScheduleDisposeCancelledByCommit(t *testing.T) {
	scope, err := reactor.NewScope(func() (int, error) { return 1, nil })
	assert.NoError(t, err)

	scope.ScheduleDispose()
	scope.Commit()
	reactor.Tick()

	assert.False(t, scope.Disposed())
}

func TestScopeScheduleDisposeFiresOnTick(t *testing.T) {
	scope, err := reactor.NewScope(func() (int, error) { return 1, nil })
	assert.NoError(t, err)

	scope.ScheduleDispose()
	assert.False(t, scope.Disposed())

	reactor.Tick()
	assert.True(t, scope.Disposed())
}

func TestOwnerRunAttachesChildren(t *testing.T) {
	owner := reactor.NewOwner("root")

	var child *reactor.Source[int]
	owner.Run(func() {
		child = reactor.NewSource(1)
	})

	owner.Dispose()
	assert.True(t, child.Disposed())
}
