package reactor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cellgraph/reactor/reactor"
)

func TestFocusReadWrite(t *testing.T) {
	root := reactor.NewSource[any](map[string]any{
		"user": map[string]any{"name": "ada"},
	})

	name := reactor.Focus[any, string](root, "user.name")
	assert.Equal(t, "ada", name.Read())

	name.Write("grace")
	assert.Equal(t, "grace", name.Read())

	got := root.Read().(map[string]any)["user"].(map[string]any)["name"]
	assert.Equal(t, "grace", got)
}

// S3 — writing through a focus preserves structural sharing and notifies
// the root exactly once.
func TestFocusWritePreservesSiblingsAndNotifiesOnce(t *testing.T) {
	root := reactor.NewSource[any](map[string]any{
		"user":      map[string]any{"name": "ada"},
		"unrelated": map[string]any{"n": 1},
	})

	notified := 0
	root.On(func(any) { notified++ })

	name := reactor.Focus[any, string](root, "user.name")
	name.Write("grace")

	assert.Equal(t, 1, notified)

	next := root.Read().(map[string]any)
	assert.Equal(t, "grace", next["user"].(map[string]any)["name"])
	assert.Equal(t, map[string]any{"n": 1}, next["unrelated"])
}

func TestFocusFallbackOnlyForNullish(t *testing.T) {
	root := reactor.NewSource[any](map[string]any{
		"a": "",
		"b": false,
		"c": 0,
	})

	strLens := reactor.Focus[any, string](root, "a", reactor.LensOptions[string]{
		Fallback: func() string { return "fallback" },
	})
	assert.Equal(t, "", strLens.Read(), "empty string is present, not nullish")

	boolLens := reactor.Focus[any, bool](root, "b", reactor.LensOptions[bool]{
		Fallback: func() bool { return true },
	})
	assert.Equal(t, false, boolLens.Read(), "false is present, not nullish")

	missingLens := reactor.Focus[any, string](root, "missing.path", reactor.LensOptions[string]{
		Fallback: func() string { return "fallback" },
	})
	assert.Equal(t, "fallback", missingLens.Read())
}

func TestFocusValidateRejectsInvalidWrite(t *testing.T) {
	root := reactor.NewSource[any](map[string]any{"age": 10})

	var gotErr error
	age := reactor.Focus[any, int](root, "age", reactor.LensOptions[int]{
		Validate:  func(v int) bool { return v >= 0 },
		OnInvalid: func(err error) { gotErr = err },
	})

	age.Write(-5)
	assert.ErrorIs(t, gotErr, reactor.ErrValidationRejected)
	assert.Equal(t, 10, age.Read())
}

func TestLensMapIsIndependentFromParent(t *testing.T) {
	root := reactor.NewSource[any](map[string]any{"count": 1})

	count := reactor.Focus[any, int](root, "count")
	doubled := count.Map(
		func(v int) int { return v * 2 },
		func(v int) int { return v / 2 },
	)

	assert.Equal(t, 1, count.Read())
	assert.Equal(t, 2, doubled.Read())

	doubled.Write(10)
	assert.Equal(t, 5, count.Read())
	assert.Equal(t, 10, doubled.Read())
}

func TestLensSourceDeadBecomesReadOnlyThenDead(t *testing.T) {
	root := reactor.NewSource[any](map[string]any{"x": 1})
	x := reactor.Focus[any, int](root, "x")

	assert.Equal(t, 1, x.Read())
	assert.False(t, x.Disposed())

	root.Dispose()

	// lazily transitions to Dead on the next read/write/Disposed check
	assert.True(t, x.Disposed())

	var gotErr error
	onInvalid := func(err error) { gotErr = err }
	deadLens := reactor.Focus[any, int](root, "x", reactor.LensOptions[int]{OnInvalid: onInvalid})
	deadLens.Write(5)
	assert.ErrorIs(t, gotErr, reactor.ErrDisposed)
}
