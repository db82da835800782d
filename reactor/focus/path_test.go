package focus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cellgraph/reactor/reactor/focus"
)

func TestGet(t *testing.T) {
	root := map[string]any{
		"user": map[string]any{
			"name": "ada",
			"tags": []any{"admin", "staff"},
		},
	}

	t.Run("nested map field", func(t *testing.T) {
		v, ok := focus.Get(root, "user.name")
		assert.True(t, ok)
		assert.Equal(t, "ada", v)
	})

	t.Run("array index", func(t *testing.T) {
		v, ok := focus.Get(root, "user.tags.1")
		assert.True(t, ok)
		assert.Equal(t, "staff", v)
	})

	t.Run("missing intermediate", func(t *testing.T) {
		v, ok := focus.Get(root, "user.missing.x")
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("out of bounds index", func(t *testing.T) {
		_, ok := focus.Get(root, "user.tags.5")
		assert.False(t, ok)
	})

	t.Run("empty path returns root", func(t *testing.T) {
		v, ok := focus.Get(root, "")
		assert.True(t, ok)
		assert.Equal(t, root, v)
	})
}

func TestSetStructuralSharing(t *testing.T) {
	root := map[string]any{
		"user": map[string]any{
			"name": "ada",
			"tags": []any{"admin", "staff"},
		},
		"unrelated": map[string]any{"x": 1},
	}

	next := focus.Set(root, "user.name", "grace")

	nextMap := next.(map[string]any)
	assert.Equal(t, "grace", nextMap["user"].(map[string]any)["name"])

	// original untouched
	assert.Equal(t, "ada", root["user"].(map[string]any)["name"])

	// sibling not on the path is untouched: same contents, never rebuilt
	assert.Equal(t, root["unrelated"], nextMap["unrelated"])
}

func TestSetArrayIndex(t *testing.T) {
	root := map[string]any{"items": []any{"a", "b", "c"}}

	next := focus.Set(root, "items.1", "B")
	items := next.(map[string]any)["items"].([]any)

	assert.Equal(t, []any{"a", "B", "c"}, items)
	assert.Equal(t, []any{"a", "b", "c"}, root["items"]) // original untouched
}

func TestSetMaterializesMissingIntermediates(t *testing.T) {
	next := focus.Set(map[string]any{}, "a.b.0", "leaf")

	a := next.(map[string]any)["a"].(map[string]any)
	b := a["b"].([]any)
	assert.Equal(t, "leaf", b[0])
}

func TestSetEmptyPathReplacesRoot(t *testing.T) {
	got := focus.Set(map[string]any{"x": 1}, "", "replaced")
	assert.Equal(t, "replaced", got)
}
