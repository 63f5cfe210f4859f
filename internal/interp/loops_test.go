package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLoopItemsExpression(t *testing.T) {
	in := newInterpreter(nil)
	ambient := map[string]any{"packages": []any{"vim", "git"}}

	items := in.ResolveLoop(LoopSpec{Items: "{{ packages }}"}, ambient)
	assert.Equal(t, []any{"vim", "git"}, items)
}

func TestResolveLoopItemsLiteralList(t *testing.T) {
	in := newInterpreter(nil)
	items := in.ResolveLoop(LoopSpec{Items: []any{"a", "b"}}, nil)
	assert.Equal(t, []any{"a", "b"}, items)
}

func TestResolveLoopUnresolvableExpressionPassesThrough(t *testing.T) {
	in := newInterpreter(nil)

	items := in.ResolveLoop(LoopSpec{Items: "{{ missing }}"}, map[string]any{})
	assert.Equal(t, []any{"{{ missing }}"}, items)

	// An expression embedded in other text is never evaluated.
	items = in.ResolveLoop(LoopSpec{Items: "pkg-{{ suffix }}"}, map[string]any{"suffix": "x"})
	assert.Equal(t, []any{"pkg-{{ suffix }}"}, items)
}

func TestResolveLoopDottedPath(t *testing.T) {
	in := newInterpreter(nil)
	ambient := map[string]any{"app": map[string]any{"users": []any{"alice"}}}

	items := in.ResolveLoop(LoopSpec{Items: "{{ app.users }}"}, ambient)
	assert.Equal(t, []any{"alice"}, items)
}

func TestResolveLoopNestedCrossProduct(t *testing.T) {
	in := newInterpreter(nil)
	spec := LoopSpec{Nested: []any{[]any{"a", "b"}, []any{"x", "y"}}}

	items := in.ResolveLoop(spec, nil)
	require.Len(t, items, 4)
	assert.Equal(t, []any{"a", "x"}, items[0])
	assert.Equal(t, []any{"a", "y"}, items[1])
	assert.Equal(t, []any{"b", "x"}, items[2])
	assert.Equal(t, []any{"b", "y"}, items[3], "first level varies slowest")
}

func TestResolveLoopNestedEmptyLevel(t *testing.T) {
	in := newInterpreter(nil)
	spec := LoopSpec{Nested: []any{"{{ gone }}", []any{"x"}}}

	// An unresolvable level passes through as its literal string and
	// contributes one item.
	items := in.ResolveLoop(spec, map[string]any{})
	require.Len(t, items, 1)
	assert.Equal(t, []any{"{{ gone }}", "x"}, items[0])

	// A level resolving to an empty list contributes a single nil.
	spec = LoopSpec{Nested: []any{"{{ empty }}", []any{"x", "y"}}}
	items = in.ResolveLoop(spec, map[string]any{"empty": []any{}})
	require.Len(t, items, 2)
	assert.Equal(t, []any{nil, "x"}, items[0])
	assert.Equal(t, []any{nil, "y"}, items[1])
}

func TestResolveLoopDict(t *testing.T) {
	in := newInterpreter(nil)
	ambient := map[string]any{"users": map[string]any{"bob": 2, "alice": 1}}

	items := in.ResolveLoop(LoopSpec{Dict: "{{ users }}"}, ambient)
	require.Len(t, items, 2)
	assert.Equal(t, map[string]any{"key": "alice", "value": 1}, items[0], "sorted by key")
	assert.Equal(t, map[string]any{"key": "bob", "value": 2}, items[1])
}

func TestResolveLoopSubelements(t *testing.T) {
	in := newInterpreter(nil)
	ambient := map[string]any{"users": []any{
		map[string]any{"name": "alice", "keys": []any{"k1", "k2"}},
		map[string]any{"name": "bob", "keys": []any{"k3"}},
	}}

	items := in.ResolveLoop(LoopSpec{Subelements: []any{"{{ users }}", "keys"}}, ambient)
	require.Len(t, items, 3)
	pair := items[0].([]any)
	assert.Equal(t, "alice", pair[0].(map[string]any)["name"])
	assert.Equal(t, "k1", pair[1])
}

func TestResolveLoopNone(t *testing.T) {
	in := newInterpreter(nil)
	assert.Nil(t, in.ResolveLoop(LoopSpec{}, nil))
}
