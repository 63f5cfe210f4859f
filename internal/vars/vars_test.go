package vars

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinePrecedence(t *testing.T) {
	a := map[string]any{"x": 1, "y": "keep"}
	b := map[string]any{"x": 2, "z": true}

	merged, err := Combine(a, nil, b)
	require.NoError(t, err)

	assert.Equal(t, 2, merged["x"], "later source wins on collision")
	assert.Equal(t, "keep", merged["y"])
	assert.Equal(t, true, merged["z"])
}

func TestCombineDeepCopies(t *testing.T) {
	src := map[string]any{
		"nested": map[string]any{"port": 80},
		"list":   []any{"a", "b"},
	}

	merged, err := Combine(src)
	require.NoError(t, err)

	// Mutating the source afterwards must not affect the merged store.
	src["nested"].(map[string]any)["port"] = 9999
	src["list"].([]any)[0] = "mutated"

	assert.Equal(t, 80, merged["nested"].(map[string]any)["port"])
	assert.Equal(t, "a", merged["list"].([]any)[0])
}

func TestCombineFlattensListOfDicts(t *testing.T) {
	seq := []any{
		map[string]any{"x": 1},
		map[string]any{"y": 2},
		map[string]any{"x": 3},
	}

	merged, err := Combine(seq)
	require.NoError(t, err)

	assert.Equal(t, 3, merged["x"], "last key wins within the sequence")
	assert.Equal(t, 2, merged["y"])
}

func TestCombineRejectsBadShapes(t *testing.T) {
	_, err := Combine("not a mapping")
	assert.Error(t, err)

	_, err = Combine([]any{"not a mapping"})
	assert.Error(t, err)

	_, err = Combine(42)
	assert.Error(t, err)
}

func TestCombineEmpty(t *testing.T) {
	merged, err := Combine()
	require.NoError(t, err)
	assert.Empty(t, merged)

	merged, err = Combine(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, merged)
}
