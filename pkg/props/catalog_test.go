package props_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingua/pkg/props"
)

func TestCatalog(t *testing.T) {
	t.Parallel()

	t.Run("zero value is usable", func(t *testing.T) {
		t.Parallel()
		var c props.Catalog
		c.Set("a", "1")
		v, ok := c.Get("a")
		require.True(t, ok)
		require.Equal(t, "1", v)
	})

	t.Run("set keeps original position", func(t *testing.T) {
		t.Parallel()
		c := props.FromPairs("a", "1", "b", "2", "c", "3")
		c.Set("a", "10")
		require.Equal(t, []string{"a", "b", "c"}, c.Keys())
		require.Equal(t, 3, c.Len())
	})

	t.Run("delete keeps order of the rest", func(t *testing.T) {
		t.Parallel()
		c := props.FromPairs("a", "1", "b", "2", "c", "3")
		c.Delete("b")
		c.Delete("missing")
		require.Equal(t, []string{"a", "c"}, c.Keys())
		require.False(t, c.Has("b"))

		v, ok := c.Get("c")
		require.True(t, ok)
		require.Equal(t, "3", v)
	})

	t.Run("from pairs with odd count", func(t *testing.T) {
		t.Parallel()
		c := props.FromPairs("a", "1", "dangling")
		v, ok := c.Get("dangling")
		require.True(t, ok)
		require.Empty(t, v)
	})

	t.Run("debug replaces every value", func(t *testing.T) {
		t.Parallel()
		c := props.FromPairs("a", "1", "b", "2")
		c.Debug("###")
		require.Equal(t, map[string]string{"a": "###", "b": "###"}, c.Map())
		require.Equal(t, []string{"a", "b"}, c.Keys())
	})

	t.Run("clone is independent", func(t *testing.T) {
		t.Parallel()
		c := props.FromPairs("a", "1")
		cp := c.Clone()
		cp.Set("a", "2")
		cp.Set("b", "3")

		v, _ := c.Get("a")
		require.Equal(t, "1", v)
		require.Equal(t, 1, c.Len())
	})

	t.Run("all stops early", func(t *testing.T) {
		t.Parallel()
		c := props.FromPairs("a", "1", "b", "2", "c", "3")
		var seen []string
		for k := range c.All() {
			seen = append(seen, k)
			if k == "b" {
				break
			}
		}
		require.Equal(t, []string{"a", "b"}, seen)
	})
}

func TestCatalog_JSON(t *testing.T) {
	t.Parallel()

	c := props.FromPairs("z", "last", "a", "first")

	data, err := json.Marshal(c)
	require.NoError(t, err)
	require.JSONEq(t, `[["z","last"],["a","first"]]`, string(data))

	var got props.Catalog
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, []string{"z", "a"}, got.Keys())

	require.Error(t, json.Unmarshal([]byte(`{"a":"b"}`), &got))
}
