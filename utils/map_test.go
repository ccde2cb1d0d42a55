package utils

import (
	"testing"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/stretchr/testify/require"
)

func TestOrderedMapToString(t *testing.T) {
	m := orderedmap.NewOrderedMap[string, any]()
	m.Set("hDist", 0.25)
	m.Set("tags", "bunnyhop")
	require.Equal(t, "[hDist=0.25 tags=bunnyhop]", OrderedMapToString(m))
	require.Equal(t, "[]", OrderedMapToString(nil))
}

func TestKeyValsToString(t *testing.T) {
	require.Equal(t, "[foo=1 bar=true]", KeyValsToString([]any{"foo", 1, "bar", true}))
	require.Equal(t, "[foo=1]", KeyValsToString([]any{"foo", 1, "dangling"}))
	require.Equal(t, "[]", KeyValsToString(nil))
}
