package maputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetString(t *testing.T) {
	m := map[string]any{"s": "hello", "n": 42}
	assert.Equal(t, "hello", GetString(m, "s"))
	assert.Equal(t, "", GetString(m, "n"))
	assert.Equal(t, "", GetString(m, "missing"))
}

func TestGetBool(t *testing.T) {
	m := map[string]any{"t": true, "f": false, "s": "true"}
	assert.True(t, GetBool(m, "t"))
	assert.False(t, GetBool(m, "f"))
	assert.False(t, GetBool(m, "s"))
	assert.False(t, GetBool(m, "missing"))
}

func TestGetBoolPtr(t *testing.T) {
	m := map[string]any{"f": false, "s": "true"}
	ptr := GetBoolPtr(m, "f")
	require.NotNil(t, ptr)
	assert.False(t, *ptr)
	assert.Nil(t, GetBoolPtr(m, "s"))
	assert.Nil(t, GetBoolPtr(m, "missing"))
}

func TestGetStringSlice(t *testing.T) {
	m := map[string]any{
		"mixed":   []any{"a", 1, "b"},
		"strings": []any{"x", "y"},
		"scalar":  "nope",
	}
	assert.Equal(t, []string{"a", "b"}, GetStringSlice(m, "mixed"))
	assert.Equal(t, []string{"x", "y"}, GetStringSlice(m, "strings"))
	assert.Nil(t, GetStringSlice(m, "scalar"))
	assert.Nil(t, GetStringSlice(m, "missing"))
}

func TestGetFloat64Ptr(t *testing.T) {
	m := map[string]any{
		"json": float64(1.5),
		"yaml": int(3),
		"str":  "4",
	}
	jsonVal := GetFloat64Ptr(m, "json")
	require.NotNil(t, jsonVal)
	assert.Equal(t, 1.5, *jsonVal)

	yamlVal := GetFloat64Ptr(m, "yaml")
	require.NotNil(t, yamlVal)
	assert.Equal(t, 3.0, *yamlVal)

	assert.Nil(t, GetFloat64Ptr(m, "str"))
	assert.Nil(t, GetFloat64Ptr(m, "missing"))
}

func TestGetIntPtr(t *testing.T) {
	m := map[string]any{
		"json": float64(7),
		"yaml": int(9),
		"big":  int64(11),
	}
	for _, key := range []string{"json", "yaml", "big"} {
		ptr := GetIntPtr(m, key)
		require.NotNil(t, ptr, key)
	}
	assert.Equal(t, 7, *GetIntPtr(m, "json"))
	assert.Equal(t, 9, *GetIntPtr(m, "yaml"))
	assert.Equal(t, 11, *GetIntPtr(m, "big"))
	assert.Nil(t, GetIntPtr(m, "missing"))
}

func TestGetInt64Ptr(t *testing.T) {
	m := map[string]any{"n": float64(1234567890123)}
	ptr := GetInt64Ptr(m, "n")
	require.NotNil(t, ptr)
	assert.Equal(t, int64(1234567890123), *ptr)
	assert.Nil(t, GetInt64Ptr(m, "missing"))
}

func TestGetStringMap(t *testing.T) {
	m := map[string]any{
		"scopes": map[string]any{"read": "read access", "count": 2},
		"scalar": "nope",
	}
	assert.Equal(t, map[string]string{"read": "read access"}, GetStringMap(m, "scopes"))
	assert.Nil(t, GetStringMap(m, "scalar"))
	assert.Nil(t, GetStringMap(m, "missing"))
}
