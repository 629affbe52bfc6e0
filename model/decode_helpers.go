package model

import (
	"fmt"

	"github.com/specmorph/oasdoc/internal/maputil"
	"github.com/specmorph/oasdoc/specerrors"
)

// joinPath appends a key to a dotted tree path for diagnostics.
func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// indexPath appends a slice index to a tree path.
func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

// malformed builds a MalformedError locating the offending node.
func malformed(path, field, msg string) error {
	return &specerrors.MalformedError{Path: path, Field: field, Message: msg}
}

// Map probing delegates to maputil; the aliases keep decode code terse.
var (
	mapGetString      = maputil.GetString
	mapGetBool        = maputil.GetBool
	mapGetStringSlice = maputil.GetStringSlice
	mapGetAnySlice    = maputil.GetAnySlice
	mapGetFloat64Ptr  = maputil.GetFloat64Ptr
	mapGetIntPtr      = maputil.GetIntPtr
	mapGetInt64Ptr    = maputil.GetInt64Ptr
	mapGetBoolPtr     = maputil.GetBoolPtr
	mapGetStringMap   = maputil.GetStringMap
)

// requireMap asserts that v is a map node, reporting a MalformedError
// locating path otherwise.
func requireMap(v any, path string) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, malformed(path, "", fmt.Sprintf("expected an object, got %T", v))
	}
	return m, nil
}
