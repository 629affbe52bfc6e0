package model

import "strings"

// Extensions captures specification extensions (fields starting with "x-")
// and any other fields not named by the enclosing struct. Values are raw
// tree nodes and round-trip verbatim.
type Extensions map[string]any

// IsExtensionKey returns true if the key starts with "x-".
func IsExtensionKey(key string) bool {
	return strings.HasPrefix(key, "x-")
}

// extractExtra collects every key of m not present in recognized into an
// Extensions map. Returns nil if nothing was collected (not an empty map).
func extractExtra(m map[string]any, recognized map[string]bool) Extensions {
	var extra Extensions
	for k, v := range m {
		if recognized[k] {
			continue
		}
		if extra == nil {
			extra = make(Extensions)
		}
		extra[k] = v
	}
	return extra
}

// mergeExtra copies extension entries into a tree map being built.
func mergeExtra(dst map[string]any, extra Extensions) {
	for k, v := range extra {
		dst[k] = v
	}
}
