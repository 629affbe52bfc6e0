// Package maputil provides helpers for working with the map trees produced
// by YAML and JSON unmarshalling.
package maputil

import "sort"

// SortedKeys returns the keys of m in sorted order. It always returns a
// non-nil slice so callers can range over it without a nil check.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
