package maputil

import "math"

// GetString extracts a string from m[key], returning "" for absent or
// non-string values.
func GetString(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// GetBool extracts a bool from m[key].
func GetBool(m map[string]any, key string) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return false
}

// GetStringSlice extracts a []string from m[key], handling the []any that
// yaml.Unmarshal / json.Unmarshal produce.
func GetStringSlice(m map[string]any, key string) []string {
	arr, ok := m[key].([]any)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

// GetAnySlice extracts a []any from m[key].
func GetAnySlice(m map[string]any, key string) []any {
	arr, ok := m[key].([]any)
	if !ok {
		return nil
	}
	return arr
}

// GetFloat64Ptr extracts a *float64 from m[key].
// Handles both float64 (from JSON) and int (from YAML) numeric values.
func GetFloat64Ptr(m map[string]any, key string) *float64 {
	v, ok := m[key]
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case uint64:
		f := float64(n)
		return &f
	default:
		return nil
	}
}

// GetIntPtr extracts a *int from m[key].
// Handles both float64 (from JSON) and int (from YAML) numeric values.
func GetIntPtr(m map[string]any, key string) *int {
	v, ok := m[key]
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		i := int(n)
		return &i
	case int:
		return &n
	case int64:
		i := int(n)
		return &i
	case uint64:
		if n > math.MaxInt {
			return nil
		}
		i := int(n)
		return &i
	default:
		return nil
	}
}

// GetInt64Ptr extracts a *int64 from m[key].
func GetInt64Ptr(m map[string]any, key string) *int64 {
	v, ok := m[key]
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		i := int64(n)
		return &i
	case int:
		i := int64(n)
		return &i
	case int64:
		return &n
	case uint64:
		if n > math.MaxInt64 {
			return nil
		}
		i := int64(n)
		return &i
	default:
		return nil
	}
}

// GetBoolPtr extracts a *bool from m[key].
func GetBoolPtr(m map[string]any, key string) *bool {
	if b, ok := m[key].(bool); ok {
		return &b
	}
	return nil
}

// GetStringMap extracts a map[string]string from m[key].
func GetStringMap(m map[string]any, key string) map[string]string {
	sub, ok := m[key].(map[string]any)
	if !ok {
		return nil
	}
	result := make(map[string]string, len(sub))
	for k, val := range sub {
		if s, ok := val.(string); ok {
			result[k] = s
		}
	}
	return result
}
