package legacy

import (
	"fmt"

	"github.com/specmorph/oasdoc/model"
	"github.com/specmorph/oasdoc/specerrors"
)

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func malformed(path, field, msg string) error {
	return &specerrors.MalformedError{Path: path, Field: field, Message: msg}
}

func requireMap(v any, path string) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, malformed(path, "", fmt.Sprintf("expected an object, got %T", v))
	}
	return m, nil
}

// extractExtra collects every key of m not present in recognized, the
// same policy the model package applies to 3.0 objects.
func extractExtra(m map[string]any, recognized map[string]bool) model.Extensions {
	var extra model.Extensions
	for k, v := range m {
		if recognized[k] {
			continue
		}
		if extra == nil {
			extra = make(model.Extensions)
		}
		extra[k] = v
	}
	return extra
}

func mergeExtra(dst map[string]any, extra model.Extensions) {
	for k, v := range extra {
		dst[k] = v
	}
}
