package upgrade

import (
	"fmt"

	"github.com/specmorph/oasdoc/internal/maputil"
	"github.com/specmorph/oasdoc/legacy"
	"github.com/specmorph/oasdoc/model"
)

// convertResponse converts a 2.0 response. The body schema moves under
// a content entry per produced media type; produces may be nil for
// shared component responses, which fall back to the document defaults.
func (c *converter) convertResponse(src *legacy.Response, produces []string, path string) *model.Response {
	if src == nil {
		return nil
	}
	if !src.Ref.IsZero() {
		return &model.Response{Ref: src.Ref.Clone()}
	}

	dst := &model.Response{
		Description: src.Description,
		Extra:       src.Extra.Clone(),
	}

	if len(src.Headers) > 0 {
		dst.Headers = make(map[string]*model.Header, len(src.Headers))
		for _, name := range maputil.SortedKeys(src.Headers) {
			dst.Headers[name] = c.convertHeader(src.Headers[name], fmt.Sprintf("%s.headers.%s", path, name))
		}
	}

	if src.Schema == nil && len(src.Examples) == 0 {
		return dst
	}

	if produces == nil {
		produces = c.produces(nil)
	}
	dst.Content = make(map[string]*model.MediaType, len(produces))
	for _, mediaType := range produces {
		mt := &model.MediaType{Schema: src.Schema.Clone()}
		if example, ok := src.Examples[mediaType]; ok {
			mt.Example = model.CloneValue(example)
		}
		dst.Content[mediaType] = mt
	}

	// examples keyed by media types outside produces would vanish
	for _, mediaType := range maputil.SortedKeys(src.Examples) {
		if _, ok := dst.Content[mediaType]; !ok {
			dst.Content[mediaType] = &model.MediaType{Example: model.CloneValue(src.Examples[mediaType])}
			c.addNote(fmt.Sprintf("%s.examples.%s", path, mediaType),
				"example media type is not listed in produces, added as content without a schema",
				SeverityWarning)
		}
	}
	return dst
}
