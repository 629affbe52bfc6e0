package oasdoc

import (
	"bytes"
	"fmt"

	gojson "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/specmorph/oasdoc/model"
	"github.com/specmorph/oasdoc/upgrade"
)

// SourceFormat identifies the serialization format of a document
type SourceFormat int

const (
	// SourceFormatUnknown indicates the format could not be determined
	SourceFormatUnknown SourceFormat = iota
	// SourceFormatYAML indicates YAML content
	SourceFormatYAML
	// SourceFormatJSON indicates JSON content
	SourceFormatJSON
)

func (f SourceFormat) String() string {
	switch f {
	case SourceFormatYAML:
		return "yaml"
	case SourceFormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// DetectFormat attempts to detect the format from the content bytes.
// JSON documents start with '{' or '['; anything else is assumed YAML.
func DetectFormat(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// ParseBytes decodes raw document bytes, detecting the format from the
// content, and parses the resulting tree. 2.0 documents are upgraded.
func ParseBytes(data []byte, opts ...upgrade.Option) (*ParseResult, error) {
	switch DetectFormat(data) {
	case SourceFormatJSON:
		return ParseJSON(data, opts...)
	case SourceFormatYAML:
		return ParseYAML(data, opts...)
	default:
		return nil, fmt.Errorf("oasdoc: empty document")
	}
}

// ParseYAML decodes YAML document bytes and parses the resulting tree.
func ParseYAML(data []byte, opts ...upgrade.Option) (*ParseResult, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("oasdoc: failed to decode YAML: %w", err)
	}
	return Parse(tree, opts...)
}

// ParseJSON decodes JSON document bytes and parses the resulting tree.
func ParseJSON(data []byte, opts ...upgrade.Option) (*ParseResult, error) {
	var tree map[string]any
	if err := gojson.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("oasdoc: failed to decode JSON: %w", err)
	}
	return Parse(tree, opts...)
}

// ToYAML serializes a document to YAML bytes via its tree form.
func ToYAML(doc *model.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("oasdoc: nil document")
	}
	data, err := yaml.Marshal(doc.ToTree())
	if err != nil {
		return nil, fmt.Errorf("oasdoc: failed to encode YAML: %w", err)
	}
	return data, nil
}

// ToJSON serializes a document to JSON bytes via its tree form.
func ToJSON(doc *model.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("oasdoc: nil document")
	}
	data, err := gojson.Marshal(doc.ToTree())
	if err != nil {
		return nil, fmt.Errorf("oasdoc: failed to encode JSON: %w", err)
	}
	return data, nil
}
