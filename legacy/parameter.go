package legacy

import (
	"fmt"

	"github.com/specmorph/oasdoc/internal/maputil"
	"github.com/specmorph/oasdoc/model"
)

// Parameter location constants. 2.0 has two locations 3.0 dropped:
// "body" and "formData".
const (
	ParamInQuery    = "query"
	ParamInHeader   = "header"
	ParamInPath     = "path"
	ParamInFormData = "formData"
	ParamInBody     = "body"
)

// Collection format constants for array parameters.
const (
	CollectionCSV   = "csv"
	CollectionSSV   = "ssv"
	CollectionTSV   = "tsv"
	CollectionPipes = "pipes"
	CollectionMulti = "multi"
)

// SimpleSchema holds the inline type facets that 2.0 non-body parameters,
// items, and headers carry directly instead of a schema object.
type SimpleSchema struct {
	Type             string
	Format           string
	Items            *Items
	CollectionFormat string
	Default          any
	Maximum          *float64
	ExclusiveMaximum bool
	Minimum          *float64
	ExclusiveMinimum bool
	MaxLength        *int
	MinLength        *int
	Pattern          string
	MaxItems         *int
	MinItems         *int
	UniqueItems      bool
	Enum             []any
	MultipleOf       *float64
}

// Parameter describes a single 2.0 operation parameter. Body parameters
// carry a Schema; every other location carries inline SimpleSchema facets.
type Parameter struct {
	Ref model.Reference

	Name            string
	In              string
	Description     string
	Required        bool
	AllowEmptyValue bool

	// body parameters only
	Schema *model.Schema

	SimpleSchema

	Extra model.Extensions
}

// Items describes the element type of an array parameter or header.
type Items struct {
	SimpleSchema
	Extra model.Extensions
}

// Header describes a 2.0 response header.
type Header struct {
	Description string
	SimpleSchema
	Extra model.Extensions
}

var simpleSchemaKeys = map[string]bool{
	"type": true, "format": true, "items": true, "collectionFormat": true,
	"default": true, "maximum": true, "exclusiveMaximum": true,
	"minimum": true, "exclusiveMinimum": true, "maxLength": true,
	"minLength": true, "pattern": true, "maxItems": true, "minItems": true,
	"uniqueItems": true, "enum": true, "multipleOf": true,
}

var parameterKeys = unionKeys(simpleSchemaKeys, map[string]bool{
	"name": true, "in": true, "description": true, "required": true,
	"allowEmptyValue": true, "schema": true,
})

func unionKeys(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool, len(a)+len(b))
	for k := range a {
		out[k] = true
	}
	for k := range b {
		out[k] = true
	}
	return out
}

func decodeSimpleSchema(s *SimpleSchema, m map[string]any, path string) error {
	s.Type = maputil.GetString(m, "type")
	s.Format = maputil.GetString(m, "format")
	s.CollectionFormat = maputil.GetString(m, "collectionFormat")
	s.Default = m["default"]
	s.Maximum = maputil.GetFloat64Ptr(m, "maximum")
	s.ExclusiveMaximum = maputil.GetBool(m, "exclusiveMaximum")
	s.Minimum = maputil.GetFloat64Ptr(m, "minimum")
	s.ExclusiveMinimum = maputil.GetBool(m, "exclusiveMinimum")
	s.MaxLength = maputil.GetIntPtr(m, "maxLength")
	s.MinLength = maputil.GetIntPtr(m, "minLength")
	s.Pattern = maputil.GetString(m, "pattern")
	s.MaxItems = maputil.GetIntPtr(m, "maxItems")
	s.MinItems = maputil.GetIntPtr(m, "minItems")
	s.UniqueItems = maputil.GetBool(m, "uniqueItems")
	s.Enum = maputil.GetAnySlice(m, "enum")
	s.MultipleOf = maputil.GetFloat64Ptr(m, "multipleOf")

	if raw, ok := m["items"]; ok {
		items, err := decodeItems(raw, joinPath(path, "items"))
		if err != nil {
			return err
		}
		s.Items = items
	}
	return nil
}

func (s *SimpleSchema) encodeInto(m map[string]any) {
	if s.Type != "" {
		m["type"] = s.Type
	}
	if s.Format != "" {
		m["format"] = s.Format
	}
	if s.Items != nil {
		m["items"] = s.Items.toTree()
	}
	if s.CollectionFormat != "" {
		m["collectionFormat"] = s.CollectionFormat
	}
	if s.Default != nil {
		m["default"] = s.Default
	}
	if s.Maximum != nil {
		m["maximum"] = *s.Maximum
	}
	if s.ExclusiveMaximum {
		m["exclusiveMaximum"] = true
	}
	if s.Minimum != nil {
		m["minimum"] = *s.Minimum
	}
	if s.ExclusiveMinimum {
		m["exclusiveMinimum"] = true
	}
	if s.MaxLength != nil {
		m["maxLength"] = *s.MaxLength
	}
	if s.MinLength != nil {
		m["minLength"] = *s.MinLength
	}
	if s.Pattern != "" {
		m["pattern"] = s.Pattern
	}
	if s.MaxItems != nil {
		m["maxItems"] = *s.MaxItems
	}
	if s.MinItems != nil {
		m["minItems"] = *s.MinItems
	}
	if s.UniqueItems {
		m["uniqueItems"] = true
	}
	if s.Enum != nil {
		m["enum"] = s.Enum
	}
	if s.MultipleOf != nil {
		m["multipleOf"] = *s.MultipleOf
	}
}

func decodeParameter(v any, path string) (*Parameter, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	if refStr, ok := m["$ref"].(string); ok {
		return &Parameter{Ref: model.ParseReference(refStr)}, nil
	}
	p := &Parameter{
		Name:            maputil.GetString(m, "name"),
		In:              maputil.GetString(m, "in"),
		Description:     maputil.GetString(m, "description"),
		Required:        maputil.GetBool(m, "required"),
		AllowEmptyValue: maputil.GetBool(m, "allowEmptyValue"),
	}

	switch p.In {
	case ParamInQuery, ParamInHeader, ParamInPath, ParamInFormData, ParamInBody:
	default:
		return nil, malformed(path, "in", fmt.Sprintf("unrecognized parameter location %q", p.In))
	}

	if p.In == ParamInBody {
		raw, ok := m["schema"]
		if !ok {
			return nil, malformed(path, "schema", "body parameter requires a schema")
		}
		if p.Schema, err = model.ParseSchema(raw, joinPath(path, "schema")); err != nil {
			return nil, err
		}
	} else if err := decodeSimpleSchema(&p.SimpleSchema, m, path); err != nil {
		return nil, err
	}

	p.Extra = extractExtra(m, parameterKeys)
	return p, nil
}

func (p *Parameter) toTree() map[string]any {
	if !p.Ref.IsZero() {
		return map[string]any{"$ref": p.Ref.String()}
	}
	m := make(map[string]any, 6+len(p.Extra))
	m["name"] = p.Name
	m["in"] = p.In
	if p.Description != "" {
		m["description"] = p.Description
	}
	if p.Required {
		m["required"] = true
	}
	if p.AllowEmptyValue {
		m["allowEmptyValue"] = true
	}
	if p.Schema != nil {
		m["schema"] = p.Schema.ToTree()
	} else {
		p.SimpleSchema.encodeInto(m)
	}
	mergeExtra(m, p.Extra)
	return m
}

func decodeItems(v any, path string) (*Items, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	items := &Items{Extra: extractExtra(m, simpleSchemaKeys)}
	if err := decodeSimpleSchema(&items.SimpleSchema, m, path); err != nil {
		return nil, err
	}
	return items, nil
}

func (i *Items) toTree() map[string]any {
	m := make(map[string]any, 3+len(i.Extra))
	i.SimpleSchema.encodeInto(m)
	mergeExtra(m, i.Extra)
	return m
}

var headerKeys = unionKeys(simpleSchemaKeys, map[string]bool{"description": true})

func decodeHeader(v any, path string) (*Header, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	h := &Header{
		Description: maputil.GetString(m, "description"),
		Extra:       extractExtra(m, headerKeys),
	}
	if err := decodeSimpleSchema(&h.SimpleSchema, m, path); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Header) toTree() map[string]any {
	m := make(map[string]any, 3+len(h.Extra))
	if h.Description != "" {
		m["description"] = h.Description
	}
	h.SimpleSchema.encodeInto(m)
	mergeExtra(m, h.Extra)
	return m
}
