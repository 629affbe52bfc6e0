package model

import "fmt"

// Parameter location constants (used in Parameter.In field)
const (
	ParamInQuery  = "query"
	ParamInHeader = "header"
	ParamInPath   = "path"
	ParamInCookie = "cookie"
)

// Parameter describes a single operation parameter.
//
// When Ref is set, the parameter is a pure reference and every other field
// is zero; the referenced definition carries the actual values.
type Parameter struct {
	Ref Reference

	Name        string
	In          string // "query", "header", "path", "cookie"
	Description string
	Required    bool
	Deprecated  bool

	// AllowEmptyValue is deprecated in 3.0 but still round-trips.
	AllowEmptyValue bool

	Style         string
	Explode       *bool
	AllowReserved bool
	Schema        *Schema
	Example       any
	Examples      map[string]*Example
	Content       map[string]*MediaType

	// Extra captures specification extensions (fields starting with "x-")
	Extra Extensions
}

// Example represents an example object.
type Example struct {
	Ref Reference

	Summary       string
	Description   string
	Value         any
	ExternalValue string
	Extra         Extensions
}

// Header represents a response header object. It is a parameter without
// name and location.
type Header struct {
	Ref Reference

	Description string
	Required    bool
	Deprecated  bool
	Style       string
	Explode     *bool
	Schema      *Schema
	Example     any
	Examples    map[string]*Example
	Content     map[string]*MediaType
	Extra       Extensions
}

var parameterKeys = map[string]bool{
	"name": true, "in": true, "description": true, "required": true,
	"deprecated": true, "allowEmptyValue": true, "style": true,
	"explode": true, "allowReserved": true, "schema": true,
	"example": true, "examples": true, "content": true,
}

func decodeParameter(v any, path string) (*Parameter, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	if refStr, ok := m["$ref"].(string); ok {
		return &Parameter{Ref: ParseReference(refStr)}, nil
	}

	p := &Parameter{
		Name:            mapGetString(m, "name"),
		In:              mapGetString(m, "in"),
		Description:     mapGetString(m, "description"),
		Required:        mapGetBool(m, "required"),
		Deprecated:      mapGetBool(m, "deprecated"),
		AllowEmptyValue: mapGetBool(m, "allowEmptyValue"),
		Style:           mapGetString(m, "style"),
		Explode:         mapGetBoolPtr(m, "explode"),
		AllowReserved:   mapGetBool(m, "allowReserved"),
		Example:         m["example"],
		Extra:           extractExtra(m, parameterKeys),
	}

	switch p.In {
	case ParamInQuery, ParamInHeader, ParamInPath, ParamInCookie:
	default:
		return nil, malformed(path, "in", fmt.Sprintf("unrecognized parameter location %q", p.In))
	}

	if raw, ok := m["schema"]; ok {
		if p.Schema, err = ParseSchema(raw, joinPath(path, "schema")); err != nil {
			return nil, err
		}
	}
	if p.Examples, err = decodeExampleMap(m, "examples", path); err != nil {
		return nil, err
	}
	if p.Content, err = decodeMediaTypes(m, "content", path); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parameter) toTree() map[string]any {
	if !p.Ref.IsZero() {
		return map[string]any{"$ref": p.Ref.String()}
	}
	m := make(map[string]any, 8+len(p.Extra))
	m["name"] = p.Name
	m["in"] = p.In
	if p.Description != "" {
		m["description"] = p.Description
	}
	if p.Required {
		m["required"] = true
	}
	if p.Deprecated {
		m["deprecated"] = true
	}
	if p.AllowEmptyValue {
		m["allowEmptyValue"] = true
	}
	if p.Style != "" {
		m["style"] = p.Style
	}
	if p.Explode != nil {
		m["explode"] = *p.Explode
	}
	if p.AllowReserved {
		m["allowReserved"] = true
	}
	if p.Schema != nil {
		m["schema"] = p.Schema.ToTree()
	}
	if p.Example != nil {
		m["example"] = p.Example
	}
	if len(p.Examples) > 0 {
		m["examples"] = examplesToTree(p.Examples)
	}
	if len(p.Content) > 0 {
		m["content"] = mediaTypesToTree(p.Content)
	}
	mergeExtra(m, p.Extra)
	return m
}

var exampleKeys = map[string]bool{
	"summary": true, "description": true, "value": true, "externalValue": true,
}

func decodeExampleMap(m map[string]any, key, path string) (map[string]*Example, error) {
	raw, ok := m[key]
	if !ok {
		return nil, nil
	}
	sub, ok := raw.(map[string]any)
	if !ok {
		return nil, malformed(path, key, fmt.Sprintf("expected an object, got %T", raw))
	}
	result := make(map[string]*Example, len(sub))
	for name, node := range sub {
		em, err := requireMap(node, joinPath(joinPath(path, key), name))
		if err != nil {
			return nil, err
		}
		if refStr, ok := em["$ref"].(string); ok {
			result[name] = &Example{Ref: ParseReference(refStr)}
			continue
		}
		result[name] = &Example{
			Summary:       mapGetString(em, "summary"),
			Description:   mapGetString(em, "description"),
			Value:         em["value"],
			ExternalValue: mapGetString(em, "externalValue"),
			Extra:         extractExtra(em, exampleKeys),
		}
	}
	return result, nil
}

func examplesToTree(examples map[string]*Example) map[string]any {
	out := make(map[string]any, len(examples))
	for name, e := range examples {
		if !e.Ref.IsZero() {
			out[name] = map[string]any{"$ref": e.Ref.String()}
			continue
		}
		m := make(map[string]any, 4+len(e.Extra))
		if e.Summary != "" {
			m["summary"] = e.Summary
		}
		if e.Description != "" {
			m["description"] = e.Description
		}
		if e.Value != nil {
			m["value"] = e.Value
		}
		if e.ExternalValue != "" {
			m["externalValue"] = e.ExternalValue
		}
		mergeExtra(m, e.Extra)
		out[name] = m
	}
	return out
}

var headerKeys = map[string]bool{
	"description": true, "required": true, "deprecated": true,
	"style": true, "explode": true, "schema": true,
	"example": true, "examples": true, "content": true,
}

func decodeHeaderMap(m map[string]any, key, path string) (map[string]*Header, error) {
	raw, ok := m[key]
	if !ok {
		return nil, nil
	}
	sub, ok := raw.(map[string]any)
	if !ok {
		return nil, malformed(path, key, fmt.Sprintf("expected an object, got %T", raw))
	}
	result := make(map[string]*Header, len(sub))
	for name, node := range sub {
		h, err := decodeHeader(node, joinPath(joinPath(path, key), name))
		if err != nil {
			return nil, err
		}
		result[name] = h
	}
	return result, nil
}

func decodeHeader(v any, path string) (*Header, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	if refStr, ok := m["$ref"].(string); ok {
		return &Header{Ref: ParseReference(refStr)}, nil
	}
	h := &Header{
		Description: mapGetString(m, "description"),
		Required:    mapGetBool(m, "required"),
		Deprecated:  mapGetBool(m, "deprecated"),
		Style:       mapGetString(m, "style"),
		Explode:     mapGetBoolPtr(m, "explode"),
		Example:     m["example"],
		Extra:       extractExtra(m, headerKeys),
	}
	if raw, ok := m["schema"]; ok {
		if h.Schema, err = ParseSchema(raw, joinPath(path, "schema")); err != nil {
			return nil, err
		}
	}
	if h.Examples, err = decodeExampleMap(m, "examples", path); err != nil {
		return nil, err
	}
	if h.Content, err = decodeMediaTypes(m, "content", path); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Header) toTree() map[string]any {
	if !h.Ref.IsZero() {
		return map[string]any{"$ref": h.Ref.String()}
	}
	m := make(map[string]any, 6+len(h.Extra))
	if h.Description != "" {
		m["description"] = h.Description
	}
	if h.Required {
		m["required"] = true
	}
	if h.Deprecated {
		m["deprecated"] = true
	}
	if h.Style != "" {
		m["style"] = h.Style
	}
	if h.Explode != nil {
		m["explode"] = *h.Explode
	}
	if h.Schema != nil {
		m["schema"] = h.Schema.ToTree()
	}
	if h.Example != nil {
		m["example"] = h.Example
	}
	if len(h.Examples) > 0 {
		m["examples"] = examplesToTree(h.Examples)
	}
	if len(h.Content) > 0 {
		m["content"] = mediaTypesToTree(h.Content)
	}
	mergeExtra(m, h.Extra)
	return m
}

func headersToTree(headers map[string]*Header) map[string]any {
	out := make(map[string]any, len(headers))
	for name, h := range headers {
		out[name] = h.toTree()
	}
	return out
}
