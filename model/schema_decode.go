package model

import "fmt"

// Generic metadata keys recognized on every schema variant.
var schemaGenericKeys = map[string]bool{
	"title":        true,
	"description":  true,
	"default":      true,
	"example":      true,
	"nullable":     true,
	"deprecated":   true,
	"readOnly":     true,
	"writeOnly":    true,
	"externalDocs": true,
}

// Composition keywords. Presence of any of them selects CompositionKind.
var schemaCompositionKeys = map[string]bool{
	"allOf":         true,
	"anyOf":         true,
	"oneOf":         true,
	"not":           true,
	"discriminator": true,
}

// Facet-specific keys recognized per type keyword.
var schemaFacetKeys = map[string]map[string]bool{
	"string": {
		"type": true, "format": true, "pattern": true, "enum": true,
		"minLength": true, "maxLength": true,
	},
	"number": {
		"type": true, "format": true, "multipleOf": true,
		"minimum": true, "maximum": true,
		"exclusiveMinimum": true, "exclusiveMaximum": true, "enum": true,
	},
	"integer": {
		"type": true, "format": true, "multipleOf": true,
		"minimum": true, "maximum": true,
		"exclusiveMinimum": true, "exclusiveMaximum": true, "enum": true,
	},
	"array": {
		"type": true, "items": true, "minItems": true, "maxItems": true,
		"uniqueItems": true,
	},
	"object": {
		"type": true, "properties": true, "required": true,
		"additionalProperties": true, "minProperties": true, "maxProperties": true,
	},
	"boolean": {
		"type": true,
	},
}

// ParseSchema decodes an arbitrary tree node into exactly one Schema
// variant, by precedence:
//
//  1. $ref present: the schema is a pure reference. Sibling keys are
//     discarded entirely, per JSON Reference semantics, even though that is lossy.
//  2. Any composition keyword present: CompositionKind.
//  3. A recognized type keyword present: the matching type facet; keys the
//     facet does not recognize are retained in the schema's Extra map.
//  4. Otherwise: UntypedKind, with all non-generic keys retained in Extra.
//
// path locates the node for diagnostics; errors are MalformedError values.
func ParseSchema(v any, path string) (*Schema, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}

	// $ref wins over everything and suppresses siblings
	if raw, ok := m["$ref"]; ok {
		refStr, ok := raw.(string)
		if !ok {
			return nil, malformed(path, "$ref", fmt.Sprintf("expected a string, got %T", raw))
		}
		return &Schema{Kind: ReferenceKind{Ref: ParseReference(refStr)}}, nil
	}

	if hasAnyKey(m, schemaCompositionKeys) {
		return parseCompositionSchema(m, path)
	}

	if typ, ok := m["type"].(string); ok {
		if _, known := schemaFacetKeys[typ]; known {
			return parseTypedSchema(m, typ, path)
		}
	}

	return parseUntypedSchema(m, path)
}

func hasAnyKey(m map[string]any, keys map[string]bool) bool {
	for k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

// decodeSchemaData fills the shared metadata fields and collects everything
// outside recognized into Extra.
func decodeSchemaData(data *SchemaData, m map[string]any, recognized map[string]bool) {
	data.Title = mapGetString(m, "title")
	data.Description = mapGetString(m, "description")
	data.Default = m["default"]
	data.Example = m["example"]
	data.Nullable = mapGetBool(m, "nullable")
	data.Deprecated = mapGetBool(m, "deprecated")
	data.ReadOnly = mapGetBool(m, "readOnly")
	data.WriteOnly = mapGetBool(m, "writeOnly")
	if docs, ok := m["externalDocs"].(map[string]any); ok {
		data.ExternalDocs = DecodeExternalDocs(docs)
	}
	data.Extra = extractExtra(m, recognized)
}

func parseCompositionSchema(m map[string]any, path string) (*Schema, error) {
	var comp CompositionKind
	var err error

	if comp.AllOf, err = decodeSchemaList(m, "allOf", path); err != nil {
		return nil, err
	}
	if comp.AnyOf, err = decodeSchemaList(m, "anyOf", path); err != nil {
		return nil, err
	}
	if comp.OneOf, err = decodeSchemaList(m, "oneOf", path); err != nil {
		return nil, err
	}
	if raw, ok := m["not"]; ok {
		if comp.Not, err = ParseSchema(raw, joinPath(path, "not")); err != nil {
			return nil, err
		}
	}
	if raw, ok := m["discriminator"]; ok {
		if comp.Discriminator, err = decodeDiscriminator(raw, joinPath(path, "discriminator")); err != nil {
			return nil, err
		}
	}

	recognized := unionKeys(schemaGenericKeys, schemaCompositionKeys)
	s := &Schema{Kind: comp}
	decodeSchemaData(&s.SchemaData, m, recognized)
	return s, nil
}

func parseTypedSchema(m map[string]any, typ, path string) (*Schema, error) {
	var kind SchemaKind
	var err error

	switch typ {
	case "string":
		kind = StringKind{
			Format:    mapGetString(m, "format"),
			Pattern:   mapGetString(m, "pattern"),
			Enum:      mapGetStringSlice(m, "enum"),
			MinLength: mapGetIntPtr(m, "minLength"),
			MaxLength: mapGetIntPtr(m, "maxLength"),
		}
	case "number":
		kind = NumberKind{
			Format:           mapGetString(m, "format"),
			MultipleOf:       mapGetFloat64Ptr(m, "multipleOf"),
			Minimum:          mapGetFloat64Ptr(m, "minimum"),
			Maximum:          mapGetFloat64Ptr(m, "maximum"),
			ExclusiveMinimum: mapGetBool(m, "exclusiveMinimum"),
			ExclusiveMaximum: mapGetBool(m, "exclusiveMaximum"),
			Enum:             mapGetAnySlice(m, "enum"),
		}
	case "integer":
		kind = IntegerKind{
			Format:           mapGetString(m, "format"),
			MultipleOf:       mapGetInt64Ptr(m, "multipleOf"),
			Minimum:          mapGetInt64Ptr(m, "minimum"),
			Maximum:          mapGetInt64Ptr(m, "maximum"),
			ExclusiveMinimum: mapGetBool(m, "exclusiveMinimum"),
			ExclusiveMaximum: mapGetBool(m, "exclusiveMaximum"),
			Enum:             mapGetAnySlice(m, "enum"),
		}
	case "array":
		arr := ArrayKind{
			MinItems:    mapGetIntPtr(m, "minItems"),
			MaxItems:    mapGetIntPtr(m, "maxItems"),
			UniqueItems: mapGetBool(m, "uniqueItems"),
		}
		if raw, ok := m["items"]; ok {
			if arr.Items, err = ParseSchema(raw, joinPath(path, "items")); err != nil {
				return nil, err
			}
		}
		kind = arr
	case "object":
		obj := ObjectKind{
			Required:      mapGetStringSlice(m, "required"),
			MinProperties: mapGetIntPtr(m, "minProperties"),
			MaxProperties: mapGetIntPtr(m, "maxProperties"),
		}
		if obj.Properties, err = decodeSchemaMap(m, "properties", path); err != nil {
			return nil, err
		}
		if raw, ok := m["additionalProperties"]; ok {
			if obj.AdditionalProperties, err = decodeAdditionalProperties(raw, joinPath(path, "additionalProperties")); err != nil {
				return nil, err
			}
		}
		kind = obj
	case "boolean":
		kind = BooleanKind{}
	default:
		return nil, malformed(path, "type", fmt.Sprintf("unrecognized type %q", typ))
	}

	recognized := unionKeys(schemaGenericKeys, schemaFacetKeys[typ])
	s := &Schema{Kind: kind}
	decodeSchemaData(&s.SchemaData, m, recognized)
	return s, nil
}

func parseUntypedSchema(m map[string]any, path string) (*Schema, error) {
	s := &Schema{Kind: UntypedKind{}}
	decodeSchemaData(&s.SchemaData, m, schemaGenericKeys)
	return s, nil
}

// decodeSchemaList decodes m[key] as a list of schemas.
func decodeSchemaList(m map[string]any, key, path string) ([]*Schema, error) {
	raw, ok := m[key]
	if !ok {
		return nil, nil
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, malformed(path, key, fmt.Sprintf("expected an array, got %T", raw))
	}
	listPath := joinPath(path, key)
	result := make([]*Schema, 0, len(arr))
	for i, item := range arr {
		s, err := ParseSchema(item, indexPath(listPath, i))
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

// decodeSchemaMap decodes m[key] as a name-to-schema map.
func decodeSchemaMap(m map[string]any, key, path string) (map[string]*Schema, error) {
	raw, ok := m[key]
	if !ok {
		return nil, nil
	}
	sub, ok := raw.(map[string]any)
	if !ok {
		return nil, malformed(path, key, fmt.Sprintf("expected an object, got %T", raw))
	}
	mapPath := joinPath(path, key)
	result := make(map[string]*Schema, len(sub))
	for name, node := range sub {
		s, err := ParseSchema(node, joinPath(mapPath, name))
		if err != nil {
			return nil, err
		}
		result[name] = s
	}
	return result, nil
}

func decodeAdditionalProperties(raw any, path string) (*AdditionalProperties, error) {
	switch val := raw.(type) {
	case bool:
		return &AdditionalProperties{Allowed: &val}, nil
	case map[string]any:
		s, err := ParseSchema(val, path)
		if err != nil {
			return nil, err
		}
		return &AdditionalProperties{Schema: s}, nil
	default:
		return nil, malformed(path, "", fmt.Sprintf("expected a boolean or an object, got %T", raw))
	}
}

func decodeDiscriminator(raw any, path string) (*Discriminator, error) {
	m, err := requireMap(raw, path)
	if err != nil {
		return nil, err
	}
	d := &Discriminator{
		PropertyName: mapGetString(m, "propertyName"),
		Mapping:      mapGetStringMap(m, "mapping"),
		Extra:        extractExtra(m, map[string]bool{"propertyName": true, "mapping": true}),
	}
	if d.PropertyName == "" {
		return nil, malformed(path, "propertyName", "expected a non-empty string")
	}
	return d, nil
}

// unionKeys returns the union of two key sets.
func unionKeys(a, b map[string]bool) map[string]bool {
	u := make(map[string]bool, len(a)+len(b))
	for k := range a {
		u[k] = true
	}
	for k := range b {
		u[k] = true
	}
	return u
}
