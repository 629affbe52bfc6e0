package model

// ToTree serializes the schema back into the equivalent schema-less tree.
// The emitted shape mirrors decode precedence, so canonical input (trees
// containing only recognized fields) round-trips modulo key ordering. A
// reference schema emits the $ref key alone.
func (s *Schema) ToTree() map[string]any {
	if ref, ok := s.Kind.(ReferenceKind); ok {
		return map[string]any{"$ref": ref.Ref.String()}
	}

	m := make(map[string]any)

	switch k := s.Kind.(type) {
	case CompositionKind:
		if len(k.AllOf) > 0 {
			m["allOf"] = schemaListTree(k.AllOf)
		}
		if len(k.AnyOf) > 0 {
			m["anyOf"] = schemaListTree(k.AnyOf)
		}
		if len(k.OneOf) > 0 {
			m["oneOf"] = schemaListTree(k.OneOf)
		}
		if k.Not != nil {
			m["not"] = k.Not.ToTree()
		}
		if k.Discriminator != nil {
			m["discriminator"] = k.Discriminator.toTree()
		}

	case StringKind:
		m["type"] = "string"
		if k.Format != "" {
			m["format"] = k.Format
		}
		if k.Pattern != "" {
			m["pattern"] = k.Pattern
		}
		if len(k.Enum) > 0 {
			enum := make([]any, len(k.Enum))
			for i, e := range k.Enum {
				enum[i] = e
			}
			m["enum"] = enum
		}
		if k.MinLength != nil {
			m["minLength"] = *k.MinLength
		}
		if k.MaxLength != nil {
			m["maxLength"] = *k.MaxLength
		}

	case NumberKind:
		m["type"] = "number"
		if k.Format != "" {
			m["format"] = k.Format
		}
		if k.MultipleOf != nil {
			m["multipleOf"] = *k.MultipleOf
		}
		if k.Minimum != nil {
			m["minimum"] = *k.Minimum
		}
		if k.Maximum != nil {
			m["maximum"] = *k.Maximum
		}
		if k.ExclusiveMinimum {
			m["exclusiveMinimum"] = true
		}
		if k.ExclusiveMaximum {
			m["exclusiveMaximum"] = true
		}
		if len(k.Enum) > 0 {
			m["enum"] = k.Enum
		}

	case IntegerKind:
		m["type"] = "integer"
		if k.Format != "" {
			m["format"] = k.Format
		}
		if k.MultipleOf != nil {
			m["multipleOf"] = *k.MultipleOf
		}
		if k.Minimum != nil {
			m["minimum"] = *k.Minimum
		}
		if k.Maximum != nil {
			m["maximum"] = *k.Maximum
		}
		if k.ExclusiveMinimum {
			m["exclusiveMinimum"] = true
		}
		if k.ExclusiveMaximum {
			m["exclusiveMaximum"] = true
		}
		if len(k.Enum) > 0 {
			m["enum"] = k.Enum
		}

	case ArrayKind:
		m["type"] = "array"
		if k.Items != nil {
			m["items"] = k.Items.ToTree()
		}
		if k.MinItems != nil {
			m["minItems"] = *k.MinItems
		}
		if k.MaxItems != nil {
			m["maxItems"] = *k.MaxItems
		}
		if k.UniqueItems {
			m["uniqueItems"] = true
		}

	case ObjectKind:
		m["type"] = "object"
		if len(k.Properties) > 0 {
			props := make(map[string]any, len(k.Properties))
			for name, prop := range k.Properties {
				props[name] = prop.ToTree()
			}
			m["properties"] = props
		}
		if len(k.Required) > 0 {
			req := make([]any, len(k.Required))
			for i, r := range k.Required {
				req[i] = r
			}
			m["required"] = req
		}
		if k.AdditionalProperties != nil {
			m["additionalProperties"] = k.AdditionalProperties.toTree()
		}
		if k.MinProperties != nil {
			m["minProperties"] = *k.MinProperties
		}
		if k.MaxProperties != nil {
			m["maxProperties"] = *k.MaxProperties
		}

	case BooleanKind:
		m["type"] = "boolean"

	case UntypedKind:
		// generic fields and Extra only
	}

	s.SchemaData.encodeInto(m)
	return m
}

// encodeInto writes the shared metadata fields and extensions into a tree
// map being built.
func (d *SchemaData) encodeInto(m map[string]any) {
	if d.Title != "" {
		m["title"] = d.Title
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.Default != nil {
		m["default"] = d.Default
	}
	if d.Example != nil {
		m["example"] = d.Example
	}
	if d.Nullable {
		m["nullable"] = true
	}
	if d.Deprecated {
		m["deprecated"] = true
	}
	if d.ReadOnly {
		m["readOnly"] = true
	}
	if d.WriteOnly {
		m["writeOnly"] = true
	}
	if d.ExternalDocs != nil {
		m["externalDocs"] = d.ExternalDocs.ToTree()
	}
	mergeExtra(m, d.Extra)
}

func (a *AdditionalProperties) toTree() any {
	if a.Schema != nil {
		return a.Schema.ToTree()
	}
	if a.Allowed != nil {
		return *a.Allowed
	}
	return true
}

func (d *Discriminator) toTree() map[string]any {
	m := map[string]any{"propertyName": d.PropertyName}
	if len(d.Mapping) > 0 {
		mapping := make(map[string]any, len(d.Mapping))
		for k, v := range d.Mapping {
			mapping[k] = v
		}
		m["mapping"] = mapping
	}
	mergeExtra(m, d.Extra)
	return m
}

func schemaListTree(schemas []*Schema) []any {
	out := make([]any, len(schemas))
	for i, s := range schemas {
		out[i] = s.ToTree()
	}
	return out
}
