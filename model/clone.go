package model

import "maps"

// CloneValue deep-copies a raw tree node. Maps and slices are rebuilt;
// scalars are returned as is.
func CloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = CloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = CloneValue(item)
		}
		return out
	default:
		return v
	}
}

// Clone returns a deep copy of the extension map, nil for nil.
func (e Extensions) Clone() Extensions {
	if e == nil {
		return nil
	}
	out := make(Extensions, len(e))
	for k, v := range e {
		out[k] = CloneValue(v)
	}
	return out
}

// Clone returns a reference with its own segment slice.
func (r Reference) Clone() Reference {
	out := r
	out.Segments = append([]string(nil), r.Segments...)
	return out
}

// Clone returns a deep copy of the info object.
func (i *Info) Clone() *Info {
	if i == nil {
		return nil
	}
	out := *i
	out.Extra = i.Extra.Clone()
	if i.Contact != nil {
		contact := *i.Contact
		contact.Extra = i.Contact.Extra.Clone()
		out.Contact = &contact
	}
	if i.License != nil {
		license := *i.License
		license.Extra = i.License.Extra.Clone()
		out.License = &license
	}
	return &out
}

// Clone returns a deep copy of the external documentation object.
func (e *ExternalDocs) Clone() *ExternalDocs {
	if e == nil {
		return nil
	}
	out := *e
	out.Extra = e.Extra.Clone()
	return &out
}

// Clone returns a deep copy of the tag.
func (t *Tag) Clone() *Tag {
	if t == nil {
		return nil
	}
	out := *t
	out.ExternalDocs = t.ExternalDocs.Clone()
	out.Extra = t.Extra.Clone()
	return &out
}

// Clone returns a requirement with its own scope slices.
func (s SecurityRequirement) Clone() SecurityRequirement {
	if s == nil {
		return nil
	}
	out := make(SecurityRequirement, len(s))
	for name, scopes := range s {
		out[name] = append([]string(nil), scopes...)
	}
	return out
}

// CloneSecurityRequirements deep-copies a requirements list.
func CloneSecurityRequirements(reqs []SecurityRequirement) []SecurityRequirement {
	if reqs == nil {
		return nil
	}
	out := make([]SecurityRequirement, len(reqs))
	for i, sr := range reqs {
		out[i] = sr.Clone()
	}
	return out
}

// Clone returns a deep copy of the schema tree. The copy shares no node
// with the original; mutating one never shows through the other.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := &Schema{SchemaData: s.SchemaData}
	out.Default = CloneValue(s.Default)
	out.Example = CloneValue(s.Example)
	out.ExternalDocs = s.ExternalDocs.Clone()
	out.Extra = s.Extra.Clone()

	switch kind := s.Kind.(type) {
	case ReferenceKind:
		out.Kind = ReferenceKind{Ref: kind.Ref.Clone()}
	case CompositionKind:
		next := CompositionKind{
			AllOf: cloneSchemaList(kind.AllOf),
			AnyOf: cloneSchemaList(kind.AnyOf),
			OneOf: cloneSchemaList(kind.OneOf),
			Not:   kind.Not.Clone(),
		}
		if kind.Discriminator != nil {
			next.Discriminator = &Discriminator{
				PropertyName: kind.Discriminator.PropertyName,
				Mapping:      maps.Clone(kind.Discriminator.Mapping),
				Extra:        kind.Discriminator.Extra.Clone(),
			}
		}
		out.Kind = next
	case StringKind:
		kind.Enum = append([]string(nil), kind.Enum...)
		kind.MinLength = clonePtr(kind.MinLength)
		kind.MaxLength = clonePtr(kind.MaxLength)
		out.Kind = kind
	case NumberKind:
		kind.MultipleOf = clonePtr(kind.MultipleOf)
		kind.Minimum = clonePtr(kind.Minimum)
		kind.Maximum = clonePtr(kind.Maximum)
		kind.Enum = cloneAnySlice(kind.Enum)
		out.Kind = kind
	case IntegerKind:
		kind.MultipleOf = clonePtr(kind.MultipleOf)
		kind.Minimum = clonePtr(kind.Minimum)
		kind.Maximum = clonePtr(kind.Maximum)
		kind.Enum = cloneAnySlice(kind.Enum)
		out.Kind = kind
	case ArrayKind:
		kind.Items = kind.Items.Clone()
		kind.MinItems = clonePtr(kind.MinItems)
		kind.MaxItems = clonePtr(kind.MaxItems)
		out.Kind = kind
	case ObjectKind:
		if kind.Properties != nil {
			props := make(map[string]*Schema, len(kind.Properties))
			for name, prop := range kind.Properties {
				props[name] = prop.Clone()
			}
			kind.Properties = props
		}
		kind.Required = append([]string(nil), kind.Required...)
		if kind.AdditionalProperties != nil {
			kind.AdditionalProperties = &AdditionalProperties{
				Allowed: clonePtr(kind.AdditionalProperties.Allowed),
				Schema:  kind.AdditionalProperties.Schema.Clone(),
			}
		}
		kind.MinProperties = clonePtr(kind.MinProperties)
		kind.MaxProperties = clonePtr(kind.MaxProperties)
		out.Kind = kind
	default:
		out.Kind = s.Kind
	}
	return out
}

func cloneSchemaList(schemas []*Schema) []*Schema {
	if schemas == nil {
		return nil
	}
	out := make([]*Schema, len(schemas))
	for i, s := range schemas {
		out[i] = s.Clone()
	}
	return out
}

func cloneAnySlice(list []any) []any {
	if list == nil {
		return nil
	}
	out := make([]any, len(list))
	for i, v := range list {
		out[i] = CloneValue(v)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
