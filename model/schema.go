package model

// Schema is the closed representation of the OpenAPI Schema Object.
//
// Exactly one variant is populated, held in Kind: a [ReferenceKind], a
// [CompositionKind], one of the concrete type facets ([StringKind],
// [NumberKind], [IntegerKind], [ArrayKind], [ObjectKind], [BooleanKind]),
// or [UntypedKind] when no type is given. Variant selection happens at
// decode time by fixed precedence; see ParseSchema.
//
// SchemaData carries the metadata every variant may have. For a reference
// variant the metadata is always zero: keys alongside $ref are discarded
// per JSON Reference semantics.
type Schema struct {
	SchemaData
	Kind SchemaKind
}

// SchemaData holds the metadata fields shared by all schema variants.
type SchemaData struct {
	Title       string
	Description string
	Default     any
	Example     any
	Nullable    bool
	Deprecated  bool
	ReadOnly    bool
	WriteOnly   bool

	ExternalDocs *ExternalDocs

	// Extra captures specification extensions (fields starting with "x-")
	// and facet keys the selected variant does not recognize
	Extra Extensions
}

// SchemaKind is the sealed interface over schema variants. Only the variant
// types in this package implement it.
type SchemaKind interface {
	isSchemaKind()
}

// ReferenceKind is a schema that is a pointer to another schema.
type ReferenceKind struct {
	Ref Reference
}

// CompositionKind combines schemas with allOf/anyOf/oneOf/not. A
// discriminator, when present, names the property that selects which
// oneOf/anyOf variant applies.
type CompositionKind struct {
	AllOf []*Schema
	AnyOf []*Schema
	OneOf []*Schema
	Not   *Schema

	Discriminator *Discriminator
}

// StringKind is the string type facet.
type StringKind struct {
	Format    string
	Pattern   string
	Enum      []string
	MinLength *int
	MaxLength *int
}

// NumberKind is the number type facet.
type NumberKind struct {
	Format           string
	MultipleOf       *float64
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum bool
	ExclusiveMaximum bool
	Enum             []any
}

// IntegerKind is the integer type facet. Bounds are kept as int64 so large
// identifiers survive without float rounding.
type IntegerKind struct {
	Format           string
	MultipleOf       *int64
	Minimum          *int64
	Maximum          *int64
	ExclusiveMinimum bool
	ExclusiveMaximum bool
	Enum             []any
}

// ArrayKind is the array type facet. A nil Items means items of any shape.
type ArrayKind struct {
	Items       *Schema
	MinItems    *int
	MaxItems    *int
	UniqueItems bool
}

// ObjectKind is the object type facet.
type ObjectKind struct {
	Properties           map[string]*Schema
	Required             []string
	AdditionalProperties *AdditionalProperties
	MinProperties        *int
	MaxProperties        *int
}

// BooleanKind is the boolean type facet.
type BooleanKind struct{}

// UntypedKind marks a schema with no type keyword. OpenAPI treats such a
// schema as accepting values of any type; that looseness is preserved, not
// resolved. Any non-generic keys of the source node live in the schema's
// Extra map and round-trip verbatim.
type UntypedKind struct{}

func (ReferenceKind) isSchemaKind()   {}
func (CompositionKind) isSchemaKind() {}
func (StringKind) isSchemaKind()      {}
func (NumberKind) isSchemaKind()      {}
func (IntegerKind) isSchemaKind()     {}
func (ArrayKind) isSchemaKind()       {}
func (ObjectKind) isSchemaKind()      {}
func (BooleanKind) isSchemaKind()     {}
func (UntypedKind) isSchemaKind()     {}

// AdditionalProperties models the additionalProperties keyword, which is
// either a bare boolean or a schema.
type AdditionalProperties struct {
	// Allowed is set when additionalProperties was a boolean
	Allowed *bool
	// Schema is set when additionalProperties was a schema object
	Schema *Schema
}

// Discriminator names the property used to select which oneOf/anyOf variant
// applies to a value. The mapping from discriminant value to target schema
// is preserved verbatim and never validated against variant names.
type Discriminator struct {
	PropertyName string
	Mapping      map[string]string
	// Extra captures specification extensions (fields starting with "x-")
	Extra Extensions
}

// TypeName returns the JSON Schema type keyword for the schema's facet, or
// "" for reference, composition, and untyped schemas.
func (s *Schema) TypeName() string {
	switch s.Kind.(type) {
	case StringKind:
		return "string"
	case NumberKind:
		return "number"
	case IntegerKind:
		return "integer"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	case BooleanKind:
		return "boolean"
	default:
		return ""
	}
}

// IsReference reports whether the schema is a pure reference.
func (s *Schema) IsReference() bool {
	_, ok := s.Kind.(ReferenceKind)
	return ok
}
