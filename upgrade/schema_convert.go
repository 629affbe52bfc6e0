package upgrade

import (
	"fmt"

	"github.com/specmorph/oasdoc/legacy"
	"github.com/specmorph/oasdoc/model"
)

// simpleSchemaToSchema lifts the inline facets of a 2.0 non-body
// parameter, items object, or header into a 3.0 schema node.
func (c *converter) simpleSchemaToSchema(s *legacy.SimpleSchema, path string) *model.Schema {
	out := &model.Schema{}
	out.Default = model.CloneValue(s.Default)

	switch s.Type {
	case "string":
		out.Kind = model.StringKind{
			Format:    s.Format,
			Pattern:   s.Pattern,
			Enum:      enumToStrings(s.Enum),
			MinLength: intPtr(s.MinLength),
			MaxLength: intPtr(s.MaxLength),
		}
	case "number":
		out.Kind = model.NumberKind{
			Format:           s.Format,
			MultipleOf:       float64Ptr(s.MultipleOf),
			Minimum:          float64Ptr(s.Minimum),
			Maximum:          float64Ptr(s.Maximum),
			ExclusiveMinimum: s.ExclusiveMinimum,
			ExclusiveMaximum: s.ExclusiveMaximum,
			Enum:             enumValues(s.Enum),
		}
	case "integer":
		out.Kind = model.IntegerKind{
			Format:           s.Format,
			MultipleOf:       float64PtrToInt64(s.MultipleOf),
			Minimum:          float64PtrToInt64(s.Minimum),
			Maximum:          float64PtrToInt64(s.Maximum),
			ExclusiveMinimum: s.ExclusiveMinimum,
			ExclusiveMaximum: s.ExclusiveMaximum,
			Enum:             enumValues(s.Enum),
		}
	case "boolean":
		out.Kind = model.BooleanKind{}
	case "array":
		arr := model.ArrayKind{
			MinItems:    intPtr(s.MinItems),
			MaxItems:    intPtr(s.MaxItems),
			UniqueItems: s.UniqueItems,
		}
		if s.Items != nil {
			arr.Items = c.simpleSchemaToSchema(&s.Items.SimpleSchema, path+".items")
		}
		out.Kind = arr
	case "file":
		// 3.0 models uploads as binary strings
		out.Kind = model.StringKind{Format: "binary"}
		c.addNote(path, "file type rewritten as string with binary format", SeverityInfo)
	case "":
		out.Kind = model.UntypedKind{}
	default:
		out.Kind = model.UntypedKind{}
		out.Extra = model.Extensions{"type": s.Type}
		c.addNote(path, fmt.Sprintf("unrecognized type %q carried as an untyped schema", s.Type), SeverityWarning)
	}
	return out
}

func enumToStrings(enum []any) []string {
	if enum == nil {
		return nil
	}
	out := make([]string, 0, len(enum))
	for _, v := range enum {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func enumValues(enum []any) []any {
	if enum == nil {
		return nil
	}
	out := make([]any, len(enum))
	for i, v := range enum {
		out[i] = model.CloneValue(v)
	}
	return out
}

func float64PtrToInt64(f *float64) *int64 {
	if f == nil {
		return nil
	}
	i := int64(*f)
	return &i
}

func intPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func float64Ptr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
