package model

import (
	"fmt"
	"sort"

	"github.com/specmorph/oasdoc/specerrors"
)

// Merge combines two schemas under allOf semantics: the result describes
// values satisfying both inputs. It is used to collapse allOf lists during
// version upgrade.
//
// Property maps are unioned; a property defined by both inputs is a
// conflict, reported as a MergeError rather than silently overwritten.
// Required sets are unioned. Numeric and length constraints intersect, the
// tightest bound winning: max of minimums, min of maximums. Incompatible
// base types (e.g., a string facet against a number facet) and unresolved
// references are reportable errors, never panics.
//
// An untyped schema is the neutral element: merging it with any schema
// yields that schema, metadata combined.
//
// Neither input is mutated; the result is a freshly built tree.
func Merge(a, b *Schema) (*Schema, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}

	if a.IsReference() || b.IsReference() {
		return nil, &specerrors.MergeError{Message: "cannot merge an unresolved reference"}
	}

	// Untyped accepts anything, so it constrains nothing.
	if _, ok := a.Kind.(UntypedKind); ok {
		return withMergedData(b.Kind, a, b)
	}
	if _, ok := b.Kind.(UntypedKind); ok {
		return withMergedData(a.Kind, a, b)
	}

	switch ka := a.Kind.(type) {
	case CompositionKind:
		kb, ok := b.Kind.(CompositionKind)
		if !ok {
			return nil, incompatibleKinds(a, b)
		}
		merged, err := mergeCompositions(ka, kb)
		if err != nil {
			return nil, err
		}
		return withMergedData(merged, a, b)

	case StringKind:
		kb, ok := b.Kind.(StringKind)
		if !ok {
			return nil, incompatibleKinds(a, b)
		}
		merged, err := mergeStrings(ka, kb)
		if err != nil {
			return nil, err
		}
		return withMergedData(merged, a, b)

	case NumberKind:
		kb, ok := b.Kind.(NumberKind)
		if !ok {
			return nil, incompatibleKinds(a, b)
		}
		merged, err := mergeNumbers(ka, kb)
		if err != nil {
			return nil, err
		}
		return withMergedData(merged, a, b)

	case IntegerKind:
		kb, ok := b.Kind.(IntegerKind)
		if !ok {
			return nil, incompatibleKinds(a, b)
		}
		merged, err := mergeIntegers(ka, kb)
		if err != nil {
			return nil, err
		}
		return withMergedData(merged, a, b)

	case ArrayKind:
		kb, ok := b.Kind.(ArrayKind)
		if !ok {
			return nil, incompatibleKinds(a, b)
		}
		merged, err := mergeArrays(ka, kb)
		if err != nil {
			return nil, err
		}
		return withMergedData(merged, a, b)

	case ObjectKind:
		kb, ok := b.Kind.(ObjectKind)
		if !ok {
			return nil, incompatibleKinds(a, b)
		}
		merged, err := mergeObjects(ka, kb)
		if err != nil {
			return nil, err
		}
		return withMergedData(merged, a, b)

	case BooleanKind:
		if _, ok := b.Kind.(BooleanKind); !ok {
			return nil, incompatibleKinds(a, b)
		}
		return withMergedData(BooleanKind{}, a, b)

	default:
		return nil, incompatibleKinds(a, b)
	}
}

func incompatibleKinds(a, b *Schema) error {
	return &specerrors.MergeError{
		Message: fmt.Sprintf("incompatible schema kinds %T and %T", a.Kind, b.Kind),
	}
}

// withMergedData wraps kind with metadata combined from both inputs.
func withMergedData(kind SchemaKind, a, b *Schema) (*Schema, error) {
	s := &Schema{Kind: kind}

	s.Title = firstNonEmpty(a.Title, b.Title)
	s.Description = firstNonEmpty(a.Description, b.Description)
	if a.Default != nil {
		s.Default = a.Default
	} else {
		s.Default = b.Default
	}
	if a.Example != nil {
		s.Example = a.Example
	} else {
		s.Example = b.Example
	}
	// null is admitted only when both conjuncts admit it
	s.Nullable = a.Nullable && b.Nullable
	s.Deprecated = a.Deprecated || b.Deprecated
	s.ReadOnly = a.ReadOnly || b.ReadOnly
	s.WriteOnly = a.WriteOnly || b.WriteOnly
	if a.ExternalDocs != nil {
		s.ExternalDocs = a.ExternalDocs
	} else {
		s.ExternalDocs = b.ExternalDocs
	}

	if len(a.Extra) > 0 || len(b.Extra) > 0 {
		s.Extra = make(Extensions, len(a.Extra)+len(b.Extra))
		for k, v := range b.Extra {
			s.Extra[k] = v
		}
		for k, v := range a.Extra {
			s.Extra[k] = v
		}
	}

	return s, nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// mergeCompositions concatenates two pure allOf lists. Any other
// composition pairing has no single-schema conjunction and is an error.
func mergeCompositions(a, b CompositionKind) (SchemaKind, error) {
	if !isPureAllOf(a) || !isPureAllOf(b) {
		return nil, &specerrors.MergeError{Message: "only pure allOf compositions can be merged"}
	}
	combined := make([]*Schema, 0, len(a.AllOf)+len(b.AllOf))
	combined = append(combined, a.AllOf...)
	combined = append(combined, b.AllOf...)
	return CompositionKind{AllOf: combined}, nil
}

func isPureAllOf(c CompositionKind) bool {
	return len(c.AnyOf) == 0 && len(c.OneOf) == 0 && c.Not == nil && c.Discriminator == nil
}

func mergeStrings(a, b StringKind) (SchemaKind, error) {
	format, err := reconcileString("format", a.Format, b.Format)
	if err != nil {
		return nil, err
	}
	pattern, err := reconcileString("pattern", a.Pattern, b.Pattern)
	if err != nil {
		return nil, err
	}
	enum, err := intersectStringEnums(a.Enum, b.Enum)
	if err != nil {
		return nil, err
	}
	return StringKind{
		Format:    format,
		Pattern:   pattern,
		Enum:      enum,
		MinLength: maxIntPtr(a.MinLength, b.MinLength),
		MaxLength: minIntPtr(a.MaxLength, b.MaxLength),
	}, nil
}

func mergeNumbers(a, b NumberKind) (SchemaKind, error) {
	format, err := reconcileString("format", a.Format, b.Format)
	if err != nil {
		return nil, err
	}
	multipleOf, err := reconcileFloat64Ptr("multipleOf", a.MultipleOf, b.MultipleOf)
	if err != nil {
		return nil, err
	}
	minimum, exclMin := tightestMin(a.Minimum, a.ExclusiveMinimum, b.Minimum, b.ExclusiveMinimum)
	maximum, exclMax := tightestMax(a.Maximum, a.ExclusiveMaximum, b.Maximum, b.ExclusiveMaximum)
	return NumberKind{
		Format:           format,
		MultipleOf:       multipleOf,
		Minimum:          minimum,
		Maximum:          maximum,
		ExclusiveMinimum: exclMin,
		ExclusiveMaximum: exclMax,
	}, nil
}

func mergeIntegers(a, b IntegerKind) (SchemaKind, error) {
	format, err := reconcileString("format", a.Format, b.Format)
	if err != nil {
		return nil, err
	}
	multipleOf, err := reconcileInt64Ptr("multipleOf", a.MultipleOf, b.MultipleOf)
	if err != nil {
		return nil, err
	}
	minimum, exclMin := tightestMinInt(a.Minimum, a.ExclusiveMinimum, b.Minimum, b.ExclusiveMinimum)
	maximum, exclMax := tightestMaxInt(a.Maximum, a.ExclusiveMaximum, b.Maximum, b.ExclusiveMaximum)
	return IntegerKind{
		Format:           format,
		MultipleOf:       multipleOf,
		Minimum:          minimum,
		Maximum:          maximum,
		ExclusiveMinimum: exclMin,
		ExclusiveMaximum: exclMax,
	}, nil
}

func mergeArrays(a, b ArrayKind) (SchemaKind, error) {
	items, err := Merge(a.Items, b.Items)
	if err != nil {
		return nil, err
	}
	return ArrayKind{
		Items:       items,
		MinItems:    maxIntPtr(a.MinItems, b.MinItems),
		MaxItems:    minIntPtr(a.MaxItems, b.MaxItems),
		UniqueItems: a.UniqueItems || b.UniqueItems,
	}, nil
}

func mergeObjects(a, b ObjectKind) (SchemaKind, error) {
	var props map[string]*Schema
	if len(a.Properties) > 0 || len(b.Properties) > 0 {
		props = make(map[string]*Schema, len(a.Properties)+len(b.Properties))
		for name, s := range a.Properties {
			props[name] = s
		}
		for name, s := range b.Properties {
			if _, taken := props[name]; taken {
				return nil, &specerrors.MergeError{
					Property: name,
					Message:  "defined by both schemas",
				}
			}
			props[name] = s
		}
	}

	required := unionStrings(a.Required, b.Required)

	var addProps *AdditionalProperties
	switch {
	case a.AdditionalProperties == nil:
		addProps = b.AdditionalProperties
	case b.AdditionalProperties == nil:
		addProps = a.AdditionalProperties
	default:
		return nil, &specerrors.MergeError{Message: "both schemas constrain additionalProperties"}
	}

	return ObjectKind{
		Properties:           props,
		Required:             required,
		AdditionalProperties: addProps,
		MinProperties:        maxIntPtr(a.MinProperties, b.MinProperties),
		MaxProperties:        minIntPtr(a.MaxProperties, b.MaxProperties),
	}, nil
}

// unionStrings returns the sorted, de-duplicated union of two string sets.
func unionStrings(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(a)+len(b))
	result := make([]string, 0, len(a)+len(b))
	for _, arr := range [][]string{a, b} {
		for _, item := range arr {
			if !seen[item] {
				seen[item] = true
				result = append(result, item)
			}
		}
	}
	sort.Strings(result)
	return result
}

// intersectStringEnums intersects two enum value sets. A nil set means
// unconstrained. An empty intersection admits no value at all and is
// reported as a conflict.
func intersectStringEnums(a, b []string) ([]string, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}
	inB := make(map[string]bool, len(b))
	for _, v := range b {
		inB[v] = true
	}
	var result []string
	for _, v := range a {
		if inB[v] {
			result = append(result, v)
		}
	}
	if len(result) == 0 {
		return nil, &specerrors.MergeError{Message: "enum intersection is empty"}
	}
	return result, nil
}

func reconcileString(field, a, b string) (string, error) {
	switch {
	case a == "":
		return b, nil
	case b == "" || a == b:
		return a, nil
	default:
		return "", &specerrors.MergeError{Message: fmt.Sprintf("conflicting %s values %q and %q", field, a, b)}
	}
}

func reconcileFloat64Ptr(field string, a, b *float64) (*float64, error) {
	switch {
	case a == nil:
		return b, nil
	case b == nil || *a == *b:
		return a, nil
	default:
		return nil, &specerrors.MergeError{Message: fmt.Sprintf("conflicting %s values %v and %v", field, *a, *b)}
	}
}

func reconcileInt64Ptr(field string, a, b *int64) (*int64, error) {
	switch {
	case a == nil:
		return b, nil
	case b == nil || *a == *b:
		return a, nil
	default:
		return nil, &specerrors.MergeError{Message: fmt.Sprintf("conflicting %s values %v and %v", field, *a, *b)}
	}
}

// maxIntPtr takes the larger of two optional lower bounds.
func maxIntPtr(a, b *int) *int {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a >= *b:
		return a
	default:
		return b
	}
}

// minIntPtr takes the smaller of two optional upper bounds.
func minIntPtr(a, b *int) *int {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a <= *b:
		return a
	default:
		return b
	}
}

// tightestMin picks the larger lower bound; on equal bounds exclusivity
// accumulates, otherwise the winning bound keeps its own.
func tightestMin(a *float64, aExcl bool, b *float64, bExcl bool) (*float64, bool) {
	switch {
	case a == nil:
		return b, bExcl && b != nil
	case b == nil:
		return a, aExcl
	case *a > *b:
		return a, aExcl
	case *b > *a:
		return b, bExcl
	default:
		return a, aExcl || bExcl
	}
}

// tightestMax picks the smaller upper bound with the same exclusivity rule.
func tightestMax(a *float64, aExcl bool, b *float64, bExcl bool) (*float64, bool) {
	switch {
	case a == nil:
		return b, bExcl && b != nil
	case b == nil:
		return a, aExcl
	case *a < *b:
		return a, aExcl
	case *b < *a:
		return b, bExcl
	default:
		return a, aExcl || bExcl
	}
}

func tightestMinInt(a *int64, aExcl bool, b *int64, bExcl bool) (*int64, bool) {
	switch {
	case a == nil:
		return b, bExcl && b != nil
	case b == nil:
		return a, aExcl
	case *a > *b:
		return a, aExcl
	case *b > *a:
		return b, bExcl
	default:
		return a, aExcl || bExcl
	}
}

func tightestMaxInt(a *int64, aExcl bool, b *int64, bExcl bool) (*int64, bool) {
	switch {
	case a == nil:
		return b, bExcl && b != nil
	case b == nil:
		return a, aExcl
	case *a < *b:
		return a, aExcl
	case *b < *a:
		return b, bExcl
	default:
		return a, aExcl || bExcl
	}
}
