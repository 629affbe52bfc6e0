package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specmorph/oasdoc/specerrors"
)

func mustSchema(t *testing.T, tree map[string]any) *Schema {
	t.Helper()
	s, err := ParseSchema(tree, "")
	require.NoError(t, err)
	return s
}

func TestMergeNilPassthrough(t *testing.T) {
	s := mustSchema(t, map[string]any{"type": "string"})

	out, err := Merge(s, nil)
	require.NoError(t, err)
	assert.Same(t, s, out)

	out, err = Merge(nil, s)
	require.NoError(t, err)
	assert.Same(t, s, out)
}

func TestMergeUntypedIsNeutral(t *testing.T) {
	untyped := mustSchema(t, map[string]any{"description": "anything"})
	str := mustSchema(t, map[string]any{"type": "string", "minLength": 2})

	out, err := Merge(untyped, str)
	require.NoError(t, err)
	k, ok := out.Kind.(StringKind)
	require.True(t, ok)
	require.NotNil(t, k.MinLength)
	assert.Equal(t, 2, *k.MinLength)
	assert.Equal(t, "anything", out.Description)
}

func TestMergeObjectsUnionsProperties(t *testing.T) {
	a := mustSchema(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{"type": "integer"},
		},
		"required": []any{"id"},
	})
	b := mustSchema(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
		},
		"required": []any{"name"},
	})

	out, err := Merge(a, b)
	require.NoError(t, err)

	k, ok := out.Kind.(ObjectKind)
	require.True(t, ok)
	assert.Len(t, k.Properties, 2)
	assert.Equal(t, []string{"id", "name"}, k.Required)
}

func TestMergeObjectsPropertyConflict(t *testing.T) {
	a := mustSchema(t, map[string]any{
		"type":       "object",
		"properties": map[string]any{"id": map[string]any{"type": "integer"}},
	})
	b := mustSchema(t, map[string]any{
		"type":       "object",
		"properties": map[string]any{"id": map[string]any{"type": "string"}},
	})

	_, err := Merge(a, b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, specerrors.ErrMerge))

	var me *specerrors.MergeError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "id", me.Property)
}

func TestMergeConstraintsTighten(t *testing.T) {
	a := mustSchema(t, map[string]any{"type": "integer", "minimum": 1, "maximum": 100})
	b := mustSchema(t, map[string]any{"type": "integer", "minimum": 10, "maximum": 50})

	out, err := Merge(a, b)
	require.NoError(t, err)

	k, ok := out.Kind.(IntegerKind)
	require.True(t, ok)
	require.NotNil(t, k.Minimum)
	require.NotNil(t, k.Maximum)
	assert.Equal(t, int64(10), *k.Minimum)
	assert.Equal(t, int64(50), *k.Maximum)
}

func TestMergeConstraintsAssociative(t *testing.T) {
	a := mustSchema(t, map[string]any{"type": "integer", "minimum": 1, "maximum": 100})
	b := mustSchema(t, map[string]any{"type": "integer", "minimum": 10, "maximum": 80})
	c := mustSchema(t, map[string]any{"type": "integer", "minimum": 5, "maximum": 50})

	ab, err := Merge(a, b)
	require.NoError(t, err)
	left, err := Merge(ab, c)
	require.NoError(t, err)

	bc, err := Merge(b, c)
	require.NoError(t, err)
	right, err := Merge(a, bc)
	require.NoError(t, err)

	assert.Equal(t, left.ToTree(), right.ToTree())
}

func TestMergeStringEnumIntersection(t *testing.T) {
	a := mustSchema(t, map[string]any{"type": "string", "enum": []any{"a", "b", "c"}})
	b := mustSchema(t, map[string]any{"type": "string", "enum": []any{"b", "c", "d"}})

	out, err := Merge(a, b)
	require.NoError(t, err)
	k, ok := out.Kind.(StringKind)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "c"}, k.Enum)
}

func TestMergeStringEnumEmptyIntersection(t *testing.T) {
	a := mustSchema(t, map[string]any{"type": "string", "enum": []any{"a"}})
	b := mustSchema(t, map[string]any{"type": "string", "enum": []any{"b"}})

	_, err := Merge(a, b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, specerrors.ErrMerge))
}

func TestMergeIncompatibleKinds(t *testing.T) {
	a := mustSchema(t, map[string]any{"type": "string"})
	b := mustSchema(t, map[string]any{"type": "integer"})

	_, err := Merge(a, b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, specerrors.ErrMerge))
}

func TestMergeReferenceRejected(t *testing.T) {
	a := mustSchema(t, map[string]any{"$ref": "#/components/schemas/A"})
	b := mustSchema(t, map[string]any{"type": "object"})

	_, err := Merge(a, b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, specerrors.ErrMerge))
}

func TestMergeMultipleOfConflict(t *testing.T) {
	a := mustSchema(t, map[string]any{"type": "number", "multipleOf": 2})
	b := mustSchema(t, map[string]any{"type": "number", "multipleOf": 3})

	_, err := Merge(a, b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, specerrors.ErrMerge))
}

func TestMergeMetadata(t *testing.T) {
	a := mustSchema(t, map[string]any{"type": "string", "nullable": true, "x-a": 1})
	b := mustSchema(t, map[string]any{
		"type": "string", "title": "Name", "nullable": false, "readOnly": true, "x-b": 2,
	})

	out, err := Merge(a, b)
	require.NoError(t, err)
	assert.Equal(t, "Name", out.Title)
	assert.False(t, out.Nullable, "null admitted only when both admit it")
	assert.True(t, out.ReadOnly)
	assert.Contains(t, out.Extra, "x-a")
	assert.Contains(t, out.Extra, "x-b")
}

func TestMergeCommutesOnObjects(t *testing.T) {
	a := mustSchema(t, map[string]any{
		"type":       "object",
		"properties": map[string]any{"x": map[string]any{"type": "string"}},
		"required":   []any{"x"},
	})
	b := mustSchema(t, map[string]any{
		"type":       "object",
		"properties": map[string]any{"y": map[string]any{"type": "integer"}},
		"required":   []any{"y"},
	})

	ab, err := Merge(a, b)
	require.NoError(t, err)
	ba, err := Merge(b, a)
	require.NoError(t, err)

	ka := ab.Kind.(ObjectKind)
	kb := ba.Kind.(ObjectKind)
	assert.Equal(t, ka.Required, kb.Required)
	assert.Len(t, kb.Properties, len(ka.Properties))
}

func TestMergeArraysRecursesIntoItems(t *testing.T) {
	a := mustSchema(t, map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "integer", "minimum": 0},
		"minItems": 1,
	})
	b := mustSchema(t, map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "integer", "maximum": 10},
		"minItems": 2,
	})

	out, err := Merge(a, b)
	require.NoError(t, err)

	k, ok := out.Kind.(ArrayKind)
	require.True(t, ok)
	require.NotNil(t, k.MinItems)
	assert.Equal(t, 2, *k.MinItems)

	items, ok := k.Items.Kind.(IntegerKind)
	require.True(t, ok)
	require.NotNil(t, items.Minimum)
	require.NotNil(t, items.Maximum)
	assert.Equal(t, int64(0), *items.Minimum)
	assert.Equal(t, int64(10), *items.Maximum)
}
