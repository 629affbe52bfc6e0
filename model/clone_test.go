package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaClone(t *testing.T) {
	tree := map[string]any{
		"type":     "object",
		"required": []any{"name"},
		"properties": map[string]any{
			"name": map[string]any{"type": "string", "enum": []any{"a", "b"}},
			"tags": map[string]any{
				"type":  "array",
				"items": map[string]any{"$ref": "#/components/schemas/Tag"},
			},
		},
		"x-meta": map[string]any{"origin": "test"},
	}
	original, err := ParseSchema(tree, "s")
	require.NoError(t, err)

	clone := original.Clone()
	require.Equal(t, original.ToTree(), clone.ToTree())

	obj := clone.Kind.(ObjectKind)
	obj.Properties["name"].Title = "changed"
	obj.Required[0] = "changed"
	clone.Extra["x-meta"].(map[string]any)["origin"] = "changed"

	orig := original.Kind.(ObjectKind)
	assert.Empty(t, orig.Properties["name"].Title)
	assert.Equal(t, []string{"name"}, orig.Required)
	assert.Equal(t, "test", original.Extra["x-meta"].(map[string]any)["origin"])
}

func TestSchemaCloneComposition(t *testing.T) {
	tree := map[string]any{
		"allOf": []any{
			map[string]any{"$ref": "#/components/schemas/Base"},
			map[string]any{"type": "object"},
		},
		"discriminator": map[string]any{
			"propertyName": "kind",
			"mapping":      map[string]any{"base": "#/components/schemas/Base"},
		},
	}
	original, err := ParseSchema(tree, "s")
	require.NoError(t, err)

	clone := original.Clone()
	comp := clone.Kind.(CompositionKind)
	comp.AllOf[1].Title = "changed"
	comp.Discriminator.Mapping["base"] = "changed"

	orig := original.Kind.(CompositionKind)
	assert.Empty(t, orig.AllOf[1].Title)
	assert.Equal(t, "#/components/schemas/Base", orig.Discriminator.Mapping["base"])
}

func TestSchemaCloneNil(t *testing.T) {
	var s *Schema
	assert.Nil(t, s.Clone())
}

func TestInfoClone(t *testing.T) {
	original := &Info{
		Title:   "t",
		Version: "1",
		Contact: &Contact{Name: "dev"},
		License: &License{Name: "MIT"},
		Extra:   Extensions{"x-a": "v"},
	}
	clone := original.Clone()
	clone.Contact.Name = "changed"
	clone.License.Name = "changed"
	clone.Extra["x-a"] = "changed"

	assert.Equal(t, "dev", original.Contact.Name)
	assert.Equal(t, "MIT", original.License.Name)
	assert.Equal(t, "v", original.Extra["x-a"])
}

func TestExtensionsClone(t *testing.T) {
	var empty Extensions
	assert.Nil(t, empty.Clone())

	original := Extensions{"x-list": []any{map[string]any{"k": "v"}}}
	clone := original.Clone()
	clone["x-list"].([]any)[0].(map[string]any)["k"] = "changed"
	assert.Equal(t, "v", original["x-list"].([]any)[0].(map[string]any)["k"])
}

func TestReferenceClone(t *testing.T) {
	original := ParseReference("#/components/schemas/Pet")
	clone := original.Clone()
	clone.Segments[2] = "changed"
	assert.Equal(t, "Pet", original.Segments[2])
}

func TestCloneSecurityRequirements(t *testing.T) {
	assert.Nil(t, CloneSecurityRequirements(nil))

	original := []SecurityRequirement{{"oauth": {"read", "write"}}}
	clone := CloneSecurityRequirements(original)
	clone[0]["oauth"][0] = "changed"
	assert.Equal(t, "read", original[0]["oauth"][0])
}
