package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		segments []string
		foreign  bool
	}{
		{
			name:     "component schema",
			raw:      "#/components/schemas/Pet",
			segments: []string{"components", "schemas", "Pet"},
		},
		{
			name:     "legacy definition",
			raw:      "#/definitions/Pet",
			segments: []string{"definitions", "Pet"},
		},
		{
			name:    "external file",
			raw:     "common.yaml#/components/schemas/Error",
			foreign: true,
		},
		{
			name:    "full url",
			raw:     "https://example.com/api.yaml#/components/schemas/Error",
			foreign: true,
		},
		{
			name:    "bare fragment",
			raw:     "#",
			foreign: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := ParseReference(tt.raw)
			assert.Equal(t, tt.raw, ref.Raw)
			assert.Equal(t, tt.raw, ref.String())
			assert.Equal(t, tt.foreign, ref.Foreign)
			assert.Equal(t, tt.segments, ref.Segments)
			assert.False(t, ref.IsZero())
		})
	}
}

func TestReferenceName(t *testing.T) {
	assert.Equal(t, "Pet", ParseReference("#/components/schemas/Pet").Name())
	assert.Equal(t, "Pet", ParseReference("#/definitions/Pet").Name())
	assert.Empty(t, ParseReference("other.yaml#/definitions/Pet").Name())
}

func TestReferenceInComponents(t *testing.T) {
	ref := ParseReference("#/components/schemas/Pet")
	assert.True(t, ref.InComponents("schemas"))
	assert.False(t, ref.InComponents("parameters"))

	legacy := ParseReference("#/definitions/Pet")
	assert.False(t, legacy.InComponents("schemas"))
}

func TestReferenceIsZero(t *testing.T) {
	assert.True(t, Reference{}.IsZero())
	assert.False(t, ParseReference("#/components/schemas/A").IsZero())
}
