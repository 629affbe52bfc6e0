package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStatusCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"default", true},
		{"200", true},
		{"404", true},
		{"100", true},
		{"599", true},
		{"2XX", true},
		{"5XX", true},
		{"x-custom", true},

		{"", false},
		{"600", false},
		{"099", false},
		{"0XX", false},
		{"6XX", false},
		{"2xx", false},
		{"20", false},
		{"2000", false},
		{"abc", false},
		{"ok", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateStatusCode(tt.code))
		})
	}
}

func TestMethodLists(t *testing.T) {
	assert.Equal(t, []string{"get", "put", "post", "delete", "options", "head", "patch"}, Methods2)
	assert.Equal(t, []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}, Methods3)
}
