package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidComponentKey(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Pet", true},
		{"Pet_v2", true},
		{"my.schema-name", true},
		{"123", true},

		{"", false},
		{"Response[User]", false},
		{"Page<Item>", false},
		{"my schema", false},
		{"naïve", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidComponentKey(tt.name))
		})
	}
}

func TestSanitizeComponentKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Pet", "Pet"},
		{"Response[User]", "ResponseUser"},
		{"Page<Item,int>", "PageItemInt"},
		{"my schema", "mySchema"},
		{"HTTPError[T]", "HTTPErrorT"},
		{"[[]]", "Schema"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeComponentKey(tt.name)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsValidComponentKey(got))
		})
	}
}
