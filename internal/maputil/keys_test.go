package maputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]bool
		want  []string
	}{
		{"unsorted input", map[string]bool{"zebra": true, "apple": true, "mango": true}, []string{"apple", "mango", "zebra"}},
		{"single key", map[string]bool{"only": true}, []string{"only"}},
		{"empty map", map[string]bool{}, []string{}},
		{"nil map", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SortedKeys(tt.input))
		})
	}
}

func TestSortedKeysValueTypes(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(map[string]string{"c": "3", "a": "1", "b": "2"}))

	type item struct{ name string }
	assert.Equal(t, []string{"a", "z"}, SortedKeys(map[string]*item{"z": {name: "z"}, "a": {name: "a"}}))
}
