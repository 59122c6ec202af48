package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple title", "Hello World", "hello-world"},
		{"mixed case", "My First Post", "my-first-post"},
		{"punctuation", "What's new, in 2025?", "what-s-new-in-2025"},
		{"leading and trailing spaces", "  spaced out  ", "spaced-out"},
		{"repeated separators", "a -- b", "a-b"},
		{"digits", "Top 10 Products", "top-10-products"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}
