package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuneWidth(t *testing.T) {
	assert.Equal(t, 1, RuneWidth('a'))
	assert.Equal(t, 2, RuneWidth('世'))
	assert.Equal(t, 0, RuneWidth('́'))
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"cut", "hello world", 5, "hello"},
		{"zero", "hello", 0, ""},
		{"wide chars are not split", "世界世界", 3, "世"},
		{"mixed", "a世b", 3, "a世"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateToWidth(tt.input, tt.width))
		})
	}
}

func TestTruncateToWidthWithEllipsis(t *testing.T) {
	assert.Equal(t, "short", TruncateToWidthWithEllipsis("short", 10))
	assert.Equal(t, "long…", TruncateToWidthWithEllipsis("long label", 5))
	assert.Equal(t, "l", TruncateToWidthWithEllipsis("long", 1))
}

func TestPadStringToWidth(t *testing.T) {
	assert.Equal(t, "ab   ", PadStringToWidth("ab", 5))
	assert.Equal(t, "世  ", PadStringToWidth("世", 4))
}
