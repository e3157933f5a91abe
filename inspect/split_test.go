package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAtCursor(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		line, column int
		wantAbove    string
		wantBelow    string
	}{
		{"middle of line", "a\nbc\n", 2, 2, "a\nb", "c\n"},
		{"end of line", "a\nbc\n", 2, 0, "a\nbc", "\n"},
		{"start of file", "a\nbc\n", 1, 1, "", "a\nbc\n"},
		{"after trailing newline", "a\nbc\n", 3, 0, "a\nbc\n", ""},
		{"column one past end", "a\nbc\n", 2, 3, "a\nbc", "\n"},
		{"multibyte", "héllo", 1, 3, "hé", "llo"},
		{"empty line", "a\n\nb", 2, 1, "a\n", "\nb"},
		{"no trailing newline", "x := 1", 1, 0, "x := 1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			above, below, err := splitAtCursor(tt.text, tt.line, tt.column)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAbove, above)
			assert.Equal(t, tt.wantBelow, below)
			assert.Equal(t, tt.text, above+below)
		})
	}
}

func TestSplitAtCursorErrors(t *testing.T) {
	tests := []struct {
		name         string
		line, column int
		wantErr      string
	}{
		{"zero line", 0, 0, "line must be at least 1"},
		{"negative column", 1, -1, "column must not be negative"},
		{"line past end", 4, 0, "line 4 is past the end of the file"},
		{"column past end", 2, 4, "column 4 is past the end of line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := splitAtCursor("a\nbc\n", tt.line, tt.column)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
