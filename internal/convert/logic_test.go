package convert

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestInputExt verifies container detection for local paths and URLs.
func TestInputExt(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"night.csv", ".csv"},
		{filepath.Join("exports", "night.XLSX"), ".XLSX"},
		{"https://example.com/exports/night.xlsx?dl=1", ".xlsx"},
		{"https://example.com/exports/night.xlsx#sheet", ".xlsx"},
		{"https://example.com/download", ""},
		{"no-extension", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, inputExt(tt.input))
		})
	}
}
