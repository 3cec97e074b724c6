package fuzzytime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-medview/internal/fuzzytime"
)

func TestLayoutFromStrftime(t *testing.T) {
	tests := []struct {
		format string
		layout string
	}{
		{"%m/%d/%Y", "1/2/2006"},
		{"%d.%m.%Y г.", "2.1.2006 г."},
		{"%Y年%m月%d日", "2006年1月2日"},
		{"%H:%M:%S", "15:4:5"},
		{"%I:%M:%S %p", "3:4:5 PM"},
		{"%e %B %Y", "_2 January 2006"},
		{"%F %T", "2006-1-2 15:4:5"},
		{"%d%%%m", "2%1"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, err := fuzzytime.LayoutFromStrftime(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.layout, got)
		})
	}
}

func TestLayoutFromStrftime_Rejects(t *testing.T) {
	formats := []string{
		"",
		"%d/%m/%",
		"%s",
		"%d Mon %Y",
		"%H:%M PM",
		"100%% %d",
	}

	for _, format := range formats {
		_, err := fuzzytime.LayoutFromStrftime(format)
		assert.ErrorIs(t, err, fuzzytime.ErrBadOverride, "format %q", format)
	}
}
