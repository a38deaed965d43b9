package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/spanrender/pkg/config"
)

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    config.OutputFormat
		wantErr bool
	}{
		{"text", config.FormatText, false},
		{"JSON", config.FormatJSON, false},
		{" html ", config.FormatHTML, false},
		{"nodes", config.FormatNodes, false},
		{"", config.FormatText, false},
		{"sarif", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := config.ParseOutputFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInputFormat(t *testing.T) {
	t.Parallel()

	got, err := config.ParseInputFormat("md")
	require.NoError(t, err)
	assert.Equal(t, config.InputMarkdown, got)

	got, err = config.ParseInputFormat("auto")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = config.ParseInputFormat("xml")
	assert.Error(t, err)
}

func TestColorMode_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.ColorAuto.IsValid())
	assert.True(t, config.ColorNever.IsValid())
	assert.False(t, config.ColorMode("rainbow").IsValid())
}
