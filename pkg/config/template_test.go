package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/spanrender/pkg/config"
)

func TestGenerateTemplate_YAMLLoadsAsDefaults(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(data), "# spanrender configuration")

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSchemes, cfg.Schemes)
	assert.Equal(t, config.DefaultContext, cfg.Context)
	assert.Empty(t, cfg.Languages)
}

func TestGenerateTemplate_FullListsLanguages(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{
		Full:      true,
		Languages: []string{"go", "rust"},
	})
	require.NoError(t, err)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "rust"}, cfg.Languages)
}

func TestGenerateTemplate_JSON(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
	require.NoError(t, err)
	assert.True(t, json.Valid(data))

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "timeline", cfg.Context)
}

func TestGenerateTemplate_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := config.GenerateTemplate(config.TemplateOptions{Format: "toml"})
	assert.Error(t, err)
}
