package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 2, cfg.MinStructuredHeadings)
	assert.Equal(t, 50.0, cfg.WeightUnitThreshold)
	assert.Equal(t, 100.0, cfg.WeightMinGrams)
	assert.Equal(t, 500.0, cfg.WeightMaxGrams)
	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")

	assert.Equal(t, nil, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Equal(t, nil, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shoedex.yaml")
	err := os.WriteFile(path, []byte("heading_window: 900\nllm_provider: anthropic\n"), 0o644)
	assert.Equal(t, nil, err)

	cfg, err := Load(path)

	assert.Equal(t, nil, err)
	assert.Equal(t, 900, cfg.HeadingWindow)
	assert.Equal(t, "anthropic", cfg.LLMProvider)

	// Untouched keys keep their defaults.
	assert.Equal(t, 2, cfg.MinStructuredHeadings)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shoedex.yaml")
	err := os.WriteFile(path, []byte("max_retries: 5\n"), 0o644)
	assert.Equal(t, nil, err)

	t.Setenv("SHOEDEX_MAX_RETRIES", "7")
	t.Setenv("SHOEDEX_LLM_PROVIDER", "anthropic")

	cfg, err := Load(path)

	assert.Equal(t, nil, err)
	assert.Equal(t, 7, cfg.MaxRetries)
	assert.Equal(t, "anthropic", cfg.LLMProvider)
}
