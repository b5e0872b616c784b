package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "PORT", "GENERATION_SERVICE_URL", "SESSION_SECRET", "LANGFUSE_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.GenerationServiceURL)
	assert.True(t, cfg.UsesDefaultSessionSecret())
	assert.False(t, cfg.LangfuseEnabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("GENERATION_SERVICE_URL", "http://generator.internal:9000/")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("LANGFUSE_ENABLED", "true")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "http://generator.internal:9000", cfg.GenerationServiceURL, "trailing slash is trimmed")
	assert.False(t, cfg.UsesDefaultSessionSecret())
	assert.True(t, cfg.LangfuseEnabled)
}
