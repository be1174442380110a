package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, 12000, cfg.Interpret.TruncateMaxChars)
	assert.Equal(t, 10*time.Minute, cfg.Interpret.ParseCacheTTL)
	assert.False(t, cfg.Interpret.RelevanceEnabled)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("RELEVANCE_ENABLED", "true")
	t.Setenv("TRUNCATE_MAX_CHARS", "4000")
	t.Setenv("PARSE_CACHE_TTL", "90s")
	t.Setenv("GO_ENV", "production")

	cfg := Load()
	assert.True(t, cfg.Interpret.RelevanceEnabled)
	assert.Equal(t, 4000, cfg.Interpret.TruncateMaxChars)
	assert.Equal(t, 90*time.Second, cfg.Interpret.ParseCacheTTL)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("TRUNCATE_MAX_CHARS", "lots")
	t.Setenv("PARSE_CACHE_CLEANUP", "soon")

	cfg := Load()
	assert.Equal(t, 12000, cfg.Interpret.TruncateMaxChars)
	assert.Equal(t, 20*time.Minute, cfg.Interpret.ParseCacheClean)
}
