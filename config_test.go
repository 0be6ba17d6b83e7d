package jecnasupl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SUPL_ENDPOINT", "https://example.com/jecnarozvrh")
	t.Setenv("SUPL_CLASS", "E2B")
	t.Setenv("SUPL_CACHE_TTL_MINUTES", "15")

	cfg := LoadConfig()
	assert.Equal(t, "https://example.com/jecnarozvrh", cfg.Endpoint)
	assert.Equal(t, "E2B", cfg.ClassSymbol)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)

	client, err := NewClientFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "E2B", client.ClassSymbol)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SUPL_ENDPOINT", "")
	t.Setenv("SUPL_CLASS", "")
	t.Setenv("SUPL_CACHE_TTL_MINUTES", "not a number")

	cfg := LoadConfig()
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)

	_, err := NewClientFromConfig(cfg)
	assert.Error(t, err)
}
