package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, "trendline.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  listen: ":9000"
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Listen)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, "trendline.db", cfg.Database.Path)
}

func TestLoadCacheSection(t *testing.T) {
	path := writeConfig(t, `
cache:
  upcoming_ttl_seconds: 120
  results_size: 10
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.Cache.UpcomingTTL())
	assert.Equal(t, 10, cfg.Cache.ResultsSize)
	assert.Equal(t, 16, cfg.Cache.UpcomingSize)
}

func TestLoadRejectsNonPositiveTTL(t *testing.T) {
	path := writeConfig(t, `
cache:
  upcoming_ttl_seconds: 0
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
server:
  listne: ":9000"
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	path := writeConfig(t, `
log:
  level: loud
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
