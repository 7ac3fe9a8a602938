package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty temp dir so a developer's real config file
// cannot leak into the test, and scrubs the recognized env vars.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{EnvAPIKey, EnvBaseURL, EnvCacheDir, EnvLogFile, EnvLogLevel} {
		t.Setenv(key, "")
	}
	return home
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.APIKey)
	assert.Empty(t, cfg.BaseURL)
	assert.Equal(t, DefaultCacheDir, cfg.CacheDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvAPIKey, "key-from-env")
	t.Setenv(EnvCacheDir, "/tmp/unleaded-cache")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "key-from-env", cfg.APIKey)
	assert.Equal(t, "/tmp/unleaded-cache", cfg.CacheDir)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ConfigFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".unleaded")
	require.NoError(t, os.MkdirAll(dir, 0750))
	yaml := "cache_dir: /data/listings\nlog_level: warn\nlog_file: /tmp/unleaded.log\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/listings", cfg.CacheDir)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/tmp/unleaded.log", cfg.LogFile)
}

func TestLoad_EnvBeatsConfigFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".unleaded")
	require.NoError(t, os.MkdirAll(dir, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("cache_dir: /from/file\n"), 0600))
	t.Setenv(EnvCacheDir, "/from/env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.CacheDir)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".unleaded")
	require.NoError(t, os.MkdirAll(dir, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("cache_dir: [unclosed"), 0600))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Config{}.Validate(), ErrMissingAPIKey)
	assert.NoError(t, Config{APIKey: "k"}.Validate())
}

func TestRawDir(t *testing.T) {
	cfg := Config{CacheDir: "/data/cache"}
	assert.Equal(t, filepath.Join("/data/cache", "raw"), cfg.RawDir())
}
