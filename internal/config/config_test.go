package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
logging:
  level: debug
store:
  directory: /srv/orixdb/main
io:
  read_limit_bytes_per_sec: 1048576
prompt:
  assume_yes: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "/srv/orixdb/main", cfg.Store.Directory)
	assert.Equal(t, int64(1<<20), cfg.IO.ReadLimitBytesPerSec)
	assert.Equal(t, int64(2), cfg.IO.MaxConcurrentLoads)
	assert.True(t, cfg.Prompt.AssumeYes)
	assert.Equal(t, slog.LevelDebug, cfg.Logging.SlogLevel())
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[logging]
format = "json"
level = "warn"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, slog.LevelWarn, cfg.Logging.SlogLevel())
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ORIXDB_LOGGING_LEVEL", "error")
	t.Setenv("ORIXDB_STORE_DIRECTORY", "/data/store")
	t.Setenv("ORIXDB_PROMPT_ASSUME_YES", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ERROR", cfg.Logging.Level)
	assert.Equal(t, "/data/store", cfg.Store.Directory)
	assert.True(t, cfg.Prompt.AssumeYes)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := writeConfig(t, "config.yaml", "logging:\n  format: text\n")
	t.Setenv("ORIXDB_LOGGING_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad level", func(t *testing.T) {
		path := writeConfig(t, "config.yaml", "logging:\n  level: LOUD\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Level")
	})

	t.Run("negative io limit", func(t *testing.T) {
		path := writeConfig(t, "config.yaml", "io:\n  read_limit_bytes_per_sec: -5\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gte")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "config.yaml", "logging: [\n")
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "orixdb"), GetConfigDir())
}
