package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.NotEmpty(t, config.StashDir)
	assert.True(t, config.Backup)
	assert.Empty(t, config.DefaultFormat)
	assert.Equal(t, "warn", config.Logging.Level)
	assert.Equal(t, "text", config.Logging.Format)
	assert.NoError(t, config.Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Run("load existing config", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		expected := &Config{
			StashDir:      "/custom/stash",
			Backup:        false,
			DefaultFormat: "shop2",
			Logging: Logging{
				Level:  "debug",
				Format: "json",
			},
		}

		require.NoError(t, SaveConfig(expected, configPath))

		loaded, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, expected, loaded)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("logging:\n  level: info\n"), 0600))

		loaded, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, "info", loaded.Logging.Level)
		assert.Equal(t, "text", loaded.Logging.Format)
		assert.Equal(t, DefaultConfig().StashDir, loaded.StashDir)
		assert.True(t, loaded.Backup)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("stash_dir: [unterminated"), 0600))

		_, err := LoadConfig(configPath)
		assert.ErrorContains(t, err, "failed to parse config file")
	})

	t.Run("invalid values", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("default_format: shop9\nlogging:\n  format: xml\n"), 0600))

		_, err := LoadConfig(configPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "defaultformat must be one of")
		assert.Contains(t, err.Error(), "format must be one of [text json]")
	})
}

func TestLoadOrDefault(t *testing.T) {
	loaded, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), loaded)
}

func TestSaveConfig(t *testing.T) {
	t.Run("secure permissions", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
		require.NoError(t, SaveConfig(DefaultConfig(), configPath))

		info, err := os.Stat(configPath)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

		data, err := os.ReadFile(configPath)
		require.NoError(t, err)
		var raw map[string]any
		require.NoError(t, yaml.Unmarshal(data, &raw))
		assert.Contains(t, raw, "stash_dir")
		assert.Contains(t, raw, "logging")
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		config := DefaultConfig()
		config.StashDir = ""
		err := SaveConfig(config, filepath.Join(t.TempDir(), "config.yaml"))
		assert.ErrorContains(t, err, "stashdir is required")
	})
}

func TestGetDefaultConfigPath(t *testing.T) {
	path := GetDefaultConfigPath()
	assert.Equal(t, "config.yaml", filepath.Base(path))
}

func TestConfigExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, ConfigExists(filepath.Join(dir, "config.yaml")))

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0600))
	assert.True(t, ConfigExists(path))
}
