package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bookfeed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4096, cfg.FIFODepthBytes)
	assert.Equal(t, 5, cfg.DepthLevels)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, "fifo_depth_bytes: 256\nlog_level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.FIFODepthBytes)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Unset fields keep their defaults.
	assert.Equal(t, 5, cfg.DepthLevels)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("FIFO_DEPTH", "128")
	path := writeConfig(t, "fifo_depth_bytes: ${FIFO_DEPTH}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.FIFODepthBytes)
}

func TestLoadRejectsInvalidDepth(t *testing.T) {
	path := writeConfig(t, "fifo_depth_bytes: 0\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", (&Config{LogLevel: "debug"}).SlogLevel().String())
	assert.Equal(t, "INFO", (&Config{LogLevel: "info"}).SlogLevel().String())
	assert.Equal(t, "WARN", (&Config{LogLevel: "warn"}).SlogLevel().String())
	assert.Equal(t, "ERROR", (&Config{LogLevel: "error"}).SlogLevel().String())
	assert.Equal(t, "INFO", (&Config{LogLevel: ""}).SlogLevel().String())
}
