package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quanta-dev/bookfabric/fabric"
)

// Config holds the host harness configuration. The reassembly buffer cap is a
// compile-time constant of the engine and is deliberately not configurable.
type Config struct {
	FIFODepthBytes int    `yaml:"fifo_depth_bytes"`
	DepthLevels    int    `yaml:"depth_levels"`
	LogLevel       string `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		FIFODepthBytes: fabric.DefaultDepth,
		DepthLevels:    5,
		LogLevel:       "info",
	}
}

// Load reads a YAML config file, expanding environment variables in its
// contents. A missing path falls back to the CONFIG_FILE environment variable.
func Load(filePath string) (*Config, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}
	if len(filePath) == 0 {
		return Default(), nil
	}

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", filePath, err)
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := Default()
	if err := yaml.Unmarshal(configBytes, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", filePath, err)
	}

	if cfg.FIFODepthBytes < 1 {
		return nil, fmt.Errorf("config: fifo_depth_bytes must be positive, got %d", cfg.FIFODepthBytes)
	}
	if cfg.DepthLevels < 0 {
		return nil, fmt.Errorf("config: depth_levels must not be negative, got %d", cfg.DepthLevels)
	}

	return cfg, nil
}

// SlogLevel maps the configured log level onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
