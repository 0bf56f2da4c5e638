// Package config loads server configuration from YAML.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultMaxLineBytes bounds a single inbound wire message.
const DefaultMaxLineBytes = 10 * 1024 * 1024

// Config is the server's file-backed configuration.
type Config struct {
	Server       ServerConfig `yaml:"server"`
	Log          LogConfig    `yaml:"log"`
	MaxLineBytes int          `yaml:"max_line_bytes"`
	Tools        []string     `yaml:"tools"`
}

// ServerConfig names the server as reported during initialize.
type ServerConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// LogConfig controls logger output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Name:    "mcp-toolserver",
			Version: "1.0.0",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		MaxLineBytes: DefaultMaxLineBytes,
		Tools:        []string{"echo", "tail"},
	}
}

// Load reads path and overlays it on the defaults. Fields left out of the
// file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Name == "" {
		return fmt.Errorf("server.name must not be empty")
	}

	if c.MaxLineBytes <= 0 {
		return fmt.Errorf("max_line_bytes must be > 0, got %d", c.MaxLineBytes)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

// LogLevel maps the configured level name to a slog level. Unknown names
// fall back to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
