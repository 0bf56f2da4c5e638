package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.Equal(t, "mcp-toolserver", cfg.Server.Name)
	require.Equal(t, DefaultMaxLineBytes, cfg.MaxLineBytes)
	require.Equal(t, []string{"echo", "tail"}, cfg.Tools)
	require.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestLoad(t *testing.T) {
	t.Run("full file", func(t *testing.T) {
		path := writeConfig(t, `
server:
  name: custom-server
  version: 2.3.4
log:
  level: debug
  format: json
max_line_bytes: 65536
tools:
  - echo
`)

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "custom-server", cfg.Server.Name)
		require.Equal(t, "2.3.4", cfg.Server.Version)
		require.Equal(t, 65536, cfg.MaxLineBytes)
		require.Equal(t, []string{"echo"}, cfg.Tools)
		require.Equal(t, slog.LevelDebug, cfg.LogLevel())
		require.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := writeConfig(t, `
server:
  name: partial
`)

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "partial", cfg.Server.Name)
		require.Equal(t, DefaultMaxLineBytes, cfg.MaxLineBytes)
		require.Equal(t, "text", cfg.Log.Format)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed YAML", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [unclosed"))
		require.Error(t, err)
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		_, err := Load(writeConfig(t, "max_line_bytes: -1"))
		require.ErrorContains(t, err, "max_line_bytes")

		_, err = Load(writeConfig(t, "log:\n  format: xml"))
		require.ErrorContains(t, err, "log.format")

		_, err = Load(writeConfig(t, `server: {name: "", version: "1"}`))
		require.ErrorContains(t, err, "server.name")
	})
}

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"DEBUG":   slog.LevelDebug,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}

	for name, want := range cases {
		cfg := Default()
		cfg.Log.Level = name
		require.Equal(t, want, cfg.LogLevel(), name)
	}
}
