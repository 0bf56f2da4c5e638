// Command toolserver serves the built-in tools over stdin/stdout.
//
// Log output goes to stderr; stdout carries only wire messages.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	toolserver "github.com/wagiedev/mcp-toolserver-go"
	"github.com/wagiedev/mcp-toolserver-go/internal/config"
	"github.com/wagiedev/mcp-toolserver-go/internal/tools"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "toolserver:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "path to YAML config file")
		logLevel   = flag.String("log-level", "", "override log level (debug, info, warn, error)")
	)

	flag.Parse()

	cfg := config.Default()

	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}

		cfg = loaded
	}

	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	log := newLogger(cfg)

	srv := toolserver.New(
		toolserver.WithLogger(log),
		toolserver.WithServerInfo(cfg.Server.Name, cfg.Server.Version),
		toolserver.WithMaxLineBytes(cfg.MaxLineBytes),
	)

	if err := registerTools(srv, cfg.Tools); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting server",
		"name", cfg.Server.Name,
		"version", cfg.Server.Version,
		"tools", srv.ToolCount(),
	)

	return srv.Serve(ctx, os.Stdin, os.Stdout)
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

func registerTools(srv *toolserver.Server, names []string) error {
	for _, name := range names {
		var err error

		switch name {
		case "echo":
			err = srv.RegisterTool(tools.NewEcho())
		case "tail":
			err = srv.RegisterStreamingTool(tools.NewTail())
		default:
			err = fmt.Errorf("unknown tool in config: %q", name)
		}

		if err != nil {
			return err
		}
	}

	return nil
}
