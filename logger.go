package toolserver

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards all output. It is the default
// for servers built without WithLogger. When wiring a real logger, send it
// anywhere but the connection's writer: stdout usually carries the wire
// protocol, so cmd/toolserver logs to stderr.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
