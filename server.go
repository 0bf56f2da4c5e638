package toolserver

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/mcp-toolserver-go/internal/config"
	"github.com/wagiedev/mcp-toolserver-go/internal/dispatch"
	"github.com/wagiedev/mcp-toolserver-go/internal/metrics"
	"github.com/wagiedev/mcp-toolserver-go/internal/protocol"
	"github.com/wagiedev/mcp-toolserver-go/internal/registry"
	"github.com/wagiedev/mcp-toolserver-go/internal/sampling"
	"github.com/wagiedev/mcp-toolserver-go/internal/schema"
	"github.com/wagiedev/mcp-toolserver-go/internal/security"
	"github.com/wagiedev/mcp-toolserver-go/internal/stream"
)

// Server hosts a tool registry and serves JSON-RPC connections over
// newline-delimited JSON streams. Tool registration and Serve may be called
// from different goroutines; the registry and validator are shared across
// all connections.
type Server struct {
	log          *slog.Logger
	registry     *registry.Registry
	validator    *schema.Validator
	metrics      *metrics.ToolMetrics
	sampling     sampling.Handler
	resources    dispatch.ResourceProvider
	info         protocol.ServerInfo
	maxLineBytes int
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger. The default discards all output.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithSampling wires a sampling back-end. Without one, sampling requests
// are answered with a not-configured error.
func WithSampling(h SamplingHandler) Option {
	return func(s *Server) {
		s.sampling = h
	}
}

// WithResources wires a resource provider. Without one, resources/list is
// answered with a not-configured error.
func WithResources(p ResourceProvider) Option {
	return func(s *Server) {
		s.resources = p
	}
}

// WithServerInfo sets the name and version reported during initialize.
func WithServerInfo(name, version string) Option {
	return func(s *Server) {
		s.info = protocol.ServerInfo{Name: name, Version: version}
	}
}

// WithMaxLineBytes bounds the size of a single inbound message.
func WithMaxLineBytes(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxLineBytes = n
		}
	}
}

// New creates a server with an empty registry.
func New(opts ...Option) *Server {
	s := &Server{
		log:          NopLogger(),
		registry:     registry.New(),
		validator:    schema.New(),
		metrics:      metrics.New(),
		info:         protocol.ServerInfo{Name: "mcp-toolserver", Version: protocol.Version},
		maxLineBytes: config.DefaultMaxLineBytes,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// RegisterTool registers a unary tool under its metadata name and compiles
// its input schema. Registration is atomic: if the schema fails to compile
// the tool is not registered.
func (s *Server) RegisterTool(t Tool) error {
	md := t.Metadata()

	if err := s.registry.RegisterTool(md.Name, t); err != nil {
		return err
	}

	if err := s.validator.Register(md.Name, md.InputSchema); err != nil {
		s.registry.UnregisterTool(md.Name)

		return err
	}

	s.log.Info("Registered tool", "tool", md.Name, "version", md.Version)

	return nil
}

// RegisterStreamingTool registers a streaming tool under its metadata name
// and compiles its input schema, with the same atomicity as RegisterTool.
func (s *Server) RegisterStreamingTool(t StreamingTool) error {
	md := t.Metadata()

	if err := s.registry.RegisterStreamingTool(md.Name, t); err != nil {
		return err
	}

	if err := s.validator.Register(md.Name, md.InputSchema); err != nil {
		s.registry.UnregisterTool(md.Name)

		return err
	}

	s.log.Info("Registered streaming tool", "tool", md.Name, "version", md.Version)

	return nil
}

// UnregisterTool removes a tool and its schema. Removing a missing name is
// a no-op.
func (s *Server) UnregisterTool(name string) {
	s.registry.UnregisterTool(name)
	s.validator.Unregister(name)
}

// ListTools returns the metadata of every registered tool, ordered by name.
func (s *Server) ListTools() []ToolMetadata {
	return s.registry.ListTools()
}

// HasTool reports whether a tool is registered under name.
func (s *Server) HasTool(name string) bool {
	return s.registry.HasTool(name)
}

// ToolCount returns the number of registered tools.
func (s *Server) ToolCount() int {
	return s.registry.ToolCount()
}

// Stats returns a snapshot of tool execution metrics across all
// connections.
func (s *Server) Stats() Stats {
	return s.metrics.Stats()
}

// Serve reads newline-delimited JSON-RPC messages from r until EOF or ctx
// cancellation, handling each message in its own goroutine and writing
// responses to w. Responses may interleave with later requests' responses;
// clients match on id. Serve returns when the reader is exhausted and all
// in-flight requests have finished, or on the first write failure.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	connID := ulid.Make().String()
	log := s.log.With("component", "server", "conn", connID)

	out := stream.NewLineWriter(w)
	d := dispatch.New(dispatch.Config{
		Log:       s.log.With("conn", connID),
		Registry:  s.registry,
		Validator: s.validator,
		Metrics:   s.metrics,
		Sampling:  s.sampling,
		Resources: s.resources,
		Info:      s.info,
	}, out)

	log.Info("Connection open")

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), s.maxLineBytes)

	g, gctx := errgroup.WithContext(ctx)

	for scanner.Scan() {
		if gctx.Err() != nil {
			break
		}

		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		// The scanner caps lines at maxLineBytes; this guard stays in case
		// the two bounds ever diverge.
		if err := security.CheckMessageSize(len(raw), s.maxLineBytes); err != nil {
			log.Warn("Dropping oversized message", "size", len(raw))

			continue
		}

		// The scanner reuses its buffer on the next Scan.
		line := make([]byte, len(raw))
		copy(line, raw)

		g.Go(func() error {
			return d.HandleMessage(gctx, line)
		})
	}

	scanErr := scanner.Err()
	waitErr := g.Wait()

	log.Info("Connection closed", "scan_error", scanErr != nil)

	if scanErr != nil {
		return fmt.Errorf("read connection: %w", scanErr)
	}

	return waitErr
}
