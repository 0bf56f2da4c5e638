// Package dispatch is the per-connection request state machine: decode,
// validate, resolve, execute, respond.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	errs "github.com/wagiedev/mcp-toolserver-go/internal/errors"
	"github.com/wagiedev/mcp-toolserver-go/internal/metrics"
	"github.com/wagiedev/mcp-toolserver-go/internal/protocol"
	"github.com/wagiedev/mcp-toolserver-go/internal/registry"
	"github.com/wagiedev/mcp-toolserver-go/internal/sampling"
	"github.com/wagiedev/mcp-toolserver-go/internal/schema"
	"github.com/wagiedev/mcp-toolserver-go/internal/stream"
	"github.com/wagiedev/mcp-toolserver-go/internal/tool"
)

// ResourceProvider supplies resources/list results. It is an external
// collaborator; when absent the method answers with a structured
// not-configured error.
type ResourceProvider interface {
	ListResources(ctx context.Context) ([]protocol.Resource, error)
}

// Config carries the shared collaborators a dispatcher routes between.
// Registry, Validator, and Metrics are shared across connections; the
// dispatcher itself is per-connection.
type Config struct {
	Log       *slog.Logger
	Registry  *registry.Registry
	Validator *schema.Validator
	Metrics   *metrics.ToolMetrics
	Sampling  sampling.Handler
	Resources ResourceProvider
	Info      protocol.ServerInfo
}

// Dispatcher routes one connection's decoded requests to handlers and
// writes responses and stream frames through a shared LineWriter.
type Dispatcher struct {
	log       *slog.Logger
	registry  *registry.Registry
	validator *schema.Validator
	metrics   *metrics.ToolMetrics
	sampling  sampling.Handler
	resources ResourceProvider
	info      protocol.ServerInfo
	out       *stream.LineWriter
	encoder   *stream.Encoder

	mu          sync.Mutex
	initialized bool
	clientCaps  protocol.ClientCapabilities
}

// New creates a dispatcher for one connection.
func New(cfg Config, out *stream.LineWriter) *Dispatcher {
	log := cfg.Log.With("component", "dispatch")

	return &Dispatcher{
		log:       log,
		registry:  cfg.Registry,
		validator: cfg.Validator,
		metrics:   cfg.Metrics,
		sampling:  cfg.Sampling,
		resources: cfg.Resources,
		info:      cfg.Info,
		out:       out,
		encoder:   stream.NewEncoder(cfg.Log, out),
	}
}

// HandleMessage decodes one wire message and runs it to completion,
// writing the response or stream frames. The returned error is
// transport-level (write failure, cancellation); every protocol, schema,
// and tool failure is answered on the wire and leaves the connection open.
func (d *Dispatcher) HandleMessage(ctx context.Context, raw []byte) error {
	req, perr := protocol.Decode(raw)
	if perr != nil {
		var id json.RawMessage
		if req != nil {
			id = req.ID
		}

		d.log.Debug("Rejected inbound message", "code", perr.Code)

		return d.out.WriteResponse(protocol.NewError(id, perr))
	}

	if req.IsNotification() {
		d.handleNotification(req)

		return nil
	}

	switch req.Method {
	case "initialize":
		return d.out.WriteResponse(d.handleInitialize(req))

	case "tools/list":
		return d.out.WriteResponse(d.handleToolsList(req))

	case "tools/call":
		return d.handleToolCall(ctx, req)

	case "resources/list":
		return d.out.WriteResponse(d.handleResourcesList(ctx, req))

	case "sampling":
		return d.out.WriteResponse(d.handleSampling(ctx, req))

	default:
		d.log.Debug("Method not found", "method", req.Method)

		return d.out.WriteResponse(protocol.NewError(req.ID, protocol.MethodNotFound()))
	}
}

// handleNotification drops notifications after logging; per JSON-RPC 2.0
// they never get a response.
func (d *Dispatcher) handleNotification(req *protocol.Request) {
	switch req.Method {
	case "notifications/initialized":
		d.log.Debug("Client confirmed initialization")
	default:
		d.log.Debug("Ignoring notification", "method", req.Method)
	}
}

// handleInitialize negotiates capabilities. The first call captures the
// client's capability set for the connection's lifetime; repeat calls get
// the same answer and change nothing, in particular nothing in the
// registry.
func (d *Dispatcher) handleInitialize(req *protocol.Request) *protocol.Response {
	var params protocol.InitializeParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return protocol.NewError(req.ID, protocol.InvalidParams())
		}
	}

	d.mu.Lock()
	if !d.initialized {
		d.initialized = true
		d.clientCaps = params.Capabilities

		d.log.Info("Connection initialized",
			"client", params.ClientInfo.Name,
			"client_version", params.ClientInfo.Version,
			"protocol_version", params.ProtocolVersion,
		)
	} else {
		d.log.Debug("Repeated initialize accepted as no-op")
	}
	d.mu.Unlock()

	return protocol.NewResult(req.ID, protocol.InitializeResult{
		ProtocolVersion: protocol.Version,
		Capabilities:    d.serverCapabilities(),
		ServerInfo:      d.info,
	})
}

// serverCapabilities reflects which collaborators are actually wired in.
func (d *Dispatcher) serverCapabilities() protocol.ServerCapabilities {
	listChanged := true
	caps := protocol.ServerCapabilities{
		Tools: &protocol.ToolsCapability{ListChanged: &listChanged},
	}

	if d.resources != nil {
		subscribe := false
		caps.Resources = &protocol.ResourceCapability{Subscribe: &subscribe}
	}

	if d.sampling != nil {
		enabled := true
		caps.Sampling = &enabled
	}

	return caps
}

// Initialized reports whether this connection has completed the handshake.
func (d *Dispatcher) Initialized() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.initialized
}

// ClientCapabilities returns the capability set negotiated at initialize.
func (d *Dispatcher) ClientCapabilities() protocol.ClientCapabilities {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.clientCaps
}

func (d *Dispatcher) handleToolsList(req *protocol.Request) *protocol.Response {
	metas := d.registry.ListTools()

	defs := make([]protocol.ToolDefinition, 0, len(metas))
	for _, md := range metas {
		defs = append(defs, protocol.ToolDefinition{
			Name:        md.Name,
			Description: md.Description,
			InputSchema: md.InputSchema,
			Version:     md.Version,
		})
	}

	d.log.Debug("Listed tools", "count", len(defs))

	return protocol.NewResult(req.ID, protocol.ToolListResult{Tools: defs})
}

func (d *Dispatcher) handleToolCall(ctx context.Context, req *protocol.Request) error {
	var params protocol.ToolCallParams
	if len(req.Params) == 0 {
		return d.out.WriteResponse(protocol.NewError(req.ID, protocol.InvalidParams()))
	}

	if err := json.Unmarshal(req.Params, &params); err != nil || params.Name == "" {
		return d.out.WriteResponse(protocol.NewError(req.ID, protocol.InvalidParams()))
	}

	args := params.Arguments
	if args == nil {
		args = map[string]any{}
	}

	// Validation gate runs before any tool code, so a rejected call leaves
	// no partial side effects.
	if err := d.validator.Validate(params.Name, args); err != nil {
		var noSchema *errs.NoSchemaError
		if errors.As(err, &noSchema) && !d.registry.HasTool(params.Name) {
			d.log.Debug("Tool not found", "tool", params.Name)

			return d.out.WriteResponse(protocol.NewError(req.ID, protocol.ToolNotFound(params.Name)))
		}

		d.log.Debug("Validation rejected call", "tool", params.Name, "error", err)

		return d.out.WriteResponse(protocol.NewError(req.ID, protocol.ValidationFailed(err.Error())))
	}

	if t, err := d.registry.GetTool(params.Name); err == nil {
		return d.callUnary(ctx, req, params.Name, t, args)
	}

	st, err := d.registry.GetStreamingTool(params.Name)
	if err != nil {
		d.log.Debug("Tool not found", "tool", params.Name)

		return d.out.WriteResponse(protocol.NewError(req.ID, protocol.ToolNotFound(params.Name)))
	}

	return d.callStreaming(ctx, req, params.Name, st, args)
}

func (d *Dispatcher) callUnary(ctx context.Context, req *protocol.Request, name string, t tool.Tool, args map[string]any) error {
	// Second line of defense: a tool's own input check, if it has one.
	if v, ok := t.(tool.InputValidator); ok {
		if err := v.ValidateInput(args); err != nil {
			d.log.Debug("Tool rejected its input", "tool", name, "error", err)

			return d.out.WriteResponse(protocol.NewError(req.ID, protocol.ValidationFailed(err.Error())))
		}
	}

	d.log.Info("Executing tool", "tool", name)

	start := time.Now()

	resp, err := t.Execute(ctx, args)
	if err != nil {
		// The tool's own failure is still a valid protocol-level result;
		// only the content carries the tool's message.
		execErr := &errs.ToolExecutionError{Tool: name, Err: err}
		d.metrics.RecordError()
		d.log.Warn("Tool execution failed", "error", execErr)

		return d.out.WriteResponse(protocol.NewResult(req.ID, protocol.ToolCallResult{
			Content: err.Error(),
			IsError: true,
		}))
	}

	if resp.IsError {
		d.metrics.RecordError()
	} else {
		d.metrics.RecordSuccess(time.Since(start))
	}

	return d.out.WriteResponse(protocol.NewResult(req.ID, protocol.ToolCallResult{
		Content: resp.Content,
		IsError: resp.IsError,
	}))
}

func (d *Dispatcher) callStreaming(ctx context.Context, req *protocol.Request, name string, t tool.StreamingTool, args map[string]any) error {
	d.log.Info("Executing streaming tool", "tool", name)

	start := time.Now()

	chunks, err := t.ExecuteStreaming(ctx, args)
	if err != nil {
		// Failure before the stream starts still terminates with exactly
		// one error frame.
		execErr := &errs.ToolExecutionError{Tool: name, Err: err}
		d.metrics.RecordError()
		d.log.Warn("Streaming tool failed to start", "error", execErr)

		return d.out.WriteResponse(protocol.NewStreamErrorFrame(req.ID, err.Error()))
	}

	sent, failed, err := d.encoder.Drain(ctx, req.ID, chunks)
	if err != nil {
		d.metrics.RecordError()

		return err
	}

	if failed {
		d.metrics.RecordError()
	} else {
		d.metrics.RecordSuccess(time.Since(start))
	}

	d.log.Debug("Stream finished", "tool", name, "chunks", sent, "failed", failed)

	return nil
}

func (d *Dispatcher) handleResourcesList(ctx context.Context, req *protocol.Request) *protocol.Response {
	if d.resources == nil {
		return protocol.NewError(req.ID, notConfiguredError(errs.ErrResourcesNotConfigured))
	}

	resources, err := d.resources.ListResources(ctx)
	if err != nil {
		d.log.Error("Resource provider failed", "error", err)

		return protocol.NewError(req.ID, protocol.InternalError().WithData(err.Error()))
	}

	if resources == nil {
		resources = []protocol.Resource{}
	}

	return protocol.NewResult(req.ID, protocol.ResourceListResult{Resources: resources})
}

func (d *Dispatcher) handleSampling(ctx context.Context, req *protocol.Request) *protocol.Response {
	var params protocol.SamplingParams
	if len(req.Params) == 0 {
		return protocol.NewError(req.ID, protocol.InvalidParams())
	}

	if err := json.Unmarshal(req.Params, &params); err != nil {
		return protocol.NewError(req.ID, protocol.InvalidParams())
	}

	if err := sampling.ValidateRequest(&params); err != nil {
		return protocol.NewError(req.ID, protocol.InvalidParams().WithData(err.Error()))
	}

	if d.sampling == nil {
		d.log.Warn("Sampling request received but no back-end configured",
			"error", errs.ErrSamplingNotConfigured)

		return protocol.NewError(req.ID, notConfiguredError(errs.ErrSamplingNotConfigured))
	}

	result, err := d.sampling.CreateMessage(ctx, &params)
	if err != nil {
		d.log.Error("Sampling back-end failed", "error", err)

		return protocol.NewError(req.ID, protocol.InternalError().WithData(err.Error()))
	}

	return protocol.NewResult(req.ID, result)
}

// notConfiguredError translates a missing-collaborator sentinel into its
// wire error.
func notConfiguredError(err error) *protocol.Error {
	switch {
	case errors.Is(err, errs.ErrSamplingNotConfigured):
		return protocol.NotConfigured("Sampling")
	case errors.Is(err, errs.ErrResourcesNotConfigured):
		return protocol.NotConfigured("Resources")
	default:
		return protocol.InternalError().WithData(err.Error())
	}
}
