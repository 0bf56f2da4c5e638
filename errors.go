package toolserver

import (
	errs "github.com/wagiedev/mcp-toolserver-go/internal/errors"
)

// Re-export error types from internal/errors

// ToolServerError is the base interface for all server errors.
type ToolServerError = errs.ToolServerError

// DuplicateToolError indicates a tool name is already registered.
type DuplicateToolError = errs.DuplicateToolError

// ToolNotFoundError indicates no tool is registered under the requested
// name.
type ToolNotFoundError = errs.ToolNotFoundError

// NoSchemaError indicates validation was requested for a tool without a
// registered schema.
type NoSchemaError = errs.NoSchemaError

// SchemaCompileError indicates a tool's input schema failed to compile at
// registration time.
type SchemaCompileError = errs.SchemaCompileError

// ValidationError indicates tool-call arguments failed schema validation.
type ValidationError = errs.ValidationError

// ToolExecutionError indicates a tool reported a failure while executing.
type ToolExecutionError = errs.ToolExecutionError

// Sentinel errors.
var (
	// ErrEmptyToolName indicates a registration attempt with an empty name.
	ErrEmptyToolName = errs.ErrEmptyToolName

	// ErrStreamCancelled indicates a stream was stopped by context
	// cancellation before it produced a terminal frame.
	ErrStreamCancelled = errs.ErrStreamCancelled

	// ErrSamplingNotConfigured indicates no sampling back-end is configured.
	ErrSamplingNotConfigured = errs.ErrSamplingNotConfigured

	// ErrResourcesNotConfigured indicates no resource provider is
	// configured.
	ErrResourcesNotConfigured = errs.ErrResourcesNotConfigured
)
