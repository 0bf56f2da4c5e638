package errors

import (
	"errors"
	"fmt"
)

// ToolServerError is the base interface for all server errors.
type ToolServerError interface {
	error
	IsToolServerError() bool
}

// Compile-time verification that all error types implement ToolServerError.
var (
	_ ToolServerError = (*DuplicateToolError)(nil)
	_ ToolServerError = (*ToolNotFoundError)(nil)
	_ ToolServerError = (*NoSchemaError)(nil)
	_ ToolServerError = (*SchemaCompileError)(nil)
	_ ToolServerError = (*ValidationError)(nil)
	_ ToolServerError = (*ToolExecutionError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrEmptyToolName indicates a registration attempt with an empty name.
	ErrEmptyToolName = errors.New("tool name must not be empty")

	// ErrStreamCancelled indicates a streaming drain was stopped by
	// context cancellation before the stream produced a terminal frame.
	ErrStreamCancelled = errors.New("stream cancelled")

	// ErrSamplingNotConfigured indicates no sampling back-end is configured.
	ErrSamplingNotConfigured = errors.New("sampling not configured")

	// ErrResourcesNotConfigured indicates no resource provider is configured.
	ErrResourcesNotConfigured = errors.New("resources not configured")
)

// DuplicateToolError indicates a tool name is already registered.
// The original registration stays intact.
type DuplicateToolError struct {
	Name string
}

func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("tool %q already registered", e.Name)
}

// IsToolServerError implements ToolServerError.
func (e *DuplicateToolError) IsToolServerError() bool { return true }

// ToolNotFoundError indicates no tool is registered under the requested name.
type ToolNotFoundError struct {
	Name string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("tool %q not found", e.Name)
}

// IsToolServerError implements ToolServerError.
func (e *ToolNotFoundError) IsToolServerError() bool { return true }

// NoSchemaError indicates validation was requested for a tool that never
// had a schema registered. Absence of a schema is never treated as success.
type NoSchemaError struct {
	Tool string
}

func (e *NoSchemaError) Error() string {
	return fmt.Sprintf("no schema registered for tool %q", e.Tool)
}

// IsToolServerError implements ToolServerError.
func (e *NoSchemaError) IsToolServerError() bool { return true }

// SchemaCompileError indicates a tool's input schema failed to compile.
// This is a registration-time error; the tool stays unregistered.
type SchemaCompileError struct {
	Tool string
	Err  error
}

func (e *SchemaCompileError) Error() string {
	return fmt.Sprintf("compile schema for tool %q: %v", e.Tool, e.Err)
}

func (e *SchemaCompileError) Unwrap() error {
	return e.Err
}

// IsToolServerError implements ToolServerError.
func (e *SchemaCompileError) IsToolServerError() bool { return true }

// ValidationError indicates tool-call arguments failed schema validation.
type ValidationError struct {
	Tool string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for tool %q: %v", e.Tool, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsToolServerError implements ToolServerError.
func (e *ValidationError) IsToolServerError() bool { return true }

// ToolExecutionError indicates a tool reported a failure while executing.
// It is contained to the call's own response and never terminates the
// connection.
type ToolExecutionError struct {
	Tool string
	Err  error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("tool %q execution failed: %v", e.Tool, e.Err)
}

func (e *ToolExecutionError) Unwrap() error {
	return e.Err
}

// IsToolServerError implements ToolServerError.
func (e *ToolExecutionError) IsToolServerError() bool { return true }
