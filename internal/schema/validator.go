// Package schema gates tool execution on compiled JSON Schema validators.
//
// Schemas are compiled once at registration time and reused for every
// subsequent call. Compilation failure is a registration-time error; the
// tool stays unregistered for validation purposes, so later validate calls
// against it fail with a distinct no-schema error rather than silently
// succeeding. Unknown schema keywords are ignored by the underlying
// library, which follows the JSON Schema rule of ignoring unrecognized
// keywords; this permissive behavior is intentional.
package schema

import (
	"encoding/json"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	errs "github.com/wagiedev/mcp-toolserver-go/internal/errors"
)

// Validator compiles and caches one resolved schema per tool name.
type Validator struct {
	mu      sync.RWMutex
	schemas map[string]*jsonschema.Resolved
}

// New creates an empty validator.
func New() *Validator {
	return &Validator{
		schemas: make(map[string]*jsonschema.Resolved, 8),
	}
}

// Register compiles the schema document for toolName and caches the result.
// A compile failure leaves any previous registration for toolName intact.
func (v *Validator) Register(toolName string, schema map[string]any) error {
	data, err := json.Marshal(schema)
	if err != nil {
		return &errs.SchemaCompileError{Tool: toolName, Err: err}
	}

	var s jsonschema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return &errs.SchemaCompileError{Tool: toolName, Err: err}
	}

	resolved, err := s.Resolve(nil)
	if err != nil {
		return &errs.SchemaCompileError{Tool: toolName, Err: err}
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.schemas[toolName] = resolved

	return nil
}

// Validate runs the compiled schema for toolName against input. An unknown
// tool name fails with NoSchemaError; absence of a schema is never success.
func (v *Validator) Validate(toolName string, input any) error {
	v.mu.RLock()
	resolved, ok := v.schemas[toolName]
	v.mu.RUnlock()

	if !ok {
		return &errs.NoSchemaError{Tool: toolName}
	}

	if err := resolved.Validate(input); err != nil {
		return &errs.ValidationError{Tool: toolName, Err: err}
	}

	return nil
}

// Has reports whether a schema is registered for toolName.
func (v *Validator) Has(toolName string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()

	_, ok := v.schemas[toolName]

	return ok
}

// Unregister drops the schema for toolName, if any.
func (v *Validator) Unregister(toolName string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	delete(v.schemas, toolName)
}

// Count returns the number of registered schemas.
func (v *Validator) Count() int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return len(v.schemas)
}
