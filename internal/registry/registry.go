// Package registry is the concurrent store of name→tool mappings.
//
// Unary and streaming tools share a single map with a kind tag per entry,
// so a name resolves to exactly one underlying implementation for the
// registry's lifetime. Lookups run under a read lock; registration and
// removal take the write lock briefly. Resolution never executes the tool
// and no lock is held across execution, so a slow call cannot block
// registry reads or writes for unrelated calls.
package registry

import (
	"context"
	"sort"
	"sync"

	errs "github.com/wagiedev/mcp-toolserver-go/internal/errors"
	"github.com/wagiedev/mcp-toolserver-go/internal/security"
	"github.com/wagiedev/mcp-toolserver-go/internal/tool"
)

type kind int

const (
	kindUnary kind = iota
	kindStreaming
)

type entry struct {
	kind      kind
	unary     tool.Tool
	streaming tool.StreamingTool
}

func (e entry) metadata() tool.Metadata {
	if e.kind == kindStreaming {
		return e.streaming.Metadata()
	}

	return e.unary.Metadata()
}

// Registry maps tool names to registered implementations. Instances are
// constructed explicitly and owned by the server; there is no package-level
// registry.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		tools: make(map[string]entry, 8),
	}
}

// RegisterTool registers a unary tool under name. Registering a name that
// already exists is an error, not an overwrite; the first registration
// stays intact.
func (r *Registry) RegisterTool(name string, t tool.Tool) error {
	if err := security.ValidateToolName(name); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; exists {
		return &errs.DuplicateToolError{Name: name}
	}

	r.tools[name] = entry{kind: kindUnary, unary: t}

	return nil
}

// RegisterStreamingTool registers a streaming tool under name. Duplicate
// names are rejected regardless of which kind holds the name.
func (r *Registry) RegisterStreamingTool(name string, t tool.StreamingTool) error {
	if err := security.ValidateToolName(name); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; exists {
		return &errs.DuplicateToolError{Name: name}
	}

	r.tools[name] = entry{kind: kindStreaming, streaming: t}

	return nil
}

// GetTool resolves the unary tool registered under name without executing
// it.
func (r *Registry) GetTool(name string) (tool.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.tools[name]
	if !ok || e.kind != kindUnary {
		return nil, &errs.ToolNotFoundError{Name: name}
	}

	return e.unary, nil
}

// GetStreamingTool resolves the streaming tool registered under name
// without executing it.
func (r *Registry) GetStreamingTool(name string) (tool.StreamingTool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.tools[name]
	if !ok || e.kind != kindStreaming {
		return nil, &errs.ToolNotFoundError{Name: name}
	}

	return e.streaming, nil
}

// Execute resolves and runs the unary tool registered under name. The
// tool's own error is propagated untouched. The registry lock is released
// before the tool runs.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (*tool.Response, error) {
	t, err := r.GetTool(name)
	if err != nil {
		return nil, err
	}

	return t.Execute(ctx, args)
}

// ExecuteStreaming resolves and starts the streaming tool registered under
// name, returning the stream for the caller to drain.
func (r *Registry) ExecuteStreaming(ctx context.Context, name string, args map[string]any) (tool.ChunkStream, error) {
	t, err := r.GetStreamingTool(name)
	if err != nil {
		return nil, err
	}

	return t.ExecuteStreaming(ctx, args)
}

// ListTools returns the metadata of every registered tool, both kinds,
// ordered by name so a given registry snapshot lists stably.
func (r *Registry) ListTools() []tool.Metadata {
	r.mu.RLock()

	metas := make([]tool.Metadata, 0, len(r.tools))
	for _, e := range r.tools {
		metas = append(metas, e.metadata())
	}

	r.mu.RUnlock()

	sort.Slice(metas, func(i, j int) bool { return metas[i].Name < metas[j].Name })

	return metas
}

// GetToolMetadata returns the metadata of the tool registered under name.
func (r *Registry) GetToolMetadata(name string) (tool.Metadata, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.tools[name]
	if !ok {
		return tool.Metadata{}, &errs.ToolNotFoundError{Name: name}
	}

	return e.metadata(), nil
}

// HasTool reports whether any tool is registered under name.
func (r *Registry) HasTool(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.tools[name]

	return ok
}

// UnregisterTool removes the tool registered under name. Removing a
// missing name is a no-op success, unlike duplicate registration.
func (r *Registry) UnregisterTool(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tools, name)
}

// Clear removes every registered tool.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.tools)
}

// ToolCount returns the number of registered tools.
func (r *Registry) ToolCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tools)
}
