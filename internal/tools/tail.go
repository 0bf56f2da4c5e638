package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/wagiedev/mcp-toolserver-go/internal/tool"
)

// Tail streams the last lines of a text argument one chunk at a time. It
// exercises the streaming execution path end to end.
type Tail struct{}

// NewTail creates the tail tool.
func NewTail() *Tail {
	return &Tail{}
}

// Metadata describes the tool and its input schema.
func (t *Tail) Metadata() tool.Metadata {
	return tool.Metadata{
		Name:        "tail",
		Description: "Streams the last N lines of the given text",
		Version:     "1.1.0",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{
					"type":        "string",
					"description": "Text to tail",
				},
				"lines": map[string]any{
					"type":        "integer",
					"description": "How many trailing lines to stream",
					"minimum":     1,
				},
			},
			"required": []any{"text"},
		},
	}
}

// ExecuteStreaming yields one chunk per trailing line, honoring ctx between
// chunks.
func (t *Tail) ExecuteStreaming(ctx context.Context, args map[string]any) (tool.ChunkStream, error) {
	text, ok := args["text"].(string)
	if !ok {
		return nil, fmt.Errorf("argument text must be a string")
	}

	n := 10
	if raw, ok := args["lines"]; ok {
		// JSON numbers decode as float64.
		f, ok := raw.(float64)
		if !ok || f < 1 {
			return nil, fmt.Errorf("argument lines must be a positive integer")
		}

		n = int(f)
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	return func(yield func(string, error) bool) {
		for _, line := range lines {
			if ctx.Err() != nil {
				return
			}

			if !yield(line, nil) {
				return
			}
		}
	}, nil
}
