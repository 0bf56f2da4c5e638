// Package tools holds the built-in tool implementations.
package tools

import (
	"context"
	"fmt"

	"github.com/wagiedev/mcp-toolserver-go/internal/tool"
)

// Echo replies with its message argument. It doubles as the wiring test
// for the unary execution path.
type Echo struct{}

// NewEcho creates the echo tool.
func NewEcho() *Echo {
	return &Echo{}
}

// Metadata describes the tool and its input schema.
func (e *Echo) Metadata() tool.Metadata {
	return tool.Metadata{
		Name:        "echo",
		Description: "Echoes back the provided message",
		Version:     "1.0.0",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"message": map[string]any{
					"type":        "string",
					"description": "Text to echo back",
				},
			},
			"required": []any{"message"},
		},
	}
}

// ValidateInput rejects calls whose message is missing or not a string.
func (e *Echo) ValidateInput(args map[string]any) error {
	v, ok := args["message"]
	if !ok {
		return fmt.Errorf("missing required argument: message")
	}

	if _, ok := v.(string); !ok {
		return fmt.Errorf("argument message must be a string")
	}

	return nil
}

// Execute returns the echoed message.
func (e *Echo) Execute(_ context.Context, args map[string]any) (*tool.Response, error) {
	msg, _ := args["message"].(string)

	return &tool.Response{Content: "Echo: " + msg}, nil
}
