// Package sampling validates model-sampling requests and defines the
// back-end collaborator interface. The server only validates and forwards;
// it never calls a model itself.
package sampling

import (
	"context"
	"fmt"

	"github.com/wagiedev/mcp-toolserver-go/internal/protocol"
)

// Handler fulfils validated sampling requests against a model back-end.
type Handler interface {
	CreateMessage(ctx context.Context, req *protocol.SamplingParams) (*protocol.SamplingResult, error)
}

// ValidateRequest checks the structural shape of a sampling request before
// it is forwarded to any back-end.
func ValidateRequest(req *protocol.SamplingParams) error {
	if req.Model == "" {
		return fmt.Errorf("model name required")
	}

	if req.MaxTokens <= 0 {
		return fmt.Errorf("maxTokens must be > 0")
	}

	if len(req.Messages) == 0 {
		return fmt.Errorf("at least one message required")
	}

	for i, msg := range req.Messages {
		if msg.Role == "" {
			return fmt.Errorf("message %d: role required", i)
		}

		if msg.Content == "" {
			return fmt.Errorf("message %d: content required", i)
		}
	}

	return nil
}

// MockResponse builds a canned completion for tests and wiring checks.
func MockResponse(model, content string) *protocol.SamplingResult {
	return &protocol.SamplingResult{
		Model:      model,
		Content:    content,
		StopReason: "end_turn",
	}
}
