package tool

import (
	"context"
	"iter"
)

// Metadata describes a registered tool. It is immutable once registered.
type Metadata struct {
	Name        string
	Description string
	InputSchema map[string]any
	Version     string
}

// Response is the terminal result of a unary tool call. IsError signals an
// application-level failure distinct from a protocol error.
type Response struct {
	Content string
	IsError bool
}

// ChunkStream is a lazy, finite, non-restartable sequence of content
// fragments. Each element carries either a fragment or the tool's error;
// producers stop when the yield returns false or their context is
// cancelled. A stream is consumed exactly once per call.
type ChunkStream = iter.Seq2[string, error]

// Tool is a unary tool invocable via tools/call.
//
// Implementations must be safe for concurrent use: the same registered
// instance may be invoked by independent requests at once.
type Tool interface {
	// Execute runs the tool. A returned error is the tool's own reported
	// failure; it surfaces as an is_error result, not a protocol error.
	Execute(ctx context.Context, args map[string]any) (*Response, error)

	// Metadata returns the tool's immutable description.
	Metadata() Metadata
}

// StreamingTool is a tool that produces its output incrementally.
type StreamingTool interface {
	// ExecuteStreaming starts the tool and returns its chunk stream. The
	// context is the cancellation signal for the stream: producers must
	// stop yielding and release resources when it is done.
	ExecuteStreaming(ctx context.Context, args map[string]any) (ChunkStream, error)

	// Metadata returns the tool's immutable description.
	Metadata() Metadata
}

// InputValidator is optionally implemented by tools that run their own
// argument checks as a second line of defense. The dispatcher runs the
// schema validator first.
type InputValidator interface {
	ValidateInput(args map[string]any) error
}
