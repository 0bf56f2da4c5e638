package toolserver

import (
	"github.com/wagiedev/mcp-toolserver-go/internal/dispatch"
	"github.com/wagiedev/mcp-toolserver-go/internal/metrics"
	"github.com/wagiedev/mcp-toolserver-go/internal/protocol"
	"github.com/wagiedev/mcp-toolserver-go/internal/sampling"
	"github.com/wagiedev/mcp-toolserver-go/internal/tool"
)

// Re-export types from internal packages

// ===== Tools =====

// Tool is a unary tool invocable via tools/call.
type Tool = tool.Tool

// StreamingTool is a tool that produces its output incrementally.
type StreamingTool = tool.StreamingTool

// ToolMetadata describes a registered tool.
type ToolMetadata = tool.Metadata

// ToolResponse is the terminal result of a unary tool call.
type ToolResponse = tool.Response

// ChunkStream is a lazy, finite sequence of streamed content fragments.
type ChunkStream = tool.ChunkStream

// Chunk pairs one content fragment with an optional tool error, for
// channel-fed streams.
type Chunk = tool.Chunk

// ChunksFromSlice adapts a fixed set of fragments into a ChunkStream.
func ChunksFromSlice(chunks []string) ChunkStream {
	return tool.ChunksFromSlice(chunks)
}

// ChunksFromChannel adapts a channel of chunks into a ChunkStream. The
// stream ends when the channel closes or after yielding a chunk that
// carries an error.
func ChunksFromChannel(ch <-chan Chunk) ChunkStream {
	return tool.ChunksFromChannel(ch)
}

// ===== Collaborators =====

// SamplingHandler fulfils validated sampling requests against a model
// back-end.
type SamplingHandler = sampling.Handler

// ResourceProvider supplies resources/list results.
type ResourceProvider = dispatch.ResourceProvider

// ===== Protocol =====

// ServerInfo identifies the server during initialize.
type ServerInfo = protocol.ServerInfo

// Resource describes one entry returned by resources/list.
type Resource = protocol.Resource

// SamplingMessage is one message in a sampling conversation.
type SamplingMessage = protocol.SamplingMessage

// SamplingParams are the params of the sampling method.
type SamplingParams = protocol.SamplingParams

// SamplingResult is the back-end's completion for a sampling request.
type SamplingResult = protocol.SamplingResult

// ===== Metrics =====

// Stats is a point-in-time snapshot of tool execution metrics.
type Stats = metrics.Stats
