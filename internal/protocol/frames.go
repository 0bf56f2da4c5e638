package protocol

import "encoding/json"

// Stream frame discriminators carried in result.type.
const (
	FrameTypeChunk    = "stream_chunk"
	FrameTypeComplete = "stream_complete"
)

// StreamChunk is one ordered fragment of a streamed response.
type StreamChunk struct {
	Type    string `json:"type"`
	Index   int    `json:"index"`
	Content string `json:"content"`
}

// StreamComplete is the terminal frame of a successful stream.
type StreamComplete struct {
	Type string `json:"type"`
}

// NewChunkFrame builds a chunk frame tied to the originating request id.
func NewChunkFrame(id json.RawMessage, index int, content string) *Response {
	return NewResult(id, StreamChunk{Type: FrameTypeChunk, Index: index, Content: content})
}

// NewCompletionFrame builds the terminal frame of a successful stream.
func NewCompletionFrame(id json.RawMessage) *Response {
	return NewResult(id, StreamComplete{Type: FrameTypeComplete})
}

// NewStreamErrorFrame builds the terminal frame of a failed stream. The
// tool's failure message rides on an internal-error object, matching the
// unary error shape.
func NewStreamErrorFrame(id json.RawMessage, message string) *Response {
	return NewError(id, &Error{Code: CodeInternalError, Message: message})
}
