package stream

import (
	"context"
	"encoding/json"
	"log/slog"

	errs "github.com/wagiedev/mcp-toolserver-go/internal/errors"
	"github.com/wagiedev/mcp-toolserver-go/internal/protocol"
	"github.com/wagiedev/mcp-toolserver-go/internal/tool"
)

// Encoder turns a chunk stream into framed wire messages.
type Encoder struct {
	log *slog.Logger
	w   *LineWriter
}

// NewEncoder creates an encoder writing frames through w.
func NewEncoder(log *slog.Logger, w *LineWriter) *Encoder {
	return &Encoder{
		log: log.With("component", "stream"),
		w:   w,
	}
}

// Drain consumes the stream once, in order, emitting one chunk frame per
// item with indices starting at 0. On exhaustion it emits exactly one
// completion frame; if an item carries the tool's error it emits exactly
// one error frame and stops pulling further items. Completion and error
// frames are mutually exclusive and exactly one occurs unless the drain is
// aborted by cancellation or a write failure.
//
// One chunk is awaited at a time and each frame is flushed before the next
// item is pulled, so the stream's own pacing is the backpressure. The
// returned error is transport-level (write failure or cancellation), never
// the tool's; sent reports how many chunk frames went out and failed
// whether the stream terminated with an error frame.
func (e *Encoder) Drain(ctx context.Context, id json.RawMessage, chunks tool.ChunkStream) (sent int, failed bool, err error) {
	for content, chunkErr := range chunks {
		if ctx.Err() != nil {
			e.log.Debug("Stream drain cancelled", "chunks_sent", sent)

			return sent, false, errs.ErrStreamCancelled
		}

		if chunkErr != nil {
			e.log.Debug("Stream produced error", "chunks_sent", sent, "error", chunkErr)

			if werr := e.w.WriteResponse(protocol.NewStreamErrorFrame(id, chunkErr.Error())); werr != nil {
				return sent, true, werr
			}

			return sent, true, nil
		}

		if werr := e.w.WriteResponse(protocol.NewChunkFrame(id, sent, content)); werr != nil {
			e.log.Warn("Stream write failed", "chunks_sent", sent, "error", werr)

			return sent, false, werr
		}

		sent++
	}

	if ctx.Err() != nil {
		e.log.Debug("Stream drain cancelled before completion", "chunks_sent", sent)

		return sent, false, errs.ErrStreamCancelled
	}

	if werr := e.w.WriteResponse(protocol.NewCompletionFrame(id)); werr != nil {
		return sent, false, werr
	}

	return sent, false, nil
}
