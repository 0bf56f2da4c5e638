// Package stream frames outbound messages and drains streaming tool
// responses into ordered wire frames.
package stream

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/wagiedev/mcp-toolserver-go/internal/protocol"
)

// LineWriter writes newline-delimited JSON messages to a shared writer.
// Unary responses and stream frames from concurrent requests go through
// the same LineWriter; the mutex keeps messages whole and each message is
// flushed before the lock is released.
type LineWriter struct {
	mu sync.Mutex
	bw *bufio.Writer
}

// NewLineWriter wraps w for framed output.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{
		bw: bufio.NewWriter(w),
	}
}

// WriteResponse encodes resp, appends the line delimiter, and flushes.
func (lw *LineWriter) WriteResponse(resp *protocol.Response) error {
	data, err := protocol.Encode(resp)
	if err != nil {
		return err
	}

	lw.mu.Lock()
	defer lw.mu.Unlock()

	if _, err := lw.bw.Write(data); err != nil {
		return fmt.Errorf("write response: %w", err)
	}

	if err := lw.bw.WriteByte('\n'); err != nil {
		return fmt.Errorf("write delimiter: %w", err)
	}

	if err := lw.bw.Flush(); err != nil {
		return fmt.Errorf("flush response: %w", err)
	}

	return nil
}
