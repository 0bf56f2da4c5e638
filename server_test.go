package toolserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wagiedev/mcp-toolserver-go/internal/protocol"
	"github.com/wagiedev/mcp-toolserver-go/internal/tools"
)

// lockedBuffer serializes writes the way a pipe would; Serve handles
// requests concurrently.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *lockedBuffer) bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Bytes()
}

type wireMsg struct {
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *protocol.Error `json:"error"`
}

// byID groups output messages by request id; responses from concurrent
// requests arrive in no particular order.
func byID(t *testing.T, out []byte) map[string][]wireMsg {
	t.Helper()

	msgs := map[string][]wireMsg{}

	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}

		var m wireMsg
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		msgs[string(m.ID)] = append(msgs[string(m.ID)], m)
	}

	require.NoError(t, sc.Err())

	return msgs
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	srv := New(WithServerInfo("test-server", "0.0.1"))
	require.NoError(t, srv.RegisterTool(tools.NewEcho()))
	require.NoError(t, srv.RegisterStreamingTool(tools.NewTail()))

	return srv
}

func TestServeSession(t *testing.T) {
	srv := newTestServer(t)

	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"1.0.0","clientInfo":{"name":"c","version":"1"}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"echo","arguments":{"message":"hello"}}}`,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"tail","arguments":{"text":"x\ny\nz","lines":2}}}`,
		`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"missing","arguments":{}}}`,
	}, "\n") + "\n"

	var out lockedBuffer
	require.NoError(t, srv.Serve(context.Background(), strings.NewReader(input), &out))

	msgs := byID(t, out.bytes())

	t.Run("initialize", func(t *testing.T) {
		require.Len(t, msgs["1"], 1)

		var result protocol.InitializeResult
		require.NoError(t, json.Unmarshal(msgs["1"][0].Result, &result))
		require.Equal(t, "test-server", result.ServerInfo.Name)
	})

	t.Run("notification got no response", func(t *testing.T) {
		require.NotContains(t, msgs, "")
		require.NotContains(t, msgs, "null")
	})

	t.Run("tools listed", func(t *testing.T) {
		require.Len(t, msgs["2"], 1)

		var result protocol.ToolListResult
		require.NoError(t, json.Unmarshal(msgs["2"][0].Result, &result))
		require.Len(t, result.Tools, 2)
	})

	t.Run("unary call answered", func(t *testing.T) {
		require.Len(t, msgs["3"], 1)

		var result protocol.ToolCallResult
		require.NoError(t, json.Unmarshal(msgs["3"][0].Result, &result))
		require.Equal(t, "Echo: hello", result.Content)
	})

	t.Run("streaming call framed and terminated", func(t *testing.T) {
		frames := msgs["4"]
		require.Len(t, frames, 3)

		indices := map[int]string{}
		completions := 0

		for _, f := range frames {
			require.Nil(t, f.Error)

			var chunk protocol.StreamChunk
			require.NoError(t, json.Unmarshal(f.Result, &chunk))

			switch chunk.Type {
			case protocol.FrameTypeChunk:
				indices[chunk.Index] = chunk.Content
			case protocol.FrameTypeComplete:
				completions++
			default:
				t.Fatalf("unexpected frame type %q", chunk.Type)
			}
		}

		require.Equal(t, 1, completions)
		require.Equal(t, map[int]string{0: "y", 1: "z"}, indices)
	})

	t.Run("unknown tool answered with domain error", func(t *testing.T) {
		require.Len(t, msgs["5"], 1)
		require.NotNil(t, msgs["5"][0].Error)
		require.Equal(t, protocol.CodeToolNotFound, msgs["5"][0].Error.Code)
	})
}

func TestServeSurvivesGarbage(t *testing.T) {
	srv := newTestServer(t)

	input := strings.Join([]string{
		`{broken`,
		``,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"echo","arguments":{"message":"alive"}}}`,
	}, "\n") + "\n"

	var out lockedBuffer
	require.NoError(t, srv.Serve(context.Background(), strings.NewReader(input), &out))

	msgs := byID(t, out.bytes())

	require.Len(t, msgs["1"], 1)

	var result protocol.ToolCallResult
	require.NoError(t, json.Unmarshal(msgs["1"][0].Result, &result))
	require.Equal(t, "Echo: alive", result.Content)

	// The parse error went out with a null id.
	var sawParseError bool
	for id, ms := range msgs {
		if id == "1" {
			continue
		}

		for _, m := range ms {
			if m.Error != nil && m.Error.Code == protocol.CodeParseError {
				sawParseError = true
			}
		}
	}

	require.True(t, sawParseError)
}

func TestRegisterToolRollsBackOnBadSchema(t *testing.T) {
	srv := New()

	err := srv.RegisterTool(&badSchemaTool{})
	require.Error(t, err)
	require.False(t, srv.HasTool("bad"))
	require.Zero(t, srv.ToolCount())
}

func TestDuplicateRegistrationAcrossKinds(t *testing.T) {
	srv := newTestServer(t)

	var dup *DuplicateToolError
	require.ErrorAs(t, srv.RegisterTool(tools.NewEcho()), &dup)
	require.ErrorAs(t, srv.RegisterStreamingTool(tools.NewTail()), &dup)
	require.Equal(t, 2, srv.ToolCount())
}

func TestUnregisterTool(t *testing.T) {
	srv := newTestServer(t)

	srv.UnregisterTool("echo")
	require.False(t, srv.HasTool("echo"))
	require.Equal(t, 1, srv.ToolCount())

	// Re-registration after removal succeeds.
	require.NoError(t, srv.RegisterTool(tools.NewEcho()))
}

func TestStatsAcrossServe(t *testing.T) {
	srv := newTestServer(t)

	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"echo","arguments":{"message":"a"}}}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"echo","arguments":{"message":"b"}}}`,
	}, "\n") + "\n"

	var out lockedBuffer
	require.NoError(t, srv.Serve(context.Background(), strings.NewReader(input), &out))

	stats := srv.Stats()
	require.Equal(t, uint64(2), stats.CallCount)
	require.Equal(t, uint64(2), stats.SuccessCount)
	require.Zero(t, stats.ErrorCount)
}

func TestServeStopsOnCancelledContext(t *testing.T) {
	srv := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr, pw := newBlockingReader()
	defer pw.close()

	done := make(chan error, 1)
	go func() {
		var out lockedBuffer
		done <- srv.Serve(ctx, pr, &out)
	}()

	pw.send(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}` + "\n")
	pw.close()

	select {
	case err := <-done:
		// EOF path; handlers saw the cancelled context.
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
}

// ===== fixtures =====

type badSchemaTool struct{}

func (b *badSchemaTool) Metadata() ToolMetadata {
	return ToolMetadata{
		Name:        "bad",
		Version:     "1.0.0",
		InputSchema: map[string]any{"type": make(chan int)},
	}
}

func (b *badSchemaTool) Execute(_ context.Context, _ map[string]any) (*ToolResponse, error) {
	return &ToolResponse{Content: "unreachable"}, nil
}

type blockingReader struct {
	ch   chan string
	rest string
}

type blockingWriter struct {
	ch   chan string
	once sync.Once
}

func newBlockingReader() (*blockingReader, *blockingWriter) {
	ch := make(chan string, 8)

	return &blockingReader{ch: ch}, &blockingWriter{ch: ch}
}

func (r *blockingReader) Read(p []byte) (int, error) {
	if r.rest == "" {
		s, ok := <-r.ch
		if !ok {
			return 0, io.EOF
		}

		r.rest = s
	}

	n := copy(p, r.rest)
	r.rest = r.rest[n:]

	return n, nil
}

func (w *blockingWriter) send(s string) {
	w.ch <- s
}

func (w *blockingWriter) close() {
	w.once.Do(func() { close(w.ch) })
}
