// Package toolserver implements a JSON-RPC 2.0 tool server speaking
// newline-delimited JSON over a byte stream, typically stdin/stdout.
//
// A server owns a registry of unary and streaming tools, validates every
// tools/call against the tool's registered JSON Schema before any tool code
// runs, and serves the initialize / tools/list / tools/call handshake plus
// optional resources/list and sampling methods when the matching
// collaborators are configured.
//
// # Basic Usage
//
//	srv := toolserver.New(
//	    toolserver.WithServerInfo("my-server", "1.0.0"),
//	)
//	if err := srv.RegisterTool(myTool); err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
//
// Tools implement the Tool interface for request/response calls or
// StreamingTool for incremental output. Streaming results go out as ordered
// stream_chunk frames followed by exactly one stream_complete frame, or one
// error frame if the tool fails mid-stream.
//
// Requests on one connection are handled concurrently; responses carry the
// request id, so clients must match on id rather than arrival order.
package toolserver
