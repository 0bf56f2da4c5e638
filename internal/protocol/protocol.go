package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Version is the protocol version echoed during capability negotiation.
const Version = "1.0.0"

// JSONRPCVersion is the fixed envelope version for every message.
const JSONRPCVersion = "2.0"

// Reserved JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Domain error codes, allocated in the implementation-defined server range
// outside the reserved band.
const (
	CodeToolNotFound  = -32000
	CodeValidation    = -32001
	CodeNotConfigured = -32002
)

// Request is a JSON-RPC 2.0 request envelope. ID is kept raw so string and
// numeric ids are echoed back verbatim; a missing ID marks a notification.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the request expects no response.
func (r *Request) IsNotification() bool {
	return len(r.ID) == 0 || bytes.Equal(r.ID, []byte("null"))
}

// Response is a JSON-RPC 2.0 response envelope. Exactly one of Result and
// Error is set; ID is omitted only when the source request had none.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// WithData returns a copy of the error carrying additional detail.
func (e *Error) WithData(data any) *Error {
	return &Error{Code: e.Code, Message: e.Message, Data: data}
}

// ParseError reports that invalid JSON was received.
func ParseError() *Error {
	return &Error{Code: CodeParseError, Message: "Parse error"}
}

// InvalidRequest reports that the JSON sent is not a valid request object.
func InvalidRequest() *Error {
	return &Error{Code: CodeInvalidRequest, Message: "Invalid Request"}
}

// MethodNotFound reports that the method does not exist.
func MethodNotFound() *Error {
	return &Error{Code: CodeMethodNotFound, Message: "Method not found"}
}

// InvalidParams reports invalid method parameters.
func InvalidParams() *Error {
	return &Error{Code: CodeInvalidParams, Message: "Invalid params"}
}

// InternalError reports an internal server failure.
func InternalError() *Error {
	return &Error{Code: CodeInternalError, Message: "Internal error"}
}

// ToolNotFound reports that no tool is registered under name.
func ToolNotFound(name string) *Error {
	return &Error{Code: CodeToolNotFound, Message: fmt.Sprintf("Tool not found: %s", name)}
}

// ValidationFailed reports that tool-call arguments failed schema validation.
// The failing constraint is carried in Data when available.
func ValidationFailed(detail string) *Error {
	return &Error{Code: CodeValidation, Message: "Validation failed", Data: detail}
}

// NotConfigured reports that a collaborator (sampling, resources) is not
// wired into this server.
func NotConfigured(what string) *Error {
	return &Error{Code: CodeNotConfigured, Message: fmt.Sprintf("%s not configured", what)}
}

// Decode parses a wire message into a Request.
//
// Malformed JSON yields a parse error; an envelope without the jsonrpc
// version or a method yields an invalid-request error together with the
// partially decoded request so its id can still be echoed. Errors are
// returned as values, never panics.
func Decode(data []byte) (*Request, *Error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, ParseError()
	}

	if req.JSONRPC != JSONRPCVersion || req.Method == "" {
		return &req, InvalidRequest()
	}

	return &req, nil
}

// Encode serializes a response deterministically.
func Encode(resp *Response) ([]byte, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}

	return data, nil
}

// NewResult builds a success response echoing the request id.
func NewResult(id json.RawMessage, result any) *Response {
	return &Response{JSONRPC: JSONRPCVersion, ID: id, Result: result}
}

// NewError builds an error response echoing the request id.
func NewError(id json.RawMessage, err *Error) *Response {
	return &Response{JSONRPC: JSONRPCVersion, ID: id, Error: err}
}
