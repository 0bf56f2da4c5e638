package protocol

// ClientCapabilities are the optional features a client announces during
// initialize. They are negotiated once and held for the connection.
type ClientCapabilities struct {
	Sampling  *bool `json:"sampling,omitempty"`
	Resources *bool `json:"resources,omitempty"`
	Caching   *bool `json:"caching,omitempty"`
}

// ToolsCapability describes the server's tool support.
type ToolsCapability struct {
	ListChanged *bool `json:"listChanged,omitempty"`
}

// ResourceCapability describes the server's resource support.
type ResourceCapability struct {
	Subscribe *bool `json:"subscribe,omitempty"`
}

// ServerCapabilities are the features the server announces in the
// initialize response.
type ServerCapabilities struct {
	Tools     *ToolsCapability    `json:"tools,omitempty"`
	Resources *ResourceCapability `json:"resources,omitempty"`
	Sampling  *bool               `json:"sampling,omitempty"`
}

// ClientInfo identifies the connecting client.
type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ServerInfo identifies this server.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// InitializeParams are the params of the initialize method.
type InitializeParams struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ClientCapabilities `json:"capabilities"`
	ClientInfo      ClientInfo         `json:"clientInfo"`
}

// InitializeResult is the result of the initialize method.
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      ServerInfo         `json:"serverInfo"`
}

// ToolDefinition is the client-visible description of a registered tool.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
	Version     string         `json:"version"`
}

// ToolListResult is the result of tools/list.
type ToolListResult struct {
	Tools []ToolDefinition `json:"tools"`
}

// ToolCallParams are the params of tools/call.
type ToolCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// ToolCallResult is the terminal result of a unary tool call. IsError marks
// an application-level failure, which is still a valid protocol result.
type ToolCallResult struct {
	Content string `json:"content"`
	IsError bool   `json:"is_error"`
}

// Resource describes one entry returned by resources/list.
type Resource struct {
	URI      string `json:"uri"`
	Name     string `json:"name,omitempty"`
	MIMEType string `json:"mimeType,omitempty"`
}

// ResourceListResult is the result of resources/list.
type ResourceListResult struct {
	Resources []Resource `json:"resources"`
}

// SamplingMessage is one message in a sampling conversation.
type SamplingMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SamplingParams are the params of the sampling method. The server
// validates the shape and forwards to a configured back-end.
type SamplingParams struct {
	Model     string            `json:"model"`
	MaxTokens int               `json:"maxTokens"`
	System    string            `json:"system,omitempty"`
	Messages  []SamplingMessage `json:"messages"`
}

// SamplingResult is the back-end's completion for a sampling request.
type SamplingResult struct {
	Model      string `json:"model"`
	Content    string `json:"content"`
	StopReason string `json:"stopReason"`
}
