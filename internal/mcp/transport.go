package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rcliao/certimatch/internal/domain"
)

// JSONRPCRequest represents a JSON-RPC 2.0 request
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response
type JSONRPCResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      interface{}   `json:"id,omitempty"`
	Result  interface{}   `json:"result,omitempty"`
	Error   *JSONRPCError `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC 2.0 error
type JSONRPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Standard JSON-RPC error codes
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
)

const (
	idleTimeout    = 10 * time.Minute
	requestTimeout = 2 * time.Minute
)

// MCPTransport handles JSON-RPC 2.0 communication over a line-delimited
// stream, stdio by default.
type MCPTransport struct {
	reader       *bufio.Reader
	writer       io.Writer
	server       *MCPServer
	lastActivity time.Time
	connected    bool
	mu           sync.Mutex
	writeMu      sync.Mutex
}

// NewMCPTransport creates a new MCP transport over stdio
func NewMCPTransport(server *MCPServer) *MCPTransport {
	return NewMCPTransportWithIO(server, os.Stdin, os.Stdout)
}

func NewMCPTransportWithIO(server *MCPServer, r io.Reader, w io.Writer) *MCPTransport {
	return &MCPTransport{
		reader:       bufio.NewReader(r),
		writer:       w,
		server:       server,
		lastActivity: time.Now(),
		connected:    true,
	}
}

type readResult struct {
	line []byte
	err  error
}

// Start serves requests until the input ends, the client sends exit, ctx is
// cancelled, or the connection has been idle for too long.
func (t *MCPTransport) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan readResult)
	go func() {
		for {
			line, err := t.reader.ReadBytes('\n')
			select {
			case lines <- readResult{line: line, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	idle := time.NewTicker(time.Minute)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-idle.C:
			if t.shouldTimeout() {
				slog.Info("mcp transport: connection timeout")
				return fmt.Errorf("connection timeout")
			}
		case res := <-lines:
			if len(strings.TrimSpace(string(res.line))) > 0 {
				t.updateActivity()
				if err := t.serveLine(ctx, res.line); err != nil {
					if errors.Is(err, io.EOF) {
						return nil
					}
					slog.Error("mcp transport: error processing request", "error", err)
				}
			}
			if res.err != nil {
				if errors.Is(res.err, io.EOF) {
					slog.Info("mcp transport: client disconnected")
					return nil
				}
				return fmt.Errorf("failed to read input: %w", res.err)
			}
			if !t.isConnected() {
				return nil
			}
		}
	}
}

// serveLine handles one request with panic recovery. io.EOF means the peer
// is gone.
func (t *MCPTransport) serveLine(ctx context.Context, line []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("mcp transport: panic recovered", "panic", r)
			_ = t.sendResponse(&JSONRPCResponse{
				JSONRPC: "2.0",
				Error: &JSONRPCError{
					Code:    InternalError,
					Message: "Internal server error",
				},
			})
			err = fmt.Errorf("panic recovered: %v", r)
		}
	}()

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	response := t.processRequest(reqCtx, line)
	if response == nil {
		return nil
	}
	if err := t.sendResponse(response); err != nil {
		if strings.Contains(err.Error(), "broken pipe") ||
			strings.Contains(err.Error(), "connection reset") {
			slog.Info("mcp transport: client disconnected", "error", err)
			return io.EOF
		}
		return fmt.Errorf("failed to send response: %w", err)
	}
	return nil
}

// processRequest processes a JSON-RPC request and returns a response
func (t *MCPTransport) processRequest(ctx context.Context, data []byte) *JSONRPCResponse {
	var req JSONRPCRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return &JSONRPCResponse{
			JSONRPC: "2.0",
			Error: &JSONRPCError{
				Code:    ParseError,
				Message: "Parse error",
				Data:    err.Error(),
			},
		}
	}

	if req.JSONRPC != "2.0" {
		return &JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &JSONRPCError{
				Code:    InvalidRequest,
				Message: "Invalid Request - JSON-RPC 2.0 required",
			},
		}
	}

	switch req.Method {
	case "initialize":
		return t.handleInitialize(req)
	case "initialized", "notifications/initialized":
		return nil
	case "shutdown":
		return t.handleShutdown(req)
	case "exit":
		t.setConnected(false)
		return nil
	case "tools/list":
		return t.handleToolsList(req)
	case "tools/call":
		return t.handleToolCall(ctx, req)
	case "resources/list":
		return t.handleResourcesList(req)
	case "resources/read":
		return t.handleResourceRead(ctx, req)
	case "prompts/list":
		return result(req, map[string]interface{}{"prompts": []interface{}{}})
	default:
		// Direct method calls
		res, err := t.server.HandleCommandContext(ctx, req.Method, req.Params)
		if err != nil {
			return errorResponse(req, err)
		}
		return result(req, res)
	}
}

// handleInitialize handles the MCP initialize request
func (t *MCPTransport) handleInitialize(req JSONRPCRequest) *JSONRPCResponse {
	type InitParams struct {
		ProtocolVersion string `json:"protocolVersion"`
		ClientInfo      struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"clientInfo,omitempty"`
	}

	var params InitParams
	if req.Params != nil {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return &JSONRPCResponse{
				JSONRPC: "2.0",
				ID:      req.ID,
				Error: &JSONRPCError{
					Code:    InvalidParams,
					Message: "Invalid params",
					Data:    err.Error(),
				},
			}
		}
	}
	slog.Info("mcp client connected", "client", params.ClientInfo.Name, "version", params.ClientInfo.Version)

	return result(req, map[string]interface{}{
		"protocolVersion": "2024-11-05",
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{
				"listChanged": false,
			},
			"resources": map[string]interface{}{
				"subscribe":   false,
				"listChanged": false,
			},
			"prompts": map[string]interface{}{
				"listChanged": false,
			},
		},
		"serverInfo": map[string]interface{}{
			"name":    "certimatch",
			"version": "1.0.0",
		},
	})
}

func (t *MCPTransport) updateActivity() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastActivity = time.Now()
}

func (t *MCPTransport) shouldTimeout() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return time.Since(t.lastActivity) > idleTimeout
}

func (t *MCPTransport) isConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected
}

func (t *MCPTransport) setConnected(connected bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.connected = connected
}

// handleShutdown acknowledges shutdown; the loop stops after the reply.
func (t *MCPTransport) handleShutdown(req JSONRPCRequest) *JSONRPCResponse {
	t.setConnected(false)
	return result(req, nil)
}

// tool maps an MCP tool name to a server method. props maps argument names
// to JSON schema types.
type tool struct {
	name        string
	method      string
	description string
	props       map[string]string
	required    []string
}

var tools = []tool{
	{"certimatch_project_create", "certimatch.project.create", "Create a certification project for a target market (EU or US) and make it current",
		map[string]string{"name": "string", "market": "string"}, []string{"name"}},
	{"certimatch_project_list", "certimatch.project.list", "List all projects", nil, nil},
	{"certimatch_project_current", "certimatch.project.current", "Get the current project", nil, nil},
	{"certimatch_project_set_current", "certimatch.project.set_current", "Set the current project",
		map[string]string{"id": "string"}, []string{"id"}},
	{"certimatch_file_upload", "certimatch.file.upload", "Record an uploaded file (name and size) in the project repository",
		map[string]string{"projectId": "string", "name": "string", "size": "integer"}, []string{"name"}},
	{"certimatch_file_list", "certimatch.file.list", "List repository files in upload order",
		map[string]string{"projectId": "string"}, nil},
	{"certimatch_file_remove", "certimatch.file.remove", "Remove a repository file",
		map[string]string{"projectId": "string", "fileId": "string"}, []string{"fileId"}},
	{"certimatch_checklist", "certimatch.checklist", "Match repository files against the market's required document list",
		map[string]string{"projectId": "string"}, nil},
	{"certimatch_remediation_publish", "certimatch.remediation.publish", "Replace a market's remediation action items",
		map[string]string{"projectId": "string", "market": "string", "items": "array"}, []string{"items"}},
	{"certimatch_remediation_list", "certimatch.remediation.list", "List a market's remediation action items",
		map[string]string{"projectId": "string", "market": "string"}, nil},
	{"certimatch_remediation_status", "certimatch.remediation.status", "Set an action item's status (pending, in_progress, done)",
		map[string]string{"projectId": "string", "market": "string", "id": "string", "status": "string"}, []string{"id", "status"}},
	{"certimatch_remediation_triage", "certimatch.remediation.triage", "Top open action items by priority",
		map[string]string{"projectId": "string", "market": "string", "limit": "integer"}, nil},
	{"certimatch_remediation_search", "certimatch.remediation.search", "Search action items by keyword, id, priority or type",
		map[string]string{"projectId": "string", "query": "string", "market": "string", "limit": "integer", "offset": "integer"}, []string{"query"}},
	{"certimatch_playbook", "certimatch.playbook", "Build the improvement playbook for an action item or free task text",
		map[string]string{"projectId": "string", "market": "string", "itemId": "string", "task": "string"}, nil},
	{"certimatch_chat", "certimatch.chat", "Ask the certification assistant; omit sessionId to start a session",
		map[string]string{"sessionId": "string", "projectId": "string", "view": "string", "text": "string", "select": "string"}, nil},
	{"certimatch_diagnosis_run", "certimatch.diagnosis.run", "Run the simulated regulatory diagnosis and publish its action items",
		map[string]string{"projectId": "string", "market": "string"}, nil},
	{"certimatch_submission_readiness", "certimatch.submission.readiness", "Check which required submission inputs are missing",
		map[string]string{"market": "string", "uploaded": "array"}, nil},
	{"certimatch_submission_generate", "certimatch.submission.generate", "Generate the submission package (draft when inputs are missing)",
		map[string]string{"market": "string", "uploaded": "array"}, []string{"uploaded"}},
	{"certimatch_labs_rank", "certimatch.labs.rank", "Rank testing laboratories by total, tech, cost, time or dist",
		map[string]string{"criterion": "string"}, nil},
	{"certimatch_dashboard", "certimatch.dashboard", "Project dashboard: checklist, remediation progress and recommendations",
		map[string]string{"projectId": "string"}, nil},
}

// MethodInfo describes one command accepted by HandleCommand.
type MethodInfo struct {
	Method      string
	Description string
}

// Methods lists the commands in tool order.
func Methods() []MethodInfo {
	out := make([]MethodInfo, len(tools))
	for i, tl := range tools {
		out[i] = MethodInfo{Method: tl.method, Description: tl.description}
	}
	return out
}

func (tl tool) schema() map[string]interface{} {
	properties := make(map[string]interface{}, len(tl.props))
	for name, typ := range tl.props {
		properties[name] = map[string]interface{}{"type": typ}
	}
	s := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(tl.required) > 0 {
		s["required"] = tl.required
	}
	return s
}

func lookupTool(name string) (tool, bool) {
	for _, tl := range tools {
		if tl.name == name {
			return tl, true
		}
	}
	return tool{}, false
}

func (t *MCPTransport) handleToolsList(req JSONRPCRequest) *JSONRPCResponse {
	list := make([]map[string]interface{}, 0, len(tools))
	for _, tl := range tools {
		list = append(list, map[string]interface{}{
			"name":        tl.name,
			"description": tl.description,
			"inputSchema": tl.schema(),
		})
	}
	return result(req, map[string]interface{}{"tools": list})
}

func (t *MCPTransport) handleToolCall(ctx context.Context, req JSONRPCRequest) *JSONRPCResponse {
	type ToolCallParams struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments,omitempty"`
	}

	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return &JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &JSONRPCError{
				Code:    InvalidParams,
				Message: "Invalid params",
				Data:    err.Error(),
			},
		}
	}

	tl, ok := lookupTool(params.Name)
	if !ok {
		return &JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &JSONRPCError{
				Code:    MethodNotFound,
				Message: fmt.Sprintf("Unknown tool: %s", params.Name),
			},
		}
	}

	res, err := t.server.HandleCommandContext(ctx, tl.method, params.Arguments)
	if err != nil {
		slog.Info("tool call failed", "method", tl.method, "error", err)
		return errorResponse(req, err)
	}

	text, err := FormatResult(res)
	if err != nil {
		return &JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &JSONRPCError{
				Code:    InternalError,
				Message: "Failed to serialize result",
				Data:    err.Error(),
			},
		}
	}

	return result(req, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": text,
			},
		},
	})
}

var resources = []struct {
	uri         string
	name        string
	description string
	method      string
}{
	{"certimatch://projects", "All Projects", "List of all certification projects", "certimatch.project.list"},
	{"certimatch://current", "Current Project", "Current active project", "certimatch.project.current"},
	{"certimatch://checklist", "Document Checklist", "Required documents of the current project and their matched files", "certimatch.checklist"},
	{"certimatch://dashboard", "Dashboard", "Checklist, remediation progress and recommendations", "certimatch.dashboard"},
	{"certimatch://labs", "Testing Labs", "Testing laboratories ranked by total score", "certimatch.labs.rank"},
}

func (t *MCPTransport) handleResourcesList(req JSONRPCRequest) *JSONRPCResponse {
	list := make([]map[string]interface{}, 0, len(resources))
	for _, r := range resources {
		list = append(list, map[string]interface{}{
			"uri":         r.uri,
			"name":        r.name,
			"description": r.description,
			"mimeType":    "text/markdown",
		})
	}
	return result(req, map[string]interface{}{"resources": list})
}

func (t *MCPTransport) handleResourceRead(ctx context.Context, req JSONRPCRequest) *JSONRPCResponse {
	type ResourceParams struct {
		URI string `json:"uri"`
	}

	var params ResourceParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return &JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &JSONRPCError{
				Code:    InvalidParams,
				Message: "Invalid params",
				Data:    err.Error(),
			},
		}
	}

	for _, r := range resources {
		if r.uri != params.URI {
			continue
		}
		res, err := t.server.HandleCommandContext(ctx, r.method, nil)
		if err != nil {
			return errorResponse(req, err)
		}
		text, err := FormatResult(res)
		if err != nil {
			return errorResponse(req, err)
		}
		return result(req, map[string]interface{}{
			"contents": []map[string]interface{}{
				{
					"uri":      r.uri,
					"mimeType": "text/markdown",
					"text":     text,
				},
			},
		})
	}

	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Error: &JSONRPCError{
			Code:    InvalidParams,
			Message: fmt.Sprintf("Unknown resource: %s", params.URI),
		},
	}
}

func result(req JSONRPCRequest, res interface{}) *JSONRPCResponse {
	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  res,
	}
}

// errorResponse maps a handler error to a JSON-RPC error code.
func errorResponse(req JSONRPCRequest, err error) *JSONRPCResponse {
	code := InternalError
	switch {
	case errors.Is(err, ErrUnknownMethod):
		code = MethodNotFound
	case errors.Is(err, ErrInvalidParams), errors.Is(err, domain.ErrNotFound):
		code = InvalidParams
	}
	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Error: &JSONRPCError{
			Code:    code,
			Message: err.Error(),
		},
	}
}

// sendResponse writes one response line
func (t *MCPTransport) sendResponse(response *JSONRPCResponse) error {
	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if _, err := t.writer.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}

	return nil
}
