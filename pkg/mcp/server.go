// Package mcp exposes the signage designer as a Model Context Protocol
// tool server over stdio. Requests arrive as line-delimited JSON-RPC 2.0
// on stdin and responses leave on stdout, which is why every log line in
// the process goes to stderr.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/WispAyr/signage-designer/pkg/designer"
)

// ServerName identifies this server in the initialize handshake.
const ServerName = "signage-designer"

// Server is the stdio tool server. One instance serves one client
// connection; requests are handled strictly in arrival order.
type Server struct {
	service *designer.Service
	logger  *slog.Logger
	version string
	tools   []toolDefinition
}

// NewServer creates a tool server over the given application service.
func NewServer(svc *designer.Service, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		service: svc,
		logger:  logger.With("component", "mcp"),
		version: version,
	}
	s.tools = s.toolDefinitions()
	return s
}

// ProcessStream reads line-delimited JSON-RPC requests from reader and
// writes responses to writer until EOF or context cancellation. Malformed
// lines produce a parse error response rather than terminating the stream.
func (s *Server) ProcessStream(ctx context.Context, reader io.Reader, writer io.Writer) error {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	encoder := json.NewEncoder(writer)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			if err := encoder.Encode(newErrorResponse(nil, CodeParseError, "Parse error")); err != nil {
				return err
			}
			continue
		}

		resp := s.Handle(ctx, &req)
		if resp == nil {
			continue
		}
		if err := encoder.Encode(resp); err != nil {
			return err
		}
	}

	return scanner.Err()
}

// Handle dispatches one request. Notifications return a nil response.
func (s *Server) Handle(ctx context.Context, req *Request) *Response {
	s.logger.Debug("handling request", "method", req.Method)

	switch req.Method {
	case "initialize":
		return newResponse(req.ID, map[string]any{
			"protocolVersion": ProtocolVersion,
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
			"serverInfo": map[string]any{
				"name":    ServerName,
				"version": s.version,
			},
		})
	case "ping":
		return newResponse(req.ID, map[string]any{})
	case "tools/list":
		return newResponse(req.ID, map[string]any{"tools": s.listTools()})
	case "tools/call":
		return s.handleCallTool(ctx, req)
	default:
		if req.IsNotification() {
			return nil
		}
		return newErrorResponse(req.ID, CodeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method))
	}
}

func (s *Server) listTools() []Tool {
	tools := make([]Tool, len(s.tools))
	for i, def := range s.tools {
		tools[i] = def.Tool
	}
	return tools
}

func (s *Server) handleCallTool(ctx context.Context, req *Request) (resp *Response) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tool panic recovered",
				"panic", r,
				"stack", string(debug.Stack()),
			)
			resp = newErrorResponse(req.ID, CodeInternalError, fmt.Sprintf("tool execution panicked: %v", r))
		}
	}()

	var call struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	paramsData, err := json.Marshal(req.Params)
	if err != nil {
		return newErrorResponse(req.ID, CodeInternalError, "failed to marshal params")
	}
	if err := json.Unmarshal(paramsData, &call); err != nil {
		return newErrorResponse(req.ID, CodeInternalError, "failed to parse tool call request")
	}
	if call.Name == "" {
		return newErrorResponse(req.ID, CodeInternalError, "tool name is required")
	}

	def, ok := s.findTool(call.Name)
	if !ok {
		return newErrorResponse(req.ID, CodeInternalError, fmt.Sprintf("unknown tool: %s", call.Name))
	}

	result, err := def.Handler(ctx, call.Arguments)
	if err != nil {
		return newErrorResponse(req.ID, CodeInternalError, err.Error())
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return newErrorResponse(req.ID, CodeInternalError, "failed to marshal tool result")
	}

	return newResponse(req.ID, map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": string(resultJSON)},
		},
	})
}

func (s *Server) findTool(name string) (toolDefinition, bool) {
	for _, def := range s.tools {
		if def.Name == name {
			return def, true
		}
	}
	return toolDefinition{}, false
}
