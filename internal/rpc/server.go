package rpc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/lukeslp/bluesky-cli/internal/tools"
)

// Server reads newline-delimited JSON-RPC requests and writes one
// response line per handled request.
type Server struct {
	dispatcher *tools.Dispatcher
	name       string
	version    string
}

// NewServer creates a stdio RPC server over the given dispatcher.
func NewServer(dispatcher *tools.Dispatcher, name, version string) *Server {
	return &Server{dispatcher: dispatcher, name: name, version: version}
}

// Run processes requests from r until EOF or an unparseable line. Unknown
// methods are skipped without a response; a malformed line ends the
// session cleanly.
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			slog.Error("malformed request, ending session", "error", err)
			return nil
		}

		resp, ok := s.handle(ctx, &req)
		if !ok {
			slog.Debug("skipping unknown method", "method", req.Method)
			continue
		}
		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading requests: %w", err)
	}
	return nil
}

func (s *Server) handle(ctx context.Context, req *request) (*response, bool) {
	resp := &response{JSONRPC: "2.0", ID: req.ID}

	switch req.Method {
	case "initialize":
		resp.Result = initializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities:    map[string]any{"tools": map[string]any{}},
			ServerInfo:      serverInfo{Name: s.name, Version: s.version},
		}
	case "tools/list":
		resp.Result = toolsListResult{Tools: tools.List()}
	case "tools/call":
		var params toolsCallParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &params); err != nil {
				resp.Error = &rpcError{Code: internalError, Message: fmt.Sprintf("invalid params: %v", err)}
				return resp, true
			}
		}

		result := s.dispatcher.Call(ctx, params.Name, params.Arguments)
		if result.IsError {
			resp.Error = &rpcError{Code: internalError, Message: errorMessage(result)}
			return resp, true
		}
		resp.Result = result
	default:
		return nil, false
	}
	return resp, true
}

// errorMessage extracts the text of an error envelope.
func errorMessage(result *tools.Result) string {
	if len(result.Content) > 0 {
		return result.Content[0].Text
	}
	return "tool call failed"
}
