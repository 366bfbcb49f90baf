package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukeslp/bluesky-cli/internal/bsky"
	"github.com/lukeslp/bluesky-cli/internal/tools"
)

func testServer(t *testing.T, handlers map[string]http.HandlerFunc) (*Server, *httptest.Server) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/xrpc/com.atproto.server.createSession", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"accessJwt": "t", "did": "d", "handle": "h"})
	})
	for path, h := range handlers {
		mux.HandleFunc(path, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := bsky.NewClient(bsky.Config{Host: srv.URL, Identifier: "a", Password: "p"})
	return NewServer(tools.NewDispatcher(client, nil), "bluesky-cli", "test"), srv
}

// runLines feeds newline-joined requests through the server and returns
// one decoded response per output line.
func runLines(t *testing.T, s *Server, lines ...string) []map[string]any {
	t.Helper()
	var out strings.Builder
	err := s.Run(context.Background(), strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	require.NoError(t, err)

	var responses []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var resp map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestInitialize(t *testing.T) {
	s, _ := testServer(t, nil)
	responses := runLines(t, s, `{"jsonrpc":"2.0","id":1,"method":"initialize"}`)

	require.Len(t, responses, 1)
	resp := responses[0]
	assert.Equal(t, "2.0", resp["jsonrpc"])
	assert.Equal(t, float64(1), resp["id"])

	result := resp["result"].(map[string]any)
	assert.Equal(t, "2024-11-05", result["protocolVersion"])
	assert.Contains(t, result["capabilities"], "tools")
	info := result["serverInfo"].(map[string]any)
	assert.Equal(t, "bluesky-cli", info["name"])
}

func TestToolsList(t *testing.T) {
	s, _ := testServer(t, nil)
	responses := runLines(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)

	require.Len(t, responses, 1)
	listed := responses[0]["result"].(map[string]any)["tools"].([]any)
	require.Len(t, listed, 4)
	first := listed[0].(map[string]any)
	assert.Equal(t, "get_profile", first["name"])
	assert.Contains(t, first, "inputSchema")
}

func TestUnknownMethodSkipped(t *testing.T) {
	s, _ := testServer(t, nil)
	responses := runLines(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"resources/list"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
	)

	// Only the known method gets a response.
	require.Len(t, responses, 1)
	assert.Equal(t, float64(2), responses[0]["id"])
}

func TestMalformedLineEndsSession(t *testing.T) {
	s, _ := testServer(t, nil)
	var out strings.Builder
	input := "not json at all\n" + `{"jsonrpc":"2.0","id":9,"method":"tools/list"}` + "\n"

	err := s.Run(context.Background(), strings.NewReader(input), &out)
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestToolsCall(t *testing.T) {
	s, _ := testServer(t, map[string]http.HandlerFunc{
		"/xrpc/app.bsky.actor.getProfile": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(bsky.Profile{Handle: "alice.bsky.social"})
		},
	})
	responses := runLines(t, s,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"get_profile","arguments":{"handle":"alice"}}}`)

	require.Len(t, responses, 1)
	resp := responses[0]
	require.NotContains(t, resp, "error")
	content := resp["result"].(map[string]any)["content"].([]any)
	require.Len(t, content, 1)
	assert.Contains(t, content[0].(map[string]any)["text"], "alice.bsky.social")
}

func TestToolsCall_ErrorEnvelopeBecomesRPCError(t *testing.T) {
	s, _ := testServer(t, nil)
	responses := runLines(t, s,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"no_such_tool"}}`)

	require.Len(t, responses, 1)
	rpcErr := responses[0]["error"].(map[string]any)
	assert.Equal(t, float64(-32603), rpcErr["code"])
	assert.Contains(t, rpcErr["message"], "Unknown tool")
	assert.NotContains(t, responses[0], "result")
}

func TestToolsCall_FailedFetchUsesSameCode(t *testing.T) {
	s, _ := testServer(t, map[string]http.HandlerFunc{
		"/xrpc/app.bsky.actor.getProfile": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusServiceUnavailable)
		},
	})
	responses := runLines(t, s,
		`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"get_profile","arguments":{"handle":"alice"}}}`)

	require.Len(t, responses, 1)
	rpcErr := responses[0]["error"].(map[string]any)
	assert.Equal(t, float64(-32603), rpcErr["code"])
}

func TestBlankLinesSkipped(t *testing.T) {
	s, _ := testServer(t, nil)
	var out strings.Builder
	input := "\n\n" + `{"jsonrpc":"2.0","id":1,"method":"tools/list"}` + "\n\n"
	require.NoError(t, s.Run(context.Background(), strings.NewReader(input), &out))
	assert.Equal(t, 1, strings.Count(strings.TrimSpace(out.String()), "\n")+1)
}
