// Package tools exposes Bluesky operations as a named tool catalog with a
// uniform result envelope, suitable for driving from an RPC server.
package tools

import "encoding/json"

// ContentBlock is one piece of tool output.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Result is the envelope every tool call returns. Failures are carried
// in-band with IsError set; Call itself only errors on internal faults.
type Result struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

func textResult(text string) *Result {
	return &Result{Content: []ContentBlock{{Type: "text", Text: text}}}
}

func errorResult(text string) *Result {
	return &Result{Content: []ContentBlock{{Type: "text", Text: text}}, IsError: true}
}

// Descriptor describes one tool for catalog listings.
type Descriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

func schema(s string) json.RawMessage { return json.RawMessage(s) }

var catalog = []Descriptor{
	{
		Name:        "get_profile",
		Description: "Get a Bluesky user's profile",
		InputSchema: schema(`{
			"type": "object",
			"properties": {
				"handle": {"type": "string", "description": "User handle, with or without @"}
			},
			"required": ["handle"]
		}`),
	},
	{
		Name:        "get_feed",
		Description: "Get a Bluesky user's recent posts",
		InputSchema: schema(`{
			"type": "object",
			"properties": {
				"handle": {"type": "string", "description": "User handle, with or without @"},
				"limit": {"type": "integer", "description": "Number of posts to return", "default": 20}
			},
			"required": ["handle"]
		}`),
	},
	{
		Name:        "search",
		Description: "Search Bluesky posts or users",
		InputSchema: schema(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Search terms"},
				"type": {"type": "string", "enum": ["posts", "users"], "default": "posts"},
				"limit": {"type": "integer", "description": "Number of results to return", "default": 20}
			},
			"required": ["query"]
		}`),
	},
	{
		Name:        "vibe_check",
		Description: "AI analysis of a Bluesky user's posting vibe",
		InputSchema: schema(`{
			"type": "object",
			"properties": {
				"handle": {"type": "string", "description": "User handle, with or without @"}
			},
			"required": ["handle"]
		}`),
	},
}

// List returns the tool catalog.
func List() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}
