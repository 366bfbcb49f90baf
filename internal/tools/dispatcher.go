package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lukeslp/bluesky-cli/internal/analyzer"
	"github.com/lukeslp/bluesky-cli/internal/bsky"
)

// vibeFeedLimit is how many recent posts feed a vibe check.
const vibeFeedLimit = 50

// Dispatcher routes tool calls to the Bluesky client and analyzer.
type Dispatcher struct {
	client   *bsky.Client
	analyzer *analyzer.Analyzer
}

// NewDispatcher creates a dispatcher. The analyzer may be nil when no AI
// backend is configured; vibe_check then reports an error envelope.
func NewDispatcher(client *bsky.Client, az *analyzer.Analyzer) *Dispatcher {
	return &Dispatcher{client: client, analyzer: az}
}

// defaultListLimit applies when a call omits limit for get_feed or search.
const defaultListLimit = 20

type callArgs struct {
	Handle string `json:"handle"`
	Query  string `json:"query"`
	Kind   string `json:"type"`
	Limit  int    `json:"limit"`
}

// Call runs one tool by name. All failures, including unknown tools and
// missing credentials, come back as error envelopes rather than Go errors.
func (d *Dispatcher) Call(ctx context.Context, name string, rawArgs json.RawMessage) *Result {
	id := uuid.NewString()
	slog.Debug("tool call", "id", id, "tool", name)

	if !known(name) {
		return errorResult(fmt.Sprintf("Unknown tool: %s", name))
	}

	var args callArgs
	if len(rawArgs) > 0 {
		if err := json.Unmarshal(rawArgs, &args); err != nil {
			return errorResult(fmt.Sprintf("Invalid arguments: %v", err))
		}
	}

	if !d.client.HasCredentials() && !d.client.Authenticated() {
		return errorResult("Bluesky credentials not configured. Set BSKY_IDENTIFIER and BSKY_PASSWORD.")
	}
	if err := d.client.EnsureAuthenticated(ctx); err != nil {
		slog.Warn("tool auth failed", "id", id, "tool", name, "error", err)
		return errorResult(fmt.Sprintf("Authentication failed: %v", err))
	}

	result, err := d.dispatch(ctx, name, args)
	if err != nil {
		slog.Warn("tool call failed", "id", id, "tool", name, "error", err)
		return errorResult(err.Error())
	}
	slog.Debug("tool call done", "id", id, "tool", name)
	return result
}

func known(name string) bool {
	for _, d := range catalog {
		if d.Name == name {
			return true
		}
	}
	return false
}

func (d *Dispatcher) dispatch(ctx context.Context, name string, args callArgs) (*Result, error) {
	switch name {
	case "get_profile":
		return d.getProfile(ctx, args)
	case "get_feed":
		return d.getFeed(ctx, args)
	case "search":
		return d.search(ctx, args)
	case "vibe_check":
		return d.vibeCheck(ctx, args)
	}
	return nil, fmt.Errorf("unknown tool: %s", name)
}

func (d *Dispatcher) getProfile(ctx context.Context, args callArgs) (*Result, error) {
	profile, err := d.client.Profile(ctx, args.Handle)
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	out, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}
	return textResult(string(out)), nil
}

func (d *Dispatcher) getFeed(ctx context.Context, args callArgs) (*Result, error) {
	limit := args.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	feed, err := d.client.AuthorFeed(ctx, args.Handle, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}

	records := make([]bsky.FeedRecord, 0, len(feed.Feed))
	for _, item := range feed.Feed {
		records = append(records, bsky.FlattenFeedItem(item))
	}
	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding feed: %w", err)
	}
	return textResult(string(out)), nil
}

func (d *Dispatcher) search(ctx context.Context, args callArgs) (*Result, error) {
	limit := args.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	if args.Kind == "users" {
		actors, err := d.client.SearchActors(ctx, args.Query, limit)
		if err != nil {
			return nil, fmt.Errorf("searching users: %w", err)
		}
		records := make([]bsky.UserRecord, 0, len(actors))
		for _, a := range actors {
			records = append(records, bsky.FlattenUser(a))
		}
		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding users: %w", err)
		}
		return textResult(string(out)), nil
	}

	posts, err := d.client.SearchPosts(ctx, args.Query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching posts: %w", err)
	}
	records := make([]bsky.SearchRecord, 0, len(posts))
	for _, p := range posts {
		records = append(records, bsky.FlattenSearchPost(p))
	}
	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding posts: %w", err)
	}
	return textResult(string(out)), nil
}

func (d *Dispatcher) vibeCheck(ctx context.Context, args callArgs) (*Result, error) {
	feed, err := d.client.AuthorFeed(ctx, args.Handle, vibeFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	text, err := bsky.ExtractPostText(feed)
	if err != nil {
		// An empty feed is an answer, not a failure.
		if errors.Is(err, bsky.ErrNoContent) {
			return textResult(fmt.Sprintf("No text found for %s to analyze.", bsky.FormatHandle(args.Handle))), nil
		}
		return nil, err
	}
	if d.analyzer == nil {
		return nil, analyzer.ErrAIUnavailable
	}
	vibe, err := d.analyzer.VibeCheck(ctx, text)
	if err != nil {
		return nil, err
	}
	return textResult(vibe), nil
}
