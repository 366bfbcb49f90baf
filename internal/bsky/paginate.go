package bsky

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"
)

// PagedEndpoint names a cursor-paginated social graph endpoint.
type PagedEndpoint string

const (
	// Followers pages through the accounts following a subject.
	Followers PagedEndpoint = "followers"
	// Follows pages through the accounts a subject follows.
	Follows PagedEndpoint = "follows"
)

const (
	defaultPageSize = 100
	maxPageSize     = 100

	// maxStalePages bounds consecutive pages that return a cursor but
	// no items before the loop gives up on a stuck endpoint.
	maxStalePages = 3
)

func clampPageSize(n int) int {
	if n <= 0 {
		return defaultPageSize
	}
	if n > maxPageSize {
		return maxPageSize
	}
	return n
}

func (e PagedEndpoint) path() string {
	if e == Follows {
		return getFollowsPath
	}
	return getFollowersPath
}

type graphPage struct {
	Followers []json.RawMessage `json:"followers"`
	Follows   []json.RawMessage `json:"follows"`
	Cursor    string            `json:"cursor"`
}

func (p *graphPage) items(e PagedEndpoint) []json.RawMessage {
	if e == Follows {
		return p.Follows
	}
	return p.Followers
}

// FetchAll collects every record behind a paginated graph endpoint, up to
// maxResults records (maxResults <= 0 means unbounded). Page failures are logged and
// terminate the loop; whatever was collected so far is returned. The
// result is never an error.
func (c *Client) FetchAll(ctx context.Context, endpoint PagedEndpoint, subject string, maxResults, pageSize int) []json.RawMessage {
	pageSize = clampPageSize(pageSize)
	subject = FormatHandle(subject)

	var collected []json.RawMessage
	cursor := ""
	stale := 0

	for maxResults <= 0 || len(collected) < maxResults {
		page, err := c.fetchGraphPage(ctx, endpoint, subject, pageSize, cursor)
		if err != nil {
			slog.Warn("page fetch failed, returning partial results",
				"endpoint", string(endpoint), "subject", subject,
				"collected", len(collected), "error", err)
			break
		}

		items := page.items(endpoint)
		collected = append(collected, items...)

		if page.Cursor == "" {
			break
		}
		if len(items) == 0 {
			stale++
			if stale >= maxStalePages {
				slog.Warn("endpoint returning empty pages with a cursor, stopping",
					"endpoint", string(endpoint), "subject", subject, "pages", stale)
				break
			}
		} else {
			stale = 0
		}
		cursor = page.Cursor
	}

	if maxResults > 0 && len(collected) > maxResults {
		collected = collected[:maxResults]
	}
	return collected
}

func (c *Client) fetchGraphPage(ctx context.Context, endpoint PagedEndpoint, subject string, pageSize int, cursor string) (*graphPage, error) {
	q := url.Values{}
	q.Set("actor", subject)
	q.Set("limit", strconv.Itoa(pageSize))
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	var page graphPage
	if err := c.doGET(ctx, "get"+titleCase(string(endpoint)), endpoint.path(), q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
