package bsky

import (
	"encoding/json"
	"strings"
)

// UserRecord is the normalized shape of a user across profiles, graph
// pages and actor search results. Every field has a zero default so
// downstream consumers never see a missing key.
type UserRecord struct {
	Handle         string `json:"handle"`
	DisplayName    string `json:"displayName"`
	DID            string `json:"did"`
	Description    string `json:"description"`
	FollowerCount  int    `json:"followerCount"`
	FollowingCount int    `json:"followingCount"`
}

// FlattenUser normalizes a raw user record. Unknown shapes produce a
// record with defaults rather than an error.
func FlattenUser(raw json.RawMessage) UserRecord {
	var src struct {
		Handle         string `json:"handle"`
		DisplayName    string `json:"displayName"`
		DID            string `json:"did"`
		Description    string `json:"description"`
		FollowersCount int    `json:"followersCount"`
		FollowsCount   int    `json:"followsCount"`
	}
	// Decode errors leave src zeroed, which is exactly the fallback.
	_ = json.Unmarshal(raw, &src)

	return UserRecord{
		Handle:         src.Handle,
		DisplayName:    src.DisplayName,
		DID:            src.DID,
		Description:    src.Description,
		FollowerCount:  src.FollowersCount,
		FollowingCount: src.FollowsCount,
	}
}

// FeedRecord is the normalized shape of one authored post. Counters stay
// null when the upstream record omits them.
type FeedRecord struct {
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	Likes     *int   `json:"likes"`
	Reposts   *int   `json:"reposts"`
}

// FlattenFeedItem normalizes one feed item.
func FlattenFeedItem(item FeedItem) FeedRecord {
	return FeedRecord{
		Text:      item.Post.Record.Text,
		CreatedAt: item.Post.Record.CreatedAt,
		Likes:     item.Post.LikeCount,
		Reposts:   item.Post.RepostCount,
	}
}

// SearchRecord is the normalized shape of one post search result.
type SearchRecord struct {
	Author    string `json:"author"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// FlattenSearchPost normalizes one search result.
func FlattenSearchPost(post PostView) SearchRecord {
	return SearchRecord{
		Author:    post.Author.Handle,
		Text:      post.Record.Text,
		CreatedAt: post.Record.CreatedAt,
	}
}

// ExtractPostText joins the non-empty post texts of a feed into one
// newline-separated block. An empty result is ErrNoContent.
func ExtractPostText(feed *Feed) (string, error) {
	var texts []string
	for _, item := range feed.Feed {
		if t := item.Post.Record.Text; t != "" {
			texts = append(texts, t)
		}
	}
	joined := strings.TrimSpace(strings.Join(texts, "\n"))
	if joined == "" {
		return "", ErrNoContent
	}
	return joined, nil
}
