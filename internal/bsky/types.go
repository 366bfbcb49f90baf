package bsky

import "encoding/json"

// Session holds the credentials of one authenticated exchange. Immutable
// after login; replaced wholesale on re-login.
type Session struct {
	AccessJWT string
	DID       string
	Handle    string
}

// Profile is the app.bsky.actor.getProfile response.
type Profile struct {
	DID            string `json:"did"`
	Handle         string `json:"handle"`
	DisplayName    string `json:"displayName,omitempty"`
	Description    string `json:"description,omitempty"`
	Avatar         string `json:"avatar,omitempty"`
	FollowersCount int    `json:"followersCount"`
	FollowsCount   int    `json:"followsCount"`
	PostsCount     int    `json:"postsCount"`
	CreatedAt      string `json:"createdAt,omitempty"`
}

// Feed is the app.bsky.feed.getAuthorFeed response.
type Feed struct {
	Feed   []FeedItem `json:"feed"`
	Cursor string     `json:"cursor,omitempty"`
}

// FeedItem wraps one post in an author feed.
type FeedItem struct {
	Post PostView `json:"post"`
}

// PostView is the hydrated post shape shared by feeds and post search.
type PostView struct {
	URI         string     `json:"uri,omitempty"`
	Author      PostAuthor `json:"author"`
	Record      PostRecord `json:"record"`
	LikeCount   *int       `json:"likeCount,omitempty"`
	RepostCount *int       `json:"repostCount,omitempty"`
	ReplyCount  *int       `json:"replyCount,omitempty"`
}

// PostAuthor is the nested author reference inside a post view.
type PostAuthor struct {
	DID         string `json:"did,omitempty"`
	Handle      string `json:"handle,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// PostRecord is the original record of a post.
type PostRecord struct {
	Text      string `json:"text,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// PostSearchResults is the app.bsky.feed.searchPosts response.
type PostSearchResults struct {
	Posts  []PostView `json:"posts"`
	Cursor string     `json:"cursor,omitempty"`
}

// actorSearchResults is the app.bsky.actor.searchActors response. Actors
// are kept as raw records so callers can pass the upstream shape through
// verbatim or flatten it.
type actorSearchResults struct {
	Actors []json.RawMessage `json:"actors"`
	Cursor string            `json:"cursor,omitempty"`
}
