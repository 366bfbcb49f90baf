package bsky

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenUser(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want UserRecord
	}{
		{
			name: "full record",
			raw: `{"handle":"alice.bsky.social","displayName":"Alice","did":"did:plc:abc",
				"description":"hi","followersCount":12,"followsCount":34}`,
			want: UserRecord{
				Handle: "alice.bsky.social", DisplayName: "Alice", DID: "did:plc:abc",
				Description: "hi", FollowerCount: 12, FollowingCount: 34,
			},
		},
		{
			name: "empty object gets defaults",
			raw:  `{}`,
			want: UserRecord{},
		},
		{
			name: "malformed input gets defaults",
			raw:  `"not an object"`,
			want: UserRecord{},
		},
		{
			name: "partial record",
			raw:  `{"handle":"bob.bsky.social"}`,
			want: UserRecord{Handle: "bob.bsky.social"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FlattenUser(json.RawMessage(tt.raw))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlattenUser_FieldNames(t *testing.T) {
	// The output keys differ from the upstream ones on the counters.
	out, err := json.Marshal(FlattenUser(json.RawMessage(`{"followersCount":5,"followsCount":7}`)))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Equal(t, float64(5), m["followerCount"])
	assert.Equal(t, float64(7), m["followingCount"])
	assert.NotContains(t, m, "followersCount")
	assert.NotContains(t, m, "followsCount")
}

func intPtr(n int) *int { return &n }

func TestFlattenFeedItem(t *testing.T) {
	item := FeedItem{Post: PostView{
		Record:      PostRecord{Text: "hello", CreatedAt: "2024-01-01T00:00:00Z"},
		LikeCount:   intPtr(3),
		RepostCount: intPtr(1),
	}}
	got := FlattenFeedItem(item)
	assert.Equal(t, FeedRecord{
		Text: "hello", CreatedAt: "2024-01-01T00:00:00Z",
		Likes: intPtr(3), Reposts: intPtr(1),
	}, got)
}

func TestFlattenFeedItem_MissingCountersStayNull(t *testing.T) {
	got := FlattenFeedItem(FeedItem{Post: PostView{Record: PostRecord{Text: "x"}}})

	out, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"x","created_at":"","likes":null,"reposts":null}`, string(out))
}

func TestFlattenSearchPost(t *testing.T) {
	got := FlattenSearchPost(PostView{
		Author: PostAuthor{Handle: "carol.bsky.social"},
		Record: PostRecord{Text: "found it", CreatedAt: "2024-02-02T00:00:00Z"},
	})
	assert.Equal(t, SearchRecord{
		Author: "carol.bsky.social", Text: "found it", CreatedAt: "2024-02-02T00:00:00Z",
	}, got)
}

func TestFlattenSearchPost_MissingFields(t *testing.T) {
	out, err := json.Marshal(FlattenSearchPost(PostView{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"author":"","text":"","created_at":""}`, string(out))
}

func feedOf(texts ...string) *Feed {
	f := &Feed{}
	for _, t := range texts {
		f.Feed = append(f.Feed, FeedItem{Post: PostView{Record: PostRecord{Text: t}}})
	}
	return f
}

func TestExtractPostText(t *testing.T) {
	got, err := ExtractPostText(feedOf("hello", "", "world"))
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld", got)
}

func TestExtractPostText_Empty(t *testing.T) {
	_, err := ExtractPostText(feedOf("", ""))
	assert.ErrorIs(t, err, ErrNoContent)

	_, err = ExtractPostText(&Feed{})
	assert.ErrorIs(t, err, ErrNoContent)
}
