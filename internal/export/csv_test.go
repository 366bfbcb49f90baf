package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukeslp/bluesky-cli/internal/bsky"
)

func TestWriteUsers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "followers.csv")
	users := []bsky.UserRecord{
		{Handle: "alice.bsky.social", DisplayName: "Alice", DID: "did:plc:a", Description: "hi, there", FollowerCount: 2, FollowingCount: 3},
		{Handle: "bob.bsky.social"},
	}

	require.NoError(t, WriteUsers(path, users))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"handle,displayName,did,description,followerCount,followingCount\n"+
			"alice.bsky.social,Alice,did:plc:a,\"hi, there\",2,3\n"+
			"bob.bsky.social,,,,0,0\n",
		string(data))
}

func TestWriteUsers_EmptyStillWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteUsers(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "handle,displayName,did,description,followerCount,followingCount\n", string(data))
}

func TestWriteUsers_BadPath(t *testing.T) {
	err := WriteUsers(filepath.Join(t.TempDir(), "missing", "out.csv"), nil)
	assert.Error(t, err)
}
