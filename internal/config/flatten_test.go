package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenUnflattenRoundTrip(t *testing.T) {
	nested := map[string]any{
		"log_level": "info",
		"bluesky": map[string]any{
			"host":       "https://bsky.social",
			"identifier": "alice.bsky.social",
		},
		"ai": map[string]any{
			"provider": "openai",
		},
	}

	flat := Flatten(nested)
	assert.Equal(t, "info", flat["log_level"])
	assert.Equal(t, "alice.bsky.social", flat["bluesky.identifier"])
	assert.Equal(t, "openai", flat["ai.provider"])

	back := Unflatten(flat)
	assert.Equal(t, nested, back)
}

func TestIsSecretKey(t *testing.T) {
	assert.True(t, IsSecretKey("bluesky.password"))
	assert.True(t, IsSecretKey("ai.openai_api_key"))
	assert.False(t, IsSecretKey("bluesky.identifier"))
}
