package bsky

// DefaultHost is the public Bluesky PDS entrypoint.
const DefaultHost = "https://bsky.social"

// XRPC paths for the read endpoints this client uses.
const (
	createSessionPath = "/xrpc/com.atproto.server.createSession"
	getProfilePath    = "/xrpc/app.bsky.actor.getProfile"
	getAuthorFeedPath = "/xrpc/app.bsky.feed.getAuthorFeed"
	getFollowersPath  = "/xrpc/app.bsky.graph.getFollowers"
	getFollowsPath    = "/xrpc/app.bsky.graph.getFollows"
	searchPostsPath   = "/xrpc/app.bsky.feed.searchPosts"
	searchActorsPath  = "/xrpc/app.bsky.actor.searchActors"
)
