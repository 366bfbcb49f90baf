package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lukeslp/bluesky-cli/internal/bsky"
)

var feedLimit int

func init() {
	feedCmd.Flags().IntVar(&feedLimit, "limit", 20, "number of posts to show")
	rootCmd.AddCommand(feedCmd)
}

var feedCmd = &cobra.Command{
	Use:   "feed <handle>",
	Short: "Show a user's recent posts",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeed,
}

func runFeed(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogging(cfg)

	client, err := newClient(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	feed, err := client.AuthorFeed(cmd.Context(), args[0], feedLimit)
	if err != nil {
		return fmt.Errorf("fetch feed: %w", err)
	}
	if len(feed.Feed) == 0 {
		fmt.Fprintln(os.Stdout, faintStyle.Render("No posts found."))
		return nil
	}

	for _, item := range feed.Feed {
		record := bsky.FlattenFeedItem(item)
		fmt.Fprintln(os.Stdout, record.Text)
		meta := record.CreatedAt
		if record.Likes != nil {
			meta += fmt.Sprintf("  %d likes", *record.Likes)
		}
		if record.Reposts != nil {
			meta += fmt.Sprintf("  %d reposts", *record.Reposts)
		}
		fmt.Fprintln(os.Stdout, faintStyle.Render(meta))
		fmt.Fprintln(os.Stdout)
	}
	return nil
}
