package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lukeslp/bluesky-cli/internal/bsky"
)

var vibeSummary bool

func init() {
	vibeCmd.Flags().BoolVar(&vibeSummary, "summary", false, "summarize posts instead of analyzing vibe")
	rootCmd.AddCommand(vibeCmd)
}

var vibeCmd = &cobra.Command{
	Use:   "vibe <handle>",
	Short: "AI analysis of a user's posting vibe",
	Args:  cobra.ExactArgs(1),
	RunE:  runVibe,
}

func runVibe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogging(cfg)

	az := newAnalyzer(cfg)
	if !az.Available() {
		return fmt.Errorf("AI not configured: set OPENAI_API_KEY, ANTHROPIC_API_KEY, or use ollama")
	}

	client, err := newClient(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	feed, err := client.AuthorFeed(cmd.Context(), args[0], 50)
	if err != nil {
		return fmt.Errorf("fetch feed: %w", err)
	}
	text, err := bsky.ExtractPostText(feed)
	if err != nil {
		return fmt.Errorf("no posts found for %s", bsky.FormatHandle(args[0]))
	}

	var result string
	if vibeSummary {
		result, err = az.Summarize(cmd.Context(), text)
	} else {
		result, err = az.VibeCheck(cmd.Context(), text)
	}
	if err != nil {
		return err
	}

	fmt.Fprint(os.Stdout, renderMarkdown(result))
	return nil
}
