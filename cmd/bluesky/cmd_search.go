package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lukeslp/bluesky-cli/internal/bsky"
)

var (
	searchLimit int
	searchUsers bool
)

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "number of results to show")
	searchCmd.Flags().BoolVar(&searchUsers, "users", false, "search users instead of posts")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search posts or users",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogging(cfg)

	client, err := newClient(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")

	if searchUsers {
		actors, err := client.SearchActors(cmd.Context(), query, searchLimit)
		if err != nil {
			return fmt.Errorf("search users: %w", err)
		}
		if len(actors) == 0 {
			fmt.Fprintln(os.Stdout, faintStyle.Render("No users found."))
			return nil
		}
		for _, a := range actors {
			user := bsky.FlattenUser(a)
			name := user.DisplayName
			if name == "" {
				name = user.Handle
			}
			fmt.Fprintf(os.Stdout, "%s %s\n", titleStyle.Render(name), faintStyle.Render("@"+user.Handle))
			if user.Description != "" {
				fmt.Fprintln(os.Stdout, "  "+user.Description)
			}
		}
		return nil
	}

	posts, err := client.SearchPosts(cmd.Context(), query, searchLimit)
	if err != nil {
		return fmt.Errorf("search posts: %w", err)
	}
	if len(posts) == 0 {
		fmt.Fprintln(os.Stdout, faintStyle.Render("No posts found."))
		return nil
	}
	for _, p := range posts {
		record := bsky.FlattenSearchPost(p)
		fmt.Fprintf(os.Stdout, "%s %s\n", titleStyle.Render("@"+record.Author), faintStyle.Render(record.CreatedAt))
		fmt.Fprintln(os.Stdout, record.Text)
		fmt.Fprintln(os.Stdout)
	}
	return nil
}
