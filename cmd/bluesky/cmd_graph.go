package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lukeslp/bluesky-cli/internal/bsky"
	"github.com/lukeslp/bluesky-cli/internal/export"
)

var (
	graphMax int
	graphAll bool
	graphCSV string
)

func init() {
	for _, c := range []*cobra.Command{followersCmd, followingCmd} {
		c.Flags().IntVar(&graphMax, "max", 1000, "maximum number of accounts to fetch")
		c.Flags().BoolVar(&graphAll, "all", false, "fetch every account, ignoring --max")
		c.Flags().StringVar(&graphCSV, "csv", "", "also write results to a CSV file")
	}
	rootCmd.AddCommand(followersCmd, followingCmd)
}

var followersCmd = &cobra.Command{
	Use:   "followers <handle>",
	Short: "List a user's followers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGraph(cmd, args[0], bsky.Followers)
	},
}

var followingCmd = &cobra.Command{
	Use:   "following <handle>",
	Short: "List the accounts a user follows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGraph(cmd, args[0], bsky.Follows)
	},
}

func runGraph(cmd *cobra.Command, handle string, endpoint bsky.PagedEndpoint) error {
	cfg := loadConfig()
	setupLogging(cfg)

	client, err := newClient(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	max := graphMax
	if graphAll {
		max = 0
	}

	raw := client.FetchAll(cmd.Context(), endpoint, handle, max, 100)
	users := make([]bsky.UserRecord, 0, len(raw))
	for _, r := range raw {
		users = append(users, bsky.FlattenUser(r))
	}

	for _, u := range users {
		name := u.DisplayName
		if name == "" {
			name = u.Handle
		}
		fmt.Fprintf(os.Stdout, "%s %s\n", titleStyle.Render(name), faintStyle.Render("@"+u.Handle))
	}
	fmt.Fprintln(os.Stdout, countStyle.Render(fmt.Sprintf("%d accounts", len(users))))

	// A failed export should not discard results already printed.
	if graphCSV != "" {
		if err := export.WriteUsers(graphCSV, users); err != nil {
			slog.Warn("csv export failed", "path", graphCSV, "error", err)
		} else {
			fmt.Fprintln(os.Stdout, faintStyle.Render("wrote "+graphCSV))
		}
	}
	return nil
}
