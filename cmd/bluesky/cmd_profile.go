package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile <handle>",
	Short: "Show a user's profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogging(cfg)

	client, err := newClient(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	profile, err := client.Profile(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("fetch profile: %w", err)
	}

	name := profile.DisplayName
	if name == "" {
		name = profile.Handle
	}
	fmt.Fprintln(os.Stdout, titleStyle.Render(name))
	fmt.Fprintln(os.Stdout, faintStyle.Render("@"+profile.Handle+"  "+profile.DID))
	if profile.Description != "" {
		fmt.Fprintln(os.Stdout)
		fmt.Fprintln(os.Stdout, profile.Description)
	}
	fmt.Fprintln(os.Stdout)
	fmt.Fprintf(os.Stdout, "%s followers  %s following  %s posts\n",
		countStyle.Render(fmt.Sprintf("%d", profile.FollowersCount)),
		countStyle.Render(fmt.Sprintf("%d", profile.FollowsCount)),
		countStyle.Render(fmt.Sprintf("%d", profile.PostsCount)))
	return nil
}
