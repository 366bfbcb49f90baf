package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lukeslp/bluesky-cli/internal/bsky"
	"github.com/lukeslp/bluesky-cli/internal/rpc"
	"github.com/lukeslp/bluesky-cli/internal/tools"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the stdio tool server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogging(cfg)

	client := bsky.NewClient(bsky.Config{
		Host:       cfg.Bluesky.Host,
		Identifier: cfg.Bluesky.Identifier,
		Password:   cfg.Bluesky.Password,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Authenticate up front when credentials exist so the first tool
	// call does not pay the login round trip. Failure is not fatal;
	// calls will retry and report their own errors.
	if client.HasCredentials() {
		if err := client.Login(ctx, "", ""); err != nil {
			slog.Warn("startup login failed, will retry on first call", "error", err)
		}
	} else {
		slog.Warn("no bluesky credentials configured, tool calls will fail")
	}

	dispatcher := tools.NewDispatcher(client, newAnalyzer(cfg))
	server := rpc.NewServer(dispatcher, "bluesky-cli", version)

	slog.Info("tool server started", "host", cfg.Bluesky.Host)
	return server.Run(ctx, os.Stdin, os.Stdout)
}
