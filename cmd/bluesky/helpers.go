package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/lukeslp/bluesky-cli/internal/analyzer"
	"github.com/lukeslp/bluesky-cli/internal/bsky"
	"github.com/lukeslp/bluesky-cli/internal/config"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	faintStyle = lipgloss.NewStyle().Faint(true)
	countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// newClient builds a Bluesky client from config and logs in.
func newClient(ctx context.Context, cfg *config.Config) (*bsky.Client, error) {
	client := bsky.NewClient(bsky.Config{
		Host:       cfg.Bluesky.Host,
		Identifier: cfg.Bluesky.Identifier,
		Password:   cfg.Bluesky.Password,
	})
	if err := client.Login(ctx, "", ""); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return client, nil
}

func newAnalyzer(cfg *config.Config) *analyzer.Analyzer {
	return analyzer.FromAIConfig(cfg.ResolveAI())
}

// renderMarkdown renders AI output for the terminal, falling back to the
// raw text when the renderer cannot be built.
func renderMarkdown(text string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return out
}
