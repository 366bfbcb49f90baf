// Package analyzer turns collections of post text into AI-generated
// summaries and vibe checks through an OpenAI-compatible completion
// backend.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/lukeslp/bluesky-cli/internal/config"
	"github.com/lukeslp/bluesky-cli/pkg/llm"
	"github.com/lukeslp/bluesky-cli/pkg/llm/openai"
)

// ErrAIUnavailable reports that no completion backend is configured.
var ErrAIUnavailable = errors.New("AI not configured: set OPENAI_API_KEY, ANTHROPIC_API_KEY, or use ollama")

// temperature is fixed for analysis calls; the output should be stable
// across runs of the same input.
const temperature = 0.3

const defaultPromptBudget = 6000

const vibeSystemPrompt = `You are an insightful social media analyst. Analyze the provided BlueSky posts and provide a 'vibe check' that includes:
1. Overall tone and personality
2. Key topics and interests
3. Communication style
4. Notable patterns or themes
Be concise but insightful.`

// Analyzer runs completion-backed analyses over post text.
type Analyzer struct {
	provider llm.Provider

	// tokenizer may be nil when encoding setup failed; truncation is
	// then skipped and the full text is sent.
	tokenizer    *tiktoken.Tiktoken
	promptBudget int
}

// New creates an analyzer over an existing provider. A nil provider is
// allowed; analyses then fail with ErrAIUnavailable.
func New(provider llm.Provider, model string, promptBudget int) *Analyzer {
	if promptBudget <= 0 {
		promptBudget = defaultPromptBudget
	}

	tokenizer, err := tiktoken.EncodingForModel(model)
	if err != nil {
		tokenizer, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			slog.Warn("tokenizer unavailable, prompt truncation disabled", "error", err)
			tokenizer = nil
		}
	}

	return &Analyzer{
		provider:     provider,
		tokenizer:    tokenizer,
		promptBudget: promptBudget,
	}
}

// FromAIConfig builds an analyzer from resolved AI configuration. An
// unavailable configuration yields an analyzer with no provider.
func FromAIConfig(ai config.AIConfig) *Analyzer {
	var provider llm.Provider
	if ai.Available() {
		provider = openai.New(&llm.Config{
			BaseURL:     ai.BaseURL,
			APIKey:      ai.APIKey,
			Model:       ai.Model,
			Temperature: temperature,
		})
	}
	return New(provider, ai.Model, ai.MaxPromptTokens)
}

// Available reports whether analyses can run.
func (a *Analyzer) Available() bool {
	return a.provider != nil
}

// VibeCheck analyzes posting tone, topics, and style.
func (a *Analyzer) VibeCheck(ctx context.Context, text string) (string, error) {
	result, err := a.complete(ctx, []llm.Message{
		{Role: "system", Content: vibeSystemPrompt},
		{Role: "user", Content: "Analyze these BlueSky posts:\n\n" + a.fit(text)},
	})
	if err != nil {
		return "", fmt.Errorf("vibe check: %w", err)
	}
	return result, nil
}

// Summarize produces a concise summary of the posts.
func (a *Analyzer) Summarize(ctx context.Context, text string) (string, error) {
	result, err := a.complete(ctx, []llm.Message{
		{Role: "user", Content: "Summarize these BlueSky posts concisely, capturing key themes:\n\n" + a.fit(text)},
	})
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return result, nil
}

func (a *Analyzer) complete(ctx context.Context, messages []llm.Message) (string, error) {
	if a.provider == nil {
		return "", ErrAIUnavailable
	}
	resp, err := a.provider.Complete(ctx, messages)
	if err != nil {
		return "", err
	}
	slog.Debug("analysis complete",
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens)
	return strings.TrimSpace(resp.Content), nil
}

// fit truncates text to the prompt token budget.
func (a *Analyzer) fit(text string) string {
	if a.tokenizer == nil {
		return text
	}
	tokens := a.tokenizer.Encode(text, nil, nil)
	if len(tokens) <= a.promptBudget {
		return text
	}
	slog.Debug("truncating prompt to token budget",
		"tokens", len(tokens), "budget", a.promptBudget)
	return a.tokenizer.Decode(tokens[:a.promptBudget])
}
