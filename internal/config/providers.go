package config

import "strings"

// ProviderProfile describes one supported AI backend. All three speak the
// OpenAI chat-completions protocol; they differ only in endpoint, credential
// source, and default model.
type ProviderProfile struct {
	EnvKey       string
	BaseURL      string
	DefaultModel string
}

// Providers maps provider names to their profiles.
var Providers = map[string]ProviderProfile{
	"openai": {
		EnvKey:       "OPENAI_API_KEY",
		BaseURL:      "https://api.openai.com/v1",
		DefaultModel: "gpt-4o-mini",
	},
	"anthropic": {
		EnvKey:       "ANTHROPIC_API_KEY",
		BaseURL:      "https://api.anthropic.com/v1",
		DefaultModel: "claude-3-haiku-20240307",
	},
	"ollama": {
		// Local inference, no API key needed.
		EnvKey:       "",
		BaseURL:      "http://localhost:11434/v1",
		DefaultModel: "llama3.2",
	},
}

// AIConfig is the resolved completion-service configuration for the
// selected provider.
type AIConfig struct {
	Provider        string
	APIKey          string
	BaseURL         string
	Model           string
	MaxPromptTokens int
}

// Available reports whether a completion client can be constructed.
func (a AIConfig) Available() bool {
	return a.APIKey != ""
}

// ResolveAI resolves the effective AI configuration from the config file
// values. Unknown providers fall back to openai; ollama needs no key and
// gets a placeholder so Available holds.
func (c *Config) ResolveAI() AIConfig {
	name := strings.ToLower(c.AI.Provider)
	profile, ok := Providers[name]
	if !ok {
		name = "openai"
		profile = Providers[name]
	}

	out := AIConfig{
		Provider:        name,
		BaseURL:         profile.BaseURL,
		Model:           profile.DefaultModel,
		MaxPromptTokens: c.AI.MaxPromptTokens,
	}
	if c.AI.BaseURL != "" {
		out.BaseURL = c.AI.BaseURL
	}
	if c.AI.Model != "" {
		out.Model = c.AI.Model
	}

	switch name {
	case "openai":
		out.APIKey = c.AI.OpenAIKey
	case "anthropic":
		out.APIKey = c.AI.AnthropicKey
	case "ollama":
		out.APIKey = "ollama"
	}
	return out
}

// HasBlueskyCredentials reports whether a login identifier and password
// are configured.
func (c *Config) HasBlueskyCredentials() bool {
	return c.Bluesky.Identifier != "" && c.Bluesky.Password != ""
}
