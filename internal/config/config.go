package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config is the on-disk configuration for the Bluesky CLI and tool server.
// Environment variables override file values; see Load.
type Config struct {
	LogLevel string `json:"log_level"`
	Bluesky  struct {
		Host       string `json:"host"`
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	} `json:"bluesky"`
	AI struct {
		Provider        string `json:"provider"`
		OpenAIKey       string `json:"openai_api_key"`
		AnthropicKey    string `json:"anthropic_api_key"`
		BaseURL         string `json:"base_url"`
		Model           string `json:"model"`
		MaxPromptTokens int    `json:"max_prompt_tokens"`
	} `json:"ai"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".bluesky-cli", "config.json")
}

// Load reads configuration from path, writing defaults when the file does
// not exist. Environment variables take highest precedence:
// BSKY_IDENTIFIER (or BSKY_HANDLE), BSKY_PASSWORD, AI_PROVIDER,
// OPENAI_API_KEY, ANTHROPIC_API_KEY, and OLLAMA_BASE_URL when the
// provider is ollama.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LogLevel = "info"
	cfg.Bluesky.Host = "https://bsky.social"
	cfg.AI.Provider = "openai"
	cfg.AI.MaxPromptTokens = 6000

	// Load from file if exists, otherwise write defaults
	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if os.IsNotExist(err) {
		if err := writeDefaults(path, cfg); err != nil {
			return nil, err
		}
	}

	// Override from env (highest precedence)
	if id := os.Getenv("BSKY_IDENTIFIER"); id != "" {
		cfg.Bluesky.Identifier = id
	} else if id := os.Getenv("BSKY_HANDLE"); id != "" {
		cfg.Bluesky.Identifier = id
	}
	if pw := os.Getenv("BSKY_PASSWORD"); pw != "" {
		cfg.Bluesky.Password = pw
	}
	if provider := os.Getenv("AI_PROVIDER"); provider != "" {
		cfg.AI.Provider = provider
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.AI.OpenAIKey = key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		cfg.AI.AnthropicKey = key
	}
	if base := os.Getenv("OLLAMA_BASE_URL"); base != "" && strings.EqualFold(cfg.AI.Provider, "ollama") {
		cfg.AI.BaseURL = base
	}

	return cfg, nil
}

// Save writes the configuration to path atomically.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

func writeDefaults(path string, cfg *Config) error {
	return Save(path, cfg)
}

// ListValues returns the configuration as a flat dot-keyed map,
// optionally masking secret values.
func ListValues(cfg *Config, mask bool) (map[string]any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var nested map[string]any
	if err := json.Unmarshal(data, &nested); err != nil {
		return nil, err
	}
	flat := Flatten(nested)
	if mask {
		flat = MaskSecrets(flat)
	}
	return flat, nil
}

// GetValue loads the config at path and returns the value for the given
// dot-separated key.
func GetValue(path, key string) (any, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	flat, err := ListValues(cfg, false)
	if err != nil {
		return nil, err
	}
	v, ok := flat[key]
	if !ok {
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
	return v, nil
}

// SetValue loads the config at path, sets the given dot-separated key to
// value, and saves the result.
func SetValue(path, key, value string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	flat, err := ListValues(cfg, false)
	if err != nil {
		return err
	}
	if _, ok := flat[key]; !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}
	flat[key] = coerce(flat[key], value)

	nested := Unflatten(flat)
	data, err := json.Marshal(nested)
	if err != nil {
		return err
	}
	updated := &Config{}
	if err := json.Unmarshal(data, updated); err != nil {
		return err
	}
	return Save(path, updated)
}

// coerce converts a string value to the type of the existing value.
func coerce(existing any, value string) any {
	switch existing.(type) {
	case float64:
		var n float64
		if _, err := fmt.Sscanf(value, "%g", &n); err == nil {
			return n
		}
	case bool:
		return value == "true"
	}
	return value
}
