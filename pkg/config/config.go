// Package config provides configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration settings.
type Config struct {
	// Identity
	AgentName string `json:"agent_name,omitempty"` // Display name for the assistant

	// AI provider settings
	Provider   string `json:"provider"`               // "gemini", or any gollm provider name
	APIKey     string `json:"api_key"`                //
	Model      string `json:"model,omitempty"`        //
	APIBaseURL string `json:"api_base_url,omitempty"` // Custom endpoint override

	// Collaborator endpoints
	IPEndpoint      string `json:"ip_endpoint,omitempty"`
	TikTokEndpoint  string `json:"tiktok_endpoint,omitempty"`
	TikTokAPIKey    string `json:"tiktok_api_key,omitempty"`
	PingDelayMillis int    `json:"ping_delay_ms,omitempty"`

	// Telegram settings
	Telegram TelegramConfig `json:"telegram"`

	// UI settings
	UI UIConfig `json:"ui"`

	// Storage
	StoragePath string `json:"storage_path,omitempty"` // Log and state directory
}

// TelegramConfig enables the optional Telegram surface.
type TelegramConfig struct {
	Enabled bool   `json:"enabled"`
	Token   string `json:"token,omitempty"`
	ChatID  int64  `json:"chat_id,omitempty"`
}

// UIConfig tunes the terminal surface.
type UIConfig struct {
	ShowTimestamps bool `json:"show_timestamps"`
	CompactMode    bool `json:"compact_mode"`
}

// Default returns a config with sensible defaults.
func Default() *Config {
	return &Config{
		AgentName:       "Robot AI",
		Provider:        "gemini",
		Model:           "gemini-2.5-flash",
		PingDelayMillis: 500,
		StoragePath:     defaultStoragePath(),
	}
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".robotai"
	}
	return filepath.Join(home, ".robotai")
}

// Load reads configuration from path, or from the default location when
// path is empty. A missing file yields defaults and creates the file, so
// first-run users get a template to fill in. Environment variables
// override file values. Returns the config and the resolved path.
func Load(path string) (*Config, string, error) {
	if path == "" {
		path = filepath.Join(defaultStoragePath(), "config.json")
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if saveErr := Save(cfg, path); saveErr != nil {
			return nil, path, fmt.Errorf("create default config: %w", saveErr)
		}
	case err != nil:
		return nil, path, fmt.Errorf("read config: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, path, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Save writes the config as indented JSON, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0600)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ROBOTAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if cfg.APIKey == "" && strings.EqualFold(cfg.Provider, "gemini") {
		if v := os.Getenv("GEMINI_API_KEY"); v != "" {
			cfg.APIKey = v
		}
	}
	if v := os.Getenv("ROBOTAI_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("ROBOTAI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.Token = v
		cfg.Telegram.Enabled = true
	}
}

// Validate checks settings that would otherwise fail deep inside a
// collaborator call.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Provider) == "" {
		return fmt.Errorf("config: provider must not be empty")
	}
	if c.PingDelayMillis < 0 {
		return fmt.Errorf("config: ping_delay_ms must not be negative")
	}
	if c.Telegram.Enabled && strings.TrimSpace(c.Telegram.Token) == "" {
		return fmt.Errorf("config: telegram enabled without a token")
	}
	return nil
}
