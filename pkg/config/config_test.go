package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Provider != "gemini" {
		t.Errorf("Provider = %q, want gemini", cfg.Provider)
	}
	if cfg.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q, want gemini-2.5-flash", cfg.Model)
	}
	if cfg.PingDelayMillis != 500 {
		t.Errorf("PingDelayMillis = %d, want 500", cfg.PingDelayMillis)
	}
}

func TestLoadMissingFileCreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg, gotPath, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if gotPath != path {
		t.Errorf("path = %q, want %q", gotPath, path)
	}
	if cfg.Provider != "gemini" {
		t.Errorf("Provider = %q, want gemini", cfg.Provider)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config file not created: %v", err)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := Default()
	cfg.Provider = "openai"
	cfg.Model = "gpt-4o-mini"
	cfg.APIKey = "test-key"
	cfg.UI.ShowTimestamps = true
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", loaded.Provider)
	}
	if loaded.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want gpt-4o-mini", loaded.Model)
	}
	if !loaded.UI.ShowTimestamps {
		t.Error("ShowTimestamps not persisted")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	t.Setenv("ROBOTAI_API_KEY", "env-key")
	t.Setenv("ROBOTAI_MODEL", "gemini-2.5-pro")

	cfg, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", cfg.APIKey)
	}
	if cfg.Model != "gemini-2.5-pro" {
		t.Errorf("Model = %q, want gemini-2.5-pro", cfg.Model)
	}
}

func TestLoadGeminiKeyFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	t.Setenv("ROBOTAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gemini-env-key")

	cfg, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "gemini-env-key" {
		t.Errorf("APIKey = %q, want gemini-env-key", cfg.APIKey)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "empty provider", mutate: func(c *Config) { c.Provider = "" }, wantErr: true},
		{name: "negative ping delay", mutate: func(c *Config) { c.PingDelayMillis = -1 }, wantErr: true},
		{name: "telegram without token", mutate: func(c *Config) { c.Telegram.Enabled = true }, wantErr: true},
		{name: "telegram with token", mutate: func(c *Config) {
			c.Telegram.Enabled = true
			c.Telegram.Token = "123:abc"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
