// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for hookchat.
//
// Configuration lives in TOML at ~/.hookchat/config.toml, with built-in
// defaults and HOOKCHAT_* environment variable overrides. Precedence:
// environment > file > defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete hookchat configuration.
type Config struct {
	// Webhooks configures the backend endpoints.
	Webhooks WebhookConfig `toml:"webhooks"`

	// UI configures presentation.
	UI UIConfig `toml:"ui"`
}

// WebhookConfig holds the webhook endpoint configuration.
type WebhookConfig struct {
	// ChatBaseURL is the base URL for the chat/media endpoints
	// (/Chatbot, /image, /Generate_image, /Generate_audio, /web_quiz).
	ChatBaseURL string `toml:"chat_base_url"`

	// AuthBaseURL is the base URL for the account endpoints
	// (/signup, /login, /verify-email, ...). The original deployment
	// hosts these on a different webhook than the chat endpoints.
	AuthBaseURL string `toml:"auth_base_url"`

	// AuthToken, when set, is sent as a bearer token on chat calls.
	// The observed backend takes none; this is the opt-in hook for
	// deployments that front the webhooks with auth.
	AuthToken string `toml:"auth_token"`

	// Timeout for non-streaming requests, in seconds.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// Markdown enables glamour rendering of assistant messages.
	Markdown bool `toml:"markdown"`

	// SidebarWidth is the previous-chats column width in cells.
	SidebarWidth int `toml:"sidebar_width"`
}

// Default webhook hosts from the observed deployment.
const (
	defaultChatBaseURL = "https://ayvzjvz0.rpcld.net/webhook-test"
	defaultAuthBaseURL = "https://o4tdkmt2.rpcl.app/webhook-test"
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Webhooks: WebhookConfig{
			ChatBaseURL:    defaultChatBaseURL,
			AuthBaseURL:    defaultAuthBaseURL,
			TimeoutSeconds: 60,
		},
		UI: UIConfig{
			Markdown:     true,
			SidebarWidth: 28,
		},
	}
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.Webhooks.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.Webhooks.TimeoutSeconds) * time.Second
}

// =============================================================================
// LOADING
// =============================================================================

// Dir returns the hookchat configuration directory (~/.hookchat),
// creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".hookchat")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config from the default location, applying defaults
// and environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies HOOKCHAT_* environment variables on top of
// file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HOOKCHAT_CHAT_URL"); v != "" {
		cfg.Webhooks.ChatBaseURL = v
	}
	if v := os.Getenv("HOOKCHAT_AUTH_URL"); v != "" {
		cfg.Webhooks.AuthBaseURL = v
	}
	if v := os.Getenv("HOOKCHAT_AUTH_TOKEN"); v != "" {
		cfg.Webhooks.AuthToken = v
	}
}

// Validate checks that the configured URLs are usable.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"chat_base_url": c.Webhooks.ChatBaseURL,
		"auth_base_url": c.Webhooks.AuthBaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: %s %q is not an absolute URL", name, raw)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("config: %s %q must be http or https", name, raw)
		}
	}
	if c.UI.SidebarWidth <= 0 {
		c.UI.SidebarWidth = 28
	}
	return nil
}

// Save writes the config as TOML to the default location.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}
