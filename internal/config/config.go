// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete shopbot configuration.
type Config struct {
	// Server configuration
	Server ServerConfig `toml:"server"`

	// Chat configuration
	Chat ChatConfig `toml:"chat"`

	// Export configuration
	Export ExportConfig `toml:"export"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// ServerConfig contains backend connection configuration.
type ServerConfig struct {
	// BaseURL is the base URL of the shopbot API (e.g. http://localhost:5000/api)
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the per-request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs"`
	// AccessToken pre-seeds the bearer token, bypassing interactive login.
	// SECURITY: Prefer the SHOPBOT_ACCESS_TOKEN env var over storing this
	// in the config file.
	AccessToken string `toml:"access_token"`
}

// ChatConfig contains conversation behavior configuration.
type ChatConfig struct {
	// MaxInputChars is the maximum length of a single chat message
	MaxInputChars int `toml:"max_input_chars"`
	// DraftAutosave controls whether unsent input is persisted across restarts
	DraftAutosave bool `toml:"draft_autosave"`
}

// ExportConfig contains chat export configuration.
type ExportConfig struct {
	// Dir is the directory export artifacts are written to (empty = cwd)
	Dir string `toml:"dir"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme"`
	// ShowQuickActions displays the quick-action shortcuts panel
	ShowQuickActions bool `toml:"show_quick_actions"`
	// ShowSessions displays the recent-conversations panel
	ShowSessions bool `toml:"show_sessions"`
	// CompactMode uses a more compact UI layout
	CompactMode bool `toml:"compact_mode"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:     "http://localhost:5000/api",
			TimeoutSecs: 60,
		},
		Chat: ChatConfig{
			MaxInputChars: 500,
			DraftAutosave: true,
		},
		Export: ExportConfig{
			Dir: "",
		},
		UI: UIConfig{
			Theme:            "dark",
			ShowQuickActions: true,
			ShowSessions:     true,
			CompactMode:      false,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the shopbot configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".shopbot"), nil
}

// Path returns the path to the TOML config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureDir ensures the config directory exists.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ensureSecurePermissions checks and fixes permissions on config files.
// SECURITY: Config files should be 0600 (owner read/write only) because they
// may hold an access token.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}

	return nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load loads configuration from the default config file, falling back to
// defaults when no file exists. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific file path with full
// validation. A missing file is not an error; defaults are used.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		// SECURITY: Check and fix file permissions if needed
		if err := ensureSecurePermissions(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
		}

		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo saves the configuration to a TOML file.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	// SECURITY: Ensure permissions are correct even if file already existed
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# shopbot configuration file")
	fmt.Fprintln(file, "# Generated by shopbot - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// Server URL must parse and carry a scheme; a bare hostname silently
	// produces relative request URLs later.
	if c.Server.BaseURL != "" {
		u, err := url.Parse(c.Server.BaseURL)
		if err != nil {
			errs = append(errs, ValidationError{
				Field:   "server.base_url",
				Message: fmt.Sprintf("invalid URL: %v", err),
			})
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errs = append(errs, ValidationError{
				Field:   "server.base_url",
				Message: fmt.Sprintf("scheme must be http or https, got %q", u.Scheme),
			})
		}
	}

	if c.Server.TimeoutSecs < 1 || c.Server.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{
			Field:   "server.timeout_secs",
			Message: fmt.Sprintf("must be 1-600, got %d", c.Server.TimeoutSecs),
		})
	}

	if c.Chat.MaxInputChars < 1 || c.Chat.MaxInputChars > 10000 {
		errs = append(errs, ValidationError{
			Field:   "chat.max_input_chars",
			Message: fmt.Sprintf("must be 1-10000, got %d", c.Chat.MaxInputChars),
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Server.BaseURL == "" {
		c.Server.BaseURL = defaults.Server.BaseURL
	}
	if c.Server.TimeoutSecs == 0 {
		c.Server.TimeoutSecs = defaults.Server.TimeoutSecs
	}
	if c.Chat.MaxInputChars == 0 {
		c.Chat.MaxInputChars = defaults.Chat.MaxInputChars
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - SHOPBOT_SERVER_URL: overrides server.base_url
//   - SHOPBOT_ACCESS_TOKEN: overrides server.access_token
//   - SHOPBOT_TIMEOUT_SECS: overrides server.timeout_secs
//   - SHOPBOT_THEME: overrides ui.theme
func (c *Config) ApplyEnvOverrides() {
	if serverURL := os.Getenv("SHOPBOT_SERVER_URL"); serverURL != "" {
		c.Server.BaseURL = serverURL
	}

	if token := os.Getenv("SHOPBOT_ACCESS_TOKEN"); token != "" {
		c.Server.AccessToken = token
	}

	if timeout := os.Getenv("SHOPBOT_TIMEOUT_SECS"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil && secs > 0 {
			c.Server.TimeoutSecs = secs
		}
	}

	if theme := os.Getenv("SHOPBOT_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
