// Package config holds the client configuration: where the API lives, where
// the token is stored, and whether the optional notification channel is on.
// Values come from a YAML file, a .env file, and environment variables, in
// increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all client settings.
type Config struct {
	// API configures the remote server connection.
	API APIConfig `yaml:"api"`

	// Auth configures credential storage.
	Auth AuthConfig `yaml:"auth"`

	// Notifications configures the optional WebSocket channel.
	Notifications NotificationsConfig `yaml:"notifications"`

	// Logging configures log output.
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the HTTP API client.
type APIConfig struct {
	// BaseURL is the server root, without the /api suffix.
	BaseURL string `yaml:"base_url"`
	// Timeout bounds every request.
	Timeout time.Duration `yaml:"timeout"`
}

// AuthConfig configures token persistence.
type AuthConfig struct {
	// TokenFile overrides the default token location under the user
	// config directory.
	TokenFile string `yaml:"token_file"`
}

// NotificationsConfig configures the inert-by-default WebSocket channel.
type NotificationsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoggingConfig configures log verbosity.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the defaults used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 10 * time.Second,
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "academy.yaml"
	}
	return filepath.Join(dir, "ehpad-academy", "config.yaml")
}

// Load reads the config file at path, falling back to defaults when the
// file is missing, then applies .env and environment overrides.
func Load(path string) (*Config, error) {
	// Same convention as the web client: a .env next to the binary can
	// supply ACADEMY_* variables. Missing files are ignored.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides lets environment variables win over file values.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("ACADEMY_API_URL"); url != "" {
		c.API.BaseURL = url
	}
	if raw := os.Getenv("ACADEMY_API_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			c.API.Timeout = d
		}
	}
	if path := os.Getenv("ACADEMY_TOKEN_FILE"); path != "" {
		c.Auth.TokenFile = path
	}
	if raw := os.Getenv("ACADEMY_NOTIFICATIONS"); raw != "" {
		if enabled, err := strconv.ParseBool(raw); err == nil {
			c.Notifications.Enabled = enabled
		}
	}
}
