// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/people-finder/internal/fetch"
	"github.com/jonathan/people-finder/internal/logger"
)

// Defaults for values not covered by the fetch and logger packages.
const (
	DefaultPort      = 8080
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// Config can be loaded from a JSON file and overlaid by environment variables.
// All fields are optional; missing values fall back to Default().
type Config struct {
	// Identity API
	SearchURL   string `json:"search_url,omitempty"`   // Streaming search endpoint
	BioURL      string `json:"bio_url,omitempty"`      // Base of the bio endpoint
	HTTPTimeout string `json:"http_timeout,omitempty"` // Go duration, e.g. "30s"
	UserAgent   string `json:"user_agent,omitempty"`

	// Server
	Port        int    `json:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL URL for the users store; in-memory when empty

	// Logging
	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"` // console or json
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SearchURL:   fetch.DefaultSearchURL,
		BioURL:      fetch.DefaultBioURL,
		HTTPTimeout: fetch.DefaultTimeout.String(),
		UserAgent:   fetch.DefaultUserAgent,
		Port:        DefaultPort,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
	}
}

// Load builds the effective configuration: defaults, then the optional JSON
// file at path, then the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(Default())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields with the environment variables that are set.
func (c *Config) ApplyEnv() error {
	strs := map[string]*string{
		"SEARCH_URL":   &c.SearchURL,
		"BIO_URL":      &c.BioURL,
		"HTTP_TIMEOUT": &c.HTTPTimeout,
		"USER_AGENT":   &c.UserAgent,
		"DATABASE_URL": &c.DatabaseURL,
		"LOG_LEVEL":    &c.LogLevel,
		"LOG_FORMAT":   &c.LogFormat,
	}
	for key, field := range strs {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*field = strings.TrimSpace(v)
		}
	}

	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	for name, raw := range map[string]string{"search_url": c.SearchURL, "bio_url": c.BioURL} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: '%s' must be an absolute URL: %q", name, raw)
		}
	}

	if c.HTTPTimeout != "" {
		d, err := time.ParseDuration(c.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("config error: invalid 'http_timeout': %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'http_timeout' must be positive")
		}
	}

	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("config error: 'log_format' must be console or json")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.SearchURL == "" {
		result.SearchURL = defaults.SearchURL
	}
	if result.BioURL == "" {
		result.BioURL = defaults.BioURL
	}
	if result.HTTPTimeout == "" {
		result.HTTPTimeout = defaults.HTTPTimeout
	}
	if result.UserAgent == "" {
		result.UserAgent = defaults.UserAgent
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	return result
}

// Timeout returns the parsed HTTP timeout, or the fetch default when unset or invalid.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil || d <= 0 {
		return fetch.DefaultTimeout
	}
	return d
}

// FetchOptions returns client options for the identity API.
func (c *Config) FetchOptions() *fetch.Options {
	return &fetch.Options{
		SearchURL: c.SearchURL,
		BioURL:    c.BioURL,
		Timeout:   c.Timeout(),
		UserAgent: c.UserAgent,
	}
}

// LoggerOptions returns root logger options.
func (c *Config) LoggerOptions() logger.Options {
	opts := logger.DefaultOptions()
	if c.LogLevel != "" {
		opts.Level = c.LogLevel
	}
	if c.LogFormat != "" {
		opts.Format = c.LogFormat
	}
	return opts
}
