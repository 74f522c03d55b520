// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the slackr client.
//
// Configuration is read from a single YAML file specified by the
// SLACKR_CONFIG environment variable. When it is unset, built-in
// defaults apply, so the client works zero-config against a local
// backend. Environment variables never override file values — the
// file is the single source of truth, with only ${VAR} path expansion
// for portability.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is the client configuration.
type Config struct {
	// Server is the base URL of the backend REST API.
	Server string `yaml:"server"`

	// SessionFile overrides the default session file location
	// (~/.config/slackr/session.json).
	SessionFile string `yaml:"session_file"`

	// LogLevel controls slog output: "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
}

// DefaultServer is the backend address used when no config file sets
// one. Port 5005 is the backend's stock listen address.
const DefaultServer = "http://localhost:5005"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server:   DefaultServer,
		LogLevel: "info",
	}
}

// Load reads configuration from the path in SLACKR_CONFIG, falling
// back to defaults when the variable is unset.
func Load() (*Config, error) {
	path := os.Getenv("SLACKR_CONFIG")
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from a specific file path, merged over
// the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.Server = expandVars(cfg.Server)
	cfg.SessionFile = expandVars(cfg.SessionFile)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// SlogLevel maps the configured log_level string to a slog.Level.
// Empty or unrecognized values map to Info; Validate rejects anything
// outside the known set before this is consulted.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Server == "" {
		errs = append(errs, fmt.Errorf("server is required"))
	} else if _, err := url.Parse(c.Server); err != nil {
		errs = append(errs, fmt.Errorf("invalid server URL %q: %w", c.Server, err))
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level must be one of debug, info, warn, error"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// expandVars expands ${VAR} and ${VAR:-default} patterns from the
// process environment.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return parts[2]
		}
		return ""
	})
}
