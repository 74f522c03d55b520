// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Rachel-Huang77/6080-slackr/api"
	"github.com/Rachel-Huang77/6080-slackr/lib/config"
	"github.com/Rachel-Huang77/6080-slackr/lib/ident"
)

// StoredSession holds the saved authentication state. Stored at the
// well-known path returned by SessionFilePath and loaded automatically
// by commands that require authentication. Set up once via
// "slackr login", then transparent.
type StoredSession struct {
	// UserID is the authenticated user's ID.
	UserID ident.UserID `json:"user_id"`

	// Token is the bearer token proving the user's identity.
	Token string `json:"token"`

	// Server is the base URL of the backend the token belongs to.
	// Included so a saved session is never replayed against a
	// different server.
	Server string `json:"server"`
}

// SessionFilePath returns the path to the saved session file. Checks
// the SLACKR_SESSION_FILE environment variable first, then the config
// file's session_file setting, then falls back to
// ~/.config/slackr/session.json.
func SessionFilePath() string {
	if envPath := os.Getenv("SLACKR_SESSION_FILE"); envPath != "" {
		return envPath
	}
	if configuration, err := config.Load(); err == nil && configuration.SessionFile != "" {
		return configuration.SessionFile
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback — this should rarely happen.
			return filepath.Join("/tmp", "slackr-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "slackr", "session.json")
}

// LoadStoredSession reads the saved session from the well-known path.
// Returns a clear error directing the user to "slackr login" if no
// session exists.
func LoadStoredSession() (*StoredSession, error) {
	path := SessionFilePath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no slackr session found at %s — run \"slackr login\" first", path)
		}
		return nil, fmt.Errorf("reading session file %s: %w", path, err)
	}

	var session StoredSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parsing session file %s: %w", path, err)
	}

	if session.UserID.IsZero() {
		return nil, fmt.Errorf("session file %s has no user_id", path)
	}
	if session.Token == "" {
		return nil, fmt.Errorf("session file %s has no token", path)
	}
	if session.Server == "" {
		return nil, fmt.Errorf("session file %s has no server", path)
	}

	return &session, nil
}

// SaveStoredSession writes a session to the well-known path. Creates
// the parent directory with mode 0700 if it doesn't exist. The file is
// written with mode 0600 (owner-only read/write) since it contains a
// bearer token.
func SaveStoredSession(session *StoredSession) error {
	path := SessionFilePath()
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing session file %s: %w", path, err)
	}
	return nil
}

// RemoveStoredSession deletes the saved session file. A missing file
// is not an error — logout is idempotent.
func RemoveStoredSession() error {
	err := os.Remove(SessionFilePath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// ServerURL resolves the backend base URL: the --server flag value if
// non-empty, else the config file, else the built-in default.
func ServerURL(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	configuration, err := config.Load()
	if err != nil || configuration.Server == "" {
		return config.DefaultServer
	}
	return configuration.Server
}

// ConnectSession rebuilds an authenticated API session from the saved
// session file. The caller must call Close on the returned Session.
func ConnectSession(logger *slog.Logger) (*api.Session, error) {
	stored, err := LoadStoredSession()
	if err != nil {
		return nil, err
	}

	client, err := api.NewClient(api.ClientConfig{
		BaseURL: stored.Server,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	return client.SessionFromToken(stored.UserID, stored.Token)
}
