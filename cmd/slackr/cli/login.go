// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/Rachel-Huang77/6080-slackr/api"
	"github.com/Rachel-Huang77/6080-slackr/lib/secret"
)

// LoginCommand returns the "slackr login" command.
func LoginCommand() *Command {
	var serverFlag string
	var passwordFile string

	return &Command{
		Name:    "login",
		Summary: "Authenticate and save a session locally",
		Description: `Authenticate against the backend with email and password.

On success the session token is saved to the well-known session file
and used automatically by every other command until "slackr logout".`,
		Usage: "slackr login <email> [flags]",
		Examples: []Example{
			{
				Description: "Log in, prompting for the password",
				Command:     "slackr login alice@example.com",
			},
			{
				Description: "Log in against a non-default server",
				Command:     "slackr login alice@example.com --server http://localhost:5005",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flags.StringVar(&serverFlag, "server", "", "backend base URL (default from config)")
			flags.StringVar(&passwordFile, "password-file", "", "read the password from a file instead of prompting")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: slackr login <email>")
			}
			email := args[0]
			server := ServerURL(serverFlag)

			password, err := readPassword(passwordFile, "Password")
			if err != nil {
				return err
			}
			defer password.Close()

			client, err := api.NewClient(api.ClientConfig{BaseURL: server, Logger: logger})
			if err != nil {
				return err
			}

			session, err := client.Login(ctx, email, password)
			if err != nil {
				// Nothing is persisted on a failed login.
				return err
			}
			defer session.Close()

			if err := SaveStoredSession(&StoredSession{
				UserID: session.UserID(),
				Token:  session.Token(),
				Server: server,
			}); err != nil {
				return err
			}

			fmt.Printf("Logged in as %s (user %s)\n", email, session.UserID())
			return nil
		},
	}
}

// RegisterCommand returns the "slackr register" command.
func RegisterCommand() *Command {
	var serverFlag string
	var passwordFile string

	return &Command{
		Name:    "register",
		Summary: "Create a new account and log in",
		Description: `Create a new account. The backend logs the new account in
immediately, so on success the session is saved exactly as with login.

When prompting, the password must be entered twice; a mismatch aborts
before any request is sent.`,
		Usage: "slackr register <email> <name> [flags]",
		Examples: []Example{
			{
				Description: "Register a new account",
				Command:     "slackr register alice@example.com \"Alice Liddell\"",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("register", pflag.ContinueOnError)
			flags.StringVar(&serverFlag, "server", "", "backend base URL (default from config)")
			flags.StringVar(&passwordFile, "password-file", "", "read the password from a file instead of prompting")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 2 {
				return fmt.Errorf("usage: slackr register <email> <name>")
			}
			email, name := args[0], args[1]
			server := ServerURL(serverFlag)

			var password *secret.Buffer
			if passwordFile != "" {
				var err error
				password, err = secret.ReadFromPath(passwordFile)
				if err != nil {
					return err
				}
			} else {
				var err error
				password, err = secret.Prompt("Password")
				if err != nil {
					return err
				}
				confirmation, err := secret.Prompt("Confirm password")
				if err != nil {
					password.Close()
					return err
				}
				match := bytes.Equal(password.Bytes(), confirmation.Bytes())
				confirmation.Close()
				if !match {
					password.Close()
					return fmt.Errorf("passwords do not match")
				}
			}
			defer password.Close()

			client, err := api.NewClient(api.ClientConfig{BaseURL: server, Logger: logger})
			if err != nil {
				return err
			}

			session, err := client.Register(ctx, email, name, password)
			if err != nil {
				return err
			}
			defer session.Close()

			if err := SaveStoredSession(&StoredSession{
				UserID: session.UserID(),
				Token:  session.Token(),
				Server: server,
			}); err != nil {
				return err
			}

			fmt.Printf("Registered %s (user %s)\n", email, session.UserID())
			return nil
		},
	}
}

// LogoutCommand returns the "slackr logout" command.
func LogoutCommand() *Command {
	return &Command{
		Name:    "logout",
		Summary: "Invalidate the session and remove the saved token",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			session, err := ConnectSession(logger)
			if err == nil {
				defer session.Close()
				if err := session.Logout(ctx); err != nil {
					// The local session is removed regardless: a failed
					// server-side logout usually means the token was
					// already dead.
					logger.Warn("server-side logout failed", "error", err)
				}
			}

			if err := RemoveStoredSession(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

// WhoAmICommand returns the "slackr whoami" command.
func WhoAmICommand() *Command {
	return &Command{
		Name:    "whoami",
		Summary: "Show the logged-in user and server",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			stored, err := LoadStoredSession()
			if err != nil {
				return err
			}

			fmt.Printf("User:   %s\n", stored.UserID)
			fmt.Printf("Server: %s\n", stored.Server)

			// Best-effort profile fetch for the human-readable identity.
			session, err := ConnectSession(logger)
			if err != nil {
				return nil
			}
			defer session.Close()
			profile, err := session.Profile(ctx, stored.UserID)
			if err != nil {
				if api.IsAuthFailure(err) {
					// Report the expiry both on stdout and through the
					// exit code so scripts can detect it.
					fmt.Println("Status: session expired — run \"slackr login\"")
					return &ExitError{Code: ExitAuth}
				}
				return nil
			}
			fmt.Printf("Name:   %s\n", profile.Name)
			fmt.Printf("Email:  %s\n", profile.Email)
			return nil
		},
	}
}

// readPassword obtains a password from a file when path is non-empty,
// otherwise by prompting on the terminal.
func readPassword(path, label string) (*secret.Buffer, error) {
	if path != "" {
		return secret.ReadFromPath(path)
	}
	return secret.Prompt(label)
}
