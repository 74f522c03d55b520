// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete slackr CLI command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Rachel-Huang77/6080-slackr/cmd/slackr/cli"
	"github.com/Rachel-Huang77/6080-slackr/lib/version"
)

// Root builds and returns the complete slackr CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "slackr",
		Description: `Slackr: a terminal client for the Slackr chat server.

Log in once, then manage channels, messages, and your profile from
scripts or open the full-screen chat interface with "slackr ui".`,
		Subcommands: []*cli.Command{
			cli.LoginCommand(),
			cli.RegisterCommand(),
			cli.LogoutCommand(),
			cli.WhoAmICommand(),
			ChannelCommand(),
			MessageCommand(),
			UserCommand(),
			UICommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Printf("slackr %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Authenticate (saves the session locally)",
				Command:     "slackr login alice@example.com",
			},
			{
				Description: "Open the interactive chat interface",
				Command:     "slackr ui",
			},
			{
				Description: "List the channels you can see",
				Command:     "slackr channel list",
			},
			{
				Description: "Send a message from a script",
				Command:     "slackr message send 3 deploy finished",
			},
			{
				Description: "Read the latest page of a channel",
				Command:     "slackr message list 3",
			},
		},
	}
}
