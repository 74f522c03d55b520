// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rachel-Huang77/6080-slackr/chatui"
	"github.com/Rachel-Huang77/6080-slackr/cmd/slackr/cli"
)

// UICommand returns the "slackr ui" command, which runs the full-screen
// chat interface.
func UICommand() *cli.Command {
	return &cli.Command{
		Name:    "ui",
		Summary: "Open the interactive chat interface",
		Description: `Open the full-screen terminal chat interface: channels on the
left, messages on the right. The status bar shows the key bindings for
whichever pane has focus; q quits.`,
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 0 {
				return fmt.Errorf("usage: slackr ui")
			}

			// While bubbletea owns the terminal nothing may write to
			// stderr; background records route into the status bar.
			logHandler := chatui.NewLogHandler(slog.LevelWarn)
			session, err := cli.ConnectSession(slog.New(logHandler))
			if err != nil {
				return err
			}
			defer session.Close()

			program := tea.NewProgram(
				chatui.NewModel(ctx, session),
				tea.WithAltScreen(),
				tea.WithContext(ctx),
			)
			logHandler.SetProgram(program)
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("running chat interface: %w", err)
			}
			return nil
		},
	}
}
