// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rachel-Huang77/6080-slackr/cmd/slackr/cli"
	"github.com/Rachel-Huang77/6080-slackr/cmd/slackr/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output return an ExitError with
		// the desired exit code. Don't print a redundant "error:" line
		// for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(cli.ExitCodeFor(err))
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return commands.Root().Execute(ctx, os.Args[1:], cli.NewCommandLogger())
}
