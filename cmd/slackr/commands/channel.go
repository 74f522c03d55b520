// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/Rachel-Huang77/6080-slackr/api"
	"github.com/Rachel-Huang77/6080-slackr/cmd/slackr/cli"
	"github.com/Rachel-Huang77/6080-slackr/lib/ident"
)

// ChannelCommand returns the "slackr channel" command tree.
func ChannelCommand() *cli.Command {
	return &cli.Command{
		Name:    "channel",
		Summary: "List, create, and manage channels",
		Subcommands: []*cli.Command{
			channelListCommand(),
			channelCreateCommand(),
			channelShowCommand(),
			channelUpdateCommand(),
			channelJoinCommand(),
			channelLeaveCommand(),
			channelInviteCommand(),
		},
	}
}

func channelListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Summary: "List all visible channels",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			session, err := cli.ConnectSession(logger)
			if err != nil {
				return err
			}
			defer session.Close()

			channels, err := session.Channels(ctx)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tVISIBILITY\tMEMBERS\tJOINED")
			for _, channel := range channels {
				visibility := "public"
				if channel.Private {
					visibility = "private"
				}
				joined := ""
				if slices.Contains(channel.Members, session.UserID()) {
					joined = "yes"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
					channel.ID, channel.Name, visibility, len(channel.Members), joined)
			}
			return tw.Flush()
		},
	}
}

func channelCreateCommand() *cli.Command {
	var description string
	var private bool

	return &cli.Command{
		Name:    "create",
		Summary: "Create a new channel",
		Usage:   "slackr channel create <name> [flags]",
		Examples: []cli.Example{
			{
				Description: "Create a private channel with a description",
				Command:     "slackr channel create launch-team --private --description \"Q3 launch planning\"",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("create", pflag.ContinueOnError)
			flags.StringVar(&description, "description", "", "channel description")
			flags.BoolVar(&private, "private", false, "make the channel invite-only")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: slackr channel create <name>")
			}

			session, err := cli.ConnectSession(logger)
			if err != nil {
				return err
			}
			defer session.Close()

			channelID, err := session.CreateChannel(ctx, api.CreateChannelRequest{
				Name:        args[0],
				Description: description,
				Private:     private,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created channel %s (%s)\n", args[0], channelID)
			return nil
		},
	}
}

func channelShowCommand() *cli.Command {
	return &cli.Command{
		Name:    "show",
		Summary: "Show a channel's details and member list",
		Usage:   "slackr channel show <channel-id>",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: slackr channel show <channel-id>")
			}
			channelID, err := ident.ParseChannelID(args[0])
			if err != nil {
				return err
			}

			session, err := cli.ConnectSession(logger)
			if err != nil {
				return err
			}
			defer session.Close()

			details, err := session.ChannelDetails(ctx, channelID)
			if err != nil {
				return err
			}

			visibility := "public"
			if details.Private {
				visibility = "private"
			}
			fmt.Printf("Name:        %s\n", details.Name)
			fmt.Printf("Visibility:  %s\n", visibility)
			if details.Description != "" {
				fmt.Printf("Description: %s\n", details.Description)
			}
			fmt.Printf("Creator:     %s\n", details.Creator)
			fmt.Printf("Created:     %s\n", details.CreatedAt.Local().Format("2006-01-02 15:04"))
			fmt.Printf("Members:     %d\n", len(details.Members))
			for _, member := range details.Members {
				fmt.Printf("  - %s\n", member)
			}
			return nil
		},
	}
}

func channelUpdateCommand() *cli.Command {
	var name string
	var description string

	return &cli.Command{
		Name:    "update",
		Summary: "Update a channel's name and description",
		Usage:   "slackr channel update <channel-id> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("update", pflag.ContinueOnError)
			flags.StringVar(&name, "name", "", "new channel name")
			flags.StringVar(&description, "description", "", "new channel description")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: slackr channel update <channel-id>")
			}
			channelID, err := ident.ParseChannelID(args[0])
			if err != nil {
				return err
			}

			session, err := cli.ConnectSession(logger)
			if err != nil {
				return err
			}
			defer session.Close()

			// Unspecified fields keep their current values: the update
			// endpoint replaces both, so fill gaps from the live record.
			if name == "" || description == "" {
				details, err := session.ChannelDetails(ctx, channelID)
				if err != nil {
					return err
				}
				if name == "" {
					name = details.Name
				}
				if description == "" {
					description = details.Description
				}
			}

			if err := session.UpdateChannel(ctx, channelID, api.UpdateChannelRequest{
				Name:        name,
				Description: description,
			}); err != nil {
				return err
			}
			fmt.Printf("Updated channel %s\n", channelID)
			return nil
		},
	}
}

func channelJoinCommand() *cli.Command {
	return &cli.Command{
		Name:    "join",
		Summary: "Join a public channel",
		Usage:   "slackr channel join <channel-id>",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: slackr channel join <channel-id>")
			}
			channelID, err := ident.ParseChannelID(args[0])
			if err != nil {
				return err
			}

			session, err := cli.ConnectSession(logger)
			if err != nil {
				return err
			}
			defer session.Close()

			if err := session.JoinChannel(ctx, channelID); err != nil {
				return err
			}
			fmt.Printf("Joined channel %s\n", channelID)
			return nil
		},
	}
}

func channelLeaveCommand() *cli.Command {
	return &cli.Command{
		Name:    "leave",
		Summary: "Leave a channel",
		Usage:   "slackr channel leave <channel-id>",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: slackr channel leave <channel-id>")
			}
			channelID, err := ident.ParseChannelID(args[0])
			if err != nil {
				return err
			}

			session, err := cli.ConnectSession(logger)
			if err != nil {
				return err
			}
			defer session.Close()

			if err := session.LeaveChannel(ctx, channelID); err != nil {
				return err
			}
			fmt.Printf("Left channel %s\n", channelID)
			return nil
		},
	}
}

func channelInviteCommand() *cli.Command {
	return &cli.Command{
		Name:    "invite",
		Summary: "Invite one or more users to a channel",
		Usage:   "slackr channel invite <channel-id> <user-id>...",
		Examples: []cli.Example{
			{
				Description: "Invite three users at once",
				Command:     "slackr channel invite 12 7 8 9",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) < 2 {
				return fmt.Errorf("usage: slackr channel invite <channel-id> <user-id>...")
			}
			channelID, err := ident.ParseChannelID(args[0])
			if err != nil {
				return err
			}
			userIDs := make([]ident.UserID, 0, len(args)-1)
			for _, arg := range args[1:] {
				userID, err := ident.ParseUserID(arg)
				if err != nil {
					return err
				}
				userIDs = append(userIDs, userID)
			}

			session, err := cli.ConnectSession(logger)
			if err != nil {
				return err
			}
			defer session.Close()

			// All invites fire together; a single failure reports as the
			// batch's error with no partial-success summary.
			if err := session.InviteUsers(ctx, channelID, userIDs); err != nil {
				return err
			}
			fmt.Printf("Invited %d user(s) to channel %s\n", len(userIDs), channelID)
			return nil
		},
	}
}
