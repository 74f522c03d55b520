// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/Rachel-Huang77/6080-slackr/api"
	"github.com/Rachel-Huang77/6080-slackr/cmd/slackr/cli"
	"github.com/Rachel-Huang77/6080-slackr/lib/ident"
)

// MessageCommand returns the "slackr message" command tree.
func MessageCommand() *cli.Command {
	return &cli.Command{
		Name:    "message",
		Summary: "Send and manage channel messages",
		Subcommands: []*cli.Command{
			messageListCommand(),
			messageSendCommand(),
			messageEditCommand(),
			messageDeleteCommand(),
			messagePinCommand(),
			messageUnpinCommand(),
			messageReactCommand(),
			messageUnreactCommand(),
		},
	}
}

func messageListCommand() *cli.Command {
	var start int
	var all bool

	return &cli.Command{
		Name:    "list",
		Summary: "List a channel's messages, newest first",
		Usage:   "slackr message list <channel-id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Show the second page of channel 3",
				Command:     "slackr message list 3 --start 25",
			},
			{
				Description: "Show the channel's entire history",
				Command:     "slackr message list 3 --all",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.IntVar(&start, "start", 0, "pagination offset, newest message is 0")
			flags.BoolVar(&all, "all", false, "fetch every page until the history is exhausted")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: slackr message list <channel-id>")
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

			for {
				page, err := session.Messages(ctx, channelID, start)
				if err != nil {
					return err
				}
				for _, message := range page.Messages {
					printMessage(message)
				}
				// A short page means the history is exhausted.
				if !all || len(page.Messages) < api.MessagePageSize {
					return nil
				}
				start += len(page.Messages)
			}
		},
	}
}

func printMessage(message api.Message) {
	marker := ""
	if message.Edited {
		marker = " (edited)"
	}
	if message.Pinned {
		marker += " [pinned]"
	}
	body := message.Message
	if body == "" && message.Image != "" {
		body = "[image]"
	}
	fmt.Printf("%s  %s  user %s%s\n    %s\n",
		message.ID, message.SentAt.Local().Format("2006-01-02 15:04"),
		message.Sender, marker, body)
	if len(message.Reacts) > 0 {
		counts := make(map[string]int)
		var order []string
		for _, react := range message.Reacts {
			if counts[react.React] == 0 {
				order = append(order, react.React)
			}
			counts[react.React]++
		}
		var parts []string
		for _, emoji := range order {
			parts = append(parts, fmt.Sprintf("%s %d", emoji, counts[emoji]))
		}
		fmt.Printf("    %s\n", strings.Join(parts, "  "))
	}
}

func messageSendCommand() *cli.Command {
	var imageFile string

	return &cli.Command{
		Name:    "send",
		Summary: "Send a message to a channel",
		Usage:   "slackr message send <channel-id> <text>... [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("send", pflag.ContinueOnError)
			flags.StringVar(&imageFile, "image", "", "attach an image file instead of (or alongside) text")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) < 1 {
				return fmt.Errorf("usage: slackr message send <channel-id> <text>...")
			}
			channelID, err := ident.ParseChannelID(args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")

			var image string
			if imageFile != "" {
				image, err = api.EncodeImageFile(imageFile)
				if err != nil {
					return err
				}
			}
			if strings.TrimSpace(text) == "" && image == "" {
				return fmt.Errorf("message text is empty and no image given")
			}

			session, err := cli.ConnectSession(logger)
			if err != nil {
				return err
			}
			defer session.Close()

			messageID, err := session.SendMessage(ctx, channelID, api.SendMessageRequest{
				Message: text,
				Image:   image,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Sent message %s\n", messageID)
			return nil
		},
	}
}

func messageEditCommand() *cli.Command {
	return &cli.Command{
		Name:    "edit",
		Summary: "Replace a message's text",
		Usage:   "slackr message edit <channel-id> <message-id> <text>...",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) < 3 {
				return fmt.Errorf("usage: slackr message edit <channel-id> <message-id> <text>...")
			}
			channelID, err := ident.ParseChannelID(args[0])
			if err != nil {
				return err
			}
			messageID, err := ident.ParseMessageID(args[1])
			if err != nil {
				return err
			}
			text := strings.Join(args[2:], " ")
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("replacement text is empty")
			}

			session, err := cli.ConnectSession(logger)
			if err != nil {
				return err
			}
			defer session.Close()

			current, err := findMessage(ctx, session, channelID, messageID)
			if err != nil {
				return err
			}
			if current.Message == text {
				// Matches the current content, so there is nothing to do.
				return fmt.Errorf("message %s already says that", messageID)
			}

			if err := session.EditMessage(ctx, channelID, messageID, api.EditMessageRequest{
				Message: text,
				Image:   current.Image,
			}); err != nil {
				return err
			}
			fmt.Printf("Edited message %s\n", messageID)
			return nil
		},
	}
}

// findMessage pages through a channel's history until it finds the
// message with the given ID.
func findMessage(ctx context.Context, session *api.Session, channelID ident.ChannelID, messageID ident.MessageID) (*api.Message, error) {
	start := 0
	for {
		page, err := session.Messages(ctx, channelID, start)
		if err != nil {
			return nil, err
		}
		for _, message := range page.Messages {
			if message.ID == messageID {
				return &message, nil
			}
		}
		if len(page.Messages) < api.MessagePageSize {
			return nil, fmt.Errorf("message %s not found in channel %s", messageID, channelID)
		}
		start += len(page.Messages)
	}
}

func messageDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a message",
		Usage:   "slackr message delete <channel-id> <message-id>",
		Run: messageMutationRun("delete", func(ctx context.Context, session *api.Session, channelID ident.ChannelID, messageID ident.MessageID) error {
			return session.DeleteMessage(ctx, channelID, messageID)
		}, "Deleted message %s\n"),
	}
}

func messagePinCommand() *cli.Command {
	return &cli.Command{
		Name:    "pin",
		Summary: "Pin a message to the channel",
		Usage:   "slackr message pin <channel-id> <message-id>",
		Run: messageMutationRun("pin", func(ctx context.Context, session *api.Session, channelID ident.ChannelID, messageID ident.MessageID) error {
			return session.PinMessage(ctx, channelID, messageID)
		}, "Pinned message %s\n"),
	}
}

func messageUnpinCommand() *cli.Command {
	return &cli.Command{
		Name:    "unpin",
		Summary: "Unpin a message",
		Usage:   "slackr message unpin <channel-id> <message-id>",
		Run: messageMutationRun("unpin", func(ctx context.Context, session *api.Session, channelID ident.ChannelID, messageID ident.MessageID) error {
			return session.UnpinMessage(ctx, channelID, messageID)
		}, "Unpinned message %s\n"),
	}
}

// messageMutationRun builds the Run function for the channel-id +
// message-id mutations, which differ only in the session call and the
// confirmation line.
func messageMutationRun(name string, call func(context.Context, *api.Session, ident.ChannelID, ident.MessageID) error, confirmation string) func(context.Context, []string, *slog.Logger) error {
	return func(ctx context.Context, args []string, logger *slog.Logger) error {
		if len(args) != 2 {
			return fmt.Errorf("usage: slackr message %s <channel-id> <message-id>", name)
		}
		channelID, err := ident.ParseChannelID(args[0])
		if err != nil {
			return err
		}
		messageID, err := ident.ParseMessageID(args[1])
		if err != nil {
			return err
		}

		session, err := cli.ConnectSession(logger)
		if err != nil {
			return err
		}
		defer session.Close()

		if err := call(ctx, session, channelID, messageID); err != nil {
			return err
		}
		fmt.Printf(confirmation, messageID)
		return nil
	}
}

func messageReactCommand() *cli.Command {
	return &cli.Command{
		Name:    "react",
		Summary: "Add a reaction to a message",
		Usage:   "slackr message react <channel-id> <message-id> <emoji>",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runReact(ctx, args, logger, "react")
		},
	}
}

func messageUnreactCommand() *cli.Command {
	return &cli.Command{
		Name:    "unreact",
		Summary: "Remove your reaction from a message",
		Usage:   "slackr message unreact <channel-id> <message-id> <emoji>",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runReact(ctx, args, logger, "unreact")
		},
	}
}

func runReact(ctx context.Context, args []string, logger *slog.Logger, name string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: slackr message %s <channel-id> <message-id> <emoji>", name)
	}
	channelID, err := ident.ParseChannelID(args[0])
	if err != nil {
		return err
	}
	messageID, err := ident.ParseMessageID(args[1])
	if err != nil {
		return err
	}
	emoji := args[2]

	session, err := cli.ConnectSession(logger)
	if err != nil {
		return err
	}
	defer session.Close()

	if name == "react" {
		err = session.ReactMessage(ctx, channelID, messageID, emoji)
	} else {
		err = session.UnreactMessage(ctx, channelID, messageID, emoji)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Updated reactions on %s\n", messageID)
	return nil
}
