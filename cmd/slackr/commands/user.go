// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/Rachel-Huang77/6080-slackr/api"
	"github.com/Rachel-Huang77/6080-slackr/cmd/slackr/cli"
	"github.com/Rachel-Huang77/6080-slackr/lib/ident"
	"github.com/Rachel-Huang77/6080-slackr/lib/secret"
)

// UserCommand returns the "slackr user" command tree.
func UserCommand() *cli.Command {
	return &cli.Command{
		Name:    "user",
		Summary: "List users and manage your profile",
		Subcommands: []*cli.Command{
			userListCommand(),
			userProfileCommand(),
			userUpdateCommand(),
		},
	}
}

func userListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Summary: "List all registered users",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			session, err := cli.ConnectSession(logger)
			if err != nil {
				return err
			}
			defer session.Close()

			users, err := session.Users(ctx)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "ID\tEMAIL")
			for _, user := range users {
				fmt.Fprintf(tw, "%s\t%s\n", user.ID, user.Email)
			}
			return tw.Flush()
		},
	}
}

func userProfileCommand() *cli.Command {
	return &cli.Command{
		Name:    "profile",
		Summary: "Show a user's profile (your own if no ID is given)",
		Usage:   "slackr user profile [user-id]",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 1 {
				return fmt.Errorf("usage: slackr user profile [user-id]")
			}

			session, err := cli.ConnectSession(logger)
			if err != nil {
				return err
			}
			defer session.Close()

			userID := session.UserID()
			if len(args) == 1 {
				userID, err = ident.ParseUserID(args[0])
				if err != nil {
					return err
				}
			}

			profile, err := session.Profile(ctx, userID)
			if err != nil {
				return err
			}

			fmt.Printf("ID:    %s\n", profile.ID)
			fmt.Printf("Name:  %s\n", profile.Name)
			fmt.Printf("Email: %s\n", profile.Email)
			if profile.Bio != "" {
				fmt.Printf("Bio:   %s\n", profile.Bio)
			}
			if profile.Image != "" {
				fmt.Println("Photo: yes")
			}
			return nil
		},
	}
}

func userUpdateCommand() *cli.Command {
	var name string
	var email string
	var bio string
	var imageFile string
	var changePassword bool

	return &cli.Command{
		Name:    "update",
		Summary: "Update your own profile",
		Usage:   "slackr user update [flags]",
		Examples: []cli.Example{
			{
				Description: "Change display name and bio",
				Command:     "slackr user update --name \"Alice L.\" --bio \"compilers, coffee\"",
			},
			{
				Description: "Change the account password (prompts twice)",
				Command:     "slackr user update --password",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("update", pflag.ContinueOnError)
			flags.StringVar(&name, "name", "", "new display name")
			flags.StringVar(&email, "email", "", "new email address")
			flags.StringVar(&bio, "bio", "", "new bio")
			flags.StringVar(&imageFile, "photo", "", "new profile photo file")
			flags.BoolVar(&changePassword, "password", false, "prompt for a new password")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			request := api.UpdateProfileRequest{
				Name:  name,
				Email: email,
				Bio:   bio,
			}

			if imageFile != "" {
				image, err := api.EncodeImageFile(imageFile)
				if err != nil {
					return err
				}
				request.Image = image
			}

			if changePassword {
				password, err := secret.Prompt("New password")
				if err != nil {
					return err
				}
				confirmation, err := secret.Prompt("Confirm new password")
				if err != nil {
					password.Close()
					return err
				}
				match := string(password.Bytes()) == string(confirmation.Bytes())
				confirmation.Close()
				if !match {
					password.Close()
					return fmt.Errorf("passwords do not match")
				}
				request.Password = string(password.Bytes())
				password.Close()
			}

			if request == (api.UpdateProfileRequest{}) {
				return fmt.Errorf("nothing to update: pass at least one of --name, --email, --bio, --photo, --password")
			}

			session, err := cli.ConnectSession(logger)
			if err != nil {
				return err
			}
			defer session.Close()

			if err := session.UpdateProfile(ctx, request); err != nil {
				return err
			}
			fmt.Println("Profile updated.")
			return nil
		},
	}
}
