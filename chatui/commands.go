// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rachel-Huang77/6080-slackr/api"
	"github.com/Rachel-Huang77/6080-slackr/lib/ident"
)

// refreshKind names which fetch to rerun after a successful mutation.
// Mutations never patch local state; they trigger a re-fetch of the
// affected list so the view always reflects backend truth.
type refreshKind int

const (
	refreshNone refreshKind = iota
	refreshChannels
	refreshMessages
	refreshChannelDetails
)

// channelsLoadedMsg delivers the channel listing (or its failure).
type channelsLoadedMsg struct {
	channels []api.Channel
	err      error
}

// channelDetailsLoadedMsg delivers one channel's full record.
type channelDetailsLoadedMsg struct {
	channelID ident.ChannelID
	details   *api.ChannelDetails
	err       error
}

// messagesLoadedMsg delivers one page of channel messages. replace is
// true for a fresh load of offset 0 and false when paging backwards,
// in which case the page is appended to the already-fetched history.
type messagesLoadedMsg struct {
	channelID ident.ChannelID
	page      *api.MessagesPage
	replace   bool
	err       error
}

// usersLoadedMsg delivers the all-users listing for invite pickers.
type usersLoadedMsg struct {
	users []api.UserSummary
	err   error
}

// profileLoadedMsg delivers one user's profile for the profile modal
// or the sender-name cache.
type profileLoadedMsg struct {
	userID  ident.UserID
	profile *api.UserProfile
	display bool // Open the profile modal rather than only caching the name.
	err     error
}

// mutationDoneMsg reports an asynchronous mutation's outcome. On
// success the refresh field triggers the follow-up fetch; on failure
// err is surfaced in the status bar.
type mutationDoneMsg struct {
	refresh refreshKind
	err     error
}

// errorFadeMsg clears the status-bar error notice after a delay.
type errorFadeMsg struct{}

func loadChannels(ctx context.Context, session *api.Session) tea.Cmd {
	return func() tea.Msg {
		channels, err := session.Channels(ctx)
		return channelsLoadedMsg{channels: channels, err: err}
	}
}

func loadChannelDetails(ctx context.Context, session *api.Session, channelID ident.ChannelID) tea.Cmd {
	return func() tea.Msg {
		details, err := session.ChannelDetails(ctx, channelID)
		return channelDetailsLoadedMsg{channelID: channelID, details: details, err: err}
	}
}

func loadMessages(ctx context.Context, session *api.Session, channelID ident.ChannelID, start int) tea.Cmd {
	return func() tea.Msg {
		page, err := session.Messages(ctx, channelID, start)
		return messagesLoadedMsg{
			channelID: channelID,
			page:      page,
			replace:   start == 0,
			err:       err,
		}
	}
}

func loadUsers(ctx context.Context, session *api.Session) tea.Cmd {
	return func() tea.Msg {
		users, err := session.Users(ctx)
		return usersLoadedMsg{users: users, err: err}
	}
}

func loadProfile(ctx context.Context, session *api.Session, userID ident.UserID, display bool) tea.Cmd {
	return func() tea.Msg {
		profile, err := session.Profile(ctx, userID)
		return profileLoadedMsg{userID: userID, profile: profile, display: display, err: err}
	}
}

// runMutation wraps a mutating session call as a tea.Cmd. The refresh
// kind tells the reducer which fetch to chain on success.
func runMutation(refresh refreshKind, call func() error) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{refresh: refresh, err: call()}
	}
}
