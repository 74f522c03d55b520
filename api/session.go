// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/Rachel-Huang77/6080-slackr/lib/ident"
	"github.com/Rachel-Huang77/6080-slackr/lib/secret"
)

// Session is an authenticated backend session. It wraps a Client with
// a bearer token for making authenticated calls. Sessions are
// lightweight; every method is one request with no local state, so a
// Session is safe for concurrent use.
//
// The token lives in a secret.Buffer (mmap-backed, locked against
// swap, excluded from core dumps). The caller must call Close when the
// Session is no longer needed.
type Session struct {
	client *Client
	token  *secret.Buffer
	userID ident.UserID
}

// UserID returns the authenticated user's ID.
func (s *Session) UserID() ident.UserID {
	return s.userID
}

// Token returns the bearer token as a heap string. This creates a
// brief copy from the mmap-backed buffer — use only at persistence
// boundaries (writing the session file). Prefer passing the Session
// itself when possible.
func (s *Session) Token() string {
	return s.token.String()
}

// Close releases the token memory (zeros, unlocks, unmaps).
// Idempotent — safe to call multiple times.
func (s *Session) Close() error {
	if s.token != nil {
		return s.token.Close()
	}
	return nil
}

// Logout invalidates the token server-side. The local session is dead
// either way — callers clear their saved credentials even when this
// returns an error, since a failed logout usually means the token was
// already invalid.
func (s *Session) Logout(ctx context.Context) error {
	_, err := s.client.doRequest(ctx, http.MethodPost, "/auth/logout", s.token, struct{}{})
	if err != nil {
		return fmt.Errorf("api: logout failed: %w", err)
	}
	return nil
}

// Channels returns every channel visible to the user — all public
// channels plus private channels the user belongs to. The returned
// list is the client's source of truth; re-fetch it after any channel
// mutation rather than patching a stale copy.
func (s *Session) Channels(ctx context.Context) ([]Channel, error) {
	body, err := s.client.doRequest(ctx, http.MethodGet, "/channel", s.token, nil)
	if err != nil {
		return nil, fmt.Errorf("api: list channels failed: %w", err)
	}

	var response channelsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("api: failed to parse channels response: %w", err)
	}
	return response.Channels, nil
}

// CreateChannel creates a new channel and returns its ID. The creator
// is a member immediately.
func (s *Session) CreateChannel(ctx context.Context, request CreateChannelRequest) (ident.ChannelID, error) {
	if request.Name == "" {
		return 0, fmt.Errorf("api: channel name is required")
	}

	body, err := s.client.doRequest(ctx, http.MethodPost, "/channel", s.token, request)
	if err != nil {
		return 0, fmt.Errorf("api: create channel failed: %w", err)
	}

	var response createChannelResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return 0, fmt.Errorf("api: failed to parse create channel response: %w", err)
	}

	s.client.logger.Info("created channel",
		"channel_id", response.ChannelID,
		"name", request.Name,
		"private", request.Private,
	)
	return response.ChannelID, nil
}

// ChannelDetails fetches the full record for one channel. The backend
// rejects the call when the user is not a member.
func (s *Session) ChannelDetails(ctx context.Context, channelID ident.ChannelID) (*ChannelDetails, error) {
	body, err := s.client.doRequest(ctx, http.MethodGet, "/channel/"+channelID.String(), s.token, nil)
	if err != nil {
		return nil, fmt.Errorf("api: channel %s details failed: %w", channelID, err)
	}

	var details ChannelDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("api: failed to parse channel details: %w", err)
	}
	return &details, nil
}

// UpdateChannel replaces a channel's name and description.
func (s *Session) UpdateChannel(ctx context.Context, channelID ident.ChannelID, request UpdateChannelRequest) error {
	if request.Name == "" {
		return fmt.Errorf("api: channel name is required")
	}
	_, err := s.client.doRequest(ctx, http.MethodPut, "/channel/"+channelID.String(), s.token, request)
	if err != nil {
		return fmt.Errorf("api: update channel %s failed: %w", channelID, err)
	}
	return nil
}

// JoinChannel adds the authenticated user to a public channel's
// member list.
func (s *Session) JoinChannel(ctx context.Context, channelID ident.ChannelID) error {
	_, err := s.client.doRequest(ctx, http.MethodPost, "/channel/"+channelID.String()+"/join", s.token, struct{}{})
	if err != nil {
		return fmt.Errorf("api: join channel %s failed: %w", channelID, err)
	}
	return nil
}

// LeaveChannel removes the authenticated user from a channel's
// member list.
func (s *Session) LeaveChannel(ctx context.Context, channelID ident.ChannelID) error {
	_, err := s.client.doRequest(ctx, http.MethodPost, "/channel/"+channelID.String()+"/leave", s.token, struct{}{})
	if err != nil {
		return fmt.Errorf("api: leave channel %s failed: %w", channelID, err)
	}
	return nil
}

// InviteUser adds another user to a channel's member list. The caller
// must be a member.
func (s *Session) InviteUser(ctx context.Context, channelID ident.ChannelID, userID ident.UserID) error {
	path := "/channel/" + channelID.String() + "/invite"
	_, err := s.client.doRequest(ctx, http.MethodPost, path, s.token, inviteRequest{UserID: userID})
	if err != nil {
		return fmt.Errorf("api: invite %s to channel %s failed: %w", userID, channelID, err)
	}
	return nil
}

// InviteUsers invites a set of users in one shot. All invite requests
// are issued concurrently and every one is awaited before returning,
// so a failure never leaves requests still in flight. Returns nil only
// when all N invites resolve; otherwise returns the first failure in
// argument order. There is no partial-success report — callers
// re-fetch the member list to see what actually landed.
func (s *Session) InviteUsers(ctx context.Context, channelID ident.ChannelID, userIDs []ident.UserID) error {
	if len(userIDs) == 0 {
		return nil
	}

	errs := make([]error, len(userIDs))
	var wait sync.WaitGroup
	for index, userID := range userIDs {
		wait.Add(1)
		go func(index int, userID ident.UserID) {
			defer wait.Done()
			errs[index] = s.InviteUser(ctx, channelID, userID)
		}(index, userID)
	}
	wait.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Messages fetches one page of channel messages starting at the given
// offset. The backend returns newest-first pages of 25; offset 0 is
// the most recent page.
func (s *Session) Messages(ctx context.Context, channelID ident.ChannelID, start int) (*MessagesPage, error) {
	if start < 0 {
		return nil, fmt.Errorf("api: message offset must not be negative, got %d", start)
	}

	query := url.Values{}
	query.Set("start", strconv.Itoa(start))

	path := "/channel/" + channelID.String() + "/message"
	body, err := s.client.doRequest(ctx, http.MethodGet, path, s.token, nil, query)
	if err != nil {
		return nil, fmt.Errorf("api: messages for channel %s failed: %w", channelID, err)
	}

	var page MessagesPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("api: failed to parse messages response: %w", err)
	}
	page.Start = start
	return &page, nil
}

// SendMessage posts a new message to a channel and returns its ID.
// At least one of Message or Image must be set.
func (s *Session) SendMessage(ctx context.Context, channelID ident.ChannelID, request SendMessageRequest) (ident.MessageID, error) {
	if request.Message == "" && request.Image == "" {
		return 0, fmt.Errorf("api: message content is required")
	}

	path := "/channel/" + channelID.String() + "/message"
	body, err := s.client.doRequest(ctx, http.MethodPost, path, s.token, request)
	if err != nil {
		return 0, fmt.Errorf("api: send message to channel %s failed: %w", channelID, err)
	}

	var response sendMessageResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return 0, fmt.Errorf("api: failed to parse send response: %w", err)
	}
	return response.MessageID, nil
}

// EditMessage replaces a message's content. The backend stamps the
// message as edited with the edit time. Rejecting an edit whose
// content is unchanged is the view layer's job — this accessor stays
// a thin mapping.
func (s *Session) EditMessage(ctx context.Context, channelID ident.ChannelID, messageID ident.MessageID, request EditMessageRequest) error {
	if request.Message == "" && request.Image == "" {
		return fmt.Errorf("api: message content is required")
	}

	path := "/channel/" + channelID.String() + "/message/" + messageID.String()
	_, err := s.client.doRequest(ctx, http.MethodPut, path, s.token, request)
	if err != nil {
		return fmt.Errorf("api: edit message %s failed: %w", messageID, err)
	}
	return nil
}

// DeleteMessage removes a message from a channel.
func (s *Session) DeleteMessage(ctx context.Context, channelID ident.ChannelID, messageID ident.MessageID) error {
	path := "/channel/" + channelID.String() + "/message/" + messageID.String()
	_, err := s.client.doRequest(ctx, http.MethodDelete, path, s.token, nil)
	if err != nil {
		return fmt.Errorf("api: delete message %s failed: %w", messageID, err)
	}
	return nil
}

// PinMessage marks a message as pinned. The backend rejects pinning an
// already-pinned message.
func (s *Session) PinMessage(ctx context.Context, channelID ident.ChannelID, messageID ident.MessageID) error {
	path := "/channel/" + channelID.String() + "/message/" + messageID.String() + "/pin"
	_, err := s.client.doRequest(ctx, http.MethodPost, path, s.token, struct{}{})
	if err != nil {
		return fmt.Errorf("api: pin message %s failed: %w", messageID, err)
	}
	return nil
}

// UnpinMessage clears a message's pinned state.
func (s *Session) UnpinMessage(ctx context.Context, channelID ident.ChannelID, messageID ident.MessageID) error {
	path := "/channel/" + channelID.String() + "/message/" + messageID.String() + "/unpin"
	_, err := s.client.doRequest(ctx, http.MethodPost, path, s.token, struct{}{})
	if err != nil {
		return fmt.Errorf("api: unpin message %s failed: %w", messageID, err)
	}
	return nil
}

// ReactMessage attaches an emoji reaction to a message. The backend
// rejects a duplicate react by the same user.
func (s *Session) ReactMessage(ctx context.Context, channelID ident.ChannelID, messageID ident.MessageID, react string) error {
	if react == "" {
		return fmt.Errorf("api: react is required")
	}
	path := "/channel/" + channelID.String() + "/message/" + messageID.String() + "/react"
	_, err := s.client.doRequest(ctx, http.MethodPost, path, s.token, reactRequest{React: react})
	if err != nil {
		return fmt.Errorf("api: react to message %s failed: %w", messageID, err)
	}
	return nil
}

// UnreactMessage removes the user's reaction from a message.
func (s *Session) UnreactMessage(ctx context.Context, channelID ident.ChannelID, messageID ident.MessageID, react string) error {
	if react == "" {
		return fmt.Errorf("api: react is required")
	}
	path := "/channel/" + channelID.String() + "/message/" + messageID.String() + "/unreact"
	_, err := s.client.doRequest(ctx, http.MethodPost, path, s.token, reactRequest{React: react})
	if err != nil {
		return fmt.Errorf("api: unreact to message %s failed: %w", messageID, err)
	}
	return nil
}

// Users returns the ID and email of every registered user. Used to
// populate invite pickers; profile details are fetched per user on
// demand.
func (s *Session) Users(ctx context.Context) ([]UserSummary, error) {
	body, err := s.client.doRequest(ctx, http.MethodGet, "/user", s.token, nil)
	if err != nil {
		return nil, fmt.Errorf("api: list users failed: %w", err)
	}

	var response usersResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("api: failed to parse users response: %w", err)
	}
	return response.Users, nil
}

// Profile fetches one user's profile. Fetched on demand per view,
// never cached.
func (s *Session) Profile(ctx context.Context, userID ident.UserID) (*UserProfile, error) {
	body, err := s.client.doRequest(ctx, http.MethodGet, "/user/"+userID.String(), s.token, nil)
	if err != nil {
		return nil, fmt.Errorf("api: profile for %s failed: %w", userID, err)
	}

	var profile UserProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("api: failed to parse profile response: %w", err)
	}
	profile.ID = userID
	return &profile, nil
}

// UpdateProfile updates the authenticated user's own profile. Only
// non-empty fields are sent; the backend leaves omitted fields
// unchanged.
func (s *Session) UpdateProfile(ctx context.Context, request UpdateProfileRequest) error {
	if request == (UpdateProfileRequest{}) {
		return fmt.Errorf("api: nothing to update")
	}
	_, err := s.client.doRequest(ctx, http.MethodPut, "/user", s.token, request)
	if err != nil {
		return fmt.Errorf("api: update profile failed: %w", err)
	}
	return nil
}
