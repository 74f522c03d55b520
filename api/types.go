// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"time"

	"github.com/Rachel-Huang77/6080-slackr/lib/ident"
)

// AuthResponse is returned by the login and register endpoints.
type AuthResponse struct {
	Token  string       `json:"token"`
	UserID ident.UserID `json:"userId"`
}

// Channel is one entry in the channel list. The fetched list is the
// source of truth — the client never merges partial updates into it.
type Channel struct {
	ID      ident.ChannelID `json:"id"`
	Name    string          `json:"name"`
	Private bool            `json:"private"`
	Creator ident.UserID    `json:"creator"`
	Members []ident.UserID  `json:"members"`
}

// ChannelDetails is the full channel record from GET /channel/:id.
type ChannelDetails struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Private     bool           `json:"private"`
	Creator     ident.UserID   `json:"creator"`
	CreatedAt   time.Time      `json:"createdAt"`
	Members     []ident.UserID `json:"members"`
}

// CreateChannelRequest holds parameters for creating a channel.
type CreateChannelRequest struct {
	Name        string `json:"name"`
	Private     bool   `json:"private"`
	Description string `json:"description"`
}

// UpdateChannelRequest holds the editable channel fields.
type UpdateChannelRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Reaction is a single emoji reaction attached to a message.
type Reaction struct {
	React string       `json:"react"`
	User  ident.UserID `json:"user"`
}

// Message is a single post within a channel. Image carries a data URL
// when the message is an image post; Message and Image are never both
// empty in backend responses.
type Message struct {
	ID       ident.MessageID `json:"id"`
	Sender   ident.UserID    `json:"sender"`
	Message  string          `json:"message,omitempty"`
	Image    string          `json:"image,omitempty"`
	SentAt   time.Time       `json:"sentAt"`
	Edited   bool            `json:"edited"`
	EditedAt *time.Time      `json:"editedAt,omitempty"`
	Pinned   bool            `json:"pinned"`
	Reacts   []Reaction      `json:"reacts"`
}

// MessagesPage is one page of channel messages. The backend returns
// messages newest-first in chunks of 25; Start echoes the requested
// offset. The client preserves this order and reverses only at the
// display layer.
type MessagesPage struct {
	Messages []Message `json:"messages"`
	Start    int       `json:"start"`
}

// MessagePageSize is the fixed page size of the message listing
// endpoint. A page shorter than this means the history is exhausted.
const MessagePageSize = 25

// SendMessageRequest holds a new message body. At least one of Message
// or Image must be set; the accessor rejects an empty send before any
// request is issued.
type SendMessageRequest struct {
	Message string `json:"message,omitempty"`
	Image   string `json:"image,omitempty"`
}

// EditMessageRequest holds replacement message content.
type EditMessageRequest struct {
	Message string `json:"message,omitempty"`
	Image   string `json:"image,omitempty"`
}

// UserSummary is one entry in the all-users listing.
type UserSummary struct {
	ID    ident.UserID `json:"id"`
	Email string       `json:"email"`
}

// UserProfile is the full profile record from GET /user/:id. Image is
// a data URL or empty when the user has no photo.
type UserProfile struct {
	ID    ident.UserID `json:"id"`
	Name  string       `json:"name"`
	Email string       `json:"email"`
	Bio   string       `json:"bio"`
	Image string       `json:"image"`
}

// UpdateProfileRequest holds the editable profile fields. Empty fields
// are omitted from the request body and left unchanged server-side.
type UpdateProfileRequest struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Name     string `json:"name,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Image    string `json:"image,omitempty"`
}

// channelsResponse wraps GET /channel.
type channelsResponse struct {
	Channels []Channel `json:"channels"`
}

// usersResponse wraps GET /user.
type usersResponse struct {
	Users []UserSummary `json:"users"`
}

// createChannelResponse wraps POST /channel.
type createChannelResponse struct {
	ChannelID ident.ChannelID `json:"channelId"`
}

// sendMessageResponse wraps POST /channel/:id/message.
type sendMessageResponse struct {
	MessageID ident.MessageID `json:"messageId"`
}

// inviteRequest is the body for POST /channel/:id/invite.
type inviteRequest struct {
	UserID ident.UserID `json:"userId"`
}

// reactRequest is the body for the react and unreact endpoints.
type reactRequest struct {
	React string `json:"react"`
}

// loginRequest is the body for POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerRequest is the body for POST /auth/register.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
