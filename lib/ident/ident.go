// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

// Package ident provides typed numeric identifiers for backend
// entities. The backend keys every entity by an integer ID; using
// distinct Go types prevents a channel ID from being passed where a
// user ID is expected — a mixup the compiler cannot catch with bare
// ints.
//
// The zero value of every ID type is not a valid backend identifier;
// use IsZero to check.
package ident

import (
	"fmt"
	"strconv"
)

// UserID identifies a registered user.
type UserID int64

// ChannelID identifies a channel.
type ChannelID int64

// MessageID identifies a message within a channel.
type MessageID int64

// ParseUserID parses a decimal user ID from CLI arguments or stored
// session data. Returns an error for non-numeric or non-positive input.
func ParseUserID(raw string) (UserID, error) {
	value, err := parsePositive(raw)
	if err != nil {
		return 0, fmt.Errorf("user id: %w", err)
	}
	return UserID(value), nil
}

// ParseChannelID parses a decimal channel ID.
func ParseChannelID(raw string) (ChannelID, error) {
	value, err := parsePositive(raw)
	if err != nil {
		return 0, fmt.Errorf("channel id: %w", err)
	}
	return ChannelID(value), nil
}

// ParseMessageID parses a decimal message ID.
func ParseMessageID(raw string) (MessageID, error) {
	value, err := parsePositive(raw)
	if err != nil {
		return 0, fmt.Errorf("message id: %w", err)
	}
	return MessageID(value), nil
}

func parsePositive(raw string) (int64, error) {
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%d is not a valid identifier", value)
	}
	return value, nil
}

func (id UserID) String() string    { return strconv.FormatInt(int64(id), 10) }
func (id ChannelID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id MessageID) String() string { return strconv.FormatInt(int64(id), 10) }

// IsZero reports whether the ID is the zero value (uninitialized).
func (id UserID) IsZero() bool    { return id == 0 }
func (id ChannelID) IsZero() bool { return id == 0 }
func (id MessageID) IsZero() bool { return id == 0 }
