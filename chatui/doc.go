// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

// Package chatui implements the interactive terminal client: a
// two-pane bubbletea application with the channel list on the left and
// the active channel's messages on the right, plus modal overlays for
// channel settings, invites, and profiles.
//
// The Model is a pure reducer over immutable state: Update consumes a
// message, returns the next Model, and performs all network work
// through tea.Cmd values. Server state is never patched locally —
// after any mutation the affected list is re-fetched, so the rendered
// view always reflects a response the backend actually sent.
package chatui
