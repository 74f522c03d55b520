// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the chat TUI.
type KeyMap struct {
	// Navigation (context-sensitive: channel list movement or message
	// scrolling depending on current focus).
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Focus switching.
	FocusToggle key.Binding
	Compose     key.Binding // Jump to the message input.

	// Channel actions.
	Select        key.Binding // Open the channel under the cursor.
	NewChannel    key.Binding
	EditChannel   key.Binding
	JoinChannel   key.Binding
	LeaveChannel  key.Binding
	InviteMembers key.Binding

	// Message actions (message pane).
	EditMessage   key.Binding
	DeleteMessage key.Binding
	PinToggle     key.Binding
	React         key.Binding
	LoadOlder     key.Binding
	SenderProfile key.Binding

	// Own profile.
	Profile key.Binding

	// Filter.
	FilterActivate key.Binding
	FilterClear    key.Binding

	Refresh key.Binding
	Quit    key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys and page up/down.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch pane"),
	),
	Compose: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "compose"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "open"),
	),
	NewChannel: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "new channel"),
	),
	EditChannel: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit channel"),
	),
	JoinChannel: key.NewBinding(
		key.WithKeys("J"),
		key.WithHelp("J", "join"),
	),
	LeaveChannel: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "leave"),
	),
	InviteMembers: key.NewBinding(
		key.WithKeys("I"),
		key.WithHelp("I", "invite"),
	),
	EditMessage: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	DeleteMessage: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	PinToggle: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pin/unpin"),
	),
	React: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "react"),
	),
	LoadOlder: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "older messages"),
	),
	SenderProfile: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "sender profile"),
	),
	Profile: key.NewBinding(
		key.WithKeys("P"),
		key.WithHelp("P", "my profile"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear filter"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("R", "f5"),
		key.WithHelp("R", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
