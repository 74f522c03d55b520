// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the chat TUI. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Channel badges.
	PrivateBadge lipgloss.Color
	JoinedAccent lipgloss.Color

	// Message chrome.
	SenderForeground lipgloss.Color
	TimeForeground   lipgloss.Color
	EditedMarker     lipgloss.Color
	PinnedAccent     lipgloss.Color
	ReactForeground  lipgloss.Color
	OwnReactAccent   lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Error notice shown in the status bar after a failed call.
	ErrorForeground lipgloss.Color
	ErrorBackground lipgloss.Color

	// Filter match highlighting.
	MatchBackground lipgloss.Color

	// Markdown rendering.
	CodeForeground  lipgloss.Color
	CodeBackground  lipgloss.Color
	QuoteForeground lipgloss.Color
	LinkForeground  lipgloss.Color

	// Modal overlays.
	ModalBackground lipgloss.Color
	ModalBorder     lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	PrivateBadge: lipgloss.Color("208"), // orange lock
	JoinedAccent: lipgloss.Color("114"), // green

	SenderForeground: lipgloss.Color("75"),  // blue
	TimeForeground:   lipgloss.Color("240"), // dim gray
	EditedMarker:     lipgloss.Color("245"),
	PinnedAccent:     lipgloss.Color("220"), // amber
	ReactForeground:  lipgloss.Color("252"),
	OwnReactAccent:   lipgloss.Color("114"), // green for the user's own react

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	ErrorForeground: lipgloss.Color("255"),
	ErrorBackground: lipgloss.Color("88"), // dark red

	MatchBackground: lipgloss.Color("58"), // dark amber

	CodeForeground:  lipgloss.Color("223"),
	CodeBackground:  lipgloss.Color("236"),
	QuoteForeground: lipgloss.Color("245"),
	LinkForeground:  lipgloss.Color("75"),

	ModalBackground: lipgloss.Color("235"),
	ModalBorder:     lipgloss.Color("240"),
}
