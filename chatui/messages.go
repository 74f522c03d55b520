// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rachel-Huang77/6080-slackr/api"
	"github.com/Rachel-Huang77/6080-slackr/lib/ident"
)

// DisplayOrder returns a reversed copy of a fetched message slice. The
// backend sends newest-first; on screen the oldest message of the page
// sits at the top and the newest at the bottom, chat style. The input
// is never modified — fetched pages stay in wire order so pagination
// bookkeeping remains simple.
func DisplayOrder(messages []api.Message) []api.Message {
	ordered := make([]api.Message, len(messages))
	for index, message := range messages {
		ordered[len(messages)-1-index] = message
	}
	return ordered
}

// SplitPinned partitions messages into pinned and unpinned, preserving
// relative order within each part. The message pane renders the pinned
// section above the regular flow so pinned content is visible without
// scrolling back.
func SplitPinned(messages []api.Message) (pinned, rest []api.Message) {
	for _, message := range messages {
		if message.Pinned {
			pinned = append(pinned, message)
		} else {
			rest = append(rest, message)
		}
	}
	return pinned, rest
}

// formatMessageTime renders a message timestamp relative to now:
// bare clock time for today, month and day within the current year,
// full date otherwise.
func formatMessageTime(sentAt, now time.Time) string {
	local := sentAt.Local()
	if local.Year() == now.Year() && local.YearDay() == now.YearDay() {
		return local.Format("15:04")
	}
	if local.Year() == now.Year() {
		return local.Format("Jan 2 15:04")
	}
	return local.Format("Jan 2 2006")
}

// summarizeReacts collapses a reaction list into per-emoji counts in
// first-seen order, e.g. "👍 2  🎉 1". Emoji the user reacted with
// themselves render in the own-react accent so the toggle state is
// visible at a glance.
func summarizeReacts(theme Theme, reacts []api.Reaction, self ident.UserID) string {
	if len(reacts) == 0 {
		return ""
	}

	type group struct {
		emoji string
		count int
		own   bool
	}
	var order []string
	groups := make(map[string]*group)
	for _, react := range reacts {
		entry, seen := groups[react.React]
		if !seen {
			entry = &group{emoji: react.React}
			groups[react.React] = entry
			order = append(order, react.React)
		}
		entry.count++
		if react.User == self {
			entry.own = true
		}
	}

	normal := lipgloss.NewStyle().Foreground(theme.ReactForeground)
	own := lipgloss.NewStyle().Foreground(theme.OwnReactAccent).Bold(true)

	parts := make([]string, 0, len(order))
	for _, emoji := range order {
		entry := groups[emoji]
		segment := fmt.Sprintf("%s %d", entry.emoji, entry.count)
		if entry.own {
			parts = append(parts, own.Render(segment))
		} else {
			parts = append(parts, normal.Render(segment))
		}
	}
	return strings.Join(parts, "  ")
}

// renderMessage renders one message as a block of lines: a header line
// with sender, time, and state markers; the body (markdown for text,
// a placeholder tag for images); and a reaction summary line when any
// reacts exist.
func renderMessage(theme Theme, message api.Message, senderName string, self ident.UserID, width int, now time.Time, selected bool) string {
	header := lipgloss.NewStyle().
		Foreground(theme.SenderForeground).
		Bold(true).
		Render(senderName)
	header += " " + lipgloss.NewStyle().
		Foreground(theme.TimeForeground).
		Render(formatMessageTime(message.SentAt, now))
	if message.Edited {
		header += " " + lipgloss.NewStyle().
			Foreground(theme.EditedMarker).
			Italic(true).
			Render("(edited)")
	}
	if message.Pinned {
		header += " " + lipgloss.NewStyle().
			Foreground(theme.PinnedAccent).
			Render("📌")
	}

	var body string
	switch {
	case message.Image != "":
		body = lipgloss.NewStyle().
			Foreground(theme.FaintText).
			Italic(true).
			Render("[image]")
	default:
		body = RenderMarkdown(message.Message, theme, width-2)
	}

	lines := []string{header}
	for _, line := range strings.Split(body, "\n") {
		lines = append(lines, "  "+line)
	}
	if reacts := summarizeReacts(theme, message.Reacts, self); reacts != "" {
		lines = append(lines, "  "+reacts)
	}

	block := strings.Join(lines, "\n")
	if selected {
		return lipgloss.NewStyle().
			Background(theme.SelectedBackground).
			Width(width).
			Render(block)
	}
	return block
}
