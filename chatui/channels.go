// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rachel-Huang77/6080-slackr/api"
	"github.com/Rachel-Huang77/6080-slackr/lib/ident"
)

// ChannelPartition is the channel list split into the two rendered
// sections: public channels, then private channels. Every fetched
// channel lands in exactly one section and none appear twice; each
// section keeps the backend's listing order.
type ChannelPartition struct {
	Public  []api.Channel
	Private []api.Channel
}

// PartitionChannels splits the fetched channel list for display by
// the private flag alone. Membership does not move a channel between
// sections; it only changes how the row renders and which actions
// apply to it.
func PartitionChannels(channels []api.Channel) ChannelPartition {
	var partition ChannelPartition
	for _, channel := range channels {
		if channel.Private {
			partition.Private = append(partition.Private, channel)
		} else {
			partition.Public = append(partition.Public, channel)
		}
	}
	return partition
}

// IsMember reports whether the user appears in the channel's member
// list. Membership is determined by the member list, not the creator
// field: a creator who left their own channel is a non-member like
// anyone else.
func IsMember(channel api.Channel, self ident.UserID) bool {
	return slices.Contains(channel.Members, self)
}

// channelRow is one rendered line in the channel pane: a section
// header or a channel entry.
type channelRow struct {
	IsHeader bool
	Header   string

	Channel api.Channel
	Joined  bool

	// Filter match positions in the channel name, for highlighting.
	MatchPositions []int
}

// buildChannelRows flattens a partition into displayable rows. Section
// headers are skipped for empty sections.
func buildChannelRows(partition ChannelPartition, self ident.UserID) []channelRow {
	var rows []channelRow
	if len(partition.Public) > 0 {
		rows = append(rows, channelRow{IsHeader: true, Header: "Public Channels"})
		for _, channel := range partition.Public {
			rows = append(rows, channelRow{Channel: channel, Joined: IsMember(channel, self)})
		}
	}
	if len(partition.Private) > 0 {
		rows = append(rows, channelRow{IsHeader: true, Header: "Private Channels"})
		for _, channel := range partition.Private {
			rows = append(rows, channelRow{Channel: channel, Joined: IsMember(channel, self)})
		}
	}
	return rows
}

// renderChannelRow renders one row of the channel pane at the given
// width. Selected rows get the selection background across the full
// width.
func renderChannelRow(theme Theme, row channelRow, width int, selected bool) string {
	if row.IsHeader {
		return lipgloss.NewStyle().
			Foreground(theme.FaintText).
			Bold(true).
			Width(width).
			Render(" " + row.Header)
	}

	badge := "#"
	badgeColor := theme.FaintText
	if row.Channel.Private {
		badge = "🔒"
		badgeColor = theme.PrivateBadge
	}

	nameColor := theme.NormalText
	if !row.Joined {
		nameColor = theme.FaintText
	}

	name := highlightMatches(row.Channel.Name, row.MatchPositions,
		lipgloss.NewStyle().Foreground(nameColor),
		lipgloss.NewStyle().Foreground(nameColor).Background(theme.MatchBackground))

	line := " " + lipgloss.NewStyle().Foreground(badgeColor).Render(badge) + " " + name

	style := lipgloss.NewStyle().Width(width)
	if selected {
		style = style.Background(theme.SelectedBackground)
	}
	return style.Render(line)
}

// highlightMatches styles a string rune by rune, applying the match
// style at the given rune positions and the base style elsewhere.
// Consecutive runs share one styled segment to keep the output
// compact.
func highlightMatches(text string, positions []int, base, match lipgloss.Style) string {
	if len(positions) == 0 {
		return base.Render(text)
	}

	matched := make(map[int]bool, len(positions))
	for _, position := range positions {
		matched[position] = true
	}

	var output strings.Builder
	var segment strings.Builder
	inMatch := false
	flush := func() {
		if segment.Len() == 0 {
			return
		}
		if inMatch {
			output.WriteString(match.Render(segment.String()))
		} else {
			output.WriteString(base.Render(segment.String()))
		}
		segment.Reset()
	}

	for index, r := range []rune(text) {
		if matched[index] != inMatch {
			flush()
			inMatch = matched[index]
		}
		segment.WriteRune(r)
	}
	flush()
	return output.String()
}
