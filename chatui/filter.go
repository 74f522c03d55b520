// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/Rachel-Huang77/6080-slackr/api"
)

// FilterModel is the channel-pane fuzzy filter. The filter narrows the
// displayed channel list client-side without round-tripping to the
// backend; partition sections are preserved and results within each
// section are ordered by match score.
type FilterModel struct {
	// Input is the current filter query text.
	Input string

	// Active is true when the filter input has keyboard focus
	// (the user pressed / to start typing).
	Active bool
}

// ChannelMatch is one filtered channel with its match metadata.
type ChannelMatch struct {
	Channel   api.Channel
	Score     int
	Positions []int
}

// ApplyFuzzy filters channels by fuzzy-matching the query against
// channel names. An empty query returns every channel with zero score
// in the original order. Non-matching channels are dropped; matches
// are sorted by descending score, ties keeping the listing order.
func (filter *FilterModel) ApplyFuzzy(channels []api.Channel) []ChannelMatch {
	if filter.Input == "" {
		matches := make([]ChannelMatch, len(channels))
		for index, channel := range channels {
			matches[index] = ChannelMatch{Channel: channel}
		}
		return matches
	}

	pattern := []rune(filter.Input)
	slab := util.MakeSlab(100*1024, 2048)

	var matches []ChannelMatch
	for _, channel := range channels {
		result := FuzzyMatch(channel.Name, pattern, slab)
		if result.Score <= 0 {
			continue
		}
		matches = append(matches, ChannelMatch{
			Channel:   channel,
			Score:     result.Score,
			Positions: result.Positions,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// HandleRune processes a character typed while the filter is active.
func (filter *FilterModel) HandleRune(character rune) {
	filter.Input += string(character)
}

// HandleBackspace removes the last character from the filter input.
// Returns true if the input changed.
func (filter *FilterModel) HandleBackspace() bool {
	if len(filter.Input) == 0 {
		return false
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the filter input and deactivates it.
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}

// View renders the filter bar. When active, shows the input with a
// cursor. When inactive with text, shows the filter text dimmed. When
// inactive with no text, returns empty string (hidden).
func (filter *FilterModel) View(theme Theme, width int) string {
	if !filter.Active && filter.Input == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Foreground(theme.NormalText).
		Width(width)

	if filter.Active {
		cursor := lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true).
			Render("▎")
		return style.Render(" / " + filter.Input + cursor)
	}

	dimStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Width(width)
	return dimStyle.Render(" filter: " + filter.Input)
}
