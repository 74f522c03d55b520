// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderScrollbar produces a single-column scrollbar of the given
// height. The thumb indicates the visible region within the total
// content and uses the accent color when the pane is focused.
//
// The scrollbar is always fully rendered: when content fits within
// the visible area the thumb spans the entire height.
func renderScrollbar(theme Theme, height, totalLines, visibleLines, scrollOffset int, focused bool) string {
	if height <= 0 {
		return ""
	}

	thumbColor := theme.BorderColor
	if focused {
		thumbColor = theme.JoinedAccent
	}

	trackStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)
	thumbStyle := lipgloss.NewStyle().Foreground(thumbColor)

	lines := make([]string, height)

	if totalLines <= visibleLines || totalLines <= 0 {
		for index := range lines {
			lines[index] = thumbStyle.Render("┃")
		}
		return strings.Join(lines, "\n")
	}

	thumbSize := height * visibleLines / totalLines
	if thumbSize < 1 {
		thumbSize = 1
	}

	scrollableRange := totalLines - visibleLines
	trackRange := height - thumbSize
	thumbOffset := 0
	if scrollableRange > 0 && trackRange > 0 {
		thumbOffset = scrollOffset * trackRange / scrollableRange
	}
	if thumbOffset+thumbSize > height {
		thumbOffset = height - thumbSize
	}

	for index := range lines {
		if index >= thumbOffset && index < thumbOffset+thumbSize {
			lines[index] = thumbStyle.Render("┃")
		} else {
			lines[index] = trackStyle.Render("│")
		}
	}

	return strings.Join(lines, "\n")
}
