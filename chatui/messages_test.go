// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/Rachel-Huang77/6080-slackr/api"
	"github.com/Rachel-Huang77/6080-slackr/lib/ident"
)

func TestDisplayOrder(t *testing.T) {
	fetched := []api.Message{{ID: 3}, {ID: 2}, {ID: 1}} // Newest-first wire order.

	ordered := DisplayOrder(fetched)

	for index, want := range []ident.MessageID{1, 2, 3} {
		if ordered[index].ID != want {
			t.Errorf("ordered[%d] = %v, want %v", index, ordered[index].ID, want)
		}
	}
	// Input untouched.
	if fetched[0].ID != 3 {
		t.Error("DisplayOrder modified its input")
	}
}

func TestDisplayOrderEmpty(t *testing.T) {
	if got := DisplayOrder(nil); len(got) != 0 {
		t.Errorf("DisplayOrder(nil) = %v", got)
	}
}

func TestSplitPinned(t *testing.T) {
	messages := []api.Message{
		{ID: 1},
		{ID: 2, Pinned: true},
		{ID: 3},
		{ID: 4, Pinned: true},
	}

	pinned, rest := SplitPinned(messages)

	if len(pinned) != 2 || pinned[0].ID != 2 || pinned[1].ID != 4 {
		t.Errorf("pinned = %+v", pinned)
	}
	if len(rest) != 2 || rest[0].ID != 1 || rest[1].ID != 3 {
		t.Errorf("rest = %+v", rest)
	}

	// No message lost or duplicated across the split.
	if len(pinned)+len(rest) != len(messages) {
		t.Errorf("split covers %d messages, want %d", len(pinned)+len(rest), len(messages))
	}
	seen := make(map[ident.MessageID]bool)
	for _, message := range append(append([]api.Message{}, pinned...), rest...) {
		if seen[message.ID] {
			t.Errorf("message %v appears twice", message.ID)
		}
		seen[message.ID] = true
	}
}

func TestFormatMessageTime(t *testing.T) {
	now := time.Date(2026, 8, 25, 14, 30, 0, 0, time.Local)

	tests := []struct {
		name   string
		sentAt time.Time
		want   string
	}{
		{"today", time.Date(2026, 8, 25, 9, 5, 0, 0, time.Local), "09:05"},
		{"this year", time.Date(2026, 3, 14, 9, 26, 0, 0, time.Local), "Mar 14 09:26"},
		{"older", time.Date(2024, 12, 31, 23, 59, 0, 0, time.Local), "Dec 31 2024"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := formatMessageTime(test.sentAt, now); got != test.want {
				t.Errorf("formatMessageTime = %q, want %q", got, test.want)
			}
		})
	}
}

func TestSummarizeReacts(t *testing.T) {
	reacts := []api.Reaction{
		{React: "👍", User: 7},
		{React: "🎉", User: 8},
		{React: "👍", User: 42},
	}

	summary := ansi.Strip(summarizeReacts(DefaultTheme, reacts, 42))

	if !strings.Contains(summary, "👍 2") {
		t.Errorf("summary = %q, want thumbs-up count of 2", summary)
	}
	if !strings.Contains(summary, "🎉 1") {
		t.Errorf("summary = %q, want party count of 1", summary)
	}
	// First-seen order.
	if strings.Index(summary, "👍") > strings.Index(summary, "🎉") {
		t.Errorf("summary = %q, want first-seen emoji first", summary)
	}
}

func TestSummarizeReactsEmpty(t *testing.T) {
	if got := summarizeReacts(DefaultTheme, nil, 42); got != "" {
		t.Errorf("summarizeReacts(nil) = %q, want empty", got)
	}
}

func TestRenderMessage(t *testing.T) {
	now := time.Now()
	editedAt := now.Add(-time.Minute)
	message := api.Message{
		ID:       1,
		Sender:   7,
		Message:  "hello world",
		SentAt:   now.Add(-time.Hour),
		Edited:   true,
		EditedAt: &editedAt,
		Pinned:   true,
	}

	rendered := ansi.Strip(renderMessage(DefaultTheme, message, "Bob", 42, 60, now, false))

	for _, want := range []string{"Bob", "hello world", "(edited)", "📌"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("rendered message missing %q:\n%s", want, rendered)
		}
	}
}

func TestRenderMessageImage(t *testing.T) {
	message := api.Message{
		ID:     2,
		Sender: 7,
		Image:  "data:image/png;base64,AAAA",
		SentAt: time.Now(),
	}

	rendered := ansi.Strip(renderMessage(DefaultTheme, message, "Bob", 42, 60, time.Now(), false))

	if !strings.Contains(rendered, "[image]") {
		t.Errorf("rendered = %q, want image placeholder", rendered)
	}
	if strings.Contains(rendered, "base64") {
		t.Error("raw data URL leaked into the rendered output")
	}
}
