// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"testing"

	"github.com/Rachel-Huang77/6080-slackr/api"
)

func testChannels() []api.Channel {
	return []api.Channel{
		{ID: 1, Name: "general"},
		{ID: 2, Name: "engineering"},
		{ID: 3, Name: "random"},
		{ID: 4, Name: "gardening"},
	}
}

func TestApplyFuzzyEmptyFilter(t *testing.T) {
	filter := FilterModel{Input: ""}
	matches := filter.ApplyFuzzy(testChannels())

	if len(matches) != 4 {
		t.Fatalf("empty filter returned %d channels, want all 4", len(matches))
	}
	for index, match := range matches {
		if match.Score != 0 {
			t.Errorf("matches[%d].Score = %d, want 0 with empty filter", index, match.Score)
		}
		if len(match.Positions) != 0 {
			t.Errorf("matches[%d] has positions with empty filter", index)
		}
	}
}

func TestApplyFuzzyDropsNonMatches(t *testing.T) {
	filter := FilterModel{Input: "gen"}
	matches := filter.ApplyFuzzy(testChannels())

	for _, match := range matches {
		if match.Score <= 0 {
			t.Errorf("channel %q kept with non-positive score", match.Channel.Name)
		}
	}
	for _, match := range matches {
		if match.Channel.Name == "random" {
			t.Error("'random' matched query 'gen'")
		}
	}
}

func TestApplyFuzzyOrdersByScore(t *testing.T) {
	filter := FilterModel{Input: "general"}
	matches := filter.ApplyFuzzy(testChannels())

	if len(matches) == 0 {
		t.Fatal("no matches for 'general'")
	}
	if matches[0].Channel.Name != "general" {
		t.Errorf("best match = %q, want the exact name first", matches[0].Channel.Name)
	}
	for index := 1; index < len(matches); index++ {
		if matches[index].Score > matches[index-1].Score {
			t.Errorf("matches not sorted by descending score at %d", index)
		}
	}
}

func TestFilterEditing(t *testing.T) {
	var filter FilterModel
	filter.HandleRune('g')
	filter.HandleRune('e')
	if filter.Input != "ge" {
		t.Errorf("Input = %q, want ge", filter.Input)
	}

	if !filter.HandleBackspace() {
		t.Error("HandleBackspace on non-empty input = false")
	}
	if filter.Input != "g" {
		t.Errorf("Input = %q, want g", filter.Input)
	}

	filter.HandleBackspace()
	if filter.HandleBackspace() {
		t.Error("HandleBackspace on empty input = true")
	}

	filter.Input = "x"
	filter.Active = true
	filter.Clear()
	if filter.Input != "" || filter.Active {
		t.Errorf("Clear left %+v", filter)
	}
}
