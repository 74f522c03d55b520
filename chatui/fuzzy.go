// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// fzf's matcher reads package-level scoring tables that are only
// populated by algo.Init; without it, case-insensitive matching
// silently fails.
func init() {
	algo.Init("default")
}

// FuzzyResult holds the outcome of a fuzzy match: a relevance score
// (higher is better, zero means no match) and the rune positions in
// the text that matched the pattern, for highlighting.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// FuzzyMatch runs fzf's V2 matcher against a single text. Matching is
// case-insensitive: the pattern is lowercased here and fzf handles the
// text side. The slab is an optional scratch allocation reused across
// calls in a tight loop; pass nil for one-off matches.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}

	lowered := make([]rune, len(pattern))
	for index, r := range pattern {
		lowered[index] = unicode.ToLower(r)
	}

	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}

	match := FuzzyResult{Score: result.Score}
	if positions != nil {
		match.Positions = *positions
	}
	return match
}
