// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"slices"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult is one fuzzy match. A zero Score means no match.
type FuzzyResult struct {
	Score int

	// Positions are the rune offsets of matched characters in the
	// text, ascending.
	Positions []int
}

var schemeOnce sync.Once

// FuzzyMatch scores text against pattern with fzf's V2 algorithm,
// case-insensitively. slab may be nil; callers matching many rows
// should share one from util.MakeSlab.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}
	schemeOnce.Do(func() { algo.Init("default") })

	chars := util.ToChars([]byte(strings.ToLower(text)))
	lowered := []rune(strings.ToLower(string(pattern)))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Start < 0 || result.Score <= 0 {
		return FuzzyResult{}
	}

	var sorted []int
	if positions != nil {
		sorted = slices.Clone(*positions)
		slices.Sort(sorted)
	}
	return FuzzyResult{Score: result.Score, Positions: sorted}
}
