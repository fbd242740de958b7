// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package picker

import (
	"slices"

	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/fluidspaces/lib/tui"
)

// Match is one choice that survived filtering.
type Match struct {
	// Text is the choice itself.
	Text string

	// Index is the choice's position in the unfiltered list.
	Index int

	// Score is the fzf score; zero for an empty query.
	Score int

	// Positions are the matched rune offsets within Text.
	Positions []int
}

// Rank filters choices by query and orders the survivors best first.
// Ties keep their input order, and an empty query keeps every choice
// in input order.
func Rank(query string, choices []string) []Match {
	matches := make([]Match, 0, len(choices))
	if query == "" {
		for index, choice := range choices {
			matches = append(matches, Match{Text: choice, Index: index})
		}
		return matches
	}

	pattern := []rune(query)
	slab := util.MakeSlab(100*1024, 2048)
	for index, choice := range choices {
		result := tui.FuzzyMatch(choice, pattern, slab)
		if result.Score <= 0 {
			continue
		}
		matches = append(matches, Match{
			Text:      choice,
			Index:     index,
			Score:     result.Score,
			Positions: result.Positions,
		})
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		return b.Score - a.Score
	})
	return matches
}
