// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package reconcile

import (
	"fmt"
	"slices"

	"github.com/bureau-foundation/fluidspaces/lib/workspace"
	"github.com/bureau-foundation/fluidspaces/lib/wsname"
)

// PromotedIndex is the index a promoted workspace is renamed to. It
// sorts before every index a fixup assigns.
const PromotedIndex = 0

// Promote returns the single command that renames w to "0:<title>",
// regardless of its current index. A workspace already at 0 still gets
// the command; renaming to the same name is harmless and keeps the plan
// independent of the snapshot's details.
func Promote(w workspace.Workspace) []string {
	return []string{Rename(w.Identifier, wsname.Encode(PromotedIndex, w.Title()))}
}

// Fixup returns the renames that number set 1..N in its current order.
// Workspaces whose effective index already equals their position are
// left alone, so running Fixup on a freshly fixed-up set yields nothing.
//
// Duplicate titles can make one rename's target the current name of a
// workspace renamed later in the same batch. Such renames wait until
// the name is released; a cycle of them is broken by parking one
// workspace under a temporary name. The final order depends only on
// the new indices, which are distinct, so reordering the renames does
// not change the result.
func Fixup(set workspace.Set) []string {
	var pending []move
	taken := make(map[string]bool, len(set))
	for position, w := range set {
		taken[w.Identifier] = true
		want := position + 1
		if w.EffectiveIndex() == want {
			continue
		}
		pending = append(pending, move{from: w.Identifier, to: wsname.Encode(want, w.Title())})
	}

	var commands []string
	rename := func(from, to string) {
		commands = append(commands, Rename(from, to))
		delete(taken, from)
		taken[to] = true
	}
	for len(pending) > 0 {
		blocked := pending[:0]
		for _, m := range pending {
			if taken[m.to] {
				blocked = append(blocked, m)
				continue
			}
			rename(m.from, m.to)
		}
		progressed := len(blocked) < len(pending)
		pending = blocked
		if progressed {
			continue
		}

		cycle := -1
		for i := range pending {
			if onCycle(pending, i) {
				cycle = i
				break
			}
		}
		if cycle < 0 {
			// Held by a workspace that is not being renamed. The window
			// manager reports the clash.
			for _, m := range pending {
				commands = append(commands, Rename(m.from, m.to))
			}
			break
		}
		parked := parkingName(taken, pending)
		rename(pending[cycle].from, parked)
		pending[cycle].from = parked
	}
	return commands
}

type move struct {
	from string
	to   string
}

// onCycle reports whether following pending[start]'s target through
// the renames holding it leads back to pending[start].
func onCycle(pending []move, start int) bool {
	current := start
	for range pending {
		next := slices.IndexFunc(pending, func(m move) bool { return m.from == pending[current].to })
		if next < 0 {
			return false
		}
		if next == start {
			return true
		}
		current = next
	}
	return false
}

// parkingName returns an unnumbered name held by no workspace and
// targeted by no pending rename.
func parkingName(taken map[string]bool, pending []move) string {
	for n := 0; ; n++ {
		name := fmt.Sprintf("fixup-%d", n)
		if taken[name] || slices.ContainsFunc(pending, func(m move) bool { return m.to == name }) {
			continue
		}
		return name
	}
}
