// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package workspace is a read-only view over the window manager's live
// workspace list.
//
// A [Set] is built fresh from the transport for every decision and
// thrown away afterwards. Nothing here is cached: renaming a workspace
// is, as far as this package is concerned, destroying one identifier
// and creating another, so any set taken before a command batch is
// stale after it.
//
// Set order is the order the window manager reported. That order is
// the only notion of position (and therefore of recency) in the
// system; see package reconcile for how it is manipulated.
package workspace

import (
	"cmp"
	"slices"

	"github.com/bureau-foundation/fluidspaces/lib/wsname"
)

// Workspace is one workspace as reported by the window manager.
type Workspace struct {
	// Identifier is the raw name, e.g. "3:shopping". It is the
	// authoritative key for every command.
	Identifier string `json:"name"`

	// Index is the number the window manager derived from Identifier.
	// Negative for workspaces with no numeric prefix.
	Index int `json:"num"`

	// Output names the display the workspace lives on.
	Output string `json:"output"`

	// Focused is true for at most one workspace in a set.
	Focused bool `json:"focused"`

	// Visible and Urgent are informational only.
	Visible bool `json:"visible"`
	Urgent  bool `json:"urgent"`
}

// Title decodes the title from Identifier. It is recomputed on every
// call and never stored.
func (w Workspace) Title() string {
	return wsname.Title(w.Identifier)
}

// EffectiveIndex is Index with negative values clamped to 0, which is
// where unnumbered workspaces sort for ordering purposes.
func (w Workspace) EffectiveIndex() int {
	return max(w.Index, 0)
}

// Set is an ordered snapshot of every live workspace.
type Set []Workspace

// FindByTitle returns the first workspace, in set order, whose decoded
// title equals title exactly.
func (s Set) FindByTitle(title string) (Workspace, bool) {
	return s.find(func(w Workspace) bool { return w.Title() == title })
}

// FindByIdentifier returns the workspace whose raw identifier equals
// identifier exactly.
func (s Set) FindByIdentifier(identifier string) (Workspace, bool) {
	return s.find(func(w Workspace) bool { return w.Identifier == identifier })
}

// FindByIndex returns the first workspace reporting index.
func (s Set) FindByIndex(index int) (Workspace, bool) {
	return s.find(func(w Workspace) bool { return w.Index == index })
}

// Focused returns the focused workspace. The second result is false
// when no workspace reports focus; callers that need a focused
// workspace must treat that as an error.
func (s Set) Focused() (Workspace, bool) {
	return s.find(func(w Workspace) bool { return w.Focused })
}

// SecondOnOutput returns the workspace at position 1 (0-based) among
// those on output, in set order. This is the toggle target: "the other
// workspace on this screen".
func (s Set) SecondOnOutput(output string) (Workspace, bool) {
	seen := 0
	for _, w := range s {
		if w.Output != output {
			continue
		}
		if seen == 1 {
			return w, true
		}
		seen++
	}
	return Workspace{}, false
}

// NextUnusedIndex is len(s)+1. It is a count, not max+1, and does not
// look for gaps: after a fixup the two agree, and before one the new
// workspace only needs to sort after the existing ones long enough for
// the next fixup to place it.
func (s Set) NextUnusedIndex() int {
	return len(s) + 1
}

// ChoiceList returns one title per workspace sorted ascending by
// effective index, ties kept in set order. Joined with newlines this is
// exactly what the picker receives on stdin.
func (s Set) ChoiceList() []string {
	ordered := slices.Clone(s)
	slices.SortStableFunc(ordered, func(a, b Workspace) int {
		return cmp.Compare(a.EffectiveIndex(), b.EffectiveIndex())
	})
	titles := make([]string, len(ordered))
	for i, w := range ordered {
		titles[i] = w.Title()
	}
	return titles
}

// Identifiers returns the raw identifiers in set order.
func (s Set) Identifiers() []string {
	identifiers := make([]string, len(s))
	for i, w := range s {
		identifiers[i] = w.Identifier
	}
	return identifiers
}

func (s Set) find(match func(Workspace) bool) (Workspace, bool) {
	for _, w := range s {
		if match(w) {
			return w, true
		}
	}
	return Workspace{}, false
}
