// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"slices"
	"testing"
)

func testSet() Set {
	return Set{
		{Identifier: "1:work", Index: 1, Output: "DP-1", Focused: true, Visible: true},
		{Identifier: "2:chat", Index: 2, Output: "DP-1"},
		{Identifier: "3: mail", Index: 3, Output: "HDMI-A-1", Visible: true},
		{Identifier: "4:chat", Index: 4, Output: "HDMI-A-1"},
		{Identifier: "scratch", Index: -1, Output: "DP-1"},
	}
}

func TestTitleIsDecoded(t *testing.T) {
	set := testSet()
	if got := set[2].Title(); got != "mail" {
		t.Errorf("Title() = %q, want %q", got, "mail")
	}
	if got := set[4].Title(); got != "scratch" {
		t.Errorf("Title() = %q, want %q", got, "scratch")
	}
}

func TestFindByTitle(t *testing.T) {
	set := testSet()

	found, ok := set.FindByTitle("chat")
	if !ok {
		t.Fatal("FindByTitle(chat) found nothing")
	}
	if found.Identifier != "2:chat" {
		t.Errorf("FindByTitle(chat) = %q, want first match 2:chat", found.Identifier)
	}

	if _, ok := set.FindByTitle("3: mail"); ok {
		t.Error("FindByTitle should match decoded titles, not identifiers")
	}
	if _, ok := set.FindByTitle("missing"); ok {
		t.Error("FindByTitle(missing) should find nothing")
	}
}

func TestFindByIdentifier(t *testing.T) {
	set := testSet()
	if _, ok := set.FindByIdentifier("3: mail"); !ok {
		t.Error("FindByIdentifier(3: mail) should match the raw identifier")
	}
	if _, ok := set.FindByIdentifier("3:mail"); ok {
		t.Error("FindByIdentifier must not normalize whitespace")
	}
}

func TestFindByIndex(t *testing.T) {
	set := testSet()
	found, ok := set.FindByIndex(4)
	if !ok || found.Identifier != "4:chat" {
		t.Errorf("FindByIndex(4) = %+v, %v", found, ok)
	}
	if _, ok := set.FindByIndex(9); ok {
		t.Error("FindByIndex(9) should find nothing")
	}
}

func TestFocused(t *testing.T) {
	set := testSet()
	focused, ok := set.Focused()
	if !ok || focused.Identifier != "1:work" {
		t.Errorf("Focused() = %+v, %v", focused, ok)
	}

	set[0].Focused = false
	if _, ok := set.Focused(); ok {
		t.Error("Focused() should report absence when nothing is focused")
	}
}

func TestSecondOnOutput(t *testing.T) {
	set := testSet()

	second, ok := set.SecondOnOutput("DP-1")
	if !ok || second.Identifier != "2:chat" {
		t.Errorf("SecondOnOutput(DP-1) = %+v, %v", second, ok)
	}

	second, ok = set.SecondOnOutput("HDMI-A-1")
	if !ok || second.Identifier != "4:chat" {
		t.Errorf("SecondOnOutput(HDMI-A-1) = %+v, %v", second, ok)
	}

	lonely := Set{{Identifier: "1:only", Index: 1, Output: "eDP-1", Focused: true}}
	if _, ok := lonely.SecondOnOutput("eDP-1"); ok {
		t.Error("SecondOnOutput with one workspace on the output should find nothing")
	}
}

func TestNextUnusedIndexIsACount(t *testing.T) {
	tests := []struct {
		name string
		set  Set
		want int
	}{
		{"empty", Set{}, 1},
		{"contiguous", Set{{Index: 1}, {Index: 2}}, 3},
		{"gapped", Set{{Index: 1}, {Index: 7}}, 3},
		{"duplicates and negatives", Set{{Index: -1}, {Index: 0}, {Index: 0}}, 4},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.set.NextUnusedIndex(); got != test.want {
				t.Errorf("NextUnusedIndex() = %d, want %d", got, test.want)
			}
		})
	}
}

func TestChoiceListSortsByIndex(t *testing.T) {
	set := Set{
		{Identifier: "3:c", Index: 3},
		{Identifier: "1:a", Index: 1},
		{Identifier: "loose", Index: -1},
		{Identifier: "2:b", Index: 2},
		{Identifier: "0:promoted", Index: 0},
	}
	got := set.ChoiceList()
	want := []string{"loose", "promoted", "a", "b", "c"}
	if !slices.Equal(got, want) {
		t.Errorf("ChoiceList() = %q, want %q", got, want)
	}
	if set[0].Identifier != "3:c" {
		t.Error("ChoiceList must not reorder the receiver")
	}
}

func TestEffectiveIndex(t *testing.T) {
	if got := (Workspace{Index: -1}).EffectiveIndex(); got != 0 {
		t.Errorf("EffectiveIndex(-1) = %d, want 0", got)
	}
	if got := (Workspace{Index: 5}).EffectiveIndex(); got != 5 {
		t.Errorf("EffectiveIndex(5) = %d, want 5", got)
	}
}
