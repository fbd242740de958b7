// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package reconcile

import (
	"slices"
	"strings"
	"testing"

	"github.com/bureau-foundation/fluidspaces/lib/workspace"
)

func twoOutputSet() workspace.Set {
	return workspace.Set{
		{Identifier: "1:alpha", Index: 1, Output: "DP-1", Focused: true, Visible: true},
		{Identifier: "2:beta", Index: 2, Output: "DP-1"},
		{Identifier: "3:gamma", Index: 3, Output: "HDMI-A-1", Visible: true},
	}
}

func TestSimulatorGoToCreatesOnFocusedOutput(t *testing.T) {
	set, err := Apply(twoOutputSet(), []string{GoTo("4:delta")})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	created, ok := set.FindByIdentifier("4:delta")
	if !ok {
		t.Fatalf("4:delta not created: %q", set.Identifiers())
	}
	if created.Output != "DP-1" || !created.Focused || !created.Visible {
		t.Errorf("created workspace = %+v, want focused and visible on DP-1", created)
	}
	alpha, _ := set.FindByIdentifier("1:alpha")
	if alpha.Focused || alpha.Visible {
		t.Errorf("previous workspace still focused or visible: %+v", alpha)
	}
	gamma, _ := set.FindByIdentifier("3:gamma")
	if !gamma.Visible {
		t.Error("workspace on another output lost visibility")
	}
}

func TestSimulatorMoveDoesNotFocus(t *testing.T) {
	set, err := Apply(twoOutputSet(), []string{MoveContainerTo("4:delta")})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	focused, _ := set.Focused()
	if focused.Identifier != "1:alpha" {
		t.Errorf("focus moved to %q", focused.Identifier)
	}
	if _, ok := set.FindByIdentifier("4:delta"); !ok {
		t.Error("move did not create its target")
	}
}

func TestSimulatorRenameReorders(t *testing.T) {
	set, err := Apply(twoOutputSet(), []string{Rename("3:gamma", "0:gamma")})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := []string{"0:gamma", "1:alpha", "2:beta"}
	if !slices.Equal(set.Identifiers(), want) {
		t.Errorf("order = %q, want %q", set.Identifiers(), want)
	}
	if set[0].Index != 0 {
		t.Errorf("renamed index = %d, want 0", set[0].Index)
	}
}

func TestSimulatorRenameSortsAfterExistingTies(t *testing.T) {
	set, err := Apply(twoOutputSet(), []string{Rename("3:gamma", "1:gamma")})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := []string{"1:alpha", "1:gamma", "2:beta"}
	if !slices.Equal(set.Identifiers(), want) {
		t.Errorf("order = %q, want %q", set.Identifiers(), want)
	}
}

func TestSimulatorRenameErrors(t *testing.T) {
	if _, err := Apply(twoOutputSet(), []string{Rename("9:missing", "1:x")}); err == nil {
		t.Error("renaming a missing workspace should fail")
	}
	if _, err := Apply(twoOutputSet(), []string{Rename("1:alpha", "2:beta")}); err == nil {
		t.Error("renaming onto an existing name should fail")
	}
}

func TestApplyContinuesPastFailure(t *testing.T) {
	set, err := Apply(twoOutputSet(), []string{
		Rename("1:alpha", "5:alpha"),
		Rename("9:missing", "1:missing"),
		"split horizontal",
		Rename("2:beta", "6:beta"),
	})
	if err == nil {
		t.Fatal("expected failure")
	}
	for _, want := range []string{`no workspace named "9:missing"`, "split horizontal"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
	want := []string{"3:gamma", "5:alpha", "6:beta"}
	if !slices.Equal(set.Identifiers(), want) {
		t.Errorf("order = %q, want %q", set.Identifiers(), want)
	}
}

// Scenario: two workspaces, the user goes to a new title. The new
// workspace is created at the next count, promoted, and the fixup
// renumbers everything so it lands in slot 1.
func TestSimulatedGoToNewTitle(t *testing.T) {
	set := workspace.Set{
		{Identifier: "1:alpha", Index: 1, Output: "DP-1", Focused: true},
		{Identifier: "2:beta", Index: 2, Output: "DP-1"},
	}
	target := "3:gamma"
	if got := set.NextUnusedIndex(); got != 3 {
		t.Fatalf("NextUnusedIndex = %d, want 3", got)
	}

	set, err := Apply(set, []string{GoTo(target)})
	if err != nil {
		t.Fatalf("go to: %v", err)
	}
	focused, _ := set.Focused()
	set, err = Apply(set, Promote(focused))
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if want := []string{"0:gamma", "1:alpha", "2:beta"}; !slices.Equal(set.Identifiers(), want) {
		t.Fatalf("after promote = %q, want %q", set.Identifiers(), want)
	}

	fixup := Fixup(set)
	if len(fixup) != 3 {
		t.Fatalf("fixup = %q, want 3 renames", fixup)
	}
	set, err = Apply(set, fixup)
	if err != nil {
		t.Fatalf("fixup: %v", err)
	}
	if want := []string{"1:gamma", "2:alpha", "3:beta"}; !slices.Equal(set.Identifiers(), want) {
		t.Errorf("after fixup = %q, want %q", set.Identifiers(), want)
	}
}
