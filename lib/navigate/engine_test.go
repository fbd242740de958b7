// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package navigate

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"testing"

	"github.com/bureau-foundation/fluidspaces/lib/reconcile"
	"github.com/bureau-foundation/fluidspaces/lib/wmipc"
	"github.com/bureau-foundation/fluidspaces/lib/workspace"
)

// pickFunc adapts a function to Picker.
type pickFunc func(ctx context.Context, choices []string) (string, error)

func (f pickFunc) Pick(ctx context.Context, choices []string) (string, error) {
	return f(ctx, choices)
}

// answer returns a picker that always chooses title and records the
// choices it was offered.
func answer(title string, offered *[]string) Picker {
	return pickFunc(func(ctx context.Context, choices []string) (string, error) {
		if offered != nil {
			*offered = choices
		}
		return title, nil
	})
}

// countingTransport counts calls that reach the window manager.
type countingTransport struct {
	Transport
	listings int
	batches  int
}

func (c *countingTransport) Workspaces(ctx context.Context) (workspace.Set, error) {
	c.listings++
	return c.Transport.Workspaces(ctx)
}

func (c *countingTransport) RunCommands(ctx context.Context, commands []string) error {
	c.batches++
	return c.Transport.RunCommands(ctx, commands)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func alphaBeta() workspace.Set {
	return workspace.Set{
		{Identifier: "1:alpha", Index: 1, Output: "eDP-1", Focused: true, Visible: true},
		{Identifier: "2:beta", Index: 2, Output: "eDP-1"},
	}
}

func identifiers(t *testing.T, fake *wmipc.FakeWM) []string {
	t.Helper()
	set, err := fake.Workspaces(context.Background())
	if err != nil {
		t.Fatalf("Workspaces: %v", err)
	}
	return set.Identifiers()
}

func focusedIdentifier(t *testing.T, fake *wmipc.FakeWM) string {
	t.Helper()
	set, err := fake.Workspaces(context.Background())
	if err != nil {
		t.Fatalf("Workspaces: %v", err)
	}
	focused, ok := set.Focused()
	if !ok {
		t.Fatal("no focused workspace")
	}
	return focused.Identifier
}

func TestGoToNewTitle(t *testing.T) {
	fake := wmipc.NewFakeWM(alphaBeta())
	var offered []string
	engine := NewEngine(fake, answer("gamma", &offered), testLogger())

	result, err := engine.Handle(context.Background(), Request{Action: "go_to"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if want := []string{"alpha", "beta"}; !reflect.DeepEqual(offered, want) {
		t.Errorf("picker offered %q, want %q", offered, want)
	}
	if result.Target != "3:gamma" {
		t.Errorf("Target = %q, want 3:gamma", result.Target)
	}

	wantBatches := [][]string{
		{`workspace "3:gamma"`},
		{`rename workspace "3:gamma" to "0:gamma"`},
		{
			`rename workspace "0:gamma" to "1:gamma"`,
			`rename workspace "1:alpha" to "2:alpha"`,
			`rename workspace "2:beta" to "3:beta"`,
		},
	}
	if got := fake.Batches(); !reflect.DeepEqual(got, wantBatches) {
		t.Errorf("batches =\n  %q\nwant\n  %q", got, wantBatches)
	}
	if got, want := result.Commands, fake.Commands(); !reflect.DeepEqual(got, want) {
		t.Errorf("result.Commands = %q, want %q", got, want)
	}
	if got, want := identifiers(t, fake), []string{"1:gamma", "2:alpha", "3:beta"}; !reflect.DeepEqual(got, want) {
		t.Errorf("final set = %q, want %q", got, want)
	}
	if got := focusedIdentifier(t, fake); got != "1:gamma" {
		t.Errorf("focused = %q, want 1:gamma", got)
	}
}

func TestGoToExistingTitle(t *testing.T) {
	fake := wmipc.NewFakeWM(alphaBeta())
	engine := NewEngine(fake, nil, testLogger())

	result, err := engine.Handle(context.Background(), Request{Action: "go_to", Title: "beta"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if result.Target != "2:beta" {
		t.Errorf("Target = %q, want 2:beta", result.Target)
	}
	if got, want := identifiers(t, fake), []string{"1:beta", "2:alpha"}; !reflect.DeepEqual(got, want) {
		t.Errorf("final set = %q, want %q", got, want)
	}
}

func TestToggle(t *testing.T) {
	fake := wmipc.NewFakeWM(workspace.Set{
		{Identifier: "1:work", Index: 1, Output: "A", Focused: true, Visible: true},
		{Identifier: "2:chat", Index: 2, Output: "A"},
	})
	engine := NewEngine(fake, nil, testLogger())

	result, err := engine.Handle(context.Background(), Request{Action: "toggle", Title: "ignored"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if result.Target != "2:chat" {
		t.Errorf("Target = %q, want 2:chat", result.Target)
	}
	wantCommands := []string{
		`workspace "2:chat"`,
		`rename workspace "2:chat" to "0:chat"`,
		`rename workspace "0:chat" to "1:chat"`,
		`rename workspace "1:work" to "2:work"`,
	}
	if !reflect.DeepEqual(result.Commands, wantCommands) {
		t.Errorf("commands =\n  %q\nwant\n  %q", result.Commands, wantCommands)
	}
	if got := focusedIdentifier(t, fake); got != "1:chat" {
		t.Errorf("focused = %q, want 1:chat", got)
	}

	// Toggling again returns to work.
	if _, err := engine.Handle(context.Background(), Request{Action: "toggle"}); err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if got, want := identifiers(t, fake), []string{"1:work", "2:chat"}; !reflect.DeepEqual(got, want) {
		t.Errorf("after second toggle = %q, want %q", got, want)
	}
}

func TestToggleIgnoresOtherOutputs(t *testing.T) {
	fake := wmipc.NewFakeWM(workspace.Set{
		{Identifier: "1:work", Index: 1, Output: "A", Focused: true, Visible: true},
		{Identifier: "2:chat", Index: 2, Output: "B", Visible: true},
	})
	engine := NewEngine(fake, nil, testLogger())

	_, err := engine.Handle(context.Background(), Request{Action: "toggle"})
	var resolutionError *ResolutionError
	if !errors.As(err, &resolutionError) || !errors.Is(err, ErrNoToggleTarget) {
		t.Fatalf("error = %v, want ResolutionError wrapping ErrNoToggleTarget", err)
	}
	if batches := fake.Batches(); len(batches) != 0 {
		t.Errorf("commands sent after resolution failure: %q", batches)
	}
}

func TestToggleWithoutFocus(t *testing.T) {
	fake := wmipc.NewFakeWM(workspace.Set{
		{Identifier: "1:work", Index: 1, Output: "A"},
		{Identifier: "2:chat", Index: 2, Output: "A"},
	})
	engine := NewEngine(fake, nil, testLogger())

	_, err := engine.Handle(context.Background(), Request{Action: "toggle"})
	if !errors.Is(err, ErrNoFocusedWorkspace) {
		t.Fatalf("error = %v, want ErrNoFocusedWorkspace", err)
	}
}

func TestUnknownActionSendsNothing(t *testing.T) {
	fake := wmipc.NewFakeWM(alphaBeta())
	transport := &countingTransport{Transport: fake}
	engine := NewEngine(transport, answer("gamma", nil), testLogger())

	_, err := engine.Handle(context.Background(), Request{Action: "delete_all"})
	var protocolError *ProtocolError
	if !errors.As(err, &protocolError) {
		t.Fatalf("error = %v, want *ProtocolError", err)
	}
	if protocolError.Token != "delete_all" {
		t.Errorf("Token = %q, want delete_all", protocolError.Token)
	}
	if transport.listings != 0 || transport.batches != 0 {
		t.Errorf("transport used: %d listings, %d batches", transport.listings, transport.batches)
	}
}

func TestSendToSkipsPromote(t *testing.T) {
	fake := wmipc.NewFakeWM(alphaBeta())
	engine := NewEngine(fake, answer("beta", nil), testLogger())

	result, err := engine.Handle(context.Background(), Request{Action: "send_to"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if want := []string{`move container to workspace "2:beta"`}; !reflect.DeepEqual(result.Commands, want) {
		t.Errorf("commands = %q, want %q", result.Commands, want)
	}
	if got := focusedIdentifier(t, fake); got != "1:alpha" {
		t.Errorf("focus moved to %q", got)
	}
}

func TestSendToNewTitleCreatesWithoutFocus(t *testing.T) {
	fake := wmipc.NewFakeWM(alphaBeta())
	engine := NewEngine(fake, nil, testLogger())

	result, err := engine.Handle(context.Background(), Request{Action: "send_to", Title: "notes"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if result.Target != "3:notes" {
		t.Errorf("Target = %q, want 3:notes", result.Target)
	}
	if got, want := identifiers(t, fake), []string{"1:alpha", "2:beta", "3:notes"}; !reflect.DeepEqual(got, want) {
		t.Errorf("final set = %q, want %q", got, want)
	}
	if got := focusedIdentifier(t, fake); got != "1:alpha" {
		t.Errorf("focus moved to %q", got)
	}
}

func TestBringToMovesBeforeFocusing(t *testing.T) {
	fake := wmipc.NewFakeWM(alphaBeta())
	engine := NewEngine(fake, nil, testLogger())

	if _, err := engine.Handle(context.Background(), Request{Action: "bring_to", Title: "beta"}); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	batches := fake.Batches()
	if len(batches) == 0 {
		t.Fatal("no batches sent")
	}
	want := []string{`move container to workspace "2:beta"`, `workspace "2:beta"`}
	if !reflect.DeepEqual(batches[0], want) {
		t.Errorf("primary batch = %q, want %q", batches[0], want)
	}
	if got := focusedIdentifier(t, fake); got != "1:beta" {
		t.Errorf("focused = %q, want promoted and renumbered 1:beta", got)
	}
}

func TestPickerCancelIsNoOp(t *testing.T) {
	fake := wmipc.NewFakeWM(alphaBeta())
	engine := NewEngine(fake, answer("  \n", nil), testLogger())

	result, err := engine.Handle(context.Background(), Request{Action: "go_to"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !result.Cancelled {
		t.Error("Cancelled = false, want true")
	}
	if batches := fake.Batches(); len(batches) != 0 {
		t.Errorf("cancelled request sent %q", batches)
	}
}

func TestPickerFailure(t *testing.T) {
	fake := wmipc.NewFakeWM(alphaBeta())
	spawnErr := errors.New("exec: \"dmenu\": executable file not found in $PATH")
	engine := NewEngine(fake, pickFunc(func(context.Context, []string) (string, error) {
		return "", spawnErr
	}), testLogger())

	_, err := engine.Handle(context.Background(), Request{Action: "go_to"})
	var resolutionError *ResolutionError
	if !errors.As(err, &resolutionError) {
		t.Fatalf("error = %v, want *ResolutionError", err)
	}
	if !errors.Is(err, spawnErr) {
		t.Errorf("error %v does not wrap the picker error", err)
	}
}

func TestNoTitleWithoutPicker(t *testing.T) {
	engine := NewEngine(wmipc.NewFakeWM(alphaBeta()), nil, testLogger())
	_, err := engine.Handle(context.Background(), Request{Action: "go_to"})
	if !errors.Is(err, ErrNoPicker) {
		t.Fatalf("error = %v, want ErrNoPicker", err)
	}
}

func TestListingFailure(t *testing.T) {
	fake := wmipc.NewFakeWM(alphaBeta())
	listingErr := errors.New("connection refused")
	fake.FailListing(listingErr)
	engine := NewEngine(fake, nil, testLogger())

	_, err := engine.Handle(context.Background(), Request{Action: "go_to", Title: "beta"})
	var transportError *TransportError
	if !errors.As(err, &transportError) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
	if !errors.Is(err, listingErr) {
		t.Errorf("error %v does not wrap the listing error", err)
	}
}

func TestPartialFailureConverges(t *testing.T) {
	fake := wmipc.NewFakeWM(workspace.Set{
		{Identifier: "1:alpha", Index: 1, Output: "A", Focused: true, Visible: true},
		{Identifier: "2:beta", Index: 2, Output: "A"},
		{Identifier: "3:gamma", Index: 3, Output: "A"},
	})
	engine := NewEngine(fake, nil, testLogger())

	// Go-to and promote succeed, then only the first fixup rename lands.
	fake.FailAfter(3)
	result, err := engine.Handle(context.Background(), Request{Action: "go_to", Title: "gamma"})

	var transportError *TransportError
	if !errors.As(err, &transportError) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
	var commandError *wmipc.CommandError
	if !errors.As(err, &commandError) || len(commandError.Failures) != 2 {
		t.Fatalf("error = %v, want CommandError with two failures", err)
	}
	if len(result.Commands) != 5 {
		t.Errorf("result.Commands = %q, want all five attempted commands", result.Commands)
	}

	fake.Heal()
	fake.Reset()

	commands, err := engine.Fixup(context.Background(), false)
	if err != nil {
		t.Fatalf("Fixup: %v", err)
	}
	if len(commands) == 0 {
		t.Fatal("Fixup after partial failure sent nothing")
	}
	set, err := fake.Workspaces(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for position, w := range set {
		if w.Index != position+1 {
			t.Errorf("%q at position %d has index %d", w.Identifier, position, w.Index)
		}
	}

	commands, err = engine.Fixup(context.Background(), false)
	if err != nil {
		t.Fatalf("second Fixup: %v", err)
	}
	if len(commands) != 0 {
		t.Errorf("second Fixup sent %q, want nothing", commands)
	}
}

func TestFixupSharedTitles(t *testing.T) {
	set := workspace.Set{
		{Identifier: "1:x", Index: 1, Output: "eDP-1", Focused: true, Visible: true},
		{Identifier: "1:foo", Index: 1, Output: "eDP-1"},
		{Identifier: "2:foo", Index: 2, Output: "eDP-1"},
	}
	preview := wmipc.NewFakeWM(set)
	planned, err := NewEngine(preview, nil, testLogger()).Fixup(context.Background(), true)
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}

	live := wmipc.NewFakeWM(set)
	sent, err := NewEngine(live, nil, testLogger()).Fixup(context.Background(), false)
	if err != nil {
		t.Fatalf("Fixup: %v", err)
	}
	if !reflect.DeepEqual(planned, sent) {
		t.Errorf("dry run planned %q, live run sent %q", planned, sent)
	}
	want := []string{"1:x", "2:foo", "3:foo"}
	if got := identifiers(t, live); !reflect.DeepEqual(got, want) {
		t.Errorf("after fixup = %q, want %q", got, want)
	}
}

func TestDryRunSendsNothing(t *testing.T) {
	live := wmipc.NewFakeWM(alphaBeta())
	preview := wmipc.NewFakeWM(alphaBeta())

	dry, err := NewEngine(preview, nil, testLogger()).Handle(context.Background(),
		Request{Action: "go_to", Title: "gamma", DryRun: true})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if batches := preview.Batches(); len(batches) != 0 {
		t.Errorf("dry run sent %q", batches)
	}
	if !dry.DryRun {
		t.Error("DryRun not echoed in result")
	}

	applied, err := NewEngine(live, nil, testLogger()).Handle(context.Background(),
		Request{Action: "go_to", Title: "gamma"})
	if err != nil {
		t.Fatalf("live run: %v", err)
	}
	if !reflect.DeepEqual(dry.Commands, applied.Commands) {
		t.Errorf("dry run commands =\n  %q\nlive run commands =\n  %q", dry.Commands, applied.Commands)
	}
}

func TestFixupDryRun(t *testing.T) {
	fake := wmipc.NewFakeWM(workspace.Set{
		{Identifier: "scratch", Index: -1, Output: "A", Focused: true},
		{Identifier: "4:mail", Index: 4, Output: "A"},
	})
	engine := NewEngine(fake, nil, testLogger())

	commands, err := engine.Fixup(context.Background(), true)
	if err != nil {
		t.Fatalf("Fixup: %v", err)
	}
	want := []string{
		reconcile.Rename("scratch", "1:scratch"),
		reconcile.Rename("4:mail", "2:mail"),
	}
	if !reflect.DeepEqual(commands, want) {
		t.Errorf("commands = %q, want %q", commands, want)
	}
	if batches := fake.Batches(); len(batches) != 0 {
		t.Errorf("dry run sent %q", batches)
	}
}
