// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package navigate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bureau-foundation/fluidspaces/lib/reconcile"
	"github.com/bureau-foundation/fluidspaces/lib/workspace"
	"github.com/bureau-foundation/fluidspaces/lib/wsname"
)

// Transport is the window-manager connection. *wmipc.Client and
// *wmipc.FakeWM implement it.
type Transport interface {
	Workspaces(ctx context.Context) (workspace.Set, error)
	RunCommands(ctx context.Context, commands []string) error
}

// Picker asks the user to choose a title. An empty answer with a nil
// error means the user cancelled.
type Picker interface {
	Pick(ctx context.Context, choices []string) (string, error)
}

// Request is one control message.
type Request struct {
	// Action is the raw token; Handle validates it.
	Action string `json:"action"`

	// Title skips the picker when non-empty. Ignored by toggle.
	Title string `json:"title,omitempty"`

	// DryRun computes the commands without sending them.
	DryRun bool `json:"dry_run,omitempty"`
}

// Result reports what a request did.
type Result struct {
	Action Action `json:"action"`

	// Target is the resolved workspace identifier. Empty when
	// cancelled.
	Target string `json:"target,omitempty"`

	// Cancelled is set when the picker returned nothing.
	Cancelled bool `json:"cancelled,omitempty"`

	// DryRun echoes the request flag.
	DryRun bool `json:"dry_run,omitempty"`

	// Commands lists every command sent (or, for a dry run, that would
	// have been sent), in order. On error it holds the commands sent
	// before the failure.
	Commands []string `json:"commands,omitempty"`
}

// Engine executes navigation requests. It holds no workspace state;
// the transport is the only source of truth.
//
// Handle must not be called concurrently: two interleaved requests
// would each fix up against the other's half-applied renames.
type Engine struct {
	transport Transport
	picker    Picker
	logger    *slog.Logger
}

// NewEngine returns an engine. picker may be nil, in which case every
// title-choosing request must carry a title.
func NewEngine(transport Transport, picker Picker, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{transport: transport, picker: picker, logger: logger}
}

// Handle runs one request to completion.
func (e *Engine) Handle(ctx context.Context, request Request) (Result, error) {
	action, err := ParseAction(request.Action)
	if err != nil {
		return Result{}, err
	}

	result := Result{Action: action, DryRun: request.DryRun}
	run, err := e.begin(ctx, request.DryRun)
	if err != nil {
		return result, err
	}

	set, err := run.fetch(ctx)
	if err != nil {
		return result, err
	}

	target, err := e.resolve(ctx, action, request.Title, set)
	if err != nil {
		return result, err
	}
	if target == "" {
		result.Cancelled = true
		e.logger.Info("request cancelled", "action", action)
		return result, nil
	}
	result.Target = target

	err = run.execute(ctx, action.String(), primaryCommands(action, target))
	result.Commands = run.commands
	if err != nil {
		return result, err
	}

	if action.MovesFocus() {
		set, err = run.fetch(ctx)
		if err != nil {
			return result, err
		}
		focused, ok := set.Focused()
		if !ok {
			return result, &ResolutionError{Action: action, Err: ErrNoFocusedWorkspace}
		}
		err = run.execute(ctx, "promote", reconcile.Promote(focused))
		result.Commands = run.commands
		if err != nil {
			return result, err
		}
	}

	err = run.fixup(ctx)
	result.Commands = run.commands
	if err != nil {
		return result, err
	}

	e.logger.Info("request complete",
		"action", action,
		"target", target,
		"commands", len(result.Commands),
		"dry_run", request.DryRun,
	)
	return result, nil
}

// Fixup renumbers the current workspaces 1..N without any other
// action, returning the commands sent (or previewed).
func (e *Engine) Fixup(ctx context.Context, dryRun bool) ([]string, error) {
	run, err := e.begin(ctx, dryRun)
	if err != nil {
		return nil, err
	}
	err = run.fixup(ctx)
	return run.commands, err
}

// resolve picks the target identifier. An empty identifier with a nil
// error means the user cancelled.
func (e *Engine) resolve(ctx context.Context, action Action, title string, set workspace.Set) (string, error) {
	if !action.ChoosesTitle() {
		focused, ok := set.Focused()
		if !ok {
			return "", &ResolutionError{Action: action, Err: ErrNoFocusedWorkspace}
		}
		second, ok := set.SecondOnOutput(focused.Output)
		if !ok {
			return "", &ResolutionError{Action: action, Err: ErrNoToggleTarget}
		}
		return second.Identifier, nil
	}

	title = strings.TrimSpace(title)
	if title == "" {
		if e.picker == nil {
			return "", &ResolutionError{Action: action, Err: ErrNoPicker}
		}
		picked, err := e.picker.Pick(ctx, set.ChoiceList())
		if err != nil {
			return "", &ResolutionError{Action: action, Err: fmt.Errorf("picker: %w", err)}
		}
		title = strings.TrimSpace(picked)
		if title == "" {
			return "", nil
		}
	}

	if existing, ok := set.FindByTitle(title); ok {
		return existing.Identifier, nil
	}
	return wsname.Encode(set.NextUnusedIndex(), title), nil
}

// primaryCommands returns the commands that carry out action itself.
// For bring_to the container must move before focus follows it.
func primaryCommands(action Action, target string) []string {
	switch action {
	case ActionSendTo:
		return []string{reconcile.MoveContainerTo(target)}
	case ActionBringTo:
		return []string{reconcile.MoveContainerTo(target), reconcile.GoTo(target)}
	default:
		return []string{reconcile.GoTo(target)}
	}
}

// session is one request's view of the window manager: live, or a
// simulation seeded from a single live listing.
type session struct {
	transport Transport
	simulator *reconcile.Simulator
	commands  []string
	logger    *slog.Logger
}

func (e *Engine) begin(ctx context.Context, dryRun bool) (*session, error) {
	run := &session{transport: e.transport, logger: e.logger}
	if !dryRun {
		return run, nil
	}
	set, err := run.fetch(ctx)
	if err != nil {
		return nil, err
	}
	run.simulator = reconcile.NewSimulator(set)
	return run, nil
}

func (s *session) fetch(ctx context.Context) (workspace.Set, error) {
	if s.simulator != nil {
		return s.simulator.Set(), nil
	}
	set, err := s.transport.Workspaces(ctx)
	if err != nil {
		return nil, &TransportError{Op: "listing workspaces", Err: err}
	}
	return set, nil
}

func (s *session) execute(ctx context.Context, step string, commands []string) error {
	if len(commands) == 0 {
		return nil
	}
	s.logger.Debug("sending batch", "step", step, "commands", commands, "dry_run", s.simulator != nil)
	s.commands = append(s.commands, commands...)

	if s.simulator != nil {
		if err := s.simulator.Run(commands); err != nil {
			return &TransportError{Op: "simulating " + step + " commands", Err: err}
		}
		return nil
	}
	if err := s.transport.RunCommands(ctx, commands); err != nil {
		return &TransportError{Op: "running " + step + " commands", Err: err}
	}
	return nil
}

func (s *session) fixup(ctx context.Context) error {
	set, err := s.fetch(ctx)
	if err != nil {
		return err
	}
	return s.execute(ctx, "fixup", reconcile.Fixup(set))
}
