// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wmipc

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/bureau-foundation/fluidspaces/lib/reconcile"
	"github.com/bureau-foundation/fluidspaces/lib/workspace"
)

// ErrInjected is the error message fake sub-commands fail with after
// FailAfter has been armed.
var ErrInjected = errors.New("injected failure")

// FakeWM is an in-memory window manager. It interprets the command
// vocabulary from package reconcile with i3's ordering rules and
// records every batch it receives.
//
// Like i3, a failing sub-command does not stop the rest of its batch
// from being attempted.
//
// FakeWM is safe for concurrent use.
type FakeWM struct {
	mu         sync.Mutex
	simulator  *reconcile.Simulator
	batches    [][]string
	failAfter  int
	listingErr error
}

// NewFakeWM returns a fake window manager holding set.
func NewFakeWM(set workspace.Set) *FakeWM {
	return &FakeWM{
		simulator: reconcile.NewSimulator(set),
		failAfter: -1,
	}
}

// Workspaces returns the current set.
func (f *FakeWM) Workspaces(ctx context.Context) (workspace.Set, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listingErr != nil {
		return nil, f.listingErr
	}
	return f.simulator.Set(), nil
}

// RunCommands applies a batch. Empty batches are ignored and not
// recorded, matching Client.
func (f *FakeWM) RunCommands(ctx context.Context, commands []string) error {
	if len(commands) == 0 {
		return nil
	}
	return resultsError(commands, f.Execute(commands))
}

// Execute applies a batch and returns one result per command.
func (f *FakeWM) Execute(commands []string) []CommandResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.batches = append(f.batches, slices.Clone(commands))
	results := make([]CommandResult, len(commands))
	for i, raw := range commands {
		if f.failAfter == 0 {
			results[i] = CommandResult{Error: ErrInjected.Error()}
			continue
		}
		if f.failAfter > 0 {
			f.failAfter--
		}
		command, err := reconcile.Parse(raw)
		if err != nil {
			results[i] = CommandResult{ParseError: true, Error: err.Error()}
			continue
		}
		if err := f.simulator.Apply(command); err != nil {
			results[i] = CommandResult{Error: err.Error()}
			continue
		}
		results[i] = CommandResult{Success: true}
	}
	return results
}

// FailAfter lets the next n sub-commands succeed and fails every one
// after that until Heal is called.
func (f *FakeWM) FailAfter(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failAfter = n
}

// FailListing makes Workspaces return err until Heal is called.
func (f *FakeWM) FailListing(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listingErr = err
}

// Heal clears injected failures.
func (f *FakeWM) Heal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failAfter = -1
	f.listingErr = nil
}

// Batches returns every batch received, oldest first.
func (f *FakeWM) Batches() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	batches := make([][]string, len(f.batches))
	for i, batch := range f.batches {
		batches[i] = slices.Clone(batch)
	}
	return batches
}

// Commands returns every command received, flattened across batches.
func (f *FakeWM) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var commands []string
	for _, batch := range f.batches {
		commands = append(commands, batch...)
	}
	return commands
}

// Reset forgets recorded batches without touching workspace state.
func (f *FakeWM) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = nil
}
