// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package reconcile

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/bureau-foundation/fluidspaces/lib/workspace"
	"github.com/bureau-foundation/fluidspaces/lib/wsname"
)

// Simulator applies vocabulary commands to an in-memory workspace set
// the way i3 does:
//
//   - Workspaces are ordered by effective index, ties by creation order.
//   - A rename destroys the old identifier and creates a new one, so the
//     renamed workspace sorts after any workspace already at its index.
//   - "workspace T" focuses T, creating it on the focused output first
//     if it does not exist.
//   - "move container to workspace T" creates T if needed and leaves
//     focus alone.
//
// Workspaces are never destroyed for being empty; the simulator does
// not track containers.
//
// A Simulator is not safe for concurrent use.
type Simulator struct {
	entries  []simulated
	sequence int
}

type simulated struct {
	workspace workspace.Workspace
	created   int
}

// NewSimulator starts from a copy of set. The set's own order is taken
// as creation order.
func NewSimulator(set workspace.Set) *Simulator {
	simulator := &Simulator{}
	for _, w := range set {
		simulator.add(w)
	}
	simulator.sort()
	return simulator
}

// Set returns a snapshot of the current state in window-manager order.
func (s *Simulator) Set() workspace.Set {
	set := make(workspace.Set, len(s.entries))
	for i, entry := range s.entries {
		set[i] = entry.workspace
	}
	return set
}

// Run parses and applies each command in order. Like i3, a failing
// command does not stop the rest of the batch; the returned error joins
// every failure.
func (s *Simulator) Run(commands []string) error {
	var failures []error
	for _, raw := range commands {
		command, err := Parse(raw)
		if err == nil {
			err = s.Apply(command)
		}
		if err != nil {
			failures = append(failures, err)
		}
	}
	return errors.Join(failures...)
}

// Apply applies one parsed command.
func (s *Simulator) Apply(command Command) error {
	switch command.Kind {
	case KindGoTo:
		index := s.lookup(command.Target)
		if index < 0 {
			index = s.create(command.Target)
		}
		s.focus(index)
	case KindMoveContainer:
		if s.lookup(command.Target) < 0 {
			s.create(command.Target)
		}
	case KindRename:
		index := s.lookup(command.From)
		if index < 0 {
			return fmt.Errorf("rename: no workspace named %q", command.From)
		}
		if command.From == command.Target {
			return nil
		}
		if s.lookup(command.Target) >= 0 {
			return fmt.Errorf("rename: workspace %q already exists", command.Target)
		}
		entry := &s.entries[index]
		entry.workspace.Identifier = command.Target
		entry.workspace.Index = wsname.Number(command.Target)
		entry.created = s.next()
	default:
		return fmt.Errorf("unsupported command kind %v", command.Kind)
	}
	s.sort()
	return nil
}

// Apply returns the set that results from running commands against set.
// On error the set holds every command that succeeded.
func Apply(set workspace.Set, commands []string) (workspace.Set, error) {
	simulator := NewSimulator(set)
	err := simulator.Run(commands)
	return simulator.Set(), err
}

func (s *Simulator) lookup(identifier string) int {
	return slices.IndexFunc(s.entries, func(entry simulated) bool {
		return entry.workspace.Identifier == identifier
	})
}

func (s *Simulator) create(identifier string) int {
	output := ""
	if focused := slices.IndexFunc(s.entries, func(entry simulated) bool {
		return entry.workspace.Focused
	}); focused >= 0 {
		output = s.entries[focused].workspace.Output
	} else if len(s.entries) > 0 {
		output = s.entries[0].workspace.Output
	}
	s.add(workspace.Workspace{
		Identifier: identifier,
		Index:      wsname.Number(identifier),
		Output:     output,
	})
	s.sort()
	return s.lookup(identifier)
}

func (s *Simulator) focus(index int) {
	output := s.entries[index].workspace.Output
	for i := range s.entries {
		entry := &s.entries[i].workspace
		entry.Focused = i == index
		if entry.Output == output {
			entry.Visible = i == index
		}
	}
	s.entries[index].workspace.Urgent = false
}

func (s *Simulator) add(w workspace.Workspace) {
	s.entries = append(s.entries, simulated{workspace: w, created: s.next()})
}

func (s *Simulator) next() int {
	s.sequence++
	return s.sequence
}

func (s *Simulator) sort() {
	slices.SortStableFunc(s.entries, func(a, b simulated) int {
		return cmp.Or(
			cmp.Compare(a.workspace.EffectiveIndex(), b.workspace.EffectiveIndex()),
			cmp.Compare(a.created, b.created),
		)
	})
}
