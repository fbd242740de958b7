// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package navigate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoFocusedWorkspace means the window manager reported no
	// focused workspace when one was needed.
	ErrNoFocusedWorkspace = errors.New("no focused workspace")

	// ErrNoToggleTarget means the focused output has only one
	// workspace.
	ErrNoToggleTarget = errors.New("no second workspace on the focused output")

	// ErrNoPicker means a request gave no title and the engine has no
	// picker to ask.
	ErrNoPicker = errors.New("no title given and no picker configured")
)

// ProtocolError is an unrecognized action token. No command has been
// sent when it is returned.
type ProtocolError struct {
	Token string
}

func (e *ProtocolError) Error() string {
	names := make([]string, 0, len(Actions()))
	for _, action := range Actions() {
		names = append(names, string(action))
	}
	return fmt.Sprintf("unknown action %q (valid: %s)", e.Token, strings.Join(names, ", "))
}

// ResolutionError means no target could be chosen for Action. Err is
// one of the sentinel errors above or a wrapped picker failure.
type ResolutionError struct {
	Action Action
	Err    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving %s target: %v", e.Action, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// TransportError wraps a failed window-manager exchange. Op names the
// step ("listing workspaces", "running go_to commands", ...). A
// wmipc.CommandError inside means the batch reached the window manager
// and may have partially applied.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }
