// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package navigate

import "strings"

// Action is a user-facing navigation verb.
type Action string

const (
	// ActionGoTo focuses the chosen workspace.
	ActionGoTo Action = "go_to"

	// ActionSendTo moves the focused container to the chosen workspace
	// without following it.
	ActionSendTo Action = "send_to"

	// ActionBringTo moves the focused container and then follows it.
	ActionBringTo Action = "bring_to"

	// ActionToggle focuses the second workspace on the current output,
	// which after a previous action is the most recently used one.
	ActionToggle Action = "toggle"
)

// Actions lists every valid action in a stable order.
func Actions() []Action {
	return []Action{ActionGoTo, ActionSendTo, ActionBringTo, ActionToggle}
}

// ParseAction validates a control token. Surrounding whitespace is
// ignored so that newline-terminated tokens from text clients parse.
func ParseAction(token string) (Action, error) {
	trimmed := strings.TrimSpace(token)
	for _, action := range Actions() {
		if trimmed == string(action) {
			return action, nil
		}
	}
	return "", &ProtocolError{Token: trimmed}
}

// MovesFocus reports whether the action leaves focus on a different
// workspace, in which case that workspace is promoted.
func (a Action) MovesFocus() bool {
	return a != ActionSendTo
}

// ChoosesTitle reports whether the target comes from a title (given in
// the request or picked), as opposed to the current layout.
func (a Action) ChoosesTitle() bool {
	return a != ActionToggle
}

func (a Action) String() string {
	return string(a)
}
