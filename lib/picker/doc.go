// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package picker asks the user to choose a workspace title.
//
// [Command] runs an external menu program such as dmenu, rofi -dmenu,
// or fzf: the choices go to its stdin one per line and the answer is
// read from its stdout. [Static] always gives the same answer and
// stands in for a user in tests and scripts.
//
// [Run] is a built-in terminal picker for setups without a graphical
// menu. It draws on the controlling terminal and ranks choices with
// fzf's algorithm ([Rank]). When nothing matches, the typed query is
// returned as-is so that a new workspace title can be entered.
//
// Every picker reports cancellation as an empty string with a nil
// error.
package picker
