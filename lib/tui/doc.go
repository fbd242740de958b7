// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui holds the terminal presentation shared by the built-in
// picker and the list command: the color theme, the fuzzy matcher,
// and a scrollbar for lists taller than the screen.
//
// Colors are ANSI 256-color codes resolved through a
// lipgloss.Renderer, so the picker can draw on /dev/tty while its
// result goes to a pipe on stdout.
package tui
