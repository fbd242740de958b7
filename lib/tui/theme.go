// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for fluidspaces' terminal output.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Matched characters in a fuzzy-filtered row.
	MatchForeground lipgloss.Color

	// Query prompt.
	PromptForeground lipgloss.Color

	// Workspace state in the list view.
	FocusedForeground lipgloss.Color
	VisibleForeground lipgloss.Color
	UrgentForeground  lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	HelpText         lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	MatchForeground:  lipgloss.Color("220"), // yellow/amber
	PromptForeground: lipgloss.Color("75"),  // blue

	FocusedForeground: lipgloss.Color("114"), // green
	VisibleForeground: lipgloss.Color("75"),
	UrgentForeground:  lipgloss.Color("196"), // red

	HeaderForeground: lipgloss.Color("255"),
	HelpText:         lipgloss.Color("241"),
}

// Styles is a Theme bound to one renderer.
type Styles struct {
	Normal   lipgloss.Style
	Faint    lipgloss.Style
	Selected lipgloss.Style
	Match    lipgloss.Style
	Prompt   lipgloss.Style
	Focused  lipgloss.Style
	Visible  lipgloss.Style
	Urgent   lipgloss.Style
	Header   lipgloss.Style
	Help     lipgloss.Style
}

// Styles builds the styles for renderer. A nil renderer uses lipgloss'
// default (stdout).
func (theme Theme) Styles(renderer *lipgloss.Renderer) Styles {
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	return Styles{
		Normal: renderer.NewStyle().Foreground(theme.NormalText),
		Faint:  renderer.NewStyle().Foreground(theme.FaintText),
		Selected: renderer.NewStyle().
			Foreground(theme.SelectedForeground).
			Background(theme.SelectedBackground).
			Bold(true),
		Match:   renderer.NewStyle().Foreground(theme.MatchForeground).Bold(true),
		Prompt:  renderer.NewStyle().Foreground(theme.PromptForeground),
		Focused: renderer.NewStyle().Foreground(theme.FocusedForeground).Bold(true),
		Visible: renderer.NewStyle().Foreground(theme.VisibleForeground),
		Urgent:  renderer.NewStyle().Foreground(theme.UrgentForeground).Bold(true),
		Header:  renderer.NewStyle().Foreground(theme.HeaderForeground).Bold(true),
		Help:    renderer.NewStyle().Foreground(theme.HelpText),
	}
}
