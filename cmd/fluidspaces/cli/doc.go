// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework shared by the
// fluidspaces binaries.
//
// The central type is [Command]: a named subcommand with optional nested
// [Command.Subcommands], a [pflag.FlagSet] factory, and a Run function.
// [Command.Execute] parses flags, routes to subcommands, and prints
// structured help with examples. Unknown subcommands and flags get a
// "did you mean" suggestion when the Levenshtein distance to a known
// name is at most 3.
//
// Flags are usually declared as tagged struct fields and bound with
// [FlagsFromParams]. Commands report failures with the categorized
// [ToolError] constructors, or with [ExitError] when they have already
// written their own output.
package cli
