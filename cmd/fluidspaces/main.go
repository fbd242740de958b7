// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// fluidspaces keeps i3/sway workspaces named and ordered by recency.
//
// The daemon subcommand serves navigation requests (go_to, send_to,
// bring_to, toggle) on a control socket; key bindings reach it through
// fluidspaces-msg or "fluidspaces send". Each request asks the window
// manager for the live workspace list, resolves a target, and renames
// workspaces so the most recently focused one is always number 1.
package main

import (
	"context"
	"os"

	"github.com/bureau-foundation/fluidspaces/lib/process"
)

func main() {
	process.Exit(run(context.Background(), os.Args[1:]))
}

func run(ctx context.Context, args []string) error {
	return rootCommand(newStreams()).Execute(ctx, args)
}
