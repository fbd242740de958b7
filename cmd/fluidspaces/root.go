// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/fluidspaces/cmd/fluidspaces/cli"
	"github.com/bureau-foundation/fluidspaces/lib/version"
)

// streams are the standard streams a command reads and writes.
type streams struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newStreams() streams {
	return streams{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
}

type rootParams struct {
	Version bool `flag:"version" desc:"print version information and exit"`
}

func rootCommand(std streams) *cli.Command {
	var params rootParams
	root := &cli.Command{
		Name: "fluidspaces",
		Description: `fluidspaces: named, recency-ordered workspaces for i3 and sway.

Workspaces carry titles instead of bare numbers. Every navigation moves
the target to the front and renumbers the rest 1..N, so the workspace
number always reflects how recently it was used.`,
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("fluidspaces", &params)
		},
		Subcommands: []*cli.Command{
			daemonCommand(std),
			sendCommand(std),
			listCommand(std),
			fixupCommand(std),
			pickCommand(std),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, _ []string) error {
					fmt.Fprintf(std.stdout, "fluidspaces %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Run the daemon (usually from the window manager config)",
				Command:     "exec fluidspaces daemon",
			},
			{
				Description: "Pick a workspace by title and jump to it",
				Command:     "fluidspaces send go_to",
			},
			{
				Description: "Flip back to the previously used workspace",
				Command:     "fluidspaces send toggle",
			},
			{
				Description: "Show workspaces in recency order",
				Command:     "fluidspaces list",
			},
		},
	}
	root.SetOutput(std.stderr)
	root.Run = func(_ context.Context, args []string) error {
		if params.Version {
			fmt.Fprintf(std.stdout, "fluidspaces %s\n", version.Info())
			return nil
		}
		root.PrintHelp(std.stderr)
		return cli.Validation("subcommand required")
	}
	return root
}
