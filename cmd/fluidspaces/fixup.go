// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/fluidspaces/cmd/fluidspaces/cli"
	"github.com/bureau-foundation/fluidspaces/lib/service"
)

type fixupParams struct {
	configParams
	cli.JSONOutput
	DryRun bool `flag:"dry-run,n" desc:"print the renames without sending them"`
}

func fixupCommand(std streams) *cli.Command {
	var params fixupParams
	return &cli.Command{
		Name:    "fixup",
		Summary: "Renumber workspaces 1..N in their current order",
		Description: `Ask the daemon to renumber every workspace 1..N, keeping the current
order and titles. Navigation requests already do this; run it by hand
after renaming workspaces outside fluidspaces or after a failed batch.`,
		Usage: "fluidspaces fixup [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("fixup", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument %q", args[0])
			}
			cfg, err := params.load()
			if err != nil {
				return err
			}

			fields := map[string]any{}
			if params.DryRun {
				fields["dry_run"] = true
			}
			var result fixupResult
			if err := service.NewServiceClient(cfg.SocketPath).Call(ctx, "fixup", fields, &result); err != nil {
				return callError(std, err)
			}

			if done, err := params.EmitJSON(std.stdout, result); done {
				return err
			}
			for _, command := range result.Commands {
				fmt.Fprintln(std.stdout, command)
			}
			return nil
		},
	}
}
