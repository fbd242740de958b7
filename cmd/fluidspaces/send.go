// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/fluidspaces/cmd/fluidspaces/cli"
	"github.com/bureau-foundation/fluidspaces/lib/navigate"
	"github.com/bureau-foundation/fluidspaces/lib/service"
)

type sendParams struct {
	configParams
	cli.JSONOutput
	Title  string `flag:"title,t" desc:"target title (skips the picker; ignored by toggle)"`
	DryRun bool   `flag:"dry-run,n" desc:"print the commands without sending them"`
}

func sendCommand(std streams) *cli.Command {
	var params sendParams
	actions := make([]string, 0, len(navigate.Actions()))
	for _, action := range navigate.Actions() {
		actions = append(actions, action.String())
	}

	return &cli.Command{
		Name:    "send",
		Summary: "Send a navigation request to the daemon",
		Description: fmt.Sprintf(`Send one navigation request to the running daemon and print the
window-manager commands it issued.

Actions: %s.`, strings.Join(actions, ", ")),
		Usage: "fluidspaces send <action> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("send", &params)
		},
		Examples: []cli.Example{
			{
				Description: "Jump to (or create) the mail workspace",
				Command:     "fluidspaces send go_to --title mail",
			},
			{
				Description: "Preview what moving the focused window would do",
				Command:     "fluidspaces send send_to --title build --dry-run",
			},
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one action, got %d arguments", len(args)).
					WithHint("Run 'fluidspaces send --help' for usage.")
			}
			// Rejected here so an unknown action never reaches the daemon.
			action, err := navigate.ParseAction(args[0])
			if err != nil {
				return cli.Validation("%v", err)
			}

			cfg, err := params.load()
			if err != nil {
				return err
			}

			fields := map[string]any{}
			if params.Title != "" {
				fields["title"] = params.Title
			}
			if params.DryRun {
				fields["dry_run"] = true
			}

			var result navigate.Result
			err = service.NewServiceClient(cfg.SocketPath).Call(ctx, action.String(), fields, &result)
			if err != nil {
				return callError(std, err)
			}

			if done, err := params.EmitJSON(std.stdout, result); done {
				return err
			}
			if result.Cancelled {
				fmt.Fprintln(std.stderr, "cancelled")
				return nil
			}
			for _, command := range result.Commands {
				fmt.Fprintln(std.stdout, command)
			}
			return nil
		},
	}
}

// callError maps a failed control request to a CLI error. A request the
// daemon rejected is printed as the daemon worded it.
func callError(std streams, err error) error {
	var serviceErr *service.ServiceError
	if errors.As(err, &serviceErr) {
		fmt.Fprintf(std.stderr, "error: %s\n", serviceErr.Message)
		return &cli.ExitError{Code: 1}
	}
	return cli.Transient("%v", err).WithHint("Is 'fluidspaces daemon' running?")
}
