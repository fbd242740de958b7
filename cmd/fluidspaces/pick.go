// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bureau-foundation/fluidspaces/cmd/fluidspaces/cli"
	"github.com/bureau-foundation/fluidspaces/lib/picker"
)

func pickCommand(std streams) *cli.Command {
	return &cli.Command{
		Name:    "pick",
		Summary: "Choose a line from stdin in a terminal picker",
		Description: `Read choices from stdin, one per line, and let the user pick one on
the controlling terminal. The choice is printed to stdout. When nothing
matches, the typed text is printed instead so a new title can be
entered. Exits 1 with no output when cancelled, like dmenu.

Usable as picker.command when the daemon runs under a terminal
launcher, e.g. ["foot", "-e", "sh", "-c", "fluidspaces pick"].`,
		Usage: "fluidspaces pick < choices",
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument %q", args[0])
			}
			choices, err := readChoices(std.stdin)
			if err != nil {
				return cli.Internal("reading choices: %v", err)
			}
			answer, err := picker.Run(ctx, choices)
			if err != nil {
				return cli.Internal("%v", err)
			}
			if answer == "" {
				return &cli.ExitError{Code: 1}
			}
			fmt.Fprintln(std.stdout, answer)
			return nil
		},
	}
}

// readChoices returns the non-blank lines of r.
func readChoices(r io.Reader) ([]string, error) {
	var choices []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			choices = append(choices, line)
		}
	}
	return choices, scanner.Err()
}
