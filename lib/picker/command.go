// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package picker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Command runs an external menu program for each pick.
type Command struct {
	argv    []string
	timeout time.Duration
	logger  *slog.Logger
}

// NewCommand returns a picker that runs argv. A zero timeout waits
// for the user indefinitely (bounded only by the caller's context).
func NewCommand(argv []string, timeout time.Duration, logger *slog.Logger) (*Command, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, errors.New("picker command is empty")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Command{
		argv:    append([]string(nil), argv...),
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Argv returns the program and its arguments.
func (c *Command) Argv() []string {
	return append([]string(nil), c.argv...)
}

// Pick writes choices to the program, waits for it to exit, and
// returns the first line it printed with surrounding whitespace
// trimmed.
//
// dmenu, rofi, and fzf all exit with status 1 when the user presses
// Escape; that, or empty output, is a cancellation rather than an
// error. Any other failure (the program is missing, killed, or exits
// with another status) is returned.
func (c *Command) Pick(ctx context.Context, choices []string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	command := exec.CommandContext(ctx, c.argv[0], c.argv[1:]...)
	command.Stdin = strings.NewReader(strings.Join(choices, "\n") + "\n")
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	c.logger.Debug("running picker", "command", c.argv[0], "choices", len(choices))
	err := command.Run()
	answer := firstLine(stdout.String())

	if err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) && exitError.ExitCode() == 1 && answer == "" {
			return "", nil
		}
		if message := strings.TrimSpace(stderr.String()); message != "" {
			return "", fmt.Errorf("running %s: %w: %s", c.argv[0], err, message)
		}
		return "", fmt.Errorf("running %s: %w", c.argv[0], err)
	}
	return answer, nil
}

func firstLine(output string) string {
	line, _, _ := strings.Cut(output, "\n")
	return strings.TrimSpace(line)
}

// Static is a picker that always answers with its own value. The zero
// value always cancels.
type Static string

// Pick returns s.
func (s Static) Pick(ctx context.Context, choices []string) (string, error) {
	return strings.TrimSpace(string(s)), nil
}
