// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wmipc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrNoSocket is returned by DiscoverSocketPath when no window manager
// socket can be found.
var ErrNoSocket = errors.New("no i3 or sway IPC socket found (is SWAYSOCK or I3SOCK set?)")

// DiscoverSocketPath finds the running window manager's IPC socket:
// $SWAYSOCK, then $I3SOCK, then whatever "sway --get-socketpath" or
// "i3 --get-socketpath" print (i3 stores its path as an X11 root
// window property, so asking the binary is the only portable way).
func DiscoverSocketPath(ctx context.Context) (string, error) {
	for _, variable := range []string{"SWAYSOCK", "I3SOCK"} {
		if path := os.Getenv(variable); path != "" {
			return path, nil
		}
	}

	for _, binary := range []string{"sway", "i3"} {
		if _, err := exec.LookPath(binary); err != nil {
			continue
		}
		output, err := exec.CommandContext(ctx, binary, "--get-socketpath").Output()
		if err != nil {
			continue
		}
		if path := strings.TrimSpace(string(output)); path != "" {
			return path, nil
		}
	}
	return "", ErrNoSocket
}

// ResolveSocketPath returns configured if it is non-empty, otherwise
// the discovered path.
func ResolveSocketPath(ctx context.Context, configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	path, err := DiscoverSocketPath(ctx)
	if err != nil {
		return "", fmt.Errorf("locating window manager socket: %w", err)
	}
	return path, nil
}
