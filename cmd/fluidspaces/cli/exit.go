// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a non-zero exit code without printing an extra
// error message. The command is expected to have already written its
// own output.
//
// "fluidspaces send" uses it when the daemon reports a failed request:
// the daemon's message is printed once and the process exits 1.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. lib/process checks for this method to
// tell a handled non-zero exit from an error that still needs printing.
func (e *ExitError) ExitCode() int {
	return e.Code
}
