// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// exitCoder is implemented by errors that carry their own exit code
// and whose command has already reported them.
type exitCoder interface {
	ExitCode() int
}

// Fatal writes "error: err" to stderr and exits with code 1. Use it in
// main() for errors where the structured logger may not be
// initialized.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

// Exit ends the process for the error returned by run(): 0 for nil,
// the error's own code (silently) if it has one, otherwise 1 after
// printing it.
func Exit(err error) {
	os.Exit(report(os.Stderr, err))
}

// report writes err to w unless it carries its own exit code, and
// returns the code to exit with.
func report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return 1
}
