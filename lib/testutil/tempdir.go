// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"testing"
)

// SocketDir creates a directory directly in /tmp for socket files and
// removes it when the test completes.
func SocketDir(t testing.TB) string {
	t.Helper()
	directory, err := os.MkdirTemp("/tmp", "fluidspaces-test-*")
	if err != nil {
		t.Fatalf("creating socket directory: %v", err)
	}
	t.Cleanup(func() {
		_ = os.RemoveAll(directory)
	})
	return directory
}
