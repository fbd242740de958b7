// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds helpers shared by fluidspaces tests.
//
// [SocketDir] returns a short directory under /tmp for Unix sockets.
// sun_path is limited to 108 bytes and t.TempDir() paths can exceed
// it, since they embed the full test name.
//
// [RequireReceive] and [RequireClosed] wait on a channel with a
// wall-clock limit so that a hung server fails the test instead of the
// whole run. They are the only real timeouts in the test suite.
//
// All helpers call t.Fatalf on failure.
package testutil
