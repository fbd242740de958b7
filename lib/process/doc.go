// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides entrypoint helpers for the fluidspaces
// binaries: reporting an error from main() before or without a
// structured logger, and choosing the exit code.
package process
