// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package service

import "net"

// peerUID is unavailable; -1 skips the UID check and leaves access
// control to the socket file's mode.
func peerUID(conn net.Conn) (int, error) {
	return -1, nil
}
