// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wmipc talks to i3 and sway over their shared IPC protocol.
//
// Both window managers listen on a Unix socket and speak the same framed
// request/response protocol:
//
//	"i3-ipc" | uint32 payload length | uint32 message type | payload
//
// Integers are in host byte order. Payloads are JSON. Only three
// message types are used here: RUN_COMMAND, GET_WORKSPACES, and
// GET_VERSION. Event subscription is deliberately absent; every caller
// re-reads the workspace list when it needs it.
//
// [Client] opens one connection per request, the same way
// service.ServiceClient does for control sockets. The window manager
// treats each connection independently, so there is no session state to
// lose if a request fails halfway.
//
// [FakeWM] is an in-memory window manager for tests. [NewTestServer]
// serves a FakeWM over the real protocol on a temporary socket so that
// the client and everything above it can be tested end to end.
package wmipc
