// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package service provides the control socket that key bindings use to
// reach the fluidspaces daemon.
//
// [SocketServer] listens on a Unix socket and serves one connection at
// a time: a request is read, dispatched, answered, and the connection
// closed before the next Accept. Navigation requests can block on an
// interactive picker, and two of them interleaving would renumber
// workspaces against each other's half-applied renames, so there is
// deliberately no per-connection goroutine.
//
// Two request encodings share the socket, told apart by the first byte:
//
//   - CBOR: a map with an "action" field plus action-specific fields.
//     The reply is a CBOR [Response] envelope {ok, error?, data?}.
//     [ServiceClient] speaks this form.
//   - Plain text: a single line holding the action token, as written by
//     "echo go_to | socat - UNIX-CONNECT:...". The reply is one line,
//     "ok" or "error: <message>".
//
// # Authentication
//
// On Linux the server reads the peer's credentials (SO_PEERCRED) and
// refuses connections from any UID other than its own. The socket file
// is also created mode 0600. Elsewhere only the file mode applies.
package service
