// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package navigate turns one user action into window-manager commands.
//
// An action is one of go_to, send_to, bring_to, or toggle. [Engine.Handle]
// runs a request through a fixed sequence of steps:
//
//	Received → TargetResolved → PrimaryCommandsIssued → Promoted → FixedUp → Done
//
// The workspace list is re-read from the [Transport] before every step,
// never cached. Any failure ends the request; commands already sent
// stay applied and the next request's fixup step repairs the numbering.
//
// Errors fall into three types so that callers can react with
// errors.As: [*ProtocolError] for an unknown action, [*ResolutionError]
// when no target can be chosen (including picker failures), and
// [*TransportError] when the window manager rejects a listing or a
// batch.
//
// A request with DryRun set reads the workspace list once and runs
// every later step against a [reconcile.Simulator], so the result lists
// exactly the commands a live run would send.
package navigate
