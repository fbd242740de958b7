// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package reconcile plans the window-manager commands that keep
// workspace numbering consistent.
//
// Recency is expressed entirely through the window manager's own sort
// order. There is no local recency store: [Promote] renames a workspace
// to index 0, which sorts before every positive index, and [Fixup]
// renumbers the whole set to 1..N in its current order. Together they
// move the most recently used workspace to slot 1 and close every gap
// without changing any other workspace's relative position or title.
//
// Both planners only synthesize commands; nothing in this package talks
// to a window manager. [Simulator] and [Apply] interpret the same
// command vocabulary against an in-memory set using i3's ordering rules.
// They back dry-run previews and the fake window manager used in tests.
//
// # Command vocabulary
//
// Every string this module sends to the window manager is built by one
// of [GoTo], [MoveContainerTo], or [Rename]. Arguments are always
// double-quoted with backslash escapes for '"' and '\', which is what
// i3's command parser expects.
package reconcile
