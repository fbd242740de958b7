// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wsname encodes and decodes workspace identifiers.
//
// i3 and sway only order workspaces by number, so a named workspace is
// stored as a single identifier string of the form "<index>:<title>".
// The window manager sorts on the index; the user only ever sees the
// title. This package is the only place that knows the grammar:
//
//	identifier := [ws] [digits [ws]] [":" [ws]] title
//
// Whitespace is tolerated around the index and after the separator so
// that hand-written names like "7 : mail" decode the same way as the
// canonical "7:mail" that [Encode] produces. A digit run only counts as
// an index when a separator or the end of the string follows it;
// "2fa-codes" is a title, not workspace 2.
//
// When the separator is followed by nothing, the index digits double as
// the title. A workspace created by hand as "7" therefore shows up as
// "7" in the picker rather than as an empty line.
//
// This package depends on no other packages in this module.
package wsname
