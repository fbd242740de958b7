// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads fluidspaces configuration.
//
// Configuration comes from at most one file, named by the
// FLUIDSPACES_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). With neither, [Load] returns [Default]: the
// daemon is usable with no file at all, and every field has a
// working default. Command-line flags override file values; that
// layering happens in the commands, not here.
//
// The file format follows the extension: .json and .jsonc files are
// JSON with comments and trailing commas allowed, anything else is
// YAML. Unknown fields are errors in both formats.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${XDG_RUNTIME_DIR}, and ${VAR:-default} patterns are
// expanded.
//
// This package depends on no other fluidspaces packages.
package config
