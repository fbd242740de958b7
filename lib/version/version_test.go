// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestInfoFromLinkerFlags(t *testing.T) {
	defer func(commit, dirty, built string) {
		GitCommit, GitDirty, BuildTime = commit, dirty, built
	}(GitCommit, GitDirty, BuildTime)

	GitCommit, GitDirty, BuildTime = "abc1234", "true", "2026-10-01T00:00:00Z"
	if got, want := Info(), Version+" (abc1234-dirty, 2026-10-01T00:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestInfoFromBuildInfo(t *testing.T) {
	defer func(read func() (*debug.BuildInfo, bool)) { readBuildInfo = read }(readBuildInfo)
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{Version: "v1.2.3"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef"},
				{Key: "vcs.modified", Value: "false"},
				{Key: "vcs.time", Value: "2026-09-30T12:00:00Z"},
			},
		}, true
	}

	if got, want := Info(), "v1.2.3 (0123456, 2026-09-30T12:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.Contains(full, "Go: go") || !strings.Contains(full, "Platform: ") {
		t.Errorf("Full() = %q, missing Go version or platform", full)
	}
}
