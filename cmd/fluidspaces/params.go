// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"os"

	"github.com/bureau-foundation/fluidspaces/cmd/fluidspaces/cli"
	"github.com/bureau-foundation/fluidspaces/lib/config"
)

// configParams are the flags every command uses to locate its
// configuration. Flags override the file.
type configParams struct {
	ConfigPath string `flag:"config,c" desc:"configuration file (default $FLUIDSPACES_CONFIG)"`
	SocketPath string `flag:"socket,s" desc:"control socket path (overrides socket_path)"`
	LogLevel   string `flag:"log-level" desc:"debug, info, warn, or error (overrides log.level)"`
}

// load reads the configuration, applies flag overrides, and validates
// the result.
func (p *configParams) load() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if p.ConfigPath != "" {
		cfg, err = config.LoadFile(p.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, cli.NotFound("%v", err)
		}
		return nil, cli.Validation("%v", err)
	}

	if p.SocketPath != "" {
		cfg.SocketPath = p.SocketPath
	}
	if p.LogLevel != "" {
		cfg.Log.Level = p.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration: %v", err)
	}
	return cfg, nil
}
