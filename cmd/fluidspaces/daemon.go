// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/fluidspaces/cmd/fluidspaces/cli"
	"github.com/bureau-foundation/fluidspaces/lib/codec"
	"github.com/bureau-foundation/fluidspaces/lib/config"
	"github.com/bureau-foundation/fluidspaces/lib/navigate"
	"github.com/bureau-foundation/fluidspaces/lib/picker"
	"github.com/bureau-foundation/fluidspaces/lib/service"
	"github.com/bureau-foundation/fluidspaces/lib/wmipc"
)

type daemonParams struct {
	configParams
	WMSocket string   `flag:"wm-socket" desc:"i3/sway IPC socket (overrides wm.socket_path and discovery)"`
	Picker   []string `flag:"picker" desc:"picker program and arguments, comma-separated (overrides picker.command)"`
}

func daemonCommand(std streams) *cli.Command {
	var params daemonParams
	return &cli.Command{
		Name:    "daemon",
		Summary: "Serve navigation requests on the control socket",
		Description: `Connect to the window manager and serve navigation requests on the
control socket until interrupted.

Requests are handled one at a time. Each one re-reads the workspace
list, resolves its target (asking the picker when no title is given),
switches or moves, promotes the focused workspace to the front, and
renumbers everything 1..N.`,
		Usage: "fluidspaces daemon [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("daemon", &params)
		},
		Examples: []cli.Example{
			{
				Description: "Start from the sway config with rofi as the picker",
				Command:     "exec fluidspaces daemon --picker rofi,-dmenu,-p,workspace",
			},
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument %q", args[0])
			}
			cfg, err := params.load()
			if err != nil {
				return err
			}
			if params.WMSocket != "" {
				cfg.WM.SocketPath = params.WMSocket
			}
			if len(params.Picker) > 0 {
				cfg.Picker.Command = params.Picker
			}

			level, err := cfg.LogLevel()
			if err != nil {
				return cli.Validation("%v", err)
			}
			logger := cli.NewCommandLogger(level).With("command", "daemon")

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runDaemon(ctx, cfg, logger)
		},
	}
}

// runDaemon connects to the window manager and serves until ctx is
// cancelled. Failing to reach the window manager or to bind the control
// socket ends the process.
func runDaemon(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	wmSocket, err := wmipc.ResolveSocketPath(ctx, cfg.WM.SocketPath)
	if err != nil {
		return cli.NotFound("%v", err).
			WithHint("Run the daemon from inside the i3/sway session, or pass --wm-socket.")
	}

	client := wmipc.NewClient(wmSocket, cfg.WM.Timeout.Std(), logger)
	reply, err := client.Version(ctx)
	if err != nil {
		return cli.Transient("connecting to window manager at %s: %v", wmSocket, err)
	}
	logger.Info("connected to window manager",
		"socket", wmSocket,
		"version", reply.HumanReadable,
	)

	pick, err := picker.NewCommand(cfg.Picker.Command, cfg.Picker.Timeout.Std(), logger)
	if err != nil {
		return cli.Validation("%v", err)
	}

	if err := cfg.EnsureSocketDir(); err != nil {
		return cli.Internal("%v", err)
	}

	server := newControlServer(cfg.SocketPath, navigate.NewEngine(client, pick, logger), logger)
	if err := server.Serve(ctx); err != nil {
		return cli.Internal("%v", err)
	}
	logger.Info("daemon stopped")
	return nil
}

// fixupRequest is the body of a "fixup" control request.
type fixupRequest struct {
	DryRun bool `json:"dry_run,omitempty"`
}

// fixupResult is the data of a "fixup" reply.
type fixupResult struct {
	DryRun   bool     `json:"dry_run,omitempty"`
	Commands []string `json:"commands"`
}

// newControlServer registers the control actions: "fixup" renumbers
// on its own, and every other action is a navigation request.
func newControlServer(socketPath string, engine *navigate.Engine, logger *slog.Logger) *service.SocketServer {
	server := service.NewSocketServer(socketPath, logger)

	server.Handle("fixup", func(ctx context.Context, _ string, raw []byte) (any, error) {
		var request fixupRequest
		if err := codec.Unmarshal(raw, &request); err != nil {
			return nil, fmt.Errorf("invalid fixup request: %w", err)
		}
		commands, err := engine.Fixup(ctx, request.DryRun)
		if err != nil {
			return nil, err
		}
		return fixupResult{DryRun: request.DryRun, Commands: commands}, nil
	})

	server.HandleDefault(func(ctx context.Context, _ string, raw []byte) (any, error) {
		var request navigate.Request
		if err := codec.Unmarshal(raw, &request); err != nil {
			return nil, fmt.Errorf("invalid request: %w", err)
		}
		result, err := engine.Handle(ctx, request)
		if err != nil {
			return nil, err
		}
		return result, nil
	})

	return server
}
