// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// fluidspaces-msg sends one navigation request to the fluidspaces
// daemon. It is meant for window-manager key bindings:
//
//	bindsym $mod+space exec fluidspaces-msg --action go_to
//	bindsym $mod+Tab   exec fluidspaces-msg --action toggle
//
// It prints nothing on success. A request the daemon rejects is
// reported on stderr with exit status 1.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/fluidspaces/lib/config"
	"github.com/bureau-foundation/fluidspaces/lib/navigate"
	"github.com/bureau-foundation/fluidspaces/lib/process"
	"github.com/bureau-foundation/fluidspaces/lib/service"
	"github.com/bureau-foundation/fluidspaces/lib/version"
)

func main() {
	process.Exit(run(context.Background(), os.Args[1:], os.Stdout))
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var (
		action      string
		title       string
		socketPath  string
		configPath  string
		showVersion bool
	)

	flagSet := pflag.NewFlagSet("fluidspaces-msg", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVarP(&action, "action", "a", string(navigate.ActionGoTo), "go_to, send_to, bring_to, or toggle")
	flagSet.StringVarP(&title, "title", "t", "", "target title (skips the picker)")
	flagSet.StringVarP(&socketPath, "socket", "s", "", "control socket path (default from configuration)")
	flagSet.StringVarP(&configPath, "config", "c", "", "configuration file (default $FLUIDSPACES_CONFIG)")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(stdout, flagSet)
			return nil
		}
		return err
	}
	if showVersion {
		fmt.Fprintf(stdout, "fluidspaces-msg %s\n", version.Info())
		return nil
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", flagSet.Arg(0))
	}

	parsed, err := navigate.ParseAction(action)
	if err != nil {
		return err
	}

	if socketPath == "" {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		socketPath = cfg.SocketPath
	}

	fields := map[string]any{}
	if title != "" {
		fields["title"] = title
	}
	return service.NewServiceClient(socketPath).Call(ctx, parsed.String(), fields, nil)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `fluidspaces-msg: send a navigation request to the fluidspaces daemon

Usage:
  fluidspaces-msg [--action ACTION] [--title TITLE] [flags]

Flags:
%s`, flagSet.FlagUsages())
}
