// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/fluidspaces/cmd/fluidspaces/cli"
	"github.com/bureau-foundation/fluidspaces/lib/picker"
	"github.com/bureau-foundation/fluidspaces/lib/tui"
	"github.com/bureau-foundation/fluidspaces/lib/wmipc"
	"github.com/bureau-foundation/fluidspaces/lib/workspace"
)

type listParams struct {
	configParams
	cli.JSONOutput
	WMSocket string `flag:"wm-socket" desc:"i3/sway IPC socket (overrides wm.socket_path and discovery)"`
	Filter   string `flag:"filter,f" desc:"keep titles matching this fuzzy query, best match first"`
}

// listRow is one workspace in list output.
type listRow struct {
	Index      int    `json:"num"`
	Identifier string `json:"name"`
	Title      string `json:"title"`
	Output     string `json:"output"`
	Focused    bool   `json:"focused"`
	Visible    bool   `json:"visible"`
	Urgent     bool   `json:"urgent"`
}

func listCommand(std streams) *cli.Command {
	var params listParams
	return &cli.Command{
		Name:    "list",
		Summary: "Show workspaces in recency order",
		Description: `Ask the window manager for the current workspaces and print them in
the order it reports: number, title, output, and state. The daemon is
not involved.`,
		Usage: "fluidspaces list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Examples: []cli.Example{
			{
				Description: "Find workspaces whose title looks like \"mail\"",
				Command:     "fluidspaces list --filter mail",
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

			wmSocket, err := wmipc.ResolveSocketPath(ctx, cfg.WM.SocketPath)
			if err != nil {
				return cli.NotFound("%v", err).WithHint("Pass --wm-socket or set SWAYSOCK/I3SOCK.")
			}
			set, err := wmipc.NewClient(wmSocket, cfg.WM.Timeout.Std(), nil).Workspaces(ctx)
			if err != nil {
				return cli.Transient("listing workspaces: %v", err)
			}

			rows := listRows(set, params.Filter)
			if done, err := params.EmitJSON(std.stdout, rows); done {
				return err
			}
			renderer := lipgloss.NewRenderer(std.stdout)
			writeTable(std.stdout, rows, tui.DefaultTheme.Styles(renderer))
			return nil
		},
	}
}

// listRows converts set to rows in set order, or in fuzzy rank order
// when filter is non-empty.
func listRows(set workspace.Set, filter string) []listRow {
	titles := make([]string, len(set))
	for i, w := range set {
		titles[i] = w.Title()
	}

	matches := picker.Rank(filter, titles)
	rows := make([]listRow, 0, len(matches))
	for _, match := range matches {
		w := set[match.Index]
		rows = append(rows, listRow{
			Index:      w.Index,
			Identifier: w.Identifier,
			Title:      match.Text,
			Output:     w.Output,
			Focused:    w.Focused,
			Visible:    w.Visible,
			Urgent:     w.Urgent,
		})
	}
	return rows
}

// writeTable prints rows as aligned columns. Styles are applied to
// whole lines after alignment so escape sequences never count toward
// column widths.
func writeTable(w io.Writer, rows []listRow, styles tui.Styles) {
	if len(rows) == 0 {
		fmt.Fprintln(w, styles.Faint.Render("no workspaces"))
		return
	}

	var table bytes.Buffer
	writer := tabwriter.NewWriter(&table, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "NUM\tTITLE\tOUTPUT\tSTATE")
	for _, row := range rows {
		number := "-"
		if row.Index >= 0 {
			number = strconv.Itoa(row.Index)
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", number, row.Title, row.Output, rowState(row))
	}
	writer.Flush()

	lines := strings.Split(strings.TrimSuffix(table.String(), "\n"), "\n")
	fmt.Fprintln(w, styles.Header.Render(strings.TrimRight(lines[0], " ")))
	for i, row := range rows {
		text := strings.TrimRight(lines[i+1], " ")
		switch {
		case row.Urgent:
			text = styles.Urgent.Render(text)
		case row.Focused:
			text = styles.Focused.Render(text)
		case row.Visible:
			text = styles.Visible.Render(text)
		default:
			text = styles.Normal.Render(text)
		}
		fmt.Fprintln(w, text)
	}
}

func rowState(row listRow) string {
	var states []string
	if row.Focused {
		states = append(states, "focused")
	} else if row.Visible {
		states = append(states, "visible")
	}
	if row.Urgent {
		states = append(states, "urgent")
	}
	return strings.Join(states, ",")
}
