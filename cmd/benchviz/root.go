// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// globals holds the state shared by every command.
type globals struct {
	cfgFile string
	verbose bool

	stdout, stderr io.Writer
}

// logger returns the logger for diagnostics on stderr. Times are left
// out; the messages are for the person at the terminal.
func (g *globals) logger() *slog.Logger {
	level := slog.LevelInfo
	if g.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(g.stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globals{stdout: stdout, stderr: stderr}
	root := &cobra.Command{
		Use:           "benchviz",
		Short:         "Chart knapsack heuristic benchmark results",
		Long:          `Benchviz aggregates benchmark CSV files and draws line, stacked, bar and scatter charts from them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&g.cfgFile, "config", "", "chart set `file` (default ./benchviz.yaml or ./charts.yaml)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log progress")

	root.AddCommand(newShowCmd(g), newTableCmd(g))
	return root
}
