// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/knapsack-heuristics/benchviz/benchplot"
	"github.com/knapsack-heuristics/benchviz/internal/config"
	"github.com/knapsack-heuristics/benchviz/pipeline"
	"github.com/spf13/cobra"
)

type showFlags struct {
	out    string
	format string
	tty    bool
}

func newShowCmd(g *globals) *cobra.Command {
	var f showFlags
	cmd := &cobra.Command{
		Use:   "show [chart...]",
		Short: "Draw the charts of a chart set",
		Example: `  # Write every chart to ./charts as PNG
  benchviz show

  # Draw two charts in the terminal
  benchviz show --tty vns-k vns-bars

  # Use another chart set and write SVG
  benchviz --config hybrid.yaml show --format svg --out /tmp/hybrid`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(g, &f, cmd.Flags().Changed("tty"), args)
		},
	}
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "write images to `dir` (overrides the chart set)")
	cmd.Flags().StringVar(&f.format, "format", "", "image `format`: "+strings.Join(benchplot.Formats, ", "))
	cmd.Flags().BoolVar(&f.tty, "tty", false, "draw in the terminal instead of writing files")
	return cmd
}

func show(g *globals, f *showFlags, ttySet bool, names []string) error {
	cfg, err := config.Load(g.cfgFile)
	if err != nil {
		return err
	}
	if len(cfg.Charts) == 0 {
		if cfg.Path == "" {
			return fmt.Errorf("no chart set found (looked for %s)", strings.Join(config.DefaultFiles, ", "))
		}
		return fmt.Errorf("%s: no charts", cfg.Path)
	}
	charts, err := cfg.Select(names...)
	if err != nil {
		return err
	}

	out := cfg.Output
	if f.out != "" {
		out.Dir = f.out
	}
	if f.format != "" {
		if !slices.Contains(benchplot.Formats, f.format) {
			return fmt.Errorf("unknown format %q", f.format)
		}
		out.Format = f.format
	}
	if ttySet {
		out.Terminal = f.tty
	}

	var d benchplot.Display
	images := &benchplot.ImageDisplay{Dir: out.Dir, Format: out.Format}
	if out.Terminal {
		d = &benchplot.TermDisplay{}
	} else {
		d = images
	}

	log := g.logger()
	log.Debug("chart set", "file", cfg.Path, "charts", len(charts))
	runErr := pipeline.Run(charts, d, pipeline.Options{Logger: log, Dir: cfg.Dir()})
	for _, path := range images.Paths {
		fmt.Fprintln(g.stdout, path)
	}
	if runErr != nil {
		n := 1
		var joined interface{ Unwrap() []error }
		if errors.As(runErr, &joined) {
			n = len(joined.Unwrap())
		}
		return fmt.Errorf("%d of %d charts failed", n, len(charts))
	}
	return nil
}
