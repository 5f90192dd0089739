// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/knapsack-heuristics/benchviz/pipeline"
	"github.com/spf13/cobra"
)

type tableFlags struct {
	columns []string
	by      string
	reduce  []string
	filter  string
	sort    bool
	format  string
}

func newTableCmd(g *globals) *cobra.Command {
	var f tableFlags
	cmd := &cobra.Command{
		Use:   "table file.csv",
		Short: "Print the group means of a CSV file",
		Example: `  # Mean value and time per algorithm and population size
  benchviz table --by type,pop_size runs.csv

  # Genetic runs only, as CSV
  benchviz table --by pop_size,mutation_rate --filter type:genetic --format csv runs.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return table(g, &f, args[0])
		},
	}
	cmd.Flags().StringSliceVar(&f.columns, "columns", nil, "`columns` to load, as name or name:kind (default: the ones named by --by and --reduce)")
	cmd.Flags().StringVar(&f.by, "by", "filename,type", "group rows by `projection`")
	cmd.Flags().StringSliceVar(&f.reduce, "reduce", nil, "`columns` to average (default value,time)")
	cmd.Flags().StringVar(&f.filter, "filter", "", "use only rows matching `query`")
	cmd.Flags().BoolVar(&f.sort, "sort", false, "sort rows by group instead of first appearance")
	cmd.Flags().StringVar(&f.format, "format", "text", "output `format`: text, csv or html")
	return cmd
}

func table(g *globals, f *tableFlags, file string) error {
	switch f.format {
	case "text", "csv", "html":
	default:
		return fmt.Errorf("unknown format %q (want text, csv or html)", f.format)
	}
	c := &pipeline.Chart{
		Source:  file,
		Columns: f.columns,
		GroupBy: f.by,
		Reduce:  f.reduce,
		Filter:  f.filter,
		Sort:    f.sort,
	}
	tab, err := pipeline.NewRunner(pipeline.Options{Logger: g.logger()}).Aggregate(c)
	if err != nil {
		return err
	}
	switch f.format {
	case "csv":
		return tab.ToCSV(g.stdout)
	case "html":
		return tab.ToHTML(g.stdout)
	}
	return tab.ToText(g.stdout)
}
