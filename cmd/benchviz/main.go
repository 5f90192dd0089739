// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchviz charts knapsack heuristic benchmark results.
//
// Usage:
//
//	benchviz [--config file] [--verbose] show [--out dir] [--format fmt] [--tty] [chart...]
//	benchviz table [--columns cols] [--by proj] [--reduce cols] [--filter query] [--sort] [--format fmt] file.csv
//
// The show command draws the charts of a chart set file, by default
// benchviz.yaml or charts.yaml in the current directory. Each chart
// names a CSV source, how to group its rows, and what to plot. With
// chart names, only those charts are drawn, in the order given.
//
// Figures are written as numbered image files to the output directory,
// or with --tty drawn in the terminal one at a time. Press q, Esc or
// Enter to move on to the next figure.
//
// The table command prints the group means of a single CSV file
// without drawing anything:
//
//	$ benchviz table --by type,pop_size runs.csv
//	type    pop_size │     value      │       time
//	────────────────────────────────────────────────────
//	genetic 50       │ 110.0 ± 9% n=3 │ 1.000s ± 50% n=3
//	genetic 100      │ 200.0      n=1 │ 2.000s       n=1
//	hybrid  100      │ 250.0      n=1 │ 3.000s       n=1
//
// Rows that can't be parsed are dropped and reported on standard
// error. They never count toward a mean.
//
// Example chart set:
//
//	output:
//	  dir: charts
//	  format: png
//	charts:
//	  - name: vns-k
//	    source: vns_k_perturbation.csv
//	    title: "VNS perturbation {source}"
//	    group_by: filename,type,k_perturbation
//	    x: k_perturbation
//	    series: filename,type
//	    mode: stacked
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "benchviz:", err)
		os.Exit(1)
	}
}
