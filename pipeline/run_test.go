// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/knapsack-heuristics/benchviz/benchcsv"
	"github.com/knapsack-heuristics/benchviz/benchplot"
	"github.com/knapsack-heuristics/benchviz/benchseries"
)

// recorder is a Display that remembers the titles it was shown.
type recorder struct {
	titles []string
}

func (r *recorder) Show(f *benchplot.Figure) error {
	r.titles = append(r.titles, f.Title)
	return nil
}

func newRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewRunner(Options{Logger: log, Dir: "testdata"}), &logs
}

func buildChart(t *testing.T, r *Runner, c Chart) *benchseries.Chart {
	t.Helper()
	chart, err := r.Chart(&c)
	if err != nil {
		t.Fatal(err)
	}
	return chart
}

var (
	gaByPop = Chart{
		Name:    "ga-pop",
		Source:  "ga.csv",
		Title:   "Value by population size {source}",
		GroupBy: "pop_size,mutation_rate",
		X:       "pop_size",
		Series:  "mutation_rate",
		Reduce:  []string{"value"},
		Mode:    ModeLine,
		Label:   "Mutation {mutation_rate:.2f}",
	}
	vnsByK = Chart{
		Name:        "vns-k",
		Source:      "vns.csv",
		Title:       "VNS perturbation",
		PanelTitles: []string{"{title}: value", "{title}: {field}"},
		GroupBy:     "filename,type,k_perturbation",
		X:           "k_perturbation",
		Series:      "filename,type",
		Mode:        ModeStacked,
	}
	vnsBars = Chart{
		Name:     "vns-bars",
		Source:   "vns.csv",
		Title:    "Greedy vs random VNS",
		GroupBy:  "filename,type",
		X:        "filename",
		Variant:  "type",
		Variants: []string{"vns_gloutonne", "vns_aleatoire"},
		Labels:   []string{"VNS Gloutonne", "VNS Aléatoire"},
		Y:        "value",
		Mode:     ModeBar,
	}
	vnsScatter = Chart{
		Name:     "vns-time",
		Source:   "vns_time.csv",
		GroupBy:  "filename,type,time",
		X:        "time",
		Series:   "filename",
		Variant:  "type",
		Variants: []string{"vns_gloutonne", "vns_aleatoire"},
		Labels:   []string{"VNS Gloutonne", "VNS Aléatoire"},
		Mode:     ModeScatter,
	}
)

func TestLineChart(t *testing.T) {
	r, _ := newRunner(t)
	c := buildChart(t, r, gaByPop)
	if c.Title != "Value by population size ga.csv" || c.Source != "ga.csv" {
		t.Errorf("got title %q source %q", c.Title, c.Source)
	}
	if len(c.Panels) != 1 {
		t.Fatalf("got %d panels, want 1", len(c.Panels))
	}
	p := c.Panels[0]
	var labels []string
	for _, s := range p.Series {
		labels = append(labels, s.Label)
		if len(s.Points) != 4 {
			t.Errorf("%s has %d points, want 4", s.Label, len(s.Points))
		}
		for i := 1; i < len(s.Points); i++ {
			if s.Points[i-1].X >= s.Points[i].X {
				t.Errorf("%s is not sorted by x: %v", s.Label, s.Points)
			}
		}
	}
	if got, want := strings.Join(labels, "|"), "Mutation 0.01|Mutation 0.05|Mutation 0.10"; got != want {
		t.Errorf("got labels %s, want %s", got, want)
	}
	if p.XLabel != "pop_size" || p.YLabel != "value" {
		t.Errorf("got axis labels %q, %q", p.XLabel, p.YLabel)
	}
	// pop_size 50 at mutation 0.01 averages two generation counts.
	if got := p.Series[0].Points[0]; got != (benchseries.XY{X: 50, Y: 1132.5}) {
		t.Errorf("first point is %v, want {50 1132.5}", got)
	}
}

func TestStackedChart(t *testing.T) {
	r, _ := newRunner(t)
	c := buildChart(t, r, vnsByK)
	if c.Layout != benchseries.LayoutStacked || len(c.Panels) != 2 {
		t.Fatalf("got layout %v with %d panels", c.Layout, len(c.Panels))
	}
	value, time := c.Panels[0], c.Panels[1]
	if value.Title != "VNS perturbation: value" || time.Title != "VNS perturbation: time" {
		t.Errorf("got panel titles %q, %q", value.Title, time.Title)
	}
	if value.Y != "value" || time.Y != "time" || time.YLabel != "time (s)" {
		t.Errorf("got y %q/%q, time label %q", value.Y, time.Y, time.YLabel)
	}
	if len(value.Series) != 10 || len(time.Series) != 10 {
		t.Fatalf("got %d and %d series, want 10", len(value.Series), len(time.Series))
	}
	for i, vs := range value.Series {
		ts := time.Series[i]
		if vs.Label != ts.Label || vs.Style.Color != ts.Style.Color {
			t.Errorf("series %d differs between panels: %s/%v vs %s/%v", i, vs.Label, vs.Style.Color, ts.Label, ts.Style.Color)
		}
		if len(vs.Style.Dashes) != 0 || len(ts.Style.Dashes) == 0 {
			t.Errorf("series %d: value dashes %v, time dashes %v", i, vs.Style.Dashes, ts.Style.Dashes)
		}
	}
	if got := value.Series[0].Label; got != "knap_10.txt (vns_aleatoire)" {
		t.Errorf("first series is %q", got)
	}
	// The x label moves to the bottom panel.
	if value.XLabel != "" || time.XLabel != "k_perturbation" {
		t.Errorf("got x labels %q, %q", value.XLabel, time.XLabel)
	}
}

func TestBarChart(t *testing.T) {
	r, _ := newRunner(t)
	c := buildChart(t, r, vnsBars)
	p := c.Panels[0]
	bars := 0
	for _, s := range p.Series {
		bars += len(s.Points)
	}
	if bars != 10 || p.Legend() != 2 {
		t.Errorf("got %d bars and %d legend entries, want 10 and 2", bars, p.Legend())
	}
	if p.Series[0].Label != "VNS Gloutonne" {
		t.Errorf("first bar set is %q, want VNS Gloutonne", p.Series[0].Label)
	}
	if len(p.XTicks) != 5 || p.XTicks[0] != "knap_10.txt" {
		t.Errorf("got ticks %v", p.XTicks)
	}
}

func TestScatterChart(t *testing.T) {
	r, _ := newRunner(t)
	c := buildChart(t, r, vnsScatter)
	p := c.Panels[0]
	if p.X != "time" || p.Y != "value" {
		t.Errorf("scatter plots %s against %s", p.Y, p.X)
	}
	if len(p.Series) != 6 {
		t.Fatalf("got %d paths, want 6", len(p.Series))
	}
	if got := p.Series[0].Label; got != "VNS Gloutonne - knap_10.txt" {
		t.Errorf("first path is %q", got)
	}
	// A file keeps its color across variants.
	if p.Series[0].Style.Color != p.Series[1].Style.Color || p.Series[0].Style.Shape == p.Series[1].Style.Shape {
		t.Errorf("paths of one file should share color and differ in marker")
	}
}

func TestSharedAggregation(t *testing.T) {
	r, _ := newRunner(t)
	small := vnsBars
	small.Name = "small files"
	small.Select = "filename:(knap_10.txt OR knap_20.txt)"
	buildChart(t, r, vnsBars)
	c := buildChart(t, r, small)
	if len(r.tabs) != 1 || len(r.aggs) != 1 {
		t.Errorf("got %d loads and %d aggregations, want 1 and 1", len(r.tabs), len(r.aggs))
	}
	if got := c.Panels[0].XTicks; len(got) != 2 {
		t.Errorf("selected chart has ticks %v, want 2", got)
	}
	// A different filter is a different aggregation.
	filtered := vnsBars
	filtered.Filter = "k_perturbation<=2"
	buildChart(t, r, filtered)
	if len(r.aggs) != 2 {
		t.Errorf("got %d aggregations, want 2", len(r.aggs))
	}
}

func TestEmptySelection(t *testing.T) {
	r, logs := newRunner(t)
	c := gaByPop
	c.Select = "pop_size>1000"
	var d recorder
	if err := r.Run([]Chart{c}, &d); err != nil {
		t.Fatal(err)
	}
	if len(d.titles) != 1 {
		t.Errorf("showed %d charts, want 1", len(d.titles))
	}
	if !strings.Contains(logs.String(), "empty panel") {
		t.Errorf("empty panel not logged:\n%s", logs)
	}
}

func TestRunContinues(t *testing.T) {
	dir := t.TempDir()
	bad := "filename,type,value,time\nknap_10.txt,vns,12,0.1\nknap_10.txt,vns,oops,0.2\n"
	if err := os.WriteFile(filepath.Join(dir, "bad.csv"), []byte(bad), 0o666); err != nil {
		t.Fatal(err)
	}
	noTime := "filename,type,value\nknap_10.txt,vns,12\n"
	if err := os.WriteFile(filepath.Join(dir, "notime.csv"), []byte(noTime), 0o666); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))
	charts := []Chart{
		{Name: "missing", Source: "missing.csv", GroupBy: "filename", X: "filename", Mode: ModeBar},
		{Name: "schema", Source: "notime.csv", GroupBy: "filename", X: "filename", Mode: ModeBar},
		{Name: "good", Source: "bad.csv", Title: "Good", GroupBy: "filename", X: "filename", Y: "value", Mode: ModeBar},
	}
	var d recorder
	err := Run(charts, &d, Options{Logger: log, Dir: dir})
	if len(d.titles) != 1 || d.titles[0] != "Good (bad.csv)" {
		t.Errorf("showed %q, want only the good chart", d.titles)
	}

	if err == nil {
		t.Fatal("want error")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error does not report the missing file: %v", err)
	}
	var se *benchcsv.SchemaError
	if !errors.As(err, &se) || se.Missing[0] != "time" {
		t.Errorf("error does not report the missing column: %v", err)
	}
	for _, name := range []string{`"missing"`, `"schema"`} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error does not name chart %s: %v", name, err)
		}
	}

	out := logs.String()
	for _, want := range []string{"dropped rows", "count=1", "bad.csv:3", "chart failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("log does not contain %q:\n%s", want, out)
		}
	}
}

func TestChartErrors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		modify func(c *Chart)
		want   string
	}{
		{"no mode", func(c *Chart) { c.Mode = "" }, "missing mode"},
		{"bad mode", func(c *Chart) { c.Mode = "pie" }, `unknown mode "pie"`},
		{"no source", func(c *Chart) { c.Source = "" }, "missing source"},
		{"no x", func(c *Chart) { c.X = "" }, "line mode needs x"},
		{"bad column", func(c *Chart) { c.Columns = []string{"temps:duration"} }, `unknown kind "duration"`},
		{"unknown column", func(c *Chart) { c.GroupBy = "pop_size,temps" }, `unknown column "temps"`},
		{"series outside key", func(c *Chart) { c.Series = "generations" }, `field "generations" is not in group_by`},
		{"bad filter", func(c *Chart) { c.Filter = "pop_size:(50" }, "filter"},
		{"x not numeric", func(c *Chart) { c.GroupBy, c.X, c.Series = "filename,mutation_rate", "filename", "mutation_rate" }, "not a number"},
		{"stacked reduce", func(c *Chart) { c.Mode, c.Reduce = ModeStacked, []string{"value"} }, "exactly two reduce columns"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := newRunner(t)
			c := gaByPop
			tc.modify(&c)
			_, err := r.Chart(&c)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("got %v, want error containing %q", err, tc.want)
			}
		})
	}
}

func TestImpliedColumns(t *testing.T) {
	c := vnsBars
	got := strings.Join(c.impliedColumns(), ",")
	if want := "filename,type,value,time"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	c = vnsByK
	got = strings.Join(c.impliedColumns(), ",")
	if want := "filename,type,k_perturbation,value,time"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestDeclaredColumns(t *testing.T) {
	dir := t.TempDir()
	data := "filename,type,seed,value,time\nknap_10.txt,genetic,1,10,0.5\nknap_10.txt,genetic,2,20,0.7\nknap_10.txt,genetic,x,30,0.9\n"
	if err := os.WriteFile(filepath.Join(dir, "seeds.csv"), []byte(data), 0o666); err != nil {
		t.Fatal(err)
	}
	r := NewRunner(Options{Dir: dir})
	c := &Chart{Source: "seeds.csv", Columns: []string{"seed:int", "value"}, GroupBy: "seed", Reduce: []string{"value"}}
	tab, err := r.Load(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(tab.Records) != 2 || len(tab.Dropped) != 1 {
		t.Fatalf("got %d records and %d dropped rows, want 2 and 1", len(tab.Records), len(tab.Dropped))
	}
	agg, err := r.Aggregate(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(agg.Points) != 2 {
		t.Errorf("got %d points, want one per seed", len(agg.Points))
	}

	c = &Chart{Source: "seeds.csv", GroupBy: "seed"}
	if _, err := r.Load(c); err == nil {
		t.Errorf("undeclared custom column loaded without error")
	}
}

func TestExpand(t *testing.T) {
	vars := map[string]string{"source": "ga.csv", "title": "GA"}
	for in, want := range map[string]string{
		"plain":               "plain",
		"{title} on {source}": "GA on ga.csv",
		"{unknown} {source}":  "{unknown} ga.csv",
	} {
		if got := expand(in, vars); got != want {
			t.Errorf("expand(%q) = %q, want %q", in, got, want)
		}
	}
}
