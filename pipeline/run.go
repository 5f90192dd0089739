// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline turns chart configurations into figures: it loads
// each chart's CSV source, aggregates it, builds the chart and hands
// the rendered figure to a display, one chart at a time.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/knapsack-heuristics/benchviz/benchcsv"
	"github.com/knapsack-heuristics/benchviz/benchplot"
	"github.com/knapsack-heuristics/benchviz/benchproc"
	"github.com/knapsack-heuristics/benchviz/benchseries"
	"github.com/knapsack-heuristics/benchviz/benchtab"
)

// Options configures a Runner.
type Options struct {
	// Logger receives progress, dropped rows and aggregation
	// warnings. If nil, nothing is logged.
	Logger *slog.Logger

	// Dir is the directory relative sources are resolved against.
	Dir string
}

// A Runner builds charts. It caches loaded tables and aggregations
// for the duration of a run, so charts drawn from the same data
// share them.
type Runner struct {
	log  *slog.Logger
	dir  string
	tabs map[loadKey]*loaded
	aggs map[aggKey]*aggregated
}

type loadKey struct {
	path, columns string
}

type loaded struct {
	tab *benchcsv.Table
	err error
}

type aggKey struct {
	load                    loadKey
	groupBy, filter, reduce string
	sort                    bool
}

type aggregated struct {
	tab *benchtab.Table
	err error
}

// NewRunner returns a Runner with empty caches.
func NewRunner(opts Options) *Runner {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		log:  log,
		dir:  opts.Dir,
		tabs: make(map[loadKey]*loaded),
		aggs: make(map[aggKey]*aggregated),
	}
}

// Run builds, renders and shows each chart in order, waiting for d
// to return before moving on. A chart that fails is logged and
// skipped. Run returns the failures joined together.
func Run(charts []Chart, d benchplot.Display, opts Options) error {
	return NewRunner(opts).Run(charts, d)
}

// Run is like the package-level Run, using r's caches.
func (r *Runner) Run(charts []Chart, d benchplot.Display) error {
	var errs []error
	for i := range charts {
		c := &charts[i]
		log := r.log.With("chart", c.DisplayName())
		if err := r.show(c, d); err != nil {
			log.Error("chart failed", "err", err)
			errs = append(errs, fmt.Errorf("chart %q: %w", c.DisplayName(), err))
			continue
		}
		log.Debug("chart done")
	}
	return errors.Join(errs...)
}

func (r *Runner) show(c *Chart, d benchplot.Display) error {
	chart, err := r.Chart(c)
	if err != nil {
		return err
	}
	fig, err := benchplot.Render(chart)
	if err != nil {
		return err
	}
	return d.Show(fig)
}

// Load returns the table c draws from.
func (r *Runner) Load(c *Chart) (*benchcsv.Table, error) {
	schema, err := c.schema()
	if err != nil {
		return nil, err
	}
	path := c.Source
	if r.dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(r.dir, path)
	}
	key := loadKey{path, strings.Join(schema.Names(), ",")}
	if l, ok := r.tabs[key]; ok {
		return l.tab, l.err
	}

	tab, err := benchcsv.LoadFile(path, schema)
	r.tabs[key] = &loaded{tab, err}
	if err != nil {
		return nil, err
	}
	r.log.Debug("loaded", "source", path, "records", len(tab.Records))
	if n := len(tab.Dropped); n > 0 {
		r.log.Warn("dropped rows", "source", path, "count", n)
		for _, e := range tab.Dropped {
			r.log.Warn("dropped row", "err", e)
		}
	}
	return tab, nil
}

// Aggregate returns the aggregation c draws, before display
// selection.
func (r *Runner) Aggregate(c *Chart) (*benchtab.Table, error) {
	tab, err := r.Load(c)
	if err != nil {
		return nil, err
	}
	reduce := c.reduce()
	key := aggKey{
		load:    loadKey{tab.Source, strings.Join(tab.Schema.Names(), ",")},
		groupBy: c.GroupBy,
		filter:  c.Filter,
		reduce:  strings.Join(reduce, ","),
		sort:    c.Sort,
	}
	if a, ok := r.aggs[key]; ok {
		return a.tab, a.err
	}
	agg, err := aggregate(tab, c.GroupBy, c.Filter, reduce, c.Sort)
	r.aggs[key] = &aggregated{agg, err}
	if err != nil {
		return nil, err
	}
	for _, w := range agg.Warnings {
		r.log.Warn("aggregate", "source", tab.Source, "group_by", c.GroupBy, "warning", w)
	}
	return agg, nil
}

func aggregate(tab *benchcsv.Table, groupBy, filter string, reduce []string, sort bool) (*benchtab.Table, error) {
	query := filter
	if query == "" {
		query = "*"
	}
	f, err := benchproc.NewFilter(query)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	pp := benchproc.ProjectionParser{Schema: tab.Schema}
	proj, err := pp.Parse(groupBy, f)
	if err != nil {
		return nil, fmt.Errorf("group_by: %w", err)
	}
	for _, name := range reduce {
		col, ok := tab.Schema.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("reduce column %q is not loaded", name)
		}
		if !col.Kind.Numeric() {
			return nil, fmt.Errorf("reduce column %q is not numeric", name)
		}
	}
	b := benchtab.NewBuilder(proj, benchtab.Options{
		Reduce:  reduce,
		Residue: pp.Residue(reduce...),
		Filter:  f,
	})
	b.AddTable(tab)
	return b.ToTable(sort), nil
}

// Chart builds the chart c describes.
func (r *Runner) Chart(c *Chart) (*benchseries.Chart, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	agg, err := r.Aggregate(c)
	if err != nil {
		return nil, err
	}
	// Display projections are parsed separately from the group key
	// so they don't hide fields from the residue. Fixed orders in
	// them select points, like Select does.
	tab, _ := r.Load(c)
	dp := benchproc.ProjectionParser{Schema: tab.Schema}
	query := c.Select
	if query == "" {
		query = "*"
	}
	sel, err := benchproc.NewFilter(query)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	parse := func(what, expr string) (*benchproc.Projection, error) {
		if expr == "" {
			return nil, nil
		}
		p, err := dp.Parse(expr, sel)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", what, err)
		}
		for _, f := range p.Fields() {
			if agg.GroupBy.Field(f.Name) == nil {
				return nil, fmt.Errorf("%s: field %q is not in group_by", what, f.Name)
			}
		}
		return p, nil
	}
	seriesBy, err := parse("series", c.Series)
	if err != nil {
		return nil, err
	}
	if c.Variant != "" && agg.GroupBy.Field(c.Variant) == nil {
		return nil, fmt.Errorf("variant: field %q is not in group_by", c.Variant)
	}
	var barKey *benchproc.Projection
	if c.Mode == ModeBar {
		if barKey, err = parse("x", c.X); err != nil {
			return nil, err
		}
	}
	agg = agg.Select(sel)

	source := filepath.Base(c.Source)
	title := expand(c.Title, map[string]string{"source": source})
	out := &benchseries.Chart{Title: title, Source: source}

	fields := c.panelFields()
	panelTitle := func(i int) string {
		if i < len(c.PanelTitles) {
			return expand(c.PanelTitles[i], map[string]string{"source": source, "title": title, "field": fields[i]})
		}
		if len(fields) == 1 {
			return ""
		}
		return fields[i]
	}
	yLabel := func(i int) string {
		if i == 0 && c.YLabel != "" {
			return c.YLabel
		}
		if i > 0 && i-1 < len(c.YLabels) {
			return c.YLabels[i-1]
		}
		if fields[i] == benchcsv.Time {
			return "time (s)"
		}
		return fields[i]
	}
	xLabel := c.XLabel
	if xLabel == "" && c.Mode != ModeBar {
		xLabel = c.X
	}

	// Sibling panels share one palette.
	var styles *benchseries.StyleMap
	if seriesBy != nil {
		var keys []benchproc.Key
		for _, p := range agg.Points {
			keys = append(keys, seriesBy.Project(p.Key))
		}
		styles = benchseries.NewStyleMap(keys)
	}

	var panels []*benchseries.Panel
	for i, field := range fields {
		var p *benchseries.Panel
		var err error
		switch c.Mode {
		case ModeLine, ModeStacked:
			p, err = benchseries.Lines(agg, benchseries.LineOptions{
				Title:    panelTitle(i),
				XLabel:   xLabel,
				YLabel:   yLabel(i),
				X:        c.X,
				SeriesBy: seriesBy,
				Y:        field,
				Label:    c.Label,
				Styles:   styles,
			})
		case ModeBar:
			p, err = benchseries.Bars(agg, benchseries.BarOptions{
				Title:    panelTitle(i),
				XLabel:   c.XLabel,
				YLabel:   yLabel(i),
				Key:      barKey,
				Variant:  c.Variant,
				Variants: c.Variants,
				Y:        field,
				Labels:   c.Labels,
			})
		case ModeScatter:
			p, err = benchseries.Scatter(agg, benchseries.ScatterOptions{
				Title:    panelTitle(i),
				XLabel:   xLabel,
				YLabel:   yLabel(i),
				SeriesBy: seriesBy,
				Variant:  c.Variant,
				Variants: c.Variants,
				Labels:   c.Labels,
				X:        c.X,
				Y:        field,
				Styles:   styles,
			})
		}
		if err != nil {
			var empty *benchseries.EmptyGroupError
			if !errors.As(err, &empty) || p == nil {
				return nil, err
			}
			r.log.Warn("empty panel", "chart", c.DisplayName(), "err", err)
		}
		panels = append(panels, p)
	}

	if c.Mode == ModeStacked {
		if len(panels) != 2 {
			return nil, fmt.Errorf("stacked mode needs two panels, have %d", len(panels))
		}
		stacked := benchseries.Stacked(title, panels[0], panels[1])
		stacked.Source = source
		return stacked, nil
	}
	out.Panels = panels
	return out, nil
}

// expand replaces each "{name}" in s with vars[name]. Unknown names
// are left alone.
func expand(s string, vars map[string]string) string {
	if !strings.Contains(s, "{") {
		return s
	}
	pairs := make([]string, 0, 2*len(vars))
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}
