// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"
	"strings"

	"github.com/knapsack-heuristics/benchviz/benchcsv"
	"github.com/knapsack-heuristics/benchviz/benchproc"
)

// Chart modes.
const (
	ModeLine    = "line"
	ModeStacked = "stacked"
	ModeBar     = "bar"
	ModeScatter = "scatter"
)

// A Chart configures one figure: where its data comes from, how the
// records are grouped and reduced, and how the points are drawn.
type Chart struct {
	Name string `yaml:"name"`

	// Source is the CSV file to read. Relative paths are resolved
	// against Options.Dir.
	Source string `yaml:"source"`

	// Columns declares the columns to load. Each entry is a
	// well-known column name or "name:kind", where kind is string,
	// int or float. If empty, the columns are the ones the chart
	// names in GroupBy, X, Series, Variant, Y and Reduce.
	Columns []string `yaml:"columns"`

	// Title is the figure title. "{source}" expands to the base name
	// of Source.
	Title string `yaml:"title"`

	// PanelTitles are the titles of the panels, in order. In
	// addition to "{source}", "{title}" expands to the expanded
	// Title and "{field}" to the panel's plotted column.
	PanelTitles []string `yaml:"panel_titles"`

	// GroupBy is the projection records are grouped by, such as
	// "filename,type,k_perturbation".
	GroupBy string `yaml:"group_by"`

	// X is the swept parameter of line, stacked and scatter charts,
	// or the key projection along the x axis of bar charts.
	X string `yaml:"x"`

	// Series is the projection of the group key that tells lines
	// apart, such as "filename,type".
	Series string `yaml:"series"`

	// Variant is the group key field compared side by side in bar
	// charts and by marker in scatter charts.
	Variant  string   `yaml:"variant"`
	Variants []string `yaml:"variants"`
	// Labels are the display names of Variants.
	Labels []string `yaml:"labels"`

	// Y names the plotted column. If empty, every Reduce column gets
	// its own panel.
	Y string `yaml:"y"`

	// Reduce lists the columns averaged within each group. It
	// defaults to value and time.
	Reduce []string `yaml:"reduce"`

	Mode string `yaml:"mode"`

	// Filter selects records before aggregation.
	Filter string `yaml:"filter"`

	// Select selects aggregated points for display. Charts that share
	// a source, GroupBy, Filter and Reduce share one aggregation and
	// differ only in Select.
	Select string `yaml:"select"`

	// Label is the series label template, with "{field}"
	// placeholders.
	Label string `yaml:"label"`

	XLabel string `yaml:"x_label"`
	YLabel string `yaml:"y_label"`
	// YLabels are the y axis labels of panels after the first.
	YLabels []string `yaml:"y_labels"`

	// Sort orders points by key instead of by first appearance.
	Sort bool `yaml:"sort"`
}

// DisplayName returns the name used for c in messages.
func (c *Chart) DisplayName() string {
	switch {
	case c.Name != "":
		return c.Name
	case c.Title != "":
		return c.Title
	}
	return c.Source
}

// Validate reports the first invalid field of c.
func (c *Chart) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("chart %q: %s", c.DisplayName(), fmt.Sprintf(format, args...))
	}
	if c.Source == "" {
		return bad("missing source")
	}
	if c.GroupBy == "" {
		return bad("missing group_by")
	}
	switch c.Mode {
	case ModeLine, ModeStacked, ModeScatter:
		if c.X == "" {
			return bad("%s mode needs x", c.Mode)
		}
	case ModeBar:
		if c.X == "" {
			return bad("bar mode needs x, the bar key")
		}
	case "":
		return bad("missing mode")
	default:
		return bad("unknown mode %q (want line, stacked, bar or scatter)", c.Mode)
	}
	if c.Mode == ModeStacked && c.Y == "" && len(c.Reduce) != 0 && len(c.Reduce) != 2 {
		return bad("stacked mode needs exactly two reduce columns, have %d", len(c.Reduce))
	}
	if c.Mode == ModeScatter && c.Series == "" {
		return bad("scatter mode needs series")
	}
	if len(c.Labels) > 0 && len(c.Variants) > 0 && len(c.Labels) > len(c.Variants) {
		return bad("%d labels for %d variants", len(c.Labels), len(c.Variants))
	}
	for _, col := range c.Columns {
		if _, _, err := parseColumn(col); err != nil {
			return bad("%v", err)
		}
	}
	return nil
}

// reduce returns the reduced columns of c.
func (c *Chart) reduce() []string {
	if len(c.Reduce) > 0 {
		return c.Reduce
	}
	return []string{benchcsv.Value, benchcsv.Time}
}

// panelFields returns the plotted column of each panel.
func (c *Chart) panelFields() []string {
	if c.Y != "" {
		if c.Mode == ModeStacked {
			return []string{c.Y, benchcsv.Time}
		}
		return []string{c.Y}
	}
	if c.Mode == ModeScatter {
		// A scatter plots one column against X.
		for _, f := range c.reduce() {
			if f != c.X {
				return []string{f}
			}
		}
	}
	return c.reduce()
}

// schema returns the schema to load c's source with.
func (c *Chart) schema() (*benchcsv.Schema, error) {
	cols := c.Columns
	if len(cols) == 0 {
		cols = c.impliedColumns()
	}
	s, err := benchcsv.NewSchema()
	if err != nil {
		return nil, err
	}
	for _, col := range cols {
		name, kind, err := parseColumn(col)
		if err != nil {
			return nil, err
		}
		if s.Has(name) {
			continue
		}
		if err := s.Add(name, kind); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// impliedColumns lists the columns c refers to, in order of first
// mention.
func (c *Chart) impliedColumns() []string {
	var cols []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			cols = append(cols, name)
		}
	}
	for _, expr := range []string{c.GroupBy, c.X, c.Series} {
		var pp benchproc.ProjectionParser
		proj, err := pp.Parse(expr, new(benchproc.Filter))
		if err != nil {
			// Reported when the projection is parsed for real.
			continue
		}
		for _, f := range proj.Fields() {
			add(f.Name)
		}
	}
	add(c.Variant)
	add(c.Y)
	for _, f := range c.reduce() {
		add(f)
	}
	return cols
}

// parseColumn parses a column declaration, "name" or "name:kind".
// A bare name must be a well-known column.
func parseColumn(decl string) (string, benchcsv.Kind, error) {
	name, kindName, ok := strings.Cut(decl, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, fmt.Errorf("empty column name in %q", decl)
	}
	if !ok {
		s, err := benchcsv.NewSchema(name)
		if err != nil {
			return "", 0, err
		}
		col, _ := s.Lookup(name)
		return name, col.Kind, nil
	}
	switch strings.TrimSpace(kindName) {
	case "string", "str":
		return name, benchcsv.String, nil
	case "int", "integer":
		return name, benchcsv.Int, nil
	case "float", "number":
		return name, benchcsv.Float, nil
	}
	return "", 0, fmt.Errorf("column %q has unknown kind %q (want string, int or float)", name, kindName)
}
