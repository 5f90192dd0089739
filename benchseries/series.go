// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchseries turns aggregated benchmark points into chart
// descriptions: ordered, labeled and styled series laid out in
// panels.
//
// A Chart is built once and handed to a renderer. Nothing in this
// package draws.
package benchseries

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/knapsack-heuristics/benchviz/benchproc"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Mode is how a Panel draws its series.
type Mode int

const (
	// ModeLine draws one curve per series with a marker at each point.
	ModeLine Mode = iota
	// ModeBar draws interleaved bar sets at integer x positions.
	ModeBar
	// ModeScatter draws marker-connected paths whose points are not
	// necessarily sorted by a swept parameter.
	ModeScatter
)

func (m Mode) String() string {
	switch m {
	case ModeLine:
		return "line"
	case ModeBar:
		return "bar"
	case ModeScatter:
		return "scatter"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Layout is how a Chart arranges its panels.
type Layout int

const (
	// LayoutSingle draws each panel as its own figure area, one above
	// another, with independent x axes.
	LayoutSingle Layout = iota
	// LayoutStacked draws panels one above another sharing an x range.
	LayoutStacked
)

// A Chart is one figure.
type Chart struct {
	Title string
	// Source identifies the data the chart was drawn from, such as
	// an input file name.
	Source string
	Layout Layout
	Panels []*Panel
}

// A Panel is one set of axes within a Chart.
type Panel struct {
	Title          string
	XLabel, YLabel string
	Mode           Mode

	// X and Y name the columns plotted on each axis. A renderer
	// uses them to pick tick formatting.
	X, Y string

	Series []*Series

	// XTicks, if non-nil, labels integer x positions 0, 1, ... in
	// Bar panels.
	XTicks []string

	// Empty is set when the panel was requested but had nothing to
	// show.
	Empty bool
}

// A Series is an ordered sequence of points sharing a label and a
// visual style.
type Series struct {
	Label  string
	Key    benchproc.Key
	Points []XY
	Style  Style
}

// XY is a point in data coordinates.
type XY struct {
	X, Y float64
}

// Style is the visual encoding of a Series.
type Style struct {
	// Slot is the position of the series' key in its StyleMap.
	Slot   int
	Color  color.Color
	Shape  draw.GlyphDrawer
	Dashes []vg.Length
}

// Stacked returns a two-panel chart with value above time, sharing
// the x axis. The time panel's lines are dashed.
func Stacked(title string, value, time *Panel) *Chart {
	for _, s := range time.Series {
		s.Style.Dashes = dashed
	}
	if value.XLabel != "" && time.XLabel == "" {
		time.XLabel = value.XLabel
	}
	value.XLabel = ""
	return &Chart{Title: title, Layout: LayoutStacked, Panels: []*Panel{value, time}}
}

// Legend returns the number of distinct legend entries in p.
func (p *Panel) Legend() int {
	seen := make(map[string]bool)
	for _, s := range p.Series {
		if s.Label != "" {
			seen[s.Label] = true
		}
	}
	return len(seen)
}

// defaultLabel formats the values of k as "first (rest, ...)".
func defaultLabel(k benchproc.Key) string {
	fields := k.Projection().Fields()
	if len(fields) == 0 {
		return ""
	}
	label := k.Value(fields[0])
	if len(fields) > 1 {
		rest := make([]string, 0, len(fields)-1)
		for _, f := range fields[1:] {
			rest = append(rest, k.Value(f))
		}
		label += " (" + strings.Join(rest, ", ") + ")"
	}
	return label
}

// expandLabel replaces each "{name}" in tmpl with the value of field
// name in g. "{name:.2f}" formats a numeric value with the float verb
// "%.2f"; the verb must end in e, f or g. Unknown names are left alone.
func expandLabel(tmpl string, g benchproc.Getter) string {
	var buf strings.Builder
	for {
		i := strings.IndexByte(tmpl, '{')
		if i < 0 {
			break
		}
		j := strings.IndexByte(tmpl[i:], '}')
		if j < 0 {
			break
		}
		name, verb, _ := strings.Cut(tmpl[i+1:i+j], ":")
		buf.WriteString(tmpl[:i])
		if v, ok := g.Get(name); ok {
			buf.WriteString(formatValue(v, verb))
		} else {
			buf.WriteString(tmpl[i : i+j+1])
		}
		tmpl = tmpl[i+j+1:]
	}
	buf.WriteString(tmpl)
	return buf.String()
}

// formatValue formats v with the float verb "%"+verb. Values that
// aren't numbers and verbs fmt would not treat as floats are returned
// unchanged.
func formatValue(v, verb string) string {
	if verb == "" || !strings.ContainsAny(verb[len(verb)-1:], "efgEFG") || strings.ContainsRune(verb, '%') {
		return v
	}
	x, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	return fmt.Sprintf("%"+verb, x)
}

// number parses the value of field name in k.
func number(k benchproc.Key, name string) (float64, error) {
	v, ok := k.Get(name)
	if !ok {
		return 0, fmt.Errorf("field %q is not part of the group key %s", name, k)
	}
	x, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("field %q of %s is not a number", name, k)
	}
	return x, nil
}

// sortByX sorts pts by X. Ties keep their order.
func sortByX(pts []XY) {
	sort.SliceStable(pts, func(i, j int) bool {
		return pts[i].X < pts[j].X
	})
}
