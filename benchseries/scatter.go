// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"fmt"
	"sort"

	"github.com/knapsack-heuristics/benchviz/benchproc"
	"github.com/knapsack-heuristics/benchviz/benchtab"
	"gonum.org/v1/plot/plotutil"
)

// ScatterOptions configures Scatter.
type ScatterOptions struct {
	Title, XLabel, YLabel string

	// SeriesBy projects the group key onto the fields that pick a
	// path's color, such as the problem instance.
	SeriesBy *benchproc.Projection

	// Variant is the group key field that picks a path's marker
	// and line pattern, such as the algorithm type. If empty, all
	// paths use the first variant's style.
	Variant string

	// Variants lists the variant values to draw. If empty, every
	// variant value in the table is drawn, sorted.
	Variants []string

	// Labels are the display names of the variants, used as a
	// prefix of each series label.
	Labels []string

	// X and Y name the coordinates of each point. Each is either a
	// reduced column or a numeric group key field.
	X, Y string

	Styles *StyleMap
}

// Scatter builds a scatter panel from tab. There is one path per
// distinct (series key, variant) pair, connecting its points in X
// order.
func Scatter(tab *benchtab.Table, opts ScatterOptions) (*Panel, error) {
	if opts.SeriesBy == nil {
		return nil, fmt.Errorf("scatter panel %q has no series fields", opts.Title)
	}
	panel := &Panel{
		Title:  opts.Title,
		XLabel: opts.XLabel,
		YLabel: opts.YLabel,
		Mode:   ModeScatter,
		X:      opts.X,
		Y:      opts.Y,
	}

	variants := opts.Variants
	variantIdx := make(map[string]int)
	for i, v := range variants {
		variantIdx[v] = i
	}
	if len(variants) == 0 && opts.Variant != "" {
		seen := make(map[string]bool)
		for _, p := range tab.Points {
			if v, ok := p.Key.Get(opts.Variant); ok && !seen[v] {
				seen[v] = true
				variants = append(variants, v)
			}
		}
		sort.Strings(variants)
		for i, v := range variants {
			variantIdx[v] = i
		}
	}

	type pathKey struct {
		series  benchproc.Key
		variant int
	}
	paths := make(map[pathKey]*Series)
	var order []pathKey
	var keys []benchproc.Key
	for _, p := range tab.Points {
		vi := 0
		if opts.Variant != "" {
			v, _ := p.Key.Get(opts.Variant)
			var ok bool
			if vi, ok = variantIdx[v]; !ok {
				continue
			}
		}
		x, ok, err := coord(p, opts.X)
		if err != nil {
			return nil, err
		} else if !ok {
			continue
		}
		y, ok, err := coord(p, opts.Y)
		if err != nil {
			return nil, err
		} else if !ok {
			continue
		}

		pk := pathKey{opts.SeriesBy.Project(p.Key), vi}
		s := paths[pk]
		if s == nil {
			s = &Series{Key: pk.series}
			paths[pk] = s
			order = append(order, pk)
			keys = append(keys, pk.series)
		}
		s.Points = append(s.Points, XY{x, y})
	}
	if len(order) == 0 {
		panel.Empty = true
		return panel, &EmptyGroupError{Panel: opts.Title, Y: opts.Y}
	}

	styles := opts.Styles
	if styles == nil {
		styles = NewStyleMap(keys)
	}
	slot := func(k benchproc.Key) int {
		st, _ := styles.Style(k)
		return st.Slot
	}
	sort.SliceStable(order, func(i, j int) bool {
		si, sj := slot(order[i].series), slot(order[j].series)
		if si != sj {
			return si < sj
		}
		return order[i].variant < order[j].variant
	})
	for _, pk := range order {
		s := paths[pk]
		sortByX(s.Points)
		if err := s.setStyle(styles, ""); err != nil {
			return nil, err
		}
		s.Style.Shape = variantShape(pk.variant)
		s.Style.Dashes = plotutil.Dashes(pk.variant)
		if opts.Variant != "" {
			name := variants[pk.variant]
			if pk.variant < len(opts.Labels) && opts.Labels[pk.variant] != "" {
				name = opts.Labels[pk.variant]
			}
			s.Label = name + " - " + s.Label
		}
		panel.Series = append(panel.Series, s)
	}
	return panel, nil
}

// coord returns the coordinate called name of p: the mean of a
// reduced column, or else a numeric group key field.
func coord(p *benchtab.Point, name string) (float64, bool, error) {
	if m, ok := p.Mean(name); ok {
		return m, true, nil
	}
	if _, ok := p.Key.Get(name); !ok {
		return 0, false, nil
	}
	x, err := number(p.Key, name)
	return x, err == nil, err
}
