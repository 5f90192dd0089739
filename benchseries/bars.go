// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"fmt"
	"sort"

	"github.com/knapsack-heuristics/benchviz/benchproc"
	"github.com/knapsack-heuristics/benchviz/benchtab"
)

// BarOptions configures Bars.
type BarOptions struct {
	Title, XLabel, YLabel string

	// Key projects the group key onto the shared x axis, such as
	// the problem instance.
	Key *benchproc.Projection

	// Variant is the group key field that distinguishes one bar
	// set from another, such as the algorithm type. If empty, the
	// panel has a single bar set.
	Variant string

	// Variants lists the variant values to draw, in legend order.
	// If empty, every variant value in the table is drawn, sorted.
	Variants []string

	// Y is the reduced column to plot.
	Y string

	// Labels are the legend labels of the variants. Missing
	// labels default to the variant value.
	Labels []string
}

// Bars builds a grouped bar panel from tab. Each variant gets one
// Series with one bar per key, at x positions 0, 1, ... in sorted key
// order. Every variant must cover exactly the keys of the first
// variant; otherwise Bars returns an *AlignmentError.
func Bars(tab *benchtab.Table, opts BarOptions) (*Panel, error) {
	if opts.Key == nil || len(opts.Key.Fields()) == 0 {
		return nil, fmt.Errorf("bar panel %q has no key", opts.Title)
	}
	panel := &Panel{
		Title:  opts.Title,
		XLabel: opts.XLabel,
		YLabel: opts.YLabel,
		Mode:   ModeBar,
		X:      opts.Key.Fields()[0].Name,
		Y:      opts.Y,
	}

	type bar struct {
		key benchproc.Key
		y   float64
	}
	byVariant := make(map[string][]bar)
	var seen []string
	for _, p := range tab.Points {
		y, ok := p.Mean(opts.Y)
		if !ok {
			continue
		}
		var v string
		if opts.Variant != "" {
			if v, ok = p.Key.Get(opts.Variant); !ok {
				return nil, fmt.Errorf("field %q is not part of the group key %s", opts.Variant, p.Key)
			}
		}
		if _, ok := byVariant[v]; !ok {
			seen = append(seen, v)
		}
		byVariant[v] = append(byVariant[v], bar{opts.Key.Project(p.Key), y})
	}

	variants := opts.Variants
	if len(variants) == 0 {
		variants = seen
		sort.Strings(variants)
	}

	n := 0
	for _, v := range variants {
		n += len(byVariant[v])
	}
	if n == 0 {
		panel.Empty = true
		return panel, &EmptyGroupError{Panel: opts.Title, Y: opts.Y}
	}

	// The first variant's keys define the x axis.
	index := make(map[benchproc.Key]int)
	var keys []benchproc.Key
	for _, b := range byVariant[variants[0]] {
		if _, ok := index[b.key]; ok {
			return nil, fmt.Errorf("several points for bar %s of %s; group by the bar key and variant only", b.key, variantName(variants[0]))
		}
		index[b.key] = -1
		keys = append(keys, b.key)
	}
	benchproc.SortKeys(keys)
	for i, k := range keys {
		index[k] = i
		panel.XTicks = append(panel.XTicks, k.StringValues())
	}

	for vi, v := range variants {
		s := &Series{
			Label:  v,
			Points: make([]XY, len(keys)),
			Style:  slotStyle(vi),
		}
		if vi < len(opts.Labels) && opts.Labels[vi] != "" {
			s.Label = opts.Labels[vi]
		} else if v == "" {
			s.Label = opts.YLabel
		}
		found := make([]bool, len(keys))
		var extra []string
		for _, b := range byVariant[v] {
			i, ok := index[b.key]
			if !ok {
				extra = append(extra, b.key.StringValues())
				continue
			}
			if found[i] {
				return nil, fmt.Errorf("several points for bar %s of %s; group by the bar key and variant only", b.key, variantName(v))
			}
			found[i] = true
			s.Points[i] = XY{float64(i), b.y}
		}
		var missing []string
		for i, ok := range found {
			if !ok {
				missing = append(missing, keys[i].StringValues())
			}
		}
		if len(missing) > 0 || len(extra) > 0 {
			return nil, &AlignmentError{Variant: variantName(v), Base: variantName(variants[0]), Missing: missing, Extra: extra}
		}
		panel.Series = append(panel.Series, s)
	}
	return panel, nil
}

func variantName(v string) string {
	if v == "" {
		return "(none)"
	}
	return v
}
