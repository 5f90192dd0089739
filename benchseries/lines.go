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

// LineOptions configures Lines.
type LineOptions struct {
	Title, XLabel, YLabel string

	// X is the swept parameter. It must be a numeric field of the
	// table's group key.
	X string

	// SeriesBy projects the group key onto the fields that
	// distinguish one line from another. It must be parsed from
	// the same schema as the table's group key. If nil, every point
	// belongs to a single line.
	SeriesBy *benchproc.Projection

	// Y is the reduced column to plot.
	Y string

	// Label is a template for series labels in which "{field}" is
	// replaced by that field's value. If empty, labels are the
	// series key values, formatted as "first (rest, ...)".
	Label string

	// Styles, if non-nil, gives the style of each series key.
	// Otherwise a StyleMap is built from the series keys in the
	// table.
	Styles *StyleMap
}

// Lines builds a line panel from tab. Each distinct series key gets
// one Series, whose points are sorted by X. Points with equal X keep
// their order in tab.
//
// If tab has no point with a Y value, Lines returns an Empty panel
// and an *EmptyGroupError.
func Lines(tab *benchtab.Table, opts LineOptions) (*Panel, error) {
	panel := &Panel{
		Title:  opts.Title,
		XLabel: opts.XLabel,
		YLabel: opts.YLabel,
		Mode:   ModeLine,
		X:      opts.X,
		Y:      opts.Y,
	}

	series := make(map[benchproc.Key]*Series)
	var keys []benchproc.Key
	for _, p := range tab.Points {
		y, ok := p.Mean(opts.Y)
		if !ok {
			continue
		}
		x, err := number(p.Key, opts.X)
		if err != nil {
			return nil, err
		}
		var sk benchproc.Key
		if opts.SeriesBy != nil {
			sk = opts.SeriesBy.Project(p.Key)
		}
		s := series[sk]
		if s == nil {
			s = &Series{Key: sk}
			series[sk] = s
			keys = append(keys, sk)
		}
		s.Points = append(s.Points, XY{x, y})
	}
	if len(keys) == 0 {
		panel.Empty = true
		return panel, &EmptyGroupError{Panel: opts.Title, Y: opts.Y}
	}

	styles := opts.Styles
	if styles == nil && opts.SeriesBy != nil {
		styles = NewStyleMap(keys)
	}
	for _, k := range keys {
		s := series[k]
		sortByX(s.Points)
		if err := s.setStyle(styles, opts.Label); err != nil {
			return nil, err
		}
		panel.Series = append(panel.Series, s)
	}
	sort.SliceStable(panel.Series, func(i, j int) bool {
		return panel.Series[i].Style.Slot < panel.Series[j].Style.Slot
	})
	return panel, nil
}

// setStyle looks up the style and label of s.
func (s *Series) setStyle(styles *StyleMap, label string) error {
	if s.Key.IsZero() {
		// A single, unlabeled series.
		s.Style = slotStyle(0)
		s.Label = label
		return nil
	}
	st, ok := styles.Style(s.Key)
	if !ok {
		return fmt.Errorf("series %s has no style", s.Key)
	}
	s.Style = st
	if label != "" {
		s.Label = expandLabel(label, s.Key)
	} else {
		s.Label = defaultLabel(s.Key)
	}
	return nil
}
