// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"github.com/knapsack-heuristics/benchviz/benchproc"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A StyleMap assigns each distinct series key a fixed slot in the
// palette. Keys are sorted once, so the same set of keys always gets
// the same assignment regardless of the order they were seen in.
//
// A StyleMap is read-only once built and may be shared by every panel
// of a chart, or by sibling charts, so a key keeps its color across
// them.
type StyleMap struct {
	keys  []benchproc.Key
	slots map[benchproc.Key]int
}

// NewStyleMap returns a StyleMap over the distinct keys in keys.
// All keys must come from the same Projection.
func NewStyleMap(keys []benchproc.Key) *StyleMap {
	m := &StyleMap{slots: make(map[benchproc.Key]int)}
	for _, k := range keys {
		if _, ok := m.slots[k]; !ok {
			m.slots[k] = -1
			m.keys = append(m.keys, k)
		}
	}
	benchproc.SortKeys(m.keys)
	for i, k := range m.keys {
		m.slots[k] = i
	}
	return m
}

// Len returns the number of keys in m.
func (m *StyleMap) Len() int {
	return len(m.keys)
}

// Keys returns the keys of m in slot order.
func (m *StyleMap) Keys() []benchproc.Key {
	return append([]benchproc.Key(nil), m.keys...)
}

// Style returns the style of key k. The palette is cyclic, so slots
// beyond its length reuse earlier colors. It reports false if k is not
// in m.
func (m *StyleMap) Style(k benchproc.Key) (Style, bool) {
	slot, ok := m.slots[k]
	if !ok {
		return Style{Slot: -1, Color: plotutil.Color(0), Shape: plotutil.Shape(0)}, false
	}
	return slotStyle(slot), true
}

func slotStyle(slot int) Style {
	return Style{
		Slot:   slot,
		Color:  plotutil.Color(slot),
		Shape:  plotutil.Shape(slot),
		Dashes: plotutil.Dashes(0),
	}
}

// dashed is the line pattern of secondary series, such as the time
// panel of a stacked chart.
var dashed = plotutil.Dashes(1)

// variantShape returns the marker of the i'th variant of a scatter
// panel. The first two are a circle and a heavy cross.
func variantShape(i int) draw.GlyphDrawer {
	switch i {
	case 0:
		return draw.CircleGlyph{}
	case 1:
		return CrossGlyph{}
	}
	return plotutil.Shape(i)
}

const cosπover4 = vg.Length(.707106781202420)

// CrossGlyph is a glyph that draws a big X.
// This version draws a heavier X than draw.CrossGlyph.
type CrossGlyph struct{}

// DrawGlyph implements the draw.GlyphDrawer interface.
func (CrossGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: vg.Points(1.5)})
	r := sty.Radius * cosπover4
	p := make(vg.Path, 0, 2)
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y + r})
	c.Stroke(p)
	p = p[:0]
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y - r})
	c.Stroke(p)
}
