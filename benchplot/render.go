// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchplot draws benchseries charts with gonum/plot and
// shows them on a Display.
package benchplot

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/knapsack-heuristics/benchviz/benchseries"
	"github.com/knapsack-heuristics/benchviz/benchunit"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Default figure dimensions.
const (
	DefaultWidth       = 10 * vg.Inch
	DefaultPanelHeight = 4 * vg.Inch
)

const (
	pointRadius = 3
	titlePad    = 2 * vg.Millimeter
)

// A Figure is a rendered chart, ready to be drawn on any canvas.
type Figure struct {
	Title         string
	Layout        benchseries.Layout
	Width, Height vg.Length

	panels []*panelPlot
}

// panelPlot is one drawn panel and the plotters it holds.
type panelPlot struct {
	*plot.Plot
	bars   []*plotter.BarChart
	lines  []*plotter.Line
	legend int
	noData bool
}

// Render lays out every panel of c. It fails only if a series cannot
// be drawn; empty panels render as blank axes labeled "no data".
func Render(c *benchseries.Chart) (*Figure, error) {
	if len(c.Panels) == 0 {
		return nil, fmt.Errorf("chart %q has no panels", c.Title)
	}
	f := &Figure{
		Title:  c.Title,
		Layout: c.Layout,
		Width:  DefaultWidth,
		Height: DefaultPanelHeight * vg.Length(len(c.Panels)),
	}
	if c.Source != "" && !strings.Contains(f.Title, c.Source) {
		if f.Title == "" {
			f.Title = c.Source
		} else {
			f.Title += " (" + c.Source + ")"
		}
	}

	for _, p := range c.Panels {
		pp, err := f.newPanel(p)
		if err != nil {
			return nil, fmt.Errorf("panel %q: %w", p.Title, err)
		}
		f.panels = append(f.panels, pp)
	}

	if c.Layout == benchseries.LayoutStacked {
		// Stacked panels share one x range.
		xmin, xmax := math.Inf(1), math.Inf(-1)
		for _, pp := range f.panels {
			if pp.noData {
				continue
			}
			xmin, xmax = math.Min(xmin, pp.X.Min), math.Max(xmax, pp.X.Max)
		}
		if xmin <= xmax {
			for _, pp := range f.panels {
				pp.X.Min, pp.X.Max = xmin, xmax
			}
		}
	}
	return f, nil
}

func (f *Figure) newPanel(p *benchseries.Panel) (*panelPlot, error) {
	pl := plot.New()
	pl.Title.Text = p.Title
	pl.X.Label.Text = p.XLabel
	pl.Y.Label.Text = p.YLabel
	pl.Legend.Top = true
	pl.Add(plotter.NewGrid())
	pp := &panelPlot{Plot: pl}

	if p.Empty || len(p.Series) == 0 {
		labels, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    plotter.XYs{{X: 0.5, Y: 0.5}},
			Labels: []string{"no data"},
		})
		if err != nil {
			return nil, err
		}
		pl.Add(labels)
		pl.X.Min, pl.X.Max = 0, 1
		pl.Y.Min, pl.Y.Max = 0, 1
		pp.noData = true
		return pp, nil
	}

	switch p.Mode {
	case benchseries.ModeLine, benchseries.ModeScatter:
		for _, s := range p.Series {
			xys := make(plotter.XYs, len(s.Points))
			for i, pt := range s.Points {
				xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
			}
			l, sc, err := plotter.NewLinePoints(xys)
			if err != nil {
				return nil, err
			}
			if s.Style.Color != nil {
				l.Color = s.Style.Color
				sc.Color = s.Style.Color
			}
			l.Dashes = s.Style.Dashes
			if s.Style.Shape != nil {
				sc.Shape = s.Style.Shape
			}
			sc.Radius = vg.Points(pointRadius)
			pl.Add(l, sc)
			pp.lines = append(pp.lines, l)
			if s.Label != "" {
				pl.Legend.Add(s.Label, l, sc)
				pp.legend++
			}
		}

	case benchseries.ModeBar:
		// Bars of one key sit side by side, centered on the key's
		// integer x position.
		n := max(len(p.XTicks), 1)
		w := min(vg.Points(20), f.Width*0.35/vg.Length(n))
		for i, s := range p.Series {
			vals := make(plotter.Values, len(s.Points))
			for j, pt := range s.Points {
				vals[j] = pt.Y
			}
			bc, err := plotter.NewBarChart(vals, w)
			if err != nil {
				return nil, err
			}
			if s.Style.Color != nil {
				bc.Color = s.Style.Color
			}
			bc.LineStyle.Width = 0
			bc.Offset = w * vg.Length(2*i-len(p.Series)+1) / 2
			pl.Add(bc)
			pp.bars = append(pp.bars, bc)
			if s.Label != "" {
				pl.Legend.Add(s.Label, bc)
				pp.legend++
			}
		}
		pl.NominalX(p.XTicks...)
		pl.X.Tick.Label.Rotation = -math.Pi / 8
		pl.X.Tick.Label.YAlign = draw.YTop
		pl.X.Tick.Label.XAlign = draw.XLeft

	default:
		return nil, fmt.Errorf("unknown panel mode %v", p.Mode)
	}

	if p.Mode != benchseries.ModeBar && benchunit.ClassOf(p.X) == benchunit.Seconds {
		pl.X.Tick.Marker = unitTicks{benchunit.Seconds}
	}
	if benchunit.ClassOf(p.Y) == benchunit.Seconds {
		pl.Y.Tick.Marker = unitTicks{benchunit.Seconds}
	}
	return pp, nil
}

// Draw draws f on c.
func (f *Figure) Draw(c draw.Canvas) {
	if f.Title != "" {
		sty := plot.New().Title.TextStyle
		sty.XAlign = draw.XCenter
		sty.YAlign = draw.YTop
		c.FillText(sty, vg.Point{X: c.Center().X, Y: c.Max.Y}, f.Title)
		c = draw.Crop(c, 0, 0, 0, -sty.Height(f.Title)-titlePad)
	}

	tiles := draw.Tiles{
		Rows:      len(f.panels),
		Cols:      1,
		PadTop:    titlePad,
		PadBottom: titlePad,
		PadLeft:   titlePad,
		PadRight:  titlePad,
		PadY:      4 * vg.Millimeter,
	}
	if f.Layout == benchseries.LayoutStacked {
		rows := make([][]*plot.Plot, len(f.panels))
		for i, pp := range f.panels {
			rows[i] = []*plot.Plot{pp.Plot}
		}
		canvases := plot.Align(rows, tiles, c)
		for i, pp := range f.panels {
			pp.Draw(canvases[i][0])
		}
		return
	}
	for i, pp := range f.panels {
		pp.Draw(tiles.At(c, 0, i))
	}
}

// Formats lists the formats Encode supports.
var Formats = []string{"png", "svg", "pdf"}

// Encode writes f to w in the given format, one of Formats.
func (f *Figure) Encode(w io.Writer, format string) error {
	var c vg.CanvasWriterTo
	switch format {
	case "png":
		c = vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(f.Width, f.Height), vgimg.UseDPI(96), vgimg.UseBackgroundColor(color.White))}
	case "svg":
		c = vgsvg.New(f.Width, f.Height)
	case "pdf":
		c = vgpdf.New(f.Width, f.Height)
	default:
		return fmt.Errorf("unknown image format %q", format)
	}
	f.Draw(draw.New(c))
	_, err := c.WriteTo(w)
	return err
}

// Image rasterizes f to an image of the given size in pixels,
// stretching it if the aspect ratio differs.
func (f *Figure) Image(width, height int) image.Image {
	// At 72 DPI one pixel is one point.
	c := vgimg.NewWith(vgimg.UseWH(vg.Length(width), vg.Length(height)), vgimg.UseDPI(72), vgimg.UseBackgroundColor(color.White))
	f.Draw(draw.New(c))
	return c.Image()
}
