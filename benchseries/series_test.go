// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/knapsack-heuristics/benchviz/benchcsv"
	"github.com/knapsack-heuristics/benchviz/benchproc"
	"github.com/knapsack-heuristics/benchviz/benchtab"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg/draw"
)

type fixture struct {
	pp  benchproc.ProjectionParser
	tab *benchcsv.Table
}

func newFixture(t *testing.T, columns []string, csv string) *fixture {
	t.Helper()
	schema := benchcsv.MustNewSchema(columns...)
	tab, err := benchcsv.Load(strings.NewReader(csv), "test.csv", schema)
	if err != nil {
		t.Fatal(err)
	}
	return &fixture{benchproc.ProjectionParser{Schema: schema}, tab}
}

func (f *fixture) proj(t *testing.T, expr string) *benchproc.Projection {
	t.Helper()
	p, err := f.pp.Parse(expr, nil)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func (f *fixture) aggregate(t *testing.T, groupBy string) *benchtab.Table {
	t.Helper()
	b := benchtab.NewBuilder(f.proj(t, groupBy), benchtab.Options{})
	b.AddTable(f.tab)
	return b.ToTable(false)
}

const gaCSV = `filename,type,pop_size,mutation_rate,value,time
knap_50.txt,genetic,100,0.1,1210,0.9
knap_50.txt,genetic,50,0.1,1180,0.5
knap_50.txt,genetic,50,0.05,1150,0.5
knap_50.txt,genetic,100,0.05,1190,0.9
knap_50.txt,genetic,75,0.1,1200,0.7
`

func gaFixture(t *testing.T) *fixture {
	return newFixture(t, []string{benchcsv.PopSize, benchcsv.MutationRate, benchcsv.Value, benchcsv.Time}, gaCSV)
}

func TestStyleMap(t *testing.T) {
	f := gaFixture(t)
	proj := f.proj(t, "pop_size")
	var keys []benchproc.Key
	for _, rec := range f.tab.Records {
		keys = append(keys, proj.Project(rec))
	}

	m := NewStyleMap(keys)
	if m.Len() != 3 {
		t.Fatalf("got %d keys, want 3", m.Len())
	}
	// Numeric fields sort numerically.
	for i, want := range []string{"50", "75", "100"} {
		k := m.Keys()[i]
		if k.StringValues() != want {
			t.Errorf("slot %d has key %s, want %s", i, k, want)
		}
		st, ok := m.Style(k)
		if !ok || st.Slot != i || st.Color != plotutil.Color(i) {
			t.Errorf("key %s: got style %+v, %v", k, st, ok)
		}
	}

	// The assignment doesn't depend on the order keys are seen in.
	rev := make([]benchproc.Key, len(keys))
	for i, k := range keys {
		rev[len(keys)-1-i] = k
	}
	m2 := NewStyleMap(rev)
	for _, k := range keys {
		s1, _ := m.Style(k)
		s2, _ := m2.Style(k)
		if s1.Slot != s2.Slot {
			t.Errorf("key %s: slot %d in one map, %d in the other", k, s1.Slot, s2.Slot)
		}
	}

	if _, ok := m.Style(benchproc.Key{}); ok {
		t.Errorf("zero key has a style")
	}
}

func TestLines(t *testing.T) {
	f := gaFixture(t)
	tab := f.aggregate(t, "pop_size,mutation_rate")
	panel, err := Lines(tab, LineOptions{
		Title:    "Value by population size",
		X:        benchcsv.PopSize,
		SeriesBy: f.proj(t, "mutation_rate"),
		Y:        benchcsv.Value,
		Label:    "Mutation {mutation_rate}",
	})
	if err != nil {
		t.Fatal(err)
	}
	if panel.Mode != ModeLine || panel.Empty {
		t.Errorf("got mode %v, empty %v", panel.Mode, panel.Empty)
	}

	var got []string
	for _, s := range panel.Series {
		got = append(got, fmt.Sprintf("%s %v", s.Label, s.Points))
	}
	want := []string{
		"Mutation 0.05 [{50 1150} {100 1190}]",
		"Mutation 0.1 [{50 1180} {75 1200} {100 1210}]",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got series\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
	if panel.Legend() != 2 {
		t.Errorf("got %d legend entries, want 2", panel.Legend())
	}
}

func TestLinesNotNumeric(t *testing.T) {
	f := gaFixture(t)
	tab := f.aggregate(t, "filename,pop_size")
	if _, err := Lines(tab, LineOptions{X: benchcsv.Filename, Y: benchcsv.Value}); err == nil {
		t.Errorf("want error for non-numeric x field")
	}
	if _, err := Lines(tab, LineOptions{X: benchcsv.MutationRate, Y: benchcsv.Value}); err == nil {
		t.Errorf("want error for x field outside the group key")
	}
}

func TestStackedSharesStyles(t *testing.T) {
	f := newFixture(t, []string{benchcsv.KPerturbation, benchcsv.Value, benchcsv.Time}, `filename,type,k_perturbation,value,time
b.txt,vns_gloutonne,1,10,0.1
a.txt,vns_gloutonne,1,20,0.2
a.txt,vns_gloutonne,2,25,0.3
b.txt,vns_gloutonne,2,12,0.2
`)
	tab := f.aggregate(t, "filename,type,k_perturbation")
	seriesBy := f.proj(t, "filename,type")
	styles := NewStyleMap(projectAll(tab, seriesBy))

	value, err := Lines(tab, LineOptions{X: benchcsv.KPerturbation, SeriesBy: seriesBy, Y: benchcsv.Value, Styles: styles, XLabel: "k"})
	if err != nil {
		t.Fatal(err)
	}
	time, err := Lines(tab, LineOptions{X: benchcsv.KPerturbation, SeriesBy: seriesBy, Y: benchcsv.Time, Styles: styles})
	if err != nil {
		t.Fatal(err)
	}
	chart := Stacked("VNS", value, time)
	if chart.Layout != LayoutStacked || len(chart.Panels) != 2 {
		t.Fatalf("got layout %v with %d panels", chart.Layout, len(chart.Panels))
	}
	if value.XLabel != "" || time.XLabel != "k" {
		t.Errorf("x label should move to the bottom panel; got %q, %q", value.XLabel, time.XLabel)
	}
	for i := range value.Series {
		v, tm := value.Series[i], time.Series[i]
		if v.Label != tm.Label || v.Style.Color != tm.Style.Color {
			t.Errorf("series %d: value %q/%v, time %q/%v", i, v.Label, v.Style.Color, tm.Label, tm.Style.Color)
		}
		if len(v.Style.Dashes) != 0 || len(tm.Style.Dashes) == 0 {
			t.Errorf("series %d: want solid value line and dashed time line", i)
		}
	}
	if got := value.Series[0].Label; got != "a.txt (vns_gloutonne)" {
		t.Errorf("first label %q, want a.txt (vns_gloutonne)", got)
	}
}

func projectAll(tab *benchtab.Table, proj *benchproc.Projection) []benchproc.Key {
	var keys []benchproc.Key
	for _, p := range tab.Points {
		keys = append(keys, proj.Project(p.Key))
	}
	return keys
}

func vnsBars(files int, skip string) string {
	var buf strings.Builder
	buf.WriteString("filename,type,value,time\n")
	for i := 0; i < files; i++ {
		for _, typ := range []string{"vns_gloutonne", "vns_aleatoire"} {
			file := fmt.Sprintf("knap_%d.txt", (i+1)*10)
			if typ+"/"+file == skip {
				continue
			}
			fmt.Fprintf(&buf, "%s,%s,%d,0.5\n", file, typ, 100+i)
		}
	}
	return buf.String()
}

func TestBars(t *testing.T) {
	f := newFixture(t, []string{benchcsv.Value, benchcsv.Time}, vnsBars(5, ""))
	tab := f.aggregate(t, "filename,type")
	panel, err := Bars(tab, BarOptions{
		Key:      f.proj(t, "filename"),
		Variant:  benchcsv.Type,
		Variants: []string{"vns_gloutonne", "vns_aleatoire"},
		Labels:   []string{"VNS greedy", "VNS random"},
		Y:        benchcsv.Value,
	})
	if err != nil {
		t.Fatal(err)
	}
	bars := 0
	for _, s := range panel.Series {
		bars += len(s.Points)
	}
	if bars != 10 {
		t.Errorf("got %d bars, want 10", bars)
	}
	if panel.Legend() != 2 {
		t.Errorf("got %d legend entries, want 2", panel.Legend())
	}
	wantTicks := []string{"knap_10.txt", "knap_20.txt", "knap_30.txt", "knap_40.txt", "knap_50.txt"}
	if !reflect.DeepEqual(panel.XTicks, wantTicks) {
		t.Errorf("got ticks %v, want %v", panel.XTicks, wantTicks)
	}
	if panel.Series[0].Label != "VNS greedy" || panel.Series[0].Style.Slot != 0 || panel.Series[1].Style.Slot != 1 {
		t.Errorf("variants out of order: %+v", panel.Series)
	}
	for i, pt := range panel.Series[1].Points {
		if pt.X != float64(i) || pt.Y != float64(100+i) {
			t.Errorf("bar %d = %v", i, pt)
		}
	}
}

func TestBarsAlignment(t *testing.T) {
	f := newFixture(t, []string{benchcsv.Value, benchcsv.Time}, vnsBars(3, "vns_aleatoire/knap_20.txt"))
	tab := f.aggregate(t, "filename,type")
	_, err := Bars(tab, BarOptions{
		Key:      f.proj(t, "filename"),
		Variant:  benchcsv.Type,
		Variants: []string{"vns_gloutonne", "vns_aleatoire"},
		Y:        benchcsv.Value,
	})
	var ae *AlignmentError
	if !errors.As(err, &ae) {
		t.Fatalf("got %v, want AlignmentError", err)
	}
	if ae.Variant != "vns_aleatoire" || !reflect.DeepEqual(ae.Missing, []string{"knap_20.txt"}) || ae.Extra != nil {
		t.Errorf("got %+v", ae)
	}
	if want := "variant vns_aleatoire does not align with vns_gloutonne: missing knap_20.txt"; err.Error() != want {
		t.Errorf("got %q, want %q", err, want)
	}
}

func TestBarsSingle(t *testing.T) {
	f := gaFixture(t)
	tab := f.aggregate(t, "pop_size")
	panel, err := Bars(tab, BarOptions{Key: f.proj(t, "pop_size"), Y: benchcsv.Value, YLabel: "Mean value"})
	if err != nil {
		t.Fatal(err)
	}
	if len(panel.Series) != 1 || panel.Series[0].Label != "Mean value" {
		t.Fatalf("got %+v", panel.Series)
	}
	if want := []string{"50", "75", "100"}; !reflect.DeepEqual(panel.XTicks, want) {
		t.Errorf("got ticks %v, want %v", panel.XTicks, want)
	}
}

func TestEmpty(t *testing.T) {
	f := gaFixture(t)
	filter, err := benchproc.NewFilter("pop_size>1000")
	if err != nil {
		t.Fatal(err)
	}
	tab := f.aggregate(t, "pop_size,mutation_rate").Select(filter)

	check := func(panel *Panel, err error) {
		t.Helper()
		var ee *EmptyGroupError
		if !errors.As(err, &ee) {
			t.Errorf("got %v, want EmptyGroupError", err)
		}
		if panel == nil || !panel.Empty {
			t.Errorf("want an empty panel, got %+v", panel)
		}
	}
	check(Lines(tab, LineOptions{Title: "t", X: benchcsv.PopSize, SeriesBy: f.proj(t, "mutation_rate"), Y: benchcsv.Value}))
	check(Bars(tab, BarOptions{Key: f.proj(t, "pop_size"), Y: benchcsv.Value}))
	check(Scatter(tab, ScatterOptions{SeriesBy: f.proj(t, "pop_size"), X: benchcsv.Time, Y: benchcsv.Value}))
}

func TestScatter(t *testing.T) {
	f := newFixture(t, []string{benchcsv.VNSIterations, benchcsv.Value, benchcsv.Time}, `filename,type,vns_iterations,value,time
a.txt,vns_aleatoire,100,10,0.4
a.txt,vns_gloutonne,100,12,0.2
a.txt,vns_gloutonne,200,14,0.1
b.txt,vns_gloutonne,100,20,0.5
b.txt,vns_aleatoire,100,18,0.6
`)
	tab := f.aggregate(t, "filename,type,vns_iterations")
	panel, err := Scatter(tab, ScatterOptions{
		SeriesBy: f.proj(t, "filename"),
		Variant:  benchcsv.Type,
		Variants: []string{"vns_gloutonne", "vns_aleatoire"},
		Labels:   []string{"VNS greedy", "VNS random"},
		X:        benchcsv.Time,
		Y:        benchcsv.Value,
	})
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, s := range panel.Series {
		got = append(got, fmt.Sprintf("%s %d %T %v", s.Label, s.Style.Slot, s.Style.Shape, s.Points))
	}
	want := []string{
		"VNS greedy - a.txt 0 draw.CircleGlyph [{0.1 14} {0.2 12}]",
		"VNS random - a.txt 0 benchseries.CrossGlyph [{0.4 10}]",
		"VNS greedy - b.txt 1 draw.CircleGlyph [{0.5 20}]",
		"VNS random - b.txt 1 benchseries.CrossGlyph [{0.6 18}]",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got series\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
	if panel.Series[0].Style.Color != panel.Series[1].Style.Color {
		t.Errorf("variants of one file should share a color")
	}
	if len(panel.Series[0].Style.Dashes) != 0 || len(panel.Series[1].Style.Dashes) == 0 {
		t.Errorf("want a solid first variant and a dashed second variant")
	}
	var _ draw.GlyphDrawer = CrossGlyph{}
}

func TestExpandLabel(t *testing.T) {
	f := gaFixture(t)
	k := f.proj(t, "pop_size,mutation_rate").Project(f.tab.Records[0])
	for tmpl, want := range map[string]string{
		"Pop {pop_size}":                 "Pop 100",
		"{pop_size}/{mutation_rate}":     "100/0.1",
		"{unknown} {pop_size":            "{unknown} {pop_size",
		"no placeholders":                "no placeholders",
		"Mutation {mutation_rate} ({ })": "Mutation 0.1 ({ })",
		"Mutation {mutation_rate:.2f}":   "Mutation 0.10",
		"Pop {pop_size:.1e}":             "Pop 1.0e+02",
		"Pop {pop_size:d}":               "Pop 100",
		"{filename:.2f}":                 "{filename:.2f}",
	} {
		if got := expandLabel(tmpl, k); got != want {
			t.Errorf("expandLabel(%q) = %q, want %q", tmpl, got, want)
		}
	}
	if got := defaultLabel(k); got != "100 (0.1)" {
		t.Errorf("defaultLabel = %q, want 100 (0.1)", got)
	}
}

func TestModeString(t *testing.T) {
	for m, want := range map[Mode]string{ModeLine: "line", ModeBar: "bar", ModeScatter: "scatter", Mode(7): "Mode(7)"} {
		if got := m.String(); got != want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(m), got, want)
		}
	}
	if LayoutSingle == LayoutStacked {
		t.Errorf("layouts must differ")
	}
}
