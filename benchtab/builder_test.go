// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/knapsack-heuristics/benchviz/benchcsv"
	"github.com/knapsack-heuristics/benchviz/benchproc"
)

var gaSchema = benchcsv.MustNewSchema(benchcsv.PopSize, benchcsv.MutationRate, benchcsv.Generations, benchcsv.Value, benchcsv.Time)

const gaHeader = "filename,type,pop_size,mutation_rate,generations,value,time\n"

func load(t *testing.T, rows string) *benchcsv.Table {
	t.Helper()
	tab, err := benchcsv.Load(strings.NewReader(gaHeader+rows), "test.csv", gaSchema)
	if err != nil {
		t.Fatal(err)
	}
	return tab
}

func parseProj(t *testing.T, expr string) *benchproc.Projection {
	t.Helper()
	pp := benchproc.ProjectionParser{Schema: gaSchema}
	proj, err := pp.Parse(expr, nil)
	if err != nil {
		t.Fatal(err)
	}
	return proj
}

func build(t *testing.T, recs []*benchcsv.Record, groupBy string, opts Options, sort bool) *Table {
	t.Helper()
	b := NewBuilder(parseProj(t, groupBy), opts)
	for _, rec := range recs {
		b.Add(rec)
	}
	return b.ToTable(sort)
}

// means returns the means of field in tab, keyed by the string form of
// each point's key.
func means(tab *Table, field string) map[string]float64 {
	m := make(map[string]float64)
	for _, p := range tab.Points {
		if v, ok := p.Mean(field); ok {
			m[p.Key.StringValues()] = v
		}
	}
	return m
}

func checkMeans(t *testing.T, tab *Table, field string, want map[string]float64) {
	t.Helper()
	got := means(tab, field)
	if len(got) != len(want) {
		t.Errorf("got %d points %v, want %d %v", len(got), got, len(want), want)
	}
	for k, w := range want {
		if g, ok := got[k]; !ok {
			t.Errorf("missing point %s", k)
		} else if math.Abs(g-w) > 1e-9 {
			t.Errorf("point %s: got mean %v, want %v", k, g, w)
		}
	}
}

func TestMeans(t *testing.T) {
	tab := load(t, `knap_50.txt,genetic,50,0.1,500,10,0.5
knap_50.txt,genetic,50,0.1,500,20,0.7
knap_50.txt,genetic,100,0.1,500,30,1.0
`)
	got := build(t, tab.Records, "pop_size,mutation_rate", Options{}, false)
	checkMeans(t, got, "value", map[string]float64{"50 0.1": 15, "100 0.1": 30})
	checkMeans(t, got, "time", map[string]float64{"50 0.1": 0.6, "100 0.1": 1.0})

	if want := []string{"value", "time"}; strings.Join(got.Reduce, ",") != strings.Join(want, ",") {
		t.Errorf("Reduce = %v, want %v", got.Reduce, want)
	}
	p := got.Points[0]
	if p.N != 2 {
		t.Errorf("point %s has N=%d, want 2", p.Key, p.N)
	}
	want := Summary{N: 2, Mean: 15, Min: 10, Max: 20, StdDev: math.Sqrt(50)}
	if s := p.Fields["value"]; s.N != want.N || s.Min != want.Min || s.Max != want.Max || math.Abs(s.StdDev-want.StdDev) > 1e-9 {
		t.Errorf("value summary = %+v, want %+v", s, want)
	}
	if s := got.Points[1].Fields["value"]; s.StdDev != 0 {
		t.Errorf("single-record StdDev = %v, want 0", s.StdDev)
	}
}

func TestDuplicates(t *testing.T) {
	// Identical rows are not deduplicated. Each one counts.
	tab := load(t, `knap_50.txt,genetic,50,0.1,500,10,0.5
knap_50.txt,genetic,50,0.1,500,20,0.7
knap_50.txt,genetic,50,0.1,500,10,0.5
`)
	got := build(t, tab.Records, "pop_size,mutation_rate", Options{}, false)
	checkMeans(t, got, "value", map[string]float64{"50 0.1": 40.0 / 3})
	if got.Points[0].N != 3 {
		t.Errorf("N = %d, want 3", got.Points[0].N)
	}
}

func TestPermutation(t *testing.T) {
	var rows strings.Builder
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&rows, "knap_%d.txt,genetic,%d,0.%d,500,%d.%d,%d.25\n", i%5, 50*(1+i%3), 1+i%2, 1000+i*7, i%10, i%4)
	}
	tab := load(t, rows.String())
	want := build(t, tab.Records, "filename,pop_size,mutation_rate", Options{}, true)

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 10; trial++ {
		recs := append([]*benchcsv.Record(nil), tab.Records...)
		rng.Shuffle(len(recs), func(i, j int) { recs[i], recs[j] = recs[j], recs[i] })
		got := build(t, recs, "filename,pop_size,mutation_rate", Options{}, true)

		if len(got.Points) != len(want.Points) {
			t.Fatalf("got %d points, want %d", len(got.Points), len(want.Points))
		}
		for i := range got.Points {
			if got.Points[i].Key.StringValues() != want.Points[i].Key.StringValues() {
				t.Fatalf("point %d: key %s, want %s", i, got.Points[i].Key, want.Points[i].Key)
			}
		}
		for i, p := range got.Points {
			for _, field := range []string{"value", "time"} {
				if g, w := p.Fields[field], want.Points[i].Fields[field]; g != w {
					t.Errorf("trial %d, point %s: %s summary %+v, want %+v", trial, p.Key, field, g, w)
				}
			}
		}
	}
}

func TestOrderIndependentMean(t *testing.T) {
	check := func(rows string) Summary {
		t.Helper()
		got := build(t, load(t, rows).Records, "pop_size", Options{}, false)
		return got.Points[0].Fields["value"]
	}
	a := check(`knap_50.txt,genetic,50,0.1,500,0.1,1
knap_50.txt,genetic,50,0.1,500,0.2,1
knap_50.txt,genetic,50,0.1,500,0.3,1
`)
	b := check(`knap_50.txt,genetic,50,0.1,500,0.3,1
knap_50.txt,genetic,50,0.1,500,0.2,1
knap_50.txt,genetic,50,0.1,500,0.1,1
`)
	if a != b {
		t.Errorf("summaries differ by input order: %+v vs %+v", a, b)
	}
}

func TestFirstSeenOrder(t *testing.T) {
	tab := load(t, `knap_50.txt,genetic,100,0.1,500,1,1
knap_50.txt,genetic,50,0.1,500,2,1
knap_50.txt,genetic,100,0.1,500,3,1
knap_50.txt,genetic,75,0.1,500,4,1
`)
	check := func(sort bool, want string) {
		t.Helper()
		got := build(t, tab.Records, "pop_size", Options{}, sort)
		var keys []string
		for _, k := range got.Keys() {
			keys = append(keys, k.StringValues())
		}
		if strings.Join(keys, " ") != want {
			t.Errorf("sort=%v: got keys %v, want %s", sort, keys, want)
		}
	}
	check(false, "100 50 75")
	check(true, "50 75 100")
}

func TestMalformedRow(t *testing.T) {
	tab := load(t, `knap_50.txt,genetic,50,0.1,500,10,0.5
knap_50.txt,genetic,50,0.1,500,NaN_text,0.7
knap_50.txt,genetic,50,0.1,500,20,0.9
`)
	if len(tab.Dropped) != 1 {
		t.Fatalf("got %d dropped rows, want 1", len(tab.Dropped))
	}
	got := build(t, tab.Records, "pop_size", Options{}, false)
	checkMeans(t, got, "value", map[string]float64{"50": 15})
	checkMeans(t, got, "time", map[string]float64{"50": 0.7})
}

func TestUndeclaredReduce(t *testing.T) {
	// k_perturbation isn't part of the GA schema, so no record
	// contributes to it.
	tab := load(t, "knap_50.txt,genetic,50,0.1,500,10,0.5\n")
	got := build(t, tab.Records, "pop_size", Options{Reduce: []string{benchcsv.Value, benchcsv.KPerturbation}}, false)
	p := got.Points[0]
	if _, ok := p.Mean(benchcsv.KPerturbation); ok {
		t.Errorf("point has a %s mean", benchcsv.KPerturbation)
	}
	if m, ok := p.Mean(benchcsv.Value); !ok || m != 10 {
		t.Errorf("value mean = %v, %v; want 10, true", m, ok)
	}
}

func TestFilter(t *testing.T) {
	tab := load(t, `knap_50.txt,genetic,50,0.1,500,10,0.5
knap_50.txt,hybrid,50,0.1,500,90,0.5
knap_50.txt,genetic,50,0.1,500,20,0.5
`)
	f, err := benchproc.NewFilter("type:genetic")
	if err != nil {
		t.Fatal(err)
	}
	got := build(t, tab.Records, "pop_size", Options{Filter: f}, false)
	checkMeans(t, got, "value", map[string]float64{"50": 15})
}

func TestResidue(t *testing.T) {
	tab := load(t, `knap_50.txt,genetic,50,0.1,500,10,0.5
knap_50.txt,genetic,50,0.1,1000,20,0.5
knap_50.txt,genetic,100,0.1,500,30,0.5
`)
	pp := benchproc.ProjectionParser{Schema: gaSchema}
	groupBy, err := pp.Parse("pop_size,mutation_rate", nil)
	if err != nil {
		t.Fatal(err)
	}
	b := NewBuilder(groupBy, Options{Residue: pp.Residue(benchcsv.Value, benchcsv.Time)})
	b.AddTable(tab)
	got := b.ToTable(false)

	if len(got.Points[0].Warnings) != 1 || got.Points[0].Warnings[0].Error() != "points vary in generations" {
		t.Errorf("point %s warnings = %v", got.Points[0].Key, got.Points[0].Warnings)
	}
	if len(got.Points[1].Warnings) != 0 {
		t.Errorf("point %s warnings = %v, want none", got.Points[1].Key, got.Points[1].Warnings)
	}
	if len(got.Warnings) != 1 || got.Warnings[0].Error() != "pop_size:50 mutation_rate:0.1: points vary in generations" {
		t.Errorf("table warnings = %v", got.Warnings)
	}
}

func TestSelect(t *testing.T) {
	tab := load(t, `knap_50.txt,genetic,50,0.1,500,10,0.5
knap_50.txt,genetic,100,0.1,500,30,0.5
knap_50.txt,genetic,200,0.1,500,50,0.5
`)
	all := build(t, tab.Records, "pop_size", Options{}, false)
	f, err := benchproc.NewFilter("pop_size>=100")
	if err != nil {
		t.Fatal(err)
	}
	got := all.Select(f)
	checkMeans(t, got, "value", map[string]float64{"100": 30, "200": 50})
	if len(all.Points) != 3 {
		t.Errorf("Select modified its receiver")
	}
	if got := all.Select(nil); len(got.Points) != 3 {
		t.Errorf("Select(nil) kept %d points, want 3", len(got.Points))
	}
}

// TestAggOracle checks the Builder's means against go-gg's
// aggregation of the same data.
func TestAggOracle(t *testing.T) {
	var rows strings.Builder
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&rows, "knap_%d.txt,genetic,%d,0.%d,500,%d,%.3f\n", rng.Intn(3), 50*(1+rng.Intn(4)), 1+rng.Intn(3), 900+rng.Intn(400), rng.Float64()*3)
	}
	tab := load(t, rows.String())
	got := build(t, tab.Records, "filename,pop_size", Options{}, false)

	var files, pops []string
	var values, times []float64
	for _, rec := range tab.Records {
		file, _ := rec.Get(benchcsv.Filename)
		pop, _ := rec.Get(benchcsv.PopSize)
		v, _ := rec.Float(benchcsv.Value)
		tm, _ := rec.Float(benchcsv.Time)
		files, pops = append(files, file), append(pops, pop)
		values, times = append(values, v), append(times, tm)
	}
	gt := new(table.Builder).Add("filename", files).Add("pop_size", pops).Add("value", values).Add("time", times).Done()
	agg := table.Flatten(ggstat.Agg("filename", "pop_size")(ggstat.AggMean("value", "time")).F(gt))

	aggFiles := agg.MustColumn("filename").([]string)
	aggPops := agg.MustColumn("pop_size").([]string)
	wantValue := make(map[string]float64)
	wantTime := make(map[string]float64)
	for i, mv := range agg.MustColumn("mean value").([]float64) {
		k := aggFiles[i] + " " + aggPops[i]
		wantValue[k] = mv
		wantTime[k] = agg.MustColumn("mean time").([]float64)[i]
	}
	checkMeans(t, got, "value", wantValue)
	checkMeans(t, got, "time", wantTime)
}
