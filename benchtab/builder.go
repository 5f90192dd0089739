// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchtab aggregates benchmark records into points: one
// point per distinct group key, carrying the mean of each reduced
// column.
package benchtab

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/aclements/go-moremath/stats"
	"github.com/knapsack-heuristics/benchviz/benchcsv"
	"github.com/knapsack-heuristics/benchviz/benchproc"
)

// Options configures a Builder.
type Options struct {
	// Reduce lists the numeric columns to average within each
	// group. If empty, it defaults to whichever of "value" and
	// "time" the records' schema declares.
	Reduce []string

	// Residue, if non-nil, projects the fields that the group key
	// hides. Points whose records differ in these fields get a
	// warning.
	Residue *benchproc.Projection

	// Filter, if non-nil, drops records before they are grouped.
	Filter *benchproc.Filter
}

// A Builder collects records into groups.
type Builder struct {
	groupBy *benchproc.Projection
	opts    Options
	reduce  []string

	// groups maps from group key to accumulator. order is the
	// order in which keys were first seen.
	groups map[benchproc.Key]*builderPoint
	order  []benchproc.Key
}

type builderPoint struct {
	n      int
	fields []accum // Parallel to Builder.reduce
	// residue is the set of residue keys mapped to this point.
	residue map[benchproc.Key]struct{}
}

type accum struct {
	n  int
	xs []float64
}

// NewBuilder returns a Builder that groups records by groupBy.
func NewBuilder(groupBy *benchproc.Projection, opts Options) *Builder {
	b := &Builder{
		groupBy: groupBy,
		opts:    opts,
		groups:  make(map[benchproc.Key]*builderPoint),
	}
	if len(opts.Reduce) > 0 {
		b.reduce = append([]string(nil), opts.Reduce...)
	}
	return b
}

// Add adds rec to the group named by its key. Records rejected by
// the Builder's filter are ignored.
func (b *Builder) Add(rec *benchcsv.Record) {
	if !b.opts.Filter.Match(rec) {
		return
	}
	if b.reduce == nil {
		b.reduce = defaultReduce(rec.Schema())
	}

	key := b.groupBy.Project(rec)
	p := b.groups[key]
	if p == nil {
		p = &builderPoint{fields: make([]accum, len(b.reduce))}
		if b.opts.Residue != nil {
			p.residue = make(map[benchproc.Key]struct{})
		}
		b.groups[key] = p
		b.order = append(b.order, key)
	}

	p.n++
	for i, name := range b.reduce {
		x, ok := rec.Float(name)
		if !ok {
			continue
		}
		a := &p.fields[i]
		a.n++
		a.xs = append(a.xs, x)
	}
	if p.residue != nil {
		p.residue[b.opts.Residue.Project(rec)] = struct{}{}
	}
}

// AddTable adds every record of t.
func (b *Builder) AddTable(t *benchcsv.Table) {
	for _, rec := range t.Records {
		b.Add(rec)
	}
}

func defaultReduce(s *benchcsv.Schema) []string {
	reduce := []string{}
	for _, name := range []string{benchcsv.Value, benchcsv.Time} {
		if s.Has(name) {
			reduce = append(reduce, name)
		}
	}
	return reduce
}

// ToTable finalizes the Builder into a Table. Points appear in the
// order their keys were first seen, or in benchproc.SortKeys order if
// sort is true.
func (b *Builder) ToTable(sort bool) *Table {
	keys := append([]benchproc.Key(nil), b.order...)
	if sort {
		benchproc.SortKeys(keys)
	}

	t := &Table{
		GroupBy: b.groupBy,
		Reduce:  append([]string(nil), b.reduce...),
		Points:  make([]*Point, 0, len(keys)),
	}
	for _, key := range keys {
		bp := b.groups[key]
		p := &Point{Key: key, N: bp.n, Fields: make(map[string]Summary)}
		for i, name := range b.reduce {
			if s, ok := summarize(&bp.fields[i]); ok {
				p.Fields[name] = s
			}
		}
		if w := residueWarning(bp.residue); w != nil {
			p.Warnings = append(p.Warnings, w)
			t.Warnings = append(t.Warnings, fmt.Errorf("%s: %w", key, w))
		}
		t.Points = append(t.Points, p)
	}
	return t
}

func summarize(a *accum) (Summary, bool) {
	if a.n == 0 {
		return Summary{}, false
	}
	// Reduce in sorted order so the result doesn't depend on the
	// order records were added in.
	xs := slices.Clone(a.xs)
	slices.Sort(xs)
	sample := stats.Sample{Xs: xs, Sorted: true}
	lo, hi := sample.Bounds()
	return Summary{
		N:      a.n,
		Mean:   sum(xs) / float64(a.n),
		Min:    lo,
		Max:    hi,
		StdDev: sample.StdDev(),
	}, true
}

// sum adds xs with Neumaier's compensated summation.
func sum(xs []float64) float64 {
	var s, c float64
	for _, x := range xs {
		t := s + x
		if math.Abs(s) >= math.Abs(x) {
			c += (s - t) + x
		} else {
			c += (x - t) + s
		}
		s = t
	}
	return s + c
}

func residueWarning(residue map[benchproc.Key]struct{}) error {
	if len(residue) < 2 {
		return nil
	}
	keys := make([]benchproc.Key, 0, len(residue))
	for k := range residue {
		keys = append(keys, k)
	}
	benchproc.SortKeys(keys)
	nsk := benchproc.NonSingularFields(keys)
	if len(nsk) == 0 {
		return nil
	}
	var warn strings.Builder
	warn.WriteString("points vary in ")
	for i, field := range nsk {
		if i > 0 {
			warn.WriteString(", ")
		}
		warn.WriteString(field.Name)
	}
	return errors.New(warn.String())
}

// pctRange returns the standard deviation of s as a percentage of
// its mean.
func (s Summary) pctRange() (float64, bool) {
	if s.N < 2 || s.Mean == 0 || math.IsNaN(s.StdDev) {
		return 0, false
	}
	return 100 * s.StdDev / math.Abs(s.Mean), true
}
