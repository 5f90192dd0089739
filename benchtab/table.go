// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/knapsack-heuristics/benchviz/benchproc"
	"github.com/knapsack-heuristics/benchviz/benchunit"
	"github.com/knapsack-heuristics/benchviz/internal/texttab"
)

// A Table is the aggregated form of a set of records: one Point per
// distinct group key.
type Table struct {
	// GroupBy is the projection every Point's Key comes from.
	GroupBy *benchproc.Projection

	// Reduce is the list of averaged columns.
	Reduce []string

	// Points is the sequence of aggregated points. Keys are
	// distinct.
	Points []*Point

	// Warnings collects the warnings of every Point, prefixed
	// with its key.
	Warnings []error
}

// A Point is the summary of every record that shares one group key.
type Point struct {
	Key benchproc.Key

	// N is the number of records in this group. It is always at
	// least 1.
	N int

	// Fields maps a reduced column to its summary. A column is
	// absent if no record in the group had a well-formed value for
	// it.
	Fields map[string]Summary

	Warnings []error
}

// Summary describes the values of one column within a Point.
type Summary struct {
	N              int
	Mean, Min, Max float64
	StdDev         float64 // Sample standard deviation; 0 if N is 1
}

// Mean returns the mean of field in p. It reports false if no record
// in p contributed to field.
func (p *Point) Mean(field string) (float64, bool) {
	s, ok := p.Fields[field]
	return s.Mean, ok
}

// Keys returns the key of every point in t, in order.
func (t *Table) Keys() []benchproc.Key {
	keys := make([]benchproc.Key, len(t.Points))
	for i, p := range t.Points {
		keys[i] = p.Key
	}
	return keys
}

// Lookup returns the point with the given key.
func (t *Table) Lookup(key benchproc.Key) (*Point, bool) {
	for _, p := range t.Points {
		if p.Key == key {
			return p, true
		}
	}
	return nil, false
}

// Select returns a table holding only the points whose keys match f.
// Means are not recomputed. A nil f selects every point.
func (t *Table) Select(f *benchproc.Filter) *Table {
	nt := &Table{GroupBy: t.GroupBy, Reduce: t.Reduce}
	for _, p := range t.Points {
		if !f.Match(p.Key) {
			continue
		}
		nt.Points = append(nt.Points, p)
		for _, w := range p.Warnings {
			nt.Warnings = append(nt.Warnings, fmt.Errorf("%s: %w", p.Key, w))
		}
	}
	return nt
}

// scaler returns a common scaler for the means of field.
func (t *Table) scaler(field string) benchunit.Scaler {
	var values []float64
	for _, p := range t.Points {
		if m, ok := p.Mean(field); ok {
			values = append(values, m)
		}
	}
	return benchunit.CommonScale(values, benchunit.ClassOf(field))
}

// ToText renders t as an aligned text table, assuming a fixed-width
// font.
func (t *Table) ToText(w io.Writer) error {
	var o texttab.Table

	// Each reduced column expands to valueCols columns: the mean,
	// the relative spread, and the sample count.
	fields := t.GroupBy.Fields()
	labelCols := max(len(fields), 1)
	const valueCols = 3
	startCol := func(i int) int {
		return labelCols + i*valueCols
	}
	warnCol := startCol(len(t.Reduce))

	var warningList []string
	warningSet := make(map[string]int)
	warn := func(msgs []error) {
		var footnotes []string
		for _, msg := range msgs {
			s := msg.Error()
			i, ok := warningSet[s]
			if !ok {
				i = len(warningList)
				warningSet[s] = i
				warningList = append(warningList, s)
			}
			footnotes = append(footnotes, superscript(i+1))
		}
		if len(footnotes) > 0 {
			o.Col(warnCol).Cell(strings.Join(footnotes, " "))
		}
	}

	// Header.
	o.Row()
	for _, f := range fields {
		o.Cell(f.Name)
	}
	for i, name := range t.Reduce {
		o.Col(startCol(i)).Span(valueCols, name, texttab.Center, texttab.LeftMargin(" │ "))
	}
	o.Rule("─")

	scalers := make([]benchunit.Scaler, len(t.Reduce))
	for i, name := range t.Reduce {
		scalers[i] = t.scaler(name)
	}
	for _, p := range t.Points {
		o.Row()
		for _, f := range fields {
			o.Cell(p.Key.Value(f))
		}
		for i, name := range t.Reduce {
			s, ok := p.Fields[name]
			if !ok {
				o.Col(startCol(i)).Cell("-", texttab.Right, texttab.LeftMargin(" │ "))
				continue
			}
			o.Col(startCol(i)).Cell(scalers[i].Format(s.Mean), texttab.Right, texttab.LeftMargin(" │ "))
			if pct, ok := s.pctRange(); ok {
				o.Cell(fmt.Sprintf("%.0f%%", pct), texttab.Right, texttab.LeftMargin(" ± "))
			} else {
				o.Cell("")
			}
			o.Cell(fmt.Sprintf("n=%d", s.N))
		}
		warn(p.Warnings)
	}

	if err := o.Format(w); err != nil {
		return err
	}
	for i, msg := range warningList {
		if _, err := fmt.Fprintf(w, "%s %s\n", superscript(i+1), msg); err != nil {
			return err
		}
	}
	return nil
}

var superDigits = []rune("⁰¹²³⁴⁵⁶⁷⁸⁹")

func superscript(i int) string {
	if i == 0 {
		return string(superDigits[0])
	}

	var buf [20]rune
	pos := len(buf)
	for i > 0 && pos > 0 {
		pos--
		buf[pos] = superDigits[i%10]
		i /= 10
	}
	return string(buf[pos:])
}

// csvHeader returns the column names of the CSV and HTML forms of t.
func (t *Table) csvHeader() []string {
	var hdr []string
	for _, f := range t.GroupBy.Fields() {
		hdr = append(hdr, f.Name)
	}
	for _, name := range t.Reduce {
		hdr = append(hdr, name, name+" n", name+" min", name+" max", name+" stddev")
	}
	return hdr
}

// csvRow formats p for the CSV and HTML forms of t. Values are
// printed exactly, without scaling.
func (t *Table) csvRow(p *Point, format func(float64) string) []string {
	var row []string
	for _, f := range t.GroupBy.Fields() {
		row = append(row, p.Key.Value(f))
	}
	for _, name := range t.Reduce {
		s, ok := p.Fields[name]
		if !ok {
			row = append(row, "", "0", "", "", "")
			continue
		}
		row = append(row, format(s.Mean), strconv.Itoa(s.N), format(s.Min), format(s.Max), format(s.StdDev))
	}
	return row
}

// ToCSV renders t to CSV format. Warnings are not included.
func (t *Table) ToCSV(w io.Writer) error {
	o := csv.NewWriter(w)
	o.Write(t.csvHeader())
	for _, p := range t.Points {
		o.Write(t.csvRow(p, benchunit.NoOpScaler.Format))
	}
	o.Flush()
	return o.Error()
}
