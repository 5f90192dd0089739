// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out tables of text for fixed-width fonts.
package texttab

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Most methods return the Table so calls can be chained to build up a
// row at once.
type Table struct {
	cells []textCell
	rules map[int]string // row -> repeated rule text
	cols  int

	curRow, curCol int
}

type textCell struct {
	row, col, span int
	value          string
	leftMargin     string
	alignment      align
}

// A CellOption adjusts how a single cell is laid out.
type CellOption func(c *textCell)

// LeftMargin replaces the default one-space margin to the left of a
// cell. The widest margin given for a column applies to every cell in
// that column.
func LeftMargin(x string) CellOption {
	return func(c *textCell) {
		c.leftMargin = x
	}
}

var (
	Left   CellOption = func(c *textCell) { c.alignment = alignLeft }
	Center CellOption = func(c *textCell) { c.alignment = alignCenter }
	Right  CellOption = func(c *textCell) { c.alignment = alignRight }
)

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

func (a align) lpad(s string, w int) string {
	switch a {
	default:
		return s
	case alignCenter:
		l := (w - utf8.RuneCountInString(s)) / 2
		return fmt.Sprintf("%*s%s", l, "", s)
	case alignRight:
		return fmt.Sprintf("%*s", w, s)
	}
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	if len(t.cells) > 0 || len(t.rules) > 0 {
		t.curRow++
	}
	t.curCol = 0
	return t
}

// Col skips to column "col" in table t. Columns are numbered starting
// at 0.
func (t *Table) Col(col int) *Table {
	if col < t.curCol {
		panic(fmt.Sprintf("cannot move from column %d to earlier column %d", t.curCol, col))
	}
	t.curCol = col
	return t
}

// Cell adds a single-column cell at the current row and column.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	return t.Span(1, value, opts...)
}

// Span adds a multi-column cell at the current row and column.
func (t *Table) Span(cols int, value string, opts ...CellOption) *Table {
	lMargin := " "
	if t.curCol == 0 || len(value) == 0 {
		// The first column and empty cells get no margin by
		// default.
		lMargin = ""
	}
	c := textCell{t.curRow, t.curCol, cols, value, lMargin, alignLeft}
	for _, o := range opts {
		o(&c)
	}
	t.cells = append(t.cells, c)

	t.curCol += cols
	t.cols = max(t.cols, t.curCol)
	return t
}

// Rule starts a new row that is a horizontal line drawn by repeating
// s across the full width of the table.
func (t *Table) Rule(s string) *Table {
	t.Row()
	if t.rules == nil {
		t.rules = make(map[int]string)
	}
	t.rules[t.curRow] = s
	return t
}

// Format lays out table t and writes it to w.
func (t *Table) Format(w io.Writer) error {
	// Each column's margin is the widest margin of its cells.
	lmargin := make([]int, t.cols)
	for _, cell := range t.cells {
		lmargin[cell.col] = max(utf8.RuneCountInString(cell.leftMargin), lmargin[cell.col])
	}

	ws := t.widths(lmargin)

	// offs[i] is where column i's left margin begins. The final
	// entry is the width of the table.
	offs := make([]int, t.cols+1)
	for i, w := range ws {
		offs[i+1] = offs[i] + w
	}

	// Put the cells back into reading order.
	sort.SliceStable(t.cells, func(i, j int) bool {
		if t.cells[i].row != t.cells[j].row {
			return t.cells[i].row < t.cells[j].row
		}
		return t.cells[i].col < t.cells[j].col
	})

	bw := &errWriter{w: w}
	row, off := 0, 0
	ci := 0
	for ; row <= t.curRow; row++ {
		if row > 0 {
			bw.printf("\n")
		}
		off = 0
		if rule, ok := t.rules[row]; ok && rule != "" {
			n := offs[t.cols] / utf8.RuneCountInString(rule)
			bw.printf("%s", strings.Repeat(rule, n))
		}
		for ; ci < len(t.cells) && t.cells[ci].row == row; ci++ {
			cell := t.cells[ci]
			if strings.TrimSpace(cell.value) == "" && strings.TrimSpace(cell.leftMargin) == "" {
				// Skipping blank cells avoids trailing spaces.
				continue
			}
			spaces := offs[cell.col] - off
			bw.printf("%*s%*s", spaces, "", lmargin[cell.col], cell.leftMargin)
			off += spaces + lmargin[cell.col]

			tw := offs[cell.col+cell.span] - offs[cell.col] - lmargin[cell.col]
			s := cell.alignment.lpad(cell.value, tw)
			bw.printf("%s", s)
			off += utf8.RuneCountInString(s)
		}
	}
	if len(t.cells) > 0 || len(t.rules) > 0 {
		bw.printf("\n")
	}
	return bw.err
}

// widths computes the width of each column, including its left
// margin.
func (t *Table) widths(lmargin []int) []int {
	ws := make([]int, t.cols)

	// Size single-column cells first, then widen columns under
	// spans that don't fit.
	cells := append([]textCell(nil), t.cells...)
	sort.SliceStable(cells, func(i, j int) bool {
		return cells[i].span < cells[j].span
	})
	var spanCols []int
	for _, cell := range cells {
		w := utf8.RuneCountInString(cell.value) + lmargin[cell.col]
		if cell.span == 1 {
			ws[cell.col] = max(ws[cell.col], w)
			continue
		}

		tw := 0
		for col := cell.col; col < cell.col+cell.span; col++ {
			tw += ws[col]
		}
		if tw >= w {
			continue
		}

		// Spread the missing width over the spanned columns,
		// widest first, so columns already wider than the
		// average keep their width and the rest share what's
		// left evenly.
		spanCols = spanCols[:0]
		for col := cell.col; col < cell.col+cell.span; col++ {
			spanCols = append(spanCols, col)
		}
		sort.SliceStable(spanCols, func(i, j int) bool {
			return ws[spanCols[i]] > ws[spanCols[j]]
		})
		span := len(spanCols)
		for _, col := range spanCols {
			avg := (w + span - 1) / span
			ws[col] = max(ws[col], avg)
			w -= ws[col]
			span--
		}
	}
	return ws
}

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
