// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"fmt"
	"math"
	"strings"
)

// A Row is a single result read from a benchmark table. It may be a
// *Record or a *CoercionError.
type Row interface {
	// Pos returns the position of this row as a source name and a
	// 1-based line number within that source. If the row was not read
	// from a file, it returns "", 0.
	Pos() (source string, line int)
}

var _ Row = (*Record)(nil)
var _ Row = (*CoercionError)(nil)

// A Record is one benchmark run, typed according to a Schema.
//
// Every declared column has a value. Numeric cells are kept both as
// numbers and in a canonical text form, so "0.10" and "0.1" compare
// equal as strings.
type Record struct {
	schema *Schema
	strs   []string
	// nums holds the parsed value of numeric columns, or NaN if the
	// cell is not well-formed or the column is a string column.
	nums []float64

	source string
	line   int
}

func newRecord(s *Schema, source string, line int) *Record {
	r := &Record{
		schema: s,
		strs:   make([]string, len(s.cols)),
		nums:   make([]float64, len(s.cols)),
		source: source,
		line:   line,
	}
	for i := range r.nums {
		r.nums[i] = math.NaN()
	}
	return r
}

// Pos returns the source name and line this record was read from.
func (r *Record) Pos() (source string, line int) {
	return r.source, r.line
}

// Schema returns the schema r was typed against.
func (r *Record) Schema() *Schema {
	return r.schema
}

// Get returns the canonical text of column name. It reports false if
// the schema does not declare name.
func (r *Record) Get(name string) (string, bool) {
	i, ok := r.schema.index[name]
	if !ok {
		return "", false
	}
	return r.strs[i], true
}

// Float returns the value of numeric column name. It reports false if
// the schema does not declare name, if name is a string column, or if
// the cell is not a well-formed finite number.
func (r *Record) Float(name string) (float64, bool) {
	i, ok := r.schema.index[name]
	if !ok {
		return 0, false
	}
	v := r.nums[i]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Filename returns the problem instance this run solved.
func (r *Record) Filename() string {
	return r.strs[r.schema.index[Filename]]
}

// Type returns the algorithm variant that produced this run.
func (r *Record) Type() string {
	return r.strs[r.schema.index[Type]]
}

// String returns r as space-separated name=value pairs in schema order.
func (r *Record) String() string {
	var buf strings.Builder
	for i, c := range r.schema.cols {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%s=%s", c.Name, r.strs[i])
	}
	return buf.String()
}
