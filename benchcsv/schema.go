// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchcsv reads tables of benchmark runs from CSV files.
//
// Each row of a table is one run of an optimization algorithm on one
// problem instance: the instance file name, the algorithm variant,
// the parameter settings used for the run, the objective value it
// reached, and the time it took. A Schema declares which of these
// columns a caller expects and how each one is typed; a Reader checks
// the header against the Schema once and then produces typed Records.
//
// Rows whose numeric cells cannot be parsed do not stop a read. They
// are reported as *CoercionError values in the result stream and left
// out of the Table returned by Load.
package benchcsv

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Names of the well-known benchmark columns.
const (
	Filename      = "filename"
	Type          = "type"
	Value         = "value"
	Time          = "time"
	PopSize       = "pop_size"
	MutationRate  = "mutation_rate"
	Generations   = "generations"
	VNSIterations = "vns_iterations"
	KPerturbation = "k_perturbation"
)

// A Kind is the type a column's cells are coerced to.
type Kind int

const (
	String Kind = iota
	Int
	Float
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "integer"
	case Float:
		return "float"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Numeric reports whether cells of kind k are numbers.
func (k Kind) Numeric() bool {
	return k == Int || k == Float
}

var wellKnown = map[string]Kind{
	Filename:      String,
	Type:          String,
	Value:         Float,
	Time:          Float,
	PopSize:       Int,
	MutationRate:  Float,
	Generations:   Int,
	VNSIterations: Int,
	KPerturbation: Int,
}

// A Column is one declared column of a Schema.
type Column struct {
	Name string
	Kind Kind
}

// A Schema is the ordered set of columns a caller requires in a
// table. Every Schema includes the "filename" and "type" columns.
type Schema struct {
	cols  []Column
	index map[string]int
}

// NewSchema returns a Schema with the "filename" and "type" columns
// followed by the named columns. Each name must be a well-known
// column; use Add to declare other columns.
func NewSchema(names ...string) (*Schema, error) {
	s := &Schema{index: make(map[string]int)}
	s.add(Filename, String)
	s.add(Type, String)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == Filename || name == Type {
			continue
		}
		kind, ok := wellKnown[name]
		if !ok {
			return nil, fmt.Errorf("unknown column %q (declare its kind with Schema.Add)", name)
		}
		if err := s.Add(name, kind); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustNewSchema is like NewSchema but panics on error.
func MustNewSchema(names ...string) *Schema {
	s, err := NewSchema(names...)
	if err != nil {
		panic(err)
	}
	return s
}

// Add declares an additional column.
func (s *Schema) Add(name string, kind Kind) error {
	if _, ok := s.index[name]; ok {
		return fmt.Errorf("column %q declared twice", name)
	}
	s.add(name, kind)
	return nil
}

func (s *Schema) add(name string, kind Kind) {
	s.index[name] = len(s.cols)
	s.cols = append(s.cols, Column{name, kind})
}

// Columns returns the declared columns in order.
//
// The caller must not modify the returned slice.
func (s *Schema) Columns() []Column {
	return s.cols
}

// Lookup returns the column called name.
func (s *Schema) Lookup(name string) (Column, bool) {
	i, ok := s.index[name]
	if !ok {
		return Column{}, false
	}
	return s.cols[i], true
}

// Has reports whether s declares a column called name.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Names returns the declared column names in order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.cols))
	for i, c := range s.cols {
		names[i] = c.Name
	}
	return names
}

// MakeRecord builds a Record from a map of column name to cell text.
// Unlike a Reader, it never fails: missing cells are empty and numeric
// cells that don't parse are left not well-formed (Record.Float
// reports false for them). It is intended for tests and for callers
// that produce records without a CSV file.
func (s *Schema) MakeRecord(fields map[string]string) *Record {
	r := newRecord(s, "", 0)
	for i, c := range s.cols {
		text, ok := fields[c.Name]
		if !ok {
			continue
		}
		canon, num, err := c.parse(text)
		if err != nil {
			r.strs[i] = text
			continue
		}
		r.strs[i], r.nums[i] = canon, num
	}
	return r
}

var errNonFinite = fmt.Errorf("value is not finite")

// parse coerces one cell of column c. It returns the canonical string
// form of the cell and, for numeric kinds, its value.
func (c Column) parse(text string) (canon string, num float64, err error) {
	text = strings.TrimSpace(text)
	switch c.Kind {
	case String:
		return text, math.NaN(), nil
	case Int:
		v, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			return strconv.FormatInt(v, 10), float64(v), nil
		}
		if errors.Is(err, strconv.ErrRange) {
			return "", 0, strconv.ErrRange
		}
		// Accept integral floats such as "50.0".
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
			return "", 0, unwrapNumError(err)
		}
		if f < -(1<<63) || f >= 1<<63 {
			return "", 0, strconv.ErrRange
		}
		return strconv.FormatInt(int64(f), 10), f, nil
	case Float:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return "", 0, unwrapNumError(err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", 0, errNonFinite
		}
		return strconv.FormatFloat(v, 'g', -1, 64), v, nil
	}
	panic(fmt.Sprintf("bad Kind %v", c.Kind))
}

func unwrapNumError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}
