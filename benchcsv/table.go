// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"io"
	"os"
)

// A Table is a fully loaded benchmark table.
type Table struct {
	Source string
	Schema *Schema
	// Records are the well-formed rows, in input order.
	Records []*Record
	// Dropped are the rows that could not be typed, in input order.
	Dropped []*CoercionError
}

// Load reads a whole table from r. Rows that fail coercion are
// collected in Table.Dropped. The error is non-nil only for fatal
// problems, such as a *SchemaError or an I/O error.
func Load(r io.Reader, source string, schema *Schema) (*Table, error) {
	t := &Table{Source: source, Schema: schema}
	rd := NewReader(r, source, schema)
	for rd.Scan() {
		switch row := rd.Result().(type) {
		case *Record:
			t.Records = append(t.Records, row)
		case *CoercionError:
			t.Dropped = append(t.Dropped, row)
		}
	}
	if err := rd.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadFile is like Load, but reads the named file. The file name is
// used as the table's source.
func LoadFile(path string, schema *Schema) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, path, schema)
}

// Filter returns a new table holding the records of t for which keep
// returns true. Dropped rows carry over unchanged.
func (t *Table) Filter(keep func(*Record) bool) *Table {
	nt := &Table{Source: t.Source, Schema: t.Schema, Dropped: t.Dropped}
	for _, rec := range t.Records {
		if keep(rec) {
			nt.Records = append(nt.Records, rec)
		}
	}
	return nt
}
