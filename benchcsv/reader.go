// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// A Reader reads a benchmark table in CSV form.
//
// Its API is modeled on bufio.Scanner. The first row of the input is
// the header; columns are located by name, so their order in the file
// doesn't matter and columns the Schema doesn't declare are ignored.
type Reader struct {
	cr     *csv.Reader
	source string
	schema *Schema

	// cols maps each schema column to its position in the header.
	// It is nil until the header has been read.
	cols []int

	err    error
	result Row
}

var errShortRow = errors.New("row has too few fields")

// NewReader returns a Reader that reads a table from r and types it
// according to schema. source names the table in errors and record
// positions; it is purely diagnostic.
func NewReader(r io.Reader, source string, schema *Schema) *Reader {
	if source == "" {
		source = "<unknown>"
	}
	cr := csv.NewReader(r)
	// Row length is checked per declared column so a short row is a
	// CoercionError rather than a fatal parse error.
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return &Reader{cr: cr, source: source, schema: schema}
}

// Scan advances the reader to the next row and reports whether a row
// was read. The caller should use the Result method to get it.
// If Scan reaches EOF, a schema mismatch, or an I/O error, it returns
// false, in which case the caller should use the Err method to check
// for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	if r.cols == nil {
		if r.err = r.readHeader(); r.err != nil {
			return false
		}
	}
	fields, err := r.cr.Read()
	if err == io.EOF {
		return false
	} else if err != nil {
		r.err = fmt.Errorf("%s: %w", r.source, err)
		return false
	}
	line, _ := r.cr.FieldPos(0)
	r.result = r.parseRow(fields, line)
	return true
}

// Result returns the row read by the last call to Scan: either a
// *Record or a *CoercionError. It returns nil if Scan has not been
// called.
func (r *Reader) Result() Row {
	return r.result
}

// Err returns the first fatal error encountered by the Reader. It is
// a *SchemaError if the header did not satisfy the Schema. Per-row
// errors are not fatal and are returned by Result instead.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) readHeader() error {
	header, err := r.cr.Read()
	if err == io.EOF {
		// An empty input has no columns at all.
		header = nil
	} else if err != nil {
		return fmt.Errorf("%s: reading header: %w", r.source, err)
	}
	pos := make(map[string]int)
	dups := make(map[string]bool)
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if _, ok := pos[name]; ok {
			dups[name] = true
			continue
		}
		pos[name] = i
	}

	cols := make([]int, len(r.schema.cols))
	var serr SchemaError
	for i, c := range r.schema.cols {
		p, ok := pos[c.Name]
		if !ok {
			serr.Missing = append(serr.Missing, c.Name)
			continue
		}
		if dups[c.Name] {
			serr.Duplicate = append(serr.Duplicate, c.Name)
		}
		cols[i] = p
	}
	if serr.Missing != nil || serr.Duplicate != nil {
		sort.Strings(serr.Duplicate)
		serr.Source = r.source
		return &serr
	}
	r.cols = cols
	return nil
}

// parseRow types one row. It returns a *CoercionError for the first
// declared cell that cannot be coerced.
func (r *Reader) parseRow(fields []string, line int) Row {
	rec := newRecord(r.schema, r.source, line)
	for i, c := range r.schema.cols {
		p := r.cols[i]
		if p >= len(fields) {
			return &CoercionError{r.source, line, c.Name, c.Kind, "", errShortRow}
		}
		canon, num, err := c.parse(fields[p])
		if err != nil {
			return &CoercionError{r.source, line, c.Name, c.Kind, fields[p], err}
		}
		rec.strs[i], rec.nums[i] = canon, num
	}
	return rec
}
