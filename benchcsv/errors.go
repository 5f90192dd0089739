// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"fmt"
	"strings"
)

// A SchemaError reports a table whose header does not satisfy the
// expected Schema. It is fatal to the table it was found in.
type SchemaError struct {
	Source string
	// Missing lists declared columns absent from the header.
	Missing []string
	// Duplicate lists declared columns named more than once in the
	// header.
	Duplicate []string
}

func (e *SchemaError) Pos() (source string, line int) {
	return e.Source, 1
}

func (e *SchemaError) Error() string {
	var msgs []string
	if len(e.Missing) > 0 {
		msgs = append(msgs, "missing required column(s) "+strings.Join(e.Missing, ", "))
	}
	if len(e.Duplicate) > 0 {
		msgs = append(msgs, "duplicate column(s) "+strings.Join(e.Duplicate, ", "))
	}
	return fmt.Sprintf("%s:1: %s", e.Source, strings.Join(msgs, "; "))
}

// A CoercionError reports a row whose declared numeric cell could not
// be parsed as a number of the column's kind. The row it occurs in is
// dropped; reading continues with the next row.
type CoercionError struct {
	Source string
	Line   int
	Column string
	Kind   Kind
	// Text is the offending cell. It is empty if the row was too
	// short to have the column.
	Text string
	Err  error
}

func (e *CoercionError) Pos() (source string, line int) {
	return e.Source, e.Line
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("%s:%d: column %s: cannot use %q as %s: %v", e.Source, e.Line, e.Column, e.Text, e.Kind, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}
