// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit formats benchmark measurements for people:
// objective values with SI prefixes and elapsed times in seconds.
package benchunit

import "fmt"

// A Class specifies how the values of a column are scaled and
// labeled.
type Class int

const (
	// Decimal values are scaled by powers of 1000 and labeled with
	// SI prefixes such as "k" and "M".
	Decimal Class = iota
	// Seconds values are durations in seconds. They are scaled
	// down to milli-, micro- and nanoseconds and carry an "s"
	// suffix.
	Seconds
)

func (c Class) String() string {
	switch c {
	case Decimal:
		return "Decimal"
	case Seconds:
		return "Seconds"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// ClassOf returns the Class of a benchmark column. The "time" column
// is measured in seconds; everything else is a plain number.
func ClassOf(column string) Class {
	if column == "time" {
		return Seconds
	}
	return Decimal
}
