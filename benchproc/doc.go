// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchproc provides tools for filtering, grouping, and
// sorting benchmark records.
//
// It is built around two small languages: filter expressions, which
// select records, and projection expressions, which extract a tuple
// of columns from a record into a Key and say how Keys sort. Keys
// produced by the same Projection compare == exactly when their
// values are equal, so they can index Go maps.
//
// The typical steps for grouping a table of benchmark records are:
//
// 1. Parse a projection such as "pop_size,mutation_rate" with a
// ProjectionParser, and optionally a filter with NewFilter.
//
// 2. For each record that the filter matches, Project it into a Key
// and accumulate the record under that Key.
//
// 3. Once all records are grouped, sort the Keys with SortKeys and
// present the groups in that order.
//
// # Filters
//
// Filters are boolean expressions built from terms:
//
//	key:value     - Match if key's value is exactly "value".
//	key:"value"   - Same, but value is a double-quoted Go string that
//	                may contain spaces or other special characters.
//	key:/regexp/  - Match if key's value matches a regular expression.
//	key:(val1 OR val2 OR ...)
//	              - Short-hand for key:val1 OR key:val2.
//	key<number    - Match if key's value is a number less than number.
//	                The operators <=, > and >= work the same way.
//	*             - Match everything.
//
// Terms combine as follows:
//
//	x y ...       - Match if x, y, etc. all match.
//	x AND y       - Same as x y.
//	x OR y        - Match if x or y match.
//	-x            - Match if x does not match.
//	(...)         - Subexpression.
//
// For example, "type:(vns_gloutonne OR vns_aleatoire) k_perturbation>=2".
//
// # Projections
//
// A projection is a comma- or space-separated list of column names.
// Each may carry a sort order:
//
//   - "key" sorts numerically if the values are numbers, and
//     alphabetically otherwise.
//   - "key@alpha" sorts alphabetically, "key@num" numerically, and
//     "key@first" in the order values were first observed.
//   - "key@(value value ...)" uses a fixed value order. It also acts
//     as a filter: records with any other value are excluded.
//
// Keys sort lexicographically over the projection's fields.
package benchproc
