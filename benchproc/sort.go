// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Less reports whether k comes before o in the sort order implied by
// their projection. It panics if k and o have different Projections.
func (k Key) Less(o Key) bool {
	if k.k.proj != o.k.proj {
		panic("cannot compare Keys from different Projections")
	}
	return less(k.k.proj.fields, k.k.vals, o.k.vals)
}

func less(fields []*Field, a, b []string) bool {
	for _, f := range fields {
		aa, bb := a[f.idx], b[f.idx]
		if aa != bb {
			if cmp := f.cmp(aa, bb); cmp != 0 {
				return cmp < 0
			}
			// The values are unordered by cmp but the strings
			// differ. Keys are == only if their strings are ==,
			// so fall back to comparing the strings.
			return aa < bb
		}
	}
	return false
}

// SortKeys sorts a slice of Keys using Key.Less.
// All Keys must have the same Projection.
//
// The sort is stable, so Keys that are equal in every field's order
// but differ as strings keep a deterministic order.
func SortKeys(keys []Key) {
	if len(keys) == 0 {
		return
	}
	fields := commonProjection(keys).fields
	sort.SliceStable(keys, func(i, j int) bool {
		return less(fields, keys[i].k.vals, keys[j].k.vals)
	})
}

// builtinOrders are the named comparison functions.
var builtinOrders = map[string]func(a, b string) int{
	"alpha": strings.Compare,
	"num": func(a, b string) int {
		aa, erra := strconv.ParseFloat(a, 64)
		bb, errb := strconv.ParseFloat(b, 64)
		if erra == nil && errb == nil {
			// Sort numerically, and put NaNs after other
			// values.
			if aa < bb || (!math.IsNaN(aa) && math.IsNaN(bb)) {
				return -1
			}
			if aa > bb || (math.IsNaN(aa) && !math.IsNaN(bb)) {
				return 1
			}
			return 0
		}
		if erra != nil && errb != nil {
			// Neither is a number, so compare as text.
			return strings.Compare(a, b)
		}
		// Numbers sort before text.
		if erra == nil {
			return -1
		}
		return 1
	},
}
