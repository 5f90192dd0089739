// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

// NonSingularFields returns the subset of Fields for which at least two of keys
// have different values.
//
// This is useful for warning the user if aggregating a set of records
// has hidden differences in columns outside the group key. Typically
// these keys are "residue" keys produced by ProjectionParser.Residue.
func NonSingularFields(keys []Key) []*Field {
	if len(keys) <= 1 {
		return nil
	}
	var out []*Field
	for _, f := range commonProjection(keys).fields {
		base := keys[0].Value(f)
		for _, k := range keys[1:] {
			if k.Value(f) != base {
				out = append(out, f)
				break
			}
		}
	}
	return out
}
