// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

import (
	"strconv"
	"strings"

	"github.com/knapsack-heuristics/benchviz/benchunit"
	"gonum.org/v1/plot"
)

// unitTicks places ticks where plot.DefaultTicks does, and labels the
// major ones with a common scale for their class, such as "250ms".
type unitTicks struct {
	cls benchunit.Class
}

func (u unitTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	var vals []float64
	for _, t := range ticks {
		if !t.IsMinor() {
			vals = append(vals, t.Value)
		}
	}
	scale := benchunit.CommonScale(vals, u.cls)
	// Drop trailing zeros shared by every label.
	for scale.Prec > 0 && zeroTail(vals, scale) {
		scale.Prec--
	}
	for i := range ticks {
		if !ticks[i].IsMinor() {
			ticks[i].Label = scale.Format(ticks[i].Value)
		}
	}
	return ticks
}

func zeroTail(vals []float64, s benchunit.Scaler) bool {
	for _, v := range vals {
		if !strings.HasSuffix(strconv.FormatFloat(v/s.Factor, 'f', s.Prec, 64), "0") {
			return false
		}
	}
	return true
}
