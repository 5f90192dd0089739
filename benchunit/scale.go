// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"fmt"
	"math"
	"strconv"
)

// A Scaler represents a scaling factor for a number and
// its scientific representation.
type Scaler struct {
	Prec   int     // Digits after the decimal point
	Factor float64 // Unscaled value of 1 Prefix (e.g., 1 k => 1000)
	Prefix string  // Unit prefix ("k", "M", "m", etc)
	Suffix string  // Unit symbol after the prefix, if any ("s")
}

// Format formats val and appends the unit prefix and suffix according
// to the given scale. For example, if the Scaler has class Decimal,
// Format(123456789) returns "123.5M"; with class Seconds,
// Format(0.0125) returns "12.50ms".
func (s Scaler) Format(val float64) string {
	buf := make([]byte, 0, 20)
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
	buf = append(buf, s.Prefix...)
	buf = append(buf, s.Suffix...)
	return string(buf)
}

// NoOpScaler is a Scaler that formats numbers with the smallest
// number of digits necessary to capture the exact value, and no
// prefix. This is intended for when the output will be consumed by
// another program, such as when producing CSV format.
var NoOpScaler = Scaler{-1, 1, "", ""}

type factor struct {
	factor float64
	prefix string
	// Thresholds for 100.0, 10.00, 1.000.
	t100, t10, t1 float64
}

var (
	siFactors      = mkFactors(12, "T", "G", "M", "k", "", "m", "µ", "n")
	secondsFactors = mkFactors(0, "", "m", "µ", "n")
)
var sigfigs, sigfigsBase = mkSigfigs()

// mkFactors returns factors for the given prefixes, starting at 10^exp
// and dividing by 1000 for each following prefix.
func mkFactors(exp int, prefixes ...string) []factor {
	// The thresholds come from parsing printed values, so they
	// round exactly the way printing does.
	var factors []factor
	for _, p := range prefixes {
		t100, _ := strconv.ParseFloat(fmt.Sprintf("99.995e%d", exp), 64)
		t10, _ := strconv.ParseFloat(fmt.Sprintf("9.9995e%d", exp), 64)
		t1, _ := strconv.ParseFloat(fmt.Sprintf(".99995e%d", exp), 64)
		factors = append(factors, factor{math.Pow(10, float64(exp)), p, t100, t10, t1})
		exp -= 3
	}
	return factors
}

func mkSigfigs() ([]float64, int) {
	var sigfigs []float64
	// Print up to 10 digits after the decimal place.
	for exp := -1; exp > -9; exp-- {
		thresh, _ := strconv.ParseFloat(fmt.Sprintf("9.9995e%d", exp), 64)
		sigfigs = append(sigfigs, thresh)
	}
	// sigfigs[0] is the threshold for 3 digits after the decimal.
	return sigfigs, 3
}

// Scale formats val using at least three significant digits,
// appending a prefix for its class. See Scaler.Format for details.
func Scale(val float64, cls Class) string {
	return CommonScale([]float64{val}, cls).Format(val)
}

// CommonScale returns a common Scaler to apply to all values in vals.
// This scale will show at least three significant digits for every
// value.
func CommonScale(vals []float64, cls Class) Scaler {
	var factors []factor
	var suffix string
	switch cls {
	default:
		panic(fmt.Sprintf("bad Class %v", cls))
	case Decimal:
		factors = siFactors
	case Seconds:
		factors, suffix = secondsFactors, "s"
	}

	// The common scale is determined by the non-zero value
	// closest to zero.
	var min float64
	for _, v := range vals {
		v = math.Abs(v)
		if v != 0 && !math.IsInf(v, 0) && !math.IsNaN(v) && (min == 0 || v < min) {
			min = v
		}
	}
	if min == 0 {
		return Scaler{3, 1, "", suffix}
	}

	for _, factor := range factors {
		switch {
		case min >= factor.t100:
			return Scaler{1, factor.factor, factor.prefix, suffix}
		case min >= factor.t10:
			return Scaler{2, factor.factor, factor.prefix, suffix}
		case min >= factor.t1:
			return Scaler{3, factor.factor, factor.prefix, suffix}
		}
	}

	// The value is less than the smallest factor. Print it using
	// the smallest factor and more precision to achieve the
	// desired sigfigs.
	factor := factors[len(factors)-1]
	val := min / factor.factor
	for i, thresh := range sigfigs {
		if val >= thresh || i == len(sigfigs)-1 {
			return Scaler{i + sigfigsBase, factor.factor, factor.prefix, suffix}
		}
	}

	panic("not reachable")
}
