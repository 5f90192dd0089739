// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parse implements parsers for the filter and projection
// expressions described in the benchproc package documentation.
package parse
