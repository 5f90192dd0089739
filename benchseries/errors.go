// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"fmt"
	"strings"
)

// An EmptyGroupError reports that a panel has nothing to draw. The
// panel is still returned, marked Empty, so the rest of the chart can
// be rendered.
type EmptyGroupError struct {
	Panel string // Title of the empty panel
	Y     string // Column that had no points
}

func (e *EmptyGroupError) Error() string {
	if e.Panel == "" {
		return fmt.Sprintf("no points to plot for %s", e.Y)
	}
	return fmt.Sprintf("%s: no points to plot for %s", e.Panel, e.Y)
}

// An AlignmentError reports that the variants of a bar panel do not
// cover the same keys, so their bars cannot be paired.
type AlignmentError struct {
	// Variant is the variant whose keys differ from the first
	// variant's.
	Variant string
	// Base is the first variant, whose keys define the x axis.
	Base string
	// Missing and Extra are the keys Variant lacks or has in
	// addition to Base.
	Missing, Extra []string
}

func (e *AlignmentError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "variant %s does not align with %s", e.Variant, e.Base)
	if len(e.Missing) > 0 {
		fmt.Fprintf(&buf, ": missing %s", strings.Join(e.Missing, ", "))
	}
	if len(e.Extra) > 0 {
		if len(e.Missing) > 0 {
			buf.WriteString(";")
		} else {
			buf.WriteString(":")
		}
		fmt.Fprintf(&buf, " extra %s", strings.Join(e.Extra, ", "))
	}
	return buf.String()
}
