// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"io"

	"github.com/google/safehtml/template"
	"github.com/knapsack-heuristics/benchviz/benchunit"
)

var htmlTemplate = template.Must(template.New("").Parse(`
<table class='benchviz'>
<thead>
<tr>{{range .Header}}<th>{{.}}{{end}}
</thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}{{end}}
{{- end}}
</tbody>
</table>
{{- if .Warnings}}
<ul class='warnings'>
{{- range .Warnings}}
<li>{{.}}
{{- end}}
</ul>
{{- end}}
`))

type htmlTable struct {
	Header   []string
	Rows     [][]string
	Warnings []string
}

// ToHTML renders t as an HTML table, followed by a list of its
// warnings. Values are printed exactly, without scaling.
func (t *Table) ToHTML(w io.Writer) error {
	data := htmlTable{Header: t.csvHeader()}
	for _, p := range t.Points {
		data.Rows = append(data.Rows, t.csvRow(p, benchunit.NoOpScaler.Format))
	}
	for _, warn := range t.Warnings {
		data.Warnings = append(data.Warnings, warn.Error())
	}
	return htmlTemplate.Execute(w, data)
}
