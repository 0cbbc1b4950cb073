// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"html/template"
	"io"

	"github.com/spmvbench/spmvstat/benchseries"
)

var htmlTemplate = template.Must(template.New("").Funcs(template.FuncMap{
	"value": formatValue,
}).Parse(`
{{- range .}}
<table class='spmvstat'>
<caption>{{.View}}: {{.Metric}}</caption>
<tbody>
<tr>{{range .Fields.Names}}<th>{{.}}{{end}}<th>{{.Metric}}<th>n
{{range .Rows -}}
<tr>{{range .Key.Values}}<td>{{.}}{{end}}<td>{{value .Value}}<td>{{.N}}
{{end -}}
</tbody>
</table>
{{- end}}
`))

// writeHTML writes each table as an HTML table.
func writeHTML(w io.Writer, tables []*benchseries.Table) error {
	return htmlTemplate.Execute(w, tables)
}
