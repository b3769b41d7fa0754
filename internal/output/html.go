// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"html/template"
	"io"

	"github.com/staranto/snapdiff/internal/differ"
)

var htmlTemplate = template.Must(template.New("table").Parse(`<style>
td, th {
    white-space: nowrap;
    text-align: left;
}
</style>
<table border="1">
<tr><th></th><th></th>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
{{- range .Lines}}
{{if .Separator}}<tr><td colspan="99">&nbsp;</td></tr>
{{- else}}<tr><td>{{.Label}}</td><td>{{.Changed}}</td>{{range .Cells}}{{if .Hilite}}<th>{{.Value}}</th>{{else}}<td>{{.Value}}</td>{{end}}{{end}}</tr>
{{- end}}
{{- end}}
</table>
`))

type htmlCell struct {
	Value  string
	Hilite bool
}

type htmlLine struct {
	Separator bool
	Label     string
	Changed   string
	Cells     []htmlCell
}

// renderHTML writes a bordered table. Changed cells are emitted as th so they
// stand out without any styling beyond the browser default.
func renderHTML(w io.Writer, header []string, changes []differ.Change, opts Options) error {
	lines := layout(header, changes, opts.Previous, true)

	data := struct {
		Header []string
		Lines  []htmlLine
	}{Header: header}

	for _, l := range lines {
		hl := htmlLine{Separator: l.separator, Label: l.label, Changed: joinInts(l.columns, ", ")}
		if !l.separator {
			hl.Cells = make([]htmlCell, len(l.cells))
			for i, v := range l.cells {
				hl.Cells[i] = htmlCell{Value: v, Hilite: l.hilite[i]}
			}
		}
		data.Lines = append(data.Lines, hl)
	}

	return htmlTemplate.Execute(w, data)
}
