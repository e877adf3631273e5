// Package report renders the slot matrix into the HTML body of the
// availability email.
package report

import (
	"bytes"
	"html/template"
	"time"

	"github.com/alextrastero/scrapemachine/slots"
)

// EmptyNotice is rendered when no free slots survived the run.
const EmptyNotice = "No slots found"

// Day is one date section of the report.
type Day struct {
	Heading string // e.g. "Monday, January 5, 2026"
	Rows    []Row
}

// Row is one start time across all court columns. A cell holds the slot's
// start label when the court is free at that time, otherwise "".
type Row struct {
	Cells []string
}

// Data is everything the report template needs.
type Data struct {
	Columns  []string
	Days     []Day
	Total    int
	Problems []string
	Ladder   template.HTML
}

var tmpl = template.Must(template.New("report").Parse(`<div style="font-family: sans-serif; max-width: 720px; margin: 0 auto;">
{{- if .Days}}
<p>{{.Total}} free slots in the days ahead.</p>
{{- range .Days}}
<h2>{{.Heading}}</h2>
<table border="1" cellpadding="6" style="border-collapse:collapse">
<tr>{{range $.Columns}}<th>{{.}}</th>{{end}}</tr>
{{- range .Rows}}
<tr>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</table>
{{- end}}
{{- else}}
<p>` + EmptyNotice + `</p>
{{- end}}
{{- if .Problems}}
<h2>Data problems</h2>
<ul>
{{- range .Problems}}
<li>{{.}}</li>
{{- end}}
</ul>
{{- end}}
{{- if .Ladder}}
<h2>Ladder standings</h2>
{{.Ladder}}
{{- end}}
</div>
`))

// Build shapes the matrix into template data. Dates ascend chronologically,
// rows ascend by start time within a date, and the column order is exactly
// the order of columns, never the order courts appeared in input data.
func Build(m slots.Matrix, columns []string, total int, ladderHTML string, problems []string) Data {
	d := Data{
		Columns:  columns,
		Total:    total,
		Problems: problems,
		Ladder:   template.HTML(ladderHTML),
	}
	for _, date := range m.Dates() {
		day := Day{Heading: heading(date)}
		for _, start := range m.Starts(date) {
			row := Row{Cells: make([]string, len(columns))}
			for i, court := range columns {
				if m.Has(date, start, court) {
					row.Cells[i] = label(start)
				}
			}
			day.Rows = append(day.Rows, row)
		}
		d.Days = append(d.Days, day)
	}
	return d
}

// Render produces the final HTML fragment for a run.
func Render(m slots.Matrix, columns []string, total int, ladderHTML string, problems []string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, Build(m, columns, total, ladderHTML, problems)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// heading turns "2026-01-05" into "Monday, January 5, 2026". Unparseable
// dates fall back to the raw string.
func heading(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}

// label turns a 24-hour "18:30" start key into its 12-hour display form.
func label(start string) string {
	t, err := time.Parse("15:04", start)
	if err != nil {
		return start
	}
	return t.Format("3:04 PM")
}
