package report

import (
	"bytes"
	"html/template"
	"time"

	"github.com/Spok95/restock/internal/domain/backlog"
)

// DateLayout is the date shown in the report header and mail subject.
const DateLayout = "02/01/2006"

// Report is everything one mail shows.
type Report struct {
	Date   string
	Daily  Daily
	Weekly Weekly
}

// Build computes the D+1 and weekly views of entries as of now.
func Build(entries []backlog.Entry, now time.Time, days Days) Report {
	return Report{
		Date:   now.Format(DateLayout),
		Daily:  BuildDaily(entries, days.Tomorrow(now)),
		Weekly: BuildWeekly(entries, days),
	}
}

var page = template.Must(template.New("report").Funcs(template.FuncMap{
	"kg":    FormatKg,
	"units": FormatUnits,
}).Parse(`<html><head><style>
body { font-family: Arial, sans-serif; font-size: 14px; }
table.custom-table { border-collapse: collapse; width: auto; margin-bottom: 20px; border: 1px solid #cccccc; }
th, td { border: 1px solid #dddddd; text-align: left; padding: 8px; }
th { background-color: #f2f2f2; }
h2, h3 { color: #333333; }
hr { border: 0; border-top: 1px solid #cccccc; }
</style></head>
<body>
<h2>Separation Report (D+1) - {{.Date}}</h2>
{{- with .Daily}}
{{- if .Empty}}
<p>No cards scheduled for separation tomorrow ({{.Label}}).</p>
{{- else}}
{{- if .Totals.Weight.IsPositive}}
<div style="padding: 15px; margin: 20px 0; border: 1px solid #ccc;">
<h3 style="margin-top: 0;">DAY SUMMARY ({{.Label}})</h3>
<p style="font-size: 16px; margin: 5px 0;"><strong>Distribution centers:</strong> {{len .Centers}}</p>
<p style="font-size: 16px; margin: 5px 0;"><strong>Cards:</strong> {{.Totals.Cards}}</p>
<p style="font-size: 18px; margin: 10px 0;"><strong>TOTAL WEIGHT OF THE DAY: {{kg .Totals.Weight}}</strong></p>
</div>
{{- end}}
{{- range .Centers}}
<br><h3>Separation cards for: {{.Center}}</h3>
<table class="custom-table">
<thead><tr><th>Branch</th><th>Distinct SKUs</th><th>Total Units</th><th>Total Weight</th><th>Cards</th><th>Card IDs</th></tr></thead>
<tbody>
{{- range .Branches}}
<tr><td>{{.Branch}}</td><td>{{.SKUs}}</td><td>{{units .Units}}</td><td>{{kg .Weight}}</td><td>{{.Cards}}</td><td>{{.JoinIDs}}</td></tr>
{{- end}}
</tbody>
</table>
<div style="padding: 10px; margin: 10px 0; border: 1px solid #ccc;">
<strong>SUMMARY {{.Center}}:</strong> {{.Totals.Cards}} Cards | {{.Totals.Branches}} Branches | <strong>TOTAL WEIGHT: {{kg .Totals.Weight}}</strong>
</div>
{{- end}}
{{- end}}
{{- end}}
<br><hr><br>
<h2>Management View - Execution Summary by Distribution Center</h2>
{{- with .Weekly}}
{{- if .Rows}}
<table class="custom-table">
<thead><tr><th>Distribution Center</th>{{range .Days}}<th>{{.}}</th>{{end}}<th>Weekly Total Weight</th></tr></thead>
<tbody>
{{- range .Rows}}
<tr><th>{{.Center}}</th>{{range .Cells}}<td>{{.}}</td>{{end}}<td>{{kg .WeekWeight}}</td></tr>
{{- end}}
</tbody>
</table>
{{- else}}
<p>No data for the management view.</p>
{{- end}}
{{- end}}
</body></html>
`))

// HTML renders the mail body.
func (r Report) HTML() (string, error) {
	var buf bytes.Buffer
	if err := page.Execute(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}
