// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measreport

import (
	"io"
	"math"

	"github.com/google/safehtml/template"
	"github.com/timingharness/stressmap/measproc"
)

// A Scale maps values onto a fixed number of colour classes.
type Scale struct {
	Min, Max float64
	Classes  int
	// Format formats a cell label.
	Format string
}

// BaselineScale colours baseline execution times, in milliseconds.
var BaselineScale = Scale{Min: 0, Max: 21, Classes: 5, Format: "%.2fms"}

// ElongationScale colours elongation ratios.
var ElongationScale = Scale{Min: 1, Max: 5, Classes: 6, Format: "x %.2f"}

// Class returns the colour class of v, in [0, s.Classes), or -1 if v
// is missing. Values outside [Min, Max] take the nearest class.
func (s Scale) Class(v float64) int {
	if math.IsNaN(v) {
		return -1
	}
	c := int(math.Floor((v - s.Min) / (s.Max - s.Min) * float64(s.Classes)))
	if c < 0 {
		c = 0
	}
	if c >= s.Classes {
		c = s.Classes - 1
	}
	return c
}

// A Report collects the products of one reduction for HTML output.
type Report struct {
	Title string

	Baseline, Elongation *measproc.Matrix

	Series []*measproc.Series

	Warnings []error

	// Chart is the format of the chart image written next to the
	// report ("png", "svg" or "pdf"), or "" if none was written.
	Chart string
}

type htmlMatrix struct {
	Title  string
	Corner string
	Elong  bool
	Cols   []string
	Rows   []htmlRow
}

type htmlRow struct {
	Label string
	Cells []htmlCell
}

type htmlCell struct {
	Text  string
	Class int
}

type htmlSeries struct {
	Event          string
	Labels, Values []string
}

type htmlData struct {
	Title     string
	Matrices  []htmlMatrix
	Series    []htmlSeries
	Warnings  []string
	Chart     string
	HasMatrix bool
}

func newHTMLMatrix(title string, m *measproc.Matrix, s Scale, elong bool) htmlMatrix {
	hm := htmlMatrix{Title: title, Corner: m.RowName + ` \ ` + m.ColName, Elong: elong, Cols: m.Cols}
	for i, label := range m.Rows {
		row := htmlRow{Label: label}
		for j := range m.Cols {
			v := m.At(i, j)
			row.Cells = append(row.Cells, htmlCell{Text: cell(s.Format, v), Class: s.Class(v)})
		}
		hm.Rows = append(hm.Rows, row)
	}
	return hm
}

// WriteHTML writes r to w as a standalone HTML page.
func (r *Report) WriteHTML(w io.Writer) error {
	data := htmlData{Title: r.Title, Chart: r.Chart}
	if r.Baseline != nil {
		data.Matrices = append(data.Matrices, newHTMLMatrix("Baseline execution time", r.Baseline, BaselineScale, false))
	}
	if r.Elongation != nil {
		data.Matrices = append(data.Matrices, newHTMLMatrix("Elongation under stress", r.Elongation, ElongationScale, true))
	}
	data.HasMatrix = len(data.Matrices) > 0
	for _, s := range r.Series {
		hs := htmlSeries{Event: s.Event}
		for _, p := range s.Points {
			hs.Labels = append(hs.Labels, p.Label)
			hs.Values = append(hs.Values, cell("%.2f", p.Value))
		}
		data.Series = append(data.Series, hs)
	}
	for _, warn := range r.Warnings {
		data.Warnings = append(data.Warnings, warn.Error())
	}
	return htmlTemplate.Execute(w, data)
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; }
table.heatmap { border-collapse: collapse; margin-bottom: 2em; }
table.heatmap th, table.heatmap td { padding: 0.3em 0.6em; text-align: right; border: 1px solid #ddd; }
table.heatmap th { background: #f4f4f4; }
td.na { color: #999; }
td.b0 { background: #f7fbff; } td.b1 { background: #c6dbef; } td.b2 { background: #6baed6; }
td.b3 { background: #2171b5; color: white; } td.b4 { background: #08306b; color: white; }
td.e0 { background: forestgreen; color: white; } td.e1 { background: yellowgreen; }
td.e2 { background: gold; } td.e3 { background: tomato; }
td.e4 { background: red; color: white; } td.e5 { background: darkred; color: white; }
ul.warnings { color: #a33; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- if .Warnings}}
<ul class="warnings">
{{- range .Warnings}}
<li>{{.}}</li>
{{- end}}
</ul>
{{- end}}
{{- range .Matrices}}
<h2>{{.Title}}</h2>
<table class="heatmap">
<tr><th>{{.Corner}}</th>{{range .Cols}}<th>{{.}}</th>{{end}}</tr>
{{- $elong := .Elong}}
{{- range .Rows}}
<tr><th>{{.Label}}</th>
{{- range .Cells -}}
{{- if eq .Class -1}}<td class="na">{{.Text}}</td>
{{- else if $elong -}}
<td class="{{if eq .Class 0}}e0{{else if eq .Class 1}}e1{{else if eq .Class 2}}e2{{else if eq .Class 3}}e3{{else if eq .Class 4}}e4{{else}}e5{{end}}">{{.Text}}</td>
{{- else -}}
<td class="{{if eq .Class 0}}b0{{else if eq .Class 1}}b1{{else if eq .Class 2}}b2{{else if eq .Class 3}}b3{{else}}b4{{end}}">{{.Text}}</td>
{{- end}}
{{- end}}</tr>
{{- end}}
</table>
{{- end}}
{{- if .HasMatrix}}
{{- if eq .Chart "png"}}
<p><img src="heatmap.png" alt="heatmap"></p>
{{- else if eq .Chart "svg"}}
<p><img src="heatmap.svg" alt="heatmap"></p>
{{- else if eq .Chart "pdf"}}
<p><a href="heatmap.pdf">heatmap.pdf</a></p>
{{- end}}
{{- end}}
{{- if .Series}}
<h2>Comparison of values by application for each event</h2>
{{- range .Series}}
<h3>Event: {{.Event}}</h3>
<table class="heatmap">
<tr><th>Application</th>{{range .Labels}}<th>{{.}}</th>{{end}}</tr>
<tr><th>Average Evt Count</th>{{range .Values}}<td>{{.}}</td>{{end}}</tr>
</table>
{{- end}}
{{- if eq .Chart "png"}}
<p><img src="pmc_chart.png" alt="chart"></p>
{{- else if eq .Chart "svg"}}
<p><img src="pmc_chart.svg" alt="chart"></p>
{{- else if eq .Chart "pdf"}}
<p><a href="pmc_chart.pdf">pmc_chart.pdf</a></p>
{{- end}}
{{- end}}
</body>
</html>
`))
