// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measreport

import (
	"fmt"
	"io"
	"math"

	"github.com/aclements/go-gg/table"
	"github.com/timingharness/stressmap/measproc"
)

// Missing is the text shown for a cell without a value.
const Missing = "-"

func cell(format string, v float64) string {
	if math.IsNaN(v) {
		return Missing
	}
	return fmt.Sprintf(format, v)
}

// FormatMatrix writes m to w as an aligned text table, preceded by
// title. format formats each defined cell.
func FormatMatrix(w io.Writer, title string, m *measproc.Matrix, format string) error {
	if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
		return err
	}
	var b table.Builder
	b.Add(m.RowName+` \ `+m.ColName, append([]string{}, m.Rows...))
	for j, col := range m.Cols {
		cells := make([]string, len(m.Rows))
		for i := range m.Rows {
			cells[i] = cell(format, m.At(i, j))
		}
		b.Add(col, cells)
	}
	if err := table.Fprint(w, b.Done()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// FormatSeries writes the points of every series to w as one aligned
// text table.
func FormatSeries(w io.Writer, series []*measproc.Series, format string) error {
	events, labels, values := []string{}, []string{}, []string{}
	for _, s := range series {
		for _, p := range s.Points {
			events = append(events, s.Event)
			labels = append(labels, p.Label)
			values = append(values, cell(format, p.Value))
		}
	}
	var b table.Builder
	b.Add(measproc.ColEventName, events)
	b.Add(measproc.ColCore0Ident, labels)
	b.Add(measproc.ColMean, values)
	return table.Fprint(w, b.Done())
}
