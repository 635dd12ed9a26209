// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package measreport renders reduction results as CSV, text and HTML.
package measreport

import (
	"encoding/csv"
	"io"

	"github.com/timingharness/stressmap/measlog"
	"github.com/timingharness/stressmap/measproc"
)

// WriteMatrixCSV writes m as CSV. The header holds m.RowName followed
// by the column labels; each following line holds a row label and
// its values. Missing cells are written empty.
func WriteMatrixCSV(w io.Writer, m *measproc.Matrix) error {
	cw := csv.NewWriter(w)
	header := append([]string{m.RowName}, m.Cols...)
	if err := cw.Write(header); err != nil {
		return err
	}
	rec := make([]string, len(m.Cols)+1)
	for i, row := range m.Rows {
		rec[0] = row
		for j := range m.Cols {
			rec[j+1] = measlog.FormatFloat(m.At(i, j))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSeriesCSV writes one line per series point: the event, the
// point's label and its value.
func WriteSeriesCSV(w io.Writer, series []*measproc.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{measproc.ColEventName, measproc.ColCore0Ident, measproc.ColMean}); err != nil {
		return err
	}
	for _, s := range series {
		for _, p := range s.Points {
			if err := cw.Write([]string{s.Event, p.Label, measlog.FormatFloat(p.Value)}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
