// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measchart

import (
	"io"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/timingharness/stressmap/measproc"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// SeriesTitle heads the first panel of a series chart.
const SeriesTitle = "Comparison of values by application for each event"

// Series draws one line chart per event, stacked vertically, and
// writes the image to w in the given format. Missing points are
// skipped.
func Series(w io.Writer, format string, series []*measproc.Series) error {
	var plots [][]*plot.Plot
	width := 0
	for _, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		pl, err := seriesPanel(s)
		if err != nil {
			return err
		}
		if len(plots) == 0 {
			pl.Title.Text = SeriesTitle + "\n" + pl.Title.Text
		}
		plots = append(plots, []*plot.Plot{pl})
		if len(s.Points) > width {
			width = len(s.Points)
		}
	}
	if len(plots) == 0 {
		return ErrEmpty
	}
	return render(w, format, vg.Length(8+2*width)*vg.Centimeter,
		vg.Length(8*len(plots))*vg.Centimeter, plots)
}

func seriesPanel(s *measproc.Series) (*plot.Plot, error) {
	var xys plotter.XYs
	labels := make([]string, len(s.Points))
	values := make([]float64, 0, len(s.Points))
	for i, p := range s.Points {
		labels[i] = p.Label
		values = append(values, p.Value)
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(i), Y: p.Value})
	}

	pl := plot.New()
	pl.Title.Text = "Event: " + s.Event
	pl.Y.Label.Text = "Average Evt Count"
	gl := plotter.NewGrid()
	gl.Vertical.Color = nil
	pl.Add(gl)
	if len(xys) > 0 {
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, err
		}
		pl.Add(line, points)
		pl.Legend.Add(s.Event, line, points)
	}
	pl.NominalX(labels...)
	pl.X.Tick.Label.Rotation = -math.Pi / 8
	pl.X.Tick.Label.YAlign = draw.YTop
	pl.X.Tick.Label.XAlign = draw.XLeft

	// Leave some room above and below the data, and keep zero in view
	// for non-negative counts.
	if vs := finite(values); len(vs) > 0 {
		lo, hi := stats.Bounds(vs)
		pad := (hi - lo) / 10
		if pad == 0 {
			pad = math.Max(math.Abs(hi)/10, 1)
		}
		pl.Y.Min, pl.Y.Max = lo-pad, hi+pad
		if lo >= 0 {
			pl.Y.Min = 0
		}
	}
	return pl, nil
}
