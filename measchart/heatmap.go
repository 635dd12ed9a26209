// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measchart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/timingharness/stressmap/measproc"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A Range fixes the colour range of a heatmap panel and the format of
// its cell labels.
type Range struct {
	Min, Max float64
	Format   string

	// Palette colours [Min, Max] from its first to its last
	// colour. If nil, palette.Heat is used.
	Palette palette.Palette
}

// steps is a fixed list of colours.
type steps []color.Color

func (s steps) Colors() []color.Color { return s }

// The HTML report buckets cells into the same colours.
var (
	blues = steps{
		color.RGBA{0xf7, 0xfb, 0xff, 0xff},
		color.RGBA{0xc6, 0xdb, 0xef, 0xff},
		color.RGBA{0x6b, 0xae, 0xd6, 0xff},
		color.RGBA{0x21, 0x71, 0xb5, 0xff},
		color.RGBA{0x08, 0x30, 0x6b, 0xff},
	}
	greenToRed = steps{
		color.RGBA{0x22, 0x8b, 0x22, 0xff}, // forestgreen
		color.RGBA{0x9a, 0xcd, 0x32, 0xff}, // yellowgreen
		color.RGBA{0xff, 0xd7, 0x00, 0xff}, // gold
		color.RGBA{0xff, 0x63, 0x47, 0xff}, // tomato
		color.RGBA{0xff, 0x00, 0x00, 0xff}, // red
		color.RGBA{0x8b, 0x00, 0x00, 0xff}, // darkred
	}
)

var (
	// BaselineRange is the colour range of baseline times, in ms.
	BaselineRange = Range{Min: 0, Max: 21, Format: "%.2fms", Palette: blues}
	// ElongationRange is the colour range of elongation ratios.
	ElongationRange = Range{Min: 1, Max: 5, Format: "x %.2f", Palette: greenToRed}
)

// A Panel is one heatmap to draw.
type Panel struct {
	Title  string
	Matrix *measproc.Matrix
	Range  Range
}

// grid adapts a Matrix to plotter.GridXYZ. The first matrix row is
// drawn at the top.
type grid struct {
	m *measproc.Matrix
}

func (g grid) Dims() (c, r int)   { return len(g.m.Cols), len(g.m.Rows) }
func (g grid) Z(c, r int) float64 { return g.m.At(len(g.m.Rows)-1-r, c) }
func (g grid) X(c int) float64    { return float64(c) }
func (g grid) Y(r int) float64    { return float64(r) }

func (g grid) rowLabels() []string {
	n := len(g.m.Rows)
	out := make([]string, n)
	for i, r := range g.m.Rows {
		out[n-1-i] = r
	}
	return out
}

// Heatmap draws the non-empty panels side by side and writes the image
// to w in the given format. Values outside a panel's range take the
// colour of the nearest bound; missing cells are left grey.
func Heatmap(w io.Writer, format string, panels ...Panel) error {
	var row []*plot.Plot
	cols, rows := 0, 0
	for _, p := range panels {
		if p.Matrix == nil || len(p.Matrix.Rows) == 0 || len(p.Matrix.Cols) == 0 {
			continue
		}
		pl, err := heatPanel(p)
		if err != nil {
			return err
		}
		row = append(row, pl)
		cols += len(p.Matrix.Cols)
		if len(p.Matrix.Rows) > rows {
			rows = len(p.Matrix.Rows)
		}
	}
	if len(row) == 0 {
		return ErrEmpty
	}
	width := vg.Length(4+2*cols) * vg.Centimeter
	height := vg.Length(4+rows) * vg.Centimeter
	return render(w, format, width, height, [][]*plot.Plot{row})
}

func heatPanel(p Panel) (*plot.Plot, error) {
	g := grid{p.Matrix}
	pal := p.Range.Palette
	if pal == nil {
		pal = palette.Heat(16, 1)
	}
	colors := pal.Colors()

	hm := plotter.NewHeatMap(g, pal)
	hm.Min, hm.Max = p.Range.Min, p.Range.Max
	hm.Underflow = colors[0]
	hm.Overflow = colors[len(colors)-1]
	hm.NaN = color.Gray{0xd0}

	var labels plotter.XYLabels
	cs, rs := g.Dims()
	for r := 0; r < rs; r++ {
		for c := 0; c < cs; c++ {
			v := g.Z(c, r)
			if math.IsNaN(v) {
				continue
			}
			labels.XYs = append(labels.XYs, plotter.XY{X: g.X(c), Y: g.Y(r)})
			labels.Labels = append(labels.Labels, fmt.Sprintf(p.Range.Format, v))
		}
	}

	pl := plot.New()
	pl.Title.Text = p.Title
	pl.X.Label.Text = p.Matrix.ColName
	pl.Y.Label.Text = p.Matrix.RowName
	pl.Add(hm)
	if len(labels.XYs) > 0 {
		lp, err := plotter.NewLabels(labels)
		if err != nil {
			return nil, err
		}
		for i := range lp.TextStyle {
			lp.TextStyle[i].XAlign = draw.XCenter
			lp.TextStyle[i].YAlign = draw.YCenter
		}
		pl.Add(lp)
	}
	pl.NominalX(p.Matrix.Cols...)
	pl.NominalY(g.rowLabels()...)
	pl.X.Tick.Label.Rotation = -math.Pi / 8
	pl.X.Tick.Label.YAlign = draw.YTop
	pl.X.Tick.Label.XAlign = draw.XLeft
	return pl, nil
}
