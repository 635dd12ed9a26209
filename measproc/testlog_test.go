// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measproc

import (
	"math"
	"strconv"

	"github.com/aclements/go-gg/table"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var nan = math.NaN()

var floatOpts = cmp.Options{cmpopts.EquateNaNs(), cmpopts.EquateApprox(0, 1e-9)}

// logRow is one raw log row. Zero fields take the defaults of a tick
// measurement in the default window.
type logRow struct {
	elf0, id0, elf1, id1 string
	event, typ, name     string
	part                 string
	act                  string
	marker               string
	point, limiter       string
	value                float64
}

func (r logRow) fill() logRow {
	def := func(s *string, v string) {
		if *s == "" {
			*s = v
		}
	}
	def(&r.event, "ticks")
	def(&r.typ, "core_PMC")
	def(&r.name, "cycles")
	def(&r.part, "3")
	def(&r.act, "0")
	def(&r.point, DefaultWindow)
	def(&r.limiter, "0")
	return r
}

// span returns the begin and end rows of one measurement.
func span(r logRow, begin, end float64) []logRow {
	b, e := r, r
	b.marker, b.value = "1", begin
	e.marker, e.value = "0", end
	return []logRow{b, e}
}

func logTable(rows ...logRow) *table.Table {
	cols := []string{
		ColCore0Elf, ColCore0Id, ColCore1Elf, ColCore1Id,
		ColEventID, ColEventType, ColEventName, ColPartition,
		ColActivation, ColMarker, ColPointName, ColPointID, ColLimiter,
	}
	data := make([][]string, len(cols))
	vals := []float64{}
	for _, r := range rows {
		r = r.fill()
		for i, v := range []string{
			r.elf0, r.id0, r.elf1, r.id1,
			r.event, r.typ, r.name, r.part,
			r.act, r.marker, r.point, "7", r.limiter,
		} {
			data[i] = append(data[i], v)
		}
		vals = append(vals, r.value)
	}
	var b table.Builder
	for i, c := range cols {
		if data[i] == nil {
			data[i] = []string{}
		}
		b.Add(c, data[i])
	}
	return b.Add(ColValue, vals).Done()
}

// cols extracts named columns of t for comparison.
func cols(t *table.Table, names ...string) map[string]interface{} {
	out := make(map[string]interface{})
	for _, n := range names {
		out[n] = t.Column(n)
	}
	return out
}

func mustFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic(err)
	}
	return v
}
