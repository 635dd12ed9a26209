// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measproc

import (
	"fmt"
	"math"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// Markers names the begin and end marker values of a paired
// measurement and the marker given to the derived duration.
type Markers struct {
	Begin, End string
	Duration   string
}

// DefaultMarkers are the markers produced by Cleanse.
var DefaultMarkers = Markers{Begin: "1", End: "0", Duration: "duration"}

// Duplicates returns the rows of t whose key, activation and marker
// together occur more than once, in input order. t itself is not
// modified; the result is purely diagnostic.
//
// t must carry exactly the columns of key plus ColActivation,
// ColMarker and ColValue.
func Duplicates(t *table.Table, key Key) (*table.Table, error) {
	if err := key.check(t, "duplicates", ColActivation, ColMarker, ColValue); err != nil {
		return nil, err
	}
	enc := key.With(ColActivation, ColMarker).encoder(t)
	counts := make(map[string]int)
	keys := make([]string, t.Len())
	for i := range keys {
		keys[i] = enc(i)
		counts[keys[i]]++
	}
	var rows []int
	for i, k := range keys {
		if counts[k] > 1 {
			rows = append(rows, i)
		}
	}
	return selectRows(t, rows), nil
}

// selectRows returns the given rows of t, in the given order.
func selectRows(t *table.Table, rows []int) *table.Table {
	if rows == nil {
		rows = []int{}
	}
	var nt table.Builder
	for _, col := range t.Columns() {
		nt.Add(col, slice.Select(t.Column(col), rows))
	}
	return nt.Done()
}

// reading is a measurement that may be absent. Pivot fills cells
// that have no input row with the zero value, which here means
// "missing" rather than 0.
type reading struct {
	v  float64
	ok bool
}

// PairDurations derives a duration for every begin/end pair.
//
// Rows are matched by key plus ColActivation. For each such group
// holding both a begin and an end row, PairDurations adds a row whose
// marker is m.Duration and whose value is end minus begin. The input
// rows are kept alongside the derived ones. Groups with only one side
// produce no duration. If a group holds several rows with the same
// marker, the first in input order is used; Duplicates reports the
// others.
//
// The second result counts the rows discarded that way.
func PairDurations(t *table.Table, key Key, m Markers) (*table.Table, int, error) {
	if err := key.check(t, "pair", ColActivation, ColMarker, ColValue); err != nil {
		return nil, 0, err
	}
	if t.Len() == 0 {
		return emptyLike(append(key.Fields(), ColActivation, ColMarker), ColValue), 0, nil
	}

	// Keep the first row of each (key, activation, marker).
	enc := key.With(ColActivation, ColMarker).encoder(t)
	seen := make(map[string]bool)
	var rows []int
	for i := 0; i < t.Len(); i++ {
		k := enc(i)
		if seen[k] {
			continue
		}
		seen[k] = true
		rows = append(rows, i)
	}
	dropped := t.Len() - len(rows)
	if dropped > 0 {
		t = selectRows(t, rows)
	}

	vals := t.MustColumn(ColValue).([]float64)
	rs := make([]reading, len(vals))
	for i, v := range vals {
		// An empty cell reads as NaN and pairs with nothing.
		rs[i] = reading{v, !math.IsNaN(v)}
	}
	t = table.NewBuilder(t).Add(ColValue, rs).Done()

	// One row per (key, activation), one column per marker.
	wide := table.Flatten(table.Pivot(t, ColMarker, ColValue))
	var labels []string
	for _, col := range wide.Columns() {
		if col != ColActivation && !key.Has(col) {
			labels = append(labels, col)
		}
	}
	if wide.Column(m.Duration) != nil {
		return nil, 0, fmt.Errorf("pair: marker value %q collides with the duration marker", m.Duration)
	}

	begin, _ := wide.Column(m.Begin).([]reading)
	end, _ := wide.Column(m.End).([]reading)
	dur := make([]reading, wide.Len())
	if begin != nil && end != nil {
		for i := range dur {
			if begin[i].ok && end[i].ok {
				dur[i] = reading{end[i].v - begin[i].v, true}
			}
		}
	}
	wide = table.NewBuilder(wide).Add(m.Duration, dur).Done()

	long := table.Flatten(table.Unpivot(wide, ColMarker, ColValue, append(labels, m.Duration)...))
	long = table.Flatten(table.Filter(long, func(r reading) bool { return r.ok }, ColValue))

	out := make([]float64, long.Len())
	for i, r := range long.MustColumn(ColValue).([]reading) {
		out[i] = r.v
	}
	return table.NewBuilder(long).Add(ColValue, out).Done(), dropped, nil
}
