// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measproc

import (
	"fmt"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
)

// A Selection identifies the observation window a reduction keeps.
type Selection struct {
	// Event restricts the event category (ticks) or type
	// (hardware counters).
	Event Match
	// Point is the observation point naming the window.
	Point string
	// Flag restricts a window configuration flag.
	Flag Match
}

// Window keeps the derived durations of t that fall in the selected
// window and removes the columns that are constant afterwards: the
// marker, the event column, the observation point and the flag. The
// extra columns in drop are removed as well when present.
//
// Window returns the filtered table and the key narrowed to match it.
// A selection that matches nothing yields an empty table, not an
// error.
func Window(t *table.Table, key Key, m Markers, sel Selection, drop ...string) (*table.Table, Key, error) {
	if err := key.check(t, "window", ColActivation, ColMarker, ColValue); err != nil {
		return nil, Key{}, err
	}
	for _, col := range []string{sel.Event.Column, ColPointName, sel.Flag.Column} {
		if !key.Has(col) {
			return nil, Key{}, &KeyError{Stage: "window", Missing: []string{col}}
		}
	}

	var g table.Grouping = t
	g = table.Filter(g, func(v string) bool { return v == m.Duration }, ColMarker)
	g = table.Filter(g, func(v string) bool { return sameValue(v, sel.Event.Value) }, sel.Event.Column)
	g = table.Filter(g, func(v string) bool { return v == sel.Point }, ColPointName)
	g = table.Filter(g, func(v string) bool { return sameValue(v, sel.Flag.Value) }, sel.Flag.Column)

	gone := append([]string{ColMarker, sel.Event.Column, ColPointName, sel.Flag.Column}, drop...)
	b := table.NewBuilder(table.Flatten(g))
	for _, col := range gone {
		b.Add(col, nil)
	}
	return b.Done(), key.Without(gone...), nil
}

// A Scale converts aggregated tick counts to a physical unit.
type Scale struct {
	// Period is the length of one tick of the target's time
	// base, in nanoseconds.
	Period float64
	// Unit converts the scaled period unit, e.g. NanoToMilli.
	Unit float64
}

// Factor returns the multiplier applied to each mean.
func (s Scale) Factor() float64 {
	return s.Period * s.Unit
}

// Aggregate averages the value of t over activations, producing one
// row per distinct key with the mean in ColMean. Empty key cells
// group together like any other value.
//
// If scale is non-nil, each mean is multiplied by scale.Factor().
func Aggregate(t *table.Table, key Key, scale *Scale) (*table.Table, error) {
	if err := key.check(t, "aggregate", ColActivation, ColValue); err != nil {
		return nil, err
	}
	factor := 1.0
	if scale != nil {
		if scale.Period < 0 || scale.Unit < 0 {
			return nil, fmt.Errorf("aggregate: negative scale %g×%g", scale.Period, scale.Unit)
		}
		factor = scale.Factor()
	}
	if t.Len() == 0 {
		return emptyLike(key.Fields(), ColMean), nil
	}

	agg := table.Flatten(ggstat.Agg(key.Fields()...)(ggstat.AggMean(ColValue)).F(t))

	// Agg keeps effectively constant columns, such as a single
	// activation, so rebuild with only the key and the mean.
	means := agg.MustColumn("mean " + ColValue).([]float64)
	scaled := make([]float64, len(means))
	for i, v := range means {
		scaled[i] = v * factor
	}
	var nt table.Builder
	for _, f := range key.Fields() {
		nt.Add(f, agg.MustColumn(f))
	}
	nt.Add(ColMean, scaled)
	return nt.Done(), nil
}
