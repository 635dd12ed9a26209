// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measproc

import (
	"fmt"

	"github.com/aclements/go-gg/table"
)

// A Result holds every product of a reduction.
type Result struct {
	Variant *Variant

	// Duplicates lists the cleansed rows whose extended key is
	// not unique. It is empty, not nil, when there are none.
	Duplicates *table.Table

	// Key is the descriptor key of Aggregated.
	Key Key

	// Aggregated has one row per context with its mean.
	Aggregated *table.Table

	// For MatrixTab, Baseline holds the aggregated baseline rows
	// and Stressed the remaining rows with ColMeanRef and
	// ColElongation attached.
	Baseline, Stressed *table.Table

	BaselineMatrix   *Matrix
	ElongationMatrix *Matrix

	// For SeriesTab, one series per event.
	Series []*Series

	// Warnings lists anomalies that did not stop the reduction.
	Warnings []error
}

// Run reduces a raw measurement log according to v. scale converts
// the means of scaled variants and is ignored otherwise; a scaled
// variant with a nil scale leaves means in ticks.
//
// Run does not modify raw and returns the same result for the same
// inputs.
func Run(raw *table.Table, v *Variant, scale *Scale) (*Result, error) {
	if err := Validate(raw, v.Required); err != nil {
		return nil, err
	}
	t, err := Cleanse(raw)
	if err != nil {
		return nil, err
	}
	t, err = Restrict(t, v.Restrict...)
	if err != nil {
		return nil, err
	}
	key := KeyOf(t, ColMarker, ColActivation, ColValue)

	res := &Result{Variant: v}
	res.Duplicates, err = Duplicates(t, key)
	if err != nil {
		return nil, err
	}
	if n := res.Duplicates.Len(); n > 0 {
		res.Warnings = append(res.Warnings, fmt.Errorf("%d row(s) share a context, activation and marker with another row", n))
	}

	t, dropped, err := PairDurations(t, key, v.Markers)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		res.Warnings = append(res.Warnings, fmt.Errorf("pairing ignored %d duplicate row(s); the first of each was used", dropped))
	}

	t, key, err = Window(t, key, v.Markers, v.Window, v.Drop...)
	if err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		res.Warnings = append(res.Warnings, fmt.Errorf("no durations in window %s with %s, %s", v.Window.Point, v.Window.Event, v.Window.Flag))
	}

	if !v.Scaled {
		scale = nil
	}
	res.Key = key
	res.Aggregated, err = Aggregate(t, key, scale)
	if err != nil {
		return nil, err
	}

	switch v.Tab {
	case MatrixTab:
		err = res.tabulateMatrix()
	case SeriesTab:
		res.Series, err = SeriesByEvent(res.Aggregated, ColEventName, ColCore0Ident, ColMean)
	default:
		err = fmt.Errorf("unknown tabulation %v", v.Tab)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Result) tabulateMatrix() error {
	base, stressed, err := SplitBaseline(r.Aggregated)
	if err != nil {
		return err
	}
	r.Baseline = base
	var warns []error
	r.Stressed, warns, err = Elongate(stressed, base, r.Key)
	if err != nil {
		return err
	}
	r.Warnings = append(r.Warnings, warns...)

	r.BaselineMatrix, warns, err = CrossTab(r.Baseline, ColCore0Ident, ColCore1Ident, ColMean)
	if err != nil {
		return err
	}
	r.Warnings = append(r.Warnings, warns...)
	r.ElongationMatrix, warns, err = CrossTab(r.Stressed, ColCore0Ident, ColCore1Ident, ColElongation)
	if err != nil {
		return err
	}
	r.Warnings = append(r.Warnings, warns...)
	return nil
}
