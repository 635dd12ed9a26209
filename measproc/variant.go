// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measproc

import "fmt"

// Tabulation selects the final shape of a reduction.
type Tabulation int

const (
	// MatrixTab produces baseline and elongation matrices of
	// primary by secondary application.
	MatrixTab Tabulation = iota
	// SeriesTab produces one series per event across primary
	// applications.
	SeriesTab
)

func (t Tabulation) String() string {
	switch t {
	case MatrixTab:
		return "matrix"
	case SeriesTab:
		return "series"
	}
	return fmt.Sprintf("Tabulation(%d)", int(t))
}

// ParseTabulation parses "matrix" or "series".
func ParseTabulation(s string) (Tabulation, error) {
	switch s {
	case "matrix":
		return MatrixTab, nil
	case "series":
		return SeriesTab, nil
	}
	return 0, fmt.Errorf("unknown tabulation %q", s)
}

// A Variant configures one kind of reduction over a measurement log.
type Variant struct {
	Name string

	// Required lists the columns the log must carry.
	Required []string

	// Restrict selects the rows of interest before pairing.
	Restrict []Match

	Markers Markers

	// Window selects the observation window of the derived
	// durations.
	Window Selection

	// Drop lists extra columns removed together with the window
	// columns, if present.
	Drop []string

	// Scaled reports whether means are converted with the target's
	// tick period.
	Scaled bool

	Tab Tabulation
}

// DefaultWindow is the observation point both stock variants reduce.
const DefaultWindow = "PERPRO_TIMWIN_0"

// DurationVariant reduces tick-counter execution times into baseline
// and elongation matrices.
func DurationVariant() *Variant {
	return &Variant{
		Name:     "duration",
		Required: append([]string(nil), BaseRequired...),
		Restrict: []Match{{ColEventID, "ticks"}, {ColPartition, "3"}},
		Markers:  DefaultMarkers,
		Window: Selection{
			Event: Match{ColEventID, "ticks"},
			Point: DefaultWindow,
			Flag:  Match{ColLimiter, "0"},
		},
		Scaled: true,
		Tab:    MatrixTab,
	}
}

// CounterVariant reduces hardware performance-counter deltas into one
// series per counter event.
func CounterVariant() *Variant {
	return &Variant{
		Name:     "counter",
		Required: append(append([]string(nil), BaseRequired...), ColEventType, ColEventName),
		Restrict: []Match{{ColEventType, "core_PMC"}, {ColPartition, "3"}},
		Markers:  DefaultMarkers,
		Window: Selection{
			Event: Match{ColEventType, "core_PMC"},
			Point: DefaultWindow,
			Flag:  Match{ColLimiter, "0"},
		},
		Drop:   []string{"ucName", "core2AppElf", "core3AppElf"},
		Scaled: false,
		Tab:    SeriesTab,
	}
}

// VariantByName returns the stock variant called name.
func VariantByName(name string) (*Variant, error) {
	switch name {
	case "duration":
		return DurationVariant(), nil
	case "counter":
		return CounterVariant(), nil
	}
	return nil, fmt.Errorf("unknown mode %q (want duration or counter)", name)
}

// SetEvent changes the event value both the restriction and the window
// select.
func (v *Variant) SetEvent(value string) {
	v.Window.Event.Value = value
	for i := range v.Restrict {
		if v.Restrict[i].Column == v.Window.Event.Column {
			v.Restrict[i].Value = value
		}
	}
}

// SetTab changes how v tabulates its means. Series are keyed by
// event name, so a series tabulation requires that column.
func (v *Variant) SetTab(tab Tabulation) {
	v.Tab = tab
	if tab != SeriesTab {
		return
	}
	for _, c := range v.Required {
		if c == ColEventName {
			return
		}
	}
	v.Required = append(v.Required, ColEventName)
}

// SetPartition changes the partition the restriction selects.
func (v *Variant) SetPartition(value string) {
	for i := range v.Restrict {
		if v.Restrict[i].Column == ColPartition {
			v.Restrict[i].Value = value
		}
	}
}
