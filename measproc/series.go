// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measproc

import (
	"github.com/aclements/go-gg/table"
)

// A Point is one labelled value of a Series.
type Point struct {
	Label string
	Value float64
}

// A Series holds the values of one event across applications.
type Series struct {
	Event  string
	Points []Point
}

// SeriesByEvent splits t into one Series per distinct value of event,
// in order of first appearance. The points of each series are the
// label and value cells of its rows, sorted by label; rows with equal
// labels keep their input order.
func SeriesByEvent(t *table.Table, event, label, value string) ([]*Series, error) {
	for _, c := range []string{event, label} {
		if _, ok := t.Column(c).([]string); !ok {
			return nil, &KeyError{Stage: "series", Missing: []string{c}}
		}
	}
	if _, ok := t.Column(value).([]float64); !ok {
		return nil, &KeyError{Stage: "series", Missing: []string{value}}
	}
	if t.Len() == 0 {
		return nil, nil
	}

	g := table.SortBy(table.GroupBy(t, event), label)
	var out []*Series
	for _, gid := range g.Tables() {
		sub := g.Table(gid)
		s := &Series{Event: gid.Label().(string)}
		labels := sub.MustColumn(label).([]string)
		values := sub.MustColumn(value).([]float64)
		for i := range labels {
			s.Points = append(s.Points, Point{labels[i], values[i]})
		}
		out = append(out, s)
	}
	return out, nil
}
