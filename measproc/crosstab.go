// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measproc

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-gg/table"
)

// A Matrix is a two-way table of values indexed by row and column
// labels. Cells with no value hold NaN.
type Matrix struct {
	// RowName and ColName name the columns the labels came from.
	RowName, ColName string

	Rows, Cols []string

	// Values is indexed [row][col].
	Values [][]float64
}

// At returns the value at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// Defined reports whether cell (i, j) holds a value.
func (m *Matrix) Defined(i, j int) bool {
	return !math.IsNaN(m.Values[i][j])
}

// Lookup returns the value at the named row and column.
func (m *Matrix) Lookup(row, col string) (float64, bool) {
	i, j := index(m.Rows, row), index(m.Cols, col)
	if i < 0 || j < 0 || !m.Defined(i, j) {
		return math.NaN(), false
	}
	return m.Values[i][j], true
}

func index(ss []string, s string) int {
	i := sort.SearchStrings(ss, s)
	if i < len(ss) && ss[i] == s {
		return i
	}
	return -1
}

// CrossTab lays value out as a matrix with one row per distinct value
// of row and one column per distinct value of col, both sorted. A
// (row, col) pair that occurs more than once keeps its first value and
// is reported in the returned warnings.
func CrossTab(t *table.Table, row, col, value string) (*Matrix, []error, error) {
	rs, ok1 := t.Column(row).([]string)
	cs, ok2 := t.Column(col).([]string)
	vs, ok3 := t.Column(value).([]float64)
	if !ok1 || !ok2 || !ok3 {
		return nil, nil, &KeyError{Stage: "crosstab", Missing: missingOf(t, row, col, value)}
	}

	m := &Matrix{RowName: row, ColName: col}
	m.Rows = distinctSorted(rs)
	m.Cols = distinctSorted(cs)
	m.Values = make([][]float64, len(m.Rows))
	set := make([][]bool, len(m.Rows))
	for i := range m.Values {
		m.Values[i] = make([]float64, len(m.Cols))
		for j := range m.Values[i] {
			m.Values[i][j] = math.NaN()
		}
		set[i] = make([]bool, len(m.Cols))
	}

	var warnings []error
	for k := range vs {
		i, j := index(m.Rows, rs[k]), index(m.Cols, cs[k])
		if set[i][j] {
			warnings = append(warnings, fmt.Errorf("%s: several values for %s=%s, %s=%s; keeping the first", value, row, rs[k], col, cs[k]))
			continue
		}
		set[i][j] = true
		m.Values[i][j] = vs[k]
	}
	return m, warnings, nil
}

func distinctSorted(ss []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range ss {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// missingOf names the columns that are absent from t or have the
// wrong type for CrossTab.
func missingOf(t *table.Table, row, col, value string) []string {
	var missing []string
	for _, c := range []string{row, col} {
		if _, ok := t.Column(c).([]string); !ok {
			missing = append(missing, c)
		}
	}
	if _, ok := t.Column(value).([]float64); !ok {
		missing = append(missing, value)
	}
	return missing
}
