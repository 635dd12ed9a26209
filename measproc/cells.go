// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measproc

import (
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
)

// sameValue reports whether the descriptor cell holds want. Cells
// compare numerically when both sides parse as numbers, so "3" and
// "3.0" match.
func sameValue(cell, want string) bool {
	if cell == want {
		return true
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return false
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(want), 64)
	return err == nil && a == b
}

// asStrings renders a descriptor column as strings. It reports false
// for column types that have no textual form.
func asStrings(col table.Slice) ([]string, bool) {
	switch col := col.(type) {
	case []string:
		return col, true
	case []int:
		out := make([]string, len(col))
		for i, v := range col {
			out[i] = strconv.Itoa(v)
		}
		return out, true
	case []int64:
		out := make([]string, len(col))
		for i, v := range col {
			out[i] = strconv.FormatInt(v, 10)
		}
		return out, true
	case []float64:
		out := make([]string, len(col))
		for i, v := range col {
			out[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		return out, true
	}
	return nil, false
}

// emptyLike returns a zero-row table with the given string columns
// followed by the given float64 columns.
func emptyLike(strs []string, floats ...string) *table.Table {
	var nt table.Builder
	for _, c := range strs {
		nt.Add(c, []string{})
	}
	for _, c := range floats {
		nt.Add(c, []float64{})
	}
	return nt.Done()
}
