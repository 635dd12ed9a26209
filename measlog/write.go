// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"

	"github.com/aclements/go-gg/table"
)

// Write writes t to w as comma-separated values with a header row.
// NaN cells are written empty.
func Write(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	cols := t.Columns()
	if err := cw.Write(cols); err != nil {
		return err
	}
	cells := make([]func(int) string, len(cols))
	for i, c := range cols {
		cells[i] = formatter(t.Column(c))
	}
	rec := make([]string, len(cols))
	for row := 0; row < t.Len(); row++ {
		for i := range cells {
			rec[i] = cells[i](row)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatter(col table.Slice) func(int) string {
	switch col := col.(type) {
	case []string:
		return func(i int) string { return col[i] }
	case []float64:
		return func(i int) string { return FormatFloat(col[i]) }
	}
	v := reflect.ValueOf(col)
	return func(i int) string { return fmt.Sprint(v.Index(i).Interface()) }
}

// FormatFloat formats a measurement for a CSV cell: the shortest
// decimal representation, or "" for NaN.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
