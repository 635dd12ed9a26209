// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measproc

import (
	"strconv"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// Validate checks that t carries every column in required and that
// its value column, if present, is numeric.
func Validate(t *table.Table, required []string) error {
	var err SchemaError
	for _, col := range required {
		if t.Column(col) == nil {
			err.Missing = append(err.Missing, col)
		}
	}
	if c := t.Column(ColValue); c != nil {
		if _, ok := c.([]float64); !ok {
			err.NotNumeric = append(err.NotNumeric, ColValue)
		}
	}
	if len(err.Missing) > 0 || len(err.NotNumeric) > 0 {
		return &err
	}
	return nil
}

type identitySource struct {
	elf, id, ident string
}

var identitySources = []identitySource{
	{ColCore0Elf, ColCore0Id, ColCore0Ident},
	{ColCore1Elf, ColCore1Id, ColCore1Ident},
}

// Cleanse drops invalid measurements and derives the per-core
// application identities.
//
// Rows whose value is Sentinel are removed. Each remaining row gains
// ColCore0Ident and ColCore1Ident, formed as elf + "_" + id, and loses
// the four raw identity columns and ColPointID. Descriptor columns are
// rendered as strings and the begin/end marker is canonicalized to
// "1" (begin) or "0" (end) when it parses as a boolean or number.
//
// An identity source column that is absent or that has an empty cell
// is reported as a *MalformedIdentityError.
func Cleanse(t *table.Table) (*table.Table, error) {
	vals, ok := t.Column(ColValue).([]float64)
	if !ok {
		return nil, &SchemaError{NotNumeric: []string{ColValue}}
	}

	keep := make([]int, 0, len(vals))
	for i, v := range vals {
		if v != Sentinel {
			keep = append(keep, i)
		}
	}

	drop := map[string]bool{ColPointID: true}
	var idents [][]string
	for _, src := range identitySources {
		drop[src.elf], drop[src.id] = true, true
		elfs, err := identityColumn(t, src.elf, keep)
		if err != nil {
			return nil, err
		}
		ids, err := identityColumn(t, src.id, keep)
		if err != nil {
			return nil, err
		}
		ident := make([]string, len(keep))
		for i := range ident {
			ident[i] = elfs[i] + "_" + ids[i]
		}
		idents = append(idents, ident)
	}

	var nt table.Builder
	for _, col := range t.Columns() {
		if drop[col] {
			continue
		}
		data := slice.Select(t.Column(col), keep)
		if col != ColValue {
			if ss, ok := asStrings(data); ok {
				data = ss
			}
		}
		if col == ColMarker {
			if ss, ok := data.([]string); ok {
				for i, m := range ss {
					ss[i] = canonMarker(m)
				}
			}
		}
		nt.Add(col, data)
	}
	for i, src := range identitySources {
		nt.Add(src.ident, idents[i])
	}
	return nt.Done(), nil
}

// identityColumn returns the kept cells of an identity source column,
// trimmed, rejecting empty cells.
func identityColumn(t *table.Table, col string, keep []int) ([]string, error) {
	ss, ok := asStrings(t.Column(col))
	if !ok {
		return nil, &MalformedIdentityError{Column: col, Row: -1}
	}
	out := make([]string, len(keep))
	for i, row := range keep {
		v := strings.TrimSpace(ss[row])
		if v == "" || strings.EqualFold(v, "nan") {
			return nil, &MalformedIdentityError{Column: col, Row: i, Value: ss[row]}
		}
		out[i] = v
	}
	return out, nil
}

func canonMarker(m string) string {
	s := strings.TrimSpace(m)
	if b, err := strconv.ParseBool(s); err == nil {
		if b {
			return "1"
		}
		return "0"
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		switch f {
		case 1:
			return "1"
		case 0:
			return "0"
		}
	}
	return m
}

// IsNeutral reports whether ident names the neutral (idle)
// application, whose raw id is 0.
func IsNeutral(ident string) bool {
	i := strings.LastIndexByte(ident, '_')
	if i < 0 {
		return false
	}
	return sameValue(ident[i+1:], "0")
}

// A Match selects rows whose Column holds Value. Values compare
// numerically when both parse as numbers.
type Match struct {
	Column, Value string
}

func (m Match) String() string {
	return m.Column + "=" + m.Value
}

// Restrict keeps the rows of t that satisfy every match.
func Restrict(t *table.Table, ms ...Match) (*table.Table, error) {
	var missing []string
	for _, m := range ms {
		if _, ok := t.Column(m.Column).([]string); !ok {
			missing = append(missing, m.Column)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	var g table.Grouping = t
	for _, m := range ms {
		want := m.Value
		g = table.Filter(g, func(v string) bool { return sameValue(v, want) }, m.Column)
	}
	return table.Flatten(g), nil
}
