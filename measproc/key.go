// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measproc

import (
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
)

// A Key is an ordered set of descriptor columns that together
// identify one logical measurement context. Rows with equal values in
// every key column describe the same context.
//
// Keys are values; the methods that narrow or extend a key return a
// new Key and leave the receiver unchanged.
type Key struct {
	fields []string
}

// NewKey returns a key over the named fields, in order. Duplicate
// names are ignored.
func NewKey(fields ...string) Key {
	var k Key
	return k.With(fields...)
}

// KeyOf returns the key made of every column of t except those in
// exclude, in table order.
func KeyOf(t *table.Table, exclude ...string) Key {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}
	var fields []string
	for _, col := range t.Columns() {
		if !skip[col] {
			fields = append(fields, col)
		}
	}
	return NewKey(fields...)
}

// Fields returns the key's column names.
func (k Key) Fields() []string {
	return append([]string(nil), k.fields...)
}

func (k Key) Len() int {
	return len(k.fields)
}

// Has reports whether field is part of k.
func (k Key) Has(field string) bool {
	for _, f := range k.fields {
		if f == field {
			return true
		}
	}
	return false
}

// Without returns k minus the named fields.
func (k Key) Without(fields ...string) Key {
	drop := make(map[string]bool, len(fields))
	for _, f := range fields {
		drop[f] = true
	}
	var out Key
	for _, f := range k.fields {
		if !drop[f] {
			out.fields = append(out.fields, f)
		}
	}
	return out
}

// With returns k extended by the named fields that are not already
// part of it.
func (k Key) With(fields ...string) Key {
	out := Key{append([]string(nil), k.fields...)}
	for _, f := range fields {
		if !out.Has(f) {
			out.fields = append(out.fields, f)
		}
	}
	return out
}

func (k Key) String() string {
	return "(" + strings.Join(k.fields, ", ") + ")"
}

// check verifies that t carries exactly the columns of k plus other,
// and that every key column holds strings.
func (k Key) check(t *table.Table, stage string, other ...string) error {
	want := k.With(other...)
	have := make(map[string]bool)
	var extra []string
	for _, col := range t.Columns() {
		have[col] = true
		if !want.Has(col) {
			extra = append(extra, col)
		}
	}
	var missing []string
	for _, f := range want.fields {
		if !have[f] {
			missing = append(missing, f)
		}
	}
	for _, f := range k.fields {
		if have[f] {
			if _, ok := t.Column(f).([]string); !ok {
				missing = append(missing, f+" (as strings)")
			}
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		return &KeyError{Stage: stage, Missing: missing, Extra: extra}
	}
	return nil
}

// encoder returns a function that maps a row of t to a string that is
// equal for two rows exactly when their key columns are equal. The
// columns of k must be string columns of t.
func (k Key) encoder(t *table.Table) func(row int) string {
	cols := make([][]string, len(k.fields))
	for i, f := range k.fields {
		cols[i] = t.MustColumn(f).([]string)
	}
	var buf strings.Builder
	return func(row int) string {
		buf.Reset()
		for _, col := range cols {
			// Length-prefix each cell so no value can
			// spill into its neighbour.
			buf.WriteString(strconv.Itoa(len(col[row])))
			buf.WriteByte(':')
			buf.WriteString(col[row])
		}
		return buf.String()
	}
}

// describe renders the key values of row in t for messages.
func (k Key) describe(t *table.Table, row int) string {
	parts := make([]string, len(k.fields))
	for i, f := range k.fields {
		parts[i] = f + "=" + t.MustColumn(f).([]string)[row]
	}
	return strings.Join(parts, " ")
}
