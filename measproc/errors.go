// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measproc

import (
	"fmt"
	"strings"
)

// A SchemaError reports a log that lacks required columns or whose
// value column is not numeric.
type SchemaError struct {
	Missing []string

	// NotNumeric lists required numeric columns holding
	// non-numeric data.
	NotNumeric []string
}

func (e *SchemaError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required column(s) "+quoteAll(e.Missing))
	}
	if len(e.NotNumeric) > 0 {
		parts = append(parts, "non-numeric column(s) "+quoteAll(e.NotNumeric))
	}
	return "measurement log " + strings.Join(parts, "; ")
}

// A MalformedIdentityError reports a row whose application identity
// cannot be formed.
type MalformedIdentityError struct {
	Column string
	// Row is the 0-based row index after sentinel removal, or -1
	// if the column itself is absent or has an unusable type.
	Row   int
	Value string
}

func (e *MalformedIdentityError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("identity column %q is absent or not a string or number column", e.Column)
	}
	return fmt.Sprintf("row %d: malformed identity in column %q: %q", e.Row, e.Column, e.Value)
}

// A KeyError reports a table whose columns drifted from the
// descriptor key a stage was given.
type KeyError struct {
	Stage   string
	Missing []string // key or stage columns absent from the table
	Extra   []string // table columns not accounted for
}

func (e *KeyError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+quoteAll(e.Missing))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, "unexpected "+quoteAll(e.Extra))
	}
	return fmt.Sprintf("%s: table does not match descriptor key: %s", e.Stage, strings.Join(parts, ", "))
}

func quoteAll(ss []string) string {
	q := make([]string, len(ss))
	for i, s := range ss {
		q[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(q, ", ")
}
