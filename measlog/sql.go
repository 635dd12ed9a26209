// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measlog

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/timingharness/stressmap/measproc"
	"go.uber.org/multierr"
)

// An SQLSource reads a measurement log stored as one database table.
// Only mysql and sqlite3 are explicitly supported; the driver must be
// registered by the caller.
type SQLSource struct {
	Driver string // database/sql driver name
	DSN    string // data source name, as for sql.Open
	Table  string
}

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseSQLSource parses a source of the form "driver:dsn#table". It
// reports false if s does not name one of the supported drivers.
func ParseSQLSource(s string) (*SQLSource, bool, error) {
	driver, rest, ok := strings.Cut(s, ":")
	if !ok || (driver != "sqlite3" && driver != "mysql") {
		return nil, false, nil
	}
	i := strings.LastIndex(rest, "#")
	if i < 0 {
		return nil, true, fmt.Errorf("%s: missing #table", s)
	}
	src := &SQLSource{Driver: driver, DSN: rest[:i], Table: rest[i+1:]}
	if !identRE.MatchString(src.Table) {
		return nil, true, fmt.Errorf("%s: invalid table name %q", s, src.Table)
	}
	return src, true, nil
}

func (s *SQLSource) String() string {
	return s.Driver + ":" + s.DSN + "#" + s.Table
}

// Read loads every row of the source table.
func (s *SQLSource) Read(ctx context.Context) (t *table.Table, err error) {
	if !identRE.MatchString(s.Table) {
		return nil, fmt.Errorf("invalid table name %q", s.Table)
	}
	db, err := sql.Open(s.Driver, s.DSN)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, db.Close())
	}()
	return ReadSQL(ctx, db, s.Table)
}

// ReadSQL loads every row of the named table from db.
func ReadSQL(ctx context.Context, db *sql.DB, name string) (t *table.Table, err error) {
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+name)
	if err != nil {
		return nil, fmt.Errorf("reading table %s: %w", name, err)
	}
	defer func() {
		err = multierr.Append(err, rows.Close())
	}()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	valCol := -1
	for i, c := range cols {
		if c == measproc.ColValue {
			valCol = i
		}
	}

	data := make([][]string, len(cols))
	vals := []float64{}
	cells := make([]sql.NullString, len(cols))
	dest := make([]interface{}, len(cols))
	for i := range cells {
		dest[i] = &cells[i]
	}
	for n := 1; rows.Next(); n++ {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", name, n, err)
		}
		for i, c := range cells {
			data[i] = append(data[i], c.String)
		}
		if valCol >= 0 {
			v := math.NaN()
			if c := cells[valCol]; c.Valid && strings.TrimSpace(c.String) != "" {
				v, err = strconv.ParseFloat(strings.TrimSpace(c.String), 64)
				if err != nil {
					return nil, &SyntaxError{name, n, fmt.Sprintf("parsing %s: %q", measproc.ColValue, c.String)}
				}
			}
			vals = append(vals, v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var b table.Builder
	for i, c := range cols {
		if data[i] == nil {
			data[i] = []string{}
		}
		if i == valCol {
			b.Add(c, vals)
		} else {
			b.Add(c, data[i])
		}
	}
	return b.Done(), nil
}
