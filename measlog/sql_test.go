// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measlog

import (
	"context"
	"database/sql"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	_ "github.com/mattn/go-sqlite3"
)

func TestReadSQL(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	for _, q := range []string{
		`CREATE TABLE runs (core0AppElf TEXT, core0AppId INTEGER, measurement_value REAL)`,
		`INSERT INTO runs VALUES ('A', 1, 10.5), ('B', 2, NULL), (NULL, 3, 7)`,
	} {
		if _, err := db.Exec(q); err != nil {
			t.Fatal(err)
		}
	}

	got, err := ReadSQL(context.Background(), db, "runs")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"A", "B", ""}, got.Column("core0AppElf")); diff != "" {
		t.Errorf("elf (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "2", "3"}, got.Column("core0AppId")); diff != "" {
		t.Errorf("id (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{10.5, math.NaN(), 7}, got.Column("measurement_value"), cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
}

func TestParseSQLSource(t *testing.T) {
	check := func(s string, want *SQLSource, wantOK, wantErr bool) {
		t.Helper()
		got, ok, err := ParseSQLSource(s)
		if ok != wantOK || (err != nil) != wantErr {
			t.Fatalf("ParseSQLSource(%q): ok=%v err=%v", s, ok, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ParseSQLSource(%q) (-want +got):\n%s", s, diff)
		}
	}
	check("sqlite3:/tmp/runs.db#runs", &SQLSource{"sqlite3", "/tmp/runs.db", "runs"}, true, false)
	check("mysql:root:@cloudsql(p:r:i)/db#th_51", &SQLSource{"mysql", "root:@cloudsql(p:r:i)/db", "th_51"}, true, false)
	check("sqlite3:/tmp/runs.db", nil, true, true)
	check("sqlite3:x#runs; DROP TABLE runs", nil, true, true)
	check("log.csv", nil, false, false)
	check("C:/logs/log.csv", nil, false, false)
}
