// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measlog

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestRead(t *testing.T) {
	in := "core0AppElf, measurement_value,part_id\n" +
		"A,10,3\n" +
		"B,,3\n" +
		"\"C,D\",-1.5e3,4\n"
	got, err := Read(strings.NewReader(in), "test", ',')
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"core0AppElf", "measurement_value", "part_id"}, got.Columns()); diff != "" {
		t.Errorf("columns (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A", "B", "C,D"}, got.Column("core0AppElf")); diff != "" {
		t.Errorf("elf column (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{10, math.NaN(), -1500}, got.Column("measurement_value"), cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("value column (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"3", "3", "4"}, got.Column("part_id")); diff != "" {
		t.Errorf("part column (-want +got):\n%s", diff)
	}
}

func TestReadTSV(t *testing.T) {
	got, err := Read(strings.NewReader("\ufeffa\tmeasurement_value\nx\t1\n"), "test.tsv", '\t')
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"x"}, got.Column("a")); diff != "" {
		t.Errorf("column a (-want +got):\n%s", diff)
	}
}

func TestReadErrors(t *testing.T) {
	for _, test := range []struct {
		name, input string
		want        *SyntaxError
	}{
		{"empty", "", &SyntaxError{"test", 1, "missing header"}},
		{"duplicate column", "a,a\n1,2\n", &SyntaxError{"test", 1, `duplicate column "a"`}},
		{"field count", "a,measurement_value\nx,1\ny\n", &SyntaxError{"test", 3, "wrong number of fields"}},
		{"bad value", "a,measurement_value\nx,1\ny,abc\n", &SyntaxError{"test", 3, "parsing measurement_value: invalid syntax"}},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(test.input), "test", ',')
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("want *SyntaxError, got %v", err)
			}
			if diff := cmp.Diff(test.want, se); diff != "" {
				t.Errorf("error (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string) string {
		t.Helper()
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(data), 0666); err != nil {
			t.Fatal(err)
		}
		return p
	}
	a := write("a.csv", "elf,measurement_value\nA,1\n")
	b := write("b.tsv", "measurement_value\telf\n2\tB\n")
	c := write("c.csv", "elf,other\nC,x\n")

	f := &Files{Paths: []string{a, b}}
	got, err := f.Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"A", "B"}, got.Column("elf")); diff != "" {
		t.Errorf("elf (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 2}, got.Column("measurement_value")); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}

	f = &Files{Paths: []string{a, c}}
	if _, err := f.Read(context.Background()); err == nil {
		t.Errorf("mismatched columns: want error")
	}

	f = &Files{AllowStdin: true, Stdin: strings.NewReader("elf,measurement_value\nS,3\n")}
	got, err = f.Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"S"}, got.Column("elf")); diff != "" {
		t.Errorf("stdin (-want +got):\n%s", diff)
	}

	opened := ""
	f = &Files{
		Paths: []string{"gs://bucket/log.csv"},
		Open: func(_ context.Context, p string) (io.ReadCloser, error) {
			opened = p
			return io.NopCloser(strings.NewReader("elf,measurement_value\nG,4\n")), nil
		},
	}
	if _, err := f.Read(context.Background()); err != nil || opened != "gs://bucket/log.csv" {
		t.Errorf("custom open: opened %q, err %v", opened, err)
	}
}

func TestWrite(t *testing.T) {
	tab, err := Read(strings.NewReader("elf,measurement_value\nA,1.5\nB,\n"), "test", ',')
	if err != nil {
		t.Fatal(err)
	}
	var buf strings.Builder
	if err := Write(&buf, tab); err != nil {
		t.Fatal(err)
	}
	want := "elf,measurement_value\nA,1.5\nB,\n"
	if buf.String() != want {
		t.Errorf("want:\n%sgot:\n%s", want, buf.String())
	}
}
