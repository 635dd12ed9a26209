// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measlog

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/aclements/go-gg/table"
	"go.uber.org/multierr"
)

// A Files reads a measurement log split across a sequence of files.
// All files must have the same set of columns; their rows are
// concatenated in order.
//
// Files ending in ".tsv" are tab-delimited; all others are
// comma-delimited.
type Files struct {
	// Paths is the list of file names to read in.
	Paths []string

	// AllowStdin indicates that the path "-" should be treated as
	// stdin and if the file list is empty, it should be treated
	// as consisting of stdin.
	AllowStdin bool

	// Stdin is read in place of os.Stdin if non-nil.
	Stdin io.Reader

	// Open opens a path. If nil, paths are opened with os.Open.
	Open func(ctx context.Context, path string) (io.ReadCloser, error)
}

// Read reads and concatenates every file of f.
func (f *Files) Read(ctx context.Context) (*table.Table, error) {
	paths := f.Paths
	if f.AllowStdin && len(paths) == 0 {
		paths = []string{"-"}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input files")
	}

	var tabs []table.Grouping
	for _, p := range paths {
		t, err := f.readOne(ctx, p)
		if err != nil {
			return nil, err
		}
		if len(tabs) > 0 {
			if err := sameColumns(tabs[0].Columns(), t.Columns()); err != nil {
				return nil, fmt.Errorf("%s: %w", p, err)
			}
		}
		tabs = append(tabs, t)
	}
	if len(tabs) == 1 {
		return tabs[0].(*table.Table), nil
	}
	return table.Flatten(table.Concat(tabs...)), nil
}

func (f *Files) readOne(ctx context.Context, p string) (t *table.Table, err error) {
	if f.AllowStdin && p == "-" {
		in := f.Stdin
		if in == nil {
			in = os.Stdin
		}
		return Read(in, "<stdin>", ',')
	}

	var r io.ReadCloser
	if f.Open != nil {
		r, err = f.Open(ctx, p)
	} else {
		r, err = os.Open(p)
	}
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, r.Close())
	}()
	return Read(r, p, Delimiter(p))
}

// Delimiter returns the field delimiter for the named file.
func Delimiter(name string) rune {
	if strings.EqualFold(path.Ext(name), ".tsv") {
		return '\t'
	}
	return ','
}

func sameColumns(want, got []string) error {
	set := make(map[string]bool, len(want))
	for _, c := range want {
		set[c] = true
	}
	ok := len(want) == len(got)
	for _, c := range got {
		ok = ok && set[c]
	}
	if !ok {
		return fmt.Errorf("columns %q differ from first file's %q", got, want)
	}
	return nil
}
