// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package local

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	fs := NewFS(t.TempDir())

	w, err := fs.NewWriter(ctx, "sub/heatmap.csv", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(w, "a,b\n"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := fs.NewReader(ctx, "sub/heatmap.csv")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "a,b\n" {
		t.Errorf("read %q, want %q", got, "a,b\n")
	}
}

func TestCloseWithError(t *testing.T) {
	dir := t.TempDir()
	fs := NewFS(dir)
	w, err := fs.NewWriter(context.Background(), "partial.csv", nil)
	if err != nil {
		t.Fatal(err)
	}
	io.WriteString(w, "half")
	if err := w.CloseWithError(errors.New("abort")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "partial.csv")); !os.IsNotExist(err) {
		t.Errorf("partial file still present: %v", err)
	}
}
