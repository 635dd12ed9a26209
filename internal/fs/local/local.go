// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package local implements the fs.FS interface on the local disk.
package local

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/timingharness/stressmap/internal/fs"
)

// FS is a local file system rooted at a directory.
type FS struct {
	root string
}

// NewFS returns an FS that resolves relative names against root.
// Absolute names are used as is.
func NewFS(root string) *FS {
	return &FS{root: root}
}

func (f *FS) path(name string) string {
	name = filepath.FromSlash(name)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(f.root, name)
}

// NewReader opens the named file.
func (f *FS) NewReader(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(f.path(name))
}

// NewWriter creates the named file and any missing parent
// directories. Metadata is ignored.
func (f *FS) NewWriter(_ context.Context, name string, _ map[string]string) (fs.Writer, error) {
	p := f.path(name)
	if err := os.MkdirAll(filepath.Dir(p), 0777); err != nil {
		return nil, err
	}
	file, err := os.Create(p)
	if err != nil {
		return nil, err
	}
	return &wc{file}, nil
}

type wc struct {
	*os.File
}

func (w *wc) CloseWithError(error) error {
	w.File.Close()
	return os.Remove(w.File.Name())
}
