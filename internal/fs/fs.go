// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fs provides a backend-independent interface to the files
// stressmap reads logs from and writes reports to.
package fs

import (
	"context"
	"io"
	"strings"
)

// An FS stores named files.
type FS interface {
	// NewReader opens the named file for reading.
	NewReader(ctx context.Context, name string) (io.ReadCloser, error)

	// NewWriter creates a new file. metadata is stored alongside
	// the file where the backend supports it.
	NewWriter(ctx context.Context, name string, metadata map[string]string) (Writer, error)
}

// A Writer is an io.Writer that can also be closed with an error.
type Writer interface {
	io.WriteCloser
	// CloseWithError cancels the write, discarding any partial
	// data.
	CloseWithError(error) error
}

// GCSPrefix marks a Google Cloud Storage location.
const GCSPrefix = "gs://"

// SplitGCS splits "gs://bucket/path" into its bucket and path. It
// reports false for locations that are not in Cloud Storage.
func SplitGCS(loc string) (bucket, path string, ok bool) {
	if !strings.HasPrefix(loc, GCSPrefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(loc, GCSPrefix)
	bucket, path, _ = strings.Cut(rest, "/")
	return bucket, strings.TrimSuffix(path, "/"), bucket != ""
}

// Join joins a directory and a file name with "/", the separator of
// every backend.
func Join(dir, name string) string {
	if dir == "" {
		return name
	}
	return strings.TrimSuffix(dir, "/") + "/" + name
}
