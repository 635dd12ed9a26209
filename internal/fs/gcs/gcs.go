// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gcs implements the fs.FS interface using Google Cloud Storage.
package gcs

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"github.com/timingharness/stressmap/internal/fs"
	"google.golang.org/api/option"
)

// FS is a Cloud Storage bucket.
type FS struct {
	client *storage.Client
	bucket *storage.BucketHandle
}

// NewFS constructs an FS that accesses the named bucket. opts are
// passed to the storage client, e.g. to supply credentials.
func NewFS(ctx context.Context, bucketName string, opts ...option.ClientOption) (*FS, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &FS{client: client, bucket: client.Bucket(bucketName)}, nil
}

// NewReader opens the named object.
func (f *FS) NewReader(ctx context.Context, name string) (io.ReadCloser, error) {
	return f.bucket.Object(name).NewReader(ctx)
}

// NewWriter creates the named object with the given metadata. The
// object becomes visible once the writer is closed.
func (f *FS) NewWriter(ctx context.Context, name string, metadata map[string]string) (fs.Writer, error) {
	w := f.bucket.Object(name).NewWriter(ctx)
	w.ObjectAttrs.Metadata = metadata
	w.ContentType = contentType(name)
	return w, nil
}

// Close releases the storage client.
func (f *FS) Close() error {
	return f.client.Close()
}
