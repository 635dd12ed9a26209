// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/timingharness/stressmap/internal/fs"
	"github.com/timingharness/stressmap/internal/fs/gcs"
	"github.com/timingharness/stressmap/internal/fs/local"
	"github.com/timingharness/stressmap/measchart"
	"go.uber.org/multierr"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

// tokenEnv names the environment variable holding a Cloud Storage
// access token.
const tokenEnv = "STRESSMAP_GCS_TOKEN"

// backends resolves locations to the file system holding them. Cloud
// Storage clients are created on first use, one per bucket.
type backends struct {
	ctx     context.Context
	opts    []option.ClientOption
	local   *local.FS
	buckets map[string]*gcs.FS
}

func newBackends(ctx context.Context, credsFile, token string) *backends {
	b := &backends{ctx: ctx, local: local.NewFS(""), buckets: make(map[string]*gcs.FS)}
	if credsFile != "" {
		b.opts = append(b.opts, option.WithCredentialsFile(credsFile))
	}
	if token == "" {
		token = os.Getenv(tokenEnv)
	}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		b.opts = append(b.opts, option.WithTokenSource(ts))
	}
	return b
}

// resolve returns the file system holding loc and the name of loc
// within it.
func (b *backends) resolve(loc string) (fs.FS, string, error) {
	bucket, name, ok := fs.SplitGCS(loc)
	if !ok {
		if strings.HasPrefix(loc, fs.GCSPrefix) {
			return nil, "", fmt.Errorf("%s: missing bucket", loc)
		}
		return b.local, loc, nil
	}
	if g := b.buckets[bucket]; g != nil {
		return g, name, nil
	}
	g, err := gcs.NewFS(b.ctx, bucket, b.opts...)
	if err != nil {
		return nil, "", fmt.Errorf("opening bucket %s: %w", bucket, err)
	}
	b.buckets[bucket] = g
	return g, name, nil
}

func (b *backends) open(ctx context.Context, loc string) (io.ReadCloser, error) {
	fsys, name, err := b.resolve(loc)
	if err != nil {
		return nil, err
	}
	return fsys.NewReader(ctx, name)
}

// output returns a writer of report files into dir.
func (b *backends) output(dir string) (*output, error) {
	fsys, name, err := b.resolve(dir)
	if err != nil {
		return nil, err
	}
	return &output{ctx: b.ctx, fs: fsys, dir: name}, nil
}

func (b *backends) Close() error {
	var err error
	for _, g := range b.buckets {
		err = multierr.Append(err, g.Close())
	}
	return err
}

// An output writes report files into one directory.
type output struct {
	ctx context.Context
	fs  fs.FS
	dir string
}

// write creates the named file and fills it with fn. If fn fails, the
// partial file is discarded.
func (o *output) write(name string, fn func(io.Writer) error) (err error) {
	w, err := o.fs.NewWriter(o.ctx, fs.Join(o.dir, name), map[string]string{"generator": "stressmap"})
	if err != nil {
		return err
	}
	if err := fn(w); err != nil {
		return multierr.Append(fmt.Errorf("writing %s: %w", name, err), w.CloseWithError(err))
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// writeChart writes a chart rendered into buf by a call that returned
// renderErr. A chart with nothing to draw is skipped with a warning.
// It reports whether the chart was written.
func (o *output) writeChart(name string, buf *bytes.Buffer, renderErr error, log *logrus.Logger) (bool, error) {
	if errors.Is(renderErr, measchart.ErrEmpty) {
		log.WithField("chart", name).Warn("no data to draw")
		return false, nil
	}
	if renderErr != nil {
		return false, renderErr
	}
	err := o.write(name, func(w io.Writer) error {
		_, err := buf.WriteTo(w)
		return err
	})
	return err == nil, err
}
