// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package targetinfo

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeTarget(t *testing.T, dir, name, data string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0666); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeTarget(t, dir, "tc397.yml", "ticker_period: 10\ncores: 6\n")
	writeTarget(t, dir, "tc387.yaml", "name: aurix\nticker_period: 12.5\n")
	writeTarget(t, dir, "bad.yml", "cores: 2\n")
	writeTarget(t, dir, "junk.yml", "ticker_period: [\n")

	got, err := Load(dir, "tc397")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(&Info{Name: "tc397", TickerPeriod: 10, Cores: 6}, got); diff != "" {
		t.Errorf("tc397 (-want +got):\n%s", diff)
	}

	got, err = Load(dir, "tc387")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "aurix" || got.TickerPeriod != 12.5 {
		t.Errorf("tc387: got %+v", got)
	}

	var le *LookupError
	_, err = Load(dir, "missing")
	if !errors.As(err, &le) || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing target: got %v", err)
	}
	_, err = Load(dir, "bad")
	if !errors.Is(err, ErrNoPeriod) {
		t.Errorf("no period: got %v", err)
	}
	if _, err = Load(dir, "junk"); !errors.As(err, &le) {
		t.Errorf("malformed YAML: got %v", err)
	}
	if _, err = Load(dir, "../tc397"); !errors.As(err, &le) {
		t.Errorf("path in target name: got %v", err)
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv(DirEnv, "/opt/targets")
	if got := DefaultDir(); got != "/opt/targets" {
		t.Errorf("DefaultDir() = %q with %s set", got, DirEnv)
	}
}
