// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fs

import "testing"

func TestSplitGCS(t *testing.T) {
	check := func(loc, wantBucket, wantPath string, wantOK bool) {
		t.Helper()
		bucket, path, ok := SplitGCS(loc)
		if bucket != wantBucket || path != wantPath || ok != wantOK {
			t.Errorf("SplitGCS(%q) = %q, %q, %v; want %q, %q, %v", loc, bucket, path, ok, wantBucket, wantPath, wantOK)
		}
	}
	check("gs://b/logs/run1.csv", "b", "logs/run1.csv", true)
	check("gs://b/out/", "b", "out", true)
	check("gs://b", "b", "", true)
	check("gs:///x", "", "x", false)
	check("/tmp/out", "", "", false)
}

func TestJoin(t *testing.T) {
	for _, c := range [][3]string{
		{"", "a.csv", "a.csv"},
		{"out", "a.csv", "out/a.csv"},
		{"out/", "a.csv", "out/a.csv"},
	} {
		if got := Join(c[0], c[1]); got != c[2] {
			t.Errorf("Join(%q, %q) = %q, want %q", c[0], c[1], got, c[2])
		}
	}
}
