// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gcs

import (
	"mime"
	"path"
)

func contentType(name string) string {
	switch ext := path.Ext(name); ext {
	case ".csv":
		return "text/csv"
	case ".svg":
		return "image/svg+xml"
	case "":
		return "application/octet-stream"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
		return "application/octet-stream"
	}
}
