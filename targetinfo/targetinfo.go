// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package targetinfo reads target descriptions.
//
// A target description is a YAML file named <target>.yml in a
// descriptions directory. It records properties of the hardware a log
// was captured on, most importantly the period of the tick counter:
//
//	name: tc397
//	ticker_period: 10   # nanoseconds per tick
//	cores: 6
package targetinfo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// DirEnv names the environment variable that overrides the default
// descriptions directory.
const DirEnv = "STRESSMAP_TARGETS_DIR"

// Info is the description of one target.
type Info struct {
	Name string `yaml:"name"`

	// TickerPeriod is the length of one tick, in nanoseconds.
	TickerPeriod float64 `yaml:"ticker_period"`

	Cores int `yaml:"cores"`
}

// A LookupError reports a target description that could not be
// used.
type LookupError struct {
	Target string
	Path   string
	Err    error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("target %q (%s): %v", e.Target, e.Path, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// ErrNoPeriod is wrapped by the LookupError of a description without
// a positive ticker_period.
var ErrNoPeriod = errors.New("ticker_period missing or not positive")

// DefaultDir returns the descriptions directory: $STRESSMAP_TARGETS_DIR
// if set, otherwise ~/targets_info.
func DefaultDir() string {
	if d := os.Getenv(DirEnv); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "targets_info"
	}
	return filepath.Join(home, "targets_info")
}

// Load reads the description of target from dir.
func Load(dir, target string) (*Info, error) {
	path := filepath.Join(dir, target+".yml")
	if target == "" || filepath.Base(target) != target {
		return nil, &LookupError{target, path, errors.New("invalid target name")}
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		// Accept the long extension too.
		alt := filepath.Join(dir, target+".yaml")
		if d2, err2 := os.ReadFile(alt); err2 == nil {
			path, data, err = alt, d2, nil
		}
	}
	if err != nil {
		return nil, &LookupError{target, path, err}
	}
	info, err := Parse(data)
	if err != nil {
		return nil, &LookupError{target, path, err}
	}
	if info.Name == "" {
		info.Name = target
	}
	return info, nil
}

// Parse decodes a target description.
func Parse(data []byte) (*Info, error) {
	var info Info
	if err := yaml.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	if !(info.TickerPeriod > 0) {
		return nil, ErrNoPeriod
	}
	return &info, nil
}
