// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package measlog reads raw measurement logs into tables.
//
// A log is a delimited text file (or database table) with a header
// naming its columns, one row per measurement. Every column is read as
// text except measproc.ColValue, which is parsed as a number; an
// empty value cell reads as NaN.
package measlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/timingharness/stressmap/measproc"
)

// A SyntaxError represents a syntax error on a particular line of a
// measurement log.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// Read parses a delimited measurement log from r. fileName is used in
// error messages; it is purely diagnostic. comma is the field
// delimiter.
func Read(r io.Reader, fileName string, comma rune) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &SyntaxError{fileName, 1, "missing header"}
	} else if err != nil {
		return nil, csvError(fileName, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	seen := make(map[string]bool)
	for _, h := range header {
		if seen[h] {
			return nil, &SyntaxError{fileName, 1, fmt.Sprintf("duplicate column %q", h)}
		}
		seen[h] = true
	}

	valCol := -1
	for i, h := range header {
		if h == measproc.ColValue {
			valCol = i
		}
	}

	var rows [][]string
	var vals []float64
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, csvError(fileName, err)
		}
		if valCol >= 0 {
			v, err := parseValue(rec[valCol])
			if err != nil {
				line, _ := cr.FieldPos(valCol)
				return nil, &SyntaxError{fileName, line, fmt.Sprintf("parsing %s: %v", measproc.ColValue, err)}
			}
			vals = append(vals, v)
		}
		rows = append(rows, rec)
	}

	t := table.TableFromStrings(header, rows, false)
	if valCol >= 0 {
		if vals == nil {
			vals = []float64{}
		}
		t = table.NewBuilder(t).Add(measproc.ColValue, vals).Done()
	}
	return t, nil
}

func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) {
			return 0, ne.Err
		}
		return 0, err
	}
	return v, nil
}

func csvError(fileName string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		msg := pe.Err.Error()
		if errors.Is(pe.Err, csv.ErrFieldCount) {
			msg = "wrong number of fields"
		}
		return &SyntaxError{fileName, pe.Line, msg}
	}
	return fmt.Errorf("%s: %w", fileName, err)
}
