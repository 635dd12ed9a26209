// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const logHeader = "core0AppElf,core0AppId,core1AppElf,core1AppId,evt_id,evt_type,evt_name,part_id," +
	"activation,is_begin_not_end,obs_point_name,obs_point_id,limiter_cores_checked,measurement_value\n"

// logLine returns the begin and end rows of one measurement.
func logLine(ctx, evt, name, act, begin, end string) string {
	row := func(marker, v string) string {
		return ctx + "," + evt + ",core_PMC," + name + ",3," + act + "," + marker + ",PERPRO_TIMWIN_0,7,0," + v + "\n"
	}
	return row("1", begin) + row("0", end)
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0666); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	t.Logf("stressmap %s", strings.Join(args, " "))
	err = stressmap(&out, &errOut, args)
	return out.String(), errOut.String(), err
}

func TestDuration(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "log.csv")
	writeFile(t, in, logHeader+
		logLine("A,1,B,0", "ticks", "cycles", "0", "0", "10000000")+
		logLine("A,1,C,2", "ticks", "cycles", "0", "0", "25000000")+
		logLine("A,1,C,2", "ticks", "cycles", "1", "0", "35000000")+
		// Second begin reading of the same activation.
		"A,1,C,2,ticks,core_PMC,cycles,3,1,1,PERPRO_TIMWIN_0,7,0,5\n")
	targets := filepath.Join(dir, "targets")
	if err := os.Mkdir(targets, 0777); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(targets, "tc397.yml"), "ticker_period: 1\n")

	outDir := filepath.Join(dir, "out")
	stdout, _, err := run(t, "-i", in, "-o", outDir, "-t", "tc397", "-targets", targets, "-format", "svg")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"dupli_results.csv", "ref_heatmap.csv", "heatmap.csv", "heatmap.svg", "heatmap.html"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing output: %v", err)
		}
	}

	if got := readFile(t, filepath.Join(outDir, "heatmap.csv")); !strings.HasPrefix(got, "core0AppElfId,C_2\nA_1,") {
		t.Errorf("heatmap.csv:\n%s", got)
	}
	if got := readFile(t, filepath.Join(outDir, "ref_heatmap.csv")); !strings.HasPrefix(got, "core0AppElfId,B_0\nA_1,") {
		t.Errorf("ref_heatmap.csv:\n%s", got)
	}
	dups := readFile(t, filepath.Join(outDir, "dupli_results.csv"))
	if n := strings.Count(dups, "\n"); n != 3 {
		t.Errorf("dupli_results.csv has %d lines, want header and 2 rows:\n%s", n, dups)
	}
	for _, want := range []string{"Baseline", "10.00", "Elongation", "3.00"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
	if html := readFile(t, filepath.Join(outDir, "heatmap.html")); !strings.Contains(html, `<img src="heatmap.svg"`) {
		t.Errorf("heatmap.html does not reference the chart")
	}
}

func TestCounter(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "log.tsv")
	log := logHeader +
		logLine("A,1,B,0", "cycles", "cycles", "0", "100", "300") +
		logLine("A,1,B,0", "cycles", "cycles", "1", "100", "200") +
		logLine("C,2,B,0", "cycles", "cycles", "0", "0", "10") +
		logLine("A,1,B,0", "ipc", "ipc", "0", "0", "4")
	writeFile(t, in, strings.ReplaceAll(log, ",", "\t"))

	outDir := filepath.Join(dir, "out")
	stdout, _, err := run(t, "-mode", "counter", "-o", outDir, in)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"dupli_results.csv", "series.csv", "pmc_chart.png", "pmc_chart.html"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing output: %v", err)
		}
	}
	want := "evt_name,core0AppElfId,mean_value\n" +
		"cycles,A_1,150\n" +
		"cycles,C_2,10\n" +
		"ipc,A_1,4\n"
	if got := readFile(t, filepath.Join(outDir, "series.csv")); got != want {
		t.Errorf("series.csv:\n%s\nwant:\n%s", got, want)
	}
	if !strings.Contains(stdout, "150.00") {
		t.Errorf("stdout missing cycles mean:\n%s", stdout)
	}
}

func TestNoOutputs(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "log.csv")
	writeFile(t, in, logHeader+logLine("A,1,B,0", "ticks", "cycles", "0", "0", "2"))
	outDir := filepath.Join(dir, "out")
	if _, _, err := run(t, "-i", in, "-o", outDir, "-scale", "0.5", "-html=false", "-chart=false"); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if got := strings.Join(names, " "); got != "dupli_results.csv heatmap.csv ref_heatmap.csv" {
		t.Errorf("outputs = %s", got)
	}
}

func TestUsage(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "log.csv")
	writeFile(t, in, logHeader)
	for _, args := range [][]string{
		{},
		{"-i", in},
		{"-i", in, "-mode", "bogus"},
		{"-i", in, "-scale", "1", "-format", "gif"},
		{"-i", in, "-scale", "1", "-tab", "pie"},
		{"-nosuchflag"},
	} {
		_, _, err := run(t, args...)
		var uerr *usageError
		if !errors.As(err, &uerr) {
			t.Errorf("stressmap %v: got %v, want usage error", args, err)
		}
	}
}

func TestMissingColumns(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "log.csv")
	writeFile(t, in, "core0AppElf,measurement_value\nA,1\n")
	_, _, err := run(t, "-i", in, "-o", dir, "-scale", "1")
	if err == nil || !strings.Contains(err.Error(), "activation") {
		t.Errorf("want missing column error naming activation, got %v", err)
	}
}

func TestSeriesNeedsEventName(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "log.csv")
	writeFile(t, in, "core0AppElf,core0AppId,core1AppElf,core1AppId,evt_id,part_id,"+
		"activation,is_begin_not_end,obs_point_name,obs_point_id,limiter_cores_checked,measurement_value\n"+
		"A,1,B,0,ticks,3,0,1,PERPRO_TIMWIN_0,7,0,0\n"+
		"A,1,B,0,ticks,3,0,0,PERPRO_TIMWIN_0,7,0,2\n")
	_, _, err := run(t, "-i", in, "-o", dir, "-scale", "1", "-tab", "series")
	if err == nil || !strings.Contains(err.Error(), "evt_name") {
		t.Errorf("want missing column error naming evt_name, got %v", err)
	}
}
