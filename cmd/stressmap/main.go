// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Stressmap reduces the measurement log of a multicore interference
// campaign into per-context statistics and reports.
//
// Usage:
//
//	stressmap [flags] -i log.csv -o outdir
//	stressmap [flags] -i 'sqlite3:campaign.db#th_51' -o gs://bucket/run7
//
// In duration mode (the default), stressmap pairs the begin and end
// tick readings of every measurement, averages execution times over
// activations and converts them to milliseconds with the ticker period
// of the target named by -t. It writes the baseline times and the
// elongation of every stressed pairing as matrices indexed by the
// primary and secondary application:
//
//	dupli_results.csv   rows sharing a context, activation and marker
//	ref_heatmap.csv     baseline times, in ms
//	heatmap.csv         elongation ratios
//	heatmap.png         both matrices as heatmaps (see -format)
//	heatmap.html        both matrices as colour-coded tables
//
// In counter mode, stressmap averages hardware counter deltas and
// writes one series per counter event instead:
//
//	dupli_results.csv
//	series.csv
//	pmc_chart.png
//	pmc_chart.html
//
// The matrices or series are also printed to standard output.
//
// # Inputs
//
// -i names a comma- or tab-delimited log file, or "-" for standard
// input. Further log files may be given as arguments; they must share
// the header of the first. A location starting with gs:// is read from
// Google Cloud Storage. An input of the form "sqlite3:path#table" or
// "mysql:dsn#table" reads the log from a database table; mysql DSNs
// may use the cloudsql(project:region:instance) network.
//
// # Targets
//
// Target descriptions are YAML files named <target>.yml in the
// directory given by -targets, $STRESSMAP_TARGETS_DIR or
// ~/targets_info, with the tick length in nanoseconds as
// ticker_period.
package main

import (
	"errors"
	"fmt"
	"os"
)

var exit = os.Exit // replaced during testing

func main() {
	err := stressmap(os.Stdout, os.Stderr, os.Args[1:])
	if err == nil {
		return
	}
	var uerr *usageError
	if errors.As(err, &uerr) {
		if uerr.msg != "" {
			fmt.Fprintf(os.Stderr, "stressmap: %s\n", uerr.msg)
		}
		exit(2)
		return
	}
	fmt.Fprintf(os.Stderr, "stressmap: %v\n", err)
	exit(1)
}
