// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/sirupsen/logrus"
	"github.com/timingharness/stressmap/measchart"
	"github.com/timingharness/stressmap/measlog"
	"github.com/timingharness/stressmap/measproc"
	"github.com/timingharness/stressmap/measreport"
	"github.com/timingharness/stressmap/targetinfo"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

// A usageError reports bad flags. The command exits with status 2.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	if e.msg == "" {
		return "usage error"
	}
	return e.msg
}

type config struct {
	input, out    string
	mode, tab     string
	target, dir   string
	window, part  string
	event, format string
	scale         float64
	verbose       bool
	html, chart   bool
	gcsCreds      string
	gcsToken      string
}

func parseFlags(stderr io.Writer, args []string) (*config, []string, error) {
	var c config
	flags := flag.NewFlagSet("stressmap", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: stressmap [flags] -i log -o dir [log...]\n")
		flags.PrintDefaults()
	}
	flags.StringVar(&c.input, "i", "", "read the measurement log from `source`")
	flags.StringVar(&c.out, "o", ".", "write reports to `dir`")
	flags.StringVar(&c.mode, "mode", "duration", "reduction `mode`: duration or counter")
	flags.StringVar(&c.tab, "tab", "", "override the tabulation: matrix or series")
	flags.StringVar(&c.target, "t", "", "convert ticks with the period of `target`")
	flags.StringVar(&c.dir, "targets", "", "read target descriptions from `dir`")
	flags.StringVar(&c.window, "window", measproc.DefaultWindow, "reduce the observation window named `point`")
	flags.StringVar(&c.part, "part", "", "select partition `id` (default 3)")
	flags.StringVar(&c.event, "event", "", "select `event` instead of the mode's default")
	flags.StringVar(&c.format, "format", "png", "chart `format`: png, svg or pdf")
	flags.Float64Var(&c.scale, "scale", 0, "multiply duration means by `factor` instead of using -t")
	flags.BoolVar(&c.verbose, "v", false, "log every stage")
	flags.BoolVar(&c.html, "html", true, "write HTML reports")
	flags.BoolVar(&c.chart, "chart", true, "write charts")
	flags.StringVar(&c.gcsCreds, "gcs-credentials", "", "authenticate to Cloud Storage with credentials `file`")
	flags.StringVar(&c.gcsToken, "gcs-token", "", "authenticate to Cloud Storage with an access `token` (default $"+tokenEnv+")")
	if err := flags.Parse(args); err != nil {
		// The flag package has already reported the problem.
		return nil, nil, &usageError{}
	}

	inputs := flags.Args()
	if c.input != "" {
		inputs = append([]string{c.input}, inputs...)
	}
	if len(inputs) == 0 {
		flags.Usage()
		return nil, nil, &usageError{"no input given"}
	}
	if !measchart.ValidFormat(c.format) {
		return nil, nil, &usageError{fmt.Sprintf("unknown chart format %q", c.format)}
	}
	if c.scale < 0 {
		return nil, nil, &usageError{"-scale must not be negative"}
	}
	return &c, inputs, nil
}

// variant builds the reduction selected by c.
func (c *config) variant() (*measproc.Variant, error) {
	v, err := measproc.VariantByName(c.mode)
	if err != nil {
		return nil, err
	}
	if c.tab != "" {
		tab, err := measproc.ParseTabulation(c.tab)
		if err != nil {
			return nil, err
		}
		v.SetTab(tab)
	}
	v.Window.Point = c.window
	if c.part != "" {
		v.SetPartition(c.part)
	}
	if c.event != "" {
		v.SetEvent(c.event)
	}
	return v, nil
}

// tickScale returns the conversion of scaled means, or nil for
// unscaled variants.
func (c *config) tickScale(v *measproc.Variant, log *logrus.Logger) (*measproc.Scale, error) {
	if !v.Scaled {
		return nil, nil
	}
	if c.scale > 0 {
		return &measproc.Scale{Period: c.scale, Unit: 1}, nil
	}
	if c.target == "" {
		return nil, &usageError{"-t is required in " + v.Name + " mode unless -scale is given"}
	}
	dir := c.dir
	if dir == "" {
		dir = targetinfo.DefaultDir()
	}
	info, err := targetinfo.Load(dir, c.target)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"target": info.Name, "ticker_period": info.TickerPeriod}).Debug("loaded target")
	return &measproc.Scale{Period: info.TickerPeriod, Unit: measproc.NanoToMilli}, nil
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.Out = w
	log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	if verbose {
		log.Level = logrus.DebugLevel
	}
	return log
}

// stressmap runs the command with the given arguments.
func stressmap(stdout, stderr io.Writer, args []string) error {
	c, inputs, err := parseFlags(stderr, args)
	if err != nil {
		return err
	}
	log := newLogger(stderr, c.verbose)
	v, err := c.variant()
	if err != nil {
		return &usageError{err.Error()}
	}
	scale, err := c.tickScale(v, log)
	if err != nil {
		return err
	}

	ctx := context.Background()
	b := newBackends(ctx, c.gcsCreds, c.gcsToken)
	defer b.Close()

	raw, err := readLog(ctx, b, inputs)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"rows": raw.Len(), "columns": len(raw.Columns())}).Debug("read log")

	res, err := measproc.Run(raw, v, scale)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"mode":       v.Name,
		"duplicates": res.Duplicates.Len(),
		"contexts":   res.Aggregated.Len(),
	}).Debug("reduced")
	for _, w := range res.Warnings {
		log.WithError(w).Warn("reduction")
	}

	out, err := b.output(c.out)
	if err != nil {
		return err
	}
	if err := out.write("dupli_results.csv", func(w io.Writer) error {
		return measlog.Write(w, res.Duplicates)
	}); err != nil {
		return err
	}

	rep := &measreport.Report{
		Title:    fmt.Sprintf("stressmap %s: %s", v.Name, strings.Join(inputs, " ")),
		Warnings: res.Warnings,
	}
	switch v.Tab {
	case measproc.MatrixTab:
		err = writeMatrices(stdout, out, c, res, rep, log)
	case measproc.SeriesTab:
		err = writeSeries(stdout, out, c, res, rep, log)
	}
	return err
}

func readLog(ctx context.Context, b *backends, inputs []string) (*table.Table, error) {
	if len(inputs) == 1 {
		src, ok, err := measlog.ParseSQLSource(inputs[0])
		if err != nil {
			return nil, err
		}
		if ok {
			return src.Read(ctx)
		}
	}
	for _, in := range inputs {
		if _, ok, _ := measlog.ParseSQLSource(in); ok {
			return nil, &usageError{"a database source must be the only input"}
		}
	}
	files := measlog.Files{Paths: inputs, AllowStdin: true, Open: b.open}
	return files.Read(ctx)
}

func writeMatrices(stdout io.Writer, out *output, c *config, res *measproc.Result, rep *measreport.Report, log *logrus.Logger) error {
	base, elong := res.BaselineMatrix, res.ElongationMatrix
	if err := out.write("ref_heatmap.csv", func(w io.Writer) error {
		return measreport.WriteMatrixCSV(w, base)
	}); err != nil {
		return err
	}
	if err := out.write("heatmap.csv", func(w io.Writer) error {
		return measreport.WriteMatrixCSV(w, elong)
	}); err != nil {
		return err
	}
	if err := measreport.FormatMatrix(stdout, "Baseline", base, "%.2f"); err != nil {
		return err
	}
	if err := measreport.FormatMatrix(stdout, "Elongation", elong, "%.2f"); err != nil {
		return err
	}

	if c.chart {
		var buf bytes.Buffer
		err := measchart.Heatmap(&buf, c.format,
			measchart.Panel{Title: "Baseline (ms)", Matrix: base, Range: measchart.BaselineRange},
			measchart.Panel{Title: "Elongation", Matrix: elong, Range: measchart.ElongationRange})
		if ok, err := out.writeChart("heatmap."+c.format, &buf, err, log); err != nil {
			return err
		} else if ok {
			rep.Chart = c.format
		}
	}
	if c.html {
		rep.Baseline, rep.Elongation = base, elong
		return out.write("heatmap.html", rep.WriteHTML)
	}
	return nil
}

func writeSeries(stdout io.Writer, out *output, c *config, res *measproc.Result, rep *measreport.Report, log *logrus.Logger) error {
	if err := out.write("series.csv", func(w io.Writer) error {
		return measreport.WriteSeriesCSV(w, res.Series)
	}); err != nil {
		return err
	}
	if err := measreport.FormatSeries(stdout, res.Series, "%.2f"); err != nil {
		return err
	}

	if c.chart {
		var buf bytes.Buffer
		err := measchart.Series(&buf, c.format, res.Series)
		if ok, err := out.writeChart("pmc_chart."+c.format, &buf, err, log); err != nil {
			return err
		} else if ok {
			rep.Chart = c.format
		}
	}
	if c.html {
		rep.Series = res.Series
		return out.write("pmc_chart.html", rep.WriteHTML)
	}
	return nil
}
