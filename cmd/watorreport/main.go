// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Watorreport analyzes a Wa-Tor benchmark log and writes a
// performance report.
//
// Usage:
//
//	watorreport [flags] [input...]
//
// Each input file should contain the console output of one or more
// benchmark runs: for every run, a "Threads: N" line eventually
// followed by an "Execution Time: 123.45ms" line (µs and s are also
// accepted). Text around and between the fields is ignored. With no
// inputs, watorreport reads benchmark_results.txt; "-" means standard
// input.
//
// Watorreport writes a markdown report (PERFORMANCE.md by default)
// containing the measured execution times, the speedup and efficiency
// relative to the first run, and a short narrative. It also renders
// two PNG charts next to the report unless -nocharts is given; chart
// failures are warnings, never fatal.
//
// If the log contains no records, watorreport prints an error and
// exits with a non-zero status without writing a report.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/watorsim/watorperf/benchlog"
	"github.com/watorsim/watorperf/chart"
	"github.com/watorsim/watorperf/report"
	"github.com/watorsim/watorperf/scaling"
)

var exit = os.Exit // replaced during testing

func usage() {
	fmt.Fprintf(os.Stderr, "usage: watorreport [options] [input...]\n")
	fmt.Fprintf(os.Stderr, "options:\n")
	flag.PrintDefaults()
	exit(2)
}

var (
	flagInput      = flag.String("input", "benchmark_results.txt", "read benchmark log from `file`; overridden by positional arguments")
	flagOutput     = flag.String("output", "PERFORMANCE.md", "write markdown report to `file`")
	flagHTML       = flag.String("html", "", "also write an HTML rendering to `file`")
	flagCSV        = flag.String("csv", "", "also write the results table as CSV to `file`")
	flagConfig     = flag.String("config", "", "read the test-configuration preamble from TOML `file`")
	flagTimePNG    = flag.String("timepng", "execution_time.png", "write the execution-time chart to `file`")
	flagSpeedupPNG = flag.String("speeduppng", "speedup.png", "write the speedup/efficiency chart to `file`")
	flagNoCharts   = flag.Bool("nocharts", false, "skip chart rendering")
)

// fatal prints an error and exits. It goes through the exit variable
// so tests can intercept it.
func fatal(v ...interface{}) {
	log.Print(v...)
	exit(1)
}

func main() {
	log.SetPrefix("watorreport: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	inputs := flag.Args()
	if len(inputs) == 0 {
		inputs = []string{*flagInput}
	}

	samples, err := readSamples(inputs)
	if err != nil {
		fatal(err)
		return
	}

	metrics := scaling.Compute(samples)
	if len(samples) == 0 || metrics.Empty() {
		fatal("no results found in ", strings.Join(inputs, ", "))
		return
	}

	preamble, err := loadPreamble(*flagConfig)
	if err != nil {
		fatal(err)
		return
	}

	rpt, err := report.Compose(samples, metrics, preamble)
	if err != nil {
		fatal(err)
		return
	}

	// The report always lands before any chart work; a broken
	// renderer must not cost us the document.
	if err := writeReport(rpt, *flagOutput, (*report.Report).WriteMarkdown); err != nil {
		fatal(err)
		return
	}
	if *flagHTML != "" {
		if err := writeReport(rpt, *flagHTML, (*report.Report).WriteHTML); err != nil {
			fatal(err)
			return
		}
	}
	if *flagCSV != "" {
		if err := writeReport(rpt, *flagCSV, (*report.Report).WriteCSV); err != nil {
			fatal(err)
			return
		}
	}

	var renderer chart.Renderer = chart.PNG{}
	if *flagNoCharts {
		renderer = chart.Nop{}
	}
	renderCharts(renderer, samples, metrics)
}

// readSamples extracts every sample from the input files, in order.
func readSamples(inputs []string) ([]*benchlog.Sample, error) {
	files := benchlog.Files{Paths: inputs, AllowStdin: true}
	var samples []*benchlog.Sample
	for files.Scan() {
		s := *files.Sample()
		samples = append(samples, &s)
	}
	return samples, files.Err()
}

// loadPreamble returns the report preamble: the defaults, overridden
// by the TOML config file if one was given.
func loadPreamble(path string) (report.Preamble, error) {
	p := report.DefaultPreamble()
	if path == "" {
		return p, nil
	}
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return p, fmt.Errorf("config %s: %v", path, err)
	}
	return p, nil
}

// writeReport writes one rendering of rpt to path, creating or
// truncating it.
func writeReport(rpt *report.Report, path string, write func(*report.Report, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(rpt, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// renderCharts draws the two charts, downgrading any failure to a
// warning.
func renderCharts(r chart.Renderer, samples []*benchlog.Sample, m *scaling.Metrics) {
	for _, c := range []struct {
		spec *chart.Spec
		path string
	}{
		{chart.TimeSpec(samples), *flagTimePNG},
		{chart.SpeedupSpec(samples, m), *flagSpeedupPNG},
	} {
		if err := r.Render(c.spec, c.path); err != nil {
			log.Printf("warning: chart %s not rendered: %v", c.path, err)
		}
	}
}
