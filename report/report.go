// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report composes the performance document from a sample
// sequence and its scaling metrics.
//
// Composition and rendering are separate steps: Compose builds an
// immutable Report, and the Write methods serialize it as markdown
// (the canonical form), HTML, or CSV. The markdown output is stable
// byte for byte; downstream tooling diffs it across runs.
package report

import (
	"errors"
	"fmt"

	"github.com/watorsim/watorperf/benchlog"
	"github.com/watorsim/watorperf/scaling"
)

// ErrNoData is returned by Compose when there are no samples or no
// metrics to report.
var ErrNoData = errors.New("no samples to report")

// A Preamble holds the test-configuration facts shown at the top of
// the report. Fields are written into fixed sentences, so they carry
// values only ("100x100"), not prose.
type Preamble struct {
	Steps     int    `toml:"steps"`
	GridSize  string `toml:"grid_size"`
	Fish      int    `toml:"fish"`
	Sharks    int    `toml:"sharks"`
	Platform  string `toml:"platform"`
	GoVersion string `toml:"go_version"`
}

// DefaultPreamble returns the configuration the standard benchmark
// runs use.
func DefaultPreamble() Preamble {
	return Preamble{
		Steps:     1000,
		GridSize:  "100x100",
		Fish:      2000,
		Sharks:    400,
		Platform:  "macOS (Apple Silicon/Intel)",
		GoVersion: "1.25+",
	}
}

// A Row is one line of the results table.
type Row struct {
	Threads    int
	TimeMs     float64
	Speedup    float64
	Efficiency float64
}

// A Verdict classifies how well the parallel runs scaled, judged by
// the best observed speedup.
type Verdict int

const (
	// Limited means the best speedup stayed under 1.5x.
	Limited Verdict = iota
	// Moderate covers everything between the two thresholds,
	// including exactly 1.5x and exactly 2.0x.
	Moderate
	// Good means the best speedup exceeded 2.0x.
	Good
)

// Verdict thresholds on the best observed speedup.
const (
	limitedBelow = 1.5
	goodAbove    = 2.0
)

func verdictFor(bestSpeedup float64) Verdict {
	switch {
	case bestSpeedup < limitedBelow:
		return Limited
	case bestSpeedup > goodAbove:
		return Good
	}
	return Moderate
}

func (v Verdict) String() string {
	switch v {
	case Limited:
		return "limited"
	case Good:
		return "good"
	}
	return "moderate"
}

// A Report is the composed document: the preamble, the table rows in
// input order, and the facts the narrative is built from. Reports are
// immutable once composed.
type Report struct {
	Preamble Preamble
	Rows     []Row

	// BestThreads and BestSpeedup describe the row with the highest
	// speedup, taking the first such row on ties.
	BestThreads int
	BestSpeedup float64

	// BaselineMs is the execution time everything is measured
	// against: the first sample's, whatever its thread count.
	BaselineMs float64

	Verdict Verdict
}

// Compose builds a Report from samples and the metrics computed over
// them. Rows keep the input order; callers sort beforehand if they
// want a particular display order. Compose returns ErrNoData rather
// than building a partial document when samples or metrics are empty.
func Compose(samples []*benchlog.Sample, m *scaling.Metrics, p Preamble) (*Report, error) {
	if len(samples) == 0 || m.Empty() {
		return nil, ErrNoData
	}
	if len(m.Speedup) != len(samples) {
		return nil, fmt.Errorf("report: %d samples but %d metric entries", len(samples), len(m.Speedup))
	}

	r := &Report{Preamble: p, Rows: make([]Row, len(samples))}
	for i, s := range samples {
		r.Rows[i] = Row{
			Threads:    s.Threads,
			TimeMs:     s.TimeMs,
			Speedup:    m.Speedup[i],
			Efficiency: m.Efficiency[i],
		}
	}
	best := m.Best()
	r.BestThreads = samples[best].Threads
	r.BestSpeedup = m.Speedup[best]
	r.BaselineMs = samples[0].TimeMs
	r.Verdict = verdictFor(r.BestSpeedup)
	return r, nil
}
