// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart describes and renders the performance charts.
//
// A Spec is pure data: the titles, axes, and series a chart should
// show. Building one never touches a rendering backend, so the
// pipeline can always describe its charts; whether anything can draw
// them is the renderer's problem.
package chart

import (
	"github.com/watorsim/watorperf/benchlog"
	"github.com/watorsim/watorperf/scaling"
)

// A Series is one plotted line.
type Series struct {
	Label string
	Ys    []float64

	// Dashed marks a reference line drawn thin and dashed rather
	// than as a measured series.
	Dashed bool

	// Secondary plots the series against the right-hand axis, which
	// has its own fixed range (Y2Min, Y2Max on the Spec).
	Secondary bool
}

// A Spec describes one chart. Xs are shared by every series.
type Spec struct {
	Title  string
	XLabel string
	YLabel string

	// Y2Label names the right-hand axis when any series is
	// Secondary; Y2Min and Y2Max fix that axis's range.
	Y2Label      string
	Y2Min, Y2Max float64

	Xs     []float64
	Series []Series

	// Annotate is a printf format applied to each point of the first
	// series, drawn next to the point. Empty means no annotations.
	Annotate string
}

// TimeSpec describes the execution-time chart: one point per sample,
// annotated with the measured time.
func TimeSpec(samples []*benchlog.Sample) *Spec {
	s := &Spec{
		Title:    "Wa-Tor Simulation Execution Time vs Thread Count",
		XLabel:   "Number of Threads",
		YLabel:   "Execution Time (ms)",
		Annotate: "%.1fms",
	}
	ys := make([]float64, len(samples))
	s.Xs = make([]float64, len(samples))
	for i, sm := range samples {
		s.Xs[i] = float64(sm.Threads)
		ys[i] = sm.TimeMs
	}
	s.Series = []Series{{Label: "Execution Time", Ys: ys}}
	return s
}

// SpeedupSpec describes the speedup chart: measured speedup and the
// ideal linear reference on the left axis, efficiency on the right
// axis with its fixed 0 to 120 percent range.
func SpeedupSpec(samples []*benchlog.Sample, m *scaling.Metrics) *Spec {
	s := &Spec{
		Title:   "Wa-Tor Simulation Speedup and Efficiency",
		XLabel:  "Number of Threads",
		YLabel:  "Speedup",
		Y2Label: "Efficiency (%)",
		Y2Max:   120,
	}
	ideal := make([]float64, len(samples))
	s.Xs = make([]float64, len(samples))
	for i, sm := range samples {
		s.Xs[i] = float64(sm.Threads)
		ideal[i] = float64(sm.Threads)
	}
	s.Series = []Series{
		{Label: "Speedup", Ys: m.Speedup},
		{Label: "Ideal (Linear)", Ys: ideal, Dashed: true},
		{Label: "Efficiency", Ys: m.Efficiency, Secondary: true},
	}
	return s
}
