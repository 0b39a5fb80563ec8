// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scaling derives parallel-scaling metrics from timing
// samples.
//
// All metrics are relative to the baseline: the first sample in
// encounter order, whatever thread count it ran with. Feeding samples
// in a deliberate order is the caller's business; this package never
// reorders anything.
package scaling

import "github.com/watorsim/watorperf/benchlog"

// Metrics holds the derived series for a sample sequence, aligned
// index-for-index with it.
type Metrics struct {
	// Speedup is the baseline execution time divided by each
	// sample's execution time. Speedup[0] is exactly 1 by
	// construction.
	Speedup []float64

	// Efficiency is Speedup scaled by thread count, as a percent of
	// ideal linear scaling. It is not clamped: super-linear runs
	// report above 100.
	Efficiency []float64
}

// Compute derives speedup and efficiency for samples. The baseline is
// samples[0]. If samples is empty, or the baseline's execution time is
// zero, there is nothing to divide by and Compute returns an empty
// Metrics value; callers must check Empty before using the series.
func Compute(samples []*benchlog.Sample) *Metrics {
	m := new(Metrics)
	if len(samples) == 0 || samples[0].TimeMs == 0 {
		return m
	}

	base := samples[0].TimeMs
	m.Speedup = make([]float64, len(samples))
	m.Efficiency = make([]float64, len(samples))
	for i, s := range samples {
		m.Speedup[i] = base / s.TimeMs
		m.Efficiency[i] = m.Speedup[i] / float64(s.Threads) * 100
	}
	return m
}

// Empty reports whether m carries no metrics, either because the
// sample sequence was empty or because the baseline time was zero.
func (m *Metrics) Empty() bool {
	return len(m.Speedup) == 0
}

// Best returns the index of the maximum speedup, taking the first
// occurrence on ties. The whole series counts, including the baseline
// itself. Best returns -1 on an empty Metrics value.
func (m *Metrics) Best() int {
	best := -1
	for i, s := range m.Speedup {
		if best < 0 || s > m.Speedup[best] {
			best = i
		}
	}
	return best
}
