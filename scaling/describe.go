// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaling

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"
)

// A Desc is a summary of repeated measurements of the same
// configuration.
type Desc struct {
	N                      int
	Mean, Median, Min, Max float64
}

// Describe summarizes xs. It does not modify xs. If xs is empty, all
// fields of the result are zero.
func Describe(xs []float64) Desc {
	if len(xs) == 0 {
		return Desc{}
	}
	s := stats.Sample{Xs: xs}
	min, max := s.Bounds()
	return Desc{
		N:      len(xs),
		Mean:   s.Mean(),
		Median: s.Quantile(0.5),
		Min:    min,
		Max:    max,
	}
}

// String returns a one-line rendering of d, in milliseconds, suitable
// for progress output.
func (d Desc) String() string {
	if d.N == 0 {
		return "no measurements"
	}
	if d.N == 1 {
		return fmt.Sprintf("%.2fms", d.Mean)
	}
	return fmt.Sprintf("mean %.2fms, median %.2fms, min %.2fms, max %.2fms (n=%d)", d.Mean, d.Median, d.Min, d.Max, d.N)
}
