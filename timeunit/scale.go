// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timeunit

import (
	"fmt"
	"math"
)

// A Scaler formats a quantity of milliseconds for display. All values
// formatted by one Scaler share a unit, so columns of related values
// line up.
type Scaler func(ms float64) string

// NewScaler returns a Scaler appropriate for formatting the quantity
// ms, choosing among seconds, milliseconds, and microseconds so that
// the scaled value keeps roughly three significant digits.
func NewScaler(ms float64) Scaler {
	var format string
	var scale float64
	var suffix string
	switch x := math.Abs(ms); {
	case x >= 99500:
		format, scale, suffix = "%.0f", 1000, Second
	case x >= 9950:
		format, scale, suffix = "%.1f", 1000, Second
	case x >= 995:
		format, scale, suffix = "%.2f", 1000, Second
	case x >= 99.5:
		format, scale, suffix = "%.0f", 1, Milli
	case x >= 9.95:
		format, scale, suffix = "%.1f", 1, Milli
	case x >= 0.995:
		format, scale, suffix = "%.2f", 1, Milli
	case x >= 0.0995:
		format, scale, suffix = "%.0f", 1e-3, Micro
	case x >= 0.00995:
		format, scale, suffix = "%.1f", 1e-3, Micro
	default:
		format, scale, suffix = "%.2f", 1e-3, Micro
	}
	return func(ms float64) string {
		return fmt.Sprintf(format+suffix, ms/scale)
	}
}
