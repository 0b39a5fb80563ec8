// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timeunit manipulates the execution-time units that appear in
// Wa-Tor benchmark logs: "ms", "µs", and "s". Every derived metric and
// report column works in milliseconds, so the package normalizes toward
// that unit and scales back out only for display.
package timeunit

// Recognized unit suffixes. Milli is the canonical unit; everything is
// tidied toward it.
const (
	Milli  = "ms"
	Micro  = "µs"
	Second = "s"
)

// microAlias is the Greek small letter mu followed by "s". Some
// terminals and editors substitute it for the micro sign, so it is
// accepted on input but never produced.
const microAlias = "\u03bcs"

// Tidy normalizes a value carrying one of the recognized time units to
// milliseconds. It returns the re-scaled value and its new unit. A value
// already in milliseconds, or in a unit this package does not know, is
// returned unchanged.
func Tidy(value float64, unit string) (tidiedValue float64, tidiedUnit string) {
	switch unit {
	case Second:
		return value * 1000, Milli
	case Micro, microAlias:
		return value / 1000, Milli
	case Milli:
		return value, Milli
	}
	return value, unit
}

// FromMillis converts a quantity of milliseconds into the given unit.
// It reports false if unit is not one of the recognized time units.
func FromMillis(ms float64, unit string) (float64, bool) {
	switch unit {
	case Second:
		return ms / 1000, true
	case Micro, microAlias:
		return ms * 1000, true
	case Milli:
		return ms, true
	}
	return 0, false
}

// IsTimeUnit reports whether unit is one of the suffixes a benchmark
// log may attach to an execution time.
func IsTimeUnit(unit string) bool {
	switch unit {
	case Second, Micro, microAlias, Milli:
		return true
	}
	return false
}
