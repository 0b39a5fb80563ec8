// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchlog reads and writes the Wa-Tor benchmark log format.
//
// A benchmark log is loosely structured text. Somewhere in it, each
// simulation run leaves two fields: a thread count and an execution
// time with a unit suffix, in that order, possibly separated by other
// output (including line breaks):
//
//	Threads: 4
//	Simulation completed at step 1000
//	Execution Time: 8123.45ms
//
// Everything between and around the fields is ignored. Times are
// normalized to milliseconds on input (see package timeunit).
package benchlog

// A Sample is a single timing observation extracted from a benchmark
// log: one run of the simulation at one thread count. Samples have no
// identity beyond their position in the log; repeated runs at the same
// thread count stay distinct.
type Sample struct {
	// Threads is the number of worker threads the run used.
	Threads int

	// TimeMs is the run's execution time in milliseconds.
	TimeMs float64

	fileName string
	line     int
}

// Pos returns the position of the record that produced this sample as
// a file name and a 1-based line number within that file: the line its
// thread-count field appeared on. If the sample was not read from a
// file, it returns "", 0.
func (s *Sample) Pos() (fileName string, line int) {
	return s.fileName, s.line
}
