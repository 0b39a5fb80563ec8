// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/watorsim/watorperf/timeunit"
)

// A Reader extracts timing samples from a benchmark log.
//
// Its API is modeled on bufio.Scanner. The Reader retains ownership of
// the Sample it returns; a caller that needs to keep one across calls
// to Scan should copy it.
//
// To construct a new Reader, either call NewReader, or call Reset on a
// zeroed Reader.
type Reader struct {
	s   *bufio.Scanner
	err error // current I/O error

	// line is the unconsumed remainder of the current input line.
	// Scanning picks up here before pulling the next line, so several
	// records on one line are all found.
	line []byte

	sample  Sample
	pending bool // sample.Threads is set and awaits its time field

	fileName string
	lineNum  int
}

// NewReader constructs a reader that extracts samples from r.
// fileName is used in positions and error messages; it is purely
// diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input. Any
// partially matched record from the previous input is dropped.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	r.s = bufio.NewScanner(ior)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.err = nil
	r.line = nil
	r.sample = Sample{}
	r.pending = false
	r.fileName = fileName
	r.lineNum = 0
}

// Field markers. A record is a threadsTag with a parseable integer,
// followed eventually by a timeTag with a parseable value and unit.
var (
	threadsTag = []byte("Threads:")
	timeTag    = []byte("Execution Time:")
)

// Scan advances the reader to the next complete record and reports
// whether one was found. The caller should use the Sample method to
// get the parsed sample. If Scan reaches EOF or an I/O error occurs,
// it returns false, in which case the caller should use the Err method
// to check for errors.
//
// Malformed text never stops the scan: a thread-count field whose
// number does not parse is plain text, a new thread-count field
// replaces an unmatched earlier one, and a time field that is damaged
// or appears before any thread-count field is skipped.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	for {
		if r.scanLine() {
			return true
		}
		if !r.s.Scan() {
			break
		}
		r.lineNum++
		r.line = r.s.Bytes()
	}

	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.lineNum, err)
	}
	return false
}

// scanLine consumes field markers from the remainder of the current
// line, returning true when a record completes.
func (r *Reader) scanLine() bool {
	for len(r.line) > 0 {
		ti := bytes.Index(r.line, threadsTag)
		xi := bytes.Index(r.line, timeTag)
		switch {
		case ti < 0 && xi < 0:
			r.line = nil

		case xi < 0 || (ti >= 0 && ti < xi):
			// Thread-count field. A parsed count opens a new record,
			// superseding any pending one.
			rest := skipSpace(r.line[ti+len(threadsTag):])
			n, rest, ok := atoi(rest)
			if ok && n > 0 {
				r.sample = Sample{Threads: n, fileName: r.fileName, line: r.lineNum}
				r.pending = true
				r.line = rest
			} else {
				r.line = r.line[ti+len(threadsTag):]
			}

		default:
			// Execution-time field. It completes the pending record;
			// with nothing pending it is stray output.
			rest := skipSpace(r.line[xi+len(timeTag):])
			ms, rest, ok := atofMillis(rest)
			if !ok {
				r.line = r.line[xi+len(timeTag):]
				continue
			}
			r.line = rest
			if r.pending {
				r.sample.TimeMs = ms
				r.pending = false
				return true
			}
		}
	}
	return false
}

// Sample returns the record that was just read by Scan. The Reader
// reuses it; it is valid until the next call to Scan or Reset.
func (r *Reader) Sample() *Sample {
	return &r.sample
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}

// ReadAll extracts every sample from ior, in encounter order. A log
// with no records yields a nil slice and a nil error; distinguishing
// that from real data is the caller's job.
func ReadAll(ior io.Reader, fileName string) ([]*Sample, error) {
	r := NewReader(ior, fileName)
	var samples []*Sample
	for r.Scan() {
		s := *r.Sample()
		samples = append(samples, &s)
	}
	return samples, r.Err()
}

// Parsing helpers.

// skipSpace strips leading ASCII blanks. Fields sit on one line, so
// only spaces and tabs count.
func skipSpace(x []byte) []byte {
	for len(x) > 0 && (x[0] == ' ' || x[0] == '\t') {
		x = x[1:]
	}
	return x
}

// atoi parses a leading run of decimal digits in x, returning the
// value and the remaining bytes. ok is false if x does not start with
// a digit or the value overflows.
func atoi(x []byte) (n int, rest []byte, ok bool) {
	var i int
	var val int64
	for i = 0; i < len(x); i++ {
		digit := x[i] - '0'
		if digit >= 10 {
			break
		}
		if val > (math.MaxInt64-10)/10 {
			return 0, x, false
		}
		val = val*10 + int64(digit)
	}
	if i == 0 {
		return 0, x, false
	}
	return int(val), x[i:], true
}

// atofMillis parses a leading decimal number with an immediately
// attached time-unit suffix, returning the value normalized to
// milliseconds and the remaining bytes. ok is false if the number is
// malformed or the suffix is missing or detached.
func atofMillis(x []byte) (ms float64, rest []byte, ok bool) {
	var i int
	for i = 0; i < len(x); i++ {
		if !(x[i] == '.' || '0' <= x[i] && x[i] <= '9') {
			break
		}
	}
	if i == 0 {
		return 0, x, false
	}
	val, err := strconv.ParseFloat(string(x[:i]), 64)
	if err != nil {
		return 0, x, false
	}
	unit, n := splitUnit(x[i:])
	if n == 0 {
		return 0, x, false
	}
	ms, _ = timeunit.Tidy(val, unit)
	return ms, x[i+n:], true
}

// unitSuffixes is ordered longest-first so "ms" and "µs" win over
// bare "s".
var unitSuffixes = [][]byte{[]byte("ms"), []byte("µs"), []byte("\u03bcs"), []byte("s")}

// splitUnit matches a time-unit suffix at the start of x. n is 0 on no
// match.
func splitUnit(x []byte) (unit string, n int) {
	for _, u := range unitSuffixes {
		if bytes.HasPrefix(x, u) {
			return string(u), len(u)
		}
	}
	return "", 0
}
