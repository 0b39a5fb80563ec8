// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"bytes"
	"fmt"
	"io"
)

// A Writer writes the canonical benchmark log format: one field per
// line, a blank line after each record. Reading the output back
// reproduces the samples exactly.
type Writer struct {
	w   io.Writer
	buf bytes.Buffer
}

// NewWriter returns a writer that writes benchmark records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes the record for s to w. Times are always written in
// milliseconds with two decimals, whatever unit the source log used.
func (w *Writer) Write(s *Sample) error {
	fmt.Fprintf(&w.buf, "Threads: %d\nExecution Time: %.2fms\n\n", s.Threads, s.TimeMs)

	// Write to the buffer can't fail, so only the flush to the
	// io.Writer needs checking.
	_, err := w.w.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}
