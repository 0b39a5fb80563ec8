// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV writes the table rows as CSV for spreadsheet import.
// Values carry full precision rather than the display rounding used
// by the markdown table.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"threads", "time_ms", "speedup", "efficiency"}); err != nil {
		return err
	}
	for _, row := range r.Rows {
		rec := []string{
			strconv.Itoa(row.Threads),
			strconv.FormatFloat(row.TimeMs, 'g', -1, 64),
			strconv.FormatFloat(row.Speedup, 'g', -1, 64),
			strconv.FormatFloat(row.Efficiency, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
