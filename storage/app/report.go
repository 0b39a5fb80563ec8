// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"net/http"

	"github.com/watorsim/watorperf/benchlog"
	"github.com/watorsim/watorperf/report"
	"github.com/watorsim/watorperf/scaling"
)

// report is the handler for the /report endpoint. It runs the
// analysis pipeline over one stored upload's samples and serves the
// HTML rendering of the result.
func (a *App) report(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "/report must be called as a GET request", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	uploadid := r.Form.Get("upload")
	if uploadid == "" {
		http.Error(w, "missing upload parameter", http.StatusBadRequest)
		return
	}

	q := a.DB.Query("upload:" + uploadid)
	defer q.Close()

	var samples []*benchlog.Sample
	for q.Next() {
		s := *q.Sample()
		samples = append(samples, &s)
	}
	if err := q.Err(); err != nil {
		errorf("%v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rpt, err := report.Compose(samples, scaling.Compute(samples), report.DefaultPreamble())
	if err == report.ErrNoData {
		http.Error(w, "no samples for upload "+uploadid, http.StatusNotFound)
		return
	}
	if err != nil {
		errorf("%v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rpt.WriteHTML(w); err != nil {
		errorf("%v", err)
	}
}
