// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"encoding/json"
	"net/http"
)

// uploads is the handler for the /uploads endpoint. It serves a JSON
// array of the stored uploads, newest first, with sample counts.
func (a *App) uploads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "/uploads must be called as a GET request", http.StatusMethodNotAllowed)
		return
	}

	infos, err := a.DB.ListUploads(r.Context())
	if err != nil {
		errorf("%v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	type listEntry struct {
		UploadID string `json:"uploadid"`
		Time     string `json:"time"`
		Samples  int    `json:"samples"`
	}
	entries := []listEntry{}
	for _, ui := range infos {
		entries = append(entries, listEntry{UploadID: ui.ID, Time: ui.Time, Samples: ui.Samples})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		errorf("%v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
