// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"

	"golang.org/x/net/context"

	"github.com/watorsim/watorperf/benchlog"
	"github.com/watorsim/watorperf/storage/db"
)

// upload is the handler for the /upload endpoint. It processes files
// in a multipart/form-data POST request: each file is stored raw in
// the filesystem and its samples are indexed in the database.
func (a *App) upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := a.auth(w, r)
	switch {
	case err == ErrResponseWritten:
		return
	case err != nil:
		errorf("auth: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "/upload must be called as a POST request", http.StatusMethodNotAllowed)
		return
	}

	// We use r.MultipartReader instead of r.ParseForm to avoid
	// storing uploaded data in memory.
	mr, err := r.MultipartReader()
	if err != nil {
		errorf("%v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	result, err := a.processUpload(ctx, user, mr)
	if err != nil {
		errorf("%v", err)
		code := http.StatusInternalServerError
		var e *uploadError
		if errors.As(err, &e) {
			code = e.code
		}
		http.Error(w, err.Error(), code)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		errorf("%v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// An uploadError carries the HTTP status code the failure should be
// reported with.
type uploadError struct {
	code int
	err  error
}

func (e *uploadError) Error() string { return e.err.Error() }
func (e *uploadError) Unwrap() error { return e.err }

// uploadStatus is the response to an /upload POST served as JSON.
type uploadStatus struct {
	// UploadID is the upload ID assigned to the upload.
	UploadID string `json:"uploadid"`
	// FileIDs is the list of file IDs assigned to the files in the upload.
	FileIDs []string `json:"fileids"`
	// ViewURL is a URL that can be used to view the uploaded data.
	ViewURL string `json:"viewurl,omitempty"`
}

// processUpload takes one or more files from a multipart.Reader,
// writes them to the filesystem, and indexes their samples. The whole
// upload is committed only if an explicit "commit" field arrives (or
// the stream ends cleanly); an "abort" field, a file with no samples,
// or any error abandons it.
func (a *App) processUpload(ctx context.Context, user string, mr *multipart.Reader) (*uploadStatus, error) {
	var upload *db.Upload
	var status uploadStatus

	defer func() {
		if upload != nil {
			upload.Abort()
		}
	}()

	for i := 0; ; i++ {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		name := p.FormName()
		if name == "commit" {
			break
		}
		if name == "abort" {
			return nil, &uploadError{http.StatusBadRequest, errors.New("upload aborted by client")}
		}
		if name != "file" {
			return nil, &uploadError{http.StatusBadRequest, fmt.Errorf("unexpected field %q", name)}
		}

		if upload == nil {
			upload, err = a.DB.NewUpload(ctx)
			if err != nil {
				return nil, err
			}
			status.UploadID = upload.ID
		}

		fileid, err := a.indexFile(ctx, upload, user, i, p)
		if err != nil {
			return nil, err
		}
		status.FileIDs = append(status.FileIDs, fileid)
	}

	if upload == nil {
		return nil, &uploadError{http.StatusBadRequest, errors.New("no files in upload")}
	}

	if err := upload.Commit(); err != nil {
		return nil, err
	}
	upload = nil

	if a.ViewURLBase != "" {
		status.ViewURL = a.ViewURLBase + status.UploadID
	}
	return &status, nil
}

// indexFile stores one uploaded file in the filesystem and indexes
// its samples under upload. The file must hold at least one
// well-formed record; the raw bytes are stored as received either
// way, so a rejected store leaves nothing behind.
func (a *App) indexFile(ctx context.Context, upload *db.Upload, user string, filenum int, p io.Reader) (fileid string, err error) {
	meta := map[string]string{
		"uploadid": upload.ID,
		"fileid":   fmt.Sprintf("%s/%d", upload.ID, filenum),
	}
	if user != "" {
		meta["by"] = user
	}

	fw, err := a.FS.NewWriter(ctx, fmt.Sprintf("uploads/%s.txt", meta["fileid"]), meta)
	if err != nil {
		return "", err
	}

	var keys []string
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(fw, "# %s: %s\n", k, meta[k]); err != nil {
			fw.CloseWithError(err)
			return "", err
		}
	}

	// Parse the stream while copying it into the filesystem.
	br := benchlog.NewReader(io.TeeReader(p, fw), meta["fileid"])
	n := 0
	for br.Scan() {
		if err := upload.InsertSample(br.Sample()); err != nil {
			fw.CloseWithError(err)
			return "", err
		}
		n++
	}
	if err := br.Err(); err != nil {
		fw.CloseWithError(err)
		return "", err
	}
	if n == 0 {
		err := &uploadError{http.StatusBadRequest, fmt.Errorf("no benchmark records in %s", meta["fileid"])}
		fw.CloseWithError(err)
		return "", err
	}

	if err := fw.Close(); err != nil {
		return "", err
	}
	return meta["fileid"], nil
}
