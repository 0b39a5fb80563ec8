// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package app implements the benchmark archive server. Combine an App
// with a database and filesystem to get an HTTP server that accepts
// log uploads, lists them, and serves their performance reports.
package app

import (
	"errors"
	"log"
	"net/http"

	"github.com/watorsim/watorperf/storage/db"
	"github.com/watorsim/watorperf/storage/fs"
)

// App manages the archive server logic. Construct an App instance
// using a literal with DB and FS objects and call RegisterOnMux to
// connect it with an HTTP server.
type App struct {
	DB *db.DB
	FS fs.FS

	// ViewURLBase will be used to construct a URL to return as
	// "viewurl" in the response from /upload. If it is non-empty,
	// the upload ID will be appended to it.
	ViewURLBase string

	// Auth obtains the username for the request.
	// If necessary, it can write its own response (e.g. a
	// redirect) and return ErrResponseWritten.
	Auth func(http.ResponseWriter, *http.Request) (string, error)
}

// ErrResponseWritten can be returned by App.Auth to abort the normal /upload handling.
var ErrResponseWritten = errors.New("response written")

// RegisterOnMux registers the app's URLs on mux.
func (a *App) RegisterOnMux(mux *http.ServeMux) {
	mux.HandleFunc("/upload", a.upload)
	mux.HandleFunc("/uploads", a.uploads)
	mux.HandleFunc("/report", a.report)
}

// auth runs a.Auth if present. An empty username with a nil error
// means anonymous access is allowed.
func (a *App) auth(w http.ResponseWriter, r *http.Request) (string, error) {
	if a.Auth == nil {
		return "", nil
	}
	return a.Auth(w, r)
}

// errorf logs a server-side failure processing a request.
func errorf(format string, args ...interface{}) {
	log.Printf(format, args...)
}
