// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Watorserver runs an HTTP server for the benchmark archive.
//
// Usage:
//
//	watorserver [-addr :8080] [-dsn file.db] [-view_url_base url]
//	            [-fs_dir dir | -gcs bucket]
//
// The server accepts multipart log uploads on /upload (watorsave is
// the matching client), lists stored uploads on /uploads, and serves
// each upload's performance report on /report?upload=ID. Uploads are
// indexed in a SQLite database and the raw files are kept in memory
// unless -fs_dir names a local directory or -gcs names a Cloud
// Storage bucket.
package main

import (
	"flag"
	"log"
	"net/http"

	"golang.org/x/net/context"

	"github.com/watorsim/watorperf/storage/app"
	"github.com/watorsim/watorperf/storage/db"
	_ "github.com/watorsim/watorperf/storage/db/sqlite3"
	"github.com/watorsim/watorperf/storage/fs"
	"github.com/watorsim/watorperf/storage/fs/gcs"
	"github.com/watorsim/watorperf/storage/fs/local"
)

var (
	addr        = flag.String("addr", ":8080", "serve HTTP on `address`")
	dsn         = flag.String("dsn", "wator.db", "sqlite `dsn`")
	viewURLBase = flag.String("view_url_base", "", "/upload response with `URL` for viewing")
	fsDir       = flag.String("fs_dir", "", "store uploaded files under `dir` instead of memory")
	gcsBucket   = flag.String("gcs", "", "store uploaded files in GCS `bucket` instead of memory")
)

func main() {
	log.SetPrefix("watorserver: ")
	log.SetFlags(0)
	flag.Parse()

	d, err := db.OpenSQL("sqlite3", *dsn)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	var fileStore fs.FS = fs.NewMemFS()
	switch {
	case *fsDir != "" && *gcsBucket != "":
		log.Fatal("-fs_dir and -gcs are mutually exclusive")
	case *fsDir != "":
		fileStore = local.NewFS(*fsDir)
	case *gcsBucket != "":
		fileStore, err = gcs.NewFS(context.Background(), *gcsBucket)
		if err != nil {
			log.Fatalf("open bucket: %v", err)
		}
	}

	a := &app.App{
		DB:          d,
		FS:          fileStore,
		ViewURLBase: *viewURLBase,
		Auth:        func(http.ResponseWriter, *http.Request) (string, error) { return "", nil },
	}
	a.RegisterOnMux(http.DefaultServeMux)

	log.Printf("Listening on %s", *addr)

	log.Fatal(http.ListenAndServe(*addr, nil))
}
