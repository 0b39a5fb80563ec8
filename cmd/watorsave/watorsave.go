// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Watorsave uploads benchmark logs to an archive server.
//
// Usage:
//
//	watorsave [-v] [-header file] [-server url] file...
//
// Each input file should contain the output of one or more Wa-Tor
// benchmark runs, in the format watorbench emits.
//
// Watorsave will upload the input files to the specified server and
// print a URL where they can be viewed.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

var (
	server   = flag.String("server", "https://perf.watorsim.example.com", "upload benchmarks to server at `url`")
	verbose  = flag.Bool("v", false, "print verbose log messages")
	header   = flag.String("header", "", "insert `file` at the beginning of each uploaded file")
	token    = flag.String("token", "", "read the bearer token from `file` instead of $WATOR_TOKEN")
	insecure = flag.Bool("insecure", false, "upload without authentication (local servers)")
)

type uploadStatus struct {
	// UploadID is the upload ID assigned to the upload.
	UploadID string `json:"uploadid"`
	// FileIDs is the list of file IDs assigned to the files in the upload.
	FileIDs []string `json:"fileids"`
	// ViewURL is a server-supplied URL to view the results.
	ViewURL string `json:"viewurl"`
}

// newTokenSource returns the static token configured with -token or
// $WATOR_TOKEN.
func newTokenSource() oauth2.TokenSource {
	if *token != "" {
		data, err := os.ReadFile(*token)
		if err != nil {
			log.Fatal(err)
		}
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(bytes.TrimSpace(data))})
	}
	if t := os.Getenv("WATOR_TOKEN"); t != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: t})
	}
	log.Fatal("no credentials: set $WATOR_TOKEN, use -token, or pass -insecure for a local server")
	return nil
}

// writeOneFile reads name and writes it to mpw.
func writeOneFile(mpw *multipart.Writer, name string, header []byte) error {
	w, err := mpw.CreateFormFile("file", filepath.Base(name))
	if err != nil {
		return err
	}
	if len(header) > 0 {
		if _, err := w.Write(header); err != nil {
			return err
		}
	}
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return err
	}
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage of watorsave:
	watorsave [flags] file...
`)
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("watorsave: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		log.Fatal("no files to upload")
	}

	var headerData []byte
	if *header != "" {
		var err error
		headerData, err = os.ReadFile(*header)
		if err != nil {
			log.Fatal(err)
		}
		headerData = append(bytes.TrimRight(headerData, "\n"), '\n', '\n')
	}

	hc := http.DefaultClient
	if !*insecure {
		hc = oauth2.NewClient(context.Background(), newTokenSource())
	}

	pr, pw := io.Pipe()
	mpw := multipart.NewWriter(pw)

	go func() {
		defer pw.Close()
		defer mpw.Close()

		for _, name := range files {
			if err := writeOneFile(mpw, name, headerData); err != nil {
				log.Print(err)
				// Writing the 'abort' field makes the server reject
				// the upload; the error response unblocks the main
				// goroutine below.
				mpw.WriteField("abort", "1")
				return
			}
		}

		mpw.WriteField("commit", "1")
	}()

	start := time.Now()

	resp, err := hc.Post(*server+"/upload", mpw.FormDataContentType(), pr)
	if err != nil {
		log.Fatalf("upload failed: %v\n", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		log.Printf("upload failed: %v\n", resp.Status)
		io.Copy(os.Stderr, resp.Body)
		os.Exit(1)
	}

	status := &uploadStatus{}
	if err := json.NewDecoder(resp.Body).Decode(status); err != nil {
		log.Fatalf("cannot parse upload response: %v\n", err)
	}

	if *verbose {
		s := ""
		if len(files) != 1 {
			s = "s"
		}
		log.Printf("%d file%s uploaded in %.2f seconds.\n", len(files), s, time.Since(start).Seconds())
	}
	if status.ViewURL != "" {
		fmt.Printf("%s\n", status.ViewURL)
	}
}
