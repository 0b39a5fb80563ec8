// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package local implements the fs.FS interface using local files.
// Metadata is not stored separately; it is assumed to be stored in
// the files themselves.
package local

import (
	"os"
	"path/filepath"

	"golang.org/x/net/context"

	"github.com/watorsim/watorperf/storage/fs"
)

// impl is an fs.FS backed by local disk.
type impl struct {
	root string
}

// NewFS constructs an FS that writes to the provided directory.
func NewFS(root string) fs.FS {
	return &impl{root}
}

// NewWriter creates a file under the root directory, making parent
// directories as needed. Since a local file cannot be unpublished,
// CloseWithError removes it instead.
func (f *impl) NewWriter(_ context.Context, name string, metadata map[string]string) (fs.Writer, error) {
	path := filepath.Join(f.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		return nil, err
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &wrapper{file, path}, nil
}

type wrapper struct {
	*os.File
	path string
}

// CloseWithError closes the file and attempts to delete it.
func (w *wrapper) CloseWithError(error) error {
	w.Close()
	return os.Remove(w.path)
}
