// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fs provides a backend-agnostic filesystem layer for storing
// uploaded benchmark logs.
package fs

import (
	"errors"
	"io"
	"sort"
	"sync"

	"golang.org/x/net/context"
)

// An FS stores uploaded benchmark files.
type FS interface {
	// NewWriter returns a Writer for a file with the given name,
	// overwriting any existing file. The file's contents are not
	// visible until the Writer is closed without error.
	NewWriter(ctx context.Context, name string, metadata map[string]string) (Writer, error)
}

// A Writer is an io.WriteCloser that can also discard the file on
// error instead of publishing it.
type Writer interface {
	io.WriteCloser

	// CloseWithError abandons the write; the file is not stored.
	CloseWithError(error) error
}

// MemFS is an in-memory filesystem implementing FS, for testing and
// ephemeral local servers.
type MemFS struct {
	mu      sync.Mutex
	content map[string]*memFile
}

// NewMemFS constructs a new, empty MemFS.
func NewMemFS() *MemFS {
	return &MemFS{
		content: make(map[string]*memFile),
	}
}

// NewWriter returns a Writer that writes the named file into memory.
func (fs *MemFS) NewWriter(_ context.Context, name string, metadata map[string]string) (Writer, error) {
	meta := make(map[string]string)
	for k, v := range metadata {
		meta[k] = v
	}
	return &memWriter{fs: fs, name: name, metadata: meta}, nil
}

// ReadFile returns the contents of the named file, or an error if it
// was never successfully written.
func (fs *MemFS) ReadFile(name string) ([]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	f, ok := fs.content[name]
	if !ok {
		return nil, errors.New(name + ": no such file")
	}
	return f.content, nil
}

// Files returns the names of the stored files, sorted.
func (fs *MemFS) Files() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var names []string
	for name := range fs.content {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type memFile struct {
	content  []byte
	metadata map[string]string
}

type memWriter struct {
	fs       *MemFS
	name     string
	metadata map[string]string
	buf      []byte
	done     bool
}

func (w *memWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

func (w *memWriter) Close() error {
	if w.done {
		return errors.New("already closed")
	}
	w.done = true
	w.fs.mu.Lock()
	defer w.fs.mu.Unlock()
	w.fs.content[w.name] = &memFile{content: w.buf, metadata: w.metadata}
	return nil
}

func (w *memWriter) CloseWithError(error) error {
	w.done = true
	return nil
}
