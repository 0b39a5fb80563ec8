// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a", "Threads: 1\nExecution Time: 500ms\nThreads: 2\nExecution Time: 300ms\n")
	b := writeFile(t, dir, "b", "noise\nThreads: 4\nExecution Time: 200ms\n")

	check := func(f *Files, wantErr string, want ...*Sample) {
		t.Helper()
		var got []*Sample
		for f.Scan() {
			s := *f.Sample()
			s.fileName = ""
			s.line = 0
			got = append(got, &s)
		}
		err := f.Err()
		if err == nil && wantErr != "" {
			t.Errorf("got success, want error %q", wantErr)
		} else if err != nil && wantErr == "" {
			t.Errorf("got error %s", err)
		}
		compareSamples(t, got, want)
	}

	check(&Files{Paths: []string{a, b}}, "",
		s(1, 500), s(2, 300), s(4, 200))

	// A missing file stops the scan with an error after the earlier
	// files have been consumed.
	check(&Files{Paths: []string{a, filepath.Join(dir, "missing")}}, "open",
		s(1, 500), s(2, 300))

	// The same file may be read twice.
	check(&Files{Paths: []string{b, b}}, "",
		s(4, 200), s(4, 200))

	// Empty path list without AllowStdin reads nothing.
	check(&Files{}, "")
}

func TestFilesStdin(t *testing.T) {
	fakeStdin(t, "Threads: 8\nExecution Time: 9.5ms\n", func() {
		f := &Files{Paths: []string{"-"}, AllowStdin: true}
		var got []*Sample
		for f.Scan() {
			s := *f.Sample()
			got = append(got, &s)
		}
		if err := f.Err(); err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Threads != 8 || got[0].TimeMs != 9.5 {
			t.Errorf("got %+v, want one sample (8, 9.5)", got)
		}
		if file, _ := got[0].Pos(); file != "-" {
			t.Errorf("file = %q, want %q", file, "-")
		}
	})

	// An empty path list with AllowStdin reads stdin.
	fakeStdin(t, "Threads: 2\nExecution Time: 1ms\n", func() {
		f := &Files{AllowStdin: true}
		n := 0
		for f.Scan() {
			n++
		}
		if err := f.Err(); err != nil {
			t.Fatal(err)
		}
		if n != 1 {
			t.Errorf("got %d samples from stdin, want 1", n)
		}
	})
}

func fakeStdin(t *testing.T, content string, cb func()) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	go func() {
		defer w.Close()
		w.WriteString(content)
	}()
	defer r.Close()
	defer func(orig *os.File) { os.Stdin = orig }(os.Stdin)
	os.Stdin = r
	cb()
}
