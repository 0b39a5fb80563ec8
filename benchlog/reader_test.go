// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func parseAll(t *testing.T, data string) []*Sample {
	t.Helper()
	r := NewReader(strings.NewReader(data), "test")
	var out []*Sample
	for r.Scan() {
		s := *r.Sample()
		// Wipe position information for comparisons.
		s.fileName = ""
		s.line = 0
		out = append(out, &s)
	}
	if err := r.Err(); err != nil {
		t.Fatal("parsing failed: ", err)
	}
	return out
}

func s(threads int, timeMs float64) *Sample {
	return &Sample{Threads: threads, TimeMs: timeMs}
}

func compareSamples(t *testing.T, got, want []*Sample) {
	t.Helper()
	var diff bytes.Buffer
	for i := 0; i < len(got) || i < len(want); i++ {
		switch {
		case i >= len(got):
			fmt.Fprintf(&diff, "[%d] got: none, want: %+v\n", i, want[i])
		case i >= len(want):
			fmt.Fprintf(&diff, "[%d] want: none, got: %+v\n", i, got[i])
		case !reflect.DeepEqual(got[i], want[i]):
			fmt.Fprintf(&diff, "[%d] got: %+v, want: %+v\n", i, got[i], want[i])
		}
	}
	if diff.Len() != 0 {
		t.Error(diff.String())
	}
}

func TestReader(t *testing.T) {
	type testCase struct {
		name, input string
		want        []*Sample
	}
	for _, test := range []testCase{
		{
			"basic",
			`Threads: 1
Execution Time: 500ms
Threads: 2
Execution Time: 300ms
`,
			[]*Sample{s(1, 500), s(2, 300)},
		},
		{
			"intervening text",
			`Wa-Tor Simulation
Grid: 100x100, Fish: 2000, Sharks: 400
Threads: 4
Simulation completed at step 1000
Final populations - Fish: 3127, Sharks: 212
Execution Time: 8123.45ms
done
`,
			[]*Sample{s(4, 8123.45)},
		},
		{
			"fields on one line",
			`Threads: 2, Execution Time: 250ms
Threads: 4 Execution Time: 125ms Threads: 8 Execution Time: 75ms
`,
			[]*Sample{s(2, 250), s(4, 125), s(8, 75)},
		},
		{
			"units",
			`Threads: 1
Execution Time: 1.2s
Threads: 2
Execution Time: 750000µs
Threads: 4
Execution Time: 2500μs
Threads: 8
Execution Time: 300ms
`,
			[]*Sample{s(1, 1200), s(2, 750), s(4, 2.5), s(8, 300)},
		},
		{
			"unit runs into following text",
			`Threads: 1
Execution Time: 1.2seconds
`,
			// "s" matches before the rest of the word.
			[]*Sample{s(1, 1200)},
		},
		{
			"duplicates preserved in order",
			`Threads: 2
Execution Time: 300ms
Threads: 2
Execution Time: 310ms
Threads: 1
Execution Time: 505ms
`,
			[]*Sample{s(2, 300), s(2, 310), s(1, 505)},
		},
		{
			"unparseable thread count is plain text",
			`Threads: many
Threads: 2
Threads: abc
Execution Time: 100ms
`,
			[]*Sample{s(2, 100)},
		},
		{
			"new thread count supersedes a pending one",
			`Threads: 1
Threads: 3
Execution Time: 90ms
`,
			[]*Sample{s(3, 90)},
		},
		{
			"time with no thread count is stray output",
			`Execution Time: 5ms
Threads: 2
Execution Time: 10ms
`,
			[]*Sample{s(2, 10)},
		},
		{
			"malformed time does not drop the record",
			`Threads: 2
Execution Time: 1.2.3ms
Execution Time: 7ms
`,
			[]*Sample{s(2, 7)},
		},
		{
			"detached unit suffix",
			`Threads: 2
Execution Time: 5 ms
Execution Time: 8ms
`,
			[]*Sample{s(2, 8)},
		},
		{
			"missing unit suffix",
			`Threads: 2
Execution Time: 5
`,
			nil,
		},
		{
			"zero thread count",
			`Threads: 0
Execution Time: 5ms
`,
			nil,
		},
		{
			"unmatched thread count at EOF",
			`Threads: 8
`,
			nil,
		},
		{
			"tight spacing",
			"Threads:4 Execution Time:2ms\n",
			[]*Sample{s(4, 2)},
		},
		{
			"crlf input",
			"Threads: 2\r\nExecution Time: 40ms\r\n",
			[]*Sample{s(2, 40)},
		},
		{
			"empty input",
			"",
			nil,
		},
		{
			"no records at all",
			`the quick brown fox
jumps over the lazy dog
`,
			nil,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := parseAll(t, test.input)
			compareSamples(t, got, test.want)
		})
	}
}

// TestReaderOrder feeds n well-formed records surrounded by noise and
// checks that exactly n samples come back in input order.
func TestReaderOrder(t *testing.T) {
	var in bytes.Buffer
	var want []*Sample
	threads := []int{1, 2, 4, 2, 8, 16, 1}
	for i, n := range threads {
		fmt.Fprintf(&in, "starting run %d\nThreads: %d\nsome noise\nmore noise\nExecution Time: %d.50ms\n", i, n, 100+i)
		want = append(want, s(n, float64(100+i)+0.5))
	}
	got := parseAll(t, in.String())
	compareSamples(t, got, want)
}

func TestReaderPos(t *testing.T) {
	r := NewReader(strings.NewReader(`Threads: 1
Execution Time: 500ms

Threads: 2
noise
Execution Time: 300ms
`), "bench.txt")

	wantLines := []int{1, 4}
	var i int
	for r.Scan() {
		file, line := r.Sample().Pos()
		if file != "bench.txt" {
			t.Errorf("sample %d: file = %q, want %q", i, file, "bench.txt")
		}
		if i < len(wantLines) && line != wantLines[i] {
			t.Errorf("sample %d: line = %d, want %d", i, line, wantLines[i])
		}
		i++
	}
	if err := r.Err(); err != nil {
		t.Fatal(err)
	}
	if i != len(wantLines) {
		t.Fatalf("got %d samples, want %d", i, len(wantLines))
	}
}

func TestReaderReset(t *testing.T) {
	r := NewReader(strings.NewReader("Threads: 2\n"), "a")
	if r.Scan() {
		t.Fatal("Scan returned true on an incomplete record")
	}

	// The pending thread count from "a" must not leak into "b".
	r.Reset(strings.NewReader("Execution Time: 10ms\nThreads: 4\nExecution Time: 20ms\n"), "b")
	var got []*Sample
	for r.Scan() {
		s := *r.Sample()
		got = append(got, &s)
	}
	if err := r.Err(); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Threads != 4 || got[0].TimeMs != 20 {
		t.Errorf("after Reset got %+v, want one sample (4, 20)", got)
	}
}

func TestReadAll(t *testing.T) {
	samples, err := ReadAll(strings.NewReader("Threads: 1\nExecution Time: 500ms\n"), "test")
	if err != nil {
		t.Fatal(err)
	}
	compareSamples(t, samples, []*Sample{{Threads: 1, TimeMs: 500, fileName: "test", line: 1}})

	samples, err = ReadAll(strings.NewReader("nothing here\n"), "test")
	if err != nil {
		t.Fatal(err)
	}
	if samples != nil {
		t.Errorf("got %v, want nil for a log with no records", samples)
	}
}
