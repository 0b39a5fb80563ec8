// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Watorbench runs the Wa-Tor simulation at a series of thread counts
// and records how long each run takes.
//
// Usage:
//
//	watorbench [flags]
//
// For every thread count in -threads, watorbench builds a fresh world
// from the same seed, steps it -steps times, and appends one record
// in the canonical log format to the output file:
//
//	Threads: 4
//	Execution Time: 8123.45ms
//
// With -count > 1 each thread count is run that many times and every
// run is recorded; the analyzer sees them as separate samples. A
// summary of each thread count's runs is printed to standard output.
//
// The resulting log is the input to watorreport.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/watorsim/watorperf/benchlog"
	"github.com/watorsim/watorperf/scaling"
	"github.com/watorsim/watorperf/sim"
	"github.com/watorsim/watorperf/timeunit"
)

var exit = os.Exit // replaced during testing

func usage() {
	fmt.Fprintf(os.Stderr, "usage: watorbench [options]\n")
	fmt.Fprintf(os.Stderr, "options:\n")
	flag.PrintDefaults()
	exit(2)
}

var (
	flagSize    = flag.Int("size", 100, "grid dimensions (square)")
	flagFish    = flag.Int("fish", 2000, "starting population of fish")
	flagSharks  = flag.Int("sharks", 400, "starting population of sharks")
	flagFBreed  = flag.Int("fbreed", 10, "fish breeding time")
	flagSBreed  = flag.Int("sbreed", 10, "shark breeding time")
	flagStarve  = flag.Int("starve", 8, "shark starvation time")
	flagSteps   = flag.Int("steps", 1000, "number of simulation steps per run")
	flagThreads = flag.String("threads", "1,2,4,8", "comma-separated `list` of thread counts to benchmark")
	flagCount   = flag.Int("count", 1, "number of runs per thread count")
	flagSeed    = flag.Int64("seed", 1, "world placement seed")
	flagOut     = flag.String("o", "benchmark_results.txt", "append benchmark records to `file`")
	flagAppend  = flag.Bool("append", false, "append to the output file instead of truncating it")
)

func main() {
	log.SetPrefix("watorbench: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() > 0 {
		flag.Usage()
	}

	threadCounts, err := parseThreads(*flagThreads)
	if err != nil {
		log.Print(err)
		flag.Usage()
	}

	cfg := sim.Config{
		Width: *flagSize, Height: *flagSize,
		Fish: *flagFish, Sharks: *flagSharks,
		FishBreed: *flagFBreed, SharkBreed: *flagSBreed, SharkStarve: *flagStarve,
	}
	if err := cfg.Validate(); err != nil {
		log.Print(err)
		flag.Usage()
	}
	if *flagSteps < 1 || *flagCount < 1 {
		log.Print("steps and count must be positive")
		flag.Usage()
	}

	mode := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if *flagAppend {
		mode = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	f, err := os.OpenFile(*flagOut, mode, 0666)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	w := benchlog.NewWriter(f)

	for _, threads := range threadCounts {
		times := make([]float64, 0, *flagCount)
		for run := 0; run < *flagCount; run++ {
			ms := timeRun(cfg, threads)
			times = append(times, ms)
			if err := w.Write(&benchlog.Sample{Threads: threads, TimeMs: ms}); err != nil {
				log.Fatal(err)
			}
		}
		summarize(threads, times)
	}

	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
}

// parseThreads parses the -threads list. Counts must be positive
// integers.
func parseThreads(s string) ([]int, error) {
	var counts []int
	for _, field := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("bad thread count %q", field)
		}
		counts = append(counts, n)
	}
	return counts, nil
}

// timeRun builds a world from the configured seed and times stepping
// it, returning the elapsed time in milliseconds. Each run starts
// from an identical world so the thread count is the only variable.
func timeRun(cfg sim.Config, threads int) float64 {
	w := sim.New(cfg, rand.New(rand.NewSource(*flagSeed)))
	start := time.Now()
	for i := 0; i < *flagSteps; i++ {
		w.Step(threads)
	}
	return float64(time.Since(start)) / float64(time.Millisecond)
}

// summarize prints one console line for a thread count's runs.
func summarize(threads int, times []float64) {
	d := scaling.Describe(times)
	scale := timeunit.NewScaler(d.Median)
	if d.N == 1 {
		fmt.Printf("threads=%d: %s\n", threads, scale(d.Median))
		return
	}
	fmt.Printf("threads=%d: median %s, mean %s, min %s, max %s (n=%d)\n",
		threads, scale(d.Median), scale(d.Mean), scale(d.Min), scale(d.Max), d.N)
}
