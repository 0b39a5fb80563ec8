// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"fmt"
	"io"
)

// The fixed prose of the markdown document. The analyzer has emitted
// this exact text since the first benchmark runs; wording, column
// widths, and blank lines all stay as they are.
const (
	mdTitle = "# Wa-Tor Simulation Performance Results\n\n## Test Configuration\n"

	mdTable = `
## Performance Results

### Execution Times

| Threads | Execution Time (ms) | Speedup | Efficiency (%) |
|---------|--------------------:|--------:|---------------:|
`

	mdRow = "| %7d | %18.2f | %6.2fx | %13.1f%% |\n"

	mdAnalysis = `
### Analysis

**Speedup**: Ratio of single-thread time to multi-thread time (higher is better)
- Ideal speedup would be linear (2x for 2 threads, 4x for 4 threads, etc.)

**Efficiency**: Percentage of ideal parallel performance achieved
- 100% efficiency means perfect scaling
- Values below 100% indicate overhead from synchronization and thread management

### Observations

`

	mdLimited = `3. **Limited Scaling**: The parallel implementation shows limited speedup, likely due to:
   - Fine-grained locking causing contention
   - Synchronization overhead exceeding computation benefits
   - Random memory access patterns reducing cache efficiency
`
	mdGood     = "3. **Good Scaling**: The parallel implementation shows effective scaling\n"
	mdModerate = "3. **Moderate Scaling**: Some benefit from parallelization, but with overhead\n"
)

const mdNotes = `
### Implementation Notes

The parallel implementation uses:
- Fine-grained mutex locking per entity operation
- Random entity processing order (Fisher-Yates shuffle)
- Work distribution across thread pool

The mutex contention for shared grid access creates a bottleneck that limits
parallel scaling. This is a common challenge in cellular automaton simulations
where entities can interact with any neighboring cell.

## Performance Graphs

See the generated PNG files for visual representation:
` + "- `execution_time.png` - Execution time vs thread count\n" +
	"- `speedup.png` - Speedup and efficiency vs thread count\n"

// WriteMarkdown writes the canonical markdown rendering of r.
func (r *Report) WriteMarkdown(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString(mdTitle)
	p := r.Preamble
	fmt.Fprintf(&buf, "- **Steps**: %d chronons\n", p.Steps)
	fmt.Fprintf(&buf, "- **Grid Size**: %s\n", p.GridSize)
	fmt.Fprintf(&buf, "- **Initial Population**: %d fish, %d sharks\n", p.Fish, p.Sharks)
	fmt.Fprintf(&buf, "- **Test Platform**: %s\n", p.Platform)
	fmt.Fprintf(&buf, "- **Go Version**: %s\n", p.GoVersion)

	buf.WriteString(mdTable)
	for _, row := range r.Rows {
		fmt.Fprintf(&buf, mdRow, row.Threads, row.TimeMs, row.Speedup, row.Efficiency)
	}

	buf.WriteString(mdAnalysis)
	fmt.Fprintf(&buf, "1. **Best Performance**: %d thread(s) achieved %.2fx speedup\n", r.BestThreads, r.BestSpeedup)
	fmt.Fprintf(&buf, "2. **Single Thread Baseline**: %.2f ms\n", r.BaselineMs)
	switch r.Verdict {
	case Limited:
		buf.WriteString(mdLimited)
	case Good:
		buf.WriteString(mdGood)
	default:
		buf.WriteString(mdModerate)
	}

	buf.WriteString(mdNotes)
	_, err := w.Write(buf.Bytes())
	return err
}
