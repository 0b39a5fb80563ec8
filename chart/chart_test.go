// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/watorsim/watorperf/benchlog"
	"github.com/watorsim/watorperf/scaling"
)

func sample(threads int, ms float64) *benchlog.Sample {
	return &benchlog.Sample{Threads: threads, TimeMs: ms}
}

func TestTimeSpec(t *testing.T) {
	samples := []*benchlog.Sample{sample(1, 500), sample(2, 300), sample(4, 150)}
	s := TimeSpec(samples)

	if s.Title != "Wa-Tor Simulation Execution Time vs Thread Count" {
		t.Errorf("title = %q", s.Title)
	}
	if s.XLabel != "Number of Threads" || s.YLabel != "Execution Time (ms)" {
		t.Errorf("axis labels = %q / %q", s.XLabel, s.YLabel)
	}
	if s.Annotate != "%.1fms" {
		t.Errorf("annotate = %q", s.Annotate)
	}
	if want := []float64{1, 2, 4}; !reflect.DeepEqual(s.Xs, want) {
		t.Errorf("xs = %v, want %v", s.Xs, want)
	}
	if len(s.Series) != 1 {
		t.Fatalf("got %d series, want 1", len(s.Series))
	}
	es := s.Series[0]
	if es.Label != "Execution Time" || es.Dashed || es.Secondary {
		t.Errorf("series = %+v", es)
	}
	if want := []float64{500, 300, 150}; !reflect.DeepEqual(es.Ys, want) {
		t.Errorf("ys = %v, want %v", es.Ys, want)
	}
}

func TestSpeedupSpec(t *testing.T) {
	samples := []*benchlog.Sample{sample(1, 400), sample(2, 200), sample(4, 100)}
	m := scaling.Compute(samples)
	s := SpeedupSpec(samples, m)

	if s.Title != "Wa-Tor Simulation Speedup and Efficiency" {
		t.Errorf("title = %q", s.Title)
	}
	if s.XLabel != "Number of Threads" || s.YLabel != "Speedup" {
		t.Errorf("axis labels = %q / %q", s.XLabel, s.YLabel)
	}
	if s.Y2Label != "Efficiency (%)" || s.Y2Min != 0 || s.Y2Max != 120 {
		t.Errorf("secondary axis = %q [%v, %v]", s.Y2Label, s.Y2Min, s.Y2Max)
	}
	if len(s.Series) != 3 {
		t.Fatalf("got %d series, want 3", len(s.Series))
	}

	spd, ideal, eff := s.Series[0], s.Series[1], s.Series[2]
	if spd.Label != "Speedup" || spd.Dashed || spd.Secondary {
		t.Errorf("speedup series = %+v", spd)
	}
	if !reflect.DeepEqual(spd.Ys, m.Speedup) {
		t.Errorf("speedup ys = %v, want %v", spd.Ys, m.Speedup)
	}
	if ideal.Label != "Ideal (Linear)" || !ideal.Dashed || ideal.Secondary {
		t.Errorf("ideal series = %+v", ideal)
	}
	if want := []float64{1, 2, 4}; !reflect.DeepEqual(ideal.Ys, want) {
		t.Errorf("ideal ys = %v, want %v", ideal.Ys, want)
	}
	if eff.Label != "Efficiency" || !eff.Secondary || eff.Dashed {
		t.Errorf("efficiency series = %+v", eff)
	}
	if !reflect.DeepEqual(eff.Ys, m.Efficiency) {
		t.Errorf("efficiency ys = %v, want %v", eff.Ys, m.Efficiency)
	}
}

func TestNop(t *testing.T) {
	if err := (Nop{}).Render(TimeSpec(nil), "ignored.png"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestPNGRender(t *testing.T) {
	dir := t.TempDir()
	samples := []*benchlog.Sample{sample(1, 500), sample(2, 300), sample(4, 150), sample(8, 140)}
	m := scaling.Compute(samples)

	test := func(spec *Spec, name string) {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := (PNG{}).Render(spec, path); err != nil {
			t.Fatalf("Render %s: %v", name, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if !bytes.HasPrefix(data, pngMagic) {
			t.Errorf("%s is not a PNG file", name)
		}
	}

	test(TimeSpec(samples), "execution_time.png")
	test(SpeedupSpec(samples, m), "speedup.png")
}

func TestPNGRenderEmpty(t *testing.T) {
	err := (PNG{}).Render(&Spec{Title: "empty"}, filepath.Join(t.TempDir(), "empty.png"))
	if err == nil {
		t.Error("Render accepted a spec with no data")
	}
}
