// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"math/rand"
	"testing"
)

func testConfig() Config {
	return Config{
		Width: 20, Height: 20,
		Fish: 80, Sharks: 20,
		FishBreed: 10, SharkBreed: 10, SharkStarve: 8,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"zero width", func(c *Config) { c.Width = 0 }, false},
		{"negative fish", func(c *Config) { c.Fish = -1 }, false},
		{"overfull", func(c *Config) { c.Fish = 500 }, false},
		{"exactly full", func(c *Config) { c.Fish, c.Sharks = 380, 20 }, true},
		{"zero starve", func(c *Config) { c.SharkStarve = 0 }, false},
	}
	for _, test := range tests {
		cfg := testConfig()
		test.mutate(&cfg)
		err := cfg.Validate()
		if (err == nil) != test.ok {
			t.Errorf("%s: Validate() = %v, want ok=%v", test.name, err, test.ok)
		}
	}
}

func TestNewPlacesPopulations(t *testing.T) {
	cfg := testConfig()
	w := New(cfg, rand.New(rand.NewSource(1)))
	fish, sharks := w.Count()
	if fish != cfg.Fish || sharks != cfg.Sharks {
		t.Errorf("Count() = %d, %d, want %d, %d", fish, sharks, cfg.Fish, cfg.Sharks)
	}
}

// Populations can grow by breeding but can never exceed the grid,
// since every creature occupies exactly one cell.
func TestStepBoundedByGrid(t *testing.T) {
	cfg := testConfig()
	w := New(cfg, rand.New(rand.NewSource(2)))
	for i := 0; i < 200; i++ {
		w.Step(1)
		fish, sharks := w.Count()
		if fish+sharks > cfg.Width*cfg.Height {
			t.Fatalf("step %d: %d fish + %d sharks exceed %d cells", i, fish, sharks, cfg.Width*cfg.Height)
		}
	}
}

// With no sharks there is no predation, so the fish population never
// shrinks.
func TestNoSharksNoPredation(t *testing.T) {
	cfg := testConfig()
	cfg.Sharks = 0
	w := New(cfg, rand.New(rand.NewSource(3)))
	prev, _ := w.Count()
	for i := 0; i < 100; i++ {
		if eaten := w.Step(1); eaten != 0 {
			t.Fatalf("step %d: %d fish eaten with no sharks", i, eaten)
		}
		fish, sharks := w.Count()
		if sharks != 0 {
			t.Fatalf("step %d: %d sharks appeared", i, sharks)
		}
		if fish < prev {
			t.Fatalf("step %d: fish fell %d -> %d", i, prev, fish)
		}
		prev = fish
	}
}

// The parallel sweep must preserve the same per-cell invariants as
// the serial one: one occupant per cell, populations bounded by the
// grid, no fish loss without sharks.
func TestStepParallelInvariants(t *testing.T) {
	for _, threads := range []int{2, 4, 8} {
		cfg := testConfig()
		w := New(cfg, rand.New(rand.NewSource(4)))
		for i := 0; i < 50; i++ {
			w.Step(threads)
			fish, sharks := w.Count()
			if fish+sharks > cfg.Width*cfg.Height {
				t.Fatalf("threads=%d step %d: %d+%d occupants exceed %d cells",
					threads, i, fish, sharks, cfg.Width*cfg.Height)
			}
		}
	}
}

// More threads than rows must not panic or lose rows.
func TestStepMoreThreadsThanRows(t *testing.T) {
	cfg := Config{
		Width: 4, Height: 3,
		Fish: 6, Sharks: 2,
		FishBreed: 5, SharkBreed: 5, SharkStarve: 4,
	}
	w := New(cfg, rand.New(rand.NewSource(5)))
	for i := 0; i < 20; i++ {
		w.Step(8)
	}
	fish, sharks := w.Count()
	if fish+sharks > cfg.Width*cfg.Height {
		t.Fatalf("%d occupants on a %d-cell grid", fish+sharks, cfg.Width*cfg.Height)
	}
}
