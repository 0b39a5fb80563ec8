// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim implements a headless Wa-Tor world: the predator/prey
// cellular automaton whose timed runs the rest of this repository
// analyzes.
//
// The world is a toroidal grid of cells, each empty or holding one
// fish or one shark. A Step advances one chronon: sharks move first
// (eating adjacent fish, starving, breeding), then fish (moving to
// empty cells, breeding). Step can partition its row sweep across
// several goroutines; the sweep serializes cell updates through one
// shared mutex, so the contention cost grows with the thread count.
// That cost is exactly what the benchmark runs measure.
package sim

import (
	"fmt"
	"math/rand"
	"sync"
)

// A CellKind says what occupies a cell.
type CellKind int

const (
	Empty CellKind = iota
	Fish
	Shark
)

// A Cell is one grid position. Energy counts down to starvation for
// sharks and is unused for fish; BreedAge counts up to the breeding
// threshold for both.
type Cell struct {
	Kind     CellKind
	Energy   int
	BreedAge int
}

// A Config describes a world's dimensions, starting populations, and
// life-cycle rates.
type Config struct {
	Width, Height int
	Fish, Sharks  int

	FishBreed   int // chronons before a fish may breed
	SharkBreed  int // chronons before a shark may breed
	SharkStarve int // chronons a shark survives without eating
}

// Validate reports the first problem with c, or nil if c describes a
// world that can be built.
func (c Config) Validate() error {
	switch {
	case c.Width < 1 || c.Height < 1:
		return fmt.Errorf("sim: grid %dx%d is not positive", c.Width, c.Height)
	case c.Fish < 0 || c.Sharks < 0:
		return fmt.Errorf("sim: negative population")
	case c.Fish+c.Sharks > c.Width*c.Height:
		return fmt.Errorf("sim: %d fish + %d sharks exceed %d cells", c.Fish, c.Sharks, c.Width*c.Height)
	case c.FishBreed < 1 || c.SharkBreed < 1 || c.SharkStarve < 1:
		return fmt.Errorf("sim: breeding and starvation rates must be positive")
	}
	return nil
}

// A World is a running simulation. It is not safe for concurrent use;
// Step manages its own internal parallelism.
type World struct {
	cfg  Config
	grid [][]Cell
	rng  *rand.Rand
}

// New builds a world from cfg, placing the starting populations
// uniformly at random on distinct cells of an empty grid. The caller
// supplies the random source, so runs are reproducible from a seed.
// cfg must be valid.
func New(cfg Config, rng *rand.Rand) *World {
	w := &World{cfg: cfg, rng: rng}
	w.grid = make([][]Cell, cfg.Height)
	for i := range w.grid {
		w.grid[i] = make([]Cell, cfg.Width)
	}

	w.place(cfg.Fish, func() Cell {
		return Cell{Kind: Fish, BreedAge: rng.Intn(cfg.FishBreed)}
	})
	w.place(cfg.Sharks, func() Cell {
		return Cell{Kind: Shark, Energy: cfg.SharkStarve, BreedAge: rng.Intn(cfg.SharkBreed)}
	})
	return w
}

// place drops n cells produced by mk onto distinct empty positions.
func (w *World) place(n int, mk func() Cell) {
	for ; n > 0; n-- {
		for {
			x, y := w.rng.Intn(w.cfg.Width), w.rng.Intn(w.cfg.Height)
			if w.grid[y][x].Kind == Empty {
				w.grid[y][x] = mk()
				break
			}
		}
	}
}

// Count returns the current fish and shark populations.
func (w *World) Count() (fish, sharks int) {
	for _, row := range w.grid {
		for _, c := range row {
			switch c.Kind {
			case Fish:
				fish++
			case Shark:
				sharks++
			}
		}
	}
	return fish, sharks
}

// Step advances the world one chronon using the given number of
// worker threads and returns the number of fish eaten. threads == 1
// runs a plain serial sweep; threads > 1 splits the rows across
// goroutines that serialize per-cell updates through a shared mutex.
func (w *World) Step(threads int) int {
	next := make([][]Cell, w.cfg.Height)
	moved := make([][]bool, w.cfg.Height)
	for i := range next {
		next[i] = make([]Cell, w.cfg.Width)
		moved[i] = make([]bool, w.cfg.Width)
	}

	var eaten int
	if threads <= 1 {
		eaten = w.stepSerial(next, moved)
	} else {
		eaten = w.stepParallel(next, moved, threads)
	}
	w.grid = next
	return eaten
}

func (w *World) stepSerial(next [][]Cell, moved [][]bool) int {
	eaten := 0
	// Sharks sweep first so fish cannot move out from under them
	// within one chronon.
	for y := range w.grid {
		for x := range w.grid[y] {
			if w.grid[y][x].Kind == Shark && !moved[y][x] {
				if w.moveShark(y, x, next, moved) {
					eaten++
				}
			}
		}
	}
	for y := range w.grid {
		for x := range w.grid[y] {
			if w.grid[y][x].Kind == Fish && !moved[y][x] {
				w.moveFish(y, x, next, moved)
			}
		}
	}
	return eaten
}

func (w *World) stepParallel(next [][]Cell, moved [][]bool, threads int) int {
	var mu sync.Mutex
	eaten := 0

	// sweep runs fn over each thread's row band, holding mu around
	// every cell so updates to next and moved stay consistent. The
	// lock makes the sweep effectively serial; the point of the
	// exercise is measuring what that costs.
	sweep := func(fn func(y, x int)) {
		var wg sync.WaitGroup
		per := w.cfg.Height / threads
		if per == 0 {
			per = 1
		}
		for t := 0; t < threads; t++ {
			lo, hi := t*per, (t+1)*per
			if t == threads-1 {
				hi = w.cfg.Height
			}
			if lo >= w.cfg.Height {
				break
			}
			wg.Add(1)
			go func(lo, hi int) {
				defer wg.Done()
				for y := lo; y < hi; y++ {
					for x := 0; x < w.cfg.Width; x++ {
						mu.Lock()
						fn(y, x)
						mu.Unlock()
					}
				}
			}(lo, hi)
		}
		wg.Wait()
	}

	sweep(func(y, x int) {
		if w.grid[y][x].Kind == Shark && !moved[y][x] {
			if w.moveShark(y, x, next, moved) {
				eaten++
			}
		}
	})
	sweep(func(y, x int) {
		if w.grid[y][x].Kind == Fish && !moved[y][x] {
			w.moveFish(y, x, next, moved)
		}
	})
	return eaten
}

// moveShark advances the shark at (y, x) into next, reporting whether
// it ate a fish. The caller holds any lock needed for next and moved.
func (w *World) moveShark(y, x int, next [][]Cell, moved [][]bool) bool {
	shark := w.grid[y][x]
	shark.Energy--
	shark.BreedAge++

	ate := false
	ty, tx := y, x
	if fishCells := w.adjacent(y, x, Fish, moved); len(fishCells) > 0 {
		i := w.rng.Intn(len(fishCells))
		ty, tx = fishCells[i][0], fishCells[i][1]
		shark.Energy = w.cfg.SharkStarve
		ate = true
	} else if empty := w.adjacent(y, x, Empty, moved); len(empty) > 0 {
		i := w.rng.Intn(len(empty))
		ty, tx = empty[i][0], empty[i][1]
	}

	if shark.Energy <= 0 {
		// Starved. An eaten fish still counts; the target cell
		// just ends up empty.
		if ty != y || tx != x {
			next[ty][tx] = Cell{}
			moved[ty][tx] = true
		}
		return ate
	}

	if shark.BreedAge >= w.cfg.SharkBreed {
		next[y][x] = Cell{Kind: Shark, Energy: w.cfg.SharkStarve}
		moved[y][x] = true
		shark.BreedAge = 0
	}
	next[ty][tx] = shark
	moved[ty][tx] = true
	return ate
}

// moveFish advances the fish at (y, x) into next.
func (w *World) moveFish(y, x int, next [][]Cell, moved [][]bool) {
	fish := w.grid[y][x]
	fish.BreedAge++

	ty, tx := y, x
	if empty := w.adjacent(y, x, Empty, moved); len(empty) > 0 {
		i := w.rng.Intn(len(empty))
		ty, tx = empty[i][0], empty[i][1]
	}

	if fish.BreedAge >= w.cfg.FishBreed {
		next[y][x] = Cell{Kind: Fish}
		moved[y][x] = true
		fish.BreedAge = 0
	}
	next[ty][tx] = fish
	moved[ty][tx] = true
}

// adjacent returns the 4-neighborhood positions of (y, x), with
// toroidal wrap, currently holding kind and not yet claimed this
// chronon.
func (w *World) adjacent(y, x int, kind CellKind, moved [][]bool) [][2]int {
	var cells [][2]int
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		ny := (y + d[0] + w.cfg.Height) % w.cfg.Height
		nx := (x + d[1] + w.cfg.Width) % w.cfg.Width
		if !moved[ny][nx] && w.grid[ny][nx].Kind == kind {
			cells = append(cells, [2]int{ny, nx})
		}
	}
	return cells
}
