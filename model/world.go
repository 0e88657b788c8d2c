package model

import (
	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-world/rules"
)

// ErrOutOfBounds is returned when a coordinate lies outside the world
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// World is a bounded Game of Life simulation that only evaluates live cells
// and their neighbors. It keeps two grids and two alive lists: rule evaluation
// reads grid/alive while births and survivors are written to nextGrid/nextAlive,
// and Commit swaps the pairs.
type World struct {
	width  int
	height int

	grid     [][]Cell
	nextGrid [][]Cell

	alive     []Coord
	nextAlive []Coord

	generation int
	births     int
	survivors  int
	deaths     int
}

// NewWorld creates an empty world. Non-positive dimensions produce a world
// with no cells at all.
func NewWorld(width, height int) *World {
	if width <= 0 || height <= 0 {
		width, height = 0, 0
	}
	return &World{
		width:    width,
		height:   height,
		grid:     newCells(width, height),
		nextGrid: newCells(width, height),
	}
}

func newCells(width, height int) [][]Cell {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
	}
	return cells
}

// GetWidth returns the width of the world
func (w *World) GetWidth() int {
	return w.width
}

// GetHeight returns the height of the world
func (w *World) GetHeight() int {
	return w.height
}

// Generation returns how many times the world has been advanced
func (w *World) Generation() int {
	return w.generation
}

// Population returns the number of live cells in the current generation
func (w *World) Population() int {
	return len(w.alive)
}

// Alive returns a copy of the current alive list
func (w *World) Alive() []Coord {
	out := make([]Coord, len(w.alive))
	copy(out, w.alive)
	return out
}

// InBounds reports whether c addresses a cell of the world
func (w *World) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < w.width && c.Y >= 0 && c.Y < w.height
}

// IsAlive reports whether c is alive in the current generation
func (w *World) IsAlive(c Coord) bool {
	return w.grid[c.Y][c.X].IsAlive()
}

// Get returns the current state of a cell, false when out of bounds
func (w *World) Get(x, y int) bool {
	c := Coord{X: x, Y: y}
	return w.InBounds(c) && w.IsAlive(c)
}

func (w *World) isChecked(c Coord) bool {
	return w.nextGrid[c.Y][c.X].IsChecked()
}

func (w *World) setChecked(c Coord) {
	w.nextGrid[c.Y][c.X].SetChecked()
}

func (w *World) setAlive(c Coord) {
	w.nextGrid[c.Y][c.X].SetAlive()
}

// Spawn marks c alive in the next generation. It returns false without error
// when c is already alive there.
func (w *World) Spawn(c Coord) (bool, error) {
	if !w.InBounds(c) {
		return false, errors.Wrapf(ErrOutOfBounds, "[Spawn] %v outside %dx%d", c, w.width, w.height)
	}
	if w.nextGrid[c.Y][c.X].IsAlive() {
		return false, nil
	}
	w.setAlive(c)
	w.nextAlive = append(w.nextAlive, c)
	return true, nil
}

// neighborBounds clamps the 3x3 block around c to the world
func (w *World) neighborBounds(c Coord) (minX, maxX, minY, maxY int) {
	return max(0, c.X-1), min(w.width-1, c.X+1), max(0, c.Y-1), min(w.height-1, c.Y+1)
}

// Neighbors returns the in-bounds neighbors of c
func (w *World) Neighbors(c Coord) []Coord {
	minX, maxX, minY, maxY := w.neighborBounds(c)
	out := make([]Coord, 0, 8)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if x == c.X && y == c.Y {
				continue
			}
			out = append(out, Coord{X: x, Y: y})
		}
	}
	return out
}

// liveNeighbors counts alive neighbors of c in the current grid
func (w *World) liveNeighbors(c Coord) int {
	count := 0
	minX, maxX, minY, maxY := w.neighborBounds(c)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if x == c.X && y == c.Y {
				continue
			}
			if w.grid[y][x].IsAlive() {
				count++
			}
		}
	}
	return count
}

// evaluate decides the fate of c once per generation
func (w *World) evaluate(c Coord) {
	if w.isChecked(c) {
		return
	}
	w.setChecked(c)
	alive := w.IsAlive(c)
	if !rules.ApplyConwayRules(w.liveNeighbors(c), alive) {
		return
	}
	if alive {
		w.survivors++
	} else {
		w.births++
	}
	// cells spawned before the tick are already in nextAlive
	if !w.nextGrid[c.Y][c.X].IsAlive() {
		w.setAlive(c)
		w.nextAlive = append(w.nextAlive, c)
	}
}

// Tick computes the next generation into the next buffers. Only live cells
// and their neighbors are visited.
func (w *World) Tick() {
	w.births, w.survivors = 0, 0
	for _, c := range w.alive {
		minX, maxX, minY, maxY := w.neighborBounds(c)
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				w.evaluate(Coord{X: x, Y: y})
			}
		}
	}
	w.deaths = len(w.alive) - w.survivors
}

// Changes returns the births and deaths of the last Tick
func (w *World) Changes() (births, deaths int) {
	return w.births, w.deaths
}

// Commit publishes the next buffers as the current generation and resets
// the next buffers to all dead, unchecked cells.
func (w *World) Commit() {
	w.grid, w.nextGrid = w.nextGrid, w.grid
	w.alive, w.nextAlive = w.nextAlive, w.alive[:0]
	for y := range w.nextGrid {
		clear(w.nextGrid[y])
	}
}

// Advance moves the world forward one generation and returns the new population
func (w *World) Advance() int {
	w.Tick()
	w.Commit()
	w.generation++
	return len(w.alive)
}
