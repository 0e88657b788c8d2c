package model

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/pkg/errors"
)

func seedWorld(t *testing.T, width, height int, cells ...Coord) *World {
	t.Helper()
	w := NewWorld(width, height)
	for _, c := range cells {
		if _, err := w.Spawn(c); err != nil {
			t.Fatalf("Spawn(%v): %v", c, err)
		}
	}
	w.Commit()
	return w
}

func sortedCoords(cs []Coord) []Coord {
	out := slices.Clone(cs)
	slices.SortFunc(out, func(a, b Coord) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return out
}

func assertAlive(t *testing.T, w *World, want ...Coord) {
	t.Helper()
	got := sortedCoords(w.Alive())
	want = sortedCoords(want)
	if !slices.Equal(got, want) {
		t.Fatalf("alive = %v, want %v", got, want)
	}
	count := 0
	for y := range w.GetHeight() {
		for x := range w.GetWidth() {
			if w.Get(x, y) {
				count++
			}
		}
	}
	if count != len(want) {
		t.Fatalf("grid holds %d live cells, alive list holds %d", count, len(want))
	}
}

func TestNeighborsMatchBruteForce(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 5}, {5, 1}, {2, 2}, {3, 3}, {4, 7}, {8, 8}}
	for _, size := range sizes {
		width, height := size[0], size[1]
		t.Run(fmt.Sprintf("%dx%d", width, height), func(t *testing.T) {
			w := NewWorld(width, height)
			for y := range height {
				for x := range width {
					c := Coord{X: x, Y: y}
					var want []Coord
					for dy := -1; dy <= 1; dy++ {
						for dx := -1; dx <= 1; dx++ {
							n := Coord{X: x + dx, Y: y + dy}
							if (dx != 0 || dy != 0) && w.InBounds(n) {
								want = append(want, n)
							}
						}
					}
					got := w.Neighbors(c)
					if !slices.Equal(sortedCoords(got), sortedCoords(want)) {
						t.Errorf("Neighbors(%v) = %v, want %v", c, got, want)
					}
				}
			}
		})
	}
}

func TestNeighborCounts(t *testing.T) {
	w := NewWorld(6, 4)
	tests := []struct {
		name string
		c    Coord
		want int
	}{
		{"north west corner", Coord{0, 0}, 3},
		{"north east corner", Coord{5, 0}, 3},
		{"south west corner", Coord{0, 3}, 3},
		{"south east corner", Coord{5, 3}, 3},
		{"north edge", Coord{2, 0}, 5},
		{"south edge", Coord{3, 3}, 5},
		{"west edge", Coord{0, 1}, 5},
		{"east edge", Coord{5, 2}, 5},
		{"interior", Coord{2, 2}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(w.Neighbors(tt.c)); got != tt.want {
				t.Errorf("len(Neighbors(%v)) = %d, want %d", tt.c, got, tt.want)
			}
		})
	}
}

func TestEmptyDimensions(t *testing.T) {
	for _, size := range [][2]int{{0, 0}, {0, 5}, {5, 0}, {-1, 3}} {
		w := NewWorld(size[0], size[1])
		if w.GetWidth() != 0 || w.GetHeight() != 0 {
			t.Errorf("NewWorld(%d, %d) = %dx%d, want 0x0", size[0], size[1], w.GetWidth(), w.GetHeight())
		}
		if _, err := w.Spawn(Coord{0, 0}); errors.Cause(err) != ErrOutOfBounds {
			t.Errorf("Spawn on empty world: err = %v, want ErrOutOfBounds", err)
		}
		if got := w.Advance(); got != 0 {
			t.Errorf("Advance on empty world = %d, want 0", got)
		}
	}
}

func TestEmptyWorldStaysEmpty(t *testing.T) {
	w := seedWorld(t, 10, 10)
	for range 3 {
		if got := w.Advance(); got != 0 {
			t.Fatalf("population = %d, want 0", got)
		}
	}
	assertAlive(t, w)
}

func TestBlockIsStill(t *testing.T) {
	block := []Coord{{3, 3}, {4, 3}, {3, 4}, {4, 4}}
	w := seedWorld(t, 8, 8, block...)
	for range 10 {
		w.Advance()
		assertAlive(t, w, block...)
	}
}

func TestBlockInCorner(t *testing.T) {
	block := []Coord{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	w := seedWorld(t, 4, 4, block...)
	for range 5 {
		w.Advance()
		assertAlive(t, w, block...)
	}
}

func TestBlinker(t *testing.T) {
	horizontal := []Coord{{1, 2}, {2, 2}, {3, 2}}
	vertical := []Coord{{2, 1}, {2, 2}, {2, 3}}

	w := seedWorld(t, 5, 5, horizontal...)
	assertAlive(t, w, horizontal...)

	w.Advance()
	assertAlive(t, w, vertical...)

	w.Advance()
	assertAlive(t, w, horizontal...)

	if w.Generation() != 2 {
		t.Errorf("Generation() = %d, want 2", w.Generation())
	}
}

func TestBlinkerOnLargeGrid(t *testing.T) {
	horizontal := []Coord{{19, 20}, {20, 20}, {21, 20}}
	vertical := []Coord{{20, 19}, {20, 20}, {20, 21}}
	w := seedWorld(t, 40, 40, horizontal...)
	for i := range 6 {
		w.Advance()
		if i%2 == 0 {
			assertAlive(t, w, vertical...)
		} else {
			assertAlive(t, w, horizontal...)
		}
	}
}

func TestBlinkerAgainstEdge(t *testing.T) {
	// vertical blinker on the west edge loses its off-grid births
	w := seedWorld(t, 5, 5, Coord{0, 1}, Coord{0, 2}, Coord{0, 3})
	w.Advance()
	assertAlive(t, w, Coord{0, 2}, Coord{1, 2})
	w.Advance()
	assertAlive(t, w)
}

func TestDuplicateSpawn(t *testing.T) {
	w := NewWorld(5, 5)
	for i, want := range []bool{true, false, false} {
		ok, err := w.Spawn(Coord{2, 2})
		if err != nil {
			t.Fatalf("Spawn: %v", err)
		}
		if ok != want {
			t.Errorf("spawn #%d = %v, want %v", i, ok, want)
		}
	}
	if _, err := w.Spawn(Coord{3, 2}); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	w.Commit()
	assertAlive(t, w, Coord{2, 2}, Coord{3, 2})
	if w.Population() != 2 {
		t.Errorf("Population() = %d, want 2", w.Population())
	}
}

func TestSpawnOutOfBounds(t *testing.T) {
	w := NewWorld(3, 3)
	for _, c := range []Coord{{3, 0}, {0, 3}, {-1, 0}, {0, -1}, {10, 10}} {
		ok, err := w.Spawn(c)
		if ok || errors.Cause(err) != ErrOutOfBounds {
			t.Errorf("Spawn(%v) = %v, %v; want false, ErrOutOfBounds", c, ok, err)
		}
	}
}

func TestRuleTransitions(t *testing.T) {
	tests := []struct {
		name   string
		seed   []Coord
		target Coord
		alive  bool
	}{
		{"birth with three", []Coord{{1, 1}, {3, 1}, {2, 3}}, Coord{2, 2}, true},
		{"no birth with two", []Coord{{1, 1}, {3, 1}}, Coord{2, 2}, false},
		{"dies alone", []Coord{{2, 2}}, Coord{2, 2}, false},
		{"dies with one", []Coord{{2, 2}, {1, 1}}, Coord{2, 2}, false},
		{"survives with two", []Coord{{2, 2}, {1, 1}, {3, 3}}, Coord{2, 2}, true},
		{"survives with three", []Coord{{2, 2}, {1, 1}, {3, 3}, {1, 3}}, Coord{2, 2}, true},
		{"dies with four", []Coord{{2, 2}, {1, 1}, {3, 3}, {1, 3}, {3, 1}}, Coord{2, 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := seedWorld(t, 5, 5, tt.seed...)
			w.Advance()
			if got := w.IsAlive(tt.target); got != tt.alive {
				t.Errorf("IsAlive(%v) = %v, want %v", tt.target, got, tt.alive)
			}
		})
	}
}

func TestAdvanceNoDuplicates(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	w := NewWorld(30, 20)
	for range 200 {
		if _, err := w.Spawn(Coord{X: rng.Intn(30), Y: rng.Intn(20)}); err != nil {
			t.Fatalf("Spawn: %v", err)
		}
	}
	w.Commit()
	for range 20 {
		w.Advance()
		alive := sortedCoords(w.Alive())
		if len(slices.Compact(slices.Clone(alive))) != len(alive) {
			t.Fatalf("generation %d: duplicate entries in alive list", w.Generation())
		}
	}
}

func TestSpawnBeforeAdvance(t *testing.T) {
	w := seedWorld(t, 5, 5, Coord{1, 2}, Coord{2, 2}, Coord{3, 2})
	// injected cell is also born by the rule
	if _, err := w.Spawn(Coord{2, 1}); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	w.Advance()
	assertAlive(t, w, Coord{2, 1}, Coord{2, 2}, Coord{2, 3})
}

func TestMatchesReferenceGrid(t *testing.T) {
	for seed := range int64(5) {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewSource(seed))
			ref := NewGrid(25, 17)
			randomize(ref, rng, 0.3)

			w := NewWorld(25, 17)
			for y := range ref.GetHeight() {
				for x := range ref.GetWidth() {
					if ref.Get(x, y) {
						if _, err := w.Spawn(Coord{X: x, Y: y}); err != nil {
							t.Fatalf("Spawn: %v", err)
						}
					}
				}
			}
			w.Commit()

			for gen := 1; gen <= 30; gen++ {
				ref = ref.NextGenerationParallel(nil)
				w.Advance()
				if HashOf(ref) != HashOf(w) {
					t.Fatalf("generation %d: world diverged from reference grid", gen)
				}
			}
		})
	}
}

func BenchmarkAdvance(b *testing.B) {
	for _, size := range []int{64, 512} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			rng := rand.New(rand.NewSource(1))
			w := NewWorld(size, size)
			for range size * size / 10 {
				_, _ = w.Spawn(Coord{X: rng.Intn(size), Y: rng.Intn(size)})
			}
			w.Commit()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				w.Advance()
			}
		})
	}
}

func TestChanges(t *testing.T) {
	w := seedWorld(t, 5, 5, Coord{1, 2}, Coord{2, 2}, Coord{3, 2})
	w.Advance()
	births, deaths := w.Changes()
	if births != 2 || deaths != 2 {
		t.Errorf("Changes() = %d, %d; want 2, 2", births, deaths)
	}

	w = seedWorld(t, 5, 5, Coord{2, 2})
	w.Advance()
	births, deaths = w.Changes()
	if births != 0 || deaths != 1 {
		t.Errorf("Changes() = %d, %d; want 0, 1", births, deaths)
	}
}

func checkedCells(w *World) int {
	count := 0
	for y := range w.nextGrid {
		for x := range w.nextGrid[y] {
			if w.nextGrid[y][x].IsChecked() {
				count++
			}
		}
	}
	return count
}

func TestTickVisitsOnlyNeighborhoods(t *testing.T) {
	tests := []struct {
		name    string
		seed    []Coord
		checked int
		births  int
		deaths  int
	}{
		// x 0..4, y 1..3
		{"blinker near west edge", []Coord{{1, 2}, {2, 2}, {3, 2}}, 15, 2, 2},
		// x 0..1, y 0..1
		{"lone corner cell", []Coord{{0, 0}}, 4, 0, 1},
		{"block in corner", []Coord{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, 9, 0, 0},
		{"empty", nil, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := seedWorld(t, 50, 50, tt.seed...)
			w.Tick()

			if got := checkedCells(w); got != tt.checked {
				t.Errorf("checked cells = %d, want %d", got, tt.checked)
			}
			if w.nextGrid[40][40].IsChecked() {
				t.Error("cell far from life was evaluated")
			}
			// births are tallied on every evaluation, so a repeat visit inflates them
			if births, deaths := w.Changes(); births != tt.births || deaths != tt.deaths {
				t.Errorf("Changes() = %d, %d; want %d, %d", births, deaths, tt.births, tt.deaths)
			}
		})
	}
}
