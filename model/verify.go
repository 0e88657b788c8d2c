package model

import "github.com/pkg/errors"

// ErrVerifyMismatch is returned when World and the dense reference diverge
var ErrVerifyMismatch = errors.New("world diverged from reference grid")

// Verifier steps a dense Grid alongside a World and compares the two
type Verifier struct {
	pool *GridPool
	grid *Grid
}

// NewVerifier snapshots the current generation of w
func NewVerifier(w *World) *Verifier {
	pool := NewGridPool()
	return &Verifier{pool: pool, grid: GridFrom(w, pool)}
}

// Check advances the reference by one generation and compares it with w,
// which must have been advanced exactly once since the previous check.
func (v *Verifier) Check(w *World) error {
	next := v.grid.NextGenerationParallel(v.pool)
	GridToPool(v.grid, v.pool)
	v.grid = next

	if want, got := v.grid.CountLivingCells(), w.Population(); want != got {
		return errors.Wrapf(ErrVerifyMismatch, "[Check] generation %d: population %d, reference %d",
			w.Generation(), got, want)
	}
	for y := range v.grid.GetHeight() {
		for x := range v.grid.GetWidth() {
			if v.grid.Get(x, y) != w.Get(x, y) {
				return errors.Wrapf(ErrVerifyMismatch, "[Check] generation %d: cell %v", w.Generation(), Coord{X: x, Y: y})
			}
		}
	}
	return nil
}
