package model

import "fmt"

// Coord identifies a cell by column (X) and row (Y)
type Coord struct {
	X int
	Y int
}

// String formats the coordinate the way it appears in input files
func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}
