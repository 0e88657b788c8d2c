package model

const (
	cellAlive Cell = 1 << iota
	cellChecked
)

// Cell packs the alive and checked flags of a grid position.
// The zero value is a dead, unchecked cell.
type Cell uint8

// IsAlive reports whether the alive flag is set
func (c Cell) IsAlive() bool { return c&cellAlive != 0 }

// IsChecked reports whether the cell's fate was already decided this generation
func (c Cell) IsChecked() bool { return c&cellChecked != 0 }

// SetAlive sets the alive flag
func (c *Cell) SetAlive() { *c |= cellAlive }

// SetChecked marks the cell as decided for this generation
func (c *Cell) SetChecked() { *c |= cellChecked }
