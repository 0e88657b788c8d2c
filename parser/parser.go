// Package parser reads initial world configurations.
//
// The first line holds the grid size as "<width>:<height>". Every following
// line names one live cell as "<x>,<y>". Blank lines are skipped.
package parser

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-world/model"
)

const (
	sizeSeparator  = ":"
	coordSeparator = ","

	// MaxGridCells caps width*height; the world keeps two dense grids of
	// one byte per cell, so this bounds them at 128 MiB.
	MaxGridCells = 1 << 26
)

var (
	ErrMissingGridSize = errors.New("grid size line missing")
	ErrInvalidGridSize = errors.New("invalid grid size")
	ErrEmptyGrid       = errors.New("grid has no cells")
	ErrInvalidCoord    = errors.New("invalid coordinate")
)

// parsePair splits line on sep into two unsigned integers
func parsePair(line, sep string) (int, int, bool) {
	left, right, found := strings.Cut(strings.TrimSpace(line), sep)
	if !found {
		return 0, 0, false
	}
	a, err := strconv.ParseUint(strings.TrimSpace(left), 10, 31)
	if err != nil {
		return 0, 0, false
	}
	b, err := strconv.ParseUint(strings.TrimSpace(right), 10, 31)
	if err != nil {
		return 0, 0, false
	}
	return int(a), int(b), true
}

// ParseGridSize parses a "<width>:<height>" line
func ParseGridSize(line string) (width, height int, err error) {
	width, height, ok := parsePair(line, sizeSeparator)
	if !ok {
		return 0, 0, errors.Wrapf(ErrInvalidGridSize, "[ParseGridSize] %q", line)
	}
	if width == 0 || height == 0 {
		return 0, 0, errors.Wrapf(ErrEmptyGrid, "[ParseGridSize] %dx%d", width, height)
	}
	if uint64(width)*uint64(height) > MaxGridCells {
		return 0, 0, errors.Wrapf(ErrInvalidGridSize, "[ParseGridSize] %dx%d exceeds %d cells", width, height, MaxGridCells)
	}
	return width, height, nil
}

// ParseCoord parses a "<x>,<y>" line
func ParseCoord(line string) (model.Coord, error) {
	x, y, ok := parsePair(line, coordSeparator)
	if !ok {
		return model.Coord{}, errors.Wrapf(ErrInvalidCoord, "[ParseCoord] %q", line)
	}
	return model.Coord{X: x, Y: y}, nil
}

// Load builds a world from r. The cells it names form the current
// generation of the returned world.
func Load(r io.Reader) (*model.World, error) {
	var (
		scanner = bufio.NewScanner(r)
		world   *model.World
		lineNo  int
	)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if world == nil {
			width, height, err := ParseGridSize(line)
			if err != nil {
				return nil, errors.Wrapf(err, "[Load] line %d", lineNo)
			}
			world = model.NewWorld(width, height)
			continue
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		c, err := ParseCoord(line)
		if err != nil {
			return nil, errors.Wrapf(err, "[Load] line %d", lineNo)
		}
		// already-alive cells are a no-op
		if _, err = world.Spawn(c); err != nil {
			return nil, errors.Wrapf(err, "[Load] line %d", lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "[Load] failed to read line %d", lineNo+1)
	}
	if world == nil {
		return nil, errors.Wrap(ErrMissingGridSize, "[Load]")
	}

	world.Commit()
	return world, nil
}

// LoadFile opens filename and loads it with Load
func LoadFile(filename string) (*model.World, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadFile] failed to open file: %+v", filename)
	}
	defer f.Close()

	world, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadFile] failed to parse file: %+v", filename)
	}
	return world, nil
}
