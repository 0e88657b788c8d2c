package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	macosClearCmd = "clear"

	// DefaultLiveMarker and DefaultDeadMarker are the snapshot file characters
	DefaultLiveMarker = '1'
	DefaultDeadMarker = ' '
)

// CellSource is anything that can be rendered row by row
type CellSource interface {
	GetWidth() int
	GetHeight() int
	Get(x, y int) bool
}

// SnapshotRenderer writes a generation as height rows of width characters
type SnapshotRenderer struct {
	Live byte
	Dead byte
}

// NewSnapshotRenderer returns a renderer using the default markers
func NewSnapshotRenderer() SnapshotRenderer {
	return SnapshotRenderer{Live: DefaultLiveMarker, Dead: DefaultDeadMarker}
}

// Render writes src to w, one newline-terminated row per y
func (r SnapshotRenderer) Render(w io.Writer, src CellSource) error {
	bw := bufio.NewWriter(w)
	row := make([]byte, src.GetWidth()+1)
	row[len(row)-1] = '\n'
	for y := range src.GetHeight() {
		for x := range src.GetWidth() {
			if src.Get(x, y) {
				row[x] = r.Live
			} else {
				row[x] = r.Dead
			}
		}
		if _, err := bw.Write(row); err != nil {
			return errors.Wrapf(err, "[Render] failed to write row: %d", y)
		}
	}
	return errors.Wrap(bw.Flush(), "[Render] failed to flush snapshot")
}

// WriteFile renders src into the named file, replacing any existing content
func (r SnapshotRenderer) WriteFile(name string, src CellSource) error {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "[WriteFile] failed to create file: %+v", name)
	}
	if err = r.Render(f, src); err != nil {
		f.Close()
		return errors.Wrapf(err, "[WriteFile] failed to render file: %+v", name)
	}
	return errors.Wrapf(f.Close(), "[WriteFile] failed to close file: %+v", name)
}

// TerminalRenderer implements basic terminal rendering
type TerminalRenderer struct {
	Out io.Writer
}

// Display renders the grid to the terminal
func (r *TerminalRenderer) Display(src CellSource) {
	for y := range src.GetHeight() {
		for x := range src.GetWidth() {
			if src.Get(x, y) {
				fmt.Fprint(r.Out, gridPosBlock)
			} else {
				fmt.Fprint(r.Out, gridPosEmpty)
			}
		}
		fmt.Fprintln(r.Out)
	}
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	cmd := exec.Command(macosClearCmd)
	cmd.Stdout = r.Out
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(r.Out, "Error clearing terminal:", err)
	}
}
