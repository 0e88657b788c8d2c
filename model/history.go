package model

import (
	"crypto/md5"
	"fmt"
)

const historySize = 5

// History stores recent snapshot hashes for cycle detection
type History struct {
	hashes []string
}

// HashOf returns an MD5 hash of the cells of src in row-major order
func HashOf(src CellSource) string {
	h := md5.New()
	for y := range src.GetHeight() {
		for x := range src.GetWidth() {
			if src.Get(x, y) {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Record adds a hash to the history, keeping only the most recent ones
func (h *History) Record(hash string) {
	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
}

// Len returns the number of stored hashes
func (h *History) Len() int {
	return len(h.hashes)
}

// IsStagnant checks whether hash repeats one of the last three recorded
// states, i.e. a still life or an oscillator with period up to three.
func (h *History) IsStagnant(hash string) bool {
	for i := len(h.hashes) - 1; i >= 0 && i >= len(h.hashes)-3; i-- {
		if h.hashes[i] == hash {
			return true
		}
	}
	return false
}
