package grid

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// MemorySource is an in-memory Source for tests.
type MemorySource struct {
	cells map[[2]int]string
}

func NewMemorySource() *MemorySource {
	return &MemorySource{cells: make(map[[2]int]string)}
}

// Set stores a value at (row, col), 1-based.
func (s *MemorySource) Set(row, col int, value string) {
	s.cells[[2]int{row, col}] = value
}

// SetCell stores a value at an A1-style reference. Invalid references panic,
// which is acceptable for test fixtures.
func (s *MemorySource) SetCell(ref, value string) {
	col, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		panic(err)
	}
	s.Set(row, col, value)
}

func (s *MemorySource) Cell(row, col int) (string, error) {
	return strings.TrimSpace(s.cells[[2]int{row, col}]), nil
}
