package t2048

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell addresses a grid position.
type Cell struct {
	Row int
	Col int
}

// Tile is a value placed at a cell.
type Tile struct {
	Cell
	Value int
}

// Grid is a square matrix of tile values; 0 marks an empty cell.
// Grids are treated as values: every operation that changes one returns a copy.
type Grid struct {
	size  int
	cells []int // row-major
}

// NewGrid returns an empty size x size grid.
func NewGrid(size int) Grid {
	if size < 0 {
		size = 0
	}
	return Grid{size: size, cells: make([]int, size*size)}
}

// GridFromRows builds a grid from explicit rows. Rows must form a square and
// every non-zero value must be a power of two >= 2.
func GridFromRows(rows [][]int) (Grid, error) {
	n := len(rows)
	if n == 0 {
		return Grid{}, fmt.Errorf("%w: grid has no rows", ErrInvalidConfig)
	}
	g := NewGrid(n)
	for r, row := range rows {
		if len(row) != n {
			return Grid{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidConfig, r, len(row), n)
		}
		for c, v := range row {
			if v != 0 && (v < 2 || !isPowerOfTwo(v)) {
				return Grid{}, fmt.Errorf("%w: cell (%d,%d) holds %d", ErrInvalidConfig, r, c, v)
			}
			g.set(r, c, v)
		}
	}
	return g, nil
}

// Size returns the grid dimension.
func (g Grid) Size() int {
	return g.size
}

// At returns the value at (row, col).
func (g Grid) At(row, col int) int {
	return g.cells[row*g.size+col]
}

func (g Grid) set(row, col, v int) {
	g.cells[row*g.size+col] = v
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	cells := make([]int, len(g.cells))
	copy(cells, g.cells)
	return Grid{size: g.size, cells: cells}
}

// Equal reports whether both grids hold the same values cell for cell.
func (g Grid) Equal(other Grid) bool {
	if g.size != other.size {
		return false
	}
	for i, v := range g.cells {
		if other.cells[i] != v {
			return false
		}
	}
	return true
}

// Rows returns a copy of the grid as nested slices.
func (g Grid) Rows() [][]int {
	rows := make([][]int, g.size)
	for r := range g.size {
		rows[r] = make([]int, g.size)
		copy(rows[r], g.cells[r*g.size:(r+1)*g.size])
	}
	return rows
}

// String renders the grid as space-separated rows, mostly for test failures.
func (g Grid) String() string {
	var sb strings.Builder
	for r := range g.size {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range g.size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(g.At(r, c)))
		}
	}
	return sb.String()
}
