package t2048

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every valid direction.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection maps a name ("up", "Left", ...) to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Merge records a merge on the grid: where the merged tile ended and its value.
type Merge struct {
	Cell
	Value int
}

// lineCells lists the cells of line i, ordered so that index 0 is the edge
// tiles slide toward. Reading and writing through the same list applies the
// orientation transform and its inverse.
func lineCells(n, i int, dir Direction) []Cell {
	cells := make([]Cell, n)
	for k := range n {
		switch dir {
		case DirLeft:
			cells[k] = Cell{Row: i, Col: k}
		case DirRight:
			cells[k] = Cell{Row: i, Col: n - 1 - k}
		case DirUp:
			cells[k] = Cell{Row: k, Col: i}
		case DirDown:
			cells[k] = Cell{Row: n - 1 - k, Col: i}
		}
	}
	return cells
}

// Slide performs a move in the given direction.
// Returns the new grid, the merges it produced, and whether any cell changed.
// The input grid is never modified.
func Slide(g Grid, dir Direction) (Grid, []Merge, bool) {
	next := g.Clone()
	if !dir.Valid() {
		return next, nil, false
	}

	var merges []Merge
	line := make([]int, g.size)
	for i := range g.size {
		cells := lineCells(g.size, i, dir)
		for k, c := range cells {
			line[k] = g.At(c.Row, c.Col)
		}

		reduced, lineMerges := ReduceLine(line)
		for k, c := range cells {
			next.set(c.Row, c.Col, reduced[k])
		}
		for _, m := range lineMerges {
			merges = append(merges, Merge{Cell: cells[m.Index], Value: m.Value})
		}
	}

	return next, merges, !next.Equal(g)
}

// ApplyMove slides the grid and reports whether it changed and whether any
// merge produced exactly winValue.
func ApplyMove(g Grid, dir Direction, winValue int) (next Grid, changed, reachedWin bool) {
	next, merges, changed := Slide(g, dir)
	return next, changed, reachesValue(merges, winValue)
}

func reachesValue(merges []Merge, value int) bool {
	for _, m := range merges {
		if m.Value == value {
			return true
		}
	}
	return false
}

// RandSource is the randomness a spawn needs. *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
	Float64() float64
}

// SpawnRandomTile places a 2 (or a 4 with probability spawn4Prob) on a
// uniformly chosen empty cell. A full grid is returned unchanged with ok=false.
func SpawnRandomTile(g Grid, rng RandSource, spawn4Prob float64) (next Grid, tile Tile, ok bool) {
	empty := EmptyCells(g)
	if len(empty) == 0 {
		return g, Tile{}, false
	}

	cell := empty[rng.Intn(len(empty))]
	value := 2
	if rng.Float64() < spawn4Prob {
		value = 4
	}

	next = g.Clone()
	next.set(cell.Row, cell.Col, value)
	return next, Tile{Cell: cell, Value: value}, true
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func EmptyCells(g Grid) []Cell {
	var cells []Cell
	for r := range g.size {
		for c := range g.size {
			if g.At(r, c) == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func HasEmptyCell(g Grid) bool {
	for _, v := range g.cells {
		if v == 0 {
			return true
		}
	}
	return false
}

// HasPossibleMerge returns true if any two adjacent non-empty tiles are equal.
func HasPossibleMerge(g Grid) bool {
	n := g.size
	for r := range n {
		for c := range n {
			val := g.At(r, c)
			if val == 0 {
				continue
			}
			if c < n-1 && g.At(r, c+1) == val {
				return true
			}
			if r < n-1 && g.At(r+1, c) == val {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any move is possible.
func CanMove(g Grid) bool {
	return HasEmptyCell(g) || HasPossibleMerge(g)
}

// IsTerminal returns true if the grid is full and no neighbours can merge.
func IsTerminal(g Grid) bool {
	return !CanMove(g)
}

// MaxTile returns the maximum tile value on the grid.
func MaxTile(g Grid) int {
	maxVal := 0
	for _, v := range g.cells {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// Sum returns the total of all tile values.
func Sum(g Grid) int {
	total := 0
	for _, v := range g.cells {
		total += v
	}
	return total
}
