package t2048

import (
	"errors"
	"math/rand"
	"testing"
)

// mustGrid builds a grid from rows or fails the test.
func mustGrid(t *testing.T, rows [][]int) Grid {
	t.Helper()
	g, err := GridFromRows(rows)
	if err != nil {
		t.Fatalf("GridFromRows(%v): %v", rows, err)
	}
	return g
}

// seqRand replays fixed Intn and Float64 results, repeating the last one.
type seqRand struct {
	ints   []int
	floats []float64
	ni, nf int
}

func (r *seqRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[min(r.ni, len(r.ints)-1)]
	r.ni++
	return v % n
}

func (r *seqRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[min(r.nf, len(r.floats)-1)]
	r.nf++
	return v
}

func TestSlideDirections(t *testing.T) {
	start := [][]int{
		{2, 0, 2, 0},
		{0, 4, 0, 4},
		{2, 2, 4, 4},
		{0, 0, 0, 2},
	}

	tests := []struct {
		dir      Direction
		expected [][]int
		merges   int
	}{
		{
			dir: DirLeft,
			expected: [][]int{
				{4, 0, 0, 0},
				{8, 0, 0, 0},
				{4, 8, 0, 0},
				{2, 0, 0, 0},
			},
			merges: 4,
		},
		{
			dir: DirRight,
			expected: [][]int{
				{0, 0, 0, 4},
				{0, 0, 0, 8},
				{0, 0, 4, 8},
				{0, 0, 0, 2},
			},
			merges: 4,
		},
		{
			dir: DirUp,
			expected: [][]int{
				{4, 4, 2, 8},
				{0, 2, 4, 2},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			merges: 2,
		},
		{
			dir: DirDown,
			expected: [][]int{
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 4, 2, 8},
				{4, 2, 4, 2},
			},
			merges: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			g := mustGrid(t, start)
			next, merges, changed := Slide(g, tt.dir)

			want := mustGrid(t, tt.expected)
			if !next.Equal(want) {
				t.Errorf("Slide %s:\n%s\nwant:\n%s", tt.dir, next, want)
			}
			if !changed {
				t.Error("expected changed = true")
			}
			if len(merges) != tt.merges {
				t.Errorf("got %d merges, want %d", len(merges), tt.merges)
			}
			for _, m := range merges {
				if next.At(m.Row, m.Col) != m.Value {
					t.Errorf("merge %+v does not match grid value %d", m, next.At(m.Row, m.Col))
				}
			}
			if !g.Equal(mustGrid(t, start)) {
				t.Error("Slide modified its input grid")
			}
		})
	}
}

func TestSlideNoChange(t *testing.T) {
	g := mustGrid(t, [][]int{
		{2, 4, 8, 16},
		{4, 8, 16, 32},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	next, merges, changed := Slide(g, DirLeft)
	if changed {
		t.Error("expected no change sliding left")
	}
	if len(merges) != 0 {
		t.Errorf("expected no merges, got %v", merges)
	}
	if !next.Equal(g) {
		t.Error("unchanged slide should return an equal grid")
	}
}

func TestSlideInvalidDirection(t *testing.T) {
	g := mustGrid(t, [][]int{{2, 2}, {0, 0}})
	next, _, changed := Slide(g, Direction(42))
	if changed || !next.Equal(g) {
		t.Error("invalid direction should leave the grid unchanged")
	}
}

func TestSlideLeftThenRightSingleTile(t *testing.T) {
	g := NewGrid(4)
	g.set(0, 0, 2)

	right, _, _ := Slide(g, DirRight)
	if right.At(0, 3) != 2 {
		t.Fatalf("expected tile at (0,3) after right, got:\n%s", right)
	}

	back, _, _ := Slide(right, DirLeft)
	if !back.Equal(g) {
		t.Errorf("left after right should restore the tile:\n%s", back)
	}
}

func TestSlidePreservesSum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	values := []int{0, 0, 2, 4, 8, 16}

	for range 200 {
		g := NewGrid(4)
		for i := range g.cells {
			g.cells[i] = values[rng.Intn(len(values))]
		}

		for _, dir := range Directions {
			next, _, _ := Slide(g, dir)
			if Sum(next) != Sum(g) {
				t.Fatalf("Slide %s changed sum %d -> %d on:\n%s", dir, Sum(g), Sum(next), g)
			}
		}

		merged, _ := MagicMerge(g)
		if Sum(merged) != Sum(g) {
			t.Fatalf("MagicMerge changed sum %d -> %d on:\n%s", Sum(g), Sum(merged), g)
		}
	}
}

func TestApplyMoveReachesWin(t *testing.T) {
	g := mustGrid(t, [][]int{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	next, changed, reached := ApplyMove(g, DirLeft, 2048)
	if !changed || !reached {
		t.Errorf("ApplyMove changed=%v reached=%v, want true true", changed, reached)
	}
	if next.At(0, 0) != 2048 {
		t.Errorf("expected 2048 at (0,0), got %d", next.At(0, 0))
	}

	// A 2048 already on the board does not count again.
	_, _, reached = ApplyMove(next, DirRight, 2048)
	if reached {
		t.Error("sliding an existing 2048 should not report a win")
	}
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]int
		terminal bool
	}{
		{
			name:     "full no merges",
			rows:     [][]int{{2, 4}, {4, 2}},
			terminal: true,
		},
		{
			name:     "horizontal merge",
			rows:     [][]int{{2, 2}, {4, 8}},
			terminal: false,
		},
		{
			name:     "vertical merge",
			rows:     [][]int{{2, 4}, {2, 8}},
			terminal: false,
		},
		{
			name:     "empty cell",
			rows:     [][]int{{2, 4}, {8, 0}},
			terminal: false,
		},
		{
			name: "full 4x4 checkerboard",
			rows: [][]int{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 2, 4},
				{4, 2, 4, 2},
			},
			terminal: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrid(t, tt.rows)
			if got := IsTerminal(g); got != tt.terminal {
				t.Errorf("IsTerminal = %v, want %v", got, tt.terminal)
			}
			if got := CanMove(g); got == tt.terminal {
				t.Errorf("CanMove = %v, want %v", got, !tt.terminal)
			}
		})
	}
}

func TestHasPossibleMergeIgnoresEmpty(t *testing.T) {
	g := mustGrid(t, [][]int{{0, 0}, {0, 2}})
	if HasPossibleMerge(g) {
		t.Error("adjacent empty cells are not a merge")
	}
}

func TestSpawnRandomTile(t *testing.T) {
	g := mustGrid(t, [][]int{
		{2, 0},
		{0, 4},
	})

	rng := &seqRand{ints: []int{1}, floats: []float64{0.05}}
	next, tile, ok := SpawnRandomTile(g, rng, 0.10)
	if !ok {
		t.Fatal("expected a spawn on a grid with empty cells")
	}

	want := Tile{Cell: Cell{Row: 1, Col: 0}, Value: 4}
	if tile != want {
		t.Errorf("spawned %+v, want %+v", tile, want)
	}
	if next.At(1, 0) != 4 {
		t.Errorf("grid not updated:\n%s", next)
	}
	if g.At(1, 0) != 0 {
		t.Error("SpawnRandomTile modified its input grid")
	}

	rng = &seqRand{floats: []float64{0.5}}
	_, tile, _ = SpawnRandomTile(g, rng, 0.10)
	if tile.Value != 2 {
		t.Errorf("expected a 2 above the four probability, got %d", tile.Value)
	}
}

func TestSpawnRandomTileFullGrid(t *testing.T) {
	g := mustGrid(t, [][]int{{2, 4}, {4, 2}})
	next, _, ok := SpawnRandomTile(g, &seqRand{}, 0.1)
	if ok {
		t.Error("expected no spawn on a full grid")
	}
	if !next.Equal(g) {
		t.Error("full grid should be returned unchanged")
	}
}

func TestEmptyCellsOrder(t *testing.T) {
	g := mustGrid(t, [][]int{
		{0, 2},
		{0, 0},
	})
	got := EmptyCells(g)
	want := []Cell{{0, 0}, {1, 0}, {1, 1}}
	if len(got) != len(want) {
		t.Fatalf("EmptyCells = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("EmptyCells[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMaxTile(t *testing.T) {
	g := mustGrid(t, [][]int{{2, 64}, {16, 0}})
	if MaxTile(g) != 64 {
		t.Errorf("MaxTile = %d, want 64", MaxTile(g))
	}
	if Sum(g) != 82 {
		t.Errorf("Sum = %d, want 82", Sum(g))
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"up", DirUp},
		{"Down", DirDown},
		{" left ", DirLeft},
		{"r", DirRight},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if err != nil {
			t.Errorf("ParseDirection(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseDirection("diagonal"); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("expected ErrInvalidDirection, got %v", err)
	}
}

func TestGridFromRowsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int
	}{
		{"no rows", nil},
		{"ragged", [][]int{{2, 2}, {2}}},
		{"not power of two", [][]int{{3, 0}, {0, 0}}},
		{"one is not a tile", [][]int{{1, 0}, {0, 0}}},
		{"negative", [][]int{{-2, 0}, {0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := GridFromRows(tt.rows); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
