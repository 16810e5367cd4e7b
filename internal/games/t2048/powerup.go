package t2048

// MagicMerge merges equal neighbours in place, without sliding.
//
// Rows are scanned first (row-major, left to right), then columns
// (column-major, top to bottom) on the result of the row pass. A found pair
// doubles the first cell, empties the second, and the scan resumes after the
// pair, so [2,2,2,0] becomes [4,0,2,0]. The input grid is not modified.
func MagicMerge(g Grid) (Grid, []Merge) {
	next := g.Clone()
	n := g.size
	var merges []Merge

	for r := range n {
		for c := 0; c < n-1; {
			v := next.At(r, c)
			if v != 0 && v == next.At(r, c+1) {
				next.set(r, c, v*2)
				next.set(r, c+1, 0)
				merges = append(merges, Merge{Cell: Cell{Row: r, Col: c}, Value: v * 2})
				c += 2
				continue
			}
			c++
		}
	}

	for c := range n {
		for r := 0; r < n-1; {
			v := next.At(r, c)
			if v != 0 && v == next.At(r+1, c) {
				next.set(r, c, v*2)
				next.set(r+1, c, 0)
				merges = append(merges, Merge{Cell: Cell{Row: r, Col: c}, Value: v * 2})
				r += 2
				continue
			}
			r++
		}
	}

	return next, merges
}
