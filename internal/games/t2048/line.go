package t2048

// LineMerge records a merge inside a reduced line: the final index of the
// merged tile and the value it reached.
type LineMerge struct {
	Index int
	Value int
}

// ReduceLine slides a line toward index 0 and merges equal neighbours once.
//
// The order is fixed: compact, one left-to-right merge pass, compact again.
// A freshly doubled cell is never merged again in the same pass, so
// [2,2,2,0] becomes [4,2,0,0] and [2,2,2,2] becomes [4,4,0,0].
// The input slice is not modified.
func ReduceLine(line []int) ([]int, []LineMerge) {
	out := compact(line)
	merged := make([]bool, len(out))

	for i := 0; i < len(out)-1; i++ {
		if out[i] != 0 && out[i] == out[i+1] {
			out[i] *= 2
			out[i+1] = 0
			merged[i] = true
		}
	}

	// Second compaction, carrying merge marks to their final index.
	var merges []LineMerge
	w := 0
	for i, v := range out {
		if v == 0 {
			continue
		}
		out[w] = v
		if w != i {
			out[i] = 0
		}
		if merged[i] {
			merges = append(merges, LineMerge{Index: w, Value: v})
		}
		w++
	}

	return out, merges
}

// compact returns a copy of line with zeros removed and right-padded.
func compact(line []int) []int {
	out := make([]int, len(line))
	w := 0
	for _, v := range line {
		if v != 0 {
			out[w] = v
			w++
		}
	}
	return out
}
