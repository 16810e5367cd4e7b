package t2048

// History is a bounded stack of snapshots used for undo.
//
// Once full, pushing drops the oldest entry. Undo budgets never exceed the
// depth, so dropped entries are ones no remaining undo could reach.
type History struct {
	depth   int
	entries []Snapshot
}

// NewHistory creates a history holding at most depth snapshots.
func NewHistory(depth int) *History {
	if depth < 0 {
		depth = 0
	}
	return &History{
		depth:   depth,
		entries: make([]Snapshot, 0, depth),
	}
}

// Push records a snapshot. A zero-depth history ignores it.
func (h *History) Push(s Snapshot) {
	if h.depth == 0 {
		return
	}
	if len(h.entries) == h.depth {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, s)
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (Snapshot, bool) {
	if len(h.entries) == 0 {
		return Snapshot{}, false
	}
	last := h.entries[len(h.entries)-1]
	h.entries[len(h.entries)-1] = Snapshot{}
	h.entries = h.entries[:len(h.entries)-1]
	return last, true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.entries)
}

// Depth returns the configured bound.
func (h *History) Depth() int {
	return h.depth
}

// Clear drops every snapshot.
func (h *History) Clear() {
	clear(h.entries)
	h.entries = h.entries[:0]
}
