package t2048

type noticeKind int

const (
	noticeNone noticeKind = iota
	noticeWin
	noticeGameOver
)

// notice shows an overlay a fixed number of ticks after the move that
// caused it. Only one notice is pending or shown at a time.
type notice struct {
	pending noticeKind
	due     uint64
	shown   noticeKind
}

// schedule replaces any pending or shown notice.
func (n *notice) schedule(kind noticeKind, now, delay uint64) {
	n.pending = kind
	n.due = now + delay
	n.shown = noticeNone
}

// advance promotes a due notice to shown. Returns true when it did.
func (n *notice) advance(now uint64) bool {
	if n.pending == noticeNone || now < n.due {
		return false
	}
	n.shown = n.pending
	n.pending = noticeNone
	return true
}

func (n *notice) clear() {
	*n = notice{}
}

func (n *notice) visible(kind noticeKind) bool {
	return n.shown == kind
}

// eventRecorder is the Session's render sink for the tick-driven front end.
// It keeps the events of the latest committed operation for highlighting.
type eventRecorder struct {
	events Events
}

// Render implements Renderer.
func (r *eventRecorder) Render(_ Grid, ev Events) {
	r.events = ev
}

func (r *eventRecorder) reset() {
	r.events = Events{}
}

// merged reports whether the last operation merged into (row, col).
func (r *eventRecorder) merged(row, col int) bool {
	for _, m := range r.events.Merges {
		if m.Row == row && m.Col == col {
			return true
		}
	}
	return false
}

// spawned reports whether the last operation spawned at (row, col).
func (r *eventRecorder) spawned(row, col int) bool {
	return r.events.Spawned && r.events.Spawn.Row == row && r.events.Spawn.Col == col
}
