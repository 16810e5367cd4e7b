package t2048

// Status represents where a session stands.
type Status string

const (
	StatusPlaying        Status = "playing"
	StatusWon            Status = "won"
	StatusWonKeepPlaying Status = "won_keep_playing"
	StatusOver           Status = "game_over"
)

// Snapshot captures the session fields undo restores. The undo budget is
// not part of it.
type Snapshot struct {
	Grid        Grid
	Score       int
	Won         bool
	KeepPlaying bool
	MergeBudget int
}

// State is a read-only copy of a session.
type State struct {
	Grid        Grid
	Score       int
	Best        int
	Won         bool
	KeepPlaying bool
	UndoBudget  int
	MergeBudget int
	HistoryLen  int
	Status      Status
}

// snapshot copies the restorable fields. Caller holds s.mu.
func (s *Session) snapshot() Snapshot {
	return Snapshot{
		Grid:        s.grid.Clone(),
		Score:       s.score,
		Won:         s.won,
		KeepPlaying: s.keepPlaying,
		MergeBudget: s.mergeBudget,
	}
}

// restore applies a snapshot. KeepPlaying only ever moves from false to true.
// Caller holds s.mu.
func (s *Session) restore(snap Snapshot) {
	s.grid = snap.Grid
	s.score = snap.Score
	s.won = snap.Won
	s.keepPlaying = s.keepPlaying || snap.KeepPlaying
	s.mergeBudget = snap.MergeBudget
}

// status derives the current Status. Caller holds s.mu.
func (s *Session) status() Status {
	switch {
	case s.won && !s.keepPlaying:
		return StatusWon
	case IsTerminal(s.grid):
		return StatusOver
	case s.won:
		return StatusWonKeepPlaying
	default:
		return StatusPlaying
	}
}
