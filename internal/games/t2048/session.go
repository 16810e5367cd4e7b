package t2048

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// ScoreSink persists the best score across sessions.
type ScoreSink interface {
	Load() int
	Save(score int)
}

// Renderer receives the committed grid and the events of every operation
// that changed the session. Implementations must tolerate repeated calls
// with an unchanged grid and must not call back into the Session.
type Renderer interface {
	Render(g Grid, ev Events)
}

// Events describes what an operation did, for the view layer.
type Events struct {
	Changed  bool    // Session state changed
	Spawned  bool    // A tile was spawned
	Spawn    Tile    // The spawned tile, valid when Spawned
	Merges   []Merge // Merged cells and their new values
	Won      bool    // Winning value reached for the first time
	GameOver bool    // Committed grid has no moves left
	PowerUp  bool    // A power-up activation merged at least one pair
	Undone   bool    // A snapshot was restored
}

// Option customizes a Session.
type Option func(*Session)

// WithRand sets the random source used for spawns.
func WithRand(rng RandSource) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// WithSeed seeds a math/rand source for spawns.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithScoreSink sets the best-score persistence sink.
func WithScoreSink(sink ScoreSink) Option {
	return func(s *Session) {
		s.sink = sink
	}
}

// WithRenderer sets the render sink.
func WithRenderer(r Renderer) Option {
	return func(s *Session) {
		s.renderer = r
	}
}

// Session is the 2048 state machine. All methods are safe for concurrent use;
// each runs to completion before another may begin.
type Session struct {
	mu sync.Mutex

	rules    Rules
	rng      RandSource
	sink     ScoreSink
	renderer Renderer

	grid        Grid
	score       int
	best        int
	won         bool
	keepPlaying bool
	undoBudget  int
	mergeBudget int
	history     *History
}

// NewSession validates the rules and starts a new game.
func NewSession(rules Rules, opts ...Option) (*Session, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	s := &Session{rules: rules}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.sink != nil {
		s.best = s.sink.Load()
	}

	s.reset()
	return s, nil
}

// Rules returns the rules the session was created with.
func (s *Session) Rules() Rules {
	return s.rules
}

// reset puts the session in its initial state. Caller holds s.mu or owns s.
func (s *Session) reset() {
	s.grid = NewGrid(s.rules.Size)
	s.score = 0
	s.won = false
	s.keepPlaying = false
	s.undoBudget = s.rules.UndoBudget
	s.mergeBudget = s.rules.MergeBudget
	s.history = NewHistory(s.rules.historyDepth())

	// Spawn initial tiles (2 tiles)
	s.spawn()
	s.spawn()
}

// spawn places one random tile. Caller holds s.mu.
func (s *Session) spawn() (Tile, bool) {
	next, tile, ok := SpawnRandomTile(s.grid, s.rng, s.rules.Spawn4Prob)
	if ok {
		s.grid = next
	}
	return tile, ok
}

// NewGame discards the current game and history and starts over.
func (s *Session) NewGame() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	s.render(Events{Changed: true})
}

// Move slides the grid. Unknown directions return ErrInvalidDirection;
// blocked moves and moves while a win is pending are no-ops.
func (s *Session) Move(dir Direction) (Events, error) {
	if !dir.Valid() {
		return Events{}, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status() == StatusWon {
		return Events{}, nil
	}

	next, merges, changed := Slide(s.grid, dir)
	if !changed {
		// Board didn't change - no snapshot, no spawn
		return Events{}, nil
	}

	if s.undoBudget > 0 {
		s.history.Push(s.snapshot())
	}
	s.grid = next

	ev := Events{Changed: true, Merges: merges}
	ev.Spawn, ev.Spawned = s.spawn()
	s.recomputeScore()
	ev.Won = s.checkWin(merges)
	ev.GameOver = IsTerminal(s.grid)

	s.render(ev)
	return ev, nil
}

// Undo restores the most recent snapshot. It reports false when the undo
// budget is spent or there is nothing to restore.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.undoBudget == 0 {
		return false
	}
	snap, ok := s.history.Pop()
	if !ok {
		return false
	}

	s.restore(snap)
	s.undoBudget--
	s.render(Events{Changed: true, Undone: true})
	return true
}

// ActivatePowerUp merges equal neighbours in place. The budget is only spent
// when at least one pair merged; no tile is spawned.
func (s *Session) ActivatePowerUp() Events {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mergeBudget == 0 || s.status() == StatusWon {
		return Events{}
	}

	next, merges := MagicMerge(s.grid)
	if len(merges) == 0 {
		return Events{}
	}

	// One snapshot per activation, however many pairs merged.
	if s.undoBudget > 0 {
		s.history.Push(s.snapshot())
	}
	s.grid = next
	s.mergeBudget--
	s.recomputeScore()

	ev := Events{Changed: true, PowerUp: true, Merges: merges}
	ev.Won = s.checkWin(merges)
	s.render(ev)
	return ev
}

// SetKeepPlaying dismisses a pending win and lets play continue. It only
// applies while the session is in StatusWon.
func (s *Session) SetKeepPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status() != StatusWon {
		return false
	}
	s.keepPlaying = true
	s.render(Events{Changed: true})
	return true
}

// State returns a copy of the session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		Grid:        s.grid.Clone(),
		Score:       s.score,
		Best:        s.best,
		Won:         s.won,
		KeepPlaying: s.keepPlaying,
		UndoBudget:  s.undoBudget,
		MergeBudget: s.mergeBudget,
		HistoryLen:  s.history.Len(),
		Status:      s.status(),
	}
}

// Status returns the current session status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status()
}

// checkWin flips won the first time a merge reaches the winning value.
// Caller holds s.mu.
func (s *Session) checkWin(merges []Merge) bool {
	if s.won || s.keepPlaying || !reachesValue(merges, s.rules.WinValue) {
		return false
	}
	s.won = true
	return true
}

// recomputeScore derives the score from the grid and updates the best score.
// Caller holds s.mu.
func (s *Session) recomputeScore() {
	s.score = Sum(s.grid)
	if s.score > s.best {
		s.best = s.score
		if s.sink != nil {
			s.sink.Save(s.best)
		}
	}
}

// render hands the committed grid to the render sink. Caller holds s.mu.
func (s *Session) render(ev Events) {
	if s.renderer != nil {
		s.renderer.Render(s.grid.Clone(), ev)
	}
}
