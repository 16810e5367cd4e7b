package t2048

import (
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Game adapts a Session to the tick-driven registry.Game contract.
// It owns the deferred overlays and the short-lived tile highlights; all
// rule decisions stay in the Session.
type Game struct {
	variant Variant
	cfg     config.T2048Config
	runtime core.RuntimeConfig
	tick    uint64

	session  *Session
	recorder *eventRecorder
	sink     ScoreSink

	// Screen dimensions
	screenW int
	screenH int

	tooSmall       bool
	notice         notice
	highlightUntil uint64
}

// Package-level variables for config
var (
	configPath   string
	sizeOverride int
)

// SetConfigPath sets a custom rules file for games created afterwards.
func SetConfigPath(path string) {
	configPath = path
}

// SetSize overrides the board size of every preset. 0 keeps the preset's size.
func SetSize(size int) {
	sizeOverride = size
}

// GetSize returns the current size override.
func GetSize() int {
	return sizeOverride
}

// highlightTicks is how long spawned and merged tiles stay highlighted.
const highlightTicks = 9

// New creates a classic 2048 game.
func New() *Game {
	return NewVariant(Variants[0])
}

// NewVariant creates a game for the given preset variant.
func NewVariant(v Variant) *Game {
	return &Game{
		variant:  v,
		recorder: &eventRecorder{},
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Description summarizes the variant's rules for menus.
func (g *Game) Description() string {
	return g.variant.Preset.Description()
}

// SetScoreSink attaches best-score persistence. It takes effect on the next Reset.
func (g *Game) SetScoreSink(sink registry.ScoreSink) {
	g.sink = sink
}

// LoadRules resolves the rules for a preset from the configured rules file
// and the size override. On error the defaults are returned with it.
func LoadRules(preset config.Preset) (Rules, config.T2048Config, error) {
	cfg, err := config.LoadT2048(configPath)
	if err != nil {
		return DefaultRules(), config.DefaultT2048Config(), err
	}
	config.ApplyT2048Preset(&cfg, preset)
	if sizeOverride > 0 {
		cfg.Board.Size = sizeOverride
	}

	rules := RulesFromConfig(cfg)
	if err := rules.Validate(); err != nil {
		return DefaultRules(), config.DefaultT2048Config(), err
	}
	return rules, cfg, nil
}

// RulesFromConfig converts a loaded configuration into session rules.
func RulesFromConfig(cfg config.T2048Config) Rules {
	return Rules{
		Size:         cfg.Board.Size,
		WinValue:     cfg.Rules.WinValue,
		Spawn4Prob:   cfg.Rules.Spawn4Prob,
		UndoBudget:   cfg.Budgets.Undo,
		MergeBudget:  cfg.Budgets.Merge,
		HistoryDepth: cfg.Budgets.HistoryDepth,
	}
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.notice.clear()
	g.highlightUntil = 0

	// Invalid files fall back to defaults; the CLI reports them before play.
	rules, loaded, _ := LoadRules(g.variant.Preset)
	g.cfg = loaded

	opts := []Option{
		WithSeed(cfg.Seed),
		WithRenderer(g.recorder),
	}
	if g.sink != nil {
		opts = append(opts, WithScoreSink(g.sink))
	}

	session, err := NewSession(rules, opts...)
	if err != nil {
		session, _ = NewSession(DefaultRules(), opts...)
	}
	g.session = session
	g.recorder.reset()

	g.checkScreenSize()
}

// Session exposes the underlying rules engine.
func (g *Game) Session() *Session {
	return g.session
}

// Resize updates the screen dimensions without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	boardW, boardH := boardDims(g.session.Rules().Size)
	minW := boardW + 2
	minH := boardH + hudHeight + 3 // HUD, spacer and controls line
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick. At most one action is applied per
// tick, in the order restart, keep playing, undo, power-up, move; callers
// that collect several inputs should queue them and feed one per frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// Handle window size check
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	changed := g.notice.advance(g.tick)

	switch {
	case in.Has(core.ActionRestart):
		g.session.NewGame()
		g.notice.clear()
		g.highlightUntil = 0
		changed = true

	case in.Has(core.ActionKeepPlaying):
		if g.session.SetKeepPlaying() {
			g.notice.clear()
			// A winning move can also fill the board.
			if g.session.Status() == StatusOver {
				g.schedule(noticeGameOver)
			}
			changed = true
		}

	case in.Has(core.ActionUndo):
		if g.session.Undo() {
			g.notice.clear()
			g.highlightUntil = 0
			changed = true
		}

	case in.Has(core.ActionPowerUp):
		ev := g.session.ActivatePowerUp()
		changed = g.apply(ev) || changed

	default:
		if dir, ok := actionDirection(in); ok {
			ev, err := g.session.Move(dir)
			if err == nil {
				changed = g.apply(ev) || changed
			}
		}
	}

	return core.StepResult{State: g.State(), Changed: changed}
}

// apply schedules overlays and highlights for a committed operation.
func (g *Game) apply(ev Events) bool {
	if !ev.Changed {
		return false
	}
	g.highlightUntil = g.tick + highlightTicks

	switch {
	case ev.Won:
		g.schedule(noticeWin)
	case ev.GameOver:
		g.schedule(noticeGameOver)
	}
	return true
}

func (g *Game) schedule(kind noticeKind) {
	delay := g.cfg.Notices.GameOverDelay()
	if kind == noticeWin {
		delay = g.cfg.Notices.WinDelay()
	}
	g.notice.schedule(kind, g.tick, g.runtime.Ticks(delay))
	g.notice.advance(g.tick)
}

// actionDirection picks the first move action in the frame.
func actionDirection(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := g.session.State()
	return core.GameState{
		Score:    st.Score,
		Best:     st.Best,
		MaxTile:  MaxTile(st.Grid),
		GameOver: g.notice.visible(noticeGameOver),
		Won:      g.notice.visible(noticeWin),
		Reached:  st.Won,
		Paused:   g.tooSmall,
	}
}
