package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// GameOptions tunes a GameModel.
type GameOptions struct {
	Logger         *log.Logger
	SwipeThreshold int  // Cells a mouse drag must cover to count as a move
	ExitOnBack     bool // Back ends the program instead of flagging BackToMenu
}

// GameModel is the Bubble Tea model that runs one game variant.
// It is used directly for local play and embedded in SessionModel over SSH.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	swipe      swipeTracker
	pending    []core.Action // queued input, one action per tick
	gameState  core.GameState
	runID      string // Identifies the current run in the score history
	exitOnBack bool
	showHelp   bool
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the current run has been recorded
}

// NewGameModel creates a game model. When store is non-nil the game's best
// score is persisted through it and finished runs are recorded.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	if keeper, ok := game.(registry.ScoreKeeper); ok && store != nil {
		keeper.SetScoreSink(storage.NewBestScoreSink(store, game.ID(), logger))
	}

	h := help.New()
	h.ShowAll = true

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger.With("game", game.ID()),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       h,
		swipe:      newSwipeTracker(opts.SwipeThreshold),
		runID:      uuid.NewString(),
		exitOnBack: opts.ExitOnBack,
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)
	m.logger.Debug("Game started", "run", m.runID)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.enqueue(m.swipe.handle(msg))
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()

	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		m.backToMenu = true
		if m.exitOnBack {
			return m, tea.Quit
		}
		return m, nil

	default:
		m.enqueue(action)
	}

	return m, nil
}

// maxPending bounds the input queue so held keys cannot build a backlog.
const maxPending = 4

// enqueue adds an action for a later tick. Actions beyond maxPending are
// dropped.
func (m *GameModel) enqueue(a core.Action) {
	if a == core.ActionNone {
		return
	}
	if len(m.pending) >= maxPending {
		m.logger.Debug("input dropped", "action", a)
		return
	}
	m.pending = append(m.pending, a)
}

// nextFrame pops the oldest queued action into a frame.
func (m *GameModel) nextFrame() core.InputFrame {
	var frame core.InputFrame
	if len(m.pending) > 0 {
		frame.Set(m.pending[0])
		m.pending = m.pending[1:]
	}
	return frame
}

// handleResize processes window resize events. Games that can resize keep
// their board; others are reset.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.newRun()
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	frame := m.nextFrame()
	restart := frame.Has(core.ActionRestart)

	result := m.game.Step(frame)
	m.gameState = result.State

	if restart && !m.gameState.Paused {
		m.newRun()
	}

	// Record the run on its first game over
	if m.gameState.GameOver && !m.scoreSaved {
		m.recordResult()
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// newRun starts a fresh entry in the score history.
func (m *GameModel) newRun() {
	m.runID = uuid.NewString()
	m.scoreSaved = false
	m.logger.Debug("Game started", "run", m.runID)
}

// recordResult saves the current run. Storage errors are logged; play goes on.
func (m *GameModel) recordResult() {
	if m.store == nil || m.gameState.Score == 0 {
		return
	}

	_, err := m.store.SaveResult(storage.GameResult{
		RunID:   m.runID,
		GameID:  m.game.ID(),
		Score:   m.gameState.Score,
		MaxTile: m.gameState.MaxTile,
		Won:     m.gameState.Reached,
	})
	if err != nil {
		m.logger.Warn("Could not record game", "run", m.runID, "error", err)
		return
	}
	m.logger.Info("Game recorded",
		"run", m.runID,
		"score", m.gameState.Score,
		"max_tile", m.gameState.MaxTile,
	)
}

// saveScreenshot saves the current screen to ~/.t2048/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("Could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".t2048", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("Could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("Could not save screenshot", "error", err)
		return
	}
	m.logger.Debug("Screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	if m.showHelp {
		return lipgloss.Place(m.config.ScreenW, m.config.ScreenH,
			lipgloss.Center, lipgloss.Center,
			m.help.View(m.keyMapper.Keys()))
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state observed on the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one game locally and reports whether the player asked to return
// to the menu. Back always ends the program here.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts GameOptions) (backToMenu bool, err error) {
	opts.ExitOnBack = true
	model := NewGameModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse drags become swipes
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
