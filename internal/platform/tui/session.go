package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Logger         *log.Logger
	SwipeThreshold int
}

// SessionModel is the root model of one SSH connection. It owns exactly one
// screen at a time: the menu, a game, or the scoreboard.
//
// The menu and scoreboard end their own program when they finish; inside a
// session those tea.Quit commands are swallowed and turned into screen changes.
type SessionModel struct {
	store     *storage.Store
	config    core.RuntimeConfig
	sessionID string
	logger    *log.Logger
	swipe     int

	menu       MenuModel
	scoreboard *ScoreboardModel
	gameModel  *GameModel
	quitting   bool
}

// NewSessionModel starts a session on the menu.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, opts SessionOptions) SessionModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	id := uuid.NewString()
	return SessionModel{
		store:     store,
		config:    cfg,
		sessionID: id,
		logger:    logger.With("session", id, "user", username),
		swipe:     opts.SwipeThreshold,
		menu:      NewMenuModel(store, cfg),
	}
}

func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = ws.Width, ws.Height
	}

	switch {
	case m.gameModel != nil:
		return m.updateGame(msg)
	case m.scoreboard != nil:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// toMenu rebuilds the menu so best scores reflect the last game.
func (m SessionModel) toMenu() (SessionModel, tea.Cmd) {
	m.gameModel, m.scoreboard = nil, nil
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

func (m SessionModel) quit() (SessionModel, tea.Cmd) {
	m.quitting = true
	m.logger.Debug("session closed")
	return m, tea.Quit
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		return m.quit()

	case m.menu.WantsScoreboard():
		sb := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &sb
		return m, sb.Init()

	case m.menu.Selected() != nil:
		id := m.menu.Selected().GameID
		game, err := registry.Create(id)
		if err != nil {
			m.logger.Error("cannot start game", "game", id, "error", err)
			return m.toMenu()
		}
		cfg := m.menu.Config()
		cfg.Seed = time.Now().UnixNano()
		gm := NewGameModel(game, m.store, cfg, GameOptions{Logger: m.logger, SwipeThreshold: m.swipe})
		m.gameModel = &gm
		m.logger.Debug("game started", "game", id)
		return m, gm.Init()
	}
	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	sb := next.(ScoreboardModel)
	m.scoreboard = &sb

	switch {
	case sb.IsQuitting():
		return m.quit()
	case sb.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	gm := next.(GameModel)
	m.gameModel = &gm

	switch {
	case gm.BackToMenu():
		return m.toMenu()
	case gm.IsQuitting():
		return m.quit()
	}
	return m, cmd
}

func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.gameModel != nil:
		return m.gameModel.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// SessionID identifies this connection in logs.
func (m SessionModel) SessionID() string {
	return m.sessionID
}
