package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	logoStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f9f6f2")).Background(lipgloss.Color("#edc22e")).Padding(1, 4).MarginBottom(1)
	itemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	bestStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#edc22e"))
	menuHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

// MenuItem is one variant in the picker.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	Best        int
}

// MenuModel picks a variant to play or opens the scoreboard.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper

	selected       *MenuItem
	openScoreboard bool
	quitting       bool
}

// NewMenuModel lists every registered variant with its stored best score.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, len(games))
	for i, g := range games {
		items[i] = MenuItem{GameID: g.ID, Title: g.Title, Description: g.Description}
		if store == nil {
			continue
		}
		if best, err := store.HighScore(g.ID); err == nil {
			items[i].Best = best
		}
	}
	return MenuModel{items: items, config: cfg, keyMapper: NewKeyMapper()}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height

	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit, MenuActionBack:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case MenuActionScoreboard:
			m.openScoreboard = true
			return m, tea.Quit
		case MenuActionSelect:
			if len(m.items) == 0 {
				return m, nil
			}
			item := m.items[m.cursor]
			m.selected = &item
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{logoStyle.Render("2 0 4 8")}
	for i, item := range m.items {
		best := ""
		if item.Best > 0 {
			best = "  " + bestStyle.Render("best "+strconv.Itoa(item.Best))
		}
		if i == m.cursor {
			lines = append(lines, cursorStyle.Render("› "+item.Title)+best)
		} else {
			lines = append(lines, itemStyle.Render(item.Title)+best)
		}
	}
	if len(m.items) > 0 && m.items[m.cursor].Description != "" {
		lines = append(lines, "", dimStyle.Render(m.items[m.cursor].Description))
	}
	lines = append(lines, menuHelpStyle.Render("↑/↓ choose • enter play • tab scores • q quit"))

	// Titles stay left-aligned with each other inside the centered block.
	menu := lipgloss.JoinVertical(lipgloss.Left, lines[1:]...)
	block := lipgloss.JoinVertical(lipgloss.Center, lines[0], menu)
	if m.config.ScreenW <= 0 || m.config.ScreenH <= 0 {
		return block
	}
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, block)
}

// Selected returns the chosen item, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, resized to the last window size seen.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult is what RunMenu hands back to the caller.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the picker in its own program.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config(), WantsScoreboard: m.WantsScoreboard()}
	switch {
	case res.WantsScoreboard:
	case m.Selected() != nil && !m.IsQuitting():
		res.GameID = m.Selected().GameID
	default:
		res.Quit = true
	}
	return res, nil
}
