package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const (
	scoreboardLimit = 100 // rows loaded per preset
	statsPanelWidth = 22
	statsPanelMinW  = 72 // below this the stats panel folds under the table
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle  = tabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	panelStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statLabelStyle  = dimStyle.Width(10)
)

// ScoreboardKeyMap lists the scoreboard bindings.
type ScoreboardKeyMap struct {
	Up, Down   key.Binding
	Next, Prev key.Binding
	Back, Quit key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back, k.Quit}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns the scoreboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next preset")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev preset")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows finished runs per preset, with a stats panel.
type ScoreboardModel struct {
	presets []registry.GameInfo
	current int
	store   *storage.Store
	scores  []storage.ScoreEntry
	stats   *storage.GameStats
	table   table.Model
	help    help.Model
	keys    ScoreboardKeyMap
	width   int
	height  int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel builds a scoreboard opened on the first registered preset.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		presets: registry.List(),
		store:   store,
		keys:    DefaultScoreboardKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	m.help.Width = width
	m.table = newScoreTable(m.tableWidth(), m.tableHeight())
	m.reload()
	return m
}

func newScoreTable(width, height int) table.Model {
	date := 14
	if width > 50 {
		date = min(width-34, 20)
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 8},
			{Title: "Tile", Width: 6},
			{Title: "Won", Width: 4},
			{Title: "Played", Width: date},
		}),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m ScoreboardModel) wide() bool { return m.width >= statsPanelMinW }

func (m ScoreboardModel) tableWidth() int {
	w := m.width - 4
	if m.wide() {
		w -= statsPanelWidth + 4
	}
	return w
}

func (m ScoreboardModel) tableHeight() int {
	h := m.height - 11
	if !m.wide() {
		h -= 7
	}
	return max(h, 3)
}

// reload fetches rows and stats for the current preset.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats = nil, nil
	if m.store != nil && len(m.presets) > 0 {
		id := m.presets[m.current].ID
		if scores, err := m.store.TopScores(id, scoreboardLimit); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, 0, len(m.scores))
	for i, s := range m.scores {
		won := ""
		if s.Won {
			won = "✓"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.MaxTile),
			won,
			s.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// cycle moves the preset selection by delta, wrapping around.
func (m *ScoreboardModel) cycle(delta int) {
	n := len(m.presets)
	if n == 0 {
		return
	}
	m.current = ((m.current+delta)%n + n) % n
	m.reload()
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newScoreTable(m.tableWidth(), m.tableHeight())
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	sections := []string{
		boardTitleStyle.Render("HIGH SCORES"),
		m.tabsView(),
	}
	if len(m.presets) > 0 && m.presets[m.current].Description != "" {
		sections = append(sections, dimStyle.Render(m.presets[m.current].Description))
	}

	body := panelStyle.Render(m.tableView())
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", panelStyle.Render(m.statsView()))
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, body, panelStyle.Render(m.statsView()))
	}
	sections = append(sections, "", body, m.help.View(m.keys))

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}

// tabsView renders the preset tabs, or just the current one if they do not fit.
func (m ScoreboardModel) tabsView() string {
	if len(m.presets) == 0 {
		return dimStyle.Render("no presets registered")
	}
	tabs := make([]string, len(m.presets))
	for i, p := range m.presets {
		if i == m.current {
			tabs[i] = activeTabStyle.Render(p.Title)
		} else {
			tabs[i] = tabStyle.Render(p.Title)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(line) > m.width-2 {
		line = "‹ " + activeTabStyle.Render(m.presets[m.current].Title) + " ›"
	}
	return line
}

func (m ScoreboardModel) tableView() string {
	if len(m.scores) == 0 {
		return dimStyle.Italic(true).Padding(1, 2).
			Render("No finished games yet.\nPlay until the board locks up to record a score!")
	}
	return m.table.View()
}

// statsView renders the per-preset summary panel.
func (m ScoreboardModel) statsView() string {
	s := m.stats
	if s == nil {
		s = &storage.GameStats{}
	}
	last := "never"
	if !s.LastPlayed.IsZero() {
		last = s.LastPlayed.Format("Jan 02")
	}
	rows := [][2]string{
		{"Games", strconv.Itoa(s.GamesCount)},
		{"Wins", strconv.Itoa(s.Wins)},
		{"Best", strconv.Itoa(s.HighScore)},
		{"Top tile", strconv.Itoa(s.BestTile)},
		{"Average", fmt.Sprintf("%.0f", s.AvgScore)},
		{"Last", last},
	}
	var b strings.Builder
	b.WriteString(boardTitleStyle.Render("Stats"))
	for _, r := range rows {
		b.WriteString("\n" + statLabelStyle.Render(r[0]) + r[1])
	}
	return b.String()
}

// Preset returns the ID of the preset being shown.
func (m ScoreboardModel) Preset() string {
	if len(m.presets) == 0 {
		return ""
	}
	return m.presets[m.current].ID
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to leave entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard in its own program. It reports whether
// the user went back rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
