package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

func scoreboardKey(t *testing.T, m ScoreboardModel, msg tea.KeyMsg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sb
}

func TestScoreboardCyclesPresets(t *testing.T) {
	store := openStore(t)
	store.SaveResult(storage.GameResult{GameID: "2048", Score: 900, MaxTile: 128})
	store.SaveResult(storage.GameResult{GameID: "2048_zen", Score: 4100, MaxTile: 2048, Won: true})

	m := NewScoreboardModel(store, 100, 30)
	if m.Preset() != "2048" {
		t.Fatalf("opened on %q, want 2048", m.Preset())
	}
	if len(m.scores) != 1 || m.stats == nil || m.stats.HighScore != 900 {
		t.Errorf("classic rows = %v, stats = %+v", m.scores, m.stats)
	}

	m = scoreboardKey(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Preset() != "2048_zen" {
		t.Fatalf("tab moved to %q, want 2048_zen", m.Preset())
	}
	if len(m.scores) != 1 || !m.scores[0].Won {
		t.Errorf("zen rows = %v", m.scores)
	}

	// Left from the first preset wraps to the last one.
	m = scoreboardKey(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = scoreboardKey(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Preset() != m.presets[len(m.presets)-1].ID {
		t.Errorf("wrapped to %q", m.Preset())
	}
}

func TestScoreboardView(t *testing.T) {
	tests := []struct {
		name  string
		width int
	}{
		{"wide", 100},
		{"narrow", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewScoreboardModel(openStore(t), tt.width, 30)
			view := m.View()
			for _, want := range []string{"HIGH SCORES", "No finished games yet", "Stats", "never"} {
				if !strings.Contains(view, want) {
					t.Errorf("view missing %q", want)
				}
			}
		})
	}
}

func TestScoreboardExit(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	if m.stats != nil || len(m.scores) != 0 {
		t.Error("scoreboard without a store should be empty")
	}

	back := scoreboardKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !back.IsGoingBack() || back.IsQuitting() {
		t.Error("esc should go back")
	}
	if back.View() != "" {
		t.Error("view should be blank after leaving")
	}

	quit := scoreboardKey(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !quit.IsQuitting() {
		t.Error("q should quit")
	}
}
