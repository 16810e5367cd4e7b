package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
)

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func TestSwipeTracker(t *testing.T) {
	tests := []struct {
		name         string
		fromX, fromY int
		toX, toY     int
		want         core.Action
	}{
		{"right", 10, 10, 20, 11, core.ActionRight},
		{"left", 20, 10, 10, 10, core.ActionLeft},
		{"down", 10, 5, 10, 9, core.ActionDown},
		{"up", 10, 9, 11, 5, core.ActionUp},
		{"below threshold", 10, 10, 12, 10, core.ActionNone},
		{"tap", 10, 10, 10, 10, core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSwipeTracker(DefaultSwipeThreshold)
			if got := s.handle(press(tt.fromX, tt.fromY)); got != core.ActionNone {
				t.Fatalf("press returned %s", got)
			}
			if got := s.handle(release(tt.toX, tt.toY)); got != tt.want {
				t.Errorf("swipe = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSwipeTrackerIgnoresStrayRelease(t *testing.T) {
	s := newSwipeTracker(0)
	if got := s.handle(release(30, 30)); got != core.ActionNone {
		t.Errorf("release without press = %s", got)
	}

	// Right button drags are not swipes.
	s.handle(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if got := s.handle(release(30, 0)); got != core.ActionNone {
		t.Errorf("right-button drag = %s", got)
	}
}
