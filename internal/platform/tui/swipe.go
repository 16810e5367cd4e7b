package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// DefaultSwipeThreshold is the minimum drag, in cells, that counts as a swipe.
const DefaultSwipeThreshold = 2

// swipeTracker turns a left-button drag into a move.
type swipeTracker struct {
	threshold int
	active    bool
	startX    int
	startY    int
}

func newSwipeTracker(threshold int) swipeTracker {
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	return swipeTracker{threshold: threshold}
}

// handle consumes a mouse event. It returns the swipe direction on release,
// ActionNone otherwise.
func (s *swipeTracker) handle(msg tea.MouseMsg) core.Action {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return core.ActionNone
		}
		s.active = true
		s.startX, s.startY = msg.X, msg.Y

	case tea.MouseActionRelease:
		if !s.active {
			return core.ActionNone
		}
		s.active = false
		return core.SwipeAction(msg.X-s.startX, msg.Y-s.startY, s.threshold)
	}

	return core.ActionNone
}
