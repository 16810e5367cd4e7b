package core

import "fmt"

// Action represents a semantic game action, abstracted from physical key presses
// and pointer gestures.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // W, K, Up arrow, upward swipe
	ActionDown               // S, J, Down arrow, downward swipe
	ActionLeft               // A, H, Left arrow, leftward swipe
	ActionRight              // D, L, Right arrow, rightward swipe
	ActionUndo               // U, Z - restore the previous position
	ActionPowerUp            // M - magic merge
	ActionKeepPlaying        // C, Enter - continue after winning
	ActionBack               // B, Escape - go back to menu
	ActionRestart            // R, N - start a new game
	ActionQuit               // Q, Ctrl+C - exit game/session
)

var actionNames = [...]string{
	ActionNone:        "None",
	ActionUp:          "Up",
	ActionDown:        "Down",
	ActionLeft:        "Left",
	ActionRight:       "Right",
	ActionUndo:        "Undo",
	ActionPowerUp:     "PowerUp",
	ActionKeepPlaying: "KeepPlaying",
	ActionBack:        "Back",
	ActionRestart:     "Restart",
	ActionQuit:        "Quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// IsDirection reports whether the action is one of the four moves.
func (a Action) IsDirection() bool {
	return a >= ActionUp && a <= ActionRight
}

// InputFrame is the set of actions triggered during one simulation tick.
// The zero value is an empty frame; frames are plain values and copy freely.
type InputFrame struct {
	bits uint32
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

func (f *InputFrame) Set(a Action) {
	if a > ActionNone && int(a) < len(actionNames) {
		f.bits |= 1 << a
	}
}

func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && f.bits&(1<<a) != 0
}

func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear empties the frame for the next tick.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Clone returns a copy of the frame.
func (f InputFrame) Clone() InputFrame {
	return f
}

// Actions lists the triggered actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionUp; int(a) < len(actionNames); a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

func (f InputFrame) String() string {
	return fmt.Sprint(f.Actions())
}
