// Package core provides fundamental types and utilities for the game platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned box on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Centered returns a w x h rectangle centered inside r.
func (r Rect) Centered(w, h int) Rect {
	return Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}

// SwipeAction maps a pointer displacement to a move action.
// The dominant axis wins; displacements at or below threshold on that axis
// return ActionNone. Ties go to the vertical axis. Screen coordinates grow
// downward, so positive dy is ActionDown.
func SwipeAction(dx, dy, threshold int) Action {
	if Abs(dx) > Abs(dy) {
		if Abs(dx) <= threshold {
			return ActionNone
		}
		if dx > 0 {
			return ActionRight
		}
		return ActionLeft
	}

	if Abs(dy) <= threshold {
		return ActionNone
	}
	if dy > 0 {
		return ActionDown
	}
	return ActionUp
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
