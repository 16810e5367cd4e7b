package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

// boardDims returns the board size in characters, borders included.
func boardDims(size int) (w, h int) {
	return size*cellWidth + 1, size*cellHeight + 1
}

// tileColor picks a color per tile value.
func tileColor(v int) core.Color {
	switch v {
	case 2:
		return core.ColorWhite
	case 4:
		return core.ColorYellow
	case 8:
		return core.ColorOrange
	case 16:
		return core.ColorRed
	case 32:
		return core.ColorBrightRed
	case 64:
		return core.ColorMagenta
	case 128:
		return core.ColorBrightYellow
	case 256:
		return core.ColorGreen
	case 512:
		return core.ColorBrightGreen
	case 1024:
		return core.ColorCyan
	case 2048:
		return core.ColorBrightCyan
	default:
		return core.ColorBrightMagenta
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check screen size
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	st := g.session.State()
	boardW, boardH := boardDims(st.Grid.Size())

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, st, boardX, boardW)
	g.renderBoard(dst, st.Grid, boardX, boardY)
	dst.DrawTextCentered(boardY+boardH+1, g.Controls(), core.ColorGray)
	g.renderOverlays(dst, st, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorGray)
}

// renderHUD draws title, score and remaining budgets.
func (g *Game) renderHUD(dst *core.Screen, st State, boardX, boardW int) {
	title := g.Title()
	dst.DrawTextColor(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", st.Score))
	best := fmt.Sprintf("Best: %d", st.Best)
	dst.DrawText(max(boardX, boardX+boardW-len(best)), 1, best)

	dst.DrawTextColor(boardX, 2, fmt.Sprintf("Undo: %d", st.UndoBudget), core.ColorCyan)
	merges := fmt.Sprintf("Merge: %d", st.MergeBudget)
	dst.DrawTextColor(max(boardX, boardX+boardW-len(merges)), 2, merges, core.ColorMagenta)
}

// renderBoard draws the grid lines and tiles.
func (g *Game) renderBoard(dst *core.Screen, grid Grid, boardX, boardY int) {
	n := grid.Size()

	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == n:
				corner = '┐'
			case y == n && x == 0:
				corner = '└'
			case y == n && x == n:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == n:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColor(px, py, corner, core.ColorGray)

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorGray)
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	highlight := g.tick < g.highlightUntil
	for row := range n {
		for col := range n {
			val := grid.At(row, col)
			if val == 0 {
				continue
			}

			color := tileColor(val)
			if highlight {
				switch {
				case g.recorder.merged(row, col):
					color = core.ColorBrightWhite
				case g.recorder.spawned(row, col):
					color = core.ColorGray
				}
			}

			valStr := strconv.Itoa(val)
			padLeft := max((cellWidth-1-len(valStr))/2, 0)
			cellX := boardX + col*cellWidth + 1
			cellY := boardY + row*cellHeight + 1
			dst.DrawTextColor(cellX+padLeft, cellY, valStr, color)
		}
	}
}

// renderOverlays draws the win and game-over notices once they are due.
func (g *Game) renderOverlays(dst *core.Screen, st State, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	switch {
	case g.notice.visible(noticeWin):
		g.drawOverlay(dst, centerX, centerY, core.ColorBrightYellow,
			"YOU WIN!",
			fmt.Sprintf("Score: %d", st.Score),
			"C: keep playing",
			"R: new game")
	case g.notice.visible(noticeGameOver):
		lines := []string{
			"GAME OVER",
			fmt.Sprintf("Max tile: %d", MaxTile(st.Grid)),
		}
		if st.UndoBudget > 0 && st.HistoryLen > 0 {
			lines = append(lines, "U: undo")
		}
		lines = append(lines, "R: new game")
		g.drawOverlay(dst, centerX, centerY, core.ColorBrightRed, lines...)
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, c core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, c)

	for i, line := range lines {
		dst.DrawTextColor(centerX-len(line)/2, box.Y+1+i, line, c)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | U: Undo | M: Merge | R: New | Q: Quit"
}
