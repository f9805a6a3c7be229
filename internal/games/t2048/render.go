package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

// boardDims returns the rendered board width and height for a side length.
func boardDims(size int) (w, h int) {
	return size*cellWidth + 1, size*cellHeight + 1
}

// tileColor picks the foreground color for a tile value.
func tileColor(v int) core.Color {
	switch v {
	case 2:
		return core.ColorWhite
	case 4:
		return core.ColorBrightWhite
	case 8:
		return core.ColorYellow
	case 16:
		return core.ColorOrange
	case 32:
		return core.ColorBrightRed
	case 64:
		return core.ColorRed
	case 128:
		return core.ColorBrightYellow
	case 256:
		return core.ColorBrightGreen
	case 512:
		return core.ColorGreen
	case 1024:
		return core.ColorBrightCyan
	case 2048:
		return core.ColorBrightMagenta
	default:
		return core.ColorMagenta
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

	size := g.engine.Size()
	boardW, boardH := boardDims(size)
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY, size)
	g.renderOverlays(dst, core.NewRect(boardX, boardY, boardW, boardH))
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score and target line.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := g.variant.Title
	dst.DrawText(boardX+(boardW-len(title))/2, 0, title)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.engine.Score()))

	best := fmt.Sprintf("Best: %d", g.engine.BestScore())
	dst.DrawText(max(boardX, boardX+boardW-len(best)), 1, best)

	info := fmt.Sprintf("Max: %d  Target: %d", g.engine.MaxTile(), g.engine.WinTarget())
	dst.DrawText(boardX+(boardW-len(info))/2, 2, info)
}

// renderBoard draws the grid lines and tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY, size int) {
	for y := range size + 1 {
		for x := range size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			dst.Set(px, py, gridCorner(x, y, size))

			// Horizontal line to the right
			if x < size {
				dst.DrawHLine(px+1, py, cellWidth-1, '─')
			}

			// Vertical line down
			if y < size {
				dst.DrawVLine(px, py+1, cellHeight-1, '│')
			}
		}
	}

	for r, row := range g.engine.Grid().Rows() {
		for c, val := range row {
			if val == 0 {
				continue
			}

			valStr := strconv.Itoa(val)
			padLeft := max(0, (cellWidth-1-len(valStr))/2)

			cellX := boardX + c*cellWidth + 1
			cellY := boardY + r*cellHeight + 1
			dst.DrawTextColored(cellX+padLeft, cellY, valStr, tileColor(val))
		}
	}
}

// gridCorner returns the box-drawing rune for the grid intersection (x, y).
func gridCorner(x, y, size int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == size:
		return '┐'
	case y == size && x == 0:
		return '└'
	case y == size && x == size:
		return '┘'
	case y == 0:
		return '┬'
	case y == size:
		return '┴'
	case x == 0:
		return '├'
	case x == size:
		return '┤'
	default:
		return '┼'
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, area core.Rect) {
	switch {
	case g.engine.Status() == board.StatusLost:
		maxStr := fmt.Sprintf("Max tile: %d", g.engine.MaxTile())
		drawOverlay(dst, area, "GAME OVER", maxStr, "Press R to restart")
	case g.paused:
		drawOverlay(dst, area, "PAUSED", "Press P to resume")
	case g.showWin:
		drawOverlay(dst, area, "YOU WIN!", fmt.Sprintf("%d reached", g.engine.WinTarget()), "Enter: keep playing")
	}
}

// drawOverlay draws a centered boxed text overlay.
func drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := area.CenteredIn(maxLen+4, len(lines)+2)
	centerX, _ := box.Center()

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}
