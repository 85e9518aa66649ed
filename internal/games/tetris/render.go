package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

const (
	cellWidth  = 2  // Screen columns per board cell
	hudWidth   = 16 // Side panel width
	hudGap     = 2
	titleLines = 1
)

// Glyphs used for the well.
const (
	blockRune = '█'
	ghostRune = '░'
	emptyRune = '·'
)

// minScreenSize returns the smallest screen the current board fits in.
func (g *Game) minScreenSize() (int, int) {
	w, h := g.cfg.Board.Width, g.cfg.Board.Height
	return w*cellWidth + 2 + hudGap + hudWidth, h + 2 + titleLines
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.engine.Snapshot()
	minW, minH := g.minScreenSize()
	area := core.NewRect(0, 0, dst.Width(), dst.Height()).Centered(minW, minH)

	well := core.NewRect(area.X, area.Y+titleLines, snap.Width*cellWidth+2, snap.Height+2)

	title := "TETRIS"
	dst.DrawTextWithColor(well.X+(well.W-len(title))/2, area.Y, title, core.ColorCyan)

	dst.DrawBoxWithColor(well, core.ColorGray)
	g.renderBoard(dst, well, snap)
	g.renderHUD(dst, well.Right()+hudGap, well.Y, snap)
	g.renderOverlays(dst, well, snap)
}

// cellOrigin returns the screen position of the left half of a board cell.
func cellOrigin(well core.Rect, height, col, row int) (int, int) {
	return well.X + 1 + col*cellWidth, well.Y + 1 + (height - 1 - row)
}

func drawCell(dst *core.Screen, x, y int, r rune, c core.Color) {
	for i := range cellWidth {
		dst.SetWithColor(x+i, y, r, c)
	}
}

// renderBoard draws locked cells, the ghost and the active piece.
func (g *Game) renderBoard(dst *core.Screen, well core.Rect, snap Snapshot) {
	for row := range snap.Height {
		for col := range snap.Width {
			x, y := cellOrigin(well, snap.Height, col, row)
			cell := snap.Grid[row][col]
			if cell.Occupied {
				drawCell(dst, x, y, blockRune, cell.Color)
				continue
			}
			dst.SetWithColor(x, y, ' ', core.ColorDefault)
			dst.SetWithColor(x+1, y, emptyRune, core.ColorDarkGray)
		}
	}

	if !snap.HasActive {
		return
	}

	for _, p := range snap.Ghost {
		if p.Row >= snap.Height || snap.Occupied(p.Col, p.Row) {
			continue
		}
		x, y := cellOrigin(well, snap.Height, p.Col, p.Row)
		drawCell(dst, x, y, ghostRune, core.ColorDarkGray)
	}

	// Cells still in the spawn buffer are not drawn.
	for _, p := range snap.Active {
		if p.Row >= snap.Height {
			continue
		}
		x, y := cellOrigin(well, snap.Height, p.Col, p.Row)
		drawCell(dst, x, y, blockRune, snap.ActiveColor)
	}
}

// renderHUD draws score, level and line counters beside the well.
func (g *Game) renderHUD(dst *core.Screen, x, y int, snap Snapshot) {
	lines := []struct {
		label string
		value string
	}{
		{"Score", fmt.Sprintf("%d", snap.Score)},
		{"Level", fmt.Sprintf("%d", snap.Level)},
		{"Lines", fmt.Sprintf("%d", snap.Lines)},
		{"Pieces", fmt.Sprintf("%d", snap.Pieces)},
		{"Speed", fmt.Sprintf("%dms", snap.FallInterval.Milliseconds())},
	}

	for i, l := range lines {
		dst.DrawTextWithColor(x, y+i*2, l.label, core.ColorGray)
		dst.DrawText(x, y+i*2+1, l.value)
	}

	hints := []string{"←→  move", "↑   rotate", "↓   soft drop", "spc drop", "p   pause", "r   restart", "q   quit"}
	hy := y + len(lines)*2
	for i, h := range hints {
		dst.DrawTextWithColor(x, hy+i, h, core.ColorDarkGray)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, well core.Rect, snap Snapshot) {
	centerX := well.X + well.W/2
	centerY := well.Y + well.H/2

	switch {
	case snap.GameOver:
		g.drawOverlay(dst, centerX, centerY, core.ColorRed, "GAME OVER", fmt.Sprintf("Score: %d", snap.Score), "R to restart")
	case snap.Paused:
		g.drawOverlay(dst, centerX, centerY, core.ColorYellow, "PAUSED", "P to resume")
	}
}

// drawOverlay draws a centered boxed message.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, c core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBoxWithColor(box, c)
	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		dst.DrawTextWithColor(x, box.Y+1+i, line, c)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := g.minScreenSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d, have %dx%d", minW, minH, g.screenW, g.screenH))
}
