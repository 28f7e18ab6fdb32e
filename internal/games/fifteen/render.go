package fifteen

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/fifteen/internal/core"
	"github.com/vovakirdan/fifteen/internal/puzzle"
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		g.drawOverlay(dst, g.screenW/2, g.screenH/2, "BOARD ERROR", g.err.Error(), "Press Q to quit")
		return
	}

	// Check screen size
	if g.tooSmall || g.board == nil {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	for _, b := range g.buttons {
		b.Draw(dst, b, g.buttonEnabled(b))
	}
	g.renderOverlays(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, move count and timer.
func (g *Game) renderHUD(dst *core.Screen) {
	frame := g.layout.frame
	w, h := g.GridSize()

	title := fmt.Sprintf("%s  %dx%d", g.variant.Title, w, h)
	if g.variant.Side > 0 {
		title = g.variant.Title
	}
	dst.DrawTextCentered(0, title)

	dst.DrawText(frame.X, 1, fmt.Sprintf("Moves: %d", g.board.Moves()))

	secs := g.Elapsed()
	timeStr := fmt.Sprintf("Time: %02d:%02d", secs/60, secs%60)
	x := frame.Right() - len(timeStr)
	if x < frame.X {
		x = frame.X
	}
	dst.DrawText(x, 1, timeStr)
}

// renderBoard draws the frame and every tile.
func (g *Game) renderBoard(dst *core.Screen) {
	dst.DrawBox(g.layout.frame, core.ColorGray)

	size := g.board.Geometry().GridSize()
	tiles := g.board.Tiles()
	for y := range size.Y {
		for x := range size.X {
			val := tiles[y][x]
			if val == 0 {
				continue
			}

			rect := g.cellRect(puzzle.C(x, y))
			color := core.ColorCyan
			if val == y*size.X+x+1 {
				color = core.ColorGreen
			}
			if g.solved {
				color = core.ColorBrightYellow
			}
			dst.DrawBox(rect, color)

			label := strconv.Itoa(val)
			cx, cy := rect.Center()
			dst.DrawTextColor(cx-len(label)/2, cy, label, core.ColorBrightWhite)
		}
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen) {
	cx, cy := g.layout.frame.Center()

	if g.paused {
		g.drawOverlay(dst, cx, cy, "PAUSED", "Press P to resume")
		return
	}

	if g.solved {
		secs := g.Elapsed()
		stats := fmt.Sprintf("%d moves in %02d:%02d", g.board.Moves(), secs/60, secs%60)
		g.drawOverlay(dst, cx, cy, "SOLVED!", stats, "Press R for a new board")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}
