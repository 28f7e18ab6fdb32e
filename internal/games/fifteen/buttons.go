package fifteen

import (
	"github.com/vovakirdan/fifteen/internal/core"
)

// DrawFunc draws a button. enabled is false when pressing it would do
// nothing.
type DrawFunc func(dst *core.Screen, b Button, enabled bool)

// Button is a clickable label under the board.
type Button struct {
	Label  string
	Action core.Action
	Rect   core.Rect
	Draw   DrawFunc
}

const buttonGap = 2

// layoutButtons places the buttons in a centered row below frame.
func layoutButtons(frame core.Rect) []Button {
	buttons := []Button{
		{Label: "Undo", Action: core.ActionUndo, Draw: drawButton},
		{Label: "Redo", Action: core.ActionRedo, Draw: drawButton},
		{Label: "Shuffle", Action: core.ActionShuffle, Draw: drawButton},
		{Label: "New", Action: core.ActionRestart, Draw: drawAccentButton},
	}

	total := -buttonGap
	for _, b := range buttons {
		total += len(b.Label) + 2 + buttonGap
	}

	cx, _ := frame.Center()
	x := cx - total/2
	y := frame.Bottom()
	for i := range buttons {
		w := len(buttons[i].Label) + 2
		buttons[i].Rect = core.NewRect(x, y, w, buttonHeight)
		x += w + buttonGap
	}
	return buttons
}

// drawButton draws "[Label]", dimmed when disabled.
func drawButton(dst *core.Screen, b Button, enabled bool) {
	c := core.ColorWhite
	if !enabled {
		c = core.ColorGray
	}
	dst.DrawTextColor(b.Rect.X, b.Rect.Y, "["+b.Label+"]", c)
}

// drawAccentButton draws "[Label]" highlighted.
func drawAccentButton(dst *core.Screen, b Button, _ bool) {
	dst.DrawTextColor(b.Rect.X, b.Rect.Y, "[", core.ColorGray)
	dst.DrawTextColor(b.Rect.X+1, b.Rect.Y, b.Label, core.ColorBrightYellow)
	dst.DrawTextColor(b.Rect.Right()-1, b.Rect.Y, "]", core.ColorGray)
}

// buttonEnabled reports whether pressing b would change the board.
func (g *Game) buttonEnabled(b Button) bool {
	switch b.Action {
	case core.ActionUndo:
		return g.board.CanUndo()
	case core.ActionRedo:
		return g.board.CanRedo()
	case core.ActionShuffle:
		return !g.solved
	}
	return true
}
