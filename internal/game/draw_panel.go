package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	panelX          = 12
	panelY          = 12
	panelLineHeight = 16
	panelCharWidth  = 6
	panelPadding    = 8
)

const panelHelp = "F1 hide | Up/Down select | Left/Right adjust (Shift x10) | Space toggle | C colour | R regenerate"

// drawPanel draws the settings panel in the top-left corner. The row just
// edited flashes and fades back.
func (g *Game) drawPanel(screen *ebiten.Image) {
	lines := append(g.panel.Lines(g.settings), "", panelHelp)

	widest := 0
	selected := -1
	for i, l := range lines {
		widest = max(widest, len(l))
		if len(l) > 1 && l[0] == '>' {
			selected = i
		}
	}
	w := float32(widest*panelCharWidth + 2*panelPadding)
	h := float32(len(lines)*panelLineHeight + 2*panelPadding)
	vector.DrawFilledRect(screen, panelX, panelY, w, h, color.RGBA{R: 0, G: 0, B: 0, A: 200}, false)
	vector.StrokeRect(screen, panelX, panelY, w, h, 1, borderColor, false)

	if selected >= 0 {
		a := uint8(60 + 140*clamp01(g.panel.Flash()))
		y := float32(panelY + panelPadding + selected*panelLineHeight)
		vector.DrawFilledRect(screen, panelX+2, y, w-4, panelLineHeight, color.RGBA{R: 70, G: 80, B: 100, A: a}, false)
	}

	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, panelX+panelPadding, panelY+panelPadding+i*panelLineHeight)
	}
}
