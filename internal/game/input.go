package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerSample folds mouse and touch input for one tick into a single
// pointer: where it is, whether it is over the window at all, and whether
// a click or tap finished this tick.
type pointerSample struct {
	x, y     int
	present  bool
	released bool
	touch    bool
}

func (g *Game) samplePointer() pointerSample {
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	if len(g.touchIDs) > 0 {
		x, y := ebiten.TouchPosition(g.touchIDs[0])
		return pointerSample{x: x, y: y, present: true, touch: true}
	}

	g.releasedTouchIDs = inpututil.AppendJustReleasedTouchIDs(g.releasedTouchIDs[:0])
	if len(g.releasedTouchIDs) > 0 {
		// The finger is gone: tap where it was, then leave.
		x, y := inpututil.TouchPositionInPreviousTick(g.releasedTouchIDs[0])
		return pointerSample{x: x, y: y, released: true, touch: true}
	}

	x, y := ebiten.CursorPosition()
	return pointerSample{
		x:        x,
		y:        y,
		present:  ebiten.IsFocused() && x >= 0 && y >= 0 && x < g.width && y < g.height,
		released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
}

// handlePointer routes the sample to both viewports. Each viewport treats a
// pointer outside its rectangle as having left it.
func (g *Game) handlePointer(p pointerSample) {
	if p.present && g.fieldView.contains(p.x, p.y) {
		nx, ny := g.fieldView.ndc(p.x, p.y)
		if wx, wy, ok := g.fieldView.cam.UnprojectToPlane(nx, ny); ok {
			g.pointer.Set(wx, wy)
		}
	} else {
		g.pointer.Reset()
	}

	if g.menu == nil {
		return
	}

	if p.present && g.menuView.contains(p.x, p.y) {
		if !g.lastHover.valid || g.lastHover.x != p.x || g.lastHover.y != p.y {
			if g.menu.Hover(g.menuView.ray(p.x, p.y)) && g.menu.Hovered() != nil {
				g.chime.Hover()
			}
			g.lastHover = hoverPos{x: p.x, y: p.y, valid: true}
		}
	} else if g.lastHover.valid {
		g.menu.Leave()
		g.lastHover = hoverPos{}
	}

	if !p.released {
		return
	}
	switch {
	case p.touch:
		if g.menuView.contains(p.x, p.y) {
			g.menu.Tap(g.menuView.ray(p.x, p.y))
		} else {
			g.menu.Leave()
		}
		g.lastHover = hoverPos{}
	case g.menuView.contains(p.x, p.y):
		g.menu.Click(g.menuView.ray(p.x, p.y))
	}
}

type hoverPos struct {
	x, y  int
	valid bool
}
