package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/portfolio-landing/internal/billboard"
	"github.com/iburimskiy/portfolio-landing/internal/config"
)

const (
	outlineWidth      = 2.0
	outlineChimeBoost = 6.0
)

var (
	billboardOutline = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	borderColor      = color.RGBA{R: 70, G: 80, B: 100, A: 255}
)

func (g *Game) drawBillboards(screen *ebiten.Image) {
	if g.menu == nil {
		return
	}
	view := screen.SubImage(g.menuView.rect).(*ebiten.Image)
	for _, b := range g.menu.Billboards() {
		g.drawBillboardShape(view, b)
		g.drawBillboardText(view, b)
	}
}

// drawBillboardShape fills the outline as a fan around the centre, which
// works because the outline is convex, then strokes it.
func (g *Game) drawBillboardShape(dst *ebiten.Image, b *billboard.Billboard) {
	pts := b.Shape().Points
	if len(pts) < 3 {
		return
	}

	screenPts := make([][2]float32, len(pts))
	for i, p := range pts {
		wx, wy := b.World(p)
		sx, sy := g.menuView.screen(wx, wy)
		screenPts[i] = [2]float32{float32(sx), float32(sy)}
	}

	cx, cy := g.menuView.screen(b.X, b.Y)
	vs := make([]ebiten.Vertex, 0, len(pts)+1)
	is := make([]uint16, 0, 3*len(pts))
	vs = append(vs, ebiten.Vertex{DstX: float32(cx), DstY: float32(cy), SrcX: 1, SrcY: 1, ColorA: 1})
	for _, p := range screenPts {
		vs = append(vs, ebiten.Vertex{DstX: p[0], DstY: p[1], SrcX: 1, SrcY: 1, ColorA: 1})
	}
	for i := range pts {
		next := (i+1)%len(pts) + 1
		is = append(is, 0, uint16(i+1), uint16(next))
	}
	dst.DrawTriangles(vs, is, g.particleImg, &ebiten.DrawTrianglesOptions{})

	width := float32(outlineWidth)
	if b.Hovered {
		width += float32(g.chime.Level() * outlineChimeBoost)
	}
	for i, p := range screenPts {
		q := screenPts[(i+1)%len(screenPts)]
		vector.StrokeLine(dst, p[0], p[1], q[0], q[1], width, billboardOutline, true)
	}
}

func (g *Game) drawBillboardText(dst *ebiten.Image, b *billboard.Billboard) {
	// Hovered titles switch to bold; the layout reserved room for either.
	g.drawLabel(dst, b, b.Label(), b.Entry.Size, b.Hovered, b.TitleOrigin())
	if b.DetailVisible && b.Entry.Detail != "" {
		g.drawLabel(dst, b, b.Entry.Detail, config.DetailTextSize, false, b.DetailOrigin())
	}
}

// drawLabel draws s with its first baseline at anchor in the billboard's
// local frame. Text is laid out in pixels at pxPerUnit, scaled into world
// units, carried through the billboard transform and then onto the
// viewport, flipping y along the way.
func (g *Game) drawLabel(dst *ebiten.Image, b *billboard.Billboard, s string, size float64, bold bool, anchor billboard.Point) {
	face := g.fonts.face(size, bold)
	ox, oy := g.menuView.screen(0, 0)

	op := &text.DrawOptions{}
	op.LineSpacing = lineSpacing(face)
	op.GeoM.Translate(0, -face.Metrics().HAscent)
	op.GeoM.Scale(1/pxPerUnit, 1/pxPerUnit)
	op.GeoM.Translate(anchor.X, -anchor.Y)
	op.GeoM.Rotate(-b.Rotation)
	op.GeoM.Translate(b.X, -b.Y)
	ppu := g.menuView.cam.PixelsPerUnit()
	op.GeoM.Scale(ppu, ppu)
	op.GeoM.Translate(ox, oy)
	op.ColorScale.ScaleWithColor(billboardOutline)
	op.Filter = ebiten.FilterLinear
	text.Draw(dst, s, face, op)
}

func (g *Game) drawBorders(screen *ebiten.Image) {
	for _, v := range []*viewport{g.fieldView, g.menuView} {
		r := v.rect
		vector.StrokeRect(screen, float32(r.Min.X)+0.5, float32(r.Min.Y)+0.5, float32(r.Dx())-1, float32(r.Dy())-1, 1, borderColor, false)
	}
}
