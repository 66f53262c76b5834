package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	discSegments = 12
	// Vertices per batch stay below the uint16 index limit.
	particlesPerBatch = 65535 / (discSegments + 1)
	minDiscRadius     = 0.5
)

var backgroundColor = color.Black

// newParticleImage is a white pixel taken from the middle of a 3x3 image so
// that sampling never bleeds past its edges.
func newParticleImage() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// drawParticles draws every particle as a filled disc, batched into as few
// DrawTriangles calls as the index type allows.
func (g *Game) drawParticles(screen *ebiten.Image) {
	ps := g.field.Particles()
	if len(ps) == 0 {
		return
	}
	ppu := g.fieldView.cam.PixelsPerUnit()
	view := screen.SubImage(g.fieldView.rect).(*ebiten.Image)

	op := &ebiten.DrawTrianglesOptions{}
	for start := 0; start < len(ps); start += particlesPerBatch {
		end := min(start+particlesPerBatch, len(ps))
		g.vertices = g.vertices[:0]
		g.indices = g.indices[:0]
		for i := start; i < end; i++ {
			p := &ps[i]
			cx, cy := g.fieldView.screen(p.X, p.Y)
			r := math.Max(minDiscRadius, p.Scale*ppu/2)
			g.appendDisc(cx, cy, r, float32(p.Color.R), float32(p.Color.G), float32(p.Color.B), float32(p.Opacity))
		}
		view.DrawTriangles(g.vertices, g.indices, g.particleImg, op)
	}
}

func (g *Game) appendDisc(cx, cy, r float64, cr, cg, cb, ca float32) {
	base := uint16(len(g.vertices))
	v := ebiten.Vertex{SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca}
	v.DstX, v.DstY = float32(cx), float32(cy)
	g.vertices = append(g.vertices, v)
	for i := 0; i < discSegments; i++ {
		a := 2 * math.Pi * float64(i) / discSegments
		v.DstX = float32(cx + r*math.Cos(a))
		v.DstY = float32(cy + r*math.Sin(a))
		g.vertices = append(g.vertices, v)
	}
	for i := 0; i < discSegments; i++ {
		next := (i+1)%discSegments + 1
		g.indices = append(g.indices, base, base+uint16(i+1), base+uint16(next))
	}
}
