package billboard

import (
	"math"

	"github.com/iburimskiy/portfolio-landing/internal/config"
)

// Point is a position in a billboard's local frame (origin at the centre of
// the background, y up).
type Point struct {
	X, Y float64
}

// Shape is a flattened rounded rectangle: small fixed radius on the top
// corners, an animated radius on the bottom corners.
type Shape struct {
	Width, Height float64
	Radius        float64 // requested bottom radius
	BottomRadius  float64 // bottom radius actually used after clamping
	Points        []Point // closed outline, clockwise with y up
}

// BottomRadius clamps a requested bottom radius so the two bottom corners
// never overlap.
func BottomRadius(width, height, radius float64) float64 {
	maxRadius := math.Min(width, height)/2 - 0.01
	return math.Max(0, math.Min(radius, maxRadius))
}

// NewShape builds the outline edge by edge: four straight segments joined
// by quadratic corners.
func NewShape(width, height, radius float64) *Shape {
	r := BottomRadius(width, height, radius)
	top := config.TopCornerRadius
	hw, hh := width/2, height/2

	b := outlineBuilder{segments: config.ShapeCornerSegments}
	b.moveTo(-hw+top, hh)
	b.lineTo(hw-top, hh)
	b.quadTo(hw, hh, hw, hh-top)
	b.lineTo(hw, -hh+r)
	b.quadTo(hw, -hh, hw-r, -hh)
	b.lineTo(-hw+r, -hh)
	b.quadTo(-hw, -hh, -hw, -hh+r)
	b.lineTo(-hw, hh-top)
	b.quadTo(-hw, hh, -hw+top, hh)

	return &Shape{
		Width:        width,
		Height:       height,
		Radius:       radius,
		BottomRadius: r,
		Points:       b.close(),
	}
}

// Matches reports whether the shape was built for these dimensions.
func (s *Shape) Matches(width, height, radius float64) bool {
	return s != nil && s.Width == width && s.Height == height && s.Radius == radius
}

// Contains reports whether (x, y) lies inside the outline (even-odd rule).
func (s *Shape) Contains(x, y float64) bool {
	if s == nil || len(s.Points) < 3 {
		return false
	}
	inside := false
	pts := s.Points
	j := len(pts) - 1
	for i := range pts {
		a, b := pts[i], pts[j]
		if (a.Y > y) != (b.Y > y) {
			cross := (b.X-a.X)*(y-a.Y)/(b.Y-a.Y) + a.X
			if x < cross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

type outlineBuilder struct {
	segments int
	pts      []Point
	cur      Point
}

func (b *outlineBuilder) moveTo(x, y float64) {
	b.cur = Point{x, y}
	b.pts = append(b.pts[:0], b.cur)
}

func (b *outlineBuilder) lineTo(x, y float64) {
	p := Point{x, y}
	if p != b.cur {
		b.pts = append(b.pts, p)
	}
	b.cur = p
}

func (b *outlineBuilder) quadTo(cx, cy, x, y float64) {
	p0 := b.cur
	for i := 1; i <= b.segments; i++ {
		t := float64(i) / float64(b.segments)
		u := 1 - t
		b.lineTo(
			u*u*p0.X+2*u*t*cx+t*t*x,
			u*u*p0.Y+2*u*t*cy+t*t*y,
		)
	}
}

// close drops the final point when it repeats the first.
func (b *outlineBuilder) close() []Point {
	if n := len(b.pts); n > 1 && b.pts[n-1] == b.pts[0] {
		b.pts = b.pts[:n-1]
	}
	return b.pts
}
