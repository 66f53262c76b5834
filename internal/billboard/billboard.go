// Package billboard lays out the floating navigation buttons and drives
// their animation: background shape easing, expand/collapse, hover wobble
// and floating motion, plus pointer picking against the backgrounds.
package billboard

import (
	"math"

	"github.com/iburimskiy/portfolio-landing/internal/config"
)

// State is the expand/collapse state of a billboard.
type State uint8

const (
	Collapsed State = iota
	Expanded
)

func (s State) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Expanded:
		return "expanded"
	default:
		return "unknown"
	}
}

// Billboard is one button: its static layout, its discrete state and the
// continuous animation values (current/target pairs) advanced by Step.
type Billboard struct {
	Entry Entry
	Index int

	BaseX, BaseY float64 // resting centre of the collapsed background
	X, Y         float64 // animated container position

	TextWidth, TextHeight float64 // max over regular and bold
	TitleWidth, TitleTop  float64 // regular face
	DetailWidth           float64

	BoxWidth, BoxHeight float64
	ExpandedWidth       float64

	Width, TargetWidth   float64
	Height, TargetHeight float64
	Radius, TargetRadius float64

	Rotation, TargetRotation float64
	RotationOffset           float64

	Hovered       bool
	State         State
	DetailVisible bool

	shape    *Shape
	rebuilds int
}

// Label is the text passed to click callbacks.
func (b *Billboard) Label() string { return b.Entry.Text }

// Expandable reports whether the billboard can expand.
func (b *Billboard) Expandable() bool { return b.Entry.Expandable }

// Expanded reports whether the billboard is in the Expanded state.
func (b *Billboard) Expanded() bool { return b.State == Expanded }

// Shape returns the current background outline.
func (b *Billboard) Shape() *Shape { return b.shape }

// Rebuilds counts how many times the background outline was replaced.
func (b *Billboard) Rebuilds() int { return b.rebuilds }

// toggle flips an expandable billboard between its two states.
func (b *Billboard) toggle() {
	if !b.Expandable() {
		return
	}
	if b.State == Expanded {
		b.State = Collapsed
	} else {
		b.State = Expanded
	}
}

func (b *Billboard) collapse() { b.State = Collapsed }

func (b *Billboard) retarget(s config.Settings) {
	if b.State == Expanded {
		b.TargetHeight = s.AboutMeExpandedHeight
		b.TargetWidth = b.ExpandedWidth
		b.TargetRadius = s.AboutMeExpandedRadius
		return
	}
	b.TargetHeight = b.BoxHeight
	b.TargetWidth = b.BoxWidth
	b.TargetRadius = s.AboutMeCollapsedRadius
}

// Step advances the animation by one frame. now is the shared clock in
// milliseconds.
func (b *Billboard) Step(now float64, s config.Settings) {
	b.retarget(s)

	k := s.AboutMeAnimationSpeed
	b.Height += (b.TargetHeight - b.Height) * k
	b.Width += (b.TargetWidth - b.Width) * k
	b.Radius += (b.TargetRadius - b.Radius) * k

	if !b.shape.Matches(b.Width, b.Height, b.Radius) {
		b.rebuild()
	}

	// The top edge stays put while the panel grows downwards.
	drift := math.Sin(now*s.FloatSpeed+float64(b.Index)) * s.FloatAmplitude
	b.X = b.BaseX
	b.Y = b.BaseY - (b.Height-b.BoxHeight)/2 + drift

	b.DetailVisible = b.Height > b.BoxHeight+config.DetailRevealMargin

	if b.Hovered {
		b.TargetRotation = s.RotationRange * math.Sin(now*s.RotationSpeed+b.RotationOffset)
	} else {
		b.TargetRotation = 0
	}
	b.Rotation += (b.TargetRotation - b.Rotation) * config.RotationEase
}

// rebuild swaps in a fresh outline; the previous one is dropped here and
// nothing else holds it.
func (b *Billboard) rebuild() {
	b.shape = NewShape(b.Width, b.Height, b.Radius)
	b.rebuilds++
}

// TitleOrigin is the baseline-left anchor of the title text in the local
// frame. Expandable billboards pin the title to the top edge.
func (b *Billboard) TitleOrigin() Point {
	if b.Expandable() {
		return Point{X: -b.TitleWidth / 2, Y: b.Height/2 - b.TitleTop}
	}
	return Point{X: -b.TextWidth / 2, Y: -b.TextHeight / 2}
}

// DetailOrigin is the baseline-left anchor of the first detail line.
func (b *Billboard) DetailOrigin() Point {
	return Point{X: -b.Width/2 + 2, Y: -b.Height/2 + 18}
}

// Local converts a world point on the z=0 plane into the billboard frame.
func (b *Billboard) Local(wx, wy float64) Point {
	dx, dy := wx-b.X, wy-b.Y
	sin, cos := math.Sincos(-b.Rotation)
	return Point{X: dx*cos - dy*sin, Y: dx*sin + dy*cos}
}

// World converts a local point into world coordinates.
func (b *Billboard) World(p Point) (float64, float64) {
	sin, cos := math.Sincos(b.Rotation)
	return b.X + p.X*cos - p.Y*sin, b.Y + p.X*sin + p.Y*cos
}

// Hit reports whether the world point lies on the filled background.
func (b *Billboard) Hit(wx, wy float64) bool {
	p := b.Local(wx, wy)
	return b.shape.Contains(p.X, p.Y)
}
