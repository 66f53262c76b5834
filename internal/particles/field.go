package particles

import (
	"image"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/iburimskiy/portfolio-landing/internal/config"
)

// Field owns the particles of one viewport. It stays empty, and every
// operation stays a no-op, until Load succeeds.
type Field struct {
	particles []Particle
	palette   Palette
	rng       *rand.Rand

	// rest is the colour the last finished transition left every particle
	// at; regenerated particles start from it.
	rest colorful.Color

	reveal      *gween.Tween
	revealLevel float64
	cycleClock  float64
}

// NewField returns an empty field that transitions through palette.
func NewField(palette Palette, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	return &Field{palette: palette, rng: rng, rest: white, revealLevel: 1}
}

// Load regenerates every particle from img and restarts the reveal fade.
func (f *Field) Load(img image.Image, s config.Settings) {
	f.Resample(img, s)
	f.revealLevel = 1
	f.reveal = nil
	if s.RevealSeconds > 0 {
		f.reveal = gween.New(0, 1, float32(s.RevealSeconds), ease.OutQuad)
		f.revealLevel = 0
	}
}

// Resample regenerates every particle from img without touching the reveal
// fade. New particles take the colour of the last finished transition; an
// unfinished one carries on from there.
func (f *Field) Resample(img image.Image, s config.Settings) {
	f.particles = Generate(img, s)
	for i := range f.particles {
		f.particles[i].Color = f.rest
	}
}

// Particles exposes the particles for drawing. Callers must not retain it
// across Load.
func (f *Field) Particles() []Particle { return f.particles }

// Len returns the particle count.
func (f *Field) Len() int { return len(f.particles) }

// Palette returns the colour transition state.
func (f *Field) Palette() *Palette { return &f.palette }

// TriggerColorChange starts a transition to a different palette colour.
func (f *Field) TriggerColorChange() {
	f.palette.Next(f.rng)
}

// Update advances the field by one frame.
func (f *Field) Update(s config.Settings, ptr Pointer, dt float64) {
	f.advanceReveal(dt)
	f.advanceCycle(s, dt)

	transitioning := f.palette.Active()
	target := f.palette.Target()
	maxDist := 0.0

	for i := range f.particles {
		p := &f.particles[i]

		dx := ptr.WorldX - p.X
		dy := ptr.WorldY - p.Y
		distance := math.Sqrt(dx*dx + dy*dy)

		if ptr.Active() && s.MouseRepulsion && distance < s.MouseRepulsionRadius {
			if s.MouseScaling {
				p.Scale = p.OriginalScale * proximityScale(distance, s)
			}
			angle := math.Atan2(dy, dx)
			force := (s.MouseRepulsionRadius - distance) * s.MouseRepulsionForce
			p.X -= math.Cos(angle) * force
			p.Y -= math.Sin(angle) * force
		} else {
			p.X += (p.OriginX - p.X) * s.ReturnRate
			p.Y += (p.OriginY - p.Y) * s.ReturnRate
			p.Scale = p.OriginalScale
		}

		p.Opacity = s.ParticleOpacity * p.BaseOpacity * f.revealLevel

		if transitioning {
			p.Color = p.Color.BlendRgb(target, s.ColorTransitionSpeed)
			if d := p.Color.DistanceRgb(target); d > maxDist {
				maxDist = d
			}
		}
	}

	if transitioning && maxDist < config.ColorConvergeThreshold {
		for i := range f.particles {
			f.particles[i].Color = target
		}
		f.rest = target
		f.palette.finish()
	}
}

// proximityScale grows a sprite from 1 at the edge of the scale radius to
// 1+MouseScaleFactor at the pointer.
func proximityScale(distance float64, s config.Settings) float64 {
	if s.MouseScaleRadius <= 0 {
		return 1
	}
	t := (s.MouseScaleRadius - distance) / s.MouseScaleRadius
	if t < 0 {
		t = 0
	}
	return 1 + t*s.MouseScaleFactor
}

func (f *Field) advanceReveal(dt float64) {
	if f.reveal == nil {
		return
	}
	v, done := f.reveal.Update(float32(dt))
	f.revealLevel = float64(v)
	if done {
		f.revealLevel = 1
		f.reveal = nil
	}
}

func (f *Field) advanceCycle(s config.Settings, dt float64) {
	if s.ColorCycleSeconds <= 0 {
		f.cycleClock = 0
		return
	}
	f.cycleClock += dt
	if f.cycleClock >= s.ColorCycleSeconds {
		f.cycleClock = 0
		f.TriggerColorChange()
	}
}

// RevealLevel is the current intro fade multiplier in [0, 1].
func (f *Field) RevealLevel() float64 { return f.revealLevel }
