package particles

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/iburimskiy/portfolio-landing/internal/config"
)

func blackImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

func settingsNoReveal() config.Settings {
	s := config.Default()
	s.RevealSeconds = 0
	return s
}

func TestSpacing(t *testing.T) {
	tests := []struct {
		density float64
		want    int
	}{
		{1, 8},
		{2, 4},
		{0.5, 16},
		{3, 2},
		{16, 1},
		{100, 1},
		{-1, 1},
		{0, math.MaxInt32},
	}
	for _, tt := range tests {
		if got := Spacing(tt.density); got != tt.want {
			t.Errorf("Spacing(%v) = %d, want %d", tt.density, got, tt.want)
		}
	}
}

func TestGenerateSingleBrightPixel(t *testing.T) {
	img := blackImage(16, 16)
	img.SetNRGBA(8, 8, color.NRGBA{255, 255, 255, 255})

	s := settingsNoReveal()
	s.ParticleDensity = 1
	ps := Generate(img, s)
	if len(ps) != 1 {
		t.Fatalf("len = %d, want 1", len(ps))
	}
	p := ps[0]
	if p.X != 0 || p.Y != 0 {
		t.Errorf("position = (%v, %v), want origin", p.X, p.Y)
	}
	if p.OriginalScale != s.ParticleSize || p.Scale != s.ParticleSize {
		t.Errorf("scale = %v/%v, want %v", p.Scale, p.OriginalScale, s.ParticleSize)
	}
	if p.BaseOpacity != 1 {
		t.Errorf("BaseOpacity = %v, want 1", p.BaseOpacity)
	}
}

func TestGenerateBrightnessInvariant(t *testing.T) {
	img := blackImage(64, 64)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := uint8((x*4 + y) % 256)
			img.SetNRGBA(x, y, color.NRGBA{v, v / 2, v, 255})
		}
	}
	s := settingsNoReveal()
	s.ParticleDensity = 2
	ps := Generate(img, s)
	if len(ps) == 0 {
		t.Fatal("no particles generated")
	}
	for i, p := range ps {
		if p.Brightness <= config.FieldBrightnessCutoff {
			t.Errorf("particle %d brightness %v not above cutoff", i, p.Brightness)
		}
		if p.OriginalScale != p.Brightness*s.ParticleSize {
			t.Errorf("particle %d scale %v != %v", i, p.OriginalScale, p.Brightness*s.ParticleSize)
		}
	}
}

func TestGenerateCutoffIsExclusive(t *testing.T) {
	img := blackImage(8, 8)
	// The 0.1 boundary sits at a channel sum of 76.5.
	img.SetNRGBA(0, 0, color.NRGBA{25, 25, 26, 255})
	s := settingsNoReveal()
	if got := len(Generate(img, s)); got != 0 {
		t.Fatalf("sum 76: len = %d, want 0", got)
	}
	img.SetNRGBA(0, 0, color.NRGBA{25, 26, 26, 255})
	if got := len(Generate(img, s)); got != 1 {
		t.Fatalf("sum 77: len = %d, want 1", got)
	}
}

func TestGenerateBottomFade(t *testing.T) {
	const h = 240
	img := blackImage(1, h)
	for y := 0; y < h; y++ {
		img.SetNRGBA(0, y, color.NRGBA{255, 255, 255, 255})
	}
	s := settingsNoReveal()
	s.ParticleDensity = 8 // stride 1
	ps := Generate(img, s)

	fadeStart := float64(h) * config.FieldFadeStart
	for _, p := range ps {
		py := math.Round(float64(h)/2 - p.OriginY*float64(h)/config.FieldWorldWidth)
		want := 1.0
		if py > fadeStart {
			want = math.Pow(1-(py-fadeStart)/(float64(h)-fadeStart), 1.5)
		}
		if math.Abs(p.BaseOpacity-want) > 1e-9 {
			t.Errorf("row %.0f opacity %v, want %v", py, p.BaseOpacity, want)
		}
		if p.BaseOpacity < config.FieldMinOpacity {
			t.Errorf("row %.0f kept with opacity %v", py, p.BaseOpacity)
		}
		if math.Abs(p.Opacity-s.ParticleOpacity*p.BaseOpacity) > 1e-12 {
			t.Errorf("row %.0f applied opacity %v", py, p.Opacity)
		}
	}
	// Only the last row fades below the minimum opacity.
	if len(ps) != h-1 {
		t.Errorf("len = %d, want %d", len(ps), h-1)
	}
}

func TestGenerateEmpty(t *testing.T) {
	if ps := Generate(nil, config.Default()); ps != nil {
		t.Errorf("nil image produced %d particles", len(ps))
	}
	if ps := Generate(image.NewNRGBA(image.Rect(0, 0, 0, 0)), config.Default()); ps != nil {
		t.Errorf("empty image produced %d particles", len(ps))
	}
}

func newTestField(t *testing.T, ps ...Particle) *Field {
	t.Helper()
	pal, err := ParsePalette(config.DefaultPalette)
	if err != nil {
		t.Fatal(err)
	}
	f := NewField(pal, rand.New(rand.NewPCG(7, 11)))
	f.particles = ps
	return f
}

func TestReturnToOriginIsGeometric(t *testing.T) {
	s := settingsNoReveal()
	p := Particle{X: 10, Y: -4, OriginX: 0, OriginY: 0, OriginalScale: 0.3, Scale: 0.9, BaseOpacity: 1}
	f := newTestField(t, p)

	start := math.Hypot(10, -4)
	ptr := NewPointer()
	const frames = 20
	for i := 0; i < frames; i++ {
		f.Update(s, ptr, 1.0/60)
	}
	got := math.Hypot(f.particles[0].X, f.particles[0].Y)
	want := start * math.Pow(1-s.ReturnRate, frames)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("distance after %d frames = %v, want %v", frames, got, want)
	}
	if f.particles[0].Scale != 0.3 {
		t.Errorf("scale = %v, want original 0.3", f.particles[0].Scale)
	}
}

func TestRepulsionPushesAway(t *testing.T) {
	s := settingsNoReveal()
	p := Particle{X: 1, Y: 0, OriginX: 1, OriginY: 0, OriginalScale: 0.3, Scale: 0.3, BaseOpacity: 1}
	f := newTestField(t, p)

	ptr := NewPointer()
	ptr.Set(0, 0)
	f.Update(s, ptr, 1.0/60)

	got := f.particles[0]
	wantX := 1 + (s.MouseRepulsionRadius-1)*s.MouseRepulsionForce
	if math.Abs(got.X-wantX) > 1e-9 || math.Abs(got.Y) > 1e-9 {
		t.Errorf("position = (%v, %v), want (%v, 0)", got.X, got.Y, wantX)
	}
	wantScale := 0.3 * (1 + (s.MouseScaleRadius-1)/s.MouseScaleRadius*s.MouseScaleFactor)
	if math.Abs(got.Scale-wantScale) > 1e-9 {
		t.Errorf("scale = %v, want %v", got.Scale, wantScale)
	}
}

func TestScalingBoundedBetweenOneAndFactor(t *testing.T) {
	s := settingsNoReveal()
	for _, d := range []float64{0, 2.5, 4.99, 5, 5.5, 5.99} {
		k := proximityScale(d, s)
		if k < 1 || k > 1+s.MouseScaleFactor {
			t.Errorf("proximityScale(%v) = %v out of [1, %v]", d, k, 1+s.MouseScaleFactor)
		}
	}
	s.MouseScaleRadius = 0
	if k := proximityScale(0, s); k != 1 {
		t.Errorf("zero radius scale = %v, want 1", k)
	}
}

func TestScalingDisabledKeepsScale(t *testing.T) {
	s := settingsNoReveal()
	s.MouseScaling = false
	p := Particle{X: 1, OriginX: 1, OriginalScale: 0.3, Scale: 0.3, BaseOpacity: 1}
	f := newTestField(t, p)
	ptr := NewPointer()
	ptr.Set(0, 0)
	f.Update(s, ptr, 1.0/60)
	if f.particles[0].Scale != 0.3 {
		t.Errorf("scale = %v, want 0.3", f.particles[0].Scale)
	}
}

func TestRepulsionDisabledReturnsHome(t *testing.T) {
	s := settingsNoReveal()
	s.MouseRepulsion = false
	p := Particle{X: 2, OriginX: 1, OriginalScale: 0.3, Scale: 0.6, BaseOpacity: 1}
	f := newTestField(t, p)
	ptr := NewPointer()
	ptr.Set(1, 0)
	f.Update(s, ptr, 1.0/60)
	if want := 2 + (1-2)*s.ReturnRate; math.Abs(f.particles[0].X-want) > 1e-12 {
		t.Errorf("X = %v, want %v", f.particles[0].X, want)
	}
}

func TestPointerLeaveDisablesRepulsion(t *testing.T) {
	s := settingsNoReveal()
	s.MouseRepulsionRadius = 1e6
	ps := []Particle{
		{X: 0.1, OriginX: 0, OriginalScale: 0.3, Scale: 0.3, BaseOpacity: 1},
		{X: -0.1, Y: 0.2, OriginX: 0, OriginalScale: 0.3, Scale: 0.3, BaseOpacity: 1},
	}
	f := newTestField(t, ps...)

	ptr := NewPointer()
	ptr.Set(0, 0)
	f.Update(s, ptr, 1.0/60)

	ptr.Reset()
	if ptr.Active() {
		t.Fatal("reset pointer still active")
	}
	// The sentinel sits far outside the page's default radius.
	s.MouseRepulsionRadius = config.Default().MouseRepulsionRadius
	before := make([]float64, len(f.particles))
	for i, p := range f.particles {
		before[i] = math.Hypot(p.X-p.OriginX, p.Y-p.OriginY)
	}
	f.Update(s, ptr, 1.0/60)
	for i, p := range f.particles {
		after := math.Hypot(p.X-p.OriginX, p.Y-p.OriginY)
		if after > before[i] {
			t.Errorf("particle %d moved away after pointer left: %v -> %v", i, before[i], after)
		}
		if p.Scale != p.OriginalScale {
			t.Errorf("particle %d scale %v, want %v", i, p.Scale, p.OriginalScale)
		}
	}
}

func TestInactivePointerNeverRepels(t *testing.T) {
	s := settingsNoReveal()
	// Large enough to reach the sentinel from the origin.
	s.MouseRepulsionRadius = 20000
	p := Particle{OriginalScale: 0.3, Scale: 0.3, BaseOpacity: 1}
	f := newTestField(t, p)

	f.Update(s, NewPointer(), 1.0/60)
	got := f.particles[0]
	if got.X != 0 || got.Y != 0 {
		t.Errorf("inactive pointer moved particle to (%v, %v)", got.X, got.Y)
	}
	if got.Scale != got.OriginalScale {
		t.Errorf("inactive pointer scaled particle to %v", got.Scale)
	}
}

func TestColorTransitionConverges(t *testing.T) {
	s := settingsNoReveal()
	f := newTestField(t, Particle{Color: white, BaseOpacity: 1}, Particle{X: 3, OriginX: 3, Color: white, BaseOpacity: 1})

	f.TriggerColorChange()
	if !f.Palette().Active() {
		t.Fatal("transition not active after trigger")
	}
	if f.Palette().Index() == 0 {
		t.Fatal("trigger kept the current colour")
	}
	target := f.Palette().Target()

	ptr := NewPointer()
	for i := 0; i < 1000 && f.Palette().Active(); i++ {
		f.Update(s, ptr, 1.0/60)
	}
	if f.Palette().Active() {
		t.Fatal("transition never cleared")
	}
	for i, p := range f.particles {
		if p.Color != target {
			t.Errorf("particle %d colour %v, want %v", i, p.Color, target)
		}
	}
}

func TestTriggerNeverRepeatsColour(t *testing.T) {
	f := newTestField(t)
	prev := f.Palette().Index()
	for i := 0; i < 50; i++ {
		f.TriggerColorChange()
		if f.Palette().Index() == prev {
			t.Fatalf("trigger %d repeated index %d", i, prev)
		}
		prev = f.Palette().Index()
	}
}

func TestParsePalette(t *testing.T) {
	if _, err := ParsePalette([]string{"#ff0000", "nope"}); err == nil {
		t.Error("expected error for bad hex")
	}
	p, err := ParsePalette([]string{"#00ff00"})
	if err != nil {
		t.Fatal(err)
	}
	p.Next(rand.New(rand.NewPCG(1, 1)))
	if !p.Active() || p.Index() != 0 {
		t.Errorf("single-colour palette: active=%v index=%d", p.Active(), p.Index())
	}
	var empty Palette
	empty.Next(nil)
	if empty.Active() {
		t.Error("empty palette became active")
	}
}

func TestColorCycle(t *testing.T) {
	s := settingsNoReveal()
	s.ColorCycleSeconds = 0.5
	f := newTestField(t)
	ptr := NewPointer()
	for i := 0; i < 29; i++ {
		f.Update(s, ptr, 1.0/60)
	}
	if f.Palette().Active() {
		t.Fatal("cycle fired early")
	}
	f.Update(s, ptr, 1.0/60)
	f.Update(s, ptr, 1.0/60)
	if f.Palette().Index() == 0 {
		t.Error("cycle did not move to a new colour")
	}
}

func TestRevealFadesIn(t *testing.T) {
	s := config.Default()
	s.RevealSeconds = 1
	img := blackImage(16, 16)
	img.SetNRGBA(8, 8, color.NRGBA{255, 255, 255, 255})

	f := newTestField(t)
	f.Load(img, s)
	if f.Len() != 1 {
		t.Fatalf("Len = %d, want 1", f.Len())
	}
	ptr := NewPointer()
	f.Update(s, ptr, 0.1)
	early := f.Particles()[0].Opacity
	if early <= 0 || early >= s.ParticleOpacity {
		t.Errorf("opacity during reveal = %v", early)
	}
	for i := 0; i < 20; i++ {
		f.Update(s, ptr, 0.1)
	}
	if got := f.Particles()[0].Opacity; math.Abs(got-s.ParticleOpacity) > 1e-9 {
		t.Errorf("opacity after reveal = %v, want %v", got, s.ParticleOpacity)
	}
	if f.RevealLevel() != 1 {
		t.Errorf("RevealLevel = %v", f.RevealLevel())
	}
}

func TestResampleKeepsReachedColour(t *testing.T) {
	s := settingsNoReveal()
	img := blackImage(16, 16)
	img.SetNRGBA(8, 8, color.NRGBA{255, 255, 255, 255})
	img.SetNRGBA(0, 8, color.NRGBA{200, 200, 200, 255})

	f := newTestField(t)
	f.Load(img, s)
	f.TriggerColorChange()
	target := f.Palette().Target()
	ptr := NewPointer()
	for i := 0; i < 1000 && f.Palette().Active(); i++ {
		f.Update(s, ptr, 1.0/60)
	}
	if f.Palette().Active() {
		t.Fatal("transition never cleared")
	}

	s.ParticleSize = 0.6
	f.Resample(img, s)
	for i := 0; i < 100; i++ {
		f.Update(s, ptr, 1.0/60)
	}
	if f.Len() != 2 {
		t.Fatalf("Len = %d, want 2", f.Len())
	}
	for i, p := range f.Particles() {
		if p.Color != target {
			t.Errorf("particle %d colour %s after resample, want %s", i, p.Color.Hex(), target.Hex())
		}
	}

	f.Load(img, s)
	if got := f.Particles()[0].Color; got != target {
		t.Errorf("Load colour %s, want %s", got.Hex(), target.Hex())
	}
}

func TestResampleDoesNotReplayReveal(t *testing.T) {
	s := config.Default()
	s.RevealSeconds = 1
	img := blackImage(16, 16)
	img.SetNRGBA(8, 8, color.NRGBA{255, 255, 255, 255})

	f := newTestField(t)
	f.Load(img, s)
	ptr := NewPointer()
	for i := 0; i < 20; i++ {
		f.Update(s, ptr, 0.1)
	}
	if f.RevealLevel() != 1 {
		t.Fatalf("RevealLevel = %v after reveal", f.RevealLevel())
	}

	s.ParticleDensity = 2
	f.Resample(img, s)
	f.Update(s, ptr, 1.0/60)
	if f.RevealLevel() != 1 {
		t.Errorf("RevealLevel = %v after resample, want 1", f.RevealLevel())
	}
	if got := f.Particles()[0].Opacity; math.Abs(got-s.ParticleOpacity) > 1e-9 {
		t.Errorf("opacity after resample = %v, want %v", got, s.ParticleOpacity)
	}

	f.Load(img, s)
	if f.RevealLevel() != 0 {
		t.Errorf("RevealLevel = %v after Load, want 0", f.RevealLevel())
	}
}

func TestEmptyFieldIsInert(t *testing.T) {
	f := newTestField(t)
	f.Update(config.Default(), NewPointer(), 1.0/60)
	if f.Len() != 0 {
		t.Errorf("Len = %d", f.Len())
	}
}
