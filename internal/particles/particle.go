// Package particles builds the portrait particle field and animates it:
// pointer repulsion, proximity scaling, return-to-rest easing and colour
// transitions.
package particles

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/portfolio-landing/internal/config"
)

var white = colorful.Color{R: 1, G: 1, B: 1}

// Particle is one point sprite sampled from the portrait.
type Particle struct {
	X, Y                 float64 // current world position
	OriginX, OriginY     float64 // rest position
	Scale, OriginalScale float64 // sprite size in world units
	Brightness           float64
	BaseOpacity          float64 // vertical fade factor in [0, 1]
	Opacity              float64 // applied opacity for the current frame
	Color                colorful.Color
}

// Spacing is the sampling stride in pixels for a density setting. A
// density that makes the stride infinite or undefined samples only the
// first pixel.
func Spacing(density float64) int {
	v := math.Max(1, math.Floor(config.FieldBaseSpacing/density))
	if math.IsNaN(v) || math.IsInf(v, 0) || v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}

// Generate samples img and returns one particle per pixel that is bright
// enough and not faded out. Positions are centred on the world origin and
// scaled to config.FieldWorldWidth.
func Generate(img image.Image, s config.Settings) []Particle {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	spacing := Spacing(s.ParticleDensity)
	scaleX := config.FieldWorldWidth / float64(w)
	scaleY := config.FieldWorldWidth / float64(h)
	fadeStart := float64(h) * config.FieldFadeStart

	var out []Particle
	for py := 0; py < h; py += spacing {
		for px := 0; px < w; px += spacing {
			brightness := pixelBrightness(img.At(b.Min.X+px, b.Min.Y+py))
			if brightness <= config.FieldBrightnessCutoff {
				continue
			}

			fade := 1.0
			if y := float64(py); y > fadeStart {
				progress := (y - fadeStart) / (float64(h) - fadeStart)
				fade = math.Pow(1-progress, config.FieldFadeExponent)
			}
			if fade < config.FieldMinOpacity {
				continue
			}

			x := (float64(px) - float64(w)/2) * scaleX
			y := -(float64(py) - float64(h)/2) * scaleY
			scale := brightness * s.ParticleSize
			out = append(out, Particle{
				X: x, Y: y,
				OriginX: x, OriginY: y,
				Scale: scale, OriginalScale: scale,
				Brightness:  brightness,
				BaseOpacity: fade,
				Opacity:     s.ParticleOpacity * fade,
				Color:       white,
			})
		}
	}
	return out
}

// pixelBrightness is the mean of the straight-alpha 8-bit RGB channels on a
// 0-1 scale.
func pixelBrightness(c color.Color) float64 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return (float64(n.R) + float64(n.G) + float64(n.B)) / 765
}
