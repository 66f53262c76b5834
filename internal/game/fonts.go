package game

import (
	"bytes"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/iburimskiy/portfolio-landing/internal/billboard"
)

// pxPerUnit is the resolution text is rasterised at: one world unit of font
// size becomes this many pixels before the viewport scales it down.
const pxPerUnit = 32.0

type faceKey struct {
	size float64
	bold bool
}

// fonts is the regular/bold pair used by the billboards. It measures in
// world units and hands out faces at the rasterisation resolution.
type fonts struct {
	regular *text.GoTextFaceSource
	bold    *text.GoTextFaceSource
	faces   map[faceKey]*text.GoTextFace
}

func loadFonts() (*fonts, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, errors.Wrap(err, "load regular font")
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, errors.Wrap(err, "load bold font")
	}
	return &fonts{regular: regular, bold: bold, faces: map[faceKey]*text.GoTextFace{}}, nil
}

// face returns the face for a world-unit font size.
func (f *fonts) face(size float64, bold bool) *text.GoTextFace {
	key := faceKey{size, bold}
	if face, ok := f.faces[key]; ok {
		return face
	}
	src := f.regular
	if bold {
		src = f.bold
	}
	face := &text.GoTextFace{Source: src, Size: size * pxPerUnit}
	f.faces[key] = face
	return face
}

// lineSpacing is the baseline-to-baseline distance in pixels.
func lineSpacing(face *text.GoTextFace) float64 {
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// Measure implements billboard.Measurer.
func (f *fonts) Measure(s string, size float64, bold bool) billboard.Metrics {
	face := f.face(size, bold)
	spacing := lineSpacing(face)
	w, _ := text.Measure(s, face, spacing)
	ascent := face.Metrics().HAscent
	lines := strings.Count(s, "\n") + 1
	return billboard.Metrics{
		Width:  w / pxPerUnit,
		Height: (ascent + float64(lines-1)*spacing) / pxPerUnit,
		Top:    ascent / pxPerUnit,
	}
}
