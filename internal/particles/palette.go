package particles

import (
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Palette is the list of colours a colour transition can head towards,
// plus the transition state.
type Palette struct {
	colors []colorful.Color
	index  int
	active bool
}

// ParsePalette parses "#rrggbb" colours.
func ParsePalette(hex []string) (Palette, error) {
	p := Palette{colors: make([]colorful.Color, 0, len(hex))}
	for i, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return Palette{}, errors.Wrapf(err, "palette entry %d", i)
		}
		p.colors = append(p.colors, c)
	}
	return p, nil
}

// Len returns the number of colours.
func (p *Palette) Len() int { return len(p.colors) }

// Index is the current target index.
func (p *Palette) Index() int { return p.index }

// Active reports whether a transition is in progress.
func (p *Palette) Active() bool { return p.active }

// Target is the colour the current transition heads towards.
func (p *Palette) Target() colorful.Color {
	if len(p.colors) == 0 {
		return white
	}
	return p.colors[p.index]
}

// Next picks a random index different from the current one and starts a
// transition towards it. A palette with a single colour transitions to it;
// an empty palette does nothing.
func (p *Palette) Next(rng *rand.Rand) {
	switch len(p.colors) {
	case 0:
		return
	case 1:
		p.index = 0
	default:
		next := p.index
		for next == p.index {
			next = rng.IntN(len(p.colors))
		}
		p.index = next
	}
	p.active = true
}

func (p *Palette) finish() { p.active = false }
