// Package devpanel is the in-window settings panel. Every row is bound to a
// field of config.Settings; edits are queued on the config.Store and take
// effect on the next frame.
package devpanel

import (
	"fmt"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/iburimskiy/portfolio-landing/internal/config"
)

// Kind selects how a row is edited.
type Kind uint8

const (
	Number Kind = iota // slider between Min and Max
	Toggle             // on/off switch
)

// Row is one editable setting. The range is a UI hint: the panel keeps its
// own edits inside it but accepts whatever value it finds.
type Row struct {
	Folder   string
	Label    string
	Kind     Kind
	Min, Max float64
	Number   func(*config.Settings) *float64
	Flag     func(*config.Settings) *bool
}

// Step is the slider increment: one hundredth of the range.
func (r Row) Step() float64 {
	return (r.Max - r.Min) / 100
}

// Rows lists the panel contents, grouped by folder.
func Rows() []Row {
	num := func(folder, label string, min, max float64, f func(*config.Settings) *float64) Row {
		return Row{Folder: folder, Label: label, Kind: Number, Min: min, Max: max, Number: f}
	}
	flag := func(folder, label string, f func(*config.Settings) *bool) Row {
		return Row{Folder: folder, Label: label, Kind: Toggle, Flag: f}
	}
	return []Row{
		num("Particle Appearance", "Size", 0.1, 1, func(s *config.Settings) *float64 { return &s.ParticleSize }),
		num("Particle Appearance", "Opacity", 0, 1, func(s *config.Settings) *float64 { return &s.ParticleOpacity }),
		num("Particle Appearance", "Density", 0.1, 2, func(s *config.Settings) *float64 { return &s.ParticleDensity }),
		num("Particle Appearance", "Return Rate", 0.01, 0.5, func(s *config.Settings) *float64 { return &s.ReturnRate }),

		flag("Mouse Interaction", "Enable Repulsion", func(s *config.Settings) *bool { return &s.MouseRepulsion }),
		num("Mouse Interaction", "Repulsion Radius", 1, 10, func(s *config.Settings) *float64 { return &s.MouseRepulsionRadius }),
		num("Mouse Interaction", "Repulsion Force", 0, 0.5, func(s *config.Settings) *float64 { return &s.MouseRepulsionForce }),
		flag("Mouse Interaction", "Enable Scaling", func(s *config.Settings) *bool { return &s.MouseScaling }),
		num("Mouse Interaction", "Scale Radius", 1, 10, func(s *config.Settings) *float64 { return &s.MouseScaleRadius }),
		num("Mouse Interaction", "Scale Factor", 0, 3, func(s *config.Settings) *float64 { return &s.MouseScaleFactor }),

		num("Animation", "Color Speed", 0.01, 0.2, func(s *config.Settings) *float64 { return &s.ColorTransitionSpeed }),
		num("Animation", "Color Cycle (s)", 0, 30, func(s *config.Settings) *float64 { return &s.ColorCycleSeconds }),
		num("Animation", "Rotation Speed", 0.001, 0.01, func(s *config.Settings) *float64 { return &s.RotationSpeed }),
		num("Animation", "Rotation Range", 0, 0.5, func(s *config.Settings) *float64 { return &s.RotationRange }),
		num("Animation", "Float Speed", 0, 0.01, func(s *config.Settings) *float64 { return &s.FloatSpeed }),

		num("Camera Zoom", "Landscape Zoom (width > height)", 0.5, 2, func(s *config.Settings) *float64 { return &s.DesktopZoom }),
		num("Camera Zoom", "Portrait Zoom (width <= height)", 0.5, 2, func(s *config.Settings) *float64 { return &s.MobileZoom }),

		flag("Global", "Show Borders", func(s *config.Settings) *bool { return &s.ShowBorders }),

		num("About Me Animation", "Expanded Height", 0, 50, func(s *config.Settings) *float64 { return &s.AboutMeExpandedHeight }),
		num("About Me Animation", "Collapsed Radius", 0, 5, func(s *config.Settings) *float64 { return &s.AboutMeCollapsedRadius }),
		num("About Me Animation", "Expanded Radius", 0, 10, func(s *config.Settings) *float64 { return &s.AboutMeExpandedRadius }),
		num("About Me Animation", "Animation Speed", 0.01, 0.5, func(s *config.Settings) *float64 { return &s.AboutMeAnimationSpeed }),
	}
}

// Panel tracks the selected row and the highlight left by the last edit.
type Panel struct {
	rows    []Row
	store   *config.Store
	cursor  int
	visible bool

	flash      *gween.Tween
	flashLevel float64
}

// New returns a hidden panel editing store.
func New(store *config.Store) *Panel {
	return &Panel{rows: Rows(), store: store}
}

// Rows returns the panel rows.
func (p *Panel) Rows() []Row { return p.rows }

// Visible reports whether the panel is shown.
func (p *Panel) Visible() bool { return p.visible }

// ToggleVisible shows or hides the panel.
func (p *Panel) ToggleVisible() { p.visible = !p.visible }

// Cursor is the selected row index.
func (p *Panel) Cursor() int { return p.cursor }

// Move shifts the selection by delta rows, wrapping at both ends.
func (p *Panel) Move(delta int) {
	n := len(p.rows)
	if n == 0 {
		return
	}
	p.cursor = ((p.cursor+delta)%n + n) % n
}

// Adjust edits the selected row: numbers move by steps increments and stay
// inside the row range, toggles flip regardless of steps.
func (p *Panel) Adjust(steps int) {
	if len(p.rows) == 0 || steps == 0 {
		return
	}
	row := p.rows[p.cursor]
	switch row.Kind {
	case Toggle:
		p.store.Update(func(s *config.Settings) {
			f := row.Flag(s)
			*f = !*f
		})
	case Number:
		p.store.Update(func(s *config.Settings) {
			v := row.Number(s)
			*v = math.Min(row.Max, math.Max(row.Min, *v+float64(steps)*row.Step()))
		})
	}
	p.flash = gween.New(1, 0, 0.4, ease.OutCubic)
	p.flashLevel = 1
}

// Update advances the edit highlight by dt seconds.
func (p *Panel) Update(dt float64) {
	if p.flash == nil {
		return
	}
	v, done := p.flash.Update(float32(dt))
	p.flashLevel = float64(v)
	if done {
		p.flash = nil
		p.flashLevel = 0
	}
}

// Flash is the highlight strength of the selected row in [0, 1].
func (p *Panel) Flash() float64 { return p.flashLevel }

// Lines renders the panel as text, one entry per line, folder headings
// included. The selected row is prefixed with '>'.
func (p *Panel) Lines(s config.Settings) []string {
	var out []string
	folder := ""
	for i, row := range p.rows {
		if row.Folder != folder {
			folder = row.Folder
			out = append(out, "["+folder+"]")
		}
		mark := "  "
		if i == p.cursor {
			mark = "> "
		}
		out = append(out, mark+row.Label+": "+row.Format(&s))
	}
	return out
}

// Format renders the row's current value.
func (r Row) Format(s *config.Settings) string {
	switch r.Kind {
	case Toggle:
		if *r.Flag(s) {
			return "on"
		}
		return "off"
	default:
		return fmt.Sprintf("%.4g", *r.Number(s))
	}
}
