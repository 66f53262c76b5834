package billboard

import (
	"github.com/iburimskiy/portfolio-landing/internal/camera"
	"github.com/iburimskiy/portfolio-landing/internal/config"
)

// ClickFunc receives the label of a clicked billboard.
type ClickFunc func(label string)

// Menu owns every billboard of the menu viewport. An empty menu (fonts not
// loaded yet) ignores all input.
type Menu struct {
	billboards []*Billboard
	onClick    ClickFunc
}

// NewMenu lays out entries and wires the click callback, which may be nil.
func NewMenu(entries []Entry, m Measurer, s config.Settings, onClick ClickFunc) *Menu {
	return &Menu{
		billboards: Layout(entries, m, s),
		onClick:    onClick,
	}
}

// Billboards returns the billboards in entry order.
func (m *Menu) Billboards() []*Billboard { return m.billboards }

// Update advances every billboard by one frame.
func (m *Menu) Update(now float64, s config.Settings) {
	for _, b := range m.billboards {
		b.Step(now, s)
	}
}

// Pick returns the index of the first billboard under the ray, or -1.
func (m *Menu) Pick(r camera.Ray) int {
	x, y, ok := r.PlaneZ()
	if !ok {
		return -1
	}
	for i, b := range m.billboards {
		if b.Hit(x, y) {
			return i
		}
	}
	return -1
}

// Hover updates every billboard's hover flag from the ray and reports
// whether any flag changed.
func (m *Menu) Hover(r camera.Ray) bool {
	x, y, ok := r.PlaneZ()
	changed := false
	for _, b := range m.billboards {
		hovered := ok && b.Hit(x, y)
		if hovered != b.Hovered {
			b.Hovered = hovered
			changed = true
		}
	}
	return changed
}

// Leave clears hover on every billboard.
func (m *Menu) Leave() {
	for _, b := range m.billboards {
		b.Hovered = false
	}
}

// Click applies a click or tap along the ray. On a hit the hit billboard
// toggles if it can expand, every other billboard collapses and the
// callback receives the label. A miss collapses everything and does not
// call back.
func (m *Menu) Click(r camera.Ray) (label string, hit bool) {
	idx := m.Pick(r)
	for i, b := range m.billboards {
		if i == idx {
			b.toggle()
		} else {
			b.collapse()
		}
	}
	if idx < 0 {
		return "", false
	}
	label = m.billboards[idx].Label()
	if m.onClick != nil {
		m.onClick(label)
	}
	return label, true
}

// Tap is the end of a touch: a click at the lift-off point followed by a
// pointer leave, since a finger does not keep hovering.
func (m *Menu) Tap(r camera.Ray) (label string, hit bool) {
	label, hit = m.Click(r)
	m.Leave()
	return label, hit
}

// ExpandedCount returns how many billboards are Expanded.
func (m *Menu) ExpandedCount() int {
	n := 0
	for _, b := range m.billboards {
		if b.Expanded() {
			n++
		}
	}
	return n
}

// Hovered returns the first hovered billboard, or nil.
func (m *Menu) Hovered() *Billboard {
	for _, b := range m.billboards {
		if b.Hovered {
			return b
		}
	}
	return nil
}
