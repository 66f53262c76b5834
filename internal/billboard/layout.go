package billboard

import (
	"math"

	"github.com/iburimskiy/portfolio-landing/internal/config"
)

// AboutMeText is the biography revealed inside the expanded About Me panel.
const AboutMeText = "August Graham is a multimedia artist\n" +
	"based in Brooklyn building interactive\n" +
	"and immersive experiences for musicians,\n" +
	"brands, and beyond."

// Entry is the static description of one billboard. Column may be
// fractional or negative to sit left or right of centre.
type Entry struct {
	Text       string
	Size       float64
	Row        int
	Column     float64
	Expandable bool
	Detail     string
}

// DefaultEntries is the landing page menu.
func DefaultEntries() []Entry {
	return []Entry{
		{Text: "August Graham", Size: 2.5, Row: 0, Column: 0},
		{Text: "About Me", Size: 2, Row: 1, Column: -0.5, Expandable: true, Detail: AboutMeText},
		{Text: "Projects", Size: 2, Row: 1, Column: 0.5},
		{Text: "Contact", Size: 2, Row: 2, Column: 0},
	}
}

// Metrics is the bounding box of a rendered string in world units. Top is
// the distance from the baseline of the first line to the top of the box.
type Metrics struct {
	Width, Height, Top float64
}

// Measurer measures text for layout.
type Measurer interface {
	Measure(text string, size float64, bold bool) Metrics
}

// rowSpacing is the gap left below row r.
func rowSpacing(r int) float64 {
	if r >= 0 && r < len(config.RowSpacings) {
		return config.RowSpacings[r]
	}
	return config.BillboardSpacing
}

// Layout places every entry and returns its billboard, collapsed and
// resting at its base position.
func Layout(entries []Entry, m Measurer, s config.Settings) []*Billboard {
	rowHeights := map[int]float64{}
	for _, e := range entries {
		h := m.Measure(e.Text, e.Size, false).Height
		if cur, ok := rowHeights[e.Row]; !ok || h > cur {
			rowHeights[e.Row] = h
		}
	}

	out := make([]*Billboard, 0, len(entries))
	for i, e := range entries {
		regular := m.Measure(e.Text, e.Size, false)
		bold := m.Measure(e.Text, e.Size, true)
		textWidth := math.Max(regular.Width, bold.Width)
		textHeight := math.Max(regular.Height, bold.Height)

		y := config.BillboardStartY
		for row := 0; row < e.Row; row++ {
			y -= rowHeights[row]
			y -= rowSpacing(row)
		}
		x := e.Column * (textWidth + config.HorizontalSpacing)

		boxWidth := textWidth + config.BillboardPadding*2
		boxHeight := textHeight + config.BillboardPadding*2

		b := &Billboard{
			Entry:          e,
			Index:          i,
			BaseX:          x,
			BaseY:          y,
			X:              x,
			Y:              y,
			TextWidth:      textWidth,
			TextHeight:     textHeight,
			TitleWidth:     regular.Width,
			TitleTop:       regular.Top,
			BoxWidth:       boxWidth,
			BoxHeight:      boxHeight,
			ExpandedWidth:  boxWidth,
			Width:          boxWidth,
			Height:         boxHeight,
			Radius:         s.AboutMeCollapsedRadius,
			TargetWidth:    boxWidth,
			TargetHeight:   boxHeight,
			TargetRadius:   s.AboutMeCollapsedRadius,
			RotationOffset: float64(i) * (math.Pi / 8),
		}
		if e.Expandable && e.Detail != "" {
			detail := m.Measure(e.Detail, config.DetailTextSize, false)
			b.DetailWidth = detail.Width
			b.ExpandedWidth = math.Max(boxWidth, detail.Width+2*config.BillboardPadding+config.DetailExtraPadding)
		}
		b.rebuild()
		out = append(out, b)
	}
	return out
}
