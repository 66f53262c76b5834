package particles

import "github.com/iburimskiy/portfolio-landing/internal/config"

// Pointer is the last known pointer position over the particle viewport on
// the world z=0 plane. A pointer that has left the viewport sits at a far
// sentinel and is inactive.
type Pointer struct {
	WorldX, WorldY float64
}

// NewPointer returns a pointer parked at the sentinel.
func NewPointer() Pointer {
	var p Pointer
	p.Reset()
	return p
}

// Set records a pointer position.
func (p *Pointer) Set(worldX, worldY float64) {
	p.WorldX, p.WorldY = worldX, worldY
}

// Reset parks the pointer at the sentinel.
func (p *Pointer) Reset() {
	p.WorldX, p.WorldY = config.PointerSentinel, config.PointerSentinel
}

// Active reports whether the pointer is over the viewport.
func (p Pointer) Active() bool {
	return p.WorldX != config.PointerSentinel || p.WorldY != config.PointerSentinel
}
