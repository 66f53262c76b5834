package game

import (
	"image"

	"github.com/iburimskiy/portfolio-landing/internal/camera"
)

// viewport is one rendering surface: a window region and its camera.
type viewport struct {
	rect image.Rectangle
	cam  *camera.Camera
}

func newViewport(fov, distance float64) *viewport {
	return &viewport{cam: camera.New(fov, distance)}
}

// resize moves the viewport to r and updates the camera aspect.
func (v *viewport) resize(r image.Rectangle) {
	v.rect = r
	v.cam.Resize(r.Dx(), r.Dy())
}

func (v *viewport) contains(x, y int) bool {
	return image.Pt(x, y).In(v.rect)
}

// ndc converts window pixels to the viewport's device coordinates.
func (v *viewport) ndc(x, y int) (float64, float64) {
	return v.cam.NDC(float64(x-v.rect.Min.X), float64(y-v.rect.Min.Y))
}

// ray is the pick ray under a window pixel.
func (v *viewport) ray(x, y int) camera.Ray {
	return v.cam.Ray(v.ndc(x, y))
}

// screen projects a world point on z=0 to window pixels.
func (v *viewport) screen(wx, wy float64) (float64, float64) {
	sx, sy := v.cam.Project(wx, wy, 0)
	return sx + float64(v.rect.Min.X), sy + float64(v.rect.Min.Y)
}

// splitWindow gives the particle field and the menu half of the window
// each: side by side in landscape, stacked in portrait.
func splitWindow(width, height int) (field, menu image.Rectangle) {
	if width > height {
		mid := width / 2
		return image.Rect(0, 0, mid, height), image.Rect(mid, 0, width, height)
	}
	mid := height / 2
	return image.Rect(0, 0, width, mid), image.Rect(0, mid, width, height)
}
