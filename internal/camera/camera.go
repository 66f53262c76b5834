// Package camera is the perspective camera shared by both viewports: it
// turns screen positions into rays and world points on the z=0 plane, and
// projects world points back onto the screen.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	near = 0.1
	far  = 1000.0
)

// Ray is a half-line in world space. Dir is normalised.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// PlaneZ intersects the ray with the plane z = 0 and returns the hit point.
// ok is false when the ray is parallel to the plane or points away from it.
func (r Ray) PlaneZ() (x, y float64, ok bool) {
	if r.Dir.Z() == 0 {
		return 0, 0, false
	}
	t := -r.Origin.Z() / r.Dir.Z()
	if t < 0 {
		return 0, 0, false
	}
	p := r.Origin.Add(r.Dir.Mul(t))
	return p.X(), p.Y(), true
}

// Camera looks down -Z from (0, 0, Distance) at the origin.
type Camera struct {
	FOV      float64 // vertical field of view in degrees
	Distance float64

	width, height int
	view, proj    mgl64.Mat4
	inv           mgl64.Mat4
}

// New returns a camera for a 1x1 viewport; call Resize before use.
func New(fovDegrees, distance float64) *Camera {
	c := &Camera{FOV: fovDegrees, Distance: distance, width: 1, height: 1}
	c.update()
	return c
}

// Resize sets the viewport size in pixels and recomputes the aspect ratio.
// Non-positive sizes are ignored.
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height
	c.update()
}

// SetDistance moves the camera along Z.
func (c *Camera) SetDistance(z float64) {
	c.Distance = z
	c.update()
}

// Size returns the viewport size in pixels.
func (c *Camera) Size() (int, int) {
	return c.width, c.height
}

// Aspect is width over height.
func (c *Camera) Aspect() float64 {
	return float64(c.width) / float64(c.height)
}

func (c *Camera) update() {
	eye := mgl64.Vec3{0, 0, c.Distance}
	c.view = mgl64.LookAtV(eye, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0})
	c.proj = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect(), near, far)
	c.inv = c.proj.Mul4(c.view).Inv()
}

// NDC converts viewport pixel coordinates to normalised device coordinates
// (x right, y up, both in [-1, 1] inside the viewport).
func (c *Camera) NDC(sx, sy float64) (float64, float64) {
	return sx/float64(c.width)*2 - 1, -(sy/float64(c.height))*2 + 1
}

// Ray returns the pick ray through the given NDC point.
func (c *Camera) Ray(ndcX, ndcY float64) Ray {
	nearPoint := c.inv.Mul4x1(mgl64.Vec4{ndcX, ndcY, -1, 1})
	farPoint := c.inv.Mul4x1(mgl64.Vec4{ndcX, ndcY, 1, 1})
	nearPoint = nearPoint.Mul(1 / nearPoint.W())
	farPoint = farPoint.Mul(1 / farPoint.W())

	origin := mgl64.Vec3{0, 0, c.Distance}
	dir := farPoint.Vec3().Sub(nearPoint.Vec3()).Normalize()
	return Ray{Origin: origin, Dir: dir}
}

// UnprojectToPlane maps an NDC point to the world point on z = 0 under it.
func (c *Camera) UnprojectToPlane(ndcX, ndcY float64) (x, y float64, ok bool) {
	return c.Ray(ndcX, ndcY).PlaneZ()
}

// Project maps a world point to viewport pixel coordinates.
func (c *Camera) Project(x, y, z float64) (float64, float64) {
	clip := c.proj.Mul4(c.view).Mul4x1(mgl64.Vec4{x, y, z, 1})
	if clip.W() == 0 {
		return math.Inf(1), math.Inf(1)
	}
	nx, ny := clip.X()/clip.W(), clip.Y()/clip.W()
	return (nx + 1) / 2 * float64(c.width), (1 - ny) / 2 * float64(c.height)
}

// PixelsPerUnit is the on-screen size in pixels of one world unit lying on
// the z = 0 plane.
func (c *Camera) PixelsPerUnit() float64 {
	visible := 2 * math.Tan(mgl64.DegToRad(c.FOV)/2) * c.Distance
	if visible == 0 {
		return 0
	}
	return float64(c.height) / visible
}
