package camera

import (
	"math"
	"testing"
)

const eps = 1e-6

func near2(a, b float64) bool { return math.Abs(a-b) < eps }

func TestNDC(t *testing.T) {
	c := New(45, 100)
	c.Resize(800, 600)

	tests := []struct {
		sx, sy, wantX, wantY float64
	}{
		{0, 0, -1, 1},
		{800, 600, 1, -1},
		{400, 300, 0, 0},
		{200, 450, -0.5, -0.5},
	}
	for _, tt := range tests {
		x, y := c.NDC(tt.sx, tt.sy)
		if !near2(x, tt.wantX) || !near2(y, tt.wantY) {
			t.Errorf("NDC(%v, %v) = (%v, %v), want (%v, %v)", tt.sx, tt.sy, x, y, tt.wantX, tt.wantY)
		}
	}
}

func TestUnprojectCentreHitsOrigin(t *testing.T) {
	c := New(45, 100)
	c.Resize(1280, 720)

	x, y, ok := c.UnprojectToPlane(0, 0)
	if !ok {
		t.Fatal("centre ray missed the plane")
	}
	if !near2(x, 0) || !near2(y, 0) {
		t.Errorf("centre = (%v, %v), want origin", x, y)
	}
}

func TestUnprojectTopEdgeMatchesFrustum(t *testing.T) {
	c := New(45, 100)
	c.Resize(1000, 1000)

	_, y, ok := c.UnprojectToPlane(0, 1)
	if !ok {
		t.Fatal("top ray missed the plane")
	}
	want := math.Tan(45*math.Pi/180/2) * 100
	if math.Abs(y-want) > 1e-4 {
		t.Errorf("top edge y = %v, want %v", y, want)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	c := New(45, 50)
	c.Resize(640, 480)

	for _, p := range [][2]float64{{0, 0}, {5, -3}, {-12.5, 8}} {
		sx, sy := c.Project(p[0], p[1], 0)
		nx, ny := c.NDC(sx, sy)
		x, y, ok := c.UnprojectToPlane(nx, ny)
		if !ok {
			t.Fatalf("ray through %v missed", p)
		}
		if math.Abs(x-p[0]) > 1e-6 || math.Abs(y-p[1]) > 1e-6 {
			t.Errorf("round trip %v -> (%v, %v)", p, x, y)
		}
	}
}

func TestPixelsPerUnit(t *testing.T) {
	c := New(90, 10)
	c.Resize(400, 200)
	// tan(45deg) * 10 * 2 = 20 visible units over 200 px.
	if got := c.PixelsPerUnit(); !near2(got, 10) {
		t.Errorf("PixelsPerUnit = %v, want 10", got)
	}
	c.SetDistance(20)
	if got := c.PixelsPerUnit(); !near2(got, 5) {
		t.Errorf("after SetDistance PixelsPerUnit = %v, want 5", got)
	}
}

func TestResizeIgnoresEmpty(t *testing.T) {
	c := New(45, 100)
	c.Resize(300, 200)
	c.Resize(0, 100)
	if w, h := c.Size(); w != 300 || h != 200 {
		t.Errorf("Size = %dx%d, want 300x200", w, h)
	}
}

func TestRayParallelMisses(t *testing.T) {
	r := Ray{}
	r.Origin[2] = 10
	r.Dir[0] = 1
	if _, _, ok := r.PlaneZ(); ok {
		t.Error("parallel ray reported a hit")
	}
}
