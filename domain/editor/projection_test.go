package editor

import (
	"math"
	"testing"
)

func TestProjection_RoundTrip(t *testing.T) {
	p := Projection{
		IntrinsicW: 1280, IntrinsicH: 720,
		Rendered: DisplayRect{X: 24, Y: 48, W: 640, H: 360},
	}
	for _, pt := range []Point{
		{X: 24, Y: 48},
		{X: 24 + 640, Y: 48 + 360},
		{X: 300, Y: 200},
		{X: 123.5, Y: 77.25},
	} {
		back := p.toDisplayPoint(p.ToSurface(pt))
		if math.Abs(back.X-pt.X) > 1e-6 || math.Abs(back.Y-pt.Y) > 1e-6 {
			t.Fatalf("round trip %+v -> %+v", pt, back)
		}
	}
}

func TestProjection_ToSurfaceClamps(t *testing.T) {
	p := Projection{
		IntrinsicW: 200, IntrinsicH: 100,
		Rendered: DisplayRect{X: 0, Y: 0, W: 400, H: 200},
	}
	s := p.ToSurface(Point{X: -50, Y: 500})
	if s.X != 0 || s.Y != 100 {
		t.Fatalf("expected clamp to surface bounds, got %+v", s)
	}
}

func TestProjection_ToDisplayScales(t *testing.T) {
	p := Projection{
		IntrinsicW: 100, IntrinsicH: 100,
		Rendered: DisplayRect{X: 10, Y: 20, W: 200, H: 200},
	}
	d := p.ToDisplay(Region{X: 10, Y: 10, W: 50, H: 40})
	want := DisplayRect{X: 30, Y: 40, W: 100, H: 80}
	if math.Abs(d.X-want.X) > 1e-9 || math.Abs(d.Y-want.Y) > 1e-9 ||
		math.Abs(d.W-want.W) > 1e-9 || math.Abs(d.H-want.H) > 1e-9 {
		t.Fatalf("ToDisplay = %+v, want %+v", d, want)
	}
}

func TestProjection_DegenerateScaleIsOne(t *testing.T) {
	var p Projection
	if s := p.Scale(); s != 1 {
		t.Fatalf("zero projection scale = %v, want 1", s)
	}
}
