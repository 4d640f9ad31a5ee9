package editor

// Point is a 2D coordinate, in display or surface space depending on context.
type Point struct {
	X, Y float64
}

// DisplayRect is an on-screen rectangle in rendered display pixels.
type DisplayRect struct {
	X, Y float64
	W, H float64
}

// Projection maps between the surface's intrinsic pixel grid and the box the
// surface is currently rendered in on screen. The surface is assumed to be
// scaled uniformly, so a single factor derived from the widths applies to
// both axes.
type Projection struct {
	// Intrinsic pixel dimensions of the backing raster.
	IntrinsicW, IntrinsicH float64
	// On-screen rendered box of the raster.
	Rendered DisplayRect
}

// Scale returns renderedWidth / intrinsicWidth. A degenerate projection
// (zero intrinsic or rendered width) yields scale 1 so geometry stays total.
func (p Projection) Scale() float64 {
	if p.IntrinsicW <= 0 || p.Rendered.W <= 0 {
		return 1
	}
	return p.Rendered.W / p.IntrinsicW
}

// ToSurface converts a display point to surface-pixel space, clamped to the
// intrinsic bounds so pointer positions outside the rendered box stay total.
func (p Projection) ToSurface(d Point) Point {
	s := p.Scale()
	return Point{
		X: clampFloat((d.X-p.Rendered.X)/s, 0, p.IntrinsicW),
		Y: clampFloat((d.Y-p.Rendered.Y)/s, 0, p.IntrinsicH),
	}
}

// ToDisplay projects a surface-space region onto the rendered box. It is a
// pure function of the current projection and never a source of state drift.
func (p Projection) ToDisplay(r Region) DisplayRect {
	s := p.Scale()
	return DisplayRect{
		X: p.Rendered.X + r.X*s,
		Y: p.Rendered.Y + r.Y*s,
		W: r.W * s,
		H: r.H * s,
	}
}

// toDisplayPoint is the inverse of ToSurface without clamping, used by tests
// to check the round-trip property.
func (p Projection) toDisplayPoint(s Point) Point {
	f := p.Scale()
	return Point{X: p.Rendered.X + s.X*f, Y: p.Rendered.Y + s.Y*f}
}
