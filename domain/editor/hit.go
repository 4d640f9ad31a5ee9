package editor

// handlePlacements lists the eight grips in drawing order: corners first,
// then edge midpoints. fx/fy are fractions of the region's display rect.
var handlePlacements = []struct {
	h      Handle
	fx, fy float64
}{
	{HandleN | HandleW, 0, 0},
	{HandleN | HandleE, 1, 0},
	{HandleS | HandleW, 0, 1},
	{HandleS | HandleE, 1, 1},
	{HandleN, 0.5, 0},
	{HandleS, 0.5, 1},
	{HandleW, 0, 0.5},
	{HandleE, 1, 0.5},
}

// HandleAnchors returns the display-space center point of each grip for the
// given overlay rect, keyed by handle. Hosts use it both to draw the grips
// and to hit-test against them.
func HandleAnchors(rect DisplayRect) map[Handle]Point {
	anchors := make(map[Handle]Point, len(handlePlacements))
	for _, p := range handlePlacements {
		anchors[p.h] = Point{X: rect.X + p.fx*rect.W, Y: rect.Y + p.fy*rect.H}
	}
	return anchors
}

// HitTest classifies a display point against a visible overlay rect.
// grip is the side length of a handle square in display pixels; corners win
// over edges, and edges win over the body. Points outside everything are
// HitOutside, which starts a fresh draw gesture.
func HitTest(p Point, rect DisplayRect, grip float64) Hit {
	half := grip / 2
	for _, pl := range handlePlacements {
		cx := rect.X + pl.fx*rect.W
		cy := rect.Y + pl.fy*rect.H
		if p.X >= cx-half && p.X <= cx+half && p.Y >= cy-half && p.Y <= cy+half {
			return Hit{Zone: HitHandle, Handle: pl.h}
		}
	}
	if p.X >= rect.X && p.X <= rect.X+rect.W && p.Y >= rect.Y && p.Y <= rect.Y+rect.H {
		return Hit{Zone: HitBody}
	}
	return Hit{Zone: HitOutside}
}
