package editor

// Region is the active crop selection in surface-pixel coordinates.
// Whether a region exists at all is tracked by the Editor; a zero-size
// Region is not a sentinel for "no selection".
type Region struct {
	X, Y float64
	W, H float64
}

// Right returns the far X edge.
func (r Region) Right() float64 { return r.X + r.W }

// Bottom returns the far Y edge.
func (r Region) Bottom() float64 { return r.Y + r.H }

// Handle identifies which edit a manipulation gesture performs: a bitmask of
// the compass edges being dragged, or the whole-region move grip.
type Handle uint8

const (
	// HandleNone applies no delta on either axis. Unknown handle
	// identities parse to it so a malformed hit degrades to a no-op.
	HandleNone Handle = 0

	HandleN Handle = 1 << iota
	HandleS
	HandleE
	HandleW

	// HandleMove drags the whole region, clamped to the surface.
	HandleMove Handle = 1 << 6
)

var handleNames = map[string]Handle{
	"n":    HandleN,
	"s":    HandleS,
	"e":    HandleE,
	"w":    HandleW,
	"ne":   HandleN | HandleE,
	"nw":   HandleN | HandleW,
	"se":   HandleS | HandleE,
	"sw":   HandleS | HandleW,
	"move": HandleMove,
}

// ParseHandle maps a handle identity string to a Handle. Unknown identities
// return HandleNone and ok=false; callers treat them as no-op deltas rather
// than faults.
func ParseHandle(name string) (Handle, bool) {
	h, ok := handleNames[name]
	return h, ok
}

// String returns the canonical identity for h, or "" for HandleNone.
func (h Handle) String() string {
	if h == HandleMove {
		return "move"
	}
	var s string
	if h&HandleN != 0 {
		s += "n"
	}
	if h&HandleS != 0 {
		s += "s"
	}
	if h&HandleE != 0 {
		s += "e"
	}
	if h&HandleW != 0 {
		s += "w"
	}
	return s
}

// applyHandle computes the region a manipulation gesture produces. It is a
// pure reducer: deltas are always relative to the anchor snapshot taken at
// gesture start, so repeated calls within one drag never compound.
//
// surfW/surfH are the surface bounds used by the move clamp. The result is
// not yet constraint-enforced; resize paths run through clampRegion after.
func applyHandle(anchor Region, h Handle, dx, dy, surfW, surfH float64) Region {
	r := anchor
	if h == HandleMove {
		r.X = clampFloat(anchor.X+dx, 0, surfW-anchor.W)
		r.Y = clampFloat(anchor.Y+dy, 0, surfH-anchor.H)
		return r
	}
	if h&HandleE != 0 {
		r.W = anchor.W + dx
	}
	if h&HandleW != 0 {
		r.W = anchor.W - dx
		r.X = anchor.X + dx
	}
	if h&HandleS != 0 {
		r.H = anchor.H + dy
	}
	if h&HandleN != 0 {
		r.H = anchor.H - dy
		r.Y = anchor.Y + dy
	}
	return r
}

// regionBetween returns the axis-aligned box spanning two surface points.
// The sign of each delta picks which corner is the moving one.
func regionBetween(a, b Point) Region {
	r := Region{X: a.X, Y: a.Y, W: b.X - a.X, H: b.Y - a.Y}
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// clampRegion enforces surface bounds and the minimum region size.
//
// Order matters: negative origins are clamped first (shrinking size so the
// far edge stays fixed), the far edge is clamped second, and the minimum
// size floor is applied last. On surfaces smaller than twice the minimum
// size the floor can push the far edge past the bound; that is accepted.
func clampRegion(r Region, surfW, surfH, minSize float64) Region {
	r.X, r.W = clampAxis(r.X, r.W, surfW, minSize)
	r.Y, r.H = clampAxis(r.Y, r.H, surfH, minSize)
	return r
}

func clampAxis(pos, size, bound, minSize float64) (float64, float64) {
	if pos < 0 {
		size += pos
		pos = 0
	}
	if pos+size > bound {
		size = bound - pos
	}
	if size < minSize {
		size = minSize
	}
	return pos, size
}

func clampFloat(v, lo, hi float64) float64 {
	if hi < lo {
		// Region larger than the surface; pin to the origin edge.
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
