// Package surface wraps the raster buffer the crop editor operates on and
// the file/model codecs around it.
package surface

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/anzohr/snapcrop/domain/editor"
)

// Surface is an owned RGBA raster with its intrinsic pixel dimensions. It
// satisfies the editor's raster contract.
type Surface struct {
	img *image.RGBA
}

var _ editor.Raster = (*Surface)(nil)

// New returns a blank surface of the given size (minimum 1x1).
func New(w, h int) *Surface {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// FromImage copies an arbitrary image into an owned zero-origin RGBA buffer.
func FromImage(src image.Image) *Surface {
	if src == nil {
		return New(1, 1)
	}
	b := src.Bounds()
	if rgba, ok := src.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return &Surface{img: rgba}
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return &Surface{img: dst}
}

// Size returns the intrinsic pixel dimensions.
func (s *Surface) Size() (int, int) {
	if s == nil || s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image exposes the backing RGBA for rendering and encoding.
func (s *Surface) Image() *image.RGBA {
	if s == nil {
		return nil
	}
	return s.img
}

// Crop produces a new surface of exactly w x h pixels containing the source
// content within the region. Source and destination resolutions are equal so
// the copy is pixel-exact; parts of the region outside the source (possible
// on the minimum-size floor) stay transparent.
func (s *Surface) Crop(x, y, w, h int) editor.Raster {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if s != nil && s.img != nil {
		src := image.Rect(x, y, x+w, y+h).Intersect(s.img.Bounds())
		if !src.Empty() {
			draw.Draw(dst, image.Rect(src.Min.X-x, src.Min.Y-y, src.Max.X-x, src.Max.Y-y), s.img, src.Min, draw.Src)
		}
	}
	return &Surface{img: dst}
}

// RotateCW returns the surface turned a quarter turn clockwise. Rotation
// replaces the surface, so the host re-activates the editor afterwards and
// any crop region is discarded.
func (s *Surface) RotateCW() *Surface {
	if s == nil || s.img == nil {
		return s
	}
	// imaging rotates counter-clockwise; 270 CCW is 90 CW.
	return FromImage(imaging.Rotate270(s.img))
}
