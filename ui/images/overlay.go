package images

import (
	"image"
	"image/color"
	"image/draw"
)

var (
	overlayDim    = color.RGBA{0, 0, 0, 110}
	overlayBorder = color.RGBA{255, 255, 255, 255}
	overlayGrip   = color.RGBA{255, 255, 255, 255}
	overlayGripBg = color.RGBA{30, 30, 30, 255}
)

// RenderOverlay draws a crop selection over a copy of src: the area outside
// sel is dimmed, sel gets a 1px border, and a square grip is drawn centred on
// each point in grips. sel and grips are in src pixel coordinates.
func RenderOverlay(src image.Image, sel image.Rectangle, grips []image.Point, gripSize int) *image.RGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)

	sel = sel.Intersect(out.Bounds())
	if sel.Empty() {
		return out
	}

	dimOutside(out, sel)
	strokeRect(out, sel, overlayBorder)

	if gripSize < 2 {
		gripSize = 2
	}
	half := gripSize / 2
	for _, p := range grips {
		g := image.Rect(p.X-half, p.Y-half, p.X-half+gripSize, p.Y-half+gripSize)
		fillRect(out, g.Intersect(out.Bounds()), overlayGripBg)
		strokeRect(out, g.Intersect(out.Bounds()), overlayGrip)
	}
	return out
}

func dimOutside(dst *image.RGBA, sel image.Rectangle) {
	b := dst.Bounds()
	regions := []image.Rectangle{
		image.Rect(b.Min.X, b.Min.Y, b.Max.X, sel.Min.Y),
		image.Rect(b.Min.X, sel.Max.Y, b.Max.X, b.Max.Y),
		image.Rect(b.Min.X, sel.Min.Y, sel.Min.X, sel.Max.Y),
		image.Rect(sel.Max.X, sel.Min.Y, b.Max.X, sel.Max.Y),
	}
	dim := image.NewUniform(overlayDim)
	for _, r := range regions {
		r = r.Intersect(b)
		if !r.Empty() {
			draw.Draw(dst, r, dim, image.Point{}, draw.Over)
		}
	}
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func strokeRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.SetRGBA(x, r.Min.Y, c)
		dst.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.SetRGBA(r.Min.X, y, c)
		dst.SetRGBA(r.Max.X-1, y, c)
	}
}
