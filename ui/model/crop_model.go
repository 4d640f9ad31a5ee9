package model

import (
	"image"
)

// CropModel holds the most recent committed crop rectangle in surface
// coordinates, plus a running count. Zero value means no crop yet and is
// usable. No synchronization needed: updates occur on the UI thread tick.
type CropModel struct {
	last  image.Rectangle
	count int
}

func NewCropModel() *CropModel { return &CropModel{} }

// RecordCrop stores the rectangle of a committed crop. Empty or degenerate
// rectangles are ignored.
func (m *CropModel) RecordCrop(r image.Rectangle) {
	if m == nil {
		return
	}
	if r.Empty() || r.Dx() <= 0 || r.Dy() <= 0 {
		return
	}
	m.last = r
	m.count++
}

// Last returns the most recent committed crop rectangle (may be empty).
func (m *CropModel) Last() image.Rectangle {
	if m == nil {
		return image.Rectangle{}
	}
	return m.last
}

// Count returns how many crops have been committed.
func (m *CropModel) Count() int {
	if m == nil {
		return 0
	}
	return m.count
}
