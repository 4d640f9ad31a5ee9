package capture

import (
	"image"

	"github.com/vova616/screenshot"
)

// Grab captures the current screen as a still frame: one press, one raster.
func Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, err
	}
	return img, nil
}

// GrabRect captures a sub-rectangle of the screen.
func GrabRect(area image.Rectangle) (*image.RGBA, error) {
	img, err := screenshot.CaptureRect(area)
	if err != nil {
		return nil, err
	}
	return img, nil
}
