//go:build !windows

package app

import "image"

// copyImageToClipboard is a no-op on platforms without clipboard support.
func copyImageToClipboard(img image.Image) error {
	return nil
}
