//go:build windows

package app

import (
	"encoding/binary"
	"errors"
	"image"
	"image/draw"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	cfDIB        = 8
	gmemMoveable = 0x0002
)

// copyImageToClipboard places img on the Windows clipboard as a CF_DIB.
// The DIB is a 32bpp top-down bitmap (negative height) in BGRA order.
func copyImageToClipboard(img image.Image) error {
	if img == nil {
		return errors.New("nil image")
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return errors.New("empty image")
	}

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Bounds().Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	const headerSize = 40 // BITMAPINFOHEADER
	payload := make([]byte, headerSize+w*h*4)
	binary.LittleEndian.PutUint32(payload[0:], headerSize)
	binary.LittleEndian.PutUint32(payload[4:], uint32(w))
	binary.LittleEndian.PutUint32(payload[8:], uint32(-int32(h))) // top-down
	binary.LittleEndian.PutUint16(payload[12:], 1)                // planes
	binary.LittleEndian.PutUint16(payload[14:], 32)               // bpp
	// compression BI_RGB (0), remaining header fields zero

	out := payload[headerSize:]
	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		for x := 0; x < w; x++ {
			out[(y*w+x)*4+0] = row[x*4+2] // B
			out[(y*w+x)*4+1] = row[x*4+1] // G
			out[(y*w+x)*4+2] = row[x*4+0] // R
			out[(y*w+x)*4+3] = row[x*4+3] // A
		}
	}

	kernel32 := windows.NewLazySystemDLL("kernel32.dll")
	globalAlloc := kernel32.NewProc("GlobalAlloc")
	globalLock := kernel32.NewProc("GlobalLock")
	globalUnlock := kernel32.NewProc("GlobalUnlock")
	globalFree := kernel32.NewProc("GlobalFree")

	user32 := windows.NewLazySystemDLL("user32.dll")
	openClipboard := user32.NewProc("OpenClipboard")
	emptyClipboard := user32.NewProc("EmptyClipboard")
	setClipboardData := user32.NewProc("SetClipboardData")
	closeClipboard := user32.NewProc("CloseClipboard")

	hMem, _, _ := globalAlloc.Call(gmemMoveable, uintptr(len(payload)))
	if hMem == 0 {
		return errors.New("GlobalAlloc failed")
	}
	ptr, _, _ := globalLock.Call(hMem)
	if ptr == 0 {
		_, _, _ = globalFree.Call(hMem)
		return errors.New("GlobalLock failed")
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(ptr)), len(payload))
	copy(dst, payload)
	_, _, _ = globalUnlock.Call(hMem)

	if r, _, _ := openClipboard.Call(0); r == 0 {
		_, _, _ = globalFree.Call(hMem)
		return errors.New("OpenClipboard failed")
	}
	defer closeClipboard.Call()
	_, _, _ = emptyClipboard.Call()
	if r, _, _ := setClipboardData.Call(cfDIB, hMem); r == 0 {
		// Ownership stays with us on failure.
		_, _, _ = globalFree.Call(hMem)
		return errors.New("SetClipboardData failed")
	}
	return nil
}
