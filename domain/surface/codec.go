package surface

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Load reads an image file into a surface. Formats registered with imaging
// (png, jpeg, gif, tiff, bmp) are tried first; webp falls back to the
// dedicated decoder.
func Load(path string) (*Surface, error) {
	if img, err := imaging.Open(path); err == nil {
		return FromImage(img), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	img, err := webp.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return FromImage(img), nil
}

// Save writes the surface to path in the given format. quality applies to
// jpeg and lossy webp, lossless to webp only.
func Save(s *Surface, path, format string, quality int, lossless bool) error {
	if s == nil || s.Image() == nil {
		return fmt.Errorf("nil surface")
	}
	switch strings.ToLower(format) {
	case "webp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return webp.Encode(f, s.Image(), &webp.Options{Lossless: lossless, Quality: float32(quality)})
	case "png":
		return imaging.Save(s.Image(), path)
	default: // jpg/jpeg
		return imaging.Save(s.Image(), path, imaging.JPEGQuality(quality))
	}
}

// EncodePNG returns the surface as PNG bytes.
func EncodePNG(s *Surface) ([]byte, error) {
	if s == nil || s.Image() == nil {
		return nil, fmt.Errorf("nil surface")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, s.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ModelPayload encodes the surface as base64 PNG for a vision model request,
// downscaling the long side to maxDim first when it exceeds it (0 keeps the
// original resolution).
func ModelPayload(s *Surface, maxDim int) (string, error) {
	if s == nil || s.Image() == nil {
		return "", fmt.Errorf("nil surface")
	}
	var img image.Image = s.Image()
	if maxDim > 0 {
		w, h := s.Size()
		if w > maxDim || h > maxDim {
			if w >= h {
				img = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
			} else {
				img = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
