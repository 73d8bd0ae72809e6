// Package imageload decodes the puzzle image and shrinks oversized uploads.
package imageload

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptyImage is returned for an image with no pixels.
var ErrEmptyImage = errors.New("imageload: image has no pixels")

// Image is a decoded picture plus the format it was read from.
type Image struct {
	image.Image
	Format string
	// Scaled is true when the picture was shrunk to fit the size limit.
	Scaled bool
}

// Load opens and decodes the image at path.
func Load(path string, maxSide int) (*Image, error) {
	f, err := os.Open(path) // #nosec G304 -- path chosen by the player
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, err := Decode(f, maxSide)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Decode reads any registered format. When maxSide > 0 and either side is
// longer, the picture is scaled down to fit, keeping its aspect ratio.
func Decode(r io.Reader, maxSide int) (*Image, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, ErrEmptyImage
	}

	out := &Image{Image: src, Format: format}
	if w, h, ok := fitWithin(b.Dx(), b.Dy(), maxSide); ok {
		out.Image = downscale(src, w, h)
		out.Scaled = true
	}
	return out, nil
}

// fitWithin returns the size that fits w x h inside a maxSide square, and
// whether that differs from the original.
func fitWithin(w, h, maxSide int) (int, int, bool) {
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return w, h, false
	}
	if w >= h {
		return maxSide, max(1, h*maxSide/w), true
	}
	return max(1, w*maxSide/h), maxSide, true
}

func downscale(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
