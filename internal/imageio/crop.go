package imageio

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Crop extracts the region (x1,y1)-(x2,y2) and optionally rescales it with
// Lanczos resampling. Non-positive scales, like a scale of 1, keep the
// original size.
func Crop(img image.Image, x1, y1, x2, y2 int, scale float64) (*EncodedImage, error) {
	bounds := img.Bounds()

	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	cropped := imaging.Crop(img, image.Rect(x1, y1, x2, y2))

	if scale != 1.0 && scale > 0 {
		newWidth := max(1, int(float64(cropped.Bounds().Dx())*scale))
		newHeight := max(1, int(float64(cropped.Bounds().Dy())*scale))
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	return EncodePNG(cropped)
}

// CropBox crops r after clipping it to the image. Annotation boxes may run
// past the right and bottom edges; only the visible part is returned.
func CropBox(img image.Image, r image.Rectangle, scale float64) (*EncodedImage, error) {
	visible := r.Intersect(img.Bounds())
	if visible.Empty() {
		return nil, fmt.Errorf("region %v does not overlap image bounds %v", r, img.Bounds())
	}
	return Crop(img, visible.Min.X, visible.Min.Y, visible.Max.X, visible.Max.Y, scale)
}
