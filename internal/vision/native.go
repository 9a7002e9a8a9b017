package vision

import (
	"image"
	"image/color"
	"image/draw"
)

// NativeName is the registered name of the pure Go backend.
const NativeName = "native"

func init() {
	Register(NativeName, func() Backend { return NewNative() })
}

// Native is the pure Go Backend. It holds no state and is safe for
// concurrent use.
type Native struct{}

// NewNative returns the pure Go backend.
func NewNative() *Native {
	return &Native{}
}

// Name implements Backend.
func (*Native) Name() string { return NativeName }

// Grayscale implements Backend.
func (*Native) Grayscale(src image.Image) (*image.Gray, error) {
	return grayscale(src)
}

// GaussianBlur implements Backend.
func (*Native) GaussianBlur(src *image.Gray, ksize int, sigma float64) (*image.Gray, error) {
	return gaussianBlur(src, ksize, sigma)
}

// Canny implements Backend.
func (*Native) Canny(src *image.Gray, low, high float64) (*image.Gray, error) {
	return canny(src, low, high)
}

// FindContours implements Backend. Only RetrievalList is supported; it
// reports the outer border of every 8-connected component of non-zero pixels,
// in raster order of each component's top-left pixel.
func (*Native) FindContours(edges *image.Gray, mode RetrievalMode, method ApproxMode) ([]Contour, error) {
	return findContours(edges, mode, method)
}

// ApproxPolyDP implements Backend.
func (*Native) ApproxPolyDP(c Contour, epsilon float64, closed bool) Contour {
	return approxPolyDP(c, epsilon, closed)
}

// ArcLength implements Backend.
func (*Native) ArcLength(c Contour, closed bool) float64 {
	return arcLength(c, closed)
}

// MinAreaRect implements Backend.
func (*Native) MinAreaRect(c Contour) RotatedRect {
	return minAreaRect(c)
}

// FillPoly implements Backend.
func (*Native) FillPoly(mask *image.Gray, c Contour, value uint8) error {
	fillPoly(mask, c, value)
	return nil
}

// MeanWithMask implements Backend.
func (*Native) MeanWithMask(src image.Image, mask *image.Gray) (Scalar, error) {
	return meanWithMask(src, mask)
}

// Rectangle implements Backend.
func (*Native) Rectangle(dst draw.Image, r image.Rectangle, c color.Color, thickness int) {
	drawRectangle(dst, r, c, thickness)
}

// PutText implements Backend.
func (*Native) PutText(dst draw.Image, text string, org image.Point, c color.Color, scale int) {
	putText(dst, text, org, c, scale)
}
