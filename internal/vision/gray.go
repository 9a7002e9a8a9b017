package vision

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/effect"
)

// grayscale converts src to luminance using bild's weights
// (0.3*R + 0.6*G + 0.1*B). The result keeps src's bounds.
func grayscale(src image.Image) (*image.Gray, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, errors.New("grayscale: empty image")
	}
	return rgbaToGray(effect.Grayscale(src), src.Bounds()), nil
}

// gaussianSigma derives sigma from the kernel size the way OpenCV does when
// the caller passes zero.
func gaussianSigma(ksize int) float64 {
	return 0.3*(float64(ksize-1)*0.5-1) + 0.8
}

// gaussianBlur applies a separable ksize×ksize Gaussian blur.
//
// The 1-D kernel is built with the requested sigma and run horizontally then
// vertically through bild's convolution, which replicates edge pixels for
// samples that fall outside the image.
func gaussianBlur(src *image.Gray, ksize int, sigma float64) (*image.Gray, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, errors.New("gaussian blur: empty image")
	}
	if ksize < 1 || ksize%2 == 0 {
		return nil, fmt.Errorf("gaussian blur: kernel size must be odd and positive, got %d", ksize)
	}
	if sigma <= 0 {
		sigma = gaussianSigma(ksize)
	}

	k := convolution.NewKernel(ksize, 1)
	half := ksize / 2
	for i := 0; i < ksize; i++ {
		x := float64(i - half)
		k.Matrix[i] = math.Exp(-(x * x) / (2 * sigma * sigma))
	}
	normK := k.Normalized()

	opts := convolution.Options{Bias: 0, Wrap: false, KeepAlpha: false}
	blurred := convolution.Convolve(src, normK, &opts)
	blurred = convolution.Convolve(blurred, normK.Transposed(), &opts)

	return rgbaToGray(blurred, src.Bounds()), nil
}

// rgbaToGray copies the red channel of a gray-valued RGBA image into a new
// Gray image with the given bounds.
func rgbaToGray(src *image.RGBA, bounds image.Rectangle) *image.Gray {
	dst := image.NewGray(bounds)
	sb := src.Bounds()
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			dst.Pix[y*dst.Stride+x] = src.RGBAAt(sb.Min.X+x, sb.Min.Y+y).R
		}
	}
	return dst
}
