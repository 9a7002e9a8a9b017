package vision

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// canny performs Canny edge detection on an already smoothed grayscale image.
//
// # Algorithm
//
//  1. Gradient computation: Sobel operators for X and Y gradients,
//     magnitude = |Gx| + |Gy| (OpenCV's default L1 norm) in 0-255
//     intensity units
//  2. Non-maximum suppression: keep only pixels that are local maxima along
//     the gradient direction (quantized to 0°, 45°, 90°, 135°)
//  3. Hysteresis: pixels at or above high are strong edges; pixels at or above
//     low are kept only when 8-connected, directly or through other kept
//     pixels, to a strong edge
//
// Unlike OpenCV no blur is applied here; callers smooth first.
// Border pixels are never edges.
func canny(src *image.Gray, low, high float64) (*image.Gray, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, errors.New("canny: empty image")
	}
	if low > high {
		return nil, fmt.Errorf("canny: low threshold %.1f above high threshold %.1f", low, high)
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	at := func(x, y int) float64 {
		x = clamp(x, 0, width-1)
		y = clamp(y, 0, height-1)
		return float64(src.Pix[y*src.Stride+x])
	}

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	magnitude := make([]float64, width*height)
	direction := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := at(x+kx, y+ky)
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y*width+x] = math.Abs(gx) + math.Abs(gy)
			direction[y*width+x] = math.Atan2(gy, gx) * 180 / math.Pi
		}
	}

	// Non-maximum suppression
	suppressed := make([]float64, width*height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			i := y*width + x
			mag := magnitude[i]
			if mag == 0 {
				continue
			}

			angle := direction[i]
			if angle < 0 {
				angle += 180
			}

			var n1, n2 float64
			switch {
			case angle < 22.5 || angle >= 157.5:
				n1 = magnitude[i-1]
				n2 = magnitude[i+1]
			case angle < 67.5:
				// Gradient points down-right in image coordinates
				n1 = magnitude[i-width-1]
				n2 = magnitude[i+width+1]
			case angle < 112.5:
				n1 = magnitude[i-width]
				n2 = magnitude[i+width]
			default:
				n1 = magnitude[i-width+1]
				n2 = magnitude[i+width-1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[i] = mag
			}
		}
	}

	// Hysteresis, seeded from every strong pixel
	result := image.NewGray(bounds)
	kept := make([]bool, width*height)
	stack := make([]int, 0, 64)
	for i, v := range suppressed {
		if v >= high && !kept[i] {
			kept[i] = true
			stack = append(stack, i)
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%width, i/width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= width || ny >= height {
					continue
				}
				j := ny*width + nx
				if !kept[j] && suppressed[j] >= low && suppressed[j] > 0 {
					kept[j] = true
					stack = append(stack, j)
				}
			}
		}
	}

	for i, k := range kept {
		if k {
			result.Pix[(i/width)*result.Stride+i%width] = 255
		}
	}
	return result, nil
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
