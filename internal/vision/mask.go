package vision

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// fillPoly sets every mask pixel inside or on the outline of c to value.
// Pixels outside the mask's bounds are ignored.
//
// The interior is filled with an even-odd scanline pass over pixel centers.
// The outline is then rasterized separately so thin and degenerate polygons
// (a line, a single point) still cover the pixels they pass through.
func fillPoly(mask *image.Gray, c Contour, value uint8) {
	if mask == nil || len(c) == 0 {
		return
	}
	bounds := mask.Bounds()

	minY, maxY := c[0].Y, c[0].Y
	for _, p := range c[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	minY = max(minY, bounds.Min.Y)
	maxY = min(maxY, bounds.Max.Y-1)

	n := len(c)
	xs := make([]float64, 0, 8)
	for y := minY; y <= maxY; y++ {
		xs = xs[:0]
		for i := 0; i < n; i++ {
			a, b := c[i], c[(i+1)%n]
			if a.Y == b.Y {
				continue
			}
			// Half-open so a vertex shared by two edges counts once.
			if (a.Y <= y && y < b.Y) || (b.Y <= y && y < a.Y) {
				t := float64(y-a.Y) / float64(b.Y-a.Y)
				xs = append(xs, float64(a.X)+t*float64(b.X-a.X))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := int(math.Ceil(xs[i]))
			x1 := int(math.Floor(xs[i+1]))
			for x := x0; x <= x1; x++ {
				mask.SetGray(x, y, color.Gray{Y: value})
			}
		}
	}

	for i := 0; i < n; i++ {
		line(mask, c[i], c[(i+1)%n], value)
	}
}

// line rasterizes the segment a-b with Bresenham's algorithm.
func line(mask *image.Gray, a, b image.Point, value uint8) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		mask.SetGray(x, y, color.Gray{Y: value})
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// meanWithMask averages the blue, green and red channels of src over the
// pixels where mask is non-zero. Values are non-premultiplied 8-bit
// intensities. An empty mask yields a zero Scalar.
func meanWithMask(src image.Image, mask *image.Gray) (Scalar, error) {
	if src == nil || mask == nil {
		return Scalar{}, fmt.Errorf("%w: missing image or mask", ErrSizeMismatch)
	}
	bounds := src.Bounds()
	if mask.Bounds() != bounds {
		return Scalar{}, fmt.Errorf("%w: image %v, mask %v", ErrSizeMismatch, bounds, mask.Bounds())
	}

	var blue, green, red []float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if mask.GrayAt(x, y).Y == 0 {
				continue
			}
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			blue = append(blue, float64(c.B))
			green = append(green, float64(c.G))
			red = append(red, float64(c.R))
		}
	}
	if len(blue) == 0 {
		return Scalar{}, nil
	}

	return Scalar{
		Val1: stat.Mean(blue, nil),
		Val2: stat.Mean(green, nil),
		Val3: stat.Mean(red, nil),
	}, nil
}
