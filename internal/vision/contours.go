package vision

import (
	"fmt"
	"image"
)

// moore lists the 8 neighbors of a pixel clockwise (in image coordinates),
// starting from the west neighbor.
var moore = [8]image.Point{
	{X: -1, Y: 0},  // W
	{X: -1, Y: -1}, // NW
	{X: 0, Y: -1},  // N
	{X: 1, Y: -1},  // NE
	{X: 1, Y: 0},   // E
	{X: 1, Y: 1},   // SE
	{X: 0, Y: 1},   // S
	{X: -1, Y: 1},  // SW
}

// findContours extracts one outer border per 8-connected component of
// non-zero pixels in edges.
//
// Components are discovered in raster order. For each one the border is
// traced with Moore-neighbor tracing starting at the component's top-left
// pixel. Hole borders of an edge ring would repeat the ring's own pixels, so
// only the outer border is reported and the list stays flat.
func findContours(edges *image.Gray, mode RetrievalMode, method ApproxMode) ([]Contour, error) {
	if mode != RetrievalList {
		return nil, fmt.Errorf("%w: retrieval mode %d", ErrUnsupported, mode)
	}
	if method != ChainApproxNone && method != ChainApproxSimple {
		return nil, fmt.Errorf("%w: approximation mode %d", ErrUnsupported, method)
	}
	if edges == nil {
		return nil, nil
	}

	bounds := edges.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	on := func(p image.Point) bool {
		if p.X < 0 || p.Y < 0 || p.X >= width || p.Y >= height {
			return false
		}
		return edges.Pix[p.Y*edges.Stride+p.X] != 0
	}

	visited := make([]bool, width*height)
	contours := make([]Contour, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			start := image.Point{X: x, Y: y}
			if visited[y*width+x] || !on(start) {
				continue
			}
			floodFill(on, visited, width, start)

			contour := traceBorder(on, start, 4*width*height+8)
			if method == ChainApproxSimple {
				contour = compressChain(contour)
			}
			for i := range contour {
				contour[i] = contour[i].Add(bounds.Min)
			}
			contours = append(contours, contour)
		}
	}

	return contours, nil
}

// floodFill marks every pixel 8-connected to start as visited.
//
// Uses a stack-based approach (not recursive) to avoid stack overflow
// on large components.
func floodFill(on func(image.Point) bool, visited []bool, width int, start image.Point) {
	stack := []image.Point{start}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !on(p) || visited[p.Y*width+p.X] {
			continue
		}
		visited[p.Y*width+p.X] = true

		for _, d := range moore {
			stack = append(stack, p.Add(d))
		}
	}
}

// traceBorder walks the outer border of the component containing start,
// which must be the component's first pixel in raster order (so its west
// neighbor is background).
//
// The walk stops when it is about to repeat its first move, which handles
// components that pass through the start pixel more than once. maxSteps
// bounds the walk on malformed input.
func traceBorder(on func(image.Point) bool, start image.Point, maxSteps int) Contour {
	contour := Contour{}
	cur := start
	back := 0 // index into moore of the background pixel we came from

	var first image.Point
	for step := 0; step < maxSteps; step++ {
		next, nextBack, ok := mooreStep(on, cur, back)
		if !ok {
			// Isolated pixel
			return Contour{start}
		}
		if step == 0 {
			first = next
		} else if cur == start && next == first {
			break
		}
		contour = append(contour, cur)
		cur, back = next, nextBack
	}

	return contour
}

// mooreStep searches the neighbors of cur clockwise, starting just after the
// background neighbor back, and returns the first foreground pixel together
// with the direction from it to the last background pixel examined.
func mooreStep(on func(image.Point) bool, cur image.Point, back int) (image.Point, int, bool) {
	for k := 1; k <= 8; k++ {
		idx := (back + k) % 8
		p := cur.Add(moore[idx])
		if !on(p) {
			continue
		}
		prev := cur.Add(moore[(idx+7)%8])
		return p, mooreIndex(prev.Sub(p)), true
	}
	return cur, back, false
}

// mooreIndex returns the index of offset d in moore. d must be a unit
// 8-neighborhood offset.
func mooreIndex(d image.Point) int {
	for i, m := range moore {
		if m == d {
			return i
		}
	}
	return 0
}

// compressChain keeps only the points where the chain changes direction,
// treating the contour as closed.
func compressChain(c Contour) Contour {
	n := len(c)
	if n < 3 {
		return c
	}

	out := make(Contour, 0, n)
	for i := 0; i < n; i++ {
		prev := c[(i-1+n)%n]
		next := c[(i+1)%n]
		if c[i].Sub(prev) == next.Sub(c[i]) {
			continue
		}
		out = append(out, c[i])
	}
	if len(out) == 0 {
		return Contour{c[0]}
	}
	return out
}
