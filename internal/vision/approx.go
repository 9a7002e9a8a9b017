package vision

import (
	"image"
	"math"
)

// approxPolyDP simplifies a contour with the Douglas-Peucker algorithm.
//
// For closed contours the split starts from an extreme pair of points: the
// point farthest from the first point, and the point farthest from that one.
// Starting from an extreme point keeps an arbitrary start position (for
// example the middle of a square's edge) from surviving as a vertex.
func approxPolyDP(c Contour, epsilon float64, closed bool) Contour {
	n := len(c)
	if n < 3 {
		return append(Contour(nil), c...)
	}
	if !closed {
		return douglasPeucker(c, epsilon)
	}

	b := farthestFrom(c, 0)
	a := farthestFrom(c, b)
	if c[a] == c[b] {
		return Contour{c[a]}
	}

	first := douglasPeucker(cyclicRange(c, a, b), epsilon)
	second := douglasPeucker(cyclicRange(c, b, a), epsilon)

	out := make(Contour, 0, len(first)+len(second)-2)
	out = append(out, first[:len(first)-1]...)
	out = append(out, second[:len(second)-1]...)
	return out
}

// cyclicRange returns c[from], c[from+1], ... c[to], wrapping past the end.
func cyclicRange(c Contour, from, to int) Contour {
	n := len(c)
	out := make(Contour, 0, n)
	for i := from; ; i = (i + 1) % n {
		out = append(out, c[i])
		if i == to {
			break
		}
	}
	return out
}

// farthestFrom returns the index of the point of c farthest from c[i].
// Ties go to the lowest index.
func farthestFrom(c Contour, i int) int {
	best, bestDist := i, -1
	for j, p := range c {
		d := p.Sub(c[i])
		dist := d.X*d.X + d.Y*d.Y
		if dist > bestDist {
			best, bestDist = j, dist
		}
	}
	return best
}

// douglasPeucker simplifies an open polyline, always keeping both end points.
func douglasPeucker(pts Contour, epsilon float64) Contour {
	n := len(pts)
	if n < 3 {
		return append(Contour(nil), pts...)
	}

	keep := make([]bool, n)
	keep[0], keep[n-1] = true, true

	type span struct{ from, to int }
	stack := []span{{0, n - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		maxDist, maxIdx := -1.0, -1
		for k := s.from + 1; k < s.to; k++ {
			d := lineDistance(pts[k], pts[s.from], pts[s.to])
			if d > maxDist {
				maxDist, maxIdx = d, k
			}
		}
		if maxIdx >= 0 && maxDist > epsilon {
			keep[maxIdx] = true
			stack = append(stack, span{s.from, maxIdx}, span{maxIdx, s.to})
		}
	}

	out := make(Contour, 0, n)
	for i, k := range keep {
		if k {
			out = append(out, pts[i])
		}
	}
	return out
}

// lineDistance returns the distance from p to the line through a and b, or to
// a itself when a and b coincide.
func lineDistance(p, a, b image.Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	px := float64(p.X - a.X)
	py := float64(p.Y - a.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(px, py)
	}
	return math.Abs(dx*py-dy*px) / length
}

// arcLength sums segment lengths, including the closing segment when closed.
func arcLength(c Contour, closed bool) float64 {
	if len(c) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(c); i++ {
		total += math.Hypot(float64(c[i].X-c[i-1].X), float64(c[i].Y-c[i-1].Y))
	}
	if closed {
		last, first := c[len(c)-1], c[0]
		total += math.Hypot(float64(first.X-last.X), float64(first.Y-last.Y))
	}
	return total
}
