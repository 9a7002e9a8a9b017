package vision

import (
	"image"
	"math"
	"sort"
)

// convexHull returns the convex hull of pts in counter-clockwise order
// (clockwise on screen), without collinear points. Duplicate points are
// ignored.
func convexHull(pts Contour) Contour {
	sorted := append(Contour(nil), pts...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	uniq := sorted[:0]
	for i, p := range sorted {
		if i == 0 || p != sorted[i-1] {
			uniq = append(uniq, p)
		}
	}
	if len(uniq) < 3 {
		return uniq
	}

	cross := func(o, a, b image.Point) int64 {
		return int64(a.X-o.X)*int64(b.Y-o.Y) - int64(a.Y-o.Y)*int64(b.X-o.X)
	}

	hull := make(Contour, 0, 2*len(uniq))
	for _, p := range uniq {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(uniq) - 2; i >= 0; i-- {
		p := uniq[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// minAreaRect finds the smallest-area enclosing rectangle with rotating
// calipers over the convex hull: one side of the optimum always lies on a
// hull edge.
func minAreaRect(c Contour) RotatedRect {
	hull := convexHull(c)
	switch len(hull) {
	case 0:
		return RotatedRect{}
	case 1:
		p := Point2f{X: float64(hull[0].X), Y: float64(hull[0].Y)}
		return RotatedRect{Center: p, Corners: [4]Point2f{p, p, p, p}}
	}

	bestArea := math.Inf(1)
	var best RotatedRect
	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		ux, uy := dx/length, dy/length
		vx, vy := -uy, ux

		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			px, py := float64(p.X), float64(p.Y)
			pu := px*ux + py*uy
			pv := px*vx + py*vy
			minU, maxU = math.Min(minU, pu), math.Max(maxU, pu)
			minV, maxV = math.Min(minV, pv), math.Max(maxV, pv)
		}

		area := (maxU - minU) * (maxV - minV)
		if area >= bestArea {
			continue
		}
		bestArea = area

		corner := func(s, t float64) Point2f {
			return Point2f{X: s*ux + t*vx, Y: s*uy + t*vy}
		}
		best = RotatedRect{
			Width:  maxU - minU,
			Height: maxV - minV,
			Angle:  math.Atan2(uy, ux) * 180 / math.Pi,
			Corners: [4]Point2f{
				corner(minU, minV),
				corner(maxU, minV),
				corner(maxU, maxV),
				corner(minU, maxV),
			},
		}
	}

	for _, p := range best.Corners {
		best.Center.X += p.X / 4
		best.Center.Y += p.Y / 4
	}

	// Report the angle in [0, 90), swapping sides as the reference edge turns.
	for best.Angle < 0 {
		best.Angle += 90
		best.Width, best.Height = best.Height, best.Width
	}
	for best.Angle >= 90 {
		best.Angle -= 90
		best.Width, best.Height = best.Height, best.Width
	}
	return best
}
