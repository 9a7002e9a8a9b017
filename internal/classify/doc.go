// Package classify names detected regions by color and by shape.
//
// Both classifiers are pure functions over small value types and hold no
// mutable state, so they are safe for concurrent use.
//
// # Color
//
// Colors are matched against a fixed, ordered palette of named ranges. Each
// range bounds the blue, green and red channels independently (inclusive on
// both ends). Ranges overlap, and the first range in palette order that
// contains a sample wins:
//
//	Yellow, Red, Blue, Light Blue, Dark Blue, Green, Light Green,
//	Dark Green, Orange, Purple, Pink, Brown, Black
//
// A sample no range contains is named Unknown.
//
// Samples use B-G-R channel order to match the masked means produced by the
// vision package.
//
// # Shape
//
// Shapes are named from the vertex count of a simplified polygon:
//
//	3     Triangle
//	4     Rectangle
//	5     Pentagon
//	other Circle
//
// There is no convexity or circularity test; any polygon that is not a
// triangle, quadrilateral or pentagon is reported as a circle.
package classify
