package classify

// Shape names.
const (
	Triangle  = "Triangle"
	Rectangle = "Rectangle"
	Pentagon  = "Pentagon"
	Circle    = "Circle"
)

// ClassifyShape names a polygon by its vertex count. Counts other than 3, 4
// and 5, including degenerate ones, are reported as Circle.
func ClassifyShape(vertices int) string {
	switch vertices {
	case 3:
		return Triangle
	case 4:
		return Rectangle
	case 5:
		return Pentagon
	default:
		return Circle
	}
}

// Label joins a color name and a shape name the way annotations print them.
func Label(colorName, shapeName string) string {
	return colorName + " " + shapeName
}
