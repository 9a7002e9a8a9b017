package annotate

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/ironsheep/shape-annotator/internal/classify"
	"github.com/ironsheep/shape-annotator/internal/vision"
)

// Annotation geometry.
const (
	// BoxMargin is added on every side of a region's bounding box.
	BoxMargin = 5

	// LabelOffset is the distance from the box's bottom edge to the label
	// baseline.
	LabelOffset = 20

	// BoxThickness is the outline width of the bounding box.
	BoxThickness = 2

	// LabelScale magnifies the label font.
	LabelScale = 2
)

var (
	// BoxColor outlines each region.
	BoxColor color.Color = color.NRGBA{R: 255, G: 0, B: 0, A: 255}

	// LabelColor is used for the label text.
	LabelColor color.Color = color.NRGBA{R: 0, G: 0, B: 255, A: 255}
)

// ErrEmptyImage is returned for nil or zero-sized images.
var ErrEmptyImage = errors.New("annotate: empty image")

// Point is a pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Bounds is a rectangle with (X1, Y1) inclusive and (X2, Y2) exclusive.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Rect converts b to an image.Rectangle.
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(b.X1, b.Y1, b.X2, b.Y2)
}

func boundsOf(r image.Rectangle) Bounds {
	return Bounds{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

// Region describes one annotated shape.
type Region struct {
	Index          int             `json:"index"`           // Position in contour extraction order
	BoundaryPoints int             `json:"boundary_points"` // Points in the extracted boundary
	Polygon        []Point         `json:"polygon"`         // Simplified polygon vertices
	Box            Bounds          `json:"box"`             // Expanded bounding box as drawn
	LabelOrigin    Point           `json:"label_origin"`    // Label baseline start
	LabelBounds    Bounds          `json:"label_bounds"`    // Area covered by the label text
	Sample         classify.Sample `json:"sample"`          // Masked mean color, B-G-R
	Hex            string          `json:"hex"`             // Sample as "#RRGGBB"
	Color          string          `json:"color"`           // Palette name or Unknown
	Shape          string          `json:"shape"`           // Triangle, Rectangle, Pentagon or Circle
	Label          string          `json:"label"`           // "{Color} {Shape}"
}

// Vertices returns the polygon's vertex count.
func (r Region) Vertices() int {
	return len(r.Polygon)
}

// ExpandRect grows r by margin on every side. The top-left corner is clamped
// at zero by shifting the rectangle, so its size is always grown by 2*margin;
// the bottom-right corner is never clamped.
func ExpandRect(r image.Rectangle, margin int) image.Rectangle {
	x := max(0, r.Min.X-margin)
	y := max(0, r.Min.Y-margin)
	w := r.Dx() + 2*margin
	h := r.Dy() + 2*margin
	return image.Rect(x, y, x+w, y+h)
}

// Annotator labels a single region.
type Annotator struct {
	backend vision.Backend
}

// NewAnnotator returns an Annotator that uses backend for masking, sampling
// and drawing.
func NewAnnotator(backend vision.Backend) *Annotator {
	return &Annotator{backend: backend}
}

// Annotate classifies one region and draws its box and label onto dst.
//
// boundary is the region's contour as extracted; it bounds the box and fills
// the color mask. polygon is its simplification; only its vertex count is
// used. The color is sampled from dst as it is when Annotate is called.
//
// A region whose boundary or polygon has fewer than three points is skipped:
// Annotate draws nothing and returns false with a nil error.
func (a *Annotator) Annotate(dst draw.Image, boundary, polygon vision.Contour) (Region, bool, error) {
	if dst == nil || dst.Bounds().Empty() {
		return Region{}, false, ErrEmptyImage
	}
	if len(boundary) < 3 || len(polygon) < 3 {
		return Region{}, false, nil
	}

	box := ExpandRect(a.backend.MinAreaRect(boundary).BoundingRect(), BoxMargin)

	mask := image.NewGray(dst.Bounds())
	if err := a.backend.FillPoly(mask, boundary, 255); err != nil {
		return Region{}, false, fmt.Errorf("failed to fill region mask: %w", err)
	}
	mean, err := a.backend.MeanWithMask(dst, mask)
	if err != nil {
		return Region{}, false, fmt.Errorf("failed to sample region color: %w", err)
	}

	sample := classify.Sample{B: mean.Val1, G: mean.Val2, R: mean.Val3}
	colorName := classify.ClassifyColor(sample)
	shapeName := classify.ClassifyShape(len(polygon))
	label := classify.Label(colorName, shapeName)
	org := image.Pt(box.Min.X, box.Max.Y+LabelOffset)

	a.backend.Rectangle(dst, box, BoxColor, BoxThickness)
	a.backend.PutText(dst, label, org, LabelColor, LabelScale)

	verts := make([]Point, len(polygon))
	for i, p := range polygon {
		verts[i] = Point{X: p.X, Y: p.Y}
	}

	return Region{
		BoundaryPoints: len(boundary),
		Polygon:        verts,
		Box:            boundsOf(box),
		LabelOrigin:    Point{X: org.X, Y: org.Y},
		LabelBounds:    boundsOf(vision.TextBounds(label, org, LabelScale)),
		Sample:         sample,
		Hex:            sample.Hex(),
		Color:          colorName,
		Shape:          shapeName,
		Label:          label,
	}, true, nil
}
