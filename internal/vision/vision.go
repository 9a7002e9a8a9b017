package vision

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"
	"sync"
)

var (
	// ErrUnsupported is returned when a backend does not implement the
	// requested retrieval or approximation mode.
	ErrUnsupported = errors.New("vision: unsupported mode")

	// ErrUnknownBackend is returned by Open for names nobody registered.
	ErrUnknownBackend = errors.New("vision: unknown backend")

	// ErrSizeMismatch is returned when a mask and its image differ in bounds.
	ErrSizeMismatch = errors.New("vision: mask and image bounds differ")
)

// RetrievalMode selects which borders FindContours reports.
type RetrievalMode int

const (
	// RetrievalList reports every border as a flat list with no nesting.
	RetrievalList RetrievalMode = iota
)

// ApproxMode selects how FindContours stores border points.
type ApproxMode int

const (
	// ChainApproxNone keeps every border pixel.
	ChainApproxNone ApproxMode = iota

	// ChainApproxSimple drops pixels in the middle of straight horizontal,
	// vertical and diagonal runs, keeping only their end points.
	ChainApproxSimple
)

// Contour is an ordered, implicitly closed sequence of points. The last point
// connects back to the first.
type Contour []image.Point

// Point2f is a point with sub-pixel coordinates.
type Point2f struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RotatedRect is a possibly rotated rectangle, as produced by MinAreaRect.
type RotatedRect struct {
	Center  Point2f
	Width   float64
	Height  float64
	Angle   float64 // degrees
	Corners [4]Point2f

	// Bounds, when set, is the integer bounding box computed by the backend
	// and is returned by BoundingRect as is.
	Bounds image.Rectangle
}

// BoundingRect returns Bounds if the backend set it, otherwise the smallest
// integer rectangle containing all four corners. Like OpenCV it floors the
// minimum, ceils the maximum and treats the maximum as inclusive, so Max is
// one past the ceiled extreme.
func (r RotatedRect) BoundingRect() image.Rectangle {
	if !r.Bounds.Empty() {
		return r.Bounds
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range r.Corners {
		minX = math.Min(minX, c.X)
		minY = math.Min(minY, c.Y)
		maxX = math.Max(maxX, c.X)
		maxY = math.Max(maxY, c.Y)
	}
	// Float noise from the rotation must not push an integral corner across
	// a pixel boundary.
	const eps = 1e-6
	x0 := int(math.Floor(minX + eps))
	y0 := int(math.Floor(minY + eps))
	x1 := int(math.Ceil(maxX - eps))
	y1 := int(math.Ceil(maxY - eps))
	return image.Rect(x0, y0, x1+1, y1+1)
}

// Scalar is a four-component value, used for per-channel means. Channel order
// follows the B-G-R convention: Val1 is blue, Val2 green, Val3 red.
type Scalar struct {
	Val1 float64
	Val2 float64
	Val3 float64
	Val4 float64
}

// Backend is the set of image processing primitives the annotation pipeline
// depends on. Implementations must not keep mutable state between calls so a
// single Backend can serve concurrent pipelines.
type Backend interface {
	// Name reports the registered backend name.
	Name() string

	// Grayscale converts a color image to a single-channel intensity image.
	Grayscale(src image.Image) (*image.Gray, error)

	// GaussianBlur smooths src with a ksize×ksize Gaussian kernel. A sigma of
	// zero derives sigma from the kernel size.
	GaussianBlur(src *image.Gray, ksize int, sigma float64) (*image.Gray, error)

	// Canny returns a binary edge map (255 = edge) using the given hysteresis
	// thresholds.
	Canny(src *image.Gray, low, high float64) (*image.Gray, error)

	// FindContours extracts borders from a binary image.
	FindContours(edges *image.Gray, mode RetrievalMode, method ApproxMode) ([]Contour, error)

	// ApproxPolyDP simplifies c so no dropped point lies further than
	// epsilon from the result.
	ApproxPolyDP(c Contour, epsilon float64, closed bool) Contour

	// ArcLength returns the perimeter (closed) or length (open) of c.
	ArcLength(c Contour, closed bool) float64

	// MinAreaRect returns the smallest-area rotated rectangle enclosing c.
	MinAreaRect(c Contour) RotatedRect

	// FillPoly fills the interior and outline of c in mask with value.
	FillPoly(mask *image.Gray, c Contour, value uint8) error

	// MeanWithMask averages src over the non-zero pixels of mask.
	MeanWithMask(src image.Image, mask *image.Gray) (Scalar, error)

	// Rectangle draws the outline of r with the given line thickness.
	Rectangle(dst draw.Image, r image.Rectangle, c color.Color, thickness int)

	// PutText draws text with its baseline starting at org, magnified by
	// scale.
	PutText(dst draw.Image, text string, org image.Point, c color.Color, scale int)
}

var (
	backendsMu sync.RWMutex
	backends   = make(map[string]func() Backend)
)

// Register makes a backend available to Open under name. Registering the same
// name twice replaces the earlier factory.
func Register(name string, factory func() Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = factory
}

// Open returns a new instance of the backend registered under name.
func Open(name string) (Backend, error) {
	backendsMu.RLock()
	factory, ok := backends[name]
	backendsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownBackend, name, Names())
	}
	return factory(), nil
}

// Names lists the registered backend names in sorted order.
func Names() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
