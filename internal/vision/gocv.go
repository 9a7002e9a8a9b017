//go:build gocv

package vision

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// GoCVName is the registered name of the OpenCV backend.
const GoCVName = "gocv"

func init() {
	Register(GoCVName, func() Backend { return NewGoCV() })
}

// GoCV runs the pixel pipeline through OpenCV. Drawing stays on the native
// implementation so output images are Go images either way.
//
// Unlike Native, OpenCV's list retrieval also reports the inner border of
// every closed edge ring, so a shape typically yields two near-identical
// contours.
type GoCV struct {
	*Native
}

// NewGoCV returns the OpenCV backend.
func NewGoCV() *GoCV {
	return &GoCV{Native: NewNative()}
}

// Name implements Backend.
func (*GoCV) Name() string { return GoCVName }

// Grayscale implements Backend.
func (*GoCV) Grayscale(src image.Image) (*image.Gray, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, fmt.Errorf("grayscale: empty image")
	}
	bgr, err := imageToBGR(src)
	if err != nil {
		return nil, err
	}
	defer bgr.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(bgr, &gray, gocv.ColorBGRToGray)

	return matToGray(gray, src.Bounds())
}

// GaussianBlur implements Backend.
func (*GoCV) GaussianBlur(src *image.Gray, ksize int, sigma float64) (*image.Gray, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, fmt.Errorf("gaussian blur: empty image")
	}
	if ksize < 1 || ksize%2 == 0 {
		return nil, fmt.Errorf("gaussian blur: kernel size must be odd and positive, got %d", ksize)
	}
	in, err := grayToMat(src)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	out := gocv.NewMat()
	defer out.Close()
	gocv.GaussianBlur(in, &out, image.Pt(ksize, ksize), sigma, sigma, gocv.BorderDefault)

	return matToGray(out, src.Bounds())
}

// Canny implements Backend.
func (*GoCV) Canny(src *image.Gray, low, high float64) (*image.Gray, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, fmt.Errorf("canny: empty image")
	}
	in, err := grayToMat(src)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(in, &edges, float32(low), float32(high))

	return matToGray(edges, src.Bounds())
}

// FindContours implements Backend.
func (*GoCV) FindContours(edges *image.Gray, mode RetrievalMode, method ApproxMode) ([]Contour, error) {
	if mode != RetrievalList {
		return nil, fmt.Errorf("%w: retrieval mode %d", ErrUnsupported, mode)
	}
	var cvMethod gocv.ContourApproximationMode
	switch method {
	case ChainApproxNone:
		cvMethod = gocv.ChainApproxNone
	case ChainApproxSimple:
		cvMethod = gocv.ChainApproxSimple
	default:
		return nil, fmt.Errorf("%w: approximation mode %d", ErrUnsupported, method)
	}
	if edges == nil {
		return nil, nil
	}

	in, err := grayToMat(edges)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	found := gocv.FindContours(in, gocv.RetrievalList, cvMethod)
	defer found.Close()

	origin := edges.Bounds().Min
	contours := make([]Contour, 0, found.Size())
	for i := 0; i < found.Size(); i++ {
		pts := found.At(i).ToPoints()
		c := make(Contour, len(pts))
		for j, p := range pts {
			c[j] = p.Add(origin)
		}
		contours = append(contours, c)
	}
	return contours, nil
}

// ApproxPolyDP implements Backend.
func (*GoCV) ApproxPolyDP(c Contour, epsilon float64, closed bool) Contour {
	if len(c) == 0 {
		return Contour{}
	}
	pv := gocv.NewPointVectorFromPoints(c)
	defer pv.Close()

	approx := gocv.ApproxPolyDP(pv, epsilon, closed)
	defer approx.Close()

	return Contour(approx.ToPoints())
}

// ArcLength implements Backend.
func (*GoCV) ArcLength(c Contour, closed bool) float64 {
	if len(c) < 2 {
		return 0
	}
	pv := gocv.NewPointVectorFromPoints(c)
	defer pv.Close()
	return gocv.ArcLength(pv, closed)
}

// MinAreaRect implements Backend.
func (*GoCV) MinAreaRect(c Contour) RotatedRect {
	if len(c) == 0 {
		return RotatedRect{}
	}
	pv := gocv.NewPointVectorFromPoints(c)
	defer pv.Close()

	rr := gocv.MinAreaRect(pv)
	out := RotatedRect{
		Center: Point2f{X: float64(rr.Center.X), Y: float64(rr.Center.Y)},
		Width:  float64(rr.Width),
		Height: float64(rr.Height),
		Angle:  rr.Angle,
		Bounds: rr.BoundingRect,
	}
	for i := 0; i < len(rr.Points) && i < len(out.Corners); i++ {
		out.Corners[i] = Point2f{X: float64(rr.Points[i].X), Y: float64(rr.Points[i].Y)}
	}
	return out
}

// FillPoly implements Backend.
func (*GoCV) FillPoly(mask *image.Gray, c Contour, value uint8) error {
	if mask == nil || len(c) == 0 {
		return nil
	}
	m, err := grayToMat(mask)
	if err != nil {
		return err
	}
	defer m.Close()

	origin := mask.Bounds().Min
	local := make([]image.Point, len(c))
	for i, p := range c {
		local[i] = p.Sub(origin)
	}
	pts := gocv.NewPointsVectorFromPoints([][]image.Point{local})
	defer pts.Close()

	gocv.FillPoly(&m, pts, color.RGBA{R: value, G: value, B: value, A: 255})

	filled, err := matToGray(m, mask.Bounds())
	if err != nil {
		return err
	}
	copy(mask.Pix, filled.Pix)
	return nil
}

// MeanWithMask implements Backend.
func (*GoCV) MeanWithMask(src image.Image, mask *image.Gray) (Scalar, error) {
	if src == nil || mask == nil {
		return Scalar{}, fmt.Errorf("%w: missing image or mask", ErrSizeMismatch)
	}
	if src.Bounds() != mask.Bounds() {
		return Scalar{}, fmt.Errorf("%w: image %v, mask %v", ErrSizeMismatch, src.Bounds(), mask.Bounds())
	}

	bgr, err := imageToBGR(src)
	if err != nil {
		return Scalar{}, err
	}
	defer bgr.Close()

	m, err := grayToMat(mask)
	if err != nil {
		return Scalar{}, err
	}
	defer m.Close()

	s := bgr.MeanWithMask(m)
	return Scalar{Val1: s.Val1, Val2: s.Val2, Val3: s.Val3, Val4: s.Val4}, nil
}

// grayToMat copies a Gray image into a new single-channel Mat.
func grayToMat(src *image.Gray) (gocv.Mat, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	buf := make([]byte, w*h)
	for y := 0; y < h; y++ {
		off := (y+b.Min.Y-src.Rect.Min.Y)*src.Stride + (b.Min.X - src.Rect.Min.X)
		copy(buf[y*w:(y+1)*w], src.Pix[off:off+w])
	}
	return gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC1, buf)
}

// imageToBGR copies any image into a new 3-channel Mat in BGR order.
func imageToBGR(src image.Image) (gocv.Mat, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	buf := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := (y*w + x) * 3
			buf[i+0] = c.B
			buf[i+1] = c.G
			buf[i+2] = c.R
		}
	}
	return gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC3, buf)
}

// matToGray copies a single-channel Mat into a Gray image with the given
// bounds.
func matToGray(m gocv.Mat, bounds image.Rectangle) (*image.Gray, error) {
	if m.Rows() != bounds.Dy() || m.Cols() != bounds.Dx() {
		return nil, fmt.Errorf("%w: mat %dx%d, want %dx%d", ErrSizeMismatch, m.Cols(), m.Rows(), bounds.Dx(), bounds.Dy())
	}
	data := m.ToBytes()
	dst := image.NewGray(bounds)
	w := bounds.Dx()
	for y := 0; y < bounds.Dy(); y++ {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+w], data[y*w:(y+1)*w])
	}
	return dst, nil
}
