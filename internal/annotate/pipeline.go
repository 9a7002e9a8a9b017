package annotate

import (
	"fmt"
	"image"
	"log"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/shape-annotator/internal/vision"
)

// Pipeline parameters.
const (
	BlurKernelSize     = 5
	BlurSigma          = 0 // derived from the kernel size
	CannyLow           = 50
	CannyHigh          = 150
	ApproxEpsilonRatio = 0.02 // of each contour's closed perimeter
)

// Result is the outcome of processing one image.
type Result struct {
	Image    *image.NRGBA // Annotated copy of the source
	Contours int          // Contours the extractor reported
	Regions  []Region     // Annotated regions in extraction order
	Skipped  int          // Degenerate contours that were not annotated
}

// Pipeline annotates every closed shape in an image.
type Pipeline struct {
	backend   vision.Backend
	annotator *Annotator
	logger    *log.Logger
}

// NewPipeline returns a Pipeline running on backend. Skipped regions and
// labels are reported to logger; a nil logger keeps the pipeline silent.
func NewPipeline(backend vision.Backend, logger *log.Logger) *Pipeline {
	return &Pipeline{
		backend:   backend,
		annotator: NewAnnotator(backend),
		logger:    logger,
	}
}

// Backend returns the backend the pipeline runs on.
func (p *Pipeline) Backend() vision.Backend {
	return p.backend
}

func (p *Pipeline) debugf(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}

// Edges returns the binary edge map of src: grayscale, Gaussian blur and
// Canny with the pipeline's fixed parameters.
func (p *Pipeline) Edges(src image.Image) (*image.Gray, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	gray, err := p.backend.Grayscale(src)
	if err != nil {
		return nil, fmt.Errorf("grayscale failed: %w", err)
	}
	blurred, err := p.backend.GaussianBlur(gray, BlurKernelSize, BlurSigma)
	if err != nil {
		return nil, fmt.Errorf("blur failed: %w", err)
	}
	edges, err := p.backend.Canny(blurred, CannyLow, CannyHigh)
	if err != nil {
		return nil, fmt.Errorf("edge detection failed: %w", err)
	}
	return edges, nil
}

// Contours extracts the region boundaries of src as a flat list with
// redundant straight-run points removed.
func (p *Pipeline) Contours(src image.Image) ([]vision.Contour, error) {
	edges, err := p.Edges(src)
	if err != nil {
		return nil, err
	}
	contours, err := p.backend.FindContours(edges, vision.RetrievalList, vision.ChainApproxSimple)
	if err != nil {
		return nil, fmt.Errorf("contour extraction failed: %w", err)
	}
	return contours, nil
}

// Approximate simplifies c to a polygon with a tolerance proportional to
// its perimeter.
func (p *Pipeline) Approximate(c vision.Contour) vision.Contour {
	epsilon := ApproxEpsilonRatio * p.backend.ArcLength(c, true)
	return p.backend.ApproxPolyDP(c, epsilon, true)
}

// Process annotates a copy of src and returns it with the regions found.
// src itself is never modified. The copy's bounds start at (0, 0), and all
// coordinates in the result are relative to it.
//
// Regions are annotated in the order the backend extracts them; each one is
// sampled after earlier regions have been drawn.
func (p *Pipeline) Process(src image.Image) (*Result, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	out := imaging.Clone(src)

	contours, err := p.Contours(out)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Image:    out,
		Contours: len(contours),
		Regions:  make([]Region, 0, len(contours)),
	}

	for i, boundary := range contours {
		if len(boundary) < 3 {
			res.Skipped++
			p.debugf("region %d: skipped, %d boundary points", i, len(boundary))
			continue
		}

		polygon := p.Approximate(boundary)
		region, ok, err := p.annotator.Annotate(out, boundary, polygon)
		if err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}
		if !ok {
			res.Skipped++
			p.debugf("region %d: skipped, polygon has %d vertices", i, len(polygon))
			continue
		}

		region.Index = i
		res.Regions = append(res.Regions, region)
		p.debugf("region %d: %s at %v, sample %v", i, region.Label, region.Box, region.Sample)
	}

	return res, nil
}
