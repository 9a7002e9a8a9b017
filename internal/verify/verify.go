// Package verify reads drawn labels back out of an annotated image with OCR
// and compares them with the labels the pipeline meant to draw.
//
// OCR needs Tesseract and is compiled in only with the "ocr" build tag.
// Without it, NewReader returns ErrUnavailable.
package verify

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/shape-annotator/internal/annotate"
	"github.com/ironsheep/shape-annotator/internal/imageio"
)

// ErrUnavailable is returned when the binary was built without OCR support.
var ErrUnavailable = errors.New("verify: OCR support not built in (rebuild with -tags ocr)")

// labelPadding widens each label crop so glyph edges are not cut off.
const labelPadding = 4

// Reader recognizes text in a PNG-encoded image.
type Reader interface {
	ReadText(pngData []byte) (string, error)
}

// LabelCheck is the outcome for one region's label.
type LabelCheck struct {
	Index    int    `json:"index"`
	Expected string `json:"expected"`
	Read     string `json:"read"`
	Match    bool   `json:"match"`
}

// Report summarizes a CheckLabels run.
type Report struct {
	Checks  []LabelCheck `json:"checks"`
	Matched int          `json:"matched"`
	Total   int          `json:"total"`
}

// CheckLabels crops the label area of every region from img, runs it
// through r, and compares the text with the region's label ignoring case
// and whitespace. A label drawn entirely outside the image counts as a
// mismatch with nothing read.
func CheckLabels(r Reader, img image.Image, regions []annotate.Region) (*Report, error) {
	report := &Report{
		Checks: make([]LabelCheck, 0, len(regions)),
		Total:  len(regions),
	}

	for _, region := range regions {
		check := LabelCheck{Index: region.Index, Expected: region.Label}

		area := region.LabelBounds.Rect().Inset(-labelPadding).Intersect(img.Bounds())
		if !area.Empty() {
			crop := imaging.Grayscale(imaging.Crop(img, area))
			data, err := imageio.PNGBytes(crop)
			if err != nil {
				return nil, fmt.Errorf("region %d: %w", region.Index, err)
			}
			text, err := r.ReadText(data)
			if err != nil {
				return nil, fmt.Errorf("region %d: ocr failed: %w", region.Index, err)
			}
			check.Read = strings.TrimSpace(text)
			check.Match = normalize(check.Read) == normalize(check.Expected)
		}

		if check.Match {
			report.Matched++
		}
		report.Checks = append(report.Checks, check)
	}

	return report, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
