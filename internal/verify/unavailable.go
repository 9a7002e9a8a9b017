//go:build !ocr

package verify

// NewReader reports ErrUnavailable; OCR is compiled in with the "ocr" tag.
func NewReader() (Reader, error) {
	return nil, ErrUnavailable
}
