//go:build ocr

package verify

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// labelCharset is every character a label can contain.
const labelCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz "

// Tesseract reads text with the system Tesseract installation.
type Tesseract struct {
	// Language is the Tesseract language code, "eng" by default.
	Language string
}

// NewReader returns a Tesseract reader for English text.
func NewReader() (Reader, error) {
	return &Tesseract{Language: "eng"}, nil
}

// ReadText runs OCR over a PNG image treated as a single line of text.
func (t *Tesseract) ReadText(pngData []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.Language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		return "", fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetWhitelist(labelCharset); err != nil {
		return "", fmt.Errorf("failed to set whitelist: %w", err)
	}
	if err := client.SetImageFromBytes(pngData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return text, nil
}
