//go:build !ocr

package parser

import (
	"errors"

	"po2so/internal"
)

// ErrOCRNotEnabled is returned for image inputs when the binary was built
// without the "ocr" tag. Rebuild with -tags ocr (requires Tesseract).
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

func parseImage(path string) (internal.ParsedDocument, error) {
	return internal.ParsedDocument{}, ErrOCRNotEnabled
}
