//go:build ocr

package parser

import (
	"os"

	"github.com/otiai10/gosseract/v2"

	"po2so/internal"
)

// parseImage runs Tesseract over the image. OCR output carries no table
// structure; cell detection inside rasterized images is not attempted.
func parseImage(path string) (internal.ParsedDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return internal.ParsedDocument{}, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(content); err != nil {
		return internal.ParsedDocument{}, err
	}
	text, err := client.Text()
	if err != nil {
		return internal.ParsedDocument{}, err
	}
	return internal.ParsedDocument{Text: text}, nil
}
