// Package parser turns purchase-order files of various formats into the
// uniform ParsedDocument shape the extraction core consumes. Readers never
// signal "no content found" as an error; an empty document is valid.
package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"po2so/internal"
)

// ErrUnsupportedType is returned for file extensions no reader handles.
var ErrUnsupportedType = errors.New("unsupported file type")

// DetectFormat maps a file path to its document format by extension.
func DetectFormat(path string) (internal.DocumentFormat, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "pdf":
		return internal.FormatPDF, nil
	case "xlsx", "xls":
		return internal.FormatXLSX, nil
	case "docx":
		return internal.FormatDOCX, nil
	case "html", "htm":
		return internal.FormatHTML, nil
	case "jpg", "jpeg", "png", "tif", "tiff", "bmp":
		return internal.FormatImage, nil
	default:
		return "", fmt.Errorf("%w: .%s", ErrUnsupportedType, ext)
	}
}

// Parse reads the file and routes it to the format-specific reader.
func Parse(path string) (internal.ParsedDocument, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return internal.ParsedDocument{}, fmt.Errorf("detect %s: %w", filepath.Base(path), err)
	}

	var doc internal.ParsedDocument
	switch format {
	case internal.FormatPDF:
		doc, err = parsePDF(path)
	case internal.FormatXLSX:
		doc, err = parseXLSX(path)
	case internal.FormatDOCX:
		doc, err = parseDOCX(path)
	case internal.FormatHTML:
		doc, err = parseHTML(path)
	case internal.FormatImage:
		doc, err = parseImage(path)
	}
	if err != nil {
		return internal.ParsedDocument{}, fmt.Errorf("parse %s (%s): %w", filepath.Base(path), format, err)
	}
	return doc, nil
}
