package parser

import (
	"bytes"
	"os"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"

	"po2so/internal"
	"po2so/internal/util"
)

var reCellGap = regexp.MustCompile(`\s{2,}`)

func parsePDF(path string) (internal.ParsedDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return internal.ParsedDocument{}, err
	}

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return internal.ParsedDocument{}, err
	}

	text := strings.Builder{}
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		pageText, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}

	// A scanned PDF yields little or no text here. Recovering it would
	// mean rasterizing pages for Tesseract, which no wired library does;
	// such documents come through as image files instead.
	plain := text.String()

	return internal.ParsedDocument{
		Text:   plain,
		Tables: tablesFromText(plain),
	}, nil
}

// tablesFromText reconstructs grid-like regions from plain text: runs of
// consecutive lines whose cells are separated by 2+ spaces. Best effort
// only; a PDF without column gaps yields no tables.
func tablesFromText(text string) []internal.Table {
	var tables []internal.Table
	var current internal.Table

	flush := func() {
		if len(current) >= 2 {
			tables = append(tables, current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		cells := splitCells(line)
		if len(cells) >= 2 {
			current = append(current, cells)
			continue
		}
		flush()
	}
	flush()
	return tables
}

func splitCells(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	parts := reCellGap.Split(line, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, util.NormalizeSpaces(p))
	}
	return out
}
