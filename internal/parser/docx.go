package parser

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"po2so/internal"
)

// parseDOCX reads a Word document directly from its OOXML parts:
// paragraphs become text lines, w:tbl grids become tables. Nested tables
// are flattened into their parent cell's text.
func parseDOCX(path string) (internal.ParsedDocument, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return internal.ParsedDocument{}, err
	}
	defer zr.Close()

	var body io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			body, err = f.Open()
			if err != nil {
				return internal.ParsedDocument{}, err
			}
			break
		}
	}
	if body == nil {
		return internal.ParsedDocument{}, errors.New("word/document.xml not found")
	}
	defer body.Close()

	return readDocumentXML(body)
}

func readDocumentXML(r io.Reader) (internal.ParsedDocument, error) {
	dec := xml.NewDecoder(r)

	var (
		text     strings.Builder
		tables   []internal.Table
		table    internal.Table
		row      []string
		cell     strings.Builder
		tblDepth int
		inRun    bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return internal.ParsedDocument{}, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth++
				if tblDepth == 1 {
					table = internal.Table{}
				}
			case "tr":
				if tblDepth == 1 {
					row = nil
				}
			case "tc":
				if tblDepth == 1 {
					cell.Reset()
				}
			case "t":
				inRun = true
			}
		case xml.CharData:
			if !inRun {
				continue
			}
			if tblDepth > 0 {
				cell.Write(t)
			} else {
				text.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth--
				if tblDepth == 0 && len(table) > 0 {
					tables = append(tables, table)
				}
			case "tr":
				if tblDepth == 1 && row != nil {
					table = append(table, row)
				}
			case "tc":
				if tblDepth == 1 {
					row = append(row, strings.TrimSpace(cell.String()))
				}
			case "p":
				if tblDepth == 0 {
					text.WriteString("\n")
				} else {
					cell.WriteString(" ")
				}
			case "t":
				inRun = false
			}
		}
	}

	return internal.ParsedDocument{Text: text.String(), Tables: tables}, nil
}
