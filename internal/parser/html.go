package parser

import (
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"po2so/internal"
	"po2so/internal/util"
)

func parseHTML(path string) (internal.ParsedDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return internal.ParsedDocument{}, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return internal.ParsedDocument{}, err
	}

	var tables []internal.Table
	doc.Find("table").Each(func(_ int, sel *goquery.Selection) {
		table := internal.Table{}
		sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var cells []string
			tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, util.NormalizeSpaces(cell.Text()))
			})
			if len(cells) > 0 {
				table = append(table, cells)
			}
		})
		if len(table) > 0 {
			tables = append(tables, table)
		}
	})

	// Drop table markup from the text view so line-oriented field rules
	// see prose, not cell soup.
	body := doc.Find("body")
	if body.Length() > 0 {
		body.Find("table").Remove()
	}
	text := strings.Builder{}
	body.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if sel.Children().Length() > 0 {
			return
		}
		line := util.NormalizeSpaces(sel.Text())
		if line != "" {
			text.WriteString(line)
			text.WriteString("\n")
		}
	})

	return internal.ParsedDocument{Text: text.String(), Tables: tables}, nil
}
