package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"po2so/internal"
	"po2so/internal/util"
)

func parseXLSX(path string) (internal.ParsedDocument, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return internal.ParsedDocument{}, err
	}
	defer f.Close()

	text := strings.Builder{}
	var tables []internal.Table
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		if len(rows) == 0 {
			continue
		}

		fmt.Fprintf(&text, "Sheet: %s\n", sheet)
		table := make(internal.Table, 0, len(rows))
		for _, row := range rows {
			cells := make([]string, 0, len(row))
			for _, c := range row {
				cells = append(cells, util.NormalizeSpaces(c))
			}
			table = append(table, cells)
			text.WriteString(strings.Join(cells, "\t"))
			text.WriteString("\n")
		}
		text.WriteString("\n")
		tables = append(tables, table)
	}

	return internal.ParsedDocument{Text: text.String(), Tables: tables}, nil
}
