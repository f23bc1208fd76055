package extract

import (
	"strings"

	"po2so/internal"
	"po2so/internal/util"
)

// Header keywords that vote a table in as the line-items grid.
var lineItemHeaderKeywords = []string{"item", "code", "description", "qty", "quantity", "price", "amount", "total"}

// Column keyword sets for mapping header cells to semantic columns. The
// description and code sets overlap on purpose; a table may carry both.
var (
	descriptionKeywords = []string{"item", "product", "description", "part", "sku"}
	codeKeywords        = []string{"code", "sku", "part number", "item number", "id"}
	quantityKeywords    = []string{"qty", "quantity", "amount", "units"}
	unitPriceKeywords   = []string{"price", "rate", "unit price", "cost"}
	totalPriceKeywords  = []string{"total", "amount", "line total", "extended"}
)

// FindLineItemsTable picks the table that most likely holds the line
// items: first by header-keyword vote, then by size as a last resort.
// Returns nil only for an empty collection.
func FindLineItemsTable(tables []internal.Table) internal.Table {
	for _, table := range tables {
		if headerRowIndex(table) >= 0 {
			return table
		}
	}

	// No header matched; best guess by size.
	var largest internal.Table
	maxRows := 0
	for _, table := range tables {
		if len(table) > maxRows {
			maxRows = len(table)
			largest = table
		}
	}
	return largest
}

// ExtractLineItems walks the data rows of a classified table, converting
// cells to typed values. The header row may sit below preamble rows, as
// in a spreadsheet grid. Rows without a description/code and a quantity
// are dropped; row order is preserved.
func ExtractLineItems(table internal.Table) []internal.LineItem {
	if len(table) < 2 {
		return nil
	}

	hdr := headerRowIndex(table)
	if hdr < 0 {
		hdr = 0
	}
	if len(table)-hdr < 2 {
		return nil
	}

	header := lowerCells(table[hdr])
	descIdx := findColumn(header, descriptionKeywords)
	codeIdx := findColumn(header, codeKeywords)
	qtyIdx := findColumn(header, quantityKeywords)
	priceIdx := findColumn(header, unitPriceKeywords)
	totalIdx := findColumn(header, totalPriceKeywords)

	out := make([]internal.LineItem, 0, len(table)-hdr-1)
	for _, row := range table[hdr+1:] {
		if emptyRow(row) {
			continue
		}

		var item internal.LineItem
		if cell := cellAt(row, descIdx); cell != "" {
			item.Description = util.StringPtr(cell)
		}
		if cell := cellAt(row, codeIdx); cell != "" {
			item.ItemCode = util.StringPtr(cell)
		}
		if cell := cellAt(row, qtyIdx); cell != "" {
			if v, ok := util.ParseNumeric(cell); ok {
				item.Quantity = util.FloatPtr(v)
			}
		}
		if cell := cellAt(row, priceIdx); cell != "" {
			if v, ok := util.ParseNumeric(cell); ok {
				item.UnitPrice = util.FloatPtr(v)
			}
		}
		if cell := cellAt(row, totalIdx); cell != "" {
			if v, ok := util.ParseNumeric(cell); ok {
				item.TotalPrice = util.FloatPtr(v)
			}
		}

		if item.TotalPrice == nil && item.Quantity != nil && item.UnitPrice != nil {
			item.TotalPrice = util.FloatPtr(*item.Quantity * *item.UnitPrice)
		}

		if (item.Description != nil || item.ItemCode != nil) && item.Quantity != nil {
			out = append(out, item)
		}
	}
	return out
}

// headerRowIndex finds the first row carrying at least three distinct
// header keywords, or -1. The header is usually row 0 but spreadsheet
// grids often put label rows above it.
func headerRowIndex(table internal.Table) int {
	for i, row := range table {
		cells := lowerCells(row)
		votes := 0
		for _, kw := range lineItemHeaderKeywords {
			for _, cell := range cells {
				if cell != "" && strings.Contains(cell, kw) {
					votes++
					break
				}
			}
		}
		if votes >= 3 {
			return i
		}
	}
	return -1
}

func lowerCells(row []string) []string {
	out := make([]string, 0, len(row))
	for _, c := range row {
		out = append(out, strings.ToLower(strings.TrimSpace(c)))
	}
	return out
}

func findColumn(header []string, keywords []string) int {
	for i, cell := range header {
		for _, kw := range keywords {
			if strings.Contains(cell, kw) {
				return i
			}
		}
	}
	return -1
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func emptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
