package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"po2so/internal"
)

// WriteXLSX writes a combined workbook with the order summary on one
// sheet and the line items on another, named sales_order_<so>.xlsx.
func WriteXLSX(so internal.SalesOrder, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}
	outputPath := filepath.Join(outputDir, fmt.Sprintf("sales_order_%s.xlsx", so.SONumber))

	f := excelize.NewFile()
	orderSheet := f.GetSheetName(0)
	if err := f.SetSheetName(orderSheet, "Order"); err != nil {
		return "", err
	}
	if _, err := f.NewSheet("Line Items"); err != nil {
		return "", err
	}

	writeSheet(f, "Order", clientInfoHeader, [][]string{clientInfoRow(so)})
	writeSheet(f, "Line Items", lineItemsHeader, lineItemRows(so))

	if err := f.SaveAs(outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]string) {
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for i, row := range rows {
		for j, value := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}
}
