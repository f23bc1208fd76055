// Package export renders sales orders as the two linked delimited-text
// outputs: a single-row client/order summary and a multi-row line-items
// table, joined by the sales-order number.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"po2so/internal"
	"po2so/internal/util"
)

var clientInfoHeader = []string{
	"so_number", "so_date",
	"client_name", "client_phone", "client_email", "client_address",
	"po_number", "creation_date", "due_date", "payment_terms",
	"subtotal", "tax", "shipping", "total_amount",
	"ship_to_name", "ship_to_address", "ship_to_phone",
	"comments",
}

var lineItemsHeader = []string{
	"so_number", "item_code", "description", "quantity",
	"unit_price", "total_price",
	"po_number", "creation_date", "due_date",
}

// Paths names the files one export run produced.
type Paths struct {
	ClientInfo string
	LineItems  string
}

// WriteCSV writes both outputs into outputDir, named by SO number.
func WriteCSV(so internal.SalesOrder, outputDir string) (Paths, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Paths{}, err
	}

	paths := Paths{
		ClientInfo: filepath.Join(outputDir, fmt.Sprintf("client_info_%s.csv", so.SONumber)),
		LineItems:  filepath.Join(outputDir, fmt.Sprintf("line_items_%s.csv", so.SONumber)),
	}

	if err := writeRows(paths.ClientInfo, clientInfoHeader, [][]string{clientInfoRow(so)}); err != nil {
		return Paths{}, fmt.Errorf("export client info: %w", err)
	}
	if err := writeRows(paths.LineItems, lineItemsHeader, lineItemRows(so)); err != nil {
		return Paths{}, fmt.Errorf("export line items: %w", err)
	}
	return paths, nil
}

func clientInfoRow(so internal.SalesOrder) []string {
	rec := so.Record
	po := rec.PODetails
	return []string{
		so.SONumber, so.SODate,
		util.DerefString(rec.ClientInfo.Name),
		util.DerefString(rec.ClientInfo.Phone),
		util.DerefString(rec.ClientInfo.Email),
		util.DerefString(rec.ClientInfo.Address),
		util.DerefString(po.PONumber),
		util.DerefString(po.CreationDate),
		util.DerefString(po.DueDate),
		util.DerefString(po.PaymentTerms),
		moneyCell(po.Subtotal),
		moneyCell(po.Tax),
		moneyCell(po.Shipping),
		moneyCell(po.TotalAmount),
		util.DerefString(rec.ShipTo.Name),
		util.DerefString(rec.ShipTo.Address),
		util.DerefString(rec.ShipTo.Phone),
		util.DerefString(po.Comments),
	}
}

func lineItemRows(so internal.SalesOrder) [][]string {
	po := so.Record.PODetails
	out := make([][]string, 0, len(so.Record.LineItems))
	for _, item := range so.Record.LineItems {
		out = append(out, []string{
			so.SONumber,
			util.DerefString(item.ItemCode),
			util.DerefString(item.Description),
			quantityCell(item.Quantity),
			moneyCell(item.UnitPrice),
			moneyCell(item.TotalPrice),
			util.DerefString(po.PONumber),
			util.DerefString(po.CreationDate),
			util.DerefString(po.DueDate),
		})
	}
	return out
}

func writeRows(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func moneyCell(v *float64) string {
	if v == nil {
		return ""
	}
	return util.FormatMoney(*v)
}

func quantityCell(v *float64) string {
	if v == nil {
		return ""
	}
	return util.FormatQuantity(*v)
}
