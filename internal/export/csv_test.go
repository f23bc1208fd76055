package export

import (
	"encoding/csv"
	"os"
	"testing"

	"po2so/internal"
	"po2so/internal/util"
)

func sampleOrder() internal.SalesOrder {
	return internal.SalesOrder{
		SONumber: "SO-000042",
		SODate:   "2024-03-15",
		Record: internal.ExtractionRecord{
			ClientInfo: internal.ClientInfo{
				Name:    util.StringPtr("Acme Corp"),
				Phone:   util.StringPtr("(555) 123-4567"),
				Email:   util.StringPtr("orders@acme.example"),
				Address: util.StringPtr("12 Main St, Springfield, IL 62701"),
			},
			PODetails: internal.PODetails{
				PONumber:     util.StringPtr("PO-12345"),
				CreationDate: util.StringPtr("03/15/2024"),
				DueDate:      util.StringPtr("03/15/2024"),
				PaymentTerms: util.StringPtr("Net 30"),
				Subtotal:     util.FloatPtr(40),
				Tax:          util.FloatPtr(3.4),
				Shipping:     util.FloatPtr(75),
				TotalAmount:  util.FloatPtr(118.4),
			},
			LineItems: []internal.LineItem{
				{
					ItemCode:    util.StringPtr("WID-1"),
					Description: util.StringPtr("Widget A"),
					Quantity:    util.FloatPtr(3),
					UnitPrice:   util.FloatPtr(10),
					TotalPrice:  util.FloatPtr(30),
				},
				{
					Description: util.StringPtr("Widget B"),
					Quantity:    util.FloatPtr(1),
					UnitPrice:   util.FloatPtr(10),
					TotalPrice:  util.FloatPtr(10),
				},
			},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func TestWriteCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	so := sampleOrder()

	paths, err := WriteCSV(so, dir)
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	client := readCSV(t, paths.ClientInfo)
	if len(client) != 2 {
		t.Fatalf("client info rows = %d, want header + 1", len(client))
	}
	if got := len(client[0]); got != len(clientInfoHeader) {
		t.Fatalf("client header width = %d, want %d", got, len(clientInfoHeader))
	}
	if client[1][0] != "SO-000042" {
		t.Errorf("client so_number = %q", client[1][0])
	}
	if client[1][2] != "Acme Corp" {
		t.Errorf("client_name = %q", client[1][2])
	}
	if client[1][13] != "118.40" {
		t.Errorf("total_amount = %q, want 118.40", client[1][13])
	}

	items := readCSV(t, paths.LineItems)
	if len(items) != 3 {
		t.Fatalf("line item rows = %d, want header + 2", len(items))
	}
	for _, row := range items[1:] {
		if row[0] != client[1][0] {
			t.Errorf("line item so_number = %q, want %q", row[0], client[1][0])
		}
	}
	if items[1][3] != "3" {
		t.Errorf("quantity = %q, want 3", items[1][3])
	}
	if items[1][5] != "30.00" {
		t.Errorf("total_price = %q, want 30.00", items[1][5])
	}
	if items[2][1] != "" {
		t.Errorf("missing item_code = %q, want empty", items[2][1])
	}
}

func TestWriteCSVNoLineItems(t *testing.T) {
	dir := t.TempDir()
	so := sampleOrder()
	so.Record.LineItems = nil

	paths, err := WriteCSV(so, dir)
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	items := readCSV(t, paths.LineItems)
	if len(items) != 1 {
		t.Fatalf("line item rows = %d, want header only", len(items))
	}
}

func TestWriteCSVMissingFields(t *testing.T) {
	dir := t.TempDir()
	so := internal.SalesOrder{SONumber: "SO-000001", SODate: "2024-01-01"}

	paths, err := WriteCSV(so, dir)
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	client := readCSV(t, paths.ClientInfo)
	for i, cell := range client[1][2:] {
		if cell != "" {
			t.Errorf("column %s = %q, want empty", clientInfoHeader[i+2], cell)
		}
	}
}
