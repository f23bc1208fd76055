package export

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	dir := t.TempDir()
	so := sampleOrder()

	path, err := WriteXLSX(so, dir)
	if err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	order, err := f.GetRows("Order")
	if err != nil {
		t.Fatalf("Order sheet: %v", err)
	}
	if len(order) != 2 {
		t.Fatalf("Order rows = %d, want 2", len(order))
	}
	if order[1][0] != "SO-000042" {
		t.Errorf("so_number = %q", order[1][0])
	}

	items, err := f.GetRows("Line Items")
	if err != nil {
		t.Fatalf("Line Items sheet: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Line Items rows = %d, want 3", len(items))
	}
	if items[1][2] != "Widget A" {
		t.Errorf("description = %q", items[1][2])
	}
}
