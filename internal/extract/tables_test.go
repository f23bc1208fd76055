package extract

import (
	"testing"

	"po2so/internal"
)

func TestFindLineItemsTableByHeaderVote(t *testing.T) {
	noise := internal.Table{
		{"Date", "Note"},
		{"01/01", "a"}, {"01/02", "b"}, {"01/03", "c"}, {"01/04", "d"},
	}
	items := internal.Table{
		{"SKU", "Description", "Qty", "Price"},
		{"W-1", "Widget", "2", "5.00"},
	}

	// The keyword table wins even though the noise table has more rows.
	got := FindLineItemsTable([]internal.Table{noise, items})
	if len(got) != 2 || got[0][0] != "SKU" {
		t.Fatalf("wrong table selected: %v", got)
	}
}

func TestFindLineItemsTableFallsBackToLargest(t *testing.T) {
	small := internal.Table{{"a", "b"}, {"1", "2"}}
	large := internal.Table{{"x", "y"}, {"1", "2"}, {"3", "4"}}
	got := FindLineItemsTable([]internal.Table{small, large})
	if len(got) != 3 {
		t.Fatalf("expected largest table, got %d rows", len(got))
	}
}

func TestFindLineItemsTableEmptyInput(t *testing.T) {
	if got := FindLineItemsTable(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestExtractLineItemsDerivesTotal(t *testing.T) {
	table := internal.Table{
		{"Item", "Qty", "Unit Price"},
		{"Widget A", "3", "10.00"},
	}
	items := ExtractLineItems(table)
	if len(items) != 1 {
		t.Fatalf("len=%d", len(items))
	}
	it := items[0]
	if it.Description == nil || *it.Description != "Widget A" {
		t.Fatalf("description %v", it.Description)
	}
	if it.Quantity == nil || *it.Quantity != 3 {
		t.Fatalf("quantity %v", it.Quantity)
	}
	if it.UnitPrice == nil || *it.UnitPrice != 10 {
		t.Fatalf("unit price %v", it.UnitPrice)
	}
	if it.TotalPrice == nil || *it.TotalPrice != 30 {
		t.Fatalf("total %v", it.TotalPrice)
	}
}

func TestExtractLineItemsSeparateCodeColumn(t *testing.T) {
	table := internal.Table{
		{"Code", "Description", "Qty", "Unit Price", "Total"},
		{"ABC-1", "Left-handed hammer", "2", "$12.50", "$25.00"},
	}
	items := ExtractLineItems(table)
	if len(items) != 1 {
		t.Fatalf("len=%d", len(items))
	}
	if items[0].ItemCode == nil || *items[0].ItemCode != "ABC-1" {
		t.Fatalf("code %v", items[0].ItemCode)
	}
	if items[0].TotalPrice == nil || *items[0].TotalPrice != 25 {
		t.Fatalf("total %v", items[0].TotalPrice)
	}
}

func TestExtractLineItemsSkipsIncompleteRows(t *testing.T) {
	table := internal.Table{
		{"Item", "Qty", "Price"},
		{"", "", ""},
		{"No quantity here", "", "9.00"},
		{"Valid", "1", "9.00"},
	}
	items := ExtractLineItems(table)
	if len(items) != 1 {
		t.Fatalf("len=%d", len(items))
	}
	if *items[0].Description != "Valid" {
		t.Fatalf("description %q", *items[0].Description)
	}
}

func TestExtractLineItemsRaggedRow(t *testing.T) {
	table := internal.Table{
		{"Item", "Qty", "Unit Price"},
		{"Short row", "4"},
	}
	items := ExtractLineItems(table)
	if len(items) != 1 {
		t.Fatalf("len=%d", len(items))
	}
	if items[0].UnitPrice != nil {
		t.Fatalf("expected absent unit price, got %v", *items[0].UnitPrice)
	}
	if items[0].TotalPrice != nil {
		t.Fatalf("expected absent total, got %v", *items[0].TotalPrice)
	}
}

func TestExtractLineItemsHeaderBelowPreamble(t *testing.T) {
	table := internal.Table{
		{"PURCHASE ORDER"},
		{"PO Number: PO-1"},
		{},
		{"Item Code", "Description", "Qty", "Unit Price", "Total"},
		{"W-1", "Widget", "2", "5.00", "10.00"},
	}
	items := ExtractLineItems(table)
	if len(items) != 1 {
		t.Fatalf("len=%d", len(items))
	}
	if items[0].Quantity == nil || *items[0].Quantity != 2 {
		t.Fatalf("quantity %v", items[0].Quantity)
	}
	if got := FindLineItemsTable([]internal.Table{table}); len(got) != 5 {
		t.Fatalf("table with buried header not classified")
	}
}

func TestExtractLineItemsHeaderOnly(t *testing.T) {
	if items := ExtractLineItems(internal.Table{{"Item", "Qty", "Price"}}); len(items) != 0 {
		t.Fatalf("len=%d", len(items))
	}
}
