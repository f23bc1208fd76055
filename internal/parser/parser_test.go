package parser

import (
	"errors"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	cases := map[string]string{
		"order.pdf":    "pdf",
		"ORDER.XLSX":   "xlsx",
		"po.docx":      "docx",
		"quote.htm":    "html",
		"scan.jpeg":    "image",
		"receipt.tiff": "image",
	}
	for path, want := range cases {
		format, err := DetectFormat(path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if string(format) != want {
			t.Fatalf("%s: got %s want %s", path, format, want)
		}
	}
}

func TestDetectFormatUnsupported(t *testing.T) {
	_, err := DetectFormat("order.csv")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestTablesFromText(t *testing.T) {
	text := "PURCHASE ORDER\n" +
		"Item    Qty    Price\n" +
		"Widget A    3    10.00\n" +
		"\n" +
		"Total: 30.00\n"
	tables := tablesFromText(text)
	if len(tables) != 1 {
		t.Fatalf("tables=%d", len(tables))
	}
	if len(tables[0]) != 2 || tables[0][1][0] != "Widget A" {
		t.Fatalf("rows=%v", tables[0])
	}
}

func TestTablesFromTextNoColumns(t *testing.T) {
	if tables := tablesFromText("just a line\nanother line\n"); len(tables) != 0 {
		t.Fatalf("tables=%d", len(tables))
	}
}
