package extract

import (
	"reflect"
	"testing"
	"time"

	"po2so/internal"
	"po2so/internal/util"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func TestCompleteEmptyRecord(t *testing.T) {
	rec := internal.ExtractionRecord{}
	Complete(&rec, testNow, StandardDefaults())

	po := rec.PODetails
	if po.PONumber == nil || *po.PONumber != "PO-UNKNOWN" {
		t.Fatalf("po number %v", po.PONumber)
	}
	if po.CreationDate == nil || *po.CreationDate != "03/15/2026" {
		t.Fatalf("creation date %v", po.CreationDate)
	}
	if po.DueDate == nil || *po.DueDate != "03/15/2026" {
		t.Fatalf("due date %v", po.DueDate)
	}
	if po.PaymentTerms == nil || *po.PaymentTerms != "Net 30" {
		t.Fatalf("terms %v", po.PaymentTerms)
	}
	// No line items at completion time, so no subtotal and no tax; the
	// flat shipping fee is the only charge.
	if po.Subtotal != nil {
		t.Fatalf("subtotal %v", *po.Subtotal)
	}
	if po.Tax != nil {
		t.Fatalf("tax %v", *po.Tax)
	}
	if po.Shipping == nil || *po.Shipping != 75 {
		t.Fatalf("shipping %v", po.Shipping)
	}
	if po.TotalAmount == nil || *po.TotalAmount != 75 {
		t.Fatalf("total %v", po.TotalAmount)
	}

	if len(rec.LineItems) != 1 {
		t.Fatalf("line items %d", len(rec.LineItems))
	}
	it := rec.LineItems[0]
	if *it.ItemCode != "DEFAULT001" || *it.Description != "Standard Product" ||
		*it.Quantity != 1 || *it.UnitPrice != 100 || *it.TotalPrice != 100 {
		t.Fatalf("placeholder item %+v", it)
	}
}

func TestCompleteSynthesizesPONumberFromClient(t *testing.T) {
	rec := internal.ExtractionRecord{
		ClientInfo: internal.ClientInfo{Name: util.StringPtr("Acme & Sons Ltd.")},
	}
	Complete(&rec, testNow, StandardDefaults())
	if *rec.PODetails.PONumber != "PO-ACMES" {
		t.Fatalf("got %q", *rec.PODetails.PONumber)
	}
}

func TestCompleteDerivesTotals(t *testing.T) {
	rec := internal.ExtractionRecord{
		LineItems: []internal.LineItem{
			{Description: util.StringPtr("A"), Quantity: util.FloatPtr(2), UnitPrice: util.FloatPtr(10), TotalPrice: util.FloatPtr(20)},
			{Description: util.StringPtr("B"), Quantity: util.FloatPtr(1), UnitPrice: util.FloatPtr(5.5), TotalPrice: util.FloatPtr(5.5)},
		},
	}
	Complete(&rec, testNow, StandardDefaults())

	po := rec.PODetails
	if *po.Subtotal != 25.5 {
		t.Fatalf("subtotal %v", *po.Subtotal)
	}
	if *po.Tax != 2.17 {
		t.Fatalf("tax %v", *po.Tax)
	}
	if *po.Shipping != 75 {
		t.Fatalf("shipping %v", *po.Shipping)
	}
	want := util.Round2(*po.Subtotal + *po.Tax + *po.Shipping)
	if *po.TotalAmount != want {
		t.Fatalf("total %v want %v", *po.TotalAmount, want)
	}
}

func TestCompleteKeepsSourceValues(t *testing.T) {
	rec := internal.ExtractionRecord{
		PODetails: internal.PODetails{
			PONumber:     util.StringPtr("PO-777"),
			CreationDate: util.StringPtr("01/01/2026"),
			DueDate:      util.StringPtr("02/01/2026"),
			PaymentTerms: util.StringPtr("Net 60"),
			Subtotal:     util.FloatPtr(200),
			Tax:          util.FloatPtr(10),
			Shipping:     util.FloatPtr(0),
			TotalAmount:  util.FloatPtr(210),
		},
		LineItems: []internal.LineItem{
			{Description: util.StringPtr("A"), Quantity: util.FloatPtr(1)},
		},
	}
	before := rec
	Complete(&rec, testNow, StandardDefaults())
	if !reflect.DeepEqual(before, rec) {
		t.Fatalf("complete record was modified: %+v", rec.PODetails)
	}
}

func TestCompleteIdempotent(t *testing.T) {
	rec := internal.ExtractionRecord{
		ClientInfo: internal.ClientInfo{Name: util.StringPtr("Initech")},
	}
	Complete(&rec, testNow, StandardDefaults())
	once := rec
	Complete(&rec, testNow.Add(48*time.Hour), StandardDefaults())
	if !reflect.DeepEqual(once, rec) {
		t.Fatalf("second completion changed the record")
	}
}
