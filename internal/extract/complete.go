package extract

import (
	"strings"
	"time"

	"po2so/internal"
	"po2so/internal/util"
)

// Defaults holds the last-resort values the completion engine applies.
type Defaults struct {
	TaxRate         float64
	ShippingFee     float64
	PaymentTerms    string
	POPrefix        string
	POPlaceholder   string
	PlaceholderCode string
	PlaceholderDesc string
	PlaceholderQty  float64
	PlaceholderCost float64
}

// StandardDefaults returns the fixed defaulting profile: 8.5% tax, a flat
// 75.00 shipping fee, Net 30 terms, and the DEFAULT001 placeholder item.
func StandardDefaults() Defaults {
	return Defaults{
		TaxRate:         0.085,
		ShippingFee:     75.00,
		PaymentTerms:    "Net 30",
		POPrefix:        "PO-",
		POPlaceholder:   "PO-UNKNOWN",
		PlaceholderCode: "DEFAULT001",
		PlaceholderDesc: "Standard Product",
		PlaceholderQty:  1,
		PlaceholderCost: 100.00,
	}
}

// Complete post-processes an assembled record so the invariants hold:
// identifiers, dates, terms and every monetary field populated, and at
// least one line item present. Fields already set are never overwritten,
// so applying Complete twice is a no-op.
func Complete(rec *internal.ExtractionRecord, now time.Time, d Defaults) {
	po := &rec.PODetails

	if po.PONumber == nil {
		po.PONumber = util.StringPtr(synthesizePONumber(rec.ClientInfo.Name, d))
	}

	// A missing due date defaults to today, same as the creation date.
	// Not creation + 30 days, despite the Net 30 terms.
	today := now.Format("01/02/2006")
	if po.CreationDate == nil {
		po.CreationDate = util.StringPtr(today)
	}
	if po.DueDate == nil {
		po.DueDate = util.StringPtr(today)
	}

	if po.PaymentTerms == nil {
		po.PaymentTerms = util.StringPtr(d.PaymentTerms)
	}

	// The synthetic placeholder item never feeds the subtotal; an empty
	// record completes to a shipping-only total.
	if po.Subtotal == nil && len(rec.LineItems) > 0 && !placeholderOnly(rec.LineItems, d) {
		sum := 0.0
		for _, item := range rec.LineItems {
			sum += util.DerefFloat(item.TotalPrice)
		}
		po.Subtotal = util.FloatPtr(util.Round2(sum))
	}

	if po.Tax == nil && po.Subtotal != nil {
		po.Tax = util.FloatPtr(util.Round2(*po.Subtotal * d.TaxRate))
	}

	if po.Shipping == nil {
		po.Shipping = util.FloatPtr(util.Round2(d.ShippingFee))
	}

	if po.TotalAmount == nil {
		total := util.DerefFloat(po.Subtotal) + util.DerefFloat(po.Tax) + util.DerefFloat(po.Shipping)
		po.TotalAmount = util.FloatPtr(util.Round2(total))
	}

	if len(rec.LineItems) == 0 {
		cost := util.Round2(d.PlaceholderCost)
		rec.LineItems = []internal.LineItem{{
			ItemCode:    util.StringPtr(d.PlaceholderCode),
			Description: util.StringPtr(d.PlaceholderDesc),
			Quantity:    util.FloatPtr(d.PlaceholderQty),
			UnitPrice:   util.FloatPtr(cost),
			TotalPrice:  util.FloatPtr(util.Round2(d.PlaceholderQty * cost)),
		}}
	}
}

func placeholderOnly(items []internal.LineItem, d Defaults) bool {
	return len(items) == 1 && items[0].ItemCode != nil && *items[0].ItemCode == d.PlaceholderCode
}

// synthesizePONumber builds a synthetic number from the first 5
// alphanumerics of the client name, uppercased.
func synthesizePONumber(clientName *string, d Defaults) string {
	if clientName == nil {
		return d.POPlaceholder
	}
	alnum := strings.ToUpper(util.Alphanumerics(*clientName))
	if alnum == "" {
		return d.POPlaceholder
	}
	if len(alnum) > 5 {
		alnum = alnum[:5]
	}
	return d.POPrefix + alnum
}
