package extract

import (
	"regexp"
	"strings"

	"po2so/internal"
	"po2so/internal/util"
)

var shipToRules = []fieldRule{
	{re: regexp.MustCompile(`(?im)(?:SHIP TO|Deliver To|Shipping Address)(?:[ \t]*:)?[ \t]*([A-Za-z0-9 \t&.,]+)\n([A-Za-z0-9 \t,.#-]+(?:\n[A-Za-z0-9 \t,.#-]+){0,3})`)},
	{re: regexp.MustCompile(`(?im)(?:SHIP TO|Deliver To|Shipping Address)(?:[ \t]*:)?[ \t]*([A-Za-z0-9 \t&.,]+(?:\n[A-Za-z0-9 \t,.#-]+){0,3})`)},
}

// Assemble runs the field matchers over the document text and the table
// classifier over its tables, merging both into one record. Every field
// is independently optional; extraction never fails.
func Assemble(doc internal.ParsedDocument) internal.ExtractionRecord {
	rec := internal.ExtractionRecord{}

	rec.ClientInfo = internal.ClientInfo{
		Name:    MatchField(doc.Text, FieldClientName),
		Phone:   MatchField(doc.Text, FieldClientPhone),
		Email:   MatchField(doc.Text, FieldClientEmail),
		Address: MatchField(doc.Text, FieldClientAddress),
	}

	rec.PODetails = internal.PODetails{
		PONumber:     MatchField(doc.Text, FieldPONumber),
		CreationDate: MatchField(doc.Text, FieldCreationDate),
		DueDate:      MatchField(doc.Text, FieldDueDate),
		PaymentTerms: MatchField(doc.Text, FieldPaymentTerms),
		Subtotal:     MatchMoney(doc.Text, FieldSubtotal),
		Tax:          MatchMoney(doc.Text, FieldTax),
		Shipping:     MatchMoney(doc.Text, FieldShipping),
		TotalAmount:  MatchMoney(doc.Text, FieldTotalAmount),
		Comments:     MatchField(doc.Text, FieldComments),
	}

	rec.ShipTo = matchShipTo(doc.Text)

	if table := FindLineItemsTable(doc.Tables); table != nil {
		rec.LineItems = ExtractLineItems(table)
	}

	return rec
}

func matchShipTo(text string) internal.ShipTo {
	var st internal.ShipTo

	for _, rule := range shipToRules {
		m := rule.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) > 2 && strings.TrimSpace(m[2]) != "" {
			st.Name = util.StringPtr(strings.TrimSpace(m[1]))
			st.Address = util.StringPtr(util.NormalizeSpaces(m[2]))
		} else {
			lines := util.SplitLines(m[1])
			if len(lines) > 0 {
				st.Name = util.StringPtr(lines[0])
			}
			if len(lines) > 1 {
				st.Address = util.StringPtr(strings.Join(lines[1:], " "))
			}
		}
		break
	}

	// Scope the phone search to the text after the ship-to name so an
	// unrelated number earlier in the document is not picked up.
	if st.Name != nil {
		if idx := strings.Index(text, *st.Name); idx >= 0 {
			st.Phone = MatchField(text[idx:], FieldClientPhone)
		}
	}

	return st
}
