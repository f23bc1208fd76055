package extract

import (
	"regexp"
	"strings"

	"po2so/internal/util"
)

// FieldKind names one semantic field the matcher can resolve from free text.
type FieldKind string

const (
	FieldClientName    FieldKind = "client_name"
	FieldClientPhone   FieldKind = "client_phone"
	FieldClientEmail   FieldKind = "client_email"
	FieldClientAddress FieldKind = "client_address"
	FieldPONumber      FieldKind = "po_number"
	FieldCreationDate  FieldKind = "creation_date"
	FieldDueDate       FieldKind = "due_date"
	FieldPaymentTerms  FieldKind = "payment_terms"
	FieldSubtotal      FieldKind = "subtotal"
	FieldTax           FieldKind = "tax"
	FieldShipping      FieldKind = "shipping"
	FieldTotalAmount   FieldKind = "total_amount"
	FieldComments      FieldKind = "comments"
)

// fieldRule is one pattern-based extraction strategy. group selects the
// submatch to return; 0 means the whole match.
type fieldRule struct {
	re    *regexp.Regexp
	group int
}

// Rules are tried in order and the first match wins, so the specific
// labelled patterns must come before the generic fallbacks.
var fieldRules = map[FieldKind][]fieldRule{
	FieldClientName: {
		{re: regexp.MustCompile(`(?im)(?:Client|Customer|Bill To|Sold To|Company)(?:[ \t]*Name)?(?:[ \t]*:)?[ \t]+([A-Za-z0-9 \t&.,]+)$`), group: 1},
		{re: regexp.MustCompile(`(?im)(?:TO|BILL TO|SOLD TO):[ \t]*([A-Za-z0-9 \t&.,]+)$`), group: 1},
	},
	FieldClientPhone: {
		{re: regexp.MustCompile(`(?i)(?:Phone|Tel|Telephone)(?:[ \t]*:)?[ \t]*((?:\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4})`), group: 1},
		{re: regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`), group: 0},
	},
	FieldClientEmail: {
		{re: regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`), group: 0},
	},
	FieldClientAddress: {
		{re: regexp.MustCompile(`(?im)(?:Address|Location)(?:[ \t]*:)?[ \t]+([A-Za-z0-9 \t,.#-]+(?:\n[A-Za-z0-9 \t,.#-]+){0,3})`), group: 1},
		{re: regexp.MustCompile(`(?im)(?:BILL TO|SOLD TO):[ \t]*[A-Za-z0-9 \t&.,]+\n(\d+[A-Za-z0-9 \t,.#-]*(?:\n[A-Za-z0-9 \t,.#-]+){0,2})`), group: 1},
	},
	FieldPONumber: {
		// Direct PO-16994 style wins over any labelled pattern.
		{re: regexp.MustCompile(`PO-\d+`), group: 0},
		{re: regexp.MustCompile(`(?i)(?:P\.?O\.?|Purchase Order)(?:[ \t]*Number|[ \t]*#|[ \t]*No\.?)?[ \t]*:?[ \t]+([A-Za-z0-9-]+)`), group: 1},
		{re: regexp.MustCompile(`(?i)(?:Order|Reference)(?:[ \t]*Number|[ \t]*#|[ \t]*No\.?)?[ \t]*:?[ \t]+([A-Za-z0-9-]+)`), group: 1},
	},
	FieldCreationDate: {
		{re: regexp.MustCompile(`(?i)(?:Order Date|PO Date|Creation Date|Created|Date)(?:[ \t]*:)?[ \t]*(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`), group: 1},
		{re: regexp.MustCompile(`(?i)(?:Order Date|PO Date|Creation Date|Created|Date)(?:[ \t]*:)?[ \t]*(\d{1,2}[ \t]+[A-Za-z]{3,}[ \t]+\d{2,4})`), group: 1},
	},
	FieldDueDate: {
		{re: regexp.MustCompile(`(?i)(?:Due Date|Delivery Date|Required Date|Need By)(?:[ \t]*:)?[ \t]*(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`), group: 1},
		{re: regexp.MustCompile(`(?i)(?:Due Date|Delivery Date|Required Date|Need By)(?:[ \t]*:)?[ \t]*(\d{1,2}[ \t]+[A-Za-z]{3,}[ \t]+\d{2,4})`), group: 1},
	},
	FieldPaymentTerms: {
		{re: regexp.MustCompile(`(?i)(?:Payment Terms|Terms)(?:[ \t]*:)?[ \t]*(Net[ \t]+\d+)`), group: 1},
		{re: regexp.MustCompile(`(?im)(?:Payment Terms|Terms)(?:[ \t]*:)?[ \t]*([A-Za-z0-9 \t]+)$`), group: 1},
		{re: regexp.MustCompile(`(?i)(?:Net|Due)[ \t]+(\d+)`), group: 1},
	},
	FieldSubtotal: {
		{re: regexp.MustCompile(`(?i)Subtotal(?:[ \t]*:)?[ \t]*\$?[ \t]*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`), group: 1},
		{re: regexp.MustCompile(`(?i)(?:Sub-total|Net)[ \t]*:?[ \t]*[$£€]?[ \t]*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`), group: 1},
	},
	FieldTax: {
		{re: regexp.MustCompile(`(?i)(?:Sales Tax|Tax)(?:[ \t]*\(\d+(?:\.\d+)?%\))?(?:[ \t]*:)?[ \t]*\$?[ \t]*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`), group: 1},
		{re: regexp.MustCompile(`(?i)(?:VAT|GST)[ \t]*:?[ \t]*[$£€]?[ \t]*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`), group: 1},
	},
	FieldShipping: {
		{re: regexp.MustCompile(`(?i)(?:Shipping|Freight|Delivery)(?:[ \t]*:)?[ \t]*\$?[ \t]*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`), group: 1},
	},
	FieldTotalAmount: {
		{re: regexp.MustCompile(`(?i)(?:Grand Total|Order Total|Total)(?:[ \t]*:)?[ \t]*\$?[ \t]*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`), group: 1},
	},
	FieldComments: {
		{re: regexp.MustCompile(`(?im)(?:Comments|Notes|Special Instructions)(?:[ \t]*:)?[ \t]*([A-Za-z0-9 \t,.#-]+(?:\n[A-Za-z0-9 \t,.#-]+){0,3})`), group: 1},
		{re: regexp.MustCompile(`(?im)(?:Comments|Notes|Special Instructions)(?:[ \t]*:)?[ \t]*(.+)$`), group: 1},
	},
}

// Patterns that mark a line as a document-type heading rather than a
// company name.
var reHeading = regexp.MustCompile(`(?i)invoice|purchase order|p\.?o\.?|quotation|estimate`)

// MatchField resolves one string-valued field against the full text,
// trying each rule in priority order. Returns nil when nothing matches.
func MatchField(text string, kind FieldKind) *string {
	for _, rule := range fieldRules[kind] {
		m := rule.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		captured := strings.TrimSpace(m[rule.group])
		if captured == "" {
			continue
		}
		if kind == FieldClientAddress || kind == FieldComments {
			captured = util.NormalizeSpaces(captured)
		}
		return util.StringPtr(captured)
	}

	if kind == FieldClientName {
		return fallbackClientName(text)
	}
	return nil
}

// MatchMoney resolves one monetary field. A rule whose capture does not
// parse as a number is skipped silently and the next rule is tried.
func MatchMoney(text string, kind FieldKind) *float64 {
	for _, rule := range fieldRules[kind] {
		m := rule.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, ok := util.ParseMoney(m[rule.group]); ok {
			return util.FloatPtr(v)
		}
	}
	return nil
}

// fallbackClientName scans the first few lines for something that looks
// like a company name rather than a document-type heading.
func fallbackClientName(text string) *string {
	lines := strings.Split(text, "\n")
	limit := 5
	if len(lines) < limit {
		limit = len(lines)
	}
	for i := 0; i < limit; i++ {
		line := strings.TrimSpace(lines[i])
		if len(line) > 3 && !reHeading.MatchString(line) {
			return util.StringPtr(line)
		}
	}
	return nil
}
