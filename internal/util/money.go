package util

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	reCurrency   = regexp.MustCompile(`[$£€\s]`)
	reNonNumeric = regexp.MustCompile(`[^0-9.]`)
)

// ParseMoney parses a monetary string such as "$1,234.50" into a float.
// Currency symbols and thousands separators are stripped first. Returns
// false when the remainder is not a number.
func ParseMoney(input string) (float64, bool) {
	s := reCurrency.ReplaceAllString(input, "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseNumeric parses a table cell that should hold a number, tolerating
// currency symbols, units and other decoration. A cell that is empty after
// stripping yields false, never zero.
func ParseNumeric(input string) (float64, bool) {
	s := reNonNumeric.ReplaceAllString(input, "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Round2 rounds to 2 decimal places, the precision of every monetary
// value this system emits.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatMoney renders a monetary value with exactly 2 decimals.
func FormatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatQuantity renders a quantity without trailing zeros (3, not 3.00).
func FormatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
