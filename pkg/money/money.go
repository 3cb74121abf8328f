package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parse reads a monetary amount from user input. It accepts Brazilian
// formatting ("R$ 1.200,50", "19,90") as well as plain decimals ("19.90").
// Anything unparseable resolves to 0.00 instead of an error.
func Parse(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero
	}
	if strings.Contains(s, ",") {
		// comma is the decimal separator, dots are thousand separators
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return Round(d)
}

// Round normalizes an amount to 2 decimal places, half up.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FromFloat converts a float amount to a 2dp decimal.
func FromFloat(f float64) decimal.Decimal {
	return Round(decimal.NewFromFloat(f))
}
