// Package core holds the ledger domain: products, harvest and expense
// entries, amount parsing, and the pure profit/loss aggregation used by
// every reporting surface.
package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount converts a decimal form field to an exact amount. It accepts
// both dot (12.34) and comma (12,34) separators and rejects negatives.
// Amounts are kept unrounded; rounding to two places happens only when
// formatting for display.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseOptionalAmount is ParseAmount with a blank field defaulting to zero.
func ParseOptionalAmount(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return ParseAmount(s)
}

// FormatAmount renders an amount with two fractional digits for display.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
