// Package core provides the expense record and the few pure functions the
// views need around it.
//
// This file contains amount parsing and formatting on top of
// shopspring/decimal.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount reads a decimal amount as typed in the form.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. The value
// is kept exactly as entered: no rounding, no lower bound. The input widget
// declares min 0.01 but that is advisory.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount("0")     -> 0, nil
//	ParseAmount("abc")   -> 0, ErrInvalidAmount
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
	return d, nil
}

// FormatAmount renders an amount with two decimals, e.g. "294.67".
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatDollars renders an amount the way the list shows it, e.g. "$294.67".
func FormatDollars(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + FormatAmount(d.Neg())
	}
	return "$" + FormatAmount(d)
}
