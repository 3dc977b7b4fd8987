// Package core provides the ledger domain model shared by the report
// engine, the stores and the HTTP layer.
//
// This file contains parsing and formatting of monetary amounts. All
// amounts are exact decimals; binary floating point never touches a
// financial figure.
package core

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a user-entered amount string to an exact decimal.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Signs are rejected: direction is carried by the transaction type, so
// amounts are always entered as positive magnitudes.
//
// Examples:
//
//	ParseAmount("1200")    -> 1200, nil
//	ParseAmount("12,34")   -> 12.34, nil
//	ParseAmount("-5")      -> error
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrNegativeAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrNegativeAmount
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' {
			return decimal.Zero, ErrNegativeAmount
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrNegativeAmount
	}
	return d, nil
}

// ParseStoredAmount converts a raw stored decimal string, tolerating
// malformed values: an unparseable amount becomes zero so a single bad
// record cannot block an entire report. Callers log the fallback.
func ParseStoredAmount(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FormatAmount renders an amount as plain decimal text with two fraction
// digits and no thousands separators, keeping exports machine-readable.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
