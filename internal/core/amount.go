// Package core holds the ledger's domain records and amount parsing.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts the scalar amount argument of an operation into
// the float64 value stored in the ledger. Signs are allowed on both
// sides of zero, so debits and credits are both representable.
// Anything the decimal parser rejects maps to ErrInvalidAmount before
// any write happens.
//
// Examples:
//
//	ParseAmount("12.50") -> 12.5, nil
//	ParseAmount("-3")    -> -3, nil
//	ParseAmount("abc")   -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	f, _ := d.Float64()
	return f, nil
}
