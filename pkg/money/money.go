package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits every persisted amount carries.
const Scale = 2

// Max is the largest amount a DECIMAL(10,2) column holds.
var Max = decimal.RequireFromString("99999999.99")

var (
	ErrInvalidAmount = errors.New("invalid decimal amount")
	ErrNegative      = errors.New("amount must not be negative")
	ErrTooPrecise    = errors.New("amount must have at most 2 decimal places")
	ErrTooLarge      = errors.New("amount must not exceed 99999999.99")
)

var hundred = decimal.NewFromInt(100)

// Parse reads a plain base-10 decimal string such as "1500.25", at most Max.
// Exponent forms are rejected.
func Parse(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if !plainDecimal(raw) {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegative
	}
	if !d.Equal(d.Truncate(Scale)) {
		return decimal.Zero, ErrTooPrecise
	}
	if d.GreaterThan(Max) {
		return decimal.Zero, ErrTooLarge
	}
	return d, nil
}

// Fits reports whether d is storable in a DECIMAL(10,2) column.
func Fits(d decimal.Decimal) bool { return d.LessThanOrEqual(Max) }

// plainDecimal accepts an optional minus sign, digits and at most one dot.
func plainDecimal(s string) bool {
	s = strings.TrimPrefix(s, "-")
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// Percent returns rate% of base, rounded to Scale.
func Percent(rate, base decimal.Decimal) decimal.Decimal {
	return Round(rate.Div(hundred).Mul(base))
}

// Round rounds d half away from zero to Scale digits.
func Round(d decimal.Decimal) decimal.Decimal { return d.Round(Scale) }

// Format renders d with exactly Scale fractional digits.
func Format(d decimal.Decimal) string { return d.StringFixed(Scale) }
