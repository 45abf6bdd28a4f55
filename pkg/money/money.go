// Package money provides minor-unit amount helpers on top of the
// go-money currency registry.
package money

import (
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Fraction returns the number of decimal places of a currency,
// defaulting to 2 for unknown codes
func Fraction(currency string) int {
	c := gomoney.GetCurrency(currency)
	if c == nil {
		return 2
	}
	return c.Fraction
}

// Parse converts a human-readable amount like "12.34" into minor units
// of the currency. Excess decimal digits are truncated, never rounded.
func Parse(amount, currency string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, fmt.Errorf("amount is required")
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	return d.Shift(int32(Fraction(currency))).IntPart(), nil
}

// Format renders minor units as a localized currency string,
// e.g. 123456 USD -> "$1,234.56"
func Format(amount int64, currency string) string {
	return gomoney.New(amount, currency).Display()
}
