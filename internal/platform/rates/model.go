package rates

import (
	"time"

	"github.com/shopspring/decimal"
)

// Table is an immutable snapshot of exchange rates relative to a base
// currency. Rates map a currency code to the amount of that currency one
// unit of the base buys.
//
// Conversions always use the snapshot's current rates, including for
// historical amounts. That systematically misprices old balances when a
// rate has moved since the transaction date; it is a known approximation
// carried over from the original product behavior.
type Table struct {
	Base  string
	AsOf  time.Time
	Rates map[string]decimal.Decimal
}

// Rate returns the rate for a currency, treating the base as 1
func (t *Table) Rate(currency string) (decimal.Decimal, bool) {
	if currency == t.Base {
		return decimal.NewFromInt(1), true
	}
	r, ok := t.Rates[currency]
	if !ok || r.IsZero() {
		return decimal.Decimal{}, false
	}
	return r, true
}

// Convert converts an amount of minor units between currencies using the
// snapshot rates. The result is truncated toward zero, matching the
// amount handling in the rest of the system. Returns ErrNoRate when
// either currency is not in the table.
func (t *Table) Convert(amount int64, from, to string) (int64, error) {
	if from == to {
		return amount, nil
	}

	fromRate, ok := t.Rate(from)
	if !ok {
		return 0, ErrNoRate
	}

	toRate, ok := t.Rate(to)
	if !ok {
		return 0, ErrNoRate
	}

	converted := decimal.NewFromInt(amount).Mul(toRate).Div(fromRate)
	return converted.IntPart(), nil
}

// Currencies returns all currency codes the table can price
func (t *Table) Currencies() []string {
	codes := make([]string, 0, len(t.Rates)+1)
	codes = append(codes, t.Base)
	for code := range t.Rates {
		if code != t.Base {
			codes = append(codes, code)
		}
	}
	return codes
}
