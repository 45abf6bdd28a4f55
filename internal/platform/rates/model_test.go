package rates

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *Table {
	return &Table{
		Base: "USD",
		AsOf: time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC),
		Rates: map[string]decimal.Decimal{
			"EUR": decimal.RequireFromString("0.9321"),
			"JPY": decimal.RequireFromString("157.3"),
		},
	}
}

func TestTable_Rate(t *testing.T) {
	table := testTable()

	base, ok := table.Rate("USD")
	require.True(t, ok)
	assert.True(t, base.Equal(decimal.NewFromInt(1)))

	_, ok = table.Rate("GBP")
	assert.False(t, ok)
}

func TestTable_Convert(t *testing.T) {
	table := testTable()

	tests := []struct {
		name   string
		amount int64
		from   string
		to     string
		want   int64
	}{
		{"same currency is identity", 12345, "EUR", "EUR", 12345},
		{"base to quote", 10000, "USD", "EUR", 9321},
		{"quote to base truncates toward zero", 100, "EUR", "USD", 107},   // 107.28...
		{"negative amounts truncate toward zero", -100, "EUR", "USD", -107},
		{"cross rate through base", 10000, "EUR", "JPY", 1687587},         // 10000 * 157.3 / 0.9321
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Convert(tt.amount, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTable_ConvertUnknownCurrency(t *testing.T) {
	table := testTable()

	_, err := table.Convert(100, "GBP", "USD")
	assert.ErrorIs(t, err, ErrNoRate)

	_, err = table.Convert(100, "USD", "GBP")
	assert.ErrorIs(t, err, ErrNoRate)
}

func TestTable_Currencies(t *testing.T) {
	table := testTable()
	assert.ElementsMatch(t, []string{"USD", "EUR", "JPY"}, table.Currencies())
}
