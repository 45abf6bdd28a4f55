package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook/finbook/pkg/money"
)

func TestFraction(t *testing.T) {
	assert.Equal(t, 2, money.Fraction("USD"))
	assert.Equal(t, 0, money.Fraction("JPY"))
	assert.Equal(t, 2, money.Fraction("XXQ")) // unknown code defaults to 2
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     int64
		wantErr  bool
	}{
		{"whole dollars", "12", "USD", 1200, false},
		{"dollars and cents", "12.34", "USD", 1234, false},
		{"excess precision truncates", "12.349", "USD", 1234, false},
		{"negative truncates toward zero", "-12.349", "USD", -1234, false},
		{"zero-fraction currency", "1500", "JPY", 1500, false},
		{"whitespace trimmed", " 5.00 ", "USD", 500, false},
		{"empty", "", "USD", 0, true},
		{"not a number", "12,34", "USD", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.Parse(tt.amount, tt.currency)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$1,234.56", money.Format(123456, "USD"))
	assert.Equal(t, "-$0.50", money.Format(-50, "USD"))
}
