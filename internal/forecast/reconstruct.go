package forecast

import (
	"github.com/google/uuid"

	"github.com/finbook/finbook/internal/platform/account"
)

// reconstruct turns per-account daily deltas into one total balance per
// day of the data window, expressed in the reporting currency.
//
// Each account's native running balance is converted at the current rate
// day by day, then summed across accounts with the liability sign flip.
// The series is purely ledger-derived: it is not anchored to an
// externally reported current balance.
func reconstruct(deltas ledgerDeltas, accounts map[uuid.UUID]*account.Account, reporting string, conv Converter, totalDays int) []int64 {
	totals := make([]int64, totalDays)

	for accountID, byDay := range deltas.byAccount {
		currency := reporting
		liability := false
		if meta, ok := accounts[accountID]; ok {
			currency = meta.Currency
			liability = meta.IsLiability
		}

		var cumulative int64
		for d := 0; d < totalDays; d++ {
			cumulative += byDay[d]

			value := cumulative
			if currency != reporting {
				// Convert the magnitude and re-apply the sign;
				// a missing rate degrades to the native amount.
				converted, err := conv.Convert(abs(cumulative), currency, reporting)
				if err == nil {
					if cumulative < 0 {
						value = -converted
					} else {
						value = converted
					}
				}
			}

			if liability {
				totals[d] -= value
			} else {
				totals[d] += value
			}
		}
	}

	return totals
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
