package forecast

import (
	"github.com/google/uuid"

	"github.com/finbook/finbook/internal/platform/account"
	"github.com/finbook/finbook/internal/platform/transaction"
)

// dayAmounts maps a day index to a signed amount in minor units
type dayAmounts map[int]int64

// ledgerDeltas is the result of one accumulation pass over the ledger.
// byAccount holds native-currency deltas per account per day; income and
// expense hold reporting-currency totals per day for display only, never
// for balance math.
type ledgerDeltas struct {
	byAccount map[uuid.UUID]dayAmounts
	income    dayAmounts
	expense   dayAmounts
}

// accumulate walks the ledger once and buckets every contributing
// transaction into per-account per-day native deltas. Balance corrections
// are always skipped, as are transactions outside the data window and
// legs touching excluded accounts.
func accumulate(in Input, accounts map[uuid.UUID]*account.Account, totalDays int) ledgerDeltas {
	deltas := ledgerDeltas{
		byAccount: make(map[uuid.UUID]dayAmounts),
		income:    make(dayAmounts),
		expense:   make(dayAmounts),
	}

	for _, tx := range in.Transactions {
		if tx.Type == transaction.TypeModifyBalance {
			continue
		}

		day := dayIndex(tx.Time, in.DataWindow.Start)
		if day < 0 || day >= totalDays {
			continue
		}

		switch tx.Type {
		case transaction.TypeIncome:
			if in.ExcludedAccountIDs[tx.SourceAccountID] {
				continue
			}
			deltas.add(tx.SourceAccountID, day, tx.SourceAmount)
			deltas.income[day] += toReporting(in, accounts, tx.SourceAccountID, tx.SourceAmount)

		case transaction.TypeExpense:
			if in.ExcludedAccountIDs[tx.SourceAccountID] {
				continue
			}
			deltas.add(tx.SourceAccountID, day, -tx.SourceAmount)
			deltas.expense[day] += toReporting(in, accounts, tx.SourceAccountID, tx.SourceAmount)

		case transaction.TypeTransfer:
			accumulateTransfer(in, accounts, &deltas, tx, day)
		}
	}

	return deltas
}

// accumulateTransfer applies both legs of a transfer in their native
// currencies and classifies the reporting-currency net of the two legs as
// income or expense. Cross-currency transfers may gain or lose value
// through the spread between the legs.
func accumulateTransfer(in Input, accounts map[uuid.UUID]*account.Account, deltas *ledgerDeltas, tx *transaction.Transaction, day int) {
	srcExcluded := in.ExcludedAccountIDs[tx.SourceAccountID]
	dstExcluded := tx.DestinationAccountID == nil || in.ExcludedAccountIDs[*tx.DestinationAccountID]

	if srcExcluded && dstExcluded {
		return
	}

	if !srcExcluded {
		deltas.add(tx.SourceAccountID, day, -tx.SourceAmount)
	}
	if !dstExcluded {
		deltas.add(*tx.DestinationAccountID, day, tx.DestinationAmount)
	}

	var net int64
	switch {
	case srcExcluded:
		net = toReporting(in, accounts, *tx.DestinationAccountID, tx.DestinationAmount)
	case dstExcluded:
		net = -toReporting(in, accounts, tx.SourceAccountID, tx.SourceAmount)
	default:
		net = toReporting(in, accounts, *tx.DestinationAccountID, tx.DestinationAmount) -
			toReporting(in, accounts, tx.SourceAccountID, tx.SourceAmount)
	}

	if net > 0 {
		deltas.income[day] += net
	} else if net < 0 {
		deltas.expense[day] += -net
	}
}

func (d *ledgerDeltas) add(accountID uuid.UUID, day int, amount int64) {
	byDay := d.byAccount[accountID]
	if byDay == nil {
		byDay = make(dayAmounts)
		d.byAccount[accountID] = byDay
	}
	byDay[day] += amount
}

// toReporting converts an account-native amount into the reporting
// currency, truncating toward zero. When the account is unknown or no
// rate is available, the native amount is used as-is.
func toReporting(in Input, accounts map[uuid.UUID]*account.Account, accountID uuid.UUID, amount int64) int64 {
	meta, ok := accounts[accountID]
	if !ok || meta.Currency == in.ReportingCurrency {
		return amount
	}

	converted, err := in.Converter.Convert(amount, meta.Currency, in.ReportingCurrency)
	if err != nil {
		return amount
	}
	return converted
}
