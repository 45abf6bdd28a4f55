// Package forecast reconstructs a time series of net account balance from
// a raw ledger of transactions. It handles multi-currency accounts,
// liabilities, transfers, planned future transactions, and adaptive
// daily/monthly aggregation for long display windows.
//
// The package is pure: it performs no I/O, keeps no state between calls,
// and recomputes the whole series from the snapshots it is given. Callers
// load transactions, accounts and rates first and re-invoke BuildSeries
// whenever any input changes.
package forecast

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/finbook/finbook/internal/platform/account"
	"github.com/finbook/finbook/internal/platform/transaction"
)

const secondsPerDay = 86400

// monthlyThresholdDays is the display window length above which the
// series is aggregated into one point per calendar month.
const monthlyThresholdDays = 90

// ErrInvalidWindow reports a window whose end precedes its start. This is
// a caller contract violation, not a data condition.
var ErrInvalidWindow = errors.New("forecast: window end precedes start")

// Converter converts an amount of minor units between currencies at the
// current rate. Implementations return an error when no rate is known for
// the pair; the engine then degrades by treating the native amount as if
// it were already in the reporting currency.
type Converter interface {
	Convert(amount int64, from, to string) (int64, error)
}

// Window is a half-open time range in unix seconds
type Window struct {
	Start int64
	End   int64
}

// IsZero reports whether the window is unset
func (w Window) IsZero() bool { return w.Start == 0 && w.End == 0 }

// Input is the full snapshot the engine consumes. All collections are
// read-only for the duration of the call.
type Input struct {
	Transactions []*transaction.Transaction
	Accounts     []*account.Account

	// ReportingCurrency is the currency the resulting series is
	// expressed in.
	ReportingCurrency string

	// DataWindow is the range the transactions were loaded for; day
	// indices are relative to its start.
	DataWindow Window

	// DisplayWindow is the (possibly narrower) range the caller wants
	// points for.
	DisplayWindow Window

	// ExcludedAccountIDs removes accounts from the balance math
	// entirely.
	ExcludedAccountIDs map[uuid.UUID]bool

	// Now separates historical fact from projection.
	Now int64

	Converter Converter

	// FormatDateLabel renders the human-readable label of a point.
	// When nil, an English "January 2" label is used.
	FormatDateLabel func(unix int64) string
}

// Point is one entry of the balance series
type Point struct {
	Date         string `json:"date"`      // DD.MM in daily mode, MM.YY in monthly mode
	DateLabel    string `json:"dateLabel"` // long month/day label
	Balance      int64  `json:"balance"`   // reporting currency minor units
	IsFuture     bool   `json:"isFuture"`
	DailyIncome  int64  `json:"dailyIncome"`
	DailyExpense int64  `json:"dailyExpense"`
}

// BuildSeries computes the ordered balance series for the input snapshot.
// Structurally empty input (no transactions, no accounts, or an unset
// data window) yields an empty series and no error.
func BuildSeries(in Input) ([]Point, error) {
	if in.DataWindow.End < in.DataWindow.Start || in.DisplayWindow.End < in.DisplayWindow.Start {
		return nil, ErrInvalidWindow
	}

	if len(in.Transactions) == 0 || len(in.Accounts) == 0 || in.DataWindow.IsZero() {
		return []Point{}, nil
	}

	totalDays := windowDays(in.DataWindow)

	accounts := make(map[uuid.UUID]*account.Account, len(in.Accounts))
	for _, a := range in.Accounts {
		accounts[a.ID] = a
	}

	deltas := accumulate(in, accounts, totalDays)
	totals := reconstruct(deltas, accounts, in.ReportingCurrency, in.Converter, totalDays)

	return extract(in, totals, deltas, totalDays), nil
}

// windowDays returns the number of day slots the window covers, at least 1
func windowDays(w Window) int {
	span := w.End - w.Start
	days := int((span+secondsPerDay-1)/secondsPerDay) + 1
	if days < 1 {
		return 1
	}
	return days
}

// dayIndex returns the zero-based day offset of t from start, flooring for
// times before the start
func dayIndex(t, start int64) int {
	d := t - start
	if d < 0 {
		return int((d - secondsPerDay + 1) / secondsPerDay)
	}
	return int(d / secondsPerDay)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// calendarDate converts a unix time to its Gregorian year, month and day.
// Day boundaries follow UTC, consistent with the unix-division day
// indexing.
func calendarDate(unix int64) (year, month, day int) {
	t := time.Unix(unix, 0).UTC()
	y, m, d := t.Date()
	return y, int(m), d
}

func defaultDateLabel(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("January 2")
}
