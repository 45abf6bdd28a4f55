// Package overview assembles the dashboard read models: the balance
// forecast series and the period income/expense summary. It loads the
// snapshots the pure forecast engine needs and never writes anything.
package overview

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/finbook/finbook/internal/forecast"
	apperrors "github.com/finbook/finbook/internal/shared/errors"
	"github.com/finbook/finbook/internal/platform/account"
	"github.com/finbook/finbook/internal/platform/rates"
	"github.com/finbook/finbook/internal/platform/transaction"
	"github.com/finbook/finbook/internal/platform/user"
	"github.com/finbook/finbook/pkg/logger"
	"github.com/finbook/finbook/pkg/money"
)

// AccountSource provides account snapshots
type AccountSource interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*account.Account, error)
}

// TransactionSource provides transaction snapshots
type TransactionSource interface {
	ListByTimeRange(ctx context.Context, userID uuid.UUID, start, end int64) ([]*transaction.Transaction, error)
}

// UserSource provides user settings
type UserSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// RateSource provides the current exchange rate table
type RateSource interface {
	Table(ctx context.Context) (*rates.Table, error)
}

// Service builds overview read models
type Service struct {
	users        UserSource
	accounts     AccountSource
	transactions TransactionSource
	rates        RateSource
	log          *logger.Logger
}

// NewService creates a new overview service
func NewService(users UserSource, accounts AccountSource, transactions TransactionSource, rateSource RateSource, log *logger.Logger) *Service {
	return &Service{
		users:        users,
		accounts:     accounts,
		transactions: transactions,
		rates:        rateSource,
		log:          log.WithField("component", "overview"),
	}
}

// ForecastRequest selects the data and display ranges for a balance series.
// A zero display window defaults to the data window, and a zero Now
// defaults to the current time.
type ForecastRequest struct {
	DataStart    int64
	DataEnd      int64
	DisplayStart int64
	DisplayEnd   int64

	ExcludedAccountIDs []uuid.UUID

	Now int64
}

// ForecastResponse is the balance series in the user's reporting currency
type ForecastResponse struct {
	Currency string           `json:"currency"`
	Points   []forecast.Point `json:"points"`
}

// Forecast reconstructs the balance series for a user over the requested
// window. Missing exchange rates degrade the series to native amounts
// rather than failing it.
func (s *Service) Forecast(ctx context.Context, userID uuid.UUID, req ForecastRequest) (*ForecastResponse, error) {
	u, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to load accounts", err)
	}

	txs, err := s.transactions.ListByTimeRange(ctx, userID, req.DataStart, req.DataEnd)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to load transactions", err)
	}

	var converter forecast.Converter = unavailableConverter{}
	if table, err := s.rates.Table(ctx); err != nil {
		s.log.WithContext(ctx).WithError(err).Warn("rate table unavailable, series degrades to native amounts")
	} else {
		converter = tableConverter{table: table}
	}

	excluded := make(map[uuid.UUID]bool, len(req.ExcludedAccountIDs))
	for _, id := range req.ExcludedAccountIDs {
		excluded[id] = true
	}

	now := req.Now
	if now == 0 {
		now = time.Now().Unix()
	}

	display := forecast.Window{Start: req.DisplayStart, End: req.DisplayEnd}
	if display.IsZero() {
		display = forecast.Window{Start: req.DataStart, End: req.DataEnd}
	}

	points, err := forecast.BuildSeries(forecast.Input{
		Transactions:       txs,
		Accounts:           accounts,
		ReportingCurrency:  u.DefaultCurrency,
		DataWindow:         forecast.Window{Start: req.DataStart, End: req.DataEnd},
		DisplayWindow:      display,
		ExcludedAccountIDs: excluded,
		Now:                now,
		Converter:          converter,
	})
	if err != nil {
		return nil, err
	}

	return &ForecastResponse{
		Currency: u.DefaultCurrency,
		Points:   points,
	}, nil
}

// AmountView is an amount in minor units paired with its display string
type AmountView struct {
	Amount  int64  `json:"amount"`
	Display string `json:"display"`
}

// PeriodTotals are the income and expense sums of one period
type PeriodTotals struct {
	Income  AmountView `json:"income"`
	Expense AmountView `json:"expense"`
}

// Summary is the dashboard header: current net worth plus flow totals
// for the standard periods, all in the reporting currency.
type Summary struct {
	Currency string `json:"currency"`

	NetAssets        AmountView `json:"netAssets"`
	TotalAssets      AmountView `json:"totalAssets"`
	TotalLiabilities AmountView `json:"totalLiabilities"`

	Today     PeriodTotals `json:"today"`
	ThisWeek  PeriodTotals `json:"thisWeek"`
	ThisMonth PeriodTotals `json:"thisMonth"`
	ThisYear  PeriodTotals `json:"thisYear"`
}

// Summarize computes the dashboard summary as of now. Flow totals count
// settled income and expense entries only: transfers are internal moves,
// balance corrections are not flows, and planned entries have not
// happened yet. Liability balances count against net assets.
func (s *Service) Summarize(ctx context.Context, userID uuid.UUID, now time.Time) (*Summary, error) {
	u, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to load accounts", err)
	}

	var table *rates.Table
	if t, err := s.rates.Table(ctx); err != nil {
		s.log.WithContext(ctx).WithError(err).Warn("rate table unavailable, summary degrades to native amounts")
	} else {
		table = t
	}

	currencyByAccount := make(map[uuid.UUID]string, len(accounts))
	var totalAssets, totalLiabilities int64
	for _, a := range accounts {
		currencyByAccount[a.ID] = a.Currency

		balance := convertOrNative(table, a.Balance, a.Currency, u.DefaultCurrency)
		if a.IsLiability {
			totalLiabilities += balance
		} else {
			totalAssets += balance
		}
	}

	dayStart, dayEnd := dayRange(now)
	weekStart, weekEnd := weekRange(now, u.FirstDayOfWeek)
	monthStart, monthEnd := monthRange(now)
	yearStart, yearEnd := yearRange(now)

	// One load covering every period; the week may start before the year
	loadStart := min64(yearStart, weekStart)
	loadEnd := max64(yearEnd, weekEnd)

	txs, err := s.transactions.ListByTimeRange(ctx, userID, loadStart, loadEnd)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to load transactions", err)
	}

	var today, week, month, year periodSums
	for _, t := range txs {
		if t.Planned || t.Time > now.Unix() {
			continue
		}

		var income, expense int64
		switch t.Type {
		case transaction.TypeIncome:
			income = convertOrNative(table, t.SourceAmount, currencyByAccount[t.SourceAccountID], u.DefaultCurrency)
		case transaction.TypeExpense:
			expense = convertOrNative(table, t.SourceAmount, currencyByAccount[t.SourceAccountID], u.DefaultCurrency)
		default:
			continue
		}

		today.add(t.Time, dayStart, dayEnd, income, expense)
		week.add(t.Time, weekStart, weekEnd, income, expense)
		month.add(t.Time, monthStart, monthEnd, income, expense)
		year.add(t.Time, yearStart, yearEnd, income, expense)
	}

	cur := u.DefaultCurrency
	return &Summary{
		Currency:         cur,
		NetAssets:        amountView(totalAssets-totalLiabilities, cur),
		TotalAssets:      amountView(totalAssets, cur),
		TotalLiabilities: amountView(totalLiabilities, cur),
		Today:            today.view(cur),
		ThisWeek:         week.view(cur),
		ThisMonth:        month.view(cur),
		ThisYear:         year.view(cur),
	}, nil
}

func (s *Service) loadUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeNotFound, "user not found")
		}
		return nil, apperrors.DatabaseError("failed to load user", err)
	}
	return u, nil
}

type periodSums struct {
	income  int64
	expense int64
}

func (p *periodSums) add(at, start, end, income, expense int64) {
	if at < start || at > end {
		return
	}
	p.income += income
	p.expense += expense
}

func (p periodSums) view(currency string) PeriodTotals {
	return PeriodTotals{
		Income:  amountView(p.income, currency),
		Expense: amountView(p.expense, currency),
	}
}

func amountView(amount int64, currency string) AmountView {
	return AmountView{Amount: amount, Display: money.Format(amount, currency)}
}

// convertOrNative converts through the table, treating the native amount
// as already in the reporting currency when no rate is available
func convertOrNative(table *rates.Table, amount int64, from, to string) int64 {
	if table == nil || from == "" || from == to {
		return amount
	}
	converted, err := table.Convert(amount, from, to)
	if err != nil {
		return amount
	}
	return converted
}

// tableConverter adapts a rate table to the forecast engine
type tableConverter struct {
	table *rates.Table
}

func (c tableConverter) Convert(amount int64, from, to string) (int64, error) {
	return c.table.Convert(amount, from, to)
}

// unavailableConverter fails every conversion, which makes the forecast
// engine fall back to native amounts throughout
type unavailableConverter struct{}

func (unavailableConverter) Convert(amount int64, from, to string) (int64, error) {
	return 0, rates.ErrNoRate
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
