package overview

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook/finbook/internal/platform/account"
	"github.com/finbook/finbook/internal/platform/rates"
	"github.com/finbook/finbook/internal/platform/transaction"
	"github.com/finbook/finbook/internal/platform/user"
	"github.com/finbook/finbook/pkg/logger"
)

// 2024-01-01 00:00:00 UTC
const baseTime int64 = 1704067200

type stubUsers struct {
	u   *user.User
	err error
}

func (s stubUsers) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.u, s.err
}

type stubAccounts struct {
	accounts []*account.Account
	err      error
}

func (s stubAccounts) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	return s.accounts, s.err
}

type stubTransactions struct {
	txs []*transaction.Transaction
	err error

	gotStart int64
	gotEnd   int64
}

func (s *stubTransactions) ListByTimeRange(ctx context.Context, userID uuid.UUID, start, end int64) ([]*transaction.Transaction, error) {
	s.gotStart = start
	s.gotEnd = end
	return s.txs, s.err
}

type stubRates struct {
	table *rates.Table
	err   error
}

func (s stubRates) Table(ctx context.Context) (*rates.Table, error) {
	return s.table, s.err
}

func usdToEurTable() *rates.Table {
	return &rates.Table{
		Base: "USD",
		AsOf: time.Unix(baseTime, 0).UTC(),
		Rates: map[string]decimal.Decimal{
			"EUR": decimal.NewFromInt(2), // 1 USD buys 2 EUR
		},
	}
}

func testUser(currency string) *user.User {
	return &user.User{
		ID:              uuid.New(),
		Email:           "test@example.com",
		DefaultCurrency: currency,
		FirstDayOfWeek:  time.Monday,
	}
}

func newTestService(users UserSource, accounts AccountSource, txs TransactionSource, rateSource RateSource) *Service {
	return NewService(users, accounts, txs, rateSource, logger.NewDefault("test"))
}

func TestForecast_BuildsSeriesInReportingCurrency(t *testing.T) {
	ctx := context.Background()

	acc := &account.Account{ID: uuid.New(), Currency: "USD"}
	txs := &stubTransactions{txs: []*transaction.Transaction{
		{
			ID:              uuid.New(),
			Type:            transaction.TypeIncome,
			Time:            baseTime + 3600,
			SourceAccountID: acc.ID,
			SourceAmount:    100,
		},
	}}

	svc := newTestService(
		stubUsers{u: testUser("USD")},
		stubAccounts{accounts: []*account.Account{acc}},
		txs,
		stubRates{table: usdToEurTable()},
	)

	resp, err := svc.Forecast(ctx, uuid.New(), ForecastRequest{
		DataStart: baseTime,
		DataEnd:   baseTime + 3*86400,
		Now:       baseTime + 86400,
	})
	require.NoError(t, err)

	assert.Equal(t, "USD", resp.Currency)
	require.Len(t, resp.Points, 4)
	assert.Equal(t, "01.01", resp.Points[0].Date)
	for _, p := range resp.Points {
		assert.Equal(t, int64(100), p.Balance)
	}
	assert.Equal(t, baseTime, txs.gotStart)
	assert.Equal(t, baseTime+3*86400, txs.gotEnd)
}

func TestForecast_ConvertsThroughRateTable(t *testing.T) {
	ctx := context.Background()

	acc := &account.Account{ID: uuid.New(), Currency: "EUR"}
	txs := &stubTransactions{txs: []*transaction.Transaction{
		{
			ID:              uuid.New(),
			Type:            transaction.TypeIncome,
			Time:            baseTime + 3600,
			SourceAccountID: acc.ID,
			SourceAmount:    100,
		},
	}}

	svc := newTestService(
		stubUsers{u: testUser("USD")},
		stubAccounts{accounts: []*account.Account{acc}},
		txs,
		stubRates{table: usdToEurTable()},
	)

	resp, err := svc.Forecast(ctx, uuid.New(), ForecastRequest{
		DataStart: baseTime,
		DataEnd:   baseTime + 86400,
		Now:       baseTime + 86400,
	})
	require.NoError(t, err)

	// 100 EUR at 2 EUR/USD
	require.Len(t, resp.Points, 2)
	assert.Equal(t, int64(50), resp.Points[0].Balance)
}

func TestForecast_DegradesToNativeAmountsWithoutRates(t *testing.T) {
	ctx := context.Background()

	acc := &account.Account{ID: uuid.New(), Currency: "EUR"}
	txs := &stubTransactions{txs: []*transaction.Transaction{
		{
			ID:              uuid.New(),
			Type:            transaction.TypeIncome,
			Time:            baseTime + 3600,
			SourceAccountID: acc.ID,
			SourceAmount:    100,
		},
	}}

	svc := newTestService(
		stubUsers{u: testUser("USD")},
		stubAccounts{accounts: []*account.Account{acc}},
		txs,
		stubRates{err: errors.New("provider down")},
	)

	resp, err := svc.Forecast(ctx, uuid.New(), ForecastRequest{
		DataStart: baseTime,
		DataEnd:   baseTime + 86400,
		Now:       baseTime + 86400,
	})
	require.NoError(t, err)

	require.Len(t, resp.Points, 2)
	assert.Equal(t, int64(100), resp.Points[0].Balance)
}

func TestForecast_UserLoadFailurePropagates(t *testing.T) {
	svc := newTestService(
		stubUsers{err: user.ErrUserNotFound},
		stubAccounts{},
		&stubTransactions{},
		stubRates{table: usdToEurTable()},
	)

	_, err := svc.Forecast(context.Background(), uuid.New(), ForecastRequest{
		DataStart: baseTime,
		DataEnd:   baseTime + 86400,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestSummarize_BucketsFlowsByPeriod(t *testing.T) {
	ctx := context.Background()

	// Saturday 2024-06-15 12:00 UTC
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	jun15 := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC).Unix()
	jun12 := time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC).Unix()
	jun1 := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC).Unix()
	feb1 := time.Date(2024, time.February, 1, 10, 0, 0, 0, time.UTC).Unix()

	asset := &account.Account{ID: uuid.New(), Currency: "USD", Balance: 1000}
	debt := &account.Account{ID: uuid.New(), Currency: "USD", Balance: 300, IsLiability: true}
	dstID := debt.ID

	txs := &stubTransactions{txs: []*transaction.Transaction{
		{Type: transaction.TypeIncome, Time: jun15, SourceAccountID: asset.ID, SourceAmount: 50},
		{Type: transaction.TypeExpense, Time: jun12, SourceAccountID: asset.ID, SourceAmount: 20},
		{Type: transaction.TypeIncome, Time: jun1, SourceAccountID: asset.ID, SourceAmount: 30},
		{Type: transaction.TypeExpense, Time: feb1, SourceAccountID: asset.ID, SourceAmount: 10},
		// Not flows: planned, transfer, balance correction
		{Type: transaction.TypeIncome, Time: jun15, SourceAccountID: asset.ID, SourceAmount: 500, Planned: true},
		{Type: transaction.TypeTransfer, Time: jun15, SourceAccountID: asset.ID, SourceAmount: 40, DestinationAccountID: &dstID, DestinationAmount: 40},
		{Type: transaction.TypeModifyBalance, Time: jun15, SourceAccountID: asset.ID, SourceAmount: 999},
	}}

	svc := newTestService(
		stubUsers{u: testUser("USD")},
		stubAccounts{accounts: []*account.Account{asset, debt}},
		txs,
		stubRates{table: usdToEurTable()},
	)

	sum, err := svc.Summarize(ctx, uuid.New(), now)
	require.NoError(t, err)

	assert.Equal(t, "USD", sum.Currency)
	assert.Equal(t, int64(1000), sum.TotalAssets.Amount)
	assert.Equal(t, int64(300), sum.TotalLiabilities.Amount)
	assert.Equal(t, int64(700), sum.NetAssets.Amount)
	assert.Equal(t, "$7.00", sum.NetAssets.Display)

	assert.Equal(t, int64(50), sum.Today.Income.Amount)
	assert.Equal(t, int64(0), sum.Today.Expense.Amount)

	// Week starts Monday 2024-06-10
	assert.Equal(t, int64(50), sum.ThisWeek.Income.Amount)
	assert.Equal(t, int64(20), sum.ThisWeek.Expense.Amount)

	assert.Equal(t, int64(80), sum.ThisMonth.Income.Amount)
	assert.Equal(t, int64(20), sum.ThisMonth.Expense.Amount)

	assert.Equal(t, int64(80), sum.ThisYear.Income.Amount)
	assert.Equal(t, int64(30), sum.ThisYear.Expense.Amount)

	// One load spans every period
	yearStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	assert.Equal(t, yearStart, txs.gotStart)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()-1, txs.gotEnd)
}

func TestWeekRange_RespectsFirstDayOfWeek(t *testing.T) {
	// Saturday 2024-06-15
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	start, end := weekRange(now, time.Monday)
	assert.Equal(t, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC).Unix(), start)
	assert.Equal(t, time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC).Unix()-1, end)

	start, end = weekRange(now, time.Sunday)
	assert.Equal(t, time.Date(2024, time.June, 9, 0, 0, 0, 0, time.UTC).Unix(), start)
	assert.Equal(t, time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC).Unix()-1, end)
}
