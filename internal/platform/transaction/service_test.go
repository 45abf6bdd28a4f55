package transaction_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/finbook/finbook/internal/platform/account"
	"github.com/finbook/finbook/internal/platform/transaction"
)

// MockRepository is a mock implementation of transaction.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, userID uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Transaction), args.Error(1)
}

func (m *MockRepository) ListByTimeRange(ctx context.Context, userID uuid.UUID, start, end int64) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Transaction), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

// MockAccountRepository is a mock implementation of account.Repository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockAccountRepository) Update(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccountRepository) AdjustBalance(ctx context.Context, id uuid.UUID, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockAccountRepository) ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, userID, name)
	return args.Bool(0), args.Error(1)
}

func newExpense(userID, accountID uuid.UUID, amount int64) *transaction.Transaction {
	return &transaction.Transaction{
		ID:              uuid.New(),
		UserID:          userID,
		Type:            transaction.TypeExpense,
		Time:            time.Now().Unix(),
		SourceAccountID: accountID,
		SourceAmount:    amount,
	}
}

func TestTransactionService_CreateAppliesBalanceEffects(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	acc := account.NewAccount(userID, "Cash", "USD")

	tx := newExpense(userID, acc.ID, 500)

	repo := new(MockRepository)
	accounts := new(MockAccountRepository)
	accounts.On("GetByID", ctx, acc.ID).Return(acc, nil)
	repo.On("Create", ctx, tx).Return(nil)
	accounts.On("AdjustBalance", ctx, acc.ID, int64(-500)).Return(nil)

	svc := transaction.NewService(repo, accounts)
	require.NoError(t, svc.Create(ctx, tx))

	repo.AssertExpectations(t)
	accounts.AssertExpectations(t)
}

func TestTransactionService_CreatePlannedSkipsBalances(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	acc := account.NewAccount(userID, "Cash", "USD")

	tx := newExpense(userID, acc.ID, 500)
	tx.Planned = true

	repo := new(MockRepository)
	accounts := new(MockAccountRepository)
	accounts.On("GetByID", ctx, acc.ID).Return(acc, nil)
	repo.On("Create", ctx, tx).Return(nil)

	svc := transaction.NewService(repo, accounts)
	require.NoError(t, svc.Create(ctx, tx))

	accounts.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionService_CreateTransferMovesBothLegs(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	src := account.NewAccount(userID, "Checking", "USD")
	dst := account.NewAccount(userID, "Savings", "EUR")

	tx := &transaction.Transaction{
		ID:                   uuid.New(),
		UserID:               userID,
		Type:                 transaction.TypeTransfer,
		Time:                 time.Now().Unix(),
		SourceAccountID:      src.ID,
		SourceAmount:         100,
		DestinationAccountID: &dst.ID,
		DestinationAmount:    90,
	}

	repo := new(MockRepository)
	accounts := new(MockAccountRepository)
	accounts.On("GetByID", ctx, src.ID).Return(src, nil)
	accounts.On("GetByID", ctx, dst.ID).Return(dst, nil)
	repo.On("Create", ctx, tx).Return(nil)
	accounts.On("AdjustBalance", ctx, src.ID, int64(-100)).Return(nil)
	accounts.On("AdjustBalance", ctx, dst.ID, int64(90)).Return(nil)

	svc := transaction.NewService(repo, accounts)
	require.NoError(t, svc.Create(ctx, tx))

	accounts.AssertExpectations(t)
}

func TestTransactionService_CreateRejectsForeignAccount(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	foreign := account.NewAccount(uuid.New(), "Not yours", "USD")

	tx := newExpense(userID, foreign.ID, 500)

	repo := new(MockRepository)
	accounts := new(MockAccountRepository)
	accounts.On("GetByID", ctx, foreign.ID).Return(foreign, nil)

	svc := transaction.NewService(repo, accounts)
	assert.ErrorIs(t, svc.Create(ctx, tx), account.ErrNotOwner)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTransactionService_UpdateRevertsOldEffects(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	acc := account.NewAccount(userID, "Cash", "USD")

	old := newExpense(userID, acc.ID, 500)
	updated := newExpense(userID, acc.ID, 300)
	updated.ID = old.ID

	repo := new(MockRepository)
	accounts := new(MockAccountRepository)
	repo.On("GetByID", ctx, old.ID).Return(old, nil)
	accounts.On("GetByID", ctx, acc.ID).Return(acc, nil)
	accounts.On("AdjustBalance", ctx, acc.ID, int64(500)).Return(nil)  // revert
	repo.On("Update", ctx, updated).Return(nil)
	accounts.On("AdjustBalance", ctx, acc.ID, int64(-300)).Return(nil) // reapply

	svc := transaction.NewService(repo, accounts)
	require.NoError(t, svc.Update(ctx, userID, updated))

	repo.AssertExpectations(t)
	accounts.AssertExpectations(t)
}

func TestTransactionService_DeleteRevertsEffects(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	acc := account.NewAccount(userID, "Cash", "USD")

	tx := newExpense(userID, acc.ID, 500)

	repo := new(MockRepository)
	accounts := new(MockAccountRepository)
	repo.On("GetByID", ctx, tx.ID).Return(tx, nil)
	repo.On("Delete", ctx, tx.ID).Return(nil)
	accounts.On("AdjustBalance", ctx, acc.ID, int64(500)).Return(nil)

	svc := transaction.NewService(repo, accounts)
	require.NoError(t, svc.Delete(ctx, userID, tx.ID))

	accounts.AssertExpectations(t)
}

func TestTransactionService_SettleAppliesEffectsOnce(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	acc := account.NewAccount(userID, "Cash", "USD")

	tx := newExpense(userID, acc.ID, 500)
	tx.Planned = true

	repo := new(MockRepository)
	accounts := new(MockAccountRepository)
	repo.On("GetByID", ctx, tx.ID).Return(tx, nil)
	repo.On("Update", ctx, tx).Return(nil)
	accounts.On("AdjustBalance", ctx, acc.ID, int64(-500)).Return(nil)

	svc := transaction.NewService(repo, accounts)
	require.NoError(t, svc.Settle(ctx, userID, tx.ID))
	assert.False(t, tx.Planned)

	// Settling an already settled transaction is a no-op
	require.NoError(t, svc.Settle(ctx, userID, tx.ID))
	accounts.AssertNumberOfCalls(t, "AdjustBalance", 1)
}

func TestTransactionService_ListClampsLimit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	repo := new(MockRepository)
	accounts := new(MockAccountRepository)
	repo.On("List", ctx, userID, transaction.ListFilter{Limit: 50}).Return([]*transaction.Transaction{}, nil)

	svc := transaction.NewService(repo, accounts)
	_, err := svc.List(ctx, userID, transaction.ListFilter{})
	require.NoError(t, err)
	_, err = svc.List(ctx, userID, transaction.ListFilter{Limit: 10000})
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "List", 2)
}
