package account_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/finbook/finbook/internal/platform/account"
)

// MockRepository is a mock implementation of account.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) AdjustBalance(ctx context.Context, id uuid.UUID, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockRepository) ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, userID, name)
	return args.Bool(0), args.Error(1)
}

func TestAccountService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	tests := []struct {
		name      string
		account   *account.Account
		setupMock func(*MockRepository)
		wantErr   error
	}{
		{
			name:    "valid account",
			account: account.NewAccount(userID, "Checking", "USD"),
			setupMock: func(repo *MockRepository) {
				repo.On("ExistsByUserAndName", ctx, userID, "Checking").Return(false, nil)
				repo.On("Create", ctx, mock.AnythingOfType("*account.Account")).Return(nil)
			},
		},
		{
			name:      "missing name",
			account:   account.NewAccount(userID, "", "USD"),
			setupMock: func(repo *MockRepository) {},
			wantErr:   account.ErrInvalidName,
		},
		{
			name:      "unknown currency",
			account:   account.NewAccount(userID, "Checking", "XXQ"),
			setupMock: func(repo *MockRepository) {},
			wantErr:   account.ErrInvalidCurrency,
		},
		{
			name:    "duplicate name",
			account: account.NewAccount(userID, "Checking", "USD"),
			setupMock: func(repo *MockRepository) {
				repo.On("ExistsByUserAndName", ctx, userID, "Checking").Return(true, nil)
			},
			wantErr: account.ErrDuplicateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMock(repo)

			svc := account.NewService(repo, nil)
			err := svc.Create(ctx, tt.account)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAccountService_GetChecksOwnership(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	acc := account.NewAccount(owner, "Savings", "EUR")

	repo := new(MockRepository)
	repo.On("GetByID", ctx, acc.ID).Return(acc, nil)

	svc := account.NewService(repo, nil)

	got, err := svc.Get(ctx, owner, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, acc, got)

	_, err = svc.Get(ctx, stranger, acc.ID)
	assert.ErrorIs(t, err, account.ErrNotOwner)
}

func TestAccountService_Reorder(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	first := account.NewAccount(userID, "Cash", "USD")
	second := account.NewAccount(userID, "Card", "USD")

	repo := new(MockRepository)
	repo.On("GetByID", ctx, first.ID).Return(first, nil)
	repo.On("GetByID", ctx, second.ID).Return(second, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*account.Account")).Return(nil)

	svc := account.NewService(repo, nil)
	require.NoError(t, svc.Reorder(ctx, userID, []uuid.UUID{second.ID, first.ID}))

	assert.Equal(t, 0, second.DisplayOrder)
	assert.Equal(t, 1, first.DisplayOrder)
}

type stubActivityCounter struct {
	count int64
}

func (s *stubActivityCounter) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return s.count, nil
}

func TestAccountService_DeleteBlockedByActivity(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	acc := account.NewAccount(userID, "Cash", "USD")

	repo := new(MockRepository)
	repo.On("GetByID", ctx, acc.ID).Return(acc, nil)
	repo.On("Delete", ctx, acc.ID).Return(nil)

	svc := account.NewService(repo, &stubActivityCounter{count: 3})
	assert.ErrorIs(t, svc.Delete(ctx, userID, acc.ID), account.ErrAccountHasActivity)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	svc = account.NewService(repo, &stubActivityCounter{})
	require.NoError(t, svc.Delete(ctx, userID, acc.ID))
}

func TestAccountService_SetHidden(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	acc := account.NewAccount(userID, "Old wallet", "USD")

	repo := new(MockRepository)
	repo.On("GetByID", ctx, acc.ID).Return(acc, nil)
	repo.On("Update", ctx, acc).Return(nil)

	svc := account.NewService(repo, nil)
	require.NoError(t, svc.SetHidden(ctx, userID, acc.ID, true))
	assert.True(t, acc.Hidden)
}
