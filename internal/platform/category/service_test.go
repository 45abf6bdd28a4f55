package category_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/finbook/finbook/internal/platform/category"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, c *category.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*category.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, c *category.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, userID, name)
	return args.Bool(0), args.Error(1)
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("valid category", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ExistsByUserAndName", ctx, userID, "Groceries").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*category.Category")).Return(nil)

		svc := category.NewService(repo)
		err := svc.Create(ctx, category.NewCategory(userID, "Groceries", category.KindExpense))
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("invalid kind", func(t *testing.T) {
		svc := category.NewService(new(MockRepository))
		err := svc.Create(ctx, category.NewCategory(userID, "Groceries", "misc"))
		assert.ErrorIs(t, err, category.ErrInvalidKind)
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ExistsByUserAndName", ctx, userID, "Groceries").Return(true, nil)

		svc := category.NewService(repo)
		err := svc.Create(ctx, category.NewCategory(userID, "Groceries", category.KindExpense))
		assert.ErrorIs(t, err, category.ErrDuplicateName)
	})
}

func TestCategoryService_GetChecksOwnership(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	cat := category.NewCategory(owner, "Salary", category.KindIncome)

	repo := new(MockRepository)
	repo.On("GetByID", ctx, cat.ID).Return(cat, nil)

	svc := category.NewService(repo)

	got, err := svc.Get(ctx, owner, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, cat, got)

	_, err = svc.Get(ctx, uuid.New(), cat.ID)
	assert.ErrorIs(t, err, category.ErrNotOwner)
}
