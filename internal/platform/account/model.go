package account

import (
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
)

// Account represents a money account: cash, bank account, credit card, loan.
// Balance is kept in minor units of the account's native currency.
type Account struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	Currency     string // ISO 4217 code
	Balance      int64  // minor units
	IsLiability  bool   // liabilities contribute negatively to net worth
	Hidden       bool
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate validates the account fields
func (a *Account) Validate() error {
	if a.Name == "" {
		return ErrInvalidName
	}

	if a.Currency == "" {
		return ErrInvalidCurrency
	}

	if money.GetCurrency(a.Currency) == nil {
		return ErrInvalidCurrency
	}

	return nil
}

// NewAccount creates a new account for a user
func NewAccount(userID uuid.UUID, name, currency string) *Account {
	now := time.Now()
	return &Account{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
