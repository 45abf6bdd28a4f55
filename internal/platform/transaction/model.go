package transaction

import (
	"time"

	"github.com/google/uuid"
)

// Type represents the kind of a transaction
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
	// TypeTransfer moves money between two accounts; the two legs are
	// denominated in each account's native currency and may differ in
	// magnitude for cross-currency transfers.
	TypeTransfer Type = "transfer"
	// TypeModifyBalance is an out-of-band balance correction. It adjusts an
	// account balance directly and is excluded from all flow statistics.
	TypeModifyBalance Type = "modify_balance"
)

// Transaction represents a single ledger entry.
// Amounts are non-negative minor units in the native currency of the
// account they refer to; the type carries the sign. Balance corrections
// are the exception: their amount is signed, so a correction can move
// the balance in either direction.
type Transaction struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	Type                 Type
	Time                 int64 // unix seconds
	SourceAccountID      uuid.UUID
	SourceAmount         int64
	DestinationAccountID *uuid.UUID // transfers only
	DestinationAmount    int64      // transfers only
	CategoryID           *uuid.UUID
	Comment              string
	// Planned marks a scheduled transaction that has not settled yet.
	// Planned entries are included in balance projections but excluded
	// from actual historical totals.
	Planned   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	switch t.Type {
	case TypeIncome, TypeExpense, TypeTransfer, TypeModifyBalance:
	default:
		return ErrInvalidType
	}

	if t.Time <= 0 {
		return ErrInvalidTime
	}

	if t.SourceAccountID == uuid.Nil {
		return ErrSourceAccountRequired
	}

	if t.SourceAmount < 0 && t.Type != TypeModifyBalance {
		return ErrNegativeAmount
	}

	if t.Type == TypeTransfer {
		if t.DestinationAccountID == nil || *t.DestinationAccountID == uuid.Nil {
			return ErrDestinationAccountRequired
		}
		if *t.DestinationAccountID == t.SourceAccountID {
			return ErrSameAccountTransfer
		}
		if t.DestinationAmount < 0 {
			return ErrNegativeAmount
		}
	}

	return nil
}

// BalanceEffects returns per-account balance deltas in native minor units.
// Income adds to the source account, expense subtracts, a transfer moves
// each leg's amount, and a balance correction applies the raw amount.
func (t *Transaction) BalanceEffects() map[uuid.UUID]int64 {
	effects := make(map[uuid.UUID]int64, 2)

	switch t.Type {
	case TypeIncome, TypeModifyBalance:
		effects[t.SourceAccountID] = t.SourceAmount
	case TypeExpense:
		effects[t.SourceAccountID] = -t.SourceAmount
	case TypeTransfer:
		effects[t.SourceAccountID] = -t.SourceAmount
		effects[*t.DestinationAccountID] = t.DestinationAmount
	}

	return effects
}

// ListFilter narrows transaction listing.
// Zero values mean "no constraint" for the respective field.
type ListFilter struct {
	StartTime  int64
	EndTime    int64
	Type       Type
	AccountID  uuid.UUID
	CategoryID uuid.UUID
	Limit      int
	Offset     int
}
