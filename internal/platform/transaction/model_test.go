package transaction_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook/finbook/internal/platform/transaction"
)

func TestTransaction_Validate(t *testing.T) {
	accountID := uuid.New()
	otherID := uuid.New()

	valid := func(txType transaction.Type, amount int64) *transaction.Transaction {
		return &transaction.Transaction{
			ID:              uuid.New(),
			UserID:          uuid.New(),
			Type:            txType,
			Time:            1700000000,
			SourceAccountID: accountID,
			SourceAmount:    amount,
		}
	}

	tests := []struct {
		name    string
		tx      *transaction.Transaction
		wantErr error
	}{
		{name: "income", tx: valid(transaction.TypeIncome, 100)},
		{name: "expense", tx: valid(transaction.TypeExpense, 100)},
		{
			name:    "negative expense",
			tx:      valid(transaction.TypeExpense, -100),
			wantErr: transaction.ErrNegativeAmount,
		},
		{
			name:    "negative income",
			tx:      valid(transaction.TypeIncome, -100),
			wantErr: transaction.ErrNegativeAmount,
		},
		// corrections carry their own sign
		{name: "downward balance correction", tx: valid(transaction.TypeModifyBalance, -250)},
		{name: "upward balance correction", tx: valid(transaction.TypeModifyBalance, 250)},
		{
			name:    "unknown type",
			tx:      valid("refund", 100),
			wantErr: transaction.ErrInvalidType,
		},
		{
			name: "transfer without destination",
			tx: func() *transaction.Transaction {
				tx := valid(transaction.TypeTransfer, 100)
				return tx
			}(),
			wantErr: transaction.ErrDestinationAccountRequired,
		},
		{
			name: "transfer to same account",
			tx: func() *transaction.Transaction {
				tx := valid(transaction.TypeTransfer, 100)
				tx.DestinationAccountID = &accountID
				tx.DestinationAmount = 100
				return tx
			}(),
			wantErr: transaction.ErrSameAccountTransfer,
		},
		{
			name: "transfer",
			tx: func() *transaction.Transaction {
				tx := valid(transaction.TypeTransfer, 100)
				tx.DestinationAccountID = &otherID
				tx.DestinationAmount = 90
				return tx
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_BalanceEffectsSignedCorrection(t *testing.T) {
	accountID := uuid.New()

	tx := &transaction.Transaction{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		Type:            transaction.TypeModifyBalance,
		Time:            1700000000,
		SourceAccountID: accountID,
		SourceAmount:    -250,
	}
	require.NoError(t, tx.Validate())

	effects := tx.BalanceEffects()
	assert.Equal(t, map[uuid.UUID]int64{accountID: -250}, effects)
}
