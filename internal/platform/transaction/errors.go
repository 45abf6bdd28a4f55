package transaction

import "errors"

var (
	ErrTransactionNotFound        = errors.New("transaction not found")
	ErrInvalidType                = errors.New("invalid transaction type")
	ErrInvalidTime                = errors.New("transaction time is required")
	ErrSourceAccountRequired      = errors.New("source account is required")
	ErrDestinationAccountRequired = errors.New("destination account is required for transfers")
	ErrSameAccountTransfer        = errors.New("transfer source and destination must differ")
	ErrNegativeAmount             = errors.New("amount cannot be negative")
	ErrNotOwner                   = errors.New("transaction belongs to another user")
)
