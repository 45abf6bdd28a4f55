package account

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrDuplicateName      = errors.New("account name already exists")
	ErrInvalidName        = errors.New("account name is required")
	ErrInvalidCurrency    = errors.New("invalid currency code")
	ErrAccountHasActivity = errors.New("account has transactions and cannot be deleted")
	ErrNotOwner           = errors.New("account belongs to another user")
)
