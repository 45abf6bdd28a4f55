package rates

import "errors"

var (
	ErrNoRate       = errors.New("no exchange rate available")
	ErrTableMissing = errors.New("no exchange rate table available")
)
