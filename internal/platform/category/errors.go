package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateName    = errors.New("category name already exists")
	ErrInvalidName      = errors.New("category name is required")
	ErrInvalidKind      = errors.New("category kind must be income or expense")
	ErrNotOwner         = errors.New("category belongs to another user")
)
