package list

import "errors"

// Domain-specific errors for the list package.
var (
	ErrListNotFound    = errors.New("list not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrEmptyTitle      = errors.New("list title is empty")
	ErrEmptyName       = errors.New("item name is empty")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrNegativePrice   = errors.New("price must not be negative")
	ErrInvalidStatus   = errors.New("unknown item status")
	ErrNotTemplate     = errors.New("list is not a template")
	ErrTemplateList    = errors.New("operation not available for templates")
	ErrNoActiveList    = errors.New("no active list")
)
