package share

import "errors"

// Domain-specific errors for the share package. Sharing is a
// deliberate user action, so these carry messages fit for direct
// display.
var (
	ErrUserNotFound        = errors.New("no user found with that email")
	ErrSelfShareNotAllowed = errors.New("you cannot share a list with yourself")
	ErrAlreadyShared       = errors.New("list is already shared with that user")
	ErrShareNotFound       = errors.New("share not found")
	ErrInvalidPermission   = errors.New("permission must be edit or view")
)
