package share

import (
	"context"

	"cartsync/internal/model"
)

// UseCase defines the collaboration lifecycle, independent of item
// state. Share management is owner-only in intent; actual enforcement
// is the gateway's row-level policy, never this component.
type UseCase interface {
	// ShareList resolves the invitee by email and creates the share.
	// Fails with ErrUserNotFound, ErrSelfShareNotAllowed or
	// ErrAlreadyShared when the preconditions are violated.
	ShareList(ctx context.Context, sc model.Scope, input ShareListInput) (model.ListShare, error)

	// GetSharedUsers returns all shares of a list, earliest
	// collaborator first.
	GetSharedUsers(ctx context.Context, sc model.Scope, listID string) ([]model.ListShare, error)

	UpdateSharePermission(ctx context.Context, sc model.Scope, shareID string, permission model.Permission) (model.ListShare, error)
	RemoveShare(ctx context.Context, sc model.Scope, shareID string) error

	// LeaveList removes the current user's own share on a list.
	LeaveList(ctx context.Context, sc model.Scope, listID string) error

	// GetSharedWithMe resolves every list the current user has been
	// granted a share on, joined with list metadata.
	GetSharedWithMe(ctx context.Context, sc model.Scope) ([]SharedList, error)
}
