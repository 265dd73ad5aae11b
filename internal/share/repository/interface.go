package repository

import (
	"context"

	"cartsync/internal/model"
)

// Repository is the composed interface for the share domain data
// store.
type Repository interface {
	ShareRepository
	ProfileRepository
}

// ShareRepository defines data access for list share rows.
type ShareRepository interface {
	CreateShare(ctx context.Context, sc model.Scope, opt CreateShareOptions) (model.ListShare, error)
	GetShare(ctx context.Context, sc model.Scope, id string) (model.ListShare, error)
	GetShareByListAndUser(ctx context.Context, sc model.Scope, listID, userID string) (model.ListShare, error)
	ListShares(ctx context.Context, sc model.Scope, listID string) ([]model.ListShare, error)
	ListSharesForUser(ctx context.Context, sc model.Scope, userID string) ([]model.ListShare, error)
	UpdateSharePermission(ctx context.Context, sc model.Scope, id string, permission model.Permission) (model.ListShare, error)
	DeleteShare(ctx context.Context, sc model.Scope, id string) error
}

// ProfileRepository resolves public user profiles for invitations.
type ProfileRepository interface {
	GetProfileByEmail(ctx context.Context, sc model.Scope, email string) (model.Profile, error)
}
