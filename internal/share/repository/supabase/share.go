package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/supabase-community/postgrest-go"

	"cartsync/internal/model"
	"cartsync/internal/share/repository"
)

// CreateShare inserts a new share row with denormalized collaborator
// display fields.
func (r *implRepository) CreateShare(ctx context.Context, sc model.Scope, opt repository.CreateShareOptions) (model.ListShare, error) {
	row := map[string]interface{}{
		"list_id":            opt.ListID,
		"user_id":            opt.UserID,
		"permission":         opt.Permission,
		"collaborator_email": opt.CollaboratorEmail,
	}
	if opt.CollaboratorName != "" {
		row["collaborator_name"] = opt.CollaboratorName
	}
	if opt.CollaboratorAvatar != "" {
		row["collaborator_avatar"] = opt.CollaboratorAvatar
	}

	resp, _, err := r.rest(sc).From(tableShares).
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return model.ListShare{}, fmt.Errorf("%w: %v", repository.ErrFailedToInsert, err)
	}

	return firstShare(resp, repository.ErrFailedToInsert)
}

// GetShare fetches a share row by id.
func (r *implRepository) GetShare(ctx context.Context, sc model.Scope, id string) (model.ListShare, error) {
	resp, _, err := r.rest(sc).From(tableShares).
		Select("*", "", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return model.ListShare{}, fmt.Errorf("%w: %v", repository.ErrFailedToGet, err)
	}

	return firstShare(resp, repository.ErrNotFound)
}

// GetShareByListAndUser fetches the share for a (list, user) pair, used
// to enforce the one-share-per-pair rule.
func (r *implRepository) GetShareByListAndUser(ctx context.Context, sc model.Scope, listID, userID string) (model.ListShare, error) {
	resp, _, err := r.rest(sc).From(tableShares).
		Select("*", "", false).
		Eq("list_id", listID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return model.ListShare{}, fmt.Errorf("%w: %v", repository.ErrFailedToGet, err)
	}

	return firstShare(resp, repository.ErrNotFound)
}

// ListShares fetches all shares on a list, oldest grant first.
func (r *implRepository) ListShares(ctx context.Context, sc model.Scope, listID string) ([]model.ListShare, error) {
	resp, _, err := r.rest(sc).From(tableShares).
		Select("*", "", false).
		Eq("list_id", listID).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToList, err)
	}

	var shares []model.ListShare
	if err := json.Unmarshal(resp, &shares); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToList, err)
	}
	return shares, nil
}

// ListSharesForUser fetches all shares granted to a user across lists.
func (r *implRepository) ListSharesForUser(ctx context.Context, sc model.Scope, userID string) ([]model.ListShare, error) {
	resp, _, err := r.rest(sc).From(tableShares).
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToList, err)
	}

	var shares []model.ListShare
	if err := json.Unmarshal(resp, &shares); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToList, err)
	}
	return shares, nil
}

// UpdateSharePermission changes the access level on an existing share.
func (r *implRepository) UpdateSharePermission(ctx context.Context, sc model.Scope, id string, permission model.Permission) (model.ListShare, error) {
	patch := map[string]interface{}{
		"permission": permission,
	}

	resp, _, err := r.rest(sc).From(tableShares).
		Update(patch, "representation", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return model.ListShare{}, fmt.Errorf("%w: %v", repository.ErrFailedToUpdate, err)
	}

	return firstShare(resp, repository.ErrNotFound)
}

// DeleteShare removes a share row, revoking access.
func (r *implRepository) DeleteShare(ctx context.Context, sc model.Scope, id string) error {
	_, _, err := r.rest(sc).From(tableShares).
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrFailedToDelete, err)
	}
	return nil
}

func firstShare(resp []byte, emptyErr error) (model.ListShare, error) {
	var shares []model.ListShare
	if err := json.Unmarshal(resp, &shares); err != nil {
		return model.ListShare{}, fmt.Errorf("%w: %v", emptyErr, err)
	}
	if len(shares) == 0 {
		return model.ListShare{}, emptyErr
	}
	return shares[0], nil
}
