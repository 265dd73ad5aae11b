package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/supabase-community/postgrest-go"

	"cartsync/internal/list/repository"
	"cartsync/internal/model"
)

// ListOwned fetches all lists owned by the caller, templates included.
func (r *implRepository) ListOwned(ctx context.Context, sc model.Scope) ([]model.ShoppingList, error) {
	resp, _, err := r.rest(sc).From(tableLists).
		Select("*", "", false).
		Eq("owner_id", sc.UserID).
		Order("updated_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToList, err)
	}

	var lists []model.ShoppingList
	if err := json.Unmarshal(resp, &lists); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToList, err)
	}
	return lists, nil
}

// GetList fetches a single list by id.
func (r *implRepository) GetList(ctx context.Context, sc model.Scope, id string) (model.ShoppingList, error) {
	resp, _, err := r.rest(sc).From(tableLists).
		Select("*", "", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return model.ShoppingList{}, fmt.Errorf("%w: %v", repository.ErrFailedToGet, err)
	}

	var lists []model.ShoppingList
	if err := json.Unmarshal(resp, &lists); err != nil {
		return model.ShoppingList{}, fmt.Errorf("%w: %v", repository.ErrFailedToGet, err)
	}
	if len(lists) == 0 {
		return model.ShoppingList{}, repository.ErrNotFound
	}
	return lists[0], nil
}

// GetListsByIDs fetches list metadata for the given ids, used to join
// shares with their lists.
func (r *implRepository) GetListsByIDs(ctx context.Context, sc model.Scope, ids []string) ([]model.ShoppingList, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	resp, _, err := r.rest(sc).From(tableLists).
		Select("*", "", false).
		In("id", ids).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToList, err)
	}

	var lists []model.ShoppingList
	if err := json.Unmarshal(resp, &lists); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToList, err)
	}
	return lists, nil
}

// CreateList inserts a new list row.
func (r *implRepository) CreateList(ctx context.Context, sc model.Scope, opt repository.CreateListOptions) (model.ShoppingList, error) {
	row := map[string]interface{}{
		"owner_id":    opt.OwnerID,
		"title":       opt.Title,
		"is_template": opt.IsTemplate,
	}
	if opt.StoreID != "" {
		row["store_id"] = opt.StoreID
	}
	if opt.StoreName != "" {
		row["store_name"] = opt.StoreName
	}
	if opt.Budget != nil {
		row["budget"] = *opt.Budget
	}

	resp, _, err := r.rest(sc).From(tableLists).
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return model.ShoppingList{}, fmt.Errorf("%w: %v", repository.ErrFailedToInsert, err)
	}

	return firstList(resp, repository.ErrFailedToInsert)
}

// UpdateList applies a partial update to a list row.
func (r *implRepository) UpdateList(ctx context.Context, sc model.Scope, opt repository.UpdateListOptions) (model.ShoppingList, error) {
	patch := map[string]interface{}{}
	if opt.Title != nil {
		patch["title"] = *opt.Title
	}
	if opt.StoreID != nil {
		patch["store_id"] = *opt.StoreID
	}
	if opt.StoreName != nil {
		patch["store_name"] = *opt.StoreName
	}
	if opt.ClearBudget {
		patch["budget"] = nil
	} else if opt.Budget != nil {
		patch["budget"] = *opt.Budget
	}
	if len(patch) == 0 {
		return r.GetList(ctx, sc, opt.ID)
	}

	resp, _, err := r.rest(sc).From(tableLists).
		Update(patch, "representation", "").
		Eq("id", opt.ID).
		Execute()
	if err != nil {
		return model.ShoppingList{}, fmt.Errorf("%w: %v", repository.ErrFailedToUpdate, err)
	}

	return firstList(resp, repository.ErrNotFound)
}

// DeleteList removes a list row. The gateway cascades item and share
// deletion.
func (r *implRepository) DeleteList(ctx context.Context, sc model.Scope, id string) error {
	_, _, err := r.rest(sc).From(tableLists).
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrFailedToDelete, err)
	}
	return nil
}

func firstList(resp []byte, emptyErr error) (model.ShoppingList, error) {
	var lists []model.ShoppingList
	if err := json.Unmarshal(resp, &lists); err != nil {
		return model.ShoppingList{}, fmt.Errorf("%w: %v", emptyErr, err)
	}
	if len(lists) == 0 {
		return model.ShoppingList{}, emptyErr
	}
	return lists[0], nil
}
