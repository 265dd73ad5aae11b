package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/supabase-community/postgrest-go"

	"cartsync/internal/list/repository"
	"cartsync/internal/model"
)

// ListItems fetches all items of a list in display order.
func (r *implRepository) ListItems(ctx context.Context, sc model.Scope, listID string) ([]model.ListItem, error) {
	resp, _, err := r.rest(sc).From(tableItems).
		Select("*", "", false).
		Eq("list_id", listID).
		Order("category_id", &postgrest.OrderOpts{Ascending: true}).
		Order("sort_order", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToList, err)
	}

	var items []model.ListItem
	if err := json.Unmarshal(resp, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToList, err)
	}
	return items, nil
}

// CreateItem inserts a new item row. The client token is stored so the
// row's change event can be matched to its optimistic entry.
func (r *implRepository) CreateItem(ctx context.Context, sc model.Scope, opt repository.CreateItemOptions) (model.ListItem, error) {
	row := map[string]interface{}{
		"list_id":         opt.ListID,
		"name":            opt.Name,
		"category_id":     opt.CategoryID,
		"quantity":        opt.Quantity,
		"unit":            opt.Unit,
		"estimated_price": opt.EstimatedPrice,
		"status":          opt.Status,
		"sort_order":      opt.SortOrder,
		"client_token":    opt.ClientToken,
	}
	if opt.ProductID != "" {
		row["product_id"] = opt.ProductID
	}
	if len(opt.Tags) > 0 {
		row["tags"] = opt.Tags
	}

	resp, _, err := r.rest(sc).From(tableItems).
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return model.ListItem{}, fmt.Errorf("%w: %v", repository.ErrFailedToInsert, err)
	}

	return firstItem(resp, repository.ErrFailedToInsert)
}

// UpdateItem applies a field-level patch to an item row.
func (r *implRepository) UpdateItem(ctx context.Context, sc model.Scope, opt repository.UpdateItemOptions) (model.ListItem, error) {
	patch := map[string]interface{}{}
	if opt.Name != nil {
		patch["name"] = *opt.Name
	}
	if opt.Quantity != nil {
		patch["quantity"] = *opt.Quantity
	}
	if opt.Unit != nil {
		patch["unit"] = *opt.Unit
	}
	if opt.EstimatedPrice != nil {
		patch["estimated_price"] = *opt.EstimatedPrice
	}
	if opt.ActualPrice != nil {
		patch["actual_price"] = *opt.ActualPrice
	}
	if opt.Status != nil {
		patch["status"] = *opt.Status
	}
	if opt.Tags != nil {
		patch["tags"] = *opt.Tags
	}
	if opt.SortOrder != nil {
		patch["sort_order"] = *opt.SortOrder
	}
	if len(patch) == 0 {
		return model.ListItem{}, repository.ErrFailedToUpdate
	}

	resp, _, err := r.rest(sc).From(tableItems).
		Update(patch, "representation", "").
		Eq("id", opt.ID).
		Execute()
	if err != nil {
		return model.ListItem{}, fmt.Errorf("%w: %v", repository.ErrFailedToUpdate, err)
	}

	return firstItem(resp, repository.ErrNotFound)
}

// DeleteItem removes an item row.
func (r *implRepository) DeleteItem(ctx context.Context, sc model.Scope, id string) error {
	_, _, err := r.rest(sc).From(tableItems).
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrFailedToDelete, err)
	}
	return nil
}

func firstItem(resp []byte, emptyErr error) (model.ListItem, error) {
	var items []model.ListItem
	if err := json.Unmarshal(resp, &items); err != nil {
		return model.ListItem{}, fmt.Errorf("%w: %v", emptyErr, err)
	}
	if len(items) == 0 {
		return model.ListItem{}, emptyErr
	}
	return items[0], nil
}
