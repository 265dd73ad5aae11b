package repository

import (
	"context"

	"cartsync/internal/model"
)

// Repository is the composed interface for the list domain's slice of
// the persistence gateway. Every call carries the caller's scope so
// the gateway's row-level policies apply.
type Repository interface {
	ListRepository
	ItemRepository
}

// ListRepository defines data access for shopping list rows.
type ListRepository interface {
	ListOwned(ctx context.Context, sc model.Scope) ([]model.ShoppingList, error)
	GetList(ctx context.Context, sc model.Scope, id string) (model.ShoppingList, error)
	GetListsByIDs(ctx context.Context, sc model.Scope, ids []string) ([]model.ShoppingList, error)
	CreateList(ctx context.Context, sc model.Scope, opt CreateListOptions) (model.ShoppingList, error)
	UpdateList(ctx context.Context, sc model.Scope, opt UpdateListOptions) (model.ShoppingList, error)
	DeleteList(ctx context.Context, sc model.Scope, id string) error
}

// ItemRepository defines data access for list item rows.
type ItemRepository interface {
	ListItems(ctx context.Context, sc model.Scope, listID string) ([]model.ListItem, error)
	CreateItem(ctx context.Context, sc model.Scope, opt CreateItemOptions) (model.ListItem, error)
	UpdateItem(ctx context.Context, sc model.Scope, opt UpdateItemOptions) (model.ListItem, error)
	DeleteItem(ctx context.Context, sc model.Scope, id string) error
}
