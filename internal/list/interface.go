package list

import (
	"context"

	"cartsync/internal/model"
)

// UseCase defines the business logic interface for the list domain:
// the list cache reads, the optimistic mutation pipeline, the active
// list subscription lifecycle, aggregates and the template lifecycle.
type UseCase interface {
	// Cache reads and lifecycle
	FetchLists(ctx context.Context, sc model.Scope) (FetchListsOutput, error)
	GetOwnedLists(ctx context.Context, sc model.Scope) []model.ShoppingList
	GetSharedLists(ctx context.Context, sc model.Scope) []SharedListView
	GetTemplates(ctx context.Context, sc model.Scope) []model.ShoppingList
	GetItemsByStatus(ctx context.Context, sc model.Scope, listID string, status model.ItemStatus) ([]model.ListItem, error)
	Summary(ctx context.Context, sc model.Scope, listID string) (SummaryOutput, error)

	// Subscription lifecycle: at most one active list per session.
	SetActiveList(ctx context.Context, sc model.Scope, listID string) (ActiveListOutput, error)

	// List lifecycle
	CreateList(ctx context.Context, sc model.Scope, input CreateListInput) (model.ShoppingList, error)
	UpdateList(ctx context.Context, sc model.Scope, input UpdateListInput) (model.ShoppingList, error)
	DeleteList(ctx context.Context, sc model.Scope, listID string) error

	// Item mutation pipeline (optimistic apply, async persist)
	AddItem(ctx context.Context, sc model.Scope, input AddItemInput) (model.ListItem, error)
	QuickAdd(ctx context.Context, sc model.Scope, input QuickAddInput) ([]model.ListItem, error)
	ToggleItemStatus(ctx context.Context, sc model.Scope, itemID string) (model.ListItem, error)
	SkipItem(ctx context.Context, sc model.Scope, itemID string) (model.ListItem, error)
	UpdateItemName(ctx context.Context, sc model.Scope, itemID, name string) (model.ListItem, error)
	UpdateItemQuantity(ctx context.Context, sc model.Scope, itemID string, quantity int) (model.ListItem, error)
	AdjustItemQuantity(ctx context.Context, sc model.Scope, itemID string, delta int) (model.ListItem, error)
	UpdateItemPrice(ctx context.Context, sc model.Scope, itemID string, actualPrice float64) (model.ListItem, error)
	SetItemTags(ctx context.Context, sc model.Scope, itemID string, tags []string) (model.ListItem, error)
	ReorderItem(ctx context.Context, sc model.Scope, itemID string, sortOrder int) (model.ListItem, error)
	DeleteItem(ctx context.Context, sc model.Scope, itemID string) error

	// Template lifecycle
	SaveAsTemplate(ctx context.Context, sc model.Scope, listID, newTitle string) (model.ShoppingList, error)
	CreateFromTemplate(ctx context.Context, sc model.Scope, templateID, newTitle string) (model.ShoppingList, error)
}
