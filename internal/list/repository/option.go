package repository

import "cartsync/internal/model"

// CreateListOptions holds parameters for inserting a new list.
type CreateListOptions struct {
	OwnerID    string
	Title      string
	StoreID    string
	StoreName  string
	Budget     *float64
	IsTemplate bool
}

// UpdateListOptions holds parameters for a partial list update.
// Nil pointer fields are left untouched.
type UpdateListOptions struct {
	ID          string
	Title       *string
	StoreID     *string
	StoreName   *string
	Budget      *float64
	ClearBudget bool
}

// CreateItemOptions holds parameters for inserting a new item.
// ClientToken is the idempotency token echoed back in change events.
type CreateItemOptions struct {
	ListID         string
	ProductID      string
	Name           string
	CategoryID     string
	Quantity       int
	Unit           string
	EstimatedPrice float64
	Status         model.ItemStatus
	Tags           []string
	SortOrder      int
	ClientToken    string
}

// UpdateItemOptions holds parameters for a field-level item patch.
// Nil pointer fields are left untouched.
type UpdateItemOptions struct {
	ID             string
	Name           *string
	Quantity       *int
	Unit           *string
	EstimatedPrice *float64
	ActualPrice    *float64
	Status         *model.ItemStatus
	Tags           *[]string
	SortOrder      *int
}
