package list

import (
	"cartsync/internal/budget"
	"cartsync/internal/model"
)

// --- UseCase Inputs ---

type CreateListInput struct {
	Title     string
	StoreID   string
	StoreName string
	Budget    *float64
}

type UpdateListInput struct {
	ID        string
	Title     *string
	StoreID   *string
	StoreName *string
	Budget    *float64
	// ClearBudget removes the budget; Budget is ignored when set.
	ClearBudget bool
}

type AddItemInput struct {
	ListID         string
	ProductID      string
	Name           string
	CategoryID     string
	Quantity       int
	Unit           string
	EstimatedPrice float64
	Tags           []string
}

type QuickAddInput struct {
	ListID string
	Text   string
}

// --- UseCase Outputs ---

// FetchListsOutput is the merged owned ∪ shared view. Degraded is set
// when the shared-lists query failed and only owned lists are present.
type FetchListsOutput struct {
	Owned    []model.ShoppingList
	Shared   []SharedListView
	Degraded bool
}

// SharedListView pairs a shared list with the capability hint the
// presentation layer threads into item-row rendering.
type SharedListView struct {
	List     model.ShoppingList
	ReadOnly bool
}

type ActiveListOutput struct {
	List  model.ShoppingList
	Items []model.ListItem

	// Revision is the session cache revision at read time. It changes
	// whenever any local or remote mutation lands, so pollers can skip
	// refreshes while it holds still.
	Revision uint64
}

// SummaryOutput carries the derived financial aggregates of a list.
type SummaryOutput struct {
	ListID       string
	RunningTotal float64
	Spent        float64
	Health       budget.Health
}
