package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cartsync/internal/list"
	"cartsync/internal/list/repository"
	"cartsync/internal/list/usecase"
	"cartsync/internal/model"
	"cartsync/pkg/quickadd"
)

func newUC(repo *mockRepo) (list.UseCase, model.Scope) {
	uc := usecase.New(&mockLogger{}, repo, &mockShareUC{}, newSessions(), nil, quickadd.NewParser(""))
	return uc, model.Scope{UserID: "user-1", Email: "u1@example.com"}
}

// activate seeds a list with items and makes it the active one.
func activate(t *testing.T, uc list.UseCase, sc model.Scope, repo *mockRepo, items []model.ListItem) {
	t.Helper()
	repo.getListFunc = func(id string) (model.ShoppingList, error) {
		return model.ShoppingList{ID: id, OwnerID: sc.UserID, Title: "Weekly"}, nil
	}
	repo.listItemsFunc = func(listID string) ([]model.ListItem, error) {
		return items, nil
	}
	if _, err := uc.SetActiveList(context.Background(), sc, "list-1"); err != nil {
		t.Fatalf("SetActiveList: %v", err)
	}
}

func TestAddItemOptimistic(t *testing.T) {
	repo := newMockRepo()
	uc, sc := newUC(repo)
	activate(t, uc, sc, repo, nil)

	it, err := uc.AddItem(context.Background(), sc, list.AddItemInput{
		ListID: "list-1", Name: "Milk", Quantity: 2, EstimatedPrice: 3.50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Visible immediately, marked pending, carrying a client token.
	if !it.Pending {
		t.Error("expected optimistic entry to be pending")
	}
	if !strings.HasPrefix(it.ID, "local-") {
		t.Errorf("expected temp id, got %q", it.ID)
	}
	if it.ClientToken == "" {
		t.Error("expected a client token on the optimistic entry")
	}
	if it.Status != model.StatusToBuy {
		t.Errorf("new items start as to_buy, got %s", it.Status)
	}

	if !repo.waitPersist(2 * time.Second) {
		t.Fatal("expected background persist")
	}
	created := repo.createdItemOpts()
	if len(created) != 1 || created[0].ClientToken != it.ClientToken {
		t.Fatalf("expected persist to carry the client token, got %+v", created)
	}
}

func TestAddItemValidation(t *testing.T) {
	repo := newMockRepo()
	uc, sc := newUC(repo)

	if _, err := uc.AddItem(context.Background(), sc, list.AddItemInput{ListID: "list-1", Name: "  "}); !errors.Is(err, list.ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
	if _, err := uc.AddItem(context.Background(), sc, list.AddItemInput{ListID: "list-1", Name: "Milk", Quantity: -1}); !errors.Is(err, list.ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := uc.AddItem(context.Background(), sc, list.AddItemInput{ListID: "list-1", Name: "Milk", EstimatedPrice: -2}); !errors.Is(err, list.ErrNegativePrice) {
		t.Errorf("expected ErrNegativePrice, got %v", err)
	}
	// No active list yet.
	if _, err := uc.AddItem(context.Background(), sc, list.AddItemInput{Name: "Milk"}); !errors.Is(err, list.ErrNoActiveList) {
		t.Errorf("expected ErrNoActiveList, got %v", err)
	}
}

func TestToggleItemStatus(t *testing.T) {
	repo := newMockRepo()
	uc, sc := newUC(repo)
	activate(t, uc, sc, repo, []model.ListItem{
		{ID: "item-1", ListID: "list-1", Name: "Milk", Quantity: 1, Status: model.StatusToBuy},
		{ID: "item-2", ListID: "list-1", Name: "Chips", Quantity: 1, Status: model.StatusSkipped},
	})

	it, err := uc.ToggleItemStatus(context.Background(), sc, "item-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.Status != model.StatusInCart {
		t.Errorf("expected in_cart after toggle, got %s", it.Status)
	}

	it, err = uc.ToggleItemStatus(context.Background(), sc, "item-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.Status != model.StatusToBuy {
		t.Errorf("expected to_buy after second toggle, got %s", it.Status)
	}

	// Toggling never touches a skipped item.
	it, err = uc.ToggleItemStatus(context.Background(), sc, "item-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.Status != model.StatusSkipped {
		t.Errorf("expected skipped untouched by toggle, got %s", it.Status)
	}

	if _, err := uc.ToggleItemStatus(context.Background(), sc, "ghost"); !errors.Is(err, list.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestSkipRestoresPriorStatus(t *testing.T) {
	repo := newMockRepo()
	uc, sc := newUC(repo)
	activate(t, uc, sc, repo, []model.ListItem{
		{ID: "item-1", ListID: "list-1", Name: "Milk", Quantity: 1, Status: model.StatusInCart},
	})

	it, err := uc.SkipItem(context.Background(), sc, "item-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.Status != model.StatusSkipped {
		t.Errorf("expected skipped, got %s", it.Status)
	}

	// Un-skipping puts the item back in the cart, not back to to_buy.
	it, err = uc.SkipItem(context.Background(), sc, "item-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.Status != model.StatusInCart {
		t.Errorf("expected in_cart restored after unskip, got %s", it.Status)
	}
}

func TestQuantityRules(t *testing.T) {
	repo := newMockRepo()
	uc, sc := newUC(repo)
	activate(t, uc, sc, repo, []model.ListItem{
		{ID: "item-1", ListID: "list-1", Name: "Milk", Quantity: 2, Status: model.StatusToBuy},
	})

	if _, err := uc.UpdateItemQuantity(context.Background(), sc, "item-1", 0); !errors.Is(err, list.ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity for zero, got %v", err)
	}

	it, err := uc.UpdateItemQuantity(context.Background(), sc, "item-1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", it.Quantity)
	}

	// Decrement saturates at one instead of deleting.
	it, err = uc.AdjustItemQuantity(context.Background(), sc, "item-1", -10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.Quantity != 1 {
		t.Errorf("expected quantity floored at 1, got %d", it.Quantity)
	}
}

func TestUpdateItemPrice(t *testing.T) {
	repo := newMockRepo()
	uc, sc := newUC(repo)
	activate(t, uc, sc, repo, []model.ListItem{
		{ID: "item-1", ListID: "list-1", Name: "Milk", Quantity: 1, EstimatedPrice: 3.50, Status: model.StatusToBuy},
	})

	if _, err := uc.UpdateItemPrice(context.Background(), sc, "item-1", -1); !errors.Is(err, list.ErrNegativePrice) {
		t.Errorf("expected ErrNegativePrice, got %v", err)
	}

	it, err := uc.UpdateItemPrice(context.Background(), sc, "item-1", 3.20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.ActualPrice == nil || *it.ActualPrice != 3.20 {
		t.Errorf("expected actual price 3.20, got %v", it.ActualPrice)
	}
	if it.UnitPrice() != 3.20 {
		t.Errorf("actual price must win over estimate, got %v", it.UnitPrice())
	}
}

func TestPersistenceFailureDoesNotRollBack(t *testing.T) {
	repo := newMockRepo()
	repo.updateItemFunc = func(opt repository.UpdateItemOptions) (model.ListItem, error) {
		return model.ListItem{}, errors.New("gateway down")
	}
	uc, sc := newUC(repo)
	activate(t, uc, sc, repo, []model.ListItem{
		{ID: "item-1", ListID: "list-1", Name: "Milk", Quantity: 1, Status: model.StatusToBuy},
	})

	it, err := uc.ToggleItemStatus(context.Background(), sc, "item-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.Status != model.StatusInCart {
		t.Errorf("expected optimistic state kept, got %s", it.Status)
	}

	if !repo.waitPersist(2 * time.Second) {
		t.Fatal("expected persist attempt")
	}
	// The cache still shows the optimistic state.
	got, err := uc.GetItemsByStatus(context.Background(), sc, "list-1", model.StatusInCart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected optimistic state to survive persist failure, got %d in cart", len(got))
	}
}

func TestDeleteItem(t *testing.T) {
	repo := newMockRepo()
	uc, sc := newUC(repo)
	activate(t, uc, sc, repo, []model.ListItem{
		{ID: "item-1", ListID: "list-1", Name: "Milk", Quantity: 1, Status: model.StatusToBuy},
	})

	if err := uc.DeleteItem(context.Background(), sc, "item-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.waitPersist(2 * time.Second) {
		t.Fatal("expected remote delete")
	}
	if ids := repo.deletedItemIDs(); len(ids) != 1 || ids[0] != "item-1" {
		t.Errorf("expected item-1 deleted remotely, got %v", ids)
	}

	if err := uc.DeleteItem(context.Background(), sc, "item-1"); !errors.Is(err, list.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound on double delete, got %v", err)
	}
}

func TestQuickAdd(t *testing.T) {
	repo := newMockRepo()
	uc, sc := newUC(repo)
	activate(t, uc, sc, repo, nil)

	items, err := uc.QuickAdd(context.Background(), sc, list.QuickAddInput{
		ListID: "list-1",
		Text:   "2x Milk $4.50\nEggs\n3 Apples",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Name != "Milk" || items[0].Quantity != 2 || items[0].EstimatedPrice != 4.50 {
		t.Errorf("unexpected first entry: %+v", items[0])
	}
	if items[1].Name != "Eggs" || items[1].Quantity != 1 {
		t.Errorf("unexpected second entry: %+v", items[1])
	}
	if items[2].Quantity != 3 {
		t.Errorf("unexpected third entry: %+v", items[2])
	}
}
