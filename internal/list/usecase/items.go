package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"cartsync/internal/list"
	"cartsync/internal/list/repository"
	"cartsync/internal/model"
)

// AddItem appends an item to the active list optimistically: the cache
// gains a pending entry immediately, the durable write runs in the
// background. The client token ties the eventual server row back to
// the pending entry.
func (uc *implUseCase) AddItem(ctx context.Context, sc model.Scope, input list.AddItemInput) (model.ListItem, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return model.ListItem{}, list.ErrEmptyName
	}
	if input.Quantity < 0 {
		return model.ListItem{}, list.ErrInvalidQuantity
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.EstimatedPrice < 0 {
		return model.ListItem{}, list.ErrNegativePrice
	}

	_, st := uc.store(sc)
	listID := input.ListID
	if listID == "" {
		listID = st.ActiveListID()
	}
	if listID == "" {
		return model.ListItem{}, list.ErrNoActiveList
	}
	if listID != st.ActiveListID() {
		return model.ListItem{}, list.ErrNoActiveList
	}

	token := uuid.NewString()
	now := time.Now().UTC()
	temp := model.ListItem{
		ID:             "local-" + token,
		ListID:         listID,
		ProductID:      input.ProductID,
		Name:           name,
		CategoryID:     input.CategoryID,
		Quantity:       input.Quantity,
		Unit:           input.Unit,
		EstimatedPrice: input.EstimatedPrice,
		Status:         model.StatusToBuy,
		Tags:           input.Tags,
		SortOrder:      st.NextSortOrder(input.CategoryID),
		ClientToken:    token,
		Pending:        true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	st.UpsertItem(temp)

	uc.persistCreate(ctx, sc, temp)
	return temp, nil
}

// persistCreate runs the durable insert detached from the request.
// Failure is logged, never rolled back; the pending entry stays until
// a later refetch or stream event settles it.
func (uc *implUseCase) persistCreate(ctx context.Context, sc model.Scope, temp model.ListItem) {
	pctx := context.WithoutCancel(ctx)
	go func() {
		created, err := uc.repo.CreateItem(pctx, sc, repository.CreateItemOptions{
			ListID:         temp.ListID,
			ProductID:      temp.ProductID,
			Name:           temp.Name,
			CategoryID:     temp.CategoryID,
			Quantity:       temp.Quantity,
			Unit:           temp.Unit,
			EstimatedPrice: temp.EstimatedPrice,
			Status:         temp.Status,
			Tags:           temp.Tags,
			SortOrder:      temp.SortOrder,
			ClientToken:    temp.ClientToken,
		})
		if err != nil {
			uc.l.Errorf(pctx, "list.usecase.AddItem: persist of %q failed: %v", temp.Name, err)
			return
		}
		// Some gateways strip the token from the returned row; restore
		// it so the pending entry is replaced deterministically.
		if created.ClientToken == "" {
			created.ClientToken = temp.ClientToken
		}
		_, st := uc.store(sc)
		st.UpsertItem(created)
	}()
}

// ToggleItemStatus flips to_buy ⇄ in_cart. Skipped items do not
// toggle; unskip is SkipItem's job.
func (uc *implUseCase) ToggleItemStatus(ctx context.Context, sc model.Scope, itemID string) (model.ListItem, error) {
	return uc.patchItem(ctx, sc, itemID, func(it *model.ListItem) bool {
		switch it.Status {
		case model.StatusToBuy:
			it.Status = model.StatusInCart
		case model.StatusInCart:
			it.Status = model.StatusToBuy
		default:
			return false
		}
		return true
	}, func(it model.ListItem) repository.UpdateItemOptions {
		return repository.UpdateItemOptions{ID: it.ID, Status: &it.Status}
	})
}

// SkipItem toggles the skip override. Skipping remembers the prior
// status; skipping again restores it, so an item skipped while in the
// cart comes back as in the cart.
func (uc *implUseCase) SkipItem(ctx context.Context, sc model.Scope, itemID string) (model.ListItem, error) {
	return uc.patchItem(ctx, sc, itemID, func(it *model.ListItem) bool {
		if it.Status == model.StatusSkipped {
			restored := it.RestoreStatus
			if !restored.Valid() || restored == model.StatusSkipped {
				restored = model.StatusToBuy
			}
			it.Status = restored
			it.RestoreStatus = ""
			return true
		}
		it.RestoreStatus = it.Status
		it.Status = model.StatusSkipped
		return true
	}, func(it model.ListItem) repository.UpdateItemOptions {
		return repository.UpdateItemOptions{ID: it.ID, Status: &it.Status}
	})
}

// UpdateItemName renames an item.
func (uc *implUseCase) UpdateItemName(ctx context.Context, sc model.Scope, itemID, name string) (model.ListItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.ListItem{}, list.ErrEmptyName
	}

	return uc.patchItem(ctx, sc, itemID, func(it *model.ListItem) bool {
		if it.Name == name {
			return false
		}
		it.Name = name
		return true
	}, func(it model.ListItem) repository.UpdateItemOptions {
		return repository.UpdateItemOptions{ID: it.ID, Name: &it.Name}
	})
}

// UpdateItemQuantity sets an absolute quantity. Quantities below one
// are rejected; deletion is explicit, never a side effect of a zero.
func (uc *implUseCase) UpdateItemQuantity(ctx context.Context, sc model.Scope, itemID string, quantity int) (model.ListItem, error) {
	if quantity < 1 {
		return model.ListItem{}, list.ErrInvalidQuantity
	}

	return uc.patchItem(ctx, sc, itemID, func(it *model.ListItem) bool {
		if it.Quantity == quantity {
			return false
		}
		it.Quantity = quantity
		return true
	}, func(it model.ListItem) repository.UpdateItemOptions {
		return repository.UpdateItemOptions{ID: it.ID, Quantity: &it.Quantity}
	})
}

// AdjustItemQuantity shifts the quantity by delta, saturating at one.
func (uc *implUseCase) AdjustItemQuantity(ctx context.Context, sc model.Scope, itemID string, delta int) (model.ListItem, error) {
	return uc.patchItem(ctx, sc, itemID, func(it *model.ListItem) bool {
		next := it.Quantity + delta
		if next < 1 {
			next = 1
		}
		if it.Quantity == next {
			return false
		}
		it.Quantity = next
		return true
	}, func(it model.ListItem) repository.UpdateItemOptions {
		return repository.UpdateItemOptions{ID: it.ID, Quantity: &it.Quantity}
	})
}

// UpdateItemPrice records the price actually paid.
func (uc *implUseCase) UpdateItemPrice(ctx context.Context, sc model.Scope, itemID string, actualPrice float64) (model.ListItem, error) {
	if actualPrice < 0 {
		return model.ListItem{}, list.ErrNegativePrice
	}

	return uc.patchItem(ctx, sc, itemID, func(it *model.ListItem) bool {
		if it.ActualPrice != nil && *it.ActualPrice == actualPrice {
			return false
		}
		it.ActualPrice = &actualPrice
		return true
	}, func(it model.ListItem) repository.UpdateItemOptions {
		return repository.UpdateItemOptions{ID: it.ID, ActualPrice: it.ActualPrice}
	})
}

// SetItemTags replaces an item's tag set.
func (uc *implUseCase) SetItemTags(ctx context.Context, sc model.Scope, itemID string, tags []string) (model.ListItem, error) {
	return uc.patchItem(ctx, sc, itemID, func(it *model.ListItem) bool {
		it.Tags = tags
		return true
	}, func(it model.ListItem) repository.UpdateItemOptions {
		return repository.UpdateItemOptions{ID: it.ID, Tags: &it.Tags}
	})
}

// ReorderItem moves an item to a new sort position.
func (uc *implUseCase) ReorderItem(ctx context.Context, sc model.Scope, itemID string, sortOrder int) (model.ListItem, error) {
	return uc.patchItem(ctx, sc, itemID, func(it *model.ListItem) bool {
		if it.SortOrder == sortOrder {
			return false
		}
		it.SortOrder = sortOrder
		return true
	}, func(it model.ListItem) repository.UpdateItemOptions {
		return repository.UpdateItemOptions{ID: it.ID, SortOrder: &it.SortOrder}
	})
}

// DeleteItem drops an item from the cache and deletes it remotely.
func (uc *implUseCase) DeleteItem(ctx context.Context, sc model.Scope, itemID string) error {
	_, st := uc.store(sc)
	it, ok := st.Item(itemID)
	if !ok {
		return list.ErrItemNotFound
	}
	st.RemoveItem(itemID)

	if it.Pending {
		return nil
	}

	pctx := context.WithoutCancel(ctx)
	go func() {
		if err := uc.repo.DeleteItem(pctx, sc, itemID); err != nil {
			uc.l.Errorf(pctx, "list.usecase.DeleteItem: persist failed: %v", err)
		}
	}()
	return nil
}

// patchItem applies an optimistic mutation to a cached item and
// persists the resulting field change in the background. Pending items
// have no server row yet; their patch stays local until the create
// settles.
func (uc *implUseCase) patchItem(
	ctx context.Context,
	sc model.Scope,
	itemID string,
	mutate func(*model.ListItem) bool,
	opts func(model.ListItem) repository.UpdateItemOptions,
) (model.ListItem, error) {
	_, st := uc.store(sc)

	it, ok := st.PatchItem(itemID, mutate)
	if !ok {
		return model.ListItem{}, list.ErrItemNotFound
	}
	if it.Pending {
		return it, nil
	}

	opt := opts(it)
	pctx := context.WithoutCancel(ctx)
	go func() {
		if _, err := uc.repo.UpdateItem(pctx, sc, opt); err != nil {
			uc.l.Errorf(pctx, "list.usecase: persist of item %s failed: %v", opt.ID, err)
		}
	}()
	return it, nil
}
