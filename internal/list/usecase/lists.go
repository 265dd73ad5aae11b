package usecase

import (
	"context"
	"errors"
	"strings"

	"cartsync/internal/list"
	"cartsync/internal/list/repository"
	"cartsync/internal/model"
)

// CreateList creates a new live trip and caches it.
func (uc *implUseCase) CreateList(ctx context.Context, sc model.Scope, input list.CreateListInput) (model.ShoppingList, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return model.ShoppingList{}, list.ErrEmptyTitle
	}
	if input.Budget != nil && *input.Budget < 0 {
		return model.ShoppingList{}, list.ErrNegativePrice
	}

	created, err := uc.repo.CreateList(ctx, sc, repository.CreateListOptions{
		OwnerID:   sc.UserID,
		Title:     title,
		StoreID:   input.StoreID,
		StoreName: input.StoreName,
		Budget:    input.Budget,
	})
	if err != nil {
		uc.l.Errorf(ctx, "list.usecase.CreateList: %v", err)
		return model.ShoppingList{}, err
	}

	_, st := uc.store(sc)
	st.MergeList(created)
	return created, nil
}

// UpdateList patches list metadata (title, store, budget) and merges
// the result into the cache.
func (uc *implUseCase) UpdateList(ctx context.Context, sc model.Scope, input list.UpdateListInput) (model.ShoppingList, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return model.ShoppingList{}, list.ErrEmptyTitle
	}
	if input.Budget != nil && *input.Budget < 0 {
		return model.ShoppingList{}, list.ErrNegativePrice
	}

	updated, err := uc.repo.UpdateList(ctx, sc, repository.UpdateListOptions{
		ID:          input.ID,
		Title:       input.Title,
		StoreID:     input.StoreID,
		StoreName:   input.StoreName,
		Budget:      input.Budget,
		ClearBudget: input.ClearBudget,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.ShoppingList{}, list.ErrListNotFound
		}
		uc.l.Errorf(ctx, "list.usecase.UpdateList: %v", err)
		return model.ShoppingList{}, err
	}

	_, st := uc.store(sc)
	st.MergeList(updated)
	return updated, nil
}

// DeleteList removes a list. The gateway cascades item and share rows;
// locally the cache entry goes away and the active subscription is torn
// down when it followed the deleted list.
func (uc *implUseCase) DeleteList(ctx context.Context, sc model.Scope, listID string) error {
	if err := uc.repo.DeleteList(ctx, sc, listID); err != nil {
		uc.l.Errorf(ctx, "list.usecase.DeleteList: %v", err)
		return err
	}

	sess, st := uc.store(sc)
	if st.ActiveListID() == listID {
		sess.SwapActive(nil)
	}
	st.RemoveList(listID)
	return nil
}
