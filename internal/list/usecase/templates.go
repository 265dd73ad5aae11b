package usecase

import (
	"context"
	"strings"

	"cartsync/internal/list"
	"cartsync/internal/list/repository"
	"cartsync/internal/model"
)

// SaveAsTemplate snapshots a live list into a reusable blueprint.
// Static fields (name, quantity, unit, estimate, category, sort order)
// are copied; runtime state (status, actual price, tags) is reset so
// the blueprint carries no trip history.
func (uc *implUseCase) SaveAsTemplate(ctx context.Context, sc model.Scope, listID, newTitle string) (model.ShoppingList, error) {
	src, err := uc.resolveList(ctx, sc, listID)
	if err != nil {
		return model.ShoppingList{}, err
	}
	if src.IsTemplate {
		return model.ShoppingList{}, list.ErrTemplateList
	}

	title := strings.TrimSpace(newTitle)
	if title == "" {
		title = src.Title
	}

	tpl, err := uc.repo.CreateList(ctx, sc, repository.CreateListOptions{
		OwnerID:    sc.UserID,
		Title:      title,
		StoreID:    src.StoreID,
		StoreName:  src.StoreName,
		Budget:     src.Budget,
		IsTemplate: true,
	})
	if err != nil {
		uc.l.Errorf(ctx, "list.usecase.SaveAsTemplate.CreateList: %v", err)
		return model.ShoppingList{}, err
	}

	items, err := uc.listItems(ctx, sc, listID)
	if err != nil {
		return model.ShoppingList{}, err
	}
	if err := uc.copyItems(ctx, sc, tpl.ID, items); err != nil {
		return model.ShoppingList{}, err
	}

	_, st := uc.store(sc)
	st.MergeList(tpl)
	return tpl, nil
}

// CreateFromTemplate instantiates a fresh trip from a blueprint. Every
// item starts over: to_buy, no actual price.
func (uc *implUseCase) CreateFromTemplate(ctx context.Context, sc model.Scope, templateID, newTitle string) (model.ShoppingList, error) {
	tpl, err := uc.resolveList(ctx, sc, templateID)
	if err != nil {
		return model.ShoppingList{}, err
	}
	if !tpl.IsTemplate {
		return model.ShoppingList{}, list.ErrNotTemplate
	}

	title := strings.TrimSpace(newTitle)
	if title == "" {
		title = tpl.Title
	}

	created, err := uc.repo.CreateList(ctx, sc, repository.CreateListOptions{
		OwnerID:   sc.UserID,
		Title:     title,
		StoreID:   tpl.StoreID,
		StoreName: tpl.StoreName,
		Budget:    tpl.Budget,
	})
	if err != nil {
		uc.l.Errorf(ctx, "list.usecase.CreateFromTemplate.CreateList: %v", err)
		return model.ShoppingList{}, err
	}

	items, err := uc.repo.ListItems(ctx, sc, templateID)
	if err != nil {
		uc.l.Errorf(ctx, "list.usecase.CreateFromTemplate.ListItems: %v", err)
		return model.ShoppingList{}, err
	}
	if err := uc.copyItems(ctx, sc, created.ID, items); err != nil {
		return model.ShoppingList{}, err
	}

	_, st := uc.store(sc)
	st.MergeList(created)
	return created, nil
}

// copyItems clones item rows into a target list with runtime fields
// (status, actual price, tags) reset. Copies are durable writes, not
// optimistic ones; the target list is not the active list yet.
func (uc *implUseCase) copyItems(ctx context.Context, sc model.Scope, targetListID string, items []model.ListItem) error {
	for _, it := range items {
		_, err := uc.repo.CreateItem(ctx, sc, repository.CreateItemOptions{
			ListID:         targetListID,
			ProductID:      it.ProductID,
			Name:           it.Name,
			CategoryID:     it.CategoryID,
			Quantity:       it.Quantity,
			Unit:           it.Unit,
			EstimatedPrice: it.EstimatedPrice,
			Status:         model.StatusToBuy,
			SortOrder:      it.SortOrder,
		})
		if err != nil {
			uc.l.Errorf(ctx, "list.usecase.copyItems: %v", err)
			return err
		}
	}
	return nil
}
