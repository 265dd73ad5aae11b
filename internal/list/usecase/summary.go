package usecase

import (
	"context"

	"cartsync/internal/budget"
	"cartsync/internal/list"
	"cartsync/internal/model"
)

// Summary computes the financial aggregates of a list from current
// item state. Aggregates are derived on read, never persisted.
// Templates are blueprints, not trips, and have no aggregates.
func (uc *implUseCase) Summary(ctx context.Context, sc model.Scope, listID string) (list.SummaryOutput, error) {
	meta, err := uc.resolveList(ctx, sc, listID)
	if err != nil {
		return list.SummaryOutput{}, err
	}
	if meta.IsTemplate {
		return list.SummaryOutput{}, list.ErrTemplateList
	}

	items, err := uc.listItems(ctx, sc, listID)
	if err != nil {
		return list.SummaryOutput{}, err
	}

	spent := budget.Spent(items)
	out := list.SummaryOutput{
		ListID:       listID,
		RunningTotal: budget.RunningTotal(items),
		Spent:        spent,
		Health:       budget.Evaluate(meta.Budget, spent),
	}
	return out, nil
}

// GetItemsByStatus returns the active list's items in one status lane.
func (uc *implUseCase) GetItemsByStatus(ctx context.Context, sc model.Scope, listID string, status model.ItemStatus) ([]model.ListItem, error) {
	if !status.Valid() {
		return nil, list.ErrInvalidStatus
	}

	_, st := uc.store(sc)
	if st.ActiveListID() != listID {
		return nil, list.ErrNoActiveList
	}
	return st.ItemsByStatus(status), nil
}

// listItems reads items from the cache when listID is the active list,
// falling back to the gateway otherwise.
func (uc *implUseCase) listItems(ctx context.Context, sc model.Scope, listID string) ([]model.ListItem, error) {
	_, st := uc.store(sc)
	if st.ActiveListID() == listID {
		return st.Snapshot(), nil
	}

	items, err := uc.repo.ListItems(ctx, sc, listID)
	if err != nil {
		uc.l.Errorf(ctx, "list.usecase.listItems: %v", err)
		return nil, err
	}
	return items, nil
}
