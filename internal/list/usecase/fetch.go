package usecase

import (
	"context"

	"cartsync/internal/list"
	"cartsync/internal/model"
)

// FetchLists refreshes the caller's cache with the merged owned ∪
// shared view. When the shared-lists read fails the result degrades to
// owned lists only instead of failing the whole call.
func (uc *implUseCase) FetchLists(ctx context.Context, sc model.Scope) (list.FetchListsOutput, error) {
	_, st := uc.store(sc)

	owned, err := uc.repo.ListOwned(ctx, sc)
	if err != nil {
		uc.l.Errorf(ctx, "list.usecase.FetchLists.ListOwned: %v", err)
		return list.FetchListsOutput{}, err
	}

	var (
		shared   []model.ShoppingList
		perms    = make(map[string]model.Permission)
		degraded bool
	)
	sharedLists, err := uc.shareUC.GetSharedWithMe(ctx, sc)
	if err != nil {
		uc.l.Warnf(ctx, "list.usecase.FetchLists: shared lists unavailable, degrading to owned only: %v", err)
		degraded = true
	} else {
		for _, sl := range sharedLists {
			shared = append(shared, sl.List)
			perms[sl.List.ID] = sl.Permission
		}
	}

	st.ReplaceLists(owned, shared, perms)

	out := list.FetchListsOutput{
		Owned:    st.OwnedLists(),
		Degraded: degraded,
	}
	for _, l := range st.SharedLists() {
		out.Shared = append(out.Shared, list.SharedListView{
			List:     l,
			ReadOnly: st.ReadOnly(l.ID),
		})
	}
	return out, nil
}

// GetOwnedLists reads the cached owned view, newest first.
func (uc *implUseCase) GetOwnedLists(ctx context.Context, sc model.Scope) []model.ShoppingList {
	_, st := uc.store(sc)
	return st.OwnedLists()
}

// GetSharedLists reads the cached shared view with read-only hints.
func (uc *implUseCase) GetSharedLists(ctx context.Context, sc model.Scope) []list.SharedListView {
	_, st := uc.store(sc)

	var out []list.SharedListView
	for _, l := range st.SharedLists() {
		out = append(out, list.SharedListView{
			List:     l,
			ReadOnly: st.ReadOnly(l.ID),
		})
	}
	return out
}

// GetTemplates reads the cached template view.
func (uc *implUseCase) GetTemplates(ctx context.Context, sc model.Scope) []model.ShoppingList {
	_, st := uc.store(sc)
	return st.Templates()
}
