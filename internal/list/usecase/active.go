package usecase

import (
	"context"
	"errors"

	"cartsync/internal/list"
	"cartsync/internal/list/repository"
	"cartsync/internal/model"
)

// SetActiveList switches the session's active list: items are loaded
// synchronously for the response, the previous realtime subscription
// is torn down, and a new one is started for the chosen list. A
// session follows at most one list at a time.
func (uc *implUseCase) SetActiveList(ctx context.Context, sc model.Scope, listID string) (list.ActiveListOutput, error) {
	sess, st := uc.store(sc)

	meta, err := uc.resolveList(ctx, sc, listID)
	if err != nil {
		return list.ActiveListOutput{}, err
	}

	items, err := uc.repo.ListItems(ctx, sc, listID)
	if err != nil {
		uc.l.Errorf(ctx, "list.usecase.SetActiveList.ListItems: %v", err)
		return list.ActiveListOutput{}, err
	}

	st.MergeList(meta)
	st.SetActive(listID, items)

	if uc.recon != nil {
		runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		sess.SwapActive(cancel)
		go uc.recon.Run(runCtx, sess.Scope(), st, listID)
	}

	out := list.ActiveListOutput{Items: st.Items(), Revision: sess.Revision()}
	if cached, ok := st.List(listID); ok {
		out.List = cached
	} else {
		out.List = meta
	}
	return out, nil
}

// resolveList reads list metadata, preferring the cache.
func (uc *implUseCase) resolveList(ctx context.Context, sc model.Scope, listID string) (model.ShoppingList, error) {
	_, st := uc.store(sc)
	if cached, ok := st.List(listID); ok {
		return cached, nil
	}

	meta, err := uc.repo.GetList(ctx, sc, listID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.ShoppingList{}, list.ErrListNotFound
		}
		uc.l.Errorf(ctx, "list.usecase.resolveList.GetList: %v", err)
		return model.ShoppingList{}, err
	}
	return meta, nil
}
